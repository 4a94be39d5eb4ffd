package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

// ParseQueryInt reads an integer query parameter, returning defaultVal
// when the parameter is absent and enforcing the inclusive [min, max]
// range otherwise.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	param := strings.TrimSpace(r.URL.Query().Get(key))
	if param == "" {
		return defaultVal, nil
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return 0, badQueryParam("query parameter must be numeric", map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, badQueryParam("query parameter out of range", map[string]any{
			"field": key,
			"min":   min,
			"max":   max,
		})
	}
	return value, nil
}

func badQueryParam(msg string, details map[string]any) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(details)
}
