package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/admaster-ai/admaster-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// requestID echoes a well-formed caller id and mints a fresh one
// otherwise. Only UUIDs are accepted.
func requestID(header string) string {
	id := strings.TrimSpace(header)
	if _, err := uuid.Parse(id); err != nil {
		return uuid.NewString()
	}
	return id
}

// RequestID tags every request with an id, echoed on the response and
// attached to all log lines downstream.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := requestID(r.Header.Get(requestIDHeader))
			w.Header().Set(requestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
