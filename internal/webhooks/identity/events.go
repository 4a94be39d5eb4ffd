package identitywebhook

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

// Event types delivered by the identity provider.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Event is the decoded webhook envelope. Data stays raw until the type is
// known; unsupported types are acknowledged without ever decoding it.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserPayload is the provider's user object reduced to the fields the
// directory mirrors. Pointer fields distinguish absent from empty.
type UserPayload struct {
	ID             string         `json:"id"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	FirstName      *string        `json:"first_name"`
	LastName       *string        `json:"last_name"`
	ImageURL       *string        `json:"image_url"`
}

// EmailAddress is one entry of the provider's email address list.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// PrimaryEmail returns the first listed address, or empty when none exist.
func (p UserPayload) PrimaryEmail() string {
	if len(p.EmailAddresses) == 0 {
		return ""
	}
	return p.EmailAddresses[0].EmailAddress
}

// decodeUserPayload shape-validates the event data before it can reach the
// directory. An event without a subject id is rejected outright.
func decodeUserPayload(data json.RawMessage) (*UserPayload, error) {
	var payload UserPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode user payload")
	}
	if strings.TrimSpace(payload.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user payload missing id")
	}
	return &payload, nil
}
