package directory

import (
	"time"

	"github.com/google/uuid"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
)

// EventKind distinguishes the identity-provider notifications the directory
// applies. Created and updated share merge semantics; the split is kept so
// logs and metrics can tell them apart.
type EventKind string

const (
	EventCreated EventKind = "user.created"
	EventUpdated EventKind = "user.updated"
	EventDeleted EventKind = "user.deleted"
)

// Event is one identity change to apply. Pointer fields are merged only when
// non-nil, so replays and out-of-order deliveries never blank a column.
type Event struct {
	Kind       EventKind
	ExternalID string
	Email      *string
	FirstName  *string
	LastName   *string
	ImageURL   *string
}

// UpsertInput carries the column values a single atomic upsert provides.
type UpsertInput struct {
	ExternalID  string
	Email       *string
	FirstName   *string
	LastName    *string
	ImageURL    *string
	LastLoginAt *time.Time
}

// UserDTO is the transport shape of a directory user.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	ExternalID  string     `json:"external_id"`
	Email       string     `json:"email"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:          u.ID,
		ExternalID:  u.ExternalID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		ImageURL:    u.ImageURL,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
