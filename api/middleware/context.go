package middleware

import (
	"context"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
)

type contextKey string

const (
	ctxUser       contextKey = "current_user"
	ctxExternalID contextKey = "external_id"
)

// WithUser injects the resolved directory user into the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUser, user)
}

// UserFromContext returns the resolved user, or nil when the request was not
// authenticated.
func UserFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxUser).(*models.User); ok {
		return v
	}
	return nil
}

// WithExternalID injects the verified identity provider id into the context.
func WithExternalID(ctx context.Context, externalID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxExternalID, externalID)
}

// ExternalIDFromContext returns the verified identity provider id, or empty
// when the request was not authenticated.
func ExternalIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxExternalID).(string); ok {
		return v
	}
	return ""
}
