package identitywebhook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/admaster-ai/admaster-backend/internal/directory"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

type stubDirectory struct {
	events []directory.Event
	err    error
}

func (s *stubDirectory) ApplyEvent(ctx context.Context, event directory.Event) error {
	s.events = append(s.events, event)
	return s.err
}

func newTestEventService(t *testing.T, dir *stubDirectory) *Service {
	t.Helper()
	svc, err := NewService(dir, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func userEvent(t *testing.T, eventType string, data map[string]any) *Event {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal event data: %v", err)
	}
	return &Event{Type: eventType, Data: raw}
}

func TestHandleEventUserCreatedAppliesUpsert(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	event := userEvent(t, EventUserCreated, map[string]any{
		"id":              "user_1",
		"email_addresses": []map[string]any{{"email_address": "jane@acme.test"}},
		"first_name":      "Jane",
		"last_name":       "Doe",
		"image_url":       "https://img.test/jane.png",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle event: %v", err)
	}

	if len(dir.events) != 1 {
		t.Fatalf("expected 1 directory event, got %d", len(dir.events))
	}
	applied := dir.events[0]
	if applied.Kind != directory.EventCreated {
		t.Fatalf("expected created kind, got %s", applied.Kind)
	}
	if applied.ExternalID != "user_1" {
		t.Fatalf("expected external id user_1, got %s", applied.ExternalID)
	}
	if applied.Email == nil || *applied.Email != "jane@acme.test" {
		t.Fatalf("expected primary email, got %v", applied.Email)
	}
	if applied.FirstName == nil || *applied.FirstName != "Jane" {
		t.Fatalf("expected first name, got %v", applied.FirstName)
	}
	if applied.ImageURL == nil || *applied.ImageURL != "https://img.test/jane.png" {
		t.Fatalf("expected image url, got %v", applied.ImageURL)
	}
}

func TestHandleEventUserUpdatedKeepsAbsentFieldsNil(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	event := userEvent(t, EventUserUpdated, map[string]any{
		"id":         "user_1",
		"first_name": "Janet",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle event: %v", err)
	}

	applied := dir.events[0]
	if applied.Kind != directory.EventUpdated {
		t.Fatalf("expected updated kind, got %s", applied.Kind)
	}
	if applied.Email != nil {
		t.Fatalf("absent email must remain nil, got %v", *applied.Email)
	}
	if applied.LastName != nil {
		t.Fatalf("absent last name must remain nil")
	}
}

func TestHandleEventUserDeletedAppliesDelete(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	event := userEvent(t, EventUserDeleted, map[string]any{"id": "user_1", "deleted": true})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle event: %v", err)
	}

	if len(dir.events) != 1 {
		t.Fatalf("expected 1 directory event, got %d", len(dir.events))
	}
	if dir.events[0].Kind != directory.EventDeleted || dir.events[0].ExternalID != "user_1" {
		t.Fatalf("unexpected delete event %+v", dir.events[0])
	}
}

func TestHandleEventUnsupportedTypeIsAcknowledgedNoOp(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	event := userEvent(t, "session.created", map[string]any{"id": "sess_1"})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("unsupported type must not error: %v", err)
	}
	if len(dir.events) != 0 {
		t.Fatalf("unsupported type must not touch the directory")
	}
}

func TestHandleEventMissingIDRejected(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	event := userEvent(t, EventUserCreated, map[string]any{
		"email_addresses": []map[string]any{{"email_address": "jane@acme.test"}},
	})
	err := svc.HandleEvent(context.Background(), event)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(dir.events) != 0 {
		t.Fatalf("invalid payload must not reach the directory")
	}
}

func TestHandleEventMalformedPayloadRejected(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	event := &Event{Type: EventUserCreated, Data: json.RawMessage(`"not-an-object"`)}
	err := svc.HandleEvent(context.Background(), event)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandleEventDirectoryFailurePropagates(t *testing.T) {
	dir := &stubDirectory{err: pkgerrors.New(pkgerrors.CodeDependency, "database offline")}
	svc := newTestEventService(t, dir)

	event := userEvent(t, EventUserCreated, map[string]any{"id": "user_1"})
	err := svc.HandleEvent(context.Background(), event)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestHandleEventNilEventRejected(t *testing.T) {
	dir := &stubDirectory{}
	svc := newTestEventService(t, dir)

	err := svc.HandleEvent(context.Background(), nil)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
