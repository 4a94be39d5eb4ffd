package brands

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/admaster-ai/admaster-backend/pkg/db/models"
	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

type stubBrandRepo struct {
	brand   *models.Brand
	updated []*models.Brand
	creates int
	err     error
}

func (s *stubBrandRepo) FindByBusinessID(_ context.Context, _ uuid.UUID) (*models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.brand == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.brand, nil
}

func (s *stubBrandRepo) GetOrCreateByBusinessID(_ context.Context, businessID uuid.UUID) (*models.Brand, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.brand == nil {
		s.creates++
		s.brand = &models.Brand{
			ID:          uuid.New(),
			BusinessID:  businessID,
			Language:    "en",
			BrandColors: pq.StringArray{},
			ToneOfVoice: pq.StringArray{},
		}
	}
	return s.brand, nil
}

func (s *stubBrandRepo) Update(_ context.Context, brand *models.Brand) error {
	if s.err != nil {
		return s.err
	}
	s.updated = append(s.updated, brand)
	return nil
}

type stubBusinessGuard struct {
	err error
}

func (s stubBusinessGuard) FindByIDAndOwner(_ context.Context, id uuid.UUID, ownerExternalID string) (*models.Business, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Business{ID: id, OwnerExternalID: ownerExternalID}, nil
}

func newTestService(t *testing.T, repo *stubBrandRepo, guard stubBusinessGuard) Service {
	t.Helper()
	svc, err := NewService(repo, guard)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	if _, err := NewService(nil, stubBusinessGuard{}); err == nil {
		t.Fatal("expected error creating service without repo")
	}
	if _, err := NewService(&stubBrandRepo{}, nil); err == nil {
		t.Fatal("expected error creating service without business guard")
	}
}

func TestGetForBusinessLazilyCreates(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := newTestService(t, repo, stubBusinessGuard{})

	businessID := uuid.New()
	dto, err := svc.GetForBusiness(context.Background(), "owner_1", businessID)
	if err != nil {
		t.Fatalf("get brand: %v", err)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one lazy create, got %d", repo.creates)
	}
	if dto.BusinessID != businessID {
		t.Fatalf("expected business id %s, got %s", businessID, dto.BusinessID)
	}
	if dto.Language != "en" {
		t.Fatalf("expected default language en, got %s", dto.Language)
	}
	if dto.BrandColors == nil || dto.ToneOfVoice == nil {
		t.Fatal("array fields must serialize as empty arrays, not null")
	}
}

func TestGetForBusinessCrossTenantIsNotFound(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := newTestService(t, repo, stubBusinessGuard{err: gorm.ErrRecordNotFound})

	_, err := svc.GetForBusiness(context.Background(), "owner_other", uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
	if repo.creates != 0 {
		t.Fatal("ownership failure must not create a brand")
	}
}

func TestUpdateForBusinessMergesProvidedFieldsOnly(t *testing.T) {
	businessID := uuid.New()
	repo := &stubBrandRepo{brand: &models.Brand{
		ID:          uuid.New(),
		BusinessID:  businessID,
		Description: "old",
		Language:    "en",
		BrandColors: pq.StringArray{"#000000"},
		ToneOfVoice: pq.StringArray{"formal"},
	}}
	svc := newTestService(t, repo, stubBusinessGuard{})

	description := "Shared rides for commuters"
	colors := []string{"#0055FF"}
	dto, err := svc.UpdateForBusiness(context.Background(), "owner_1", businessID, UpdateBrandInput{
		Description: &description,
		BrandColors: &colors,
	})
	if err != nil {
		t.Fatalf("update brand: %v", err)
	}
	if dto.Description != description {
		t.Fatalf("expected description %q, got %q", description, dto.Description)
	}
	if len(dto.BrandColors) != 1 || dto.BrandColors[0] != "#0055FF" {
		t.Fatalf("unexpected colors %v", dto.BrandColors)
	}
	if len(dto.ToneOfVoice) != 1 || dto.ToneOfVoice[0] != "formal" {
		t.Fatalf("untouched tone changed: %v", dto.ToneOfVoice)
	}
	if dto.Language != "en" {
		t.Fatalf("untouched language changed: %s", dto.Language)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.updated))
	}
}

func TestUpdateForBusinessValidatesInput(t *testing.T) {
	longDescription := strings.Repeat("a", 501)
	blankLanguage := "  "
	longLanguage := "en-US-x-long"

	cases := []struct {
		name  string
		input UpdateBrandInput
	}{
		{"description too long", UpdateBrandInput{Description: &longDescription}},
		{"blank language", UpdateBrandInput{Language: &blankLanguage}},
		{"language too long", UpdateBrandInput{Language: &longLanguage}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubBrandRepo{}
			svc := newTestService(t, repo, stubBusinessGuard{})

			_, err := svc.UpdateForBusiness(context.Background(), "owner_1", uuid.New(), tc.input)
			assertCode(t, err, pkgerrors.CodeValidation)
			if len(repo.updated) != 0 {
				t.Fatal("invalid input must not be saved")
			}
		})
	}
}

func TestMarkCompleteSetsFlag(t *testing.T) {
	businessID := uuid.New()
	repo := &stubBrandRepo{brand: &models.Brand{ID: uuid.New(), BusinessID: businessID, Language: "en"}}
	svc := newTestService(t, repo, stubBusinessGuard{})

	dto, err := svc.MarkComplete(context.Background(), "owner_1", businessID)
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if !dto.IsComplete {
		t.Fatal("expected is_complete true")
	}
	if len(repo.updated) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.updated))
	}
}

func TestMarkCompleteWithoutBrandIsNotFound(t *testing.T) {
	repo := &stubBrandRepo{}
	svc := newTestService(t, repo, stubBusinessGuard{})

	_, err := svc.MarkComplete(context.Background(), "owner_1", uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
	if repo.creates != 0 {
		t.Fatal("mark complete must not lazily create a brand")
	}
}

func TestBrandGuardDependencyFailure(t *testing.T) {
	svc := newTestService(t, &stubBrandRepo{}, stubBusinessGuard{err: errors.New("boom")})

	_, err := svc.GetForBusiness(context.Background(), "owner_1", uuid.New())
	assertCode(t, err, pkgerrors.CodeDependency)
}
