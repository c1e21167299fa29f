// Package searchtemplate stores enterprise users' saved candidate searches.
package searchtemplate

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/apperr"
)

// SearchTemplate is an enterprise-owned saved search. Filters is an opaque
// JSON document the UI round-trips.
type SearchTemplate struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Name      string    `json:"name"`
	Filters   []byte    `json:"filters"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository is the persistence port for search templates.
type Repository interface {
	Create(ctx context.Context, t SearchTemplate) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]SearchTemplate, error)
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// UseCase exposes template operations.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, name string, filters []byte) (SearchTemplate, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]SearchTemplate, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, name string, filters []byte) (SearchTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SearchTemplate{}, apperr.New(apperr.Validation, "le nom du modèle est requis")
	}
	if len(filters) == 0 {
		filters = []byte("{}")
	}
	t := SearchTemplate{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Filters:   filters,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return SearchTemplate{}, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID) ([]SearchTemplate, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}
