package portfolio

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/apperr"
)

// UseCase covers candidate portfolio management.
type UseCase interface {
	Save(ctx context.Context, userID uuid.UUID, p Portfolio) (Portfolio, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]Portfolio, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Save(ctx context.Context, userID uuid.UUID, p Portfolio) (Portfolio, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return Portfolio{}, apperr.New(apperr.Validation, "le titre du portfolio est requis")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.UserID = userID
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Upsert(ctx, p); err != nil {
		return Portfolio{}, err
	}
	return p, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID) ([]Portfolio, error) {
	return s.repo.ListByUser(ctx, userID)
}
