package recommendation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
)

// UseCase is the user-facing read side.
type UseCase interface {
	ForUser(ctx context.Context, userID uuid.UUID) ([]Recommendation, error)
	MarkViewed(ctx context.Context, userID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) ForUser(ctx context.Context, userID uuid.UUID) ([]Recommendation, error) {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	return recs, nil
}

func (s *service) MarkViewed(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.MarkViewed(ctx, userID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "recommandation introuvable")
		}
		return err
	}
	return nil
}
