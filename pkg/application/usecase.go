package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
	"github.com/prepmatch/backend/pkg/jobposting"
)

// UseCase covers the candidate-side application operations.
type UseCase interface {
	Apply(ctx context.Context, candidateID, jobPostingID uuid.UUID) (Application, error)
	ListMine(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Application, error)
}

type service struct {
	repo     Repository
	postings jobposting.Repository
}

func NewService(repo Repository, postings jobposting.Repository) UseCase {
	return &service{repo: repo, postings: postings}
}

func (s *service) Apply(ctx context.Context, candidateID, jobPostingID uuid.UUID) (Application, error) {
	posting, err := s.postings.GetByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Application{}, apperr.New(apperr.NotFound, "offre introuvable")
		}
		return Application{}, err
	}
	if !posting.IsActive {
		return Application{}, apperr.New(apperr.Conflict, "cette offre n'est plus active")
	}
	exists, err := s.repo.Exists(ctx, jobPostingID, candidateID)
	if err != nil {
		return Application{}, err
	}
	if exists {
		return Application{}, apperr.New(apperr.Conflict, "candidature déjà enregistrée")
	}
	a := Application{
		ID:           uuid.New(),
		JobPostingID: jobPostingID,
		CandidateID:  candidateID,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

func (s *service) ListMine(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Application, error) {
	return s.repo.ListByCandidate(ctx, candidateID, limit, offset)
}
