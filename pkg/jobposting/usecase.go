package jobposting

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
)

// UseCase covers the enterprise-side posting operations.
type UseCase interface {
	Create(ctx context.Context, p JobPosting) (JobPosting, error)
	Get(ctx context.Context, actorID, id uuid.UUID) (JobPosting, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]JobPosting, error)
	SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, p JobPosting) (JobPosting, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || strings.TrimSpace(p.Description) == "" {
		return JobPosting{}, apperr.New(apperr.Validation, "title and description are required")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return JobPosting{}, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, actorID, id uuid.UUID) (JobPosting, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobPosting{}, apperr.New(apperr.NotFound, "job posting not found")
		}
		return JobPosting{}, err
	}
	if p.OwnerID != actorID {
		return JobPosting{}, apperr.New(apperr.Forbidden, "job posting belongs to another user")
	}
	return p, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]JobPosting, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) error {
	if err := s.repo.SetActive(ctx, ownerID, id, active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "job posting not found")
		}
		return err
	}
	return nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.DeleteForOwner(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.New(apperr.NotFound, "job posting not found")
		}
		return err
	}
	return nil
}
