package jobposting

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobPosting belongs to an enterprise user. Only active postings take part in
// match generation.
type JobPosting struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"ownerId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	Skills        []string  `json:"skills"`
	Domains       []string  `json:"domains"`
	MinExperience int       `json:"minExperience"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Repository is the persistence port for job postings.
type Repository interface {
	Create(ctx context.Context, p JobPosting) error
	GetByID(ctx context.Context, id uuid.UUID) (JobPosting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]JobPosting, error)
	ListActive(ctx context.Context) ([]JobPosting, error)
	SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
