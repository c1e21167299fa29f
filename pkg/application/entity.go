package application

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status of a candidate's application to a posting.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusReviewed Status = "REVIEWED"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Application links a candidate to a job posting. Applicants form the primary
// candidate pool of the matching writer.
type Application struct {
	ID           uuid.UUID `json:"id"`
	JobPostingID uuid.UUID `json:"jobPostingId"`
	CandidateID  uuid.UUID `json:"candidateId"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository is the persistence port for applications.
type Repository interface {
	Create(ctx context.Context, a Application) error
	CandidateIDsByPosting(ctx context.Context, jobPostingID uuid.UUID) ([]uuid.UUID, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Application, error)
	Exists(ctx context.Context, jobPostingID, candidateID uuid.UUID) (bool, error)
}
