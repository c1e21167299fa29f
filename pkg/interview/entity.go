package interview

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Meeting is a scheduled interview between an enterprise and a candidate for a
// given posting.
type Meeting struct {
	ID           uuid.UUID `json:"id"`
	JobPostingID uuid.UUID `json:"jobPostingId"`
	EnterpriseID uuid.UUID `json:"enterpriseId"`
	CandidateID  uuid.UUID `json:"candidateId"`
	ScheduledAt  time.Time `json:"scheduledAt"`
	MeetingURL   string    `json:"meetingUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Repository is the persistence port for interview meetings.
type Repository interface {
	Create(ctx context.Context, m Meeting) error
	ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, limit, offset int) ([]Meeting, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Meeting, error)
}
