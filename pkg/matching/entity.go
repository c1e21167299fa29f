package matching

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/portfolio"
)

// CandidateMatching is a cached, derived row: one candidate scored against one
// job posting. Rows are regenerated wholesale by the writer and never mutated
// by user interaction.
type CandidateMatching struct {
	ID              uuid.UUID `json:"id"`
	JobPostingID    uuid.UUID `json:"jobPostingId"`
	CandidateID     uuid.UUID `json:"candidateId"`
	MatchScore      float32   `json:"matchScore"`
	SkillsMatch     float32   `json:"skillsMatch"`
	DomainMatch     float32   `json:"domainMatch"`
	ExperienceMatch float32   `json:"experienceMatch"`
	AIReason        string    `json:"aiReason"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Repository is the persistence port for cached matches.
type Repository interface {
	// ReplaceForPosting atomically swaps all cached rows of one posting.
	ReplaceForPosting(ctx context.Context, jobPostingID uuid.UUID, rows []CandidateMatching) error
	// TopByPosting returns up to limit rows ordered by match_score descending.
	TopByPosting(ctx context.Context, jobPostingID uuid.UUID, limit int) ([]CandidateMatching, error)
	CountByPosting(ctx context.Context, jobPostingID uuid.UUID) (int, error)
}

// CandidateView is the public shape of a candidate inside a match response.
type CandidateView struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	Skills          []string  `json:"skills"`
	Domains         []string  `json:"domains"`
	ExperienceYears int       `json:"experienceYears"`
}

// MatchView is a cached row shaped for the client: the row itself, the nested
// candidate and, when present, the candidate's most recently updated portfolio.
type MatchView struct {
	CandidateMatching
	Candidate CandidateView        `json:"candidate"`
	Portfolio *portfolio.Portfolio `json:"portfolio,omitempty"`
}

// CacheResult is the reader's response payload. FromCache is always true:
// nothing on this path computes scores.
type CacheResult struct {
	Matches   []MatchView `json:"matches"`
	Total     int         `json:"total"`
	FromCache bool        `json:"fromCache"`
	CachedAt  time.Time   `json:"cachedAt"`
}

func candidateView(u auth.User) CandidateView {
	return CandidateView{
		ID:              u.ID,
		Email:           u.Email,
		Skills:          u.Skills,
		Domains:         u.Domains,
		ExperienceYears: u.ExperienceYears,
	}
}
