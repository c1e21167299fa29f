package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type of a recommendation.
type Type string

const (
	TypeQuiz         Type = "QUIZ"
	TypeProfile      Type = "PROFILE"
	TypeSubscription Type = "SUBSCRIPTION"
)

// Recommendation is generated for a user by the scheduled refresh and read by
// the user-facing endpoint; never created interactively.
type Recommendation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  int       `json:"priority"`
	Viewed    bool      `json:"viewed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository is the persistence port for recommendations.
type Repository interface {
	// ReplaceForUser drops the user's unviewed rows and inserts fresh ones.
	// Viewed rows are kept so the history survives a refresh.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []Recommendation) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Recommendation, error)
	MarkViewed(ctx context.Context, userID, id uuid.UUID) error
}
