package portfolio

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Portfolio is a candidate-owned showcase. The matching reader joins only the
// most recently updated one per candidate.
type Portfolio struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository is the persistence port for portfolios.
type Repository interface {
	Upsert(ctx context.Context, p Portfolio) error
	// LatestByUsers returns, per user, the portfolio with the newest
	// updated_at. Users without one are simply absent from the map.
	LatestByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]Portfolio, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Portfolio, error)
}
