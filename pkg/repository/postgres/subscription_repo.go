package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/subscription"
)

// SubscriptionRepository stores subscriptions and applies them together with
// the user's credit balance in one transaction.
type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) (*SubscriptionRepository, error) {
	r := &SubscriptionRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SubscriptionRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS subscriptions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
	tier TEXT NOT NULL,
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	credits INT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *SubscriptionRepository) GetByUser(ctx context.Context, userID uuid.UUID) (subscription.Subscription, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, tier, start_date, end_date, credits, created_at
FROM subscriptions WHERE user_id = $1
`, userID)
	var s subscription.Subscription
	var tier string
	var start, end, created time.Time
	if err := row.Scan(&s.ID, &s.UserID, &tier, &start, &end, &s.Credits, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscription.Subscription{}, pgx.ErrNoRows
		}
		return subscription.Subscription{}, err
	}
	s.Tier = subscription.Tier(tier)
	s.StartDate = start.UTC()
	s.EndDate = end.UTC()
	s.CreatedAt = created.UTC()
	return s, nil
}

// Apply upserts the subscription row and sets the user's credit balance in the
// same transaction, so a crash cannot leave the two out of step.
func (r *SubscriptionRepository) Apply(ctx context.Context, sub subscription.Subscription, userCredits int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO subscriptions (id, user_id, tier, start_date, end_date, credits, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (user_id) DO UPDATE SET
	tier = EXCLUDED.tier,
	start_date = EXCLUDED.start_date,
	end_date = EXCLUDED.end_date,
	credits = EXCLUDED.credits
`, sub.ID, sub.UserID, string(sub.Tier), sub.StartDate, sub.EndDate, sub.Credits, sub.CreatedAt)
	if err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE users SET credits = $2 WHERE id = $1`, sub.UserID, userCredits)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}
