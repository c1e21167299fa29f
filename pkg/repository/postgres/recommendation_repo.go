package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/recommendation"
)

// RecommendationRepository stores generated per-user recommendations.
type RecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepository(pool *pgxpool.Pool) (*RecommendationRepository, error) {
	r := &RecommendationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RecommendationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS recommendations (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL DEFAULT '',
	priority INT NOT NULL DEFAULT 0,
	viewed BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recommendations_user ON recommendations(user_id, priority);
`)
	return err
}

// ReplaceForUser keeps viewed rows and swaps the unviewed ones.
func (r *RecommendationRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, recs []recommendation.Recommendation) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE user_id = $1 AND NOT viewed`, userID); err != nil {
		return err
	}
	for _, rec := range recs {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now().UTC()
		}
		_, err := tx.Exec(ctx, `
INSERT INTO recommendations (id, user_id, type, title, content, priority, viewed, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, rec.ID, userID, string(rec.Type), rec.Title, rec.Content, rec.Priority, rec.Viewed, rec.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *RecommendationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]recommendation.Recommendation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, type, title, content, priority, viewed, created_at
FROM recommendations WHERE user_id = $1
ORDER BY priority, created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []recommendation.Recommendation
	for rows.Next() {
		var rec recommendation.Recommendation
		var typ string
		var created time.Time
		if err := rows.Scan(&rec.ID, &rec.UserID, &typ, &rec.Title, &rec.Content, &rec.Priority, &rec.Viewed, &created); err != nil {
			return nil, err
		}
		rec.Type = recommendation.Type(typ)
		rec.CreatedAt = created.UTC()
		res = append(res, rec)
	}
	return res, rows.Err()
}

func (r *RecommendationRepository) MarkViewed(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE recommendations SET viewed = TRUE WHERE id = $1 AND user_id = $2
`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
