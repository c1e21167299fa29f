package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/portfolio"
)

// PortfolioRepository stores candidate portfolio summaries.
type PortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepository(pool *pgxpool.Pool) (*PortfolioRepository, error) {
	r := &PortfolioRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *PortfolioRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portfolios (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_portfolios_user_updated ON portfolios(user_id, updated_at DESC);
`)
	return err
}

func (r *PortfolioRepository) Upsert(ctx context.Context, p portfolio.Portfolio) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO portfolios (id, user_id, title, summary, url, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	summary = EXCLUDED.summary,
	url = EXCLUDED.url,
	updated_at = EXCLUDED.updated_at
`, p.ID, p.UserID, p.Title, p.Summary, p.URL, p.UpdatedAt)
	return err
}

// LatestByUsers keeps only the newest portfolio per user via DISTINCT ON.
func (r *PortfolioRepository) LatestByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]portfolio.Portfolio, error) {
	res := make(map[uuid.UUID]portfolio.Portfolio)
	if len(userIDs) == 0 {
		return res, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT ON (user_id) id, user_id, title, summary, url, updated_at
FROM portfolios
WHERE user_id = ANY($1)
ORDER BY user_id, updated_at DESC
`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var p portfolio.Portfolio
		var updated time.Time
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Summary, &p.URL, &updated); err != nil {
			return nil, err
		}
		p.UpdatedAt = updated.UTC()
		res[p.UserID] = p
	}
	return res, rows.Err()
}

func (r *PortfolioRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]portfolio.Portfolio, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, title, summary, url, updated_at
FROM portfolios WHERE user_id = $1
ORDER BY updated_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []portfolio.Portfolio
	for rows.Next() {
		var p portfolio.Portfolio
		var updated time.Time
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Summary, &p.URL, &updated); err != nil {
			return nil, err
		}
		p.UpdatedAt = updated.UTC()
		res = append(res, p)
	}
	return res, rows.Err()
}
