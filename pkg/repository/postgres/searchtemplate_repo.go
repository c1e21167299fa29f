package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/searchtemplate"
)

// SearchTemplateRepository stores enterprise saved searches.
type SearchTemplateRepository struct {
	pool *pgxpool.Pool
}

func NewSearchTemplateRepository(pool *pgxpool.Pool) (*SearchTemplateRepository, error) {
	r := &SearchTemplateRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SearchTemplateRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS search_templates (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	filters JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_search_templates_owner ON search_templates(owner_id);
`)
	return err
}

func (r *SearchTemplateRepository) Create(ctx context.Context, t searchtemplate.SearchTemplate) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO search_templates (id, owner_id, name, filters, created_at)
VALUES ($1, $2, $3, $4, $5)
`, t.ID, t.OwnerID, t.Name, t.Filters, t.CreatedAt)
	return err
}

func (r *SearchTemplateRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]searchtemplate.SearchTemplate, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, name, filters, created_at
FROM search_templates WHERE owner_id = $1
ORDER BY created_at DESC
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []searchtemplate.SearchTemplate
	for rows.Next() {
		var t searchtemplate.SearchTemplate
		var created time.Time
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Filters, &created); err != nil {
			return nil, err
		}
		t.CreatedAt = created.UTC()
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *SearchTemplateRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM search_templates WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
