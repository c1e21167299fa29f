package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/jobposting"
)

// JobPostingRepository stores enterprise job postings.
type JobPostingRepository struct {
	pool *pgxpool.Pool
}

func NewJobPostingRepository(pool *pgxpool.Pool) (*JobPostingRepository, error) {
	r := &JobPostingRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobPostingRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_postings (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	skills TEXT[] NOT NULL DEFAULT '{}',
	domains TEXT[] NOT NULL DEFAULT '{}',
	min_experience INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_postings_owner ON job_postings(owner_id);
CREATE INDEX IF NOT EXISTS idx_job_postings_active ON job_postings(is_active);
`)
	return err
}

func (r *JobPostingRepository) Create(ctx context.Context, p jobposting.JobPosting) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_postings (id, owner_id, title, description, is_active, skills, domains, min_experience, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, p.ID, p.OwnerID, strings.TrimSpace(p.Title), p.Description, p.IsActive,
		p.Skills, p.Domains, p.MinExperience, p.CreatedAt)
	return err
}

func (r *JobPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (jobposting.JobPosting, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, title, description, is_active, skills, domains, min_experience, created_at
FROM job_postings WHERE id = $1
`, id)
	return scanPosting(row)
}

func (r *JobPostingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]jobposting.JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, description, is_active, skills, domains, min_experience, created_at
FROM job_postings WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPostings(rows)
}

func (r *JobPostingRepository) ListActive(ctx context.Context) ([]jobposting.JobPosting, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, title, description, is_active, skills, domains, min_experience, created_at
FROM job_postings WHERE is_active
ORDER BY created_at
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPostings(rows)
}

func (r *JobPostingRepository) SetActive(ctx context.Context, ownerID, id uuid.UUID, active bool) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE job_postings SET is_active = $3 WHERE id = $1 AND owner_id = $2
`, id, ownerID, active)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *JobPostingRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM job_postings WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanPosting(row pgx.Row) (jobposting.JobPosting, error) {
	var p jobposting.JobPosting
	var created time.Time
	if err := row.Scan(&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.IsActive,
		&p.Skills, &p.Domains, &p.MinExperience, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobposting.JobPosting{}, pgx.ErrNoRows
		}
		return jobposting.JobPosting{}, err
	}
	p.CreatedAt = created.UTC()
	return p, nil
}

func collectPostings(rows pgx.Rows) ([]jobposting.JobPosting, error) {
	var res []jobposting.JobPosting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, rows.Err()
}
