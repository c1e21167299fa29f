package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/application"
)

// ApplicationRepository stores candidate applications to postings.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	r := &ApplicationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_posting_id UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
	candidate_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	status TEXT NOT NULL DEFAULT 'PENDING',
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_posting_id, candidate_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications(candidate_id);
`)
	return err
}

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = application.StatusPending
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (id, job_posting_id, candidate_id, status, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (job_posting_id, candidate_id) DO NOTHING
`, a.ID, a.JobPostingID, a.CandidateID, string(a.Status), a.CreatedAt)
	return err
}

func (r *ApplicationRepository) CandidateIDsByPosting(ctx context.Context, jobPostingID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
SELECT candidate_id FROM applications WHERE job_posting_id = $1
`, jobPostingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]application.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, job_posting_id, candidate_id, status, created_at
FROM applications WHERE candidate_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []application.Application
	for rows.Next() {
		var a application.Application
		var status string
		var created time.Time
		if err := rows.Scan(&a.ID, &a.JobPostingID, &a.CandidateID, &status, &created); err != nil {
			return nil, err
		}
		a.Status = application.Status(status)
		a.CreatedAt = created.UTC()
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobPostingID, candidateID uuid.UUID) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `
SELECT 1 FROM applications WHERE job_posting_id = $1 AND candidate_id = $2
`, jobPostingID, candidateID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
