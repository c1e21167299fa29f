package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/matching"
)

// MatchingRepository stores the cached candidate/posting match rows.
type MatchingRepository struct {
	pool *pgxpool.Pool
}

func NewMatchingRepository(pool *pgxpool.Pool) (*MatchingRepository, error) {
	r := &MatchingRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MatchingRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS candidate_matchings (
	id UUID PRIMARY KEY,
	job_posting_id UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
	candidate_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	match_score REAL NOT NULL,
	skills_match REAL NOT NULL,
	domain_match REAL NOT NULL,
	experience_match REAL NOT NULL,
	ai_reason TEXT NOT NULL DEFAULT '',
	generated_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_posting_id, candidate_id)
);
CREATE INDEX IF NOT EXISTS idx_candidate_matchings_posting_score
	ON candidate_matchings(job_posting_id, match_score DESC);
`)
	return err
}

// ReplaceForPosting swaps all cached rows of one posting in one transaction,
// so readers never observe a half-written generation.
func (r *MatchingRepository) ReplaceForPosting(ctx context.Context, jobPostingID uuid.UUID, rows []matching.CandidateMatching) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_matchings WHERE job_posting_id = $1`, jobPostingID); err != nil {
		return err
	}
	for _, m := range rows {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		_, err := tx.Exec(ctx, `
INSERT INTO candidate_matchings
	(id, job_posting_id, candidate_id, match_score, skills_match, domain_match, experience_match, ai_reason, generated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, m.ID, jobPostingID, m.CandidateID, m.MatchScore, m.SkillsMatch, m.DomainMatch,
			m.ExperienceMatch, m.AIReason, m.GeneratedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *MatchingRepository) TopByPosting(ctx context.Context, jobPostingID uuid.UUID, limit int) ([]matching.CandidateMatching, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, job_posting_id, candidate_id, match_score, skills_match, domain_match, experience_match, ai_reason, generated_at
FROM candidate_matchings
WHERE job_posting_id = $1
ORDER BY match_score DESC
LIMIT $2
`, jobPostingID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []matching.CandidateMatching
	for rows.Next() {
		m, err := scanMatching(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (r *MatchingRepository) CountByPosting(ctx context.Context, jobPostingID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM candidate_matchings WHERE job_posting_id = $1
`, jobPostingID).Scan(&n)
	return n, err
}

func scanMatching(row pgx.Row) (matching.CandidateMatching, error) {
	var m matching.CandidateMatching
	var generated time.Time
	if err := row.Scan(&m.ID, &m.JobPostingID, &m.CandidateID, &m.MatchScore,
		&m.SkillsMatch, &m.DomainMatch, &m.ExperienceMatch, &m.AIReason, &generated); err != nil {
		return matching.CandidateMatching{}, err
	}
	m.GeneratedAt = generated.UTC()
	return m, nil
}
