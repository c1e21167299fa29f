package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/interview"
)

// InterviewRepository stores scheduled interview meetings.
type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) (*InterviewRepository, error) {
	r := &InterviewRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *InterviewRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS interview_meetings (
	id UUID PRIMARY KEY,
	job_posting_id UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
	enterprise_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	candidate_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	scheduled_at TIMESTAMPTZ NOT NULL,
	meeting_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meetings_enterprise ON interview_meetings(enterprise_id);
CREATE INDEX IF NOT EXISTS idx_meetings_candidate ON interview_meetings(candidate_id);
`)
	return err
}

func (r *InterviewRepository) Create(ctx context.Context, m interview.Meeting) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO interview_meetings (id, job_posting_id, enterprise_id, candidate_id, scheduled_at, meeting_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, m.ID, m.JobPostingID, m.EnterpriseID, m.CandidateID, m.ScheduledAt, m.MeetingURL, m.CreatedAt)
	return err
}

func (r *InterviewRepository) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, limit, offset int) ([]interview.Meeting, error) {
	return r.list(ctx, `enterprise_id`, enterpriseID, limit, offset)
}

func (r *InterviewRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]interview.Meeting, error) {
	return r.list(ctx, `candidate_id`, candidateID, limit, offset)
}

func (r *InterviewRepository) list(ctx context.Context, column string, id uuid.UUID, limit, offset int) ([]interview.Meeting, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, job_posting_id, enterprise_id, candidate_id, scheduled_at, meeting_url, created_at
FROM interview_meetings WHERE `+column+` = $3
ORDER BY scheduled_at
LIMIT $1 OFFSET $2
`, limit, offset, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMeetings(rows)
}

func collectMeetings(rows pgx.Rows) ([]interview.Meeting, error) {
	var res []interview.Meeting
	for rows.Next() {
		var m interview.Meeting
		var scheduled, created time.Time
		if err := rows.Scan(&m.ID, &m.JobPostingID, &m.EnterpriseID, &m.CandidateID, &scheduled, &m.MeetingURL, &created); err != nil {
			return nil, err
		}
		m.ScheduledAt = scheduled.UTC()
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	return res, rows.Err()
}
