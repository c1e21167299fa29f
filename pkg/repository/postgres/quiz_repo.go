package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prepmatch/backend/pkg/quiz"
)

// QuizRepository stores quizzes and quiz results.
type QuizRepository struct {
	pool *pgxpool.Pool
}

func NewQuizRepository(pool *pgxpool.Pool) (*QuizRepository, error) {
	r := &QuizRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *QuizRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS job_quizzes (
	id UUID PRIMARY KEY,
	job_posting_id UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	technology TEXT NOT NULL DEFAULT '',
	difficulty TEXT NOT NULL DEFAULT '',
	question_count INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS job_quiz_results (
	id UUID PRIMARY KEY,
	quiz_id UUID NOT NULL REFERENCES job_quizzes(id) ON DELETE CASCADE,
	candidate_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	score INT NOT NULL,
	max_score INT NOT NULL,
	completed_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quiz_results_candidate ON job_quiz_results(candidate_id);
CREATE INDEX IF NOT EXISTS idx_quizzes_posting ON job_quizzes(job_posting_id);
`)
	return err
}

func (r *QuizRepository) CreateQuiz(ctx context.Context, q quiz.JobQuiz) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_quizzes (id, job_posting_id, title, technology, difficulty, question_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, q.ID, q.JobPostingID, q.Title, q.Technology, q.Difficulty, q.QuestionCount, q.CreatedAt)
	return err
}

func (r *QuizRepository) ListQuizzes(ctx context.Context, limit, offset int) ([]quiz.JobQuiz, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, job_posting_id, title, technology, difficulty, question_count, created_at
FROM job_quizzes
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuizzes(rows)
}

func (r *QuizRepository) ListQuizzesByPosting(ctx context.Context, jobPostingID uuid.UUID) ([]quiz.JobQuiz, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, job_posting_id, title, technology, difficulty, question_count, created_at
FROM job_quizzes WHERE job_posting_id = $1
ORDER BY created_at
`, jobPostingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuizzes(rows)
}

func (r *QuizRepository) GetQuiz(ctx context.Context, id uuid.UUID) (quiz.JobQuiz, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, job_posting_id, title, technology, difficulty, question_count, created_at
FROM job_quizzes WHERE id = $1
`, id)
	return scanQuiz(row)
}

func (r *QuizRepository) SaveResult(ctx context.Context, res quiz.QuizResult) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	if res.CompletedAt.IsZero() {
		res.CompletedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO job_quiz_results (id, quiz_id, candidate_id, score, max_score, completed_at)
VALUES ($1, $2, $3, $4, $5, $6)
`, res.ID, res.QuizID, res.CandidateID, res.Score, res.MaxScore, res.CompletedAt)
	return err
}

func (r *QuizRepository) ListResultsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]quiz.QuizResult, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, quiz_id, candidate_id, score, max_score, completed_at
FROM job_quiz_results WHERE candidate_id = $1
ORDER BY completed_at DESC
`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []quiz.QuizResult
	for rows.Next() {
		var qr quiz.QuizResult
		var completed time.Time
		if err := rows.Scan(&qr.ID, &qr.QuizID, &qr.CandidateID, &qr.Score, &qr.MaxScore, &completed); err != nil {
			return nil, err
		}
		qr.CompletedAt = completed.UTC()
		res = append(res, qr)
	}
	return res, rows.Err()
}

func (r *QuizRepository) CompletedQuizIDs(ctx context.Context, candidateID uuid.UUID, quizIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT DISTINCT quiz_id FROM job_quiz_results
WHERE candidate_id = $1 AND quiz_id = ANY($2)
`, candidateID, quizIDs)
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

func scanQuiz(row pgx.Row) (quiz.JobQuiz, error) {
	var q quiz.JobQuiz
	var created time.Time
	if err := row.Scan(&q.ID, &q.JobPostingID, &q.Title, &q.Technology, &q.Difficulty, &q.QuestionCount, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quiz.JobQuiz{}, pgx.ErrNoRows
		}
		return quiz.JobQuiz{}, err
	}
	q.CreatedAt = created.UTC()
	return q, nil
}

func collectQuizzes(rows pgx.Rows) ([]quiz.JobQuiz, error) {
	var res []quiz.JobQuiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, q)
	}
	return res, rows.Err()
}
