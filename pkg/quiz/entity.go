package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobQuiz is a technical test attached to a job posting.
type JobQuiz struct {
	ID            uuid.UUID `json:"id"`
	JobPostingID  uuid.UUID `json:"jobPostingId"`
	Title         string    `json:"title"`
	Technology    string    `json:"technology"`
	Difficulty    string    `json:"difficulty"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// QuizResult records one candidate's outcome on a quiz.
type QuizResult struct {
	ID          uuid.UUID `json:"id"`
	QuizID      uuid.UUID `json:"quizId"`
	CandidateID uuid.UUID `json:"candidateId"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"maxScore"`
	CompletedAt time.Time `json:"completedAt"`
}

// Repository is the persistence port for quizzes and results.
type Repository interface {
	CreateQuiz(ctx context.Context, q JobQuiz) error
	ListQuizzes(ctx context.Context, limit, offset int) ([]JobQuiz, error)
	ListQuizzesByPosting(ctx context.Context, jobPostingID uuid.UUID) ([]JobQuiz, error)
	GetQuiz(ctx context.Context, id uuid.UUID) (JobQuiz, error)
	SaveResult(ctx context.Context, r QuizResult) error
	ListResultsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]QuizResult, error)
	// CompletedQuizIDs returns which of the given quizzes the candidate has
	// at least one result for.
	CompletedQuizIDs(ctx context.Context, candidateID uuid.UUID, quizIDs []uuid.UUID) ([]uuid.UUID, error)
}
