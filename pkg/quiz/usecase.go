package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
)

// UseCase covers quiz listing, result submission and per-posting completion.
type UseCase interface {
	List(ctx context.Context, limit, offset int) ([]JobQuiz, error)
	SubmitResult(ctx context.Context, candidateID, quizID uuid.UUID, score, maxScore int) (QuizResult, error)
	// CompletionForPosting reports whether the candidate finished every quiz
	// of the posting, with counts for display.
	CompletionForPosting(ctx context.Context, candidateID, jobPostingID uuid.UUID) (Completion, error)
}

// Completion is the per-posting quiz completion state of one candidate.
type Completion struct {
	Total     int  `json:"total"`
	Completed int  `json:"completed"`
	Done      bool `json:"done"`
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context, limit, offset int) ([]JobQuiz, error) {
	return s.repo.ListQuizzes(ctx, limit, offset)
}

func (s *service) SubmitResult(ctx context.Context, candidateID, quizID uuid.UUID, score, maxScore int) (QuizResult, error) {
	if maxScore <= 0 {
		return QuizResult{}, apperr.New(apperr.Validation, "maxScore doit être positif")
	}
	if score < 0 || score > maxScore {
		return QuizResult{}, apperr.New(apperr.Validation, "score hors limites")
	}
	if _, err := s.repo.GetQuiz(ctx, quizID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return QuizResult{}, apperr.New(apperr.NotFound, "quiz introuvable")
		}
		return QuizResult{}, err
	}
	r := QuizResult{
		ID:          uuid.New(),
		QuizID:      quizID,
		CandidateID: candidateID,
		Score:       score,
		MaxScore:    maxScore,
		CompletedAt: time.Now().UTC(),
	}
	if err := s.repo.SaveResult(ctx, r); err != nil {
		return QuizResult{}, err
	}
	return r, nil
}

func (s *service) CompletionForPosting(ctx context.Context, candidateID, jobPostingID uuid.UUID) (Completion, error) {
	quizzes, err := s.repo.ListQuizzesByPosting(ctx, jobPostingID)
	if err != nil {
		return Completion{}, err
	}
	if len(quizzes) == 0 {
		return Completion{Done: true}, nil
	}
	ids := make([]uuid.UUID, 0, len(quizzes))
	for _, q := range quizzes {
		ids = append(ids, q.ID)
	}
	done, err := s.repo.CompletedQuizIDs(ctx, candidateID, ids)
	if err != nil {
		return Completion{}, err
	}
	return Completion{
		Total:     len(quizzes),
		Completed: len(done),
		Done:      len(done) == len(quizzes),
	}, nil
}
