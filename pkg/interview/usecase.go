package interview

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/quiz"
)

// ScheduleRequest is the raw scheduling input. ScheduledAt stays a string so
// the date is validated before anything touches the store.
type ScheduleRequest struct {
	JobPostingID string
	CandidateID  string
	ScheduledAt  string
	MeetingURL   string
}

// UseCase covers interview scheduling and listing.
type UseCase interface {
	Schedule(ctx context.Context, enterpriseID uuid.UUID, req ScheduleRequest) (Meeting, error)
	ListForEnterprise(ctx context.Context, enterpriseID uuid.UUID, limit, offset int) ([]Meeting, error)
	ListForCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Meeting, error)
}

type service struct {
	repo     Repository
	postings jobposting.Repository
	quizzes  quiz.UseCase
	now      func() time.Time
}

func NewService(repo Repository, postings jobposting.Repository, quizzes quiz.UseCase) UseCase {
	return &service{repo: repo, postings: postings, quizzes: quizzes, now: time.Now}
}

// Schedule validates the date first: an unparsable scheduledAt fails before
// any read or write occurs.
func (s *service) Schedule(ctx context.Context, enterpriseID uuid.UUID, req ScheduleRequest) (Meeting, error) {
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return Meeting{}, apperr.Wrap(apperr.Validation, "format de date invalide pour scheduledAt", err)
	}
	if !scheduledAt.After(s.now()) {
		return Meeting{}, apperr.New(apperr.Validation, "l'entretien doit être planifié dans le futur")
	}
	jobPostingID, err := uuid.Parse(req.JobPostingID)
	if err != nil {
		return Meeting{}, apperr.New(apperr.Validation, "jobPostingId invalide")
	}
	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return Meeting{}, apperr.New(apperr.Validation, "candidateId invalide")
	}

	posting, err := s.postings.GetByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Meeting{}, apperr.New(apperr.NotFound, "offre introuvable")
		}
		return Meeting{}, err
	}
	if posting.OwnerID != enterpriseID {
		return Meeting{}, apperr.New(apperr.Forbidden, "cette offre appartient à une autre entreprise")
	}

	// Interviews are gated on the candidate having finished the posting's
	// technical tests.
	completion, err := s.quizzes.CompletionForPosting(ctx, candidateID, jobPostingID)
	if err != nil {
		return Meeting{}, err
	}
	if !completion.Done {
		return Meeting{}, apperr.New(apperr.Conflict, "le candidat n'a pas terminé les tests techniques")
	}

	m := Meeting{
		ID:           uuid.New(),
		JobPostingID: jobPostingID,
		EnterpriseID: enterpriseID,
		CandidateID:  candidateID,
		ScheduledAt:  scheduledAt.UTC(),
		MeetingURL:   req.MeetingURL,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Meeting{}, err
	}
	return m, nil
}

func (s *service) ListForEnterprise(ctx context.Context, enterpriseID uuid.UUID, limit, offset int) ([]Meeting, error) {
	return s.repo.ListByEnterprise(ctx, enterpriseID, limit, offset)
}

func (s *service) ListForCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]Meeting, error) {
	return s.repo.ListByCandidate(ctx, candidateID, limit, offset)
}
