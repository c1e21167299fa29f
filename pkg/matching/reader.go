package matching

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/portfolio"
)

const defaultCacheLimit = 50

// Reader serves pre-computed matches to enterprise users. Pure read: it never
// triggers a computation.
type Reader struct {
	users      auth.UserRepository
	postings   jobposting.Repository
	matches    Repository
	portfolios portfolio.Repository
	limit      int
}

func NewReader(users auth.UserRepository, postings jobposting.Repository, matches Repository, portfolios portfolio.Repository, limit int) *Reader {
	if limit <= 0 {
		limit = defaultCacheLimit
	}
	return &Reader{
		users:      users,
		postings:   postings,
		matches:    matches,
		portfolios: portfolios,
		limit:      limit,
	}
}

// Authorize runs the fixed validation chain for cache access: session user,
// role, parameter, ownership. It returns the posting id on success and is
// shared by the read and regenerate endpoints.
func (r *Reader) Authorize(ctx context.Context, actorID uuid.UUID, rawJobPostingID string) (uuid.UUID, error) {
	caller, err := r.users.GetByID(ctx, actorID)
	if err != nil {
		return uuid.Nil, apperr.New(apperr.Unauthorized, "utilisateur non authentifié")
	}
	if caller.Role != auth.RoleEnterprise {
		return uuid.Nil, apperr.New(apperr.Forbidden, "réservé aux comptes entreprise")
	}
	if rawJobPostingID == "" {
		return uuid.Nil, apperr.New(apperr.Validation, "jobPostingId est requis")
	}
	jobPostingID, err := uuid.Parse(rawJobPostingID)
	if err != nil {
		return uuid.Nil, apperr.New(apperr.Validation, "jobPostingId invalide")
	}
	posting, err := r.postings.GetByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// A missing posting is not distinguished from someone else's.
			return uuid.Nil, apperr.New(apperr.Forbidden, "accès refusé à cette offre")
		}
		return uuid.Nil, err
	}
	if posting.OwnerID != caller.ID {
		return uuid.Nil, apperr.New(apperr.Forbidden, "accès refusé à cette offre")
	}
	return jobPostingID, nil
}

// CachedMatches validates the caller then returns cached rows for a posting.
func (r *Reader) CachedMatches(ctx context.Context, actorID uuid.UUID, rawJobPostingID string) (CacheResult, error) {
	jobPostingID, err := r.Authorize(ctx, actorID, rawJobPostingID)
	if err != nil {
		return CacheResult{}, err
	}

	rows, err := r.matches.TopByPosting(ctx, jobPostingID, r.limit)
	if err != nil {
		return CacheResult{}, err
	}
	total, err := r.matches.CountByPosting(ctx, jobPostingID)
	if err != nil {
		return CacheResult{}, err
	}

	views, err := r.shape(ctx, rows)
	if err != nil {
		return CacheResult{}, err
	}
	return CacheResult{
		Matches:   views,
		Total:     total,
		FromCache: true,
		CachedAt:  time.Now().UTC(),
	}, nil
}

// shape joins each row with its candidate and the candidate's most recently
// updated portfolio. Candidates deleted since the last generation are skipped.
func (r *Reader) shape(ctx context.Context, rows []CandidateMatching) ([]MatchView, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.CandidateID)
	}
	portfolios := map[uuid.UUID]portfolio.Portfolio{}
	if r.portfolios != nil && len(ids) > 0 {
		var err error
		portfolios, err = r.portfolios.LatestByUsers(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]MatchView, 0, len(rows))
	for _, m := range rows {
		candidate, err := r.users.GetByID(ctx, m.CandidateID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, auth.ErrNotFound) {
				continue
			}
			return nil, err
		}
		view := MatchView{
			CandidateMatching: m,
			Candidate:         candidateView(candidate),
		}
		if p, ok := portfolios[m.CandidateID]; ok {
			view.Portfolio = &p
		}
		views = append(views, view)
	}
	return views, nil
}
