package matching

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/application"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/portfolio"
)

type fakeUsers struct {
	byID map[uuid.UUID]auth.User
}

func (f *fakeUsers) Create(context.Context, auth.User) error { return errors.New("not implemented") }
func (f *fakeUsers) GetByEmail(context.Context, string) (auth.User, error) {
	return auth.User{}, errors.New("not implemented")
}
func (f *fakeUsers) UpdateProfile(context.Context, uuid.UUID, []string, []string, int) error {
	return errors.New("not implemented")
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return auth.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (f *fakeUsers) ListCandidates(context.Context) ([]auth.User, error) {
	var out []auth.User
	for _, u := range f.byID {
		if u.Role == auth.RoleCandidate {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type fakePostings struct {
	byID map[uuid.UUID]jobposting.JobPosting
}

func (f *fakePostings) Create(context.Context, jobposting.JobPosting) error {
	return errors.New("not implemented")
}
func (f *fakePostings) ListByOwner(context.Context, uuid.UUID, int, int) ([]jobposting.JobPosting, error) {
	return nil, errors.New("not implemented")
}
func (f *fakePostings) SetActive(context.Context, uuid.UUID, uuid.UUID, bool) error {
	return errors.New("not implemented")
}
func (f *fakePostings) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("not implemented")
}

func (f *fakePostings) GetByID(_ context.Context, id uuid.UUID) (jobposting.JobPosting, error) {
	p, ok := f.byID[id]
	if !ok {
		return jobposting.JobPosting{}, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakePostings) ListActive(context.Context) ([]jobposting.JobPosting, error) {
	var out []jobposting.JobPosting
	for _, p := range f.byID {
		if p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// fakeMatches stores rows per posting and can be told to fail for one posting.
type fakeMatches struct {
	rows     map[uuid.UUID][]CandidateMatching
	failFor  uuid.UUID
	replaced int
}

func newFakeMatches() *fakeMatches {
	return &fakeMatches{rows: map[uuid.UUID][]CandidateMatching{}}
}

func (f *fakeMatches) ReplaceForPosting(_ context.Context, jobPostingID uuid.UUID, rows []CandidateMatching) error {
	if f.failFor == jobPostingID {
		return errors.New("storage down")
	}
	f.rows[jobPostingID] = rows
	f.replaced++
	return nil
}

func (f *fakeMatches) TopByPosting(_ context.Context, jobPostingID uuid.UUID, limit int) ([]CandidateMatching, error) {
	rows := append([]CandidateMatching(nil), f.rows[jobPostingID]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].MatchScore > rows[j].MatchScore })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *fakeMatches) CountByPosting(_ context.Context, jobPostingID uuid.UUID) (int, error) {
	return len(f.rows[jobPostingID]), nil
}

type fakeApplications struct {
	byPosting map[uuid.UUID][]uuid.UUID
}

func (f *fakeApplications) Create(context.Context, application.Application) error {
	return errors.New("not implemented")
}
func (f *fakeApplications) ListByCandidate(context.Context, uuid.UUID, int, int) ([]application.Application, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeApplications) Exists(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, errors.New("not implemented")
}

func (f *fakeApplications) CandidateIDsByPosting(_ context.Context, jobPostingID uuid.UUID) ([]uuid.UUID, error) {
	return f.byPosting[jobPostingID], nil
}

type fakePortfolios struct {
	latest map[uuid.UUID]portfolio.Portfolio
}

func (f *fakePortfolios) Upsert(context.Context, portfolio.Portfolio) error {
	return errors.New("not implemented")
}
func (f *fakePortfolios) ListByUser(context.Context, uuid.UUID) ([]portfolio.Portfolio, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePortfolios) LatestByUsers(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID]portfolio.Portfolio, error) {
	out := map[uuid.UUID]portfolio.Portfolio{}
	for _, id := range userIDs {
		if p, ok := f.latest[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}
