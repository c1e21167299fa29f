package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/matching"
	"github.com/prepmatch/backend/pkg/portfolio"
)

type stubUsers struct {
	byID map[uuid.UUID]auth.User
}

func (s *stubUsers) Create(context.Context, auth.User) error { return errors.New("not implemented") }
func (s *stubUsers) GetByEmail(context.Context, string) (auth.User, error) {
	return auth.User{}, errors.New("not implemented")
}
func (s *stubUsers) UpdateProfile(context.Context, uuid.UUID, []string, []string, int) error {
	return errors.New("not implemented")
}
func (s *stubUsers) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return auth.User{}, pgx.ErrNoRows
	}
	return u, nil
}
func (s *stubUsers) ListCandidates(context.Context) ([]auth.User, error) {
	var out []auth.User
	for _, u := range s.byID {
		if u.Role == auth.RoleCandidate {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubPostings struct {
	byID map[uuid.UUID]jobposting.JobPosting
}

func (s *stubPostings) Create(context.Context, jobposting.JobPosting) error {
	return errors.New("not implemented")
}
func (s *stubPostings) ListByOwner(context.Context, uuid.UUID, int, int) ([]jobposting.JobPosting, error) {
	return nil, errors.New("not implemented")
}
func (s *stubPostings) ListActive(context.Context) ([]jobposting.JobPosting, error) {
	return nil, errors.New("not implemented")
}
func (s *stubPostings) SetActive(context.Context, uuid.UUID, uuid.UUID, bool) error {
	return errors.New("not implemented")
}
func (s *stubPostings) DeleteForOwner(context.Context, uuid.UUID, uuid.UUID) error {
	return errors.New("not implemented")
}
func (s *stubPostings) GetByID(_ context.Context, id uuid.UUID) (jobposting.JobPosting, error) {
	p, ok := s.byID[id]
	if !ok {
		return jobposting.JobPosting{}, pgx.ErrNoRows
	}
	return p, nil
}

type stubMatches struct {
	rows map[uuid.UUID][]matching.CandidateMatching
	err  error
}

func (s *stubMatches) ReplaceForPosting(context.Context, uuid.UUID, []matching.CandidateMatching) error {
	return errors.New("not implemented")
}
func (s *stubMatches) TopByPosting(_ context.Context, id uuid.UUID, limit int) ([]matching.CandidateMatching, error) {
	if s.err != nil {
		return nil, s.err
	}
	rows := append([]matching.CandidateMatching(nil), s.rows[id]...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].MatchScore > rows[j].MatchScore })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
func (s *stubMatches) CountByPosting(_ context.Context, id uuid.UUID) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return len(s.rows[id]), nil
}

type stubPortfolios struct{}

func (stubPortfolios) Upsert(context.Context, portfolio.Portfolio) error {
	return errors.New("not implemented")
}
func (stubPortfolios) ListByUser(context.Context, uuid.UUID) ([]portfolio.Portfolio, error) {
	return nil, errors.New("not implemented")
}
func (stubPortfolios) LatestByUsers(context.Context, []uuid.UUID) (map[uuid.UUID]portfolio.Portfolio, error) {
	return map[uuid.UUID]portfolio.Portfolio{}, nil
}

// identity middleware replaces the JWT layer in tests.
func asUser(id uuid.UUID, role auth.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", id.String())
		c.Locals("role", string(role))
		return c.Next()
	}
}

func cacheApp(matches *stubMatches) (*fiber.App, uuid.UUID, uuid.UUID) {
	ownerID := uuid.New()
	postingID := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]auth.User{
		ownerID: {ID: ownerID, Email: "hr@acme.fr", Role: auth.RoleEnterprise},
	}}
	postings := &stubPostings{byID: map[uuid.UUID]jobposting.JobPosting{
		postingID: {ID: postingID, OwnerID: ownerID, Title: "Dev Go", IsActive: true},
	}}
	reader := matching.NewReader(users, postings, matches, stubPortfolios{}, 50)
	h := NewMatchingHandler(reader, nil)

	app := fiber.New()
	app.Use(asUser(ownerID, auth.RoleEnterprise))
	app.Get("/api/matching/cache", h.Cache)
	return app, ownerID, postingID
}

func decodeError(t *testing.T, resp *http.Response) (success bool, msg string) {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Success, body.Error
}

func TestCacheMissingParamIs400(t *testing.T) {
	app, _, _ := cacheApp(&stubMatches{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/matching/cache", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	success, msg := decodeError(t, resp)
	assert.False(t, success)
	assert.Equal(t, "jobPostingId est requis", msg)
}

func TestCacheForeignPostingIs403(t *testing.T) {
	app, _, _ := cacheApp(&stubMatches{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/matching/cache?jobPostingId="+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	success, msg := decodeError(t, resp)
	assert.False(t, success)
	assert.Equal(t, "accès refusé à cette offre", msg)
}

func TestCacheCandidateRoleIs403(t *testing.T) {
	matches := &stubMatches{}
	candID := uuid.New()
	users := &stubUsers{byID: map[uuid.UUID]auth.User{
		candID: {ID: candID, Role: auth.RoleCandidate},
	}}
	postings := &stubPostings{byID: map[uuid.UUID]jobposting.JobPosting{}}
	reader := matching.NewReader(users, postings, matches, stubPortfolios{}, 50)
	h := NewMatchingHandler(reader, nil)

	app := fiber.New()
	app.Use(asUser(candID, auth.RoleCandidate))
	app.Get("/api/matching/cache", h.Cache)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/matching/cache?jobPostingId="+uuid.New().String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCacheSuccessPayload(t *testing.T) {
	matches := &stubMatches{rows: map[uuid.UUID][]matching.CandidateMatching{}}
	app, _, postingID := cacheApp(matches)

	candID := uuid.New()
	matches.rows[postingID] = []matching.CandidateMatching{
		{ID: uuid.New(), JobPostingID: postingID, CandidateID: candID, MatchScore: 87.5},
	}
	// The reader joins the candidate; make it resolvable.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/matching/cache?jobPostingId="+postingID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success   bool `json:"success"`
		Total     int  `json:"total"`
		FromCache bool `json:"fromCache"`
		Matches   []struct {
			MatchScore float32 `json:"matchScore"`
		} `json:"matches"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.True(t, body.FromCache)
	assert.Equal(t, 1, body.Total)
	// The candidate was deleted from the store, so the row is shaped out but
	// the total still reflects the cache.
	assert.Empty(t, body.Matches)
}

func TestCacheStorageFailureIs500WithDetail(t *testing.T) {
	matches := &stubMatches{err: errors.New("connexion refusée")}
	app, _, postingID := cacheApp(matches)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/matching/cache?jobPostingId="+postingID.String(), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	success, msg := decodeError(t, resp)
	assert.False(t, success)
	assert.Contains(t, msg, "connexion refusée")
}
