package matching

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/apperr"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/portfolio"
)

func readerFixture() (*Reader, *fakeUsers, *fakePostings, *fakeMatches, *fakePortfolios, uuid.UUID, uuid.UUID) {
	ownerID := uuid.New()
	postingID := uuid.New()
	users := &fakeUsers{byID: map[uuid.UUID]auth.User{
		ownerID: {ID: ownerID, Email: "hr@acme.fr", Role: auth.RoleEnterprise},
	}}
	postings := &fakePostings{byID: map[uuid.UUID]jobposting.JobPosting{
		postingID: {ID: postingID, OwnerID: ownerID, Title: "Dev Go", IsActive: true},
	}}
	matches := newFakeMatches()
	portfolios := &fakePortfolios{latest: map[uuid.UUID]portfolio.Portfolio{}}
	r := NewReader(users, postings, matches, portfolios, 50)
	return r, users, postings, matches, portfolios, ownerID, postingID
}

func TestAuthorizeUnknownUser(t *testing.T) {
	r, _, _, _, _, _, postingID := readerFixture()
	_, err := r.Authorize(context.Background(), uuid.New(), postingID.String())
	if !apperr.IsKind(err, apperr.Unauthorized) {
		t.Fatalf("expected Unauthorized, got %v", err)
	}
}

func TestAuthorizeCandidateRoleRejected(t *testing.T) {
	r, users, _, _, _, _, postingID := readerFixture()
	candidateID := uuid.New()
	users.byID[candidateID] = auth.User{ID: candidateID, Role: auth.RoleCandidate}

	_, err := r.Authorize(context.Background(), candidateID, postingID.String())
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestAuthorizeMissingAndInvalidParam(t *testing.T) {
	r, _, _, _, _, ownerID, _ := readerFixture()

	_, err := r.Authorize(context.Background(), ownerID, "")
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("missing param: expected Validation, got %v", err)
	}
	_, err = r.Authorize(context.Background(), ownerID, "not-a-uuid")
	if !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("bad param: expected Validation, got %v", err)
	}
}

func TestAuthorizeForeignOrMissingPostingIsForbidden(t *testing.T) {
	r, users, postings, _, _, ownerID, _ := readerFixture()

	// Missing posting.
	if _, err := r.Authorize(context.Background(), ownerID, uuid.New().String()); !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("missing posting: expected Forbidden, got %v", err)
	}

	// Posting that belongs to another enterprise.
	otherID := uuid.New()
	users.byID[otherID] = auth.User{ID: otherID, Role: auth.RoleEnterprise}
	foreignPosting := uuid.New()
	postings.byID[foreignPosting] = jobposting.JobPosting{ID: foreignPosting, OwnerID: otherID}

	if _, err := r.Authorize(context.Background(), ownerID, foreignPosting.String()); !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("foreign posting: expected Forbidden, got %v", err)
	}
}

// Role check comes before parameter validation: an unauthorized caller with a
// bad parameter still gets the role error.
func TestAuthorizeRoleCheckedBeforeParam(t *testing.T) {
	r, users, _, _, _, _, _ := readerFixture()
	candidateID := uuid.New()
	users.byID[candidateID] = auth.User{ID: candidateID, Role: auth.RoleCandidate}

	_, err := r.Authorize(context.Background(), candidateID, "")
	if !apperr.IsKind(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden before Validation, got %v", err)
	}
}

func TestCachedMatchesSortedAndShaped(t *testing.T) {
	r, users, _, matches, portfolios, ownerID, postingID := readerFixture()

	lowID, highID := uuid.New(), uuid.New()
	users.byID[lowID] = auth.User{ID: lowID, Email: "low@x.fr", Role: auth.RoleCandidate}
	users.byID[highID] = auth.User{ID: highID, Email: "high@x.fr", Role: auth.RoleCandidate}
	matches.rows[postingID] = []CandidateMatching{
		{ID: uuid.New(), JobPostingID: postingID, CandidateID: lowID, MatchScore: 40},
		{ID: uuid.New(), JobPostingID: postingID, CandidateID: highID, MatchScore: 90},
	}
	portfolios.latest[highID] = portfolio.Portfolio{ID: uuid.New(), UserID: highID, Title: "Mes projets"}

	res, err := r.CachedMatches(context.Background(), ownerID, postingID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.FromCache {
		t.Fatal("fromCache must be true on the read path")
	}
	if res.Total != 2 || len(res.Matches) != 2 {
		t.Fatalf("expected 2 rows, got total=%d len=%d", res.Total, len(res.Matches))
	}
	if res.Matches[0].CandidateID != highID {
		t.Fatal("rows must be ordered by score descending")
	}
	if res.Matches[0].Portfolio == nil || res.Matches[0].Portfolio.Title != "Mes projets" {
		t.Fatal("top row should carry the candidate's latest portfolio")
	}
	if res.Matches[1].Portfolio != nil {
		t.Fatal("candidate without portfolio should have none attached")
	}
	if res.Matches[0].Candidate.Email != "high@x.fr" {
		t.Fatalf("candidate not joined: %+v", res.Matches[0].Candidate)
	}
}

func TestCachedMatchesSkipsDeletedCandidates(t *testing.T) {
	r, users, _, matches, _, ownerID, postingID := readerFixture()

	aliveID := uuid.New()
	users.byID[aliveID] = auth.User{ID: aliveID, Role: auth.RoleCandidate}
	matches.rows[postingID] = []CandidateMatching{
		{ID: uuid.New(), JobPostingID: postingID, CandidateID: aliveID, MatchScore: 70},
		{ID: uuid.New(), JobPostingID: postingID, CandidateID: uuid.New(), MatchScore: 60}, // deleted since generation
	}

	res, err := r.CachedMatches(context.Background(), ownerID, postingID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 1 || res.Matches[0].CandidateID != aliveID {
		t.Fatalf("deleted candidate should be skipped, got %d rows", len(res.Matches))
	}
}

func TestCachedMatchesHonorsLimit(t *testing.T) {
	ownerID := uuid.New()
	postingID := uuid.New()
	users := &fakeUsers{byID: map[uuid.UUID]auth.User{
		ownerID: {ID: ownerID, Role: auth.RoleEnterprise},
	}}
	postings := &fakePostings{byID: map[uuid.UUID]jobposting.JobPosting{
		postingID: {ID: postingID, OwnerID: ownerID},
	}}
	matches := newFakeMatches()
	for i := 0; i < 5; i++ {
		cid := uuid.New()
		users.byID[cid] = auth.User{ID: cid, Role: auth.RoleCandidate}
		matches.rows[postingID] = append(matches.rows[postingID], CandidateMatching{
			ID: uuid.New(), JobPostingID: postingID, CandidateID: cid, MatchScore: float32(i * 10),
		})
	}
	r := NewReader(users, postings, matches, &fakePortfolios{}, 3)

	res, err := r.CachedMatches(context.Background(), ownerID, postingID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Matches) != 3 {
		t.Fatalf("expected 3 rows after limit, got %d", len(res.Matches))
	}
	if res.Total != 5 {
		t.Fatalf("total must count all cached rows, got %d", res.Total)
	}
}
