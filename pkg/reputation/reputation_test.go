package reputation

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/quiz"
)

func results(scores ...int) []quiz.QuizResult {
	out := make([]quiz.QuizResult, 0, len(scores))
	for _, s := range scores {
		out = append(out, quiz.QuizResult{Score: s})
	}
	return out
}

func TestComputeLevelsAndRanks(t *testing.T) {
	cases := []struct {
		name      string
		scores    []int
		wantExp   int
		wantLevel int
		wantRank  string
	}{
		{"no results", nil, 0, 1, "Bronze"},
		{"below one level", []int{400, 500}, 900, 1, "Bronze"},
		{"exactly one level", []int{1000}, 1000, 2, "Bronze"},
		{"silver threshold", []int{4000}, 4000, 5, "Argent"},
		{"gold threshold", []int{9000}, 9000, 10, "Or"},
		{"platinum threshold", []int{24000}, 24000, 25, "Platine"},
		{"diamond threshold", []int{49000}, 49000, 50, "Diamant"},
		{"negative scores ignored", []int{-50, 100}, 100, 1, "Bronze"},
	}
	for _, tc := range cases {
		r := Compute(uuid.Nil, results(tc.scores...))
		if r.Experience != tc.wantExp || r.Level != tc.wantLevel || r.Rank != tc.wantRank {
			t.Fatalf("%s: got exp=%d level=%d rank=%s, want exp=%d level=%d rank=%s",
				tc.name, r.Experience, r.Level, r.Rank, tc.wantExp, tc.wantLevel, tc.wantRank)
		}
	}
}

type fakeResults struct {
	byUser map[uuid.UUID][]quiz.QuizResult
}

func (f *fakeResults) ListResultsByCandidate(_ context.Context, id uuid.UUID) ([]quiz.QuizResult, error) {
	return f.byUser[id], nil
}

type fakeCandidates struct {
	ids []uuid.UUID
}

func (f *fakeCandidates) CandidateIDs(context.Context) ([]uuid.UUID, error) { return f.ids, nil }

func TestLeaderboardOrderingAndTruncation(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	svc := NewService(
		&fakeResults{byUser: map[uuid.UUID][]quiz.QuizResult{
			a: results(500),
			b: results(2000),
			c: results(900),
		}},
		&fakeCandidates{ids: []uuid.UUID{a, b, c}},
	)

	entries, err := svc.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != b || entries[0].Position != 1 {
		t.Fatalf("highest experience must rank first: %+v", entries[0])
	}
	if entries[1].UserID != c || entries[1].Position != 2 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}
