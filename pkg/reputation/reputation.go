// Package reputation derives level, experience and rank from quiz results.
package reputation

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/quiz"
)

// Experience needed per level.
const experiencePerLevel = 1000

// Reputation is the derived standing of one user.
type Reputation struct {
	UserID     uuid.UUID `json:"userId"`
	Experience int       `json:"experience"`
	Level      int       `json:"level"`
	Rank       string    `json:"rank"`
}

// LeaderboardEntry is a reputation row with its position.
type LeaderboardEntry struct {
	Position int `json:"position"`
	Reputation
}

// Compute aggregates quiz scores into experience, then level and rank.
func Compute(userID uuid.UUID, results []quiz.QuizResult) Reputation {
	exp := 0
	for _, r := range results {
		if r.Score > 0 {
			exp += r.Score
		}
	}
	level := 1 + exp/experiencePerLevel
	return Reputation{
		UserID:     userID,
		Experience: exp,
		Level:      level,
		Rank:       rankForLevel(level),
	}
}

func rankForLevel(level int) string {
	switch {
	case level >= 50:
		return "Diamant"
	case level >= 25:
		return "Platine"
	case level >= 10:
		return "Or"
	case level >= 5:
		return "Argent"
	default:
		return "Bronze"
	}
}

// UseCase exposes reputation reads.
type UseCase interface {
	ForUser(ctx context.Context, userID uuid.UUID) (Reputation, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// ResultsSource is the slice of the quiz port reputation needs.
type ResultsSource interface {
	ListResultsByCandidate(ctx context.Context, candidateID uuid.UUID) ([]quiz.QuizResult, error)
}

// CandidateSource lists candidate ids for the leaderboard.
type CandidateSource interface {
	CandidateIDs(ctx context.Context) ([]uuid.UUID, error)
}

type service struct {
	results    ResultsSource
	candidates CandidateSource
}

func NewService(results ResultsSource, candidates CandidateSource) UseCase {
	return &service{results: results, candidates: candidates}
}

func (s *service) ForUser(ctx context.Context, userID uuid.UUID) (Reputation, error) {
	results, err := s.results.ListResultsByCandidate(ctx, userID)
	if err != nil {
		return Reputation{}, err
	}
	return Compute(userID, results), nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	ids, err := s.candidates.CandidateIDs(ctx)
	if err != nil {
		return nil, err
	}
	reps := make([]Reputation, 0, len(ids))
	for _, id := range ids {
		results, err := s.results.ListResultsByCandidate(ctx, id)
		if err != nil {
			return nil, err
		}
		reps = append(reps, Compute(id, results))
	}
	sort.SliceStable(reps, func(i, j int) bool { return reps[i].Experience > reps[j].Experience })
	if len(reps) > limit {
		reps = reps[:limit]
	}
	entries := make([]LeaderboardEntry, 0, len(reps))
	for i, r := range reps {
		entries = append(entries, LeaderboardEntry{Position: i + 1, Reputation: r})
	}
	return entries, nil
}
