package recommendation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/nlp"
	"github.com/prepmatch/backend/pkg/subscription"
)

// Generator is the scheduled refresh: it derives prioritized recommendations
// from each candidate's profile gaps against the active postings.
type Generator struct {
	users         auth.UserRepository
	postings      jobposting.Repository
	subscriptions subscription.Repository
	repo          Repository
	log           *zap.Logger
}

func NewGenerator(users auth.UserRepository, postings jobposting.Repository, subscriptions subscription.Repository, repo Repository, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		users:         users,
		postings:      postings,
		subscriptions: subscriptions,
		repo:          repo,
		log:           log,
	}
}

// RefreshAll regenerates recommendations for every candidate. Per-user
// failures are logged and counted; the aggregate error marks the run failed.
func (g *Generator) RefreshAll(ctx context.Context) (int, error) {
	candidates, err := g.users.ListCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list candidates: %w", err)
	}
	postings, err := g.postings.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active postings: %w", err)
	}

	var failed, written int
	for _, c := range candidates {
		recs, err := g.forCandidate(ctx, c, postings)
		if err == nil {
			err = g.repo.ReplaceForUser(ctx, c.ID, recs)
		}
		if err != nil {
			failed++
			g.log.Error("recommendation refresh failed for user",
				zap.String("user_id", c.ID.String()),
				zap.Error(err))
			continue
		}
		written += len(recs)
	}
	g.log.Info("recommendation run finished",
		zap.Int("users", len(candidates)),
		zap.Int("failed", failed),
		zap.Int("rows", written))
	if failed > 0 {
		return written, fmt.Errorf("recommendation run: %d of %d users failed", failed, len(candidates))
	}
	return written, nil
}

func (g *Generator) forCandidate(ctx context.Context, c auth.User, postings []jobposting.JobPosting) ([]Recommendation, error) {
	now := time.Now().UTC()
	var recs []Recommendation

	// Profile completeness comes first: matching cannot score an empty profile.
	if len(c.Skills) == 0 || len(c.Domains) == 0 {
		recs = append(recs, Recommendation{
			ID:        uuid.New(),
			UserID:    c.ID,
			Type:      TypeProfile,
			Title:     "Complétez votre profil",
			Content:   "Ajoutez vos compétences et domaines pour apparaître dans les correspondances des recruteurs.",
			Priority:  1,
			CreatedAt: now,
		})
	}

	// Most demanded skills the candidate lacks become quiz suggestions.
	owned := nlp.SkillSet(c.Skills)
	demand := map[string]int{}
	for _, p := range postings {
		for _, s := range p.Skills {
			norm := nlp.NormalizeSkill(s)
			if norm == "" {
				continue
			}
			if _, ok := owned[norm]; ok {
				continue
			}
			demand[norm]++
		}
	}
	best, bestCount := "", 0
	for skill, count := range demand {
		if count > bestCount {
			best, bestCount = skill, count
		}
	}
	if best != "" {
		recs = append(recs, Recommendation{
			ID:        uuid.New(),
			UserID:    c.ID,
			Type:      TypeQuiz,
			Title:     fmt.Sprintf("Entraînez-vous sur %s", best),
			Content:   fmt.Sprintf("%d offres actives demandent %s. Un quiz validé améliore votre score de correspondance.", bestCount, best),
			Priority:  2,
			CreatedAt: now,
		})
	}

	// Subscription nudge for users without an active plan.
	if g.subscriptions != nil {
		sub, err := g.subscriptions.GetByUser(ctx, c.ID)
		switch {
		case err != nil && errors.Is(err, pgx.ErrNoRows):
			sub = subscription.Subscription{}
		case err != nil:
			return nil, err
		}
		if sub.ID == uuid.Nil || !sub.Active(now) {
			recs = append(recs, Recommendation{
				ID:        uuid.New(),
				UserID:    c.ID,
				Type:      TypeSubscription,
				Title:     "Passez à une formule supérieure",
				Content:   "Un abonnement actif débloque des crédits quotidiens pour les entretiens simulés.",
				Priority:  3,
				CreatedAt: now,
			})
		}
	}

	return recs, nil
}
