package subscription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
)

// UseCase reconciles a requested tier against any existing subscription.
type UseCase interface {
	Subscribe(ctx context.Context, userID uuid.UUID, tier Tier, paymentMethod string) (Subscription, error)
	Current(ctx context.Context, userID uuid.UUID) (Subscription, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

// Subscribe applies the transition rules, evaluated against now:
//   - no subscription, or the existing one expired: fresh 30-day window with
//     the tier's flat allotment;
//   - active and same tier: endDate extended by 30 days from its current
//     endDate, credits reset to the flat allotment;
//   - active and different tier: new 30-day window from now, credits set to
//     the sum of old and new allotments.
//
// The subscription row and the user's credit balance are written in one
// transaction by the repository.
func (s *service) Subscribe(ctx context.Context, userID uuid.UUID, tier Tier, paymentMethod string) (Subscription, error) {
	if userID == uuid.Nil {
		return Subscription{}, apperr.New(apperr.Validation, "userId est requis")
	}
	if !tier.Valid() {
		return Subscription{}, apperr.New(apperr.Validation, "formule d'abonnement inconnue")
	}
	if paymentMethod == "" {
		return Subscription{}, apperr.New(apperr.Validation, "moyen de paiement requis")
	}

	now := s.now().UTC()

	existing, err := s.repo.GetByUser(ctx, userID)
	switch {
	case err != nil && errors.Is(err, pgx.ErrNoRows):
		existing = Subscription{}
	case err != nil:
		return Subscription{}, err
	}

	var next Subscription
	switch {
	case existing.ID == uuid.Nil || !existing.Active(now):
		next = Subscription{
			ID:        uuid.New(),
			UserID:    userID,
			Tier:      tier,
			StartDate: now,
			EndDate:   now.AddDate(0, 0, periodDays),
			Credits:   tier.Credits(),
			CreatedAt: now,
		}
	case existing.Tier == tier:
		// Extension: push the window from the current endDate, credits are
		// reset to the flat allotment, not accumulated.
		next = existing
		next.EndDate = existing.EndDate.AddDate(0, 0, periodDays)
		next.Credits = tier.Credits()
	default:
		// Tier change mid-period: remaining value is compensated by summing
		// both allotments over a fresh window.
		next = existing
		next.Tier = tier
		next.StartDate = now
		next.EndDate = now.AddDate(0, 0, periodDays)
		next.Credits = existing.Tier.Credits() + tier.Credits()
	}

	if err := s.repo.Apply(ctx, next, next.Credits); err != nil {
		return Subscription{}, err
	}
	return next, nil
}

func (s *service) Current(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	sub, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Subscription{}, apperr.New(apperr.NotFound, "aucun abonnement")
		}
		return Subscription{}, err
	}
	return sub, nil
}
