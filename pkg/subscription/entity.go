package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tier is a subscription level determining the credit allotment.
type Tier string

const (
	TierFree    Tier = "FREE"
	TierPremium Tier = "PREMIUM"
	TierExpert  Tier = "EXPERT"
)

// Flat credit allotment per tier.
var tierCredits = map[Tier]int{
	TierFree:    1000,
	TierPremium: 50000,
	TierExpert:  150000,
}

// Credits returns the flat allotment of the tier, 0 for unknown tiers.
func (t Tier) Credits() int { return tierCredits[t] }

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	_, ok := tierCredits[t]
	return ok
}

// Window of a subscription period.
const periodDays = 30

// Subscription is the per-user tier with its validity window. One live row per
// user; renewals mutate it in place.
type Subscription struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Tier      Tier      `json:"tier"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the subscription covers the given instant.
func (s Subscription) Active(now time.Time) bool {
	return now.Before(s.EndDate)
}

// Repository is the persistence port. Apply performs the subscription upsert
// and the user credit update in one transaction.
type Repository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (Subscription, error)
	// Apply upserts the subscription row and sets the user's credit balance
	// atomically.
	Apply(ctx context.Context, sub Subscription, userCredits int) error
}
