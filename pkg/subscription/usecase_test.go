package subscription

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepmatch/backend/pkg/apperr"
)

type fakeRepo struct {
	existing Subscription
	hasRow   bool

	applied        *Subscription
	appliedCredits int
}

func (f *fakeRepo) GetByUser(_ context.Context, _ uuid.UUID) (Subscription, error) {
	if !f.hasRow {
		return Subscription{}, pgx.ErrNoRows
	}
	return f.existing, nil
}

func (f *fakeRepo) Apply(_ context.Context, sub Subscription, credits int) error {
	f.applied = &sub
	f.appliedCredits = credits
	return nil
}

func fixedService(repo Repository, now time.Time) *service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

func TestSubscribeFreshWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{}
	svc := fixedService(repo, now)

	sub, err := svc.Subscribe(context.Background(), uuid.New(), TierPremium, "card")
	require.NoError(t, err)

	assert.Equal(t, TierPremium, sub.Tier)
	assert.Equal(t, 50000, sub.Credits)
	assert.Equal(t, now, sub.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 30), sub.EndDate)
	require.NotNil(t, repo.applied)
	assert.Equal(t, 50000, repo.appliedCredits)
}

func TestSubscribeExpiredRestartsWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	repo := &fakeRepo{
		hasRow: true,
		existing: Subscription{
			ID:      uuid.New(),
			UserID:  userID,
			Tier:    TierFree,
			EndDate: now.AddDate(0, 0, -5),
			Credits: 1000,
		},
	}
	svc := fixedService(repo, now)

	sub, err := svc.Subscribe(context.Background(), userID, TierFree, "card")
	require.NoError(t, err)

	assert.Equal(t, now, sub.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 30), sub.EndDate)
	assert.Equal(t, 1000, sub.Credits)
}

func TestSubscribeSameTierExtendsFromEndDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	endDate := now.AddDate(0, 0, 12)
	userID := uuid.New()
	repo := &fakeRepo{
		hasRow: true,
		existing: Subscription{
			ID:        uuid.New(),
			UserID:    userID,
			Tier:      TierPremium,
			StartDate: now.AddDate(0, 0, -18),
			EndDate:   endDate,
			Credits:   321, // partially spent
		},
	}
	svc := fixedService(repo, now)

	sub, err := svc.Subscribe(context.Background(), userID, TierPremium, "card")
	require.NoError(t, err)

	// The window extends from the current end date, not from now, and the
	// allotment is reset flat, not accumulated.
	assert.Equal(t, endDate.AddDate(0, 0, 30), sub.EndDate)
	assert.Equal(t, 50000, sub.Credits)
	assert.Equal(t, TierPremium, sub.Tier)
}

func TestSubscribeTierChangeSumsAllotments(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	repo := &fakeRepo{
		hasRow: true,
		existing: Subscription{
			ID:      uuid.New(),
			UserID:  userID,
			Tier:    TierPremium,
			EndDate: now.AddDate(0, 0, 20),
			Credits: 40000,
		},
	}
	svc := fixedService(repo, now)

	sub, err := svc.Subscribe(context.Background(), userID, TierExpert, "card")
	require.NoError(t, err)

	assert.Equal(t, TierExpert, sub.Tier)
	assert.Equal(t, now, sub.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 30), sub.EndDate)
	assert.Equal(t, 50000+150000, sub.Credits)
}

func TestSubscribeValidation(t *testing.T) {
	svc := fixedService(&fakeRepo{}, time.Now())

	_, err := svc.Subscribe(context.Background(), uuid.Nil, TierFree, "card")
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	_, err = svc.Subscribe(context.Background(), uuid.New(), Tier("PLATINUM"), "card")
	assert.True(t, apperr.IsKind(err, apperr.Validation))

	_, err = svc.Subscribe(context.Background(), uuid.New(), TierFree, "")
	assert.True(t, apperr.IsKind(err, apperr.Validation))
}

func TestCurrentNotFound(t *testing.T) {
	svc := NewService(&fakeRepo{})
	_, err := svc.Current(context.Background(), uuid.New())
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
