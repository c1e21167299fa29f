// Package favorite implements the user's favorite toggles.
package favorite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/apperr"
)

// TargetType names what kind of object a favorite points at.
type TargetType string

const (
	TargetQuiz      TargetType = "QUIZ"
	TargetJob       TargetType = "JOB"
	TargetCandidate TargetType = "CANDIDATE"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	switch t {
	case TargetQuiz, TargetJob, TargetCandidate:
		return true
	}
	return false
}

// Favorite is one user's flag on one target.
type Favorite struct {
	UserID     uuid.UUID  `json:"userId"`
	TargetID   uuid.UUID  `json:"targetId"`
	TargetType TargetType `json:"targetType"`
	IsFavorite bool       `json:"isFavorite"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// Repository is the persistence port for favorites.
type Repository interface {
	// Toggle flips is_favorite for (user, target, type), inserting the row as
	// favorite=true on first call, and returns the new state.
	Toggle(ctx context.Context, userID, targetID uuid.UUID, targetType TargetType) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, targetType TargetType) ([]Favorite, error)
}

// UseCase exposes favorite operations.
type UseCase interface {
	Toggle(ctx context.Context, userID, targetID uuid.UUID, targetType TargetType) (bool, error)
	List(ctx context.Context, userID uuid.UUID, targetType TargetType) ([]Favorite, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Toggle(ctx context.Context, userID, targetID uuid.UUID, targetType TargetType) (bool, error) {
	if targetID == uuid.Nil {
		return false, apperr.New(apperr.Validation, "identifiant de cible requis")
	}
	if !targetType.Valid() {
		return false, apperr.New(apperr.Validation, "type de cible inconnu")
	}
	return s.repo.Toggle(ctx, userID, targetID, targetType)
}

func (s *service) List(ctx context.Context, userID uuid.UUID, targetType TargetType) ([]Favorite, error) {
	if !targetType.Valid() {
		return nil, apperr.New(apperr.Validation, "type de cible inconnu")
	}
	return s.repo.ListByUser(ctx, userID, targetType)
}
