package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prepmatch/backend/pkg/apperr"
)

type key struct {
	user, target uuid.UUID
	kind         TargetType
}

// fakeRepo mimics the flip-on-conflict behavior of the SQL implementation.
type fakeRepo struct {
	state map[key]bool
}

func (f *fakeRepo) Toggle(_ context.Context, userID, targetID uuid.UUID, targetType TargetType) (bool, error) {
	if f.state == nil {
		f.state = map[key]bool{}
	}
	k := key{userID, targetID, targetType}
	if _, ok := f.state[k]; !ok {
		f.state[k] = true
		return true, nil
	}
	f.state[k] = !f.state[k]
	return f.state[k], nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID, targetType TargetType) ([]Favorite, error) {
	var out []Favorite
	for k, v := range f.state {
		if k.user == userID && k.kind == targetType && v {
			out = append(out, Favorite{UserID: k.user, TargetID: k.target, TargetType: k.kind, IsFavorite: v, UpdatedAt: time.Now()})
		}
	}
	return out, nil
}

func TestToggleFlipsState(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID, targetID := uuid.New(), uuid.New()

	on, err := svc.Toggle(context.Background(), userID, targetID, TargetQuiz)
	if err != nil || !on {
		t.Fatalf("first toggle should favorite: on=%v err=%v", on, err)
	}
	off, err := svc.Toggle(context.Background(), userID, targetID, TargetQuiz)
	if err != nil || off {
		t.Fatalf("second toggle should unfavorite: on=%v err=%v", off, err)
	}
	on, err = svc.Toggle(context.Background(), userID, targetID, TargetQuiz)
	if err != nil || !on {
		t.Fatalf("third toggle should favorite again: on=%v err=%v", on, err)
	}
}

func TestToggleValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	if _, err := svc.Toggle(context.Background(), uuid.New(), uuid.Nil, TargetQuiz); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("nil target: expected Validation, got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), uuid.New(), uuid.New(), TargetType("POSTING")); !apperr.IsKind(err, apperr.Validation) {
		t.Fatalf("unknown type: expected Validation, got %v", err)
	}
}

func TestListFiltersByType(t *testing.T) {
	svc := NewService(&fakeRepo{})
	userID := uuid.New()

	if _, err := svc.Toggle(context.Background(), userID, uuid.New(), TargetQuiz); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Toggle(context.Background(), userID, uuid.New(), TargetJob); err != nil {
		t.Fatal(err)
	}

	quizzes, err := svc.List(context.Background(), userID, TargetQuiz)
	if err != nil {
		t.Fatal(err)
	}
	if len(quizzes) != 1 || quizzes[0].TargetType != TargetQuiz {
		t.Fatalf("expected one quiz favorite, got %+v", quizzes)
	}
}
