package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prepmatch/backend/pkg/apperr"
	"github.com/prepmatch/backend/pkg/jobposting"
)

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

type memApplications struct {
	created []Application
}

func (m *memApplications) Create(_ context.Context, a Application) error {
	m.created = append(m.created, a)
	return nil
}
func (m *memApplications) CandidateIDsByPosting(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, errors.New("not implemented")
}
func (m *memApplications) ListByCandidate(_ context.Context, id uuid.UUID, _, _ int) ([]Application, error) {
	var out []Application
	for _, a := range m.created {
		if a.CandidateID == id {
			out = append(out, a)
		}
	}
	return out, nil
}
func (m *memApplications) Exists(_ context.Context, postingID, candidateID uuid.UUID) (bool, error) {
	for _, a := range m.created {
		if a.JobPostingID == postingID && a.CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

func TestApply(t *testing.T) {
	activeID, inactiveID := uuid.New(), uuid.New()
	postings := &stubPostings{byID: map[uuid.UUID]jobposting.JobPosting{
		activeID:   {ID: activeID, IsActive: true},
		inactiveID: {ID: inactiveID, IsActive: false},
	}}
	repo := &memApplications{}
	svc := NewService(repo, postings)
	candidateID := uuid.New()

	a, err := svc.Apply(context.Background(), candidateID, activeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("new application should be pending, got %s", a.Status)
	}

	// Same candidate, same posting: conflict.
	if _, err := svc.Apply(context.Background(), candidateID, activeID); !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("duplicate application: expected Conflict, got %v", err)
	}

	// Inactive posting: conflict.
	if _, err := svc.Apply(context.Background(), candidateID, inactiveID); !apperr.IsKind(err, apperr.Conflict) {
		t.Fatalf("inactive posting: expected Conflict, got %v", err)
	}

	// Unknown posting: not found.
	if _, err := svc.Apply(context.Background(), candidateID, uuid.New()); !apperr.IsKind(err, apperr.NotFound) {
		t.Fatalf("unknown posting: expected NotFound, got %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("only the first application should persist, got %d", len(repo.created))
	}
}
