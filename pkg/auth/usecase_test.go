package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	byEmail map[string]User
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{byEmail: map[string]User{}} }

func (m *memoryRepo) Create(_ context.Context, u User) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *memoryRepo) UpdateProfile(_ context.Context, id uuid.UUID, skills, domains []string, years int) error {
	for email, u := range m.byEmail {
		if u.ID == id {
			u.Skills, u.Domains, u.ExperienceYears = skills, domains, years
			m.byEmail[email] = u
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryRepo) ListCandidates(context.Context) ([]User, error) {
	var out []User
	for _, u := range m.byEmail {
		if u.Role == RoleCandidate {
			out = append(out, u)
		}
	}
	return out, nil
}

type staticTokens struct{}

func (staticTokens) Generate(_ context.Context, u User) (string, error) {
	return "token-" + u.ID.String(), nil
}

func TestRegisterDefaultsToCandidate(t *testing.T) {
	svc := NewAuthService(newMemoryRepo(), staticTokens{})

	res, err := svc.Register(context.Background(), "new@x.fr", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, RoleCandidate, res.User.Role)
	assert.NotEmpty(t, res.Token)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)
}

func TestRegisterRejectsAdminAndUnknownRoles(t *testing.T) {
	svc := NewAuthService(newMemoryRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "a@x.fr", "pw", RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "b@x.fr", "pw", Role("SUPERUSER"))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemoryRepo(), staticTokens{})

	_, err := svc.Register(context.Background(), "dup@x.fr", "pw", RoleEnterprise)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "dup@x.fr", "pw", RoleEnterprise)
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewAuthService(repo, staticTokens{})

	_, err := svc.Register(context.Background(), "login@x.fr", "correct", RoleCandidate)
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "login@x.fr", "correct")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = svc.Login(context.Background(), "login@x.fr", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@x.fr", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
