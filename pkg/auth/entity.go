package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role determines which side of the platform a user acts on.
type Role string

const (
	RoleCandidate  Role = "CANDIDATE"
	RoleEnterprise Role = "ENTERPRISE"
	RoleAdmin      Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleEnterprise, RoleAdmin:
		return true
	}
	return false
}

// User is a domain entity representing a platform user. Candidates carry the
// profile fields the matching writer scores against; enterprises own job
// postings. Credits are granted by subscriptions and spent on platform features.
type User struct {
	ID              uuid.UUID
	Email           string
	PasswordHash    string
	Role            Role
	Skills          []string
	Domains         []string
	ExperienceYears int
	Credits         int
	CreatedAt       time.Time
}
