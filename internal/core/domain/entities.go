package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleInvestor Role = "investor"
)

// Valid reports whether the role is one the system knows
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleInvestor
}

// User represents a user in the domain layer
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string // Hashed
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken represents a stored refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
