package domain

import "time"

// Role is the closed set of roles known to the system.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return true
	}
	return false
}

// User represents an account in the system
type User struct {
	ID                   uint
	FirstName            string
	LastName             string
	Email                string
	PasswordHash         string
	Role                 Role
	Department           string
	PhoneNumber          string
	IsActive             bool
	IsEmailVerified      bool
	LastLogin            *time.Time
	PasswordResetToken   string
	PasswordResetExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Role       Role
	Department string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// TokenKind distinguishes access tokens from refresh tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint      `json:"user_id"`
	Kind      TokenKind `json:"kind"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// ProfileUpdate carries the self-service profile fields a user may change.
type ProfileUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Department  string
}

// ListFilter narrows and pages admin user listings.
type ListFilter struct {
	Page   int
	Limit  int
	Role   Role
	Search string
}

// UserPage is one page of an admin user listing.
type UserPage struct {
	Users []*User
	Page  int
	Limit int
	Total int64
	Pages int
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total    int64
	Active   int64
	Verified int64
	ByRole   map[Role]int64
}
