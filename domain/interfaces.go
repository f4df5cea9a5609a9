package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindByEmailWithPassword includes the credential hash, which the
	// default lookups exclude. Only credential-verification paths use it.
	FindByEmailWithPassword(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByIDWithPassword(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	Stats(ctx context.Context) (*UserStats, error)
}

// TokenCache defines the ephemeral single-use token store. Keys are always
// the hash of a random secret, never the secret itself.
type TokenCache interface {
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	// Get returns ErrTokenNotFound for absent keys; callers cannot
	// distinguish never-existed, expired, and already-consumed.
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// TokenService defines signed token operations
type TokenService interface {
	GenerateAccessToken(userID uint) (string, error)
	GenerateRefreshToken(userID uint) (string, error)
	Validate(token string) (*TokenClaims, error)
	AccessTTL() time.Duration
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// Mailer defines outbound account-lifecycle email delivery
type Mailer interface {
	SendVerificationEmail(to, firstName, verificationURL string) error
	SendPasswordResetEmail(to, firstName, resetURL string) error
	SendPasswordChangedEmail(to, firstName string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	VerifyEmail(ctx context.Context, secret string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, accessToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, secret, newPassword string) error
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// UserService defines profile and admin user management logic
type UserService interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*User, error)
	List(ctx context.Context, filter ListFilter) (*UserPage, error)
	AdminUpdate(ctx context.Context, id uint, update ProfileUpdate) (*User, error)
	Delete(ctx context.Context, id uint) error
	SetActive(ctx context.Context, id uint, active bool) (*User, error)
	Stats(ctx context.Context) (*UserStats, error)
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
