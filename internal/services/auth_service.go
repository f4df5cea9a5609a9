package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/infrastructure/repositories"
)

// AuthConfig carries the token lifetimes and link base used by the auth flows.
type AuthConfig struct {
	ClientURL  string
	VerifyTTL  time.Duration
	ResetTTL   time.Duration
	SessionTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	tokenCache  domain.TokenCache
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	mailer      domain.Mailer
	config      AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	tokenCache domain.TokenCache,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	mailer domain.Mailer,
	config AuthConfig,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		tokenCache:  tokenCache,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		mailer:      mailer,
		config:      config,
	}
}

// generateSecret creates the random secret embedded in emailed links. Only
// its hash is ever stored.
func (s *AuthServiceImpl) generateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// Register implements domain.AuthService. New accounts stay inactive and
// unverified until the emailed verification link is consumed; no tokens are
// issued here.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	if len(input.Password) < 6 {
		return nil, domain.ErrWeakPassword
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Admin accounts are provisioned out of band, never self-registered.
	role := input.Role
	if !role.Valid() || role == domain.RoleAdmin {
		role = domain.RoleStudent
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Department:   input.Department,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	secret, err := s.generateSecret()
	if err != nil {
		return nil, err
	}

	key := repositories.VerifyPrefix + repositories.HashSecret(secret)
	userID := strconv.FormatUint(uint64(user.ID), 10)
	if err := s.tokenCache.Put(ctx, key, userID, s.config.VerifyTTL); err != nil {
		return nil, fmt.Errorf("failed to store verification token: %w", err)
	}

	verificationURL := fmt.Sprintf("%s/verify-email/%s", s.config.ClientURL, secret)
	if err := s.mailer.SendVerificationEmail(user.Email, user.FirstName, verificationURL); err != nil {
		// Without the verification mail the account can never become
		// usable, so registration fails.
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// VerifyEmail implements domain.AuthService
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, secret string) error {
	key := repositories.VerifyPrefix + repositories.HashSecret(secret)
	value, err := s.tokenCache.Get(ctx, key)
	if err != nil {
		return domain.ErrTokenNotFound
	}

	userID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return domain.ErrTokenNotFound
	}

	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		return domain.ErrTokenNotFound
	}

	user.IsActive = true
	user.IsEmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}

	// Single use: the entry is gone the moment verification succeeds.
	if err := s.tokenCache.Delete(ctx, key); err != nil {
		log.Printf("verify-email: failed to delete consumed token: %v", err)
	}
	return nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	// Absent user and wrong password produce the same error so callers
	// cannot enumerate accounts.
	user, err := s.userRepo.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, domain.ErrAccountNotVerified
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Advisory session summary; nothing reads it on the hot path, but it
	// gives the admin surface a view of who is logged in.
	s.cacheSessionSummary(ctx, user)

	user.PasswordHash = ""
	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

func (s *AuthServiceImpl) cacheSessionSummary(ctx context.Context, user *domain.User) {
	key := repositories.SessionPrefix + strconv.FormatUint(uint64(user.ID), 10)
	summary := fmt.Sprintf(`{"marker":%q,"email":%q,"role":%q}`,
		uuid.NewString(), user.Email, user.Role)
	if err := s.tokenCache.Put(ctx, key, summary, s.config.SessionTTL); err != nil {
		log.Printf("login: failed to cache session summary: %v", err)
	}
}

// Logout implements domain.AuthService. The access token is blacklisted for
// exactly its remaining lifetime, so the blacklist entry never outlives the
// token it shadows.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokenSvc.Validate(accessToken)
	if err != nil {
		// Expired or forged tokens are already unusable.
		return nil
	}

	remaining := time.Until(time.Unix(claims.ExpiresAt, 0))
	if remaining > 0 {
		key := repositories.BlacklistPrefix + repositories.HashSecret(accessToken)
		if err := s.tokenCache.Put(ctx, key, "true", remaining); err != nil {
			return fmt.Errorf("failed to blacklist token: %w", err)
		}
	}

	sessionKey := repositories.SessionPrefix + strconv.FormatUint(uint64(claims.UserID), 10)
	if err := s.tokenCache.Delete(ctx, sessionKey); err != nil {
		log.Printf("logout: failed to drop session summary: %v", err)
	}
	return nil
}

// ForgotPassword implements domain.AuthService. The response is identical
// whether or not the email is registered.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil
	}

	secret, err := s.generateSecret()
	if err != nil {
		return err
	}
	hash := repositories.HashSecret(secret)

	// The durable copy on the user row backs up the cache entry.
	expires := time.Now().Add(s.config.ResetTTL)
	user.PasswordResetToken = hash
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	key := repositories.ResetPrefix + hash
	userID := strconv.FormatUint(uint64(user.ID), 10)
	if err := s.tokenCache.Put(ctx, key, userID, s.config.ResetTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.config.ClientURL, secret)
	return s.mailer.SendPasswordResetEmail(user.Email, user.FirstName, resetURL)
}

// ResetPassword implements domain.AuthService
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, secret, newPassword string) error {
	key := repositories.ResetPrefix + repositories.HashSecret(secret)
	value, err := s.tokenCache.Get(ctx, key)
	if err != nil {
		return domain.ErrTokenNotFound
	}

	if len(newPassword) < 6 {
		return domain.ErrWeakPassword
	}

	userID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return domain.ErrTokenNotFound
	}
	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		return domain.ErrTokenNotFound
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	user.PasswordResetToken = ""
	user.PasswordResetExpires = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.tokenCache.Delete(ctx, key); err != nil {
		log.Printf("reset-password: failed to delete consumed token: %v", err)
	}

	// The credential change has committed; a lost confirmation mail must
	// not roll it back.
	if err := s.mailer.SendPasswordChangedEmail(user.Email, user.FirstName); err != nil {
		log.Printf("reset-password: confirmation mail failed: %v", err)
	}
	return nil
}

// RefreshToken implements domain.AuthService. The old refresh token is
// blacklisted for its remaining lifetime so each one mints exactly one pair.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	blacklistKey := repositories.BlacklistPrefix + repositories.HashSecret(refreshToken)
	if _, err := s.tokenCache.Get(ctx, blacklistKey); err == nil {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.tokenSvc.Validate(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if claims.Kind != domain.TokenKindRefresh {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if remaining := time.Until(time.Unix(claims.ExpiresAt, 0)); remaining > 0 {
		if err := s.tokenCache.Put(ctx, blacklistKey, "true", remaining); err != nil {
			log.Printf("refresh: failed to blacklist rotated token: %v", err)
		}
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    int64(s.tokenSvc.AccessTTL().Seconds()),
	}, nil
}

// UpdatePassword implements domain.AuthService
func (s *AuthServiceImpl) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByIDWithPassword(ctx, userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if !s.passwordSvc.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return domain.ErrWeakPassword
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.mailer.SendPasswordChangedEmail(user.Email, user.FirstName); err != nil {
		log.Printf("update-password: confirmation mail failed: %v", err)
	}
	return nil
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
