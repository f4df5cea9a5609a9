package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/you/timetablesvc/domain"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) domain.TokenService {
	return NewJWTService("test-secret-key", "timetablesvc-test", accessTTL, refreshTTL)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 24*time.Hour)

	access, err := svc.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.Validate(access)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Kind != domain.TokenKindAccess {
		t.Errorf("expected access kind, got %s", claims.Kind)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("expected exp after iat")
	}
}

func TestJWTService_RefreshTokenKind(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 24*time.Hour)

	refresh, err := svc.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := svc.Validate(refresh)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.Kind != domain.TokenKindRefresh {
		t.Errorf("expected refresh kind, got %s", claims.Kind)
	}
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 24*time.Hour)

	first, _ := svc.GenerateAccessToken(1)
	second, _ := svc.GenerateAccessToken(1)
	if first == second {
		t.Error("expected distinct tokens for the same user")
	}
}

func TestJWTService_ValidateFailures(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 24*time.Hour)
	valid, _ := svc.GenerateAccessToken(1)

	tests := []struct {
		name        string
		token       string
		expectedErr error
	}{
		{
			name:        "garbage token",
			token:       "not.a.jwt",
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name:        "empty token",
			token:       "",
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name:        "tampered signature",
			token:       valid[:len(valid)-4] + "AAAA",
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name: "wrong signing key",
			token: func() string {
				other := NewJWTService("other-secret-key", "timetablesvc-test", time.Minute, time.Minute)
				tok, _ := other.GenerateAccessToken(1)
				return tok
			}(),
			expectedErr: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestJWTService_ExpiredToken(t *testing.T) {
	expired := newTestJWTService(-time.Minute, -time.Minute)
	token, err := expired.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	svc := newTestJWTService(15*time.Minute, 24*time.Hour)
	_, err = svc.Validate(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_TokenLooksLikeJWT(t *testing.T) {
	svc := newTestJWTService(15*time.Minute, 24*time.Hour)
	token, _ := svc.GenerateAccessToken(1)
	if strings.Count(token, ".") != 2 {
		t.Errorf("expected three-part JWT, got %q", token)
	}
}
