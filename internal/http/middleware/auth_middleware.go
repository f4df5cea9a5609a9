package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/infrastructure/repositories"
)

// Context keys set by the auth middleware.
const (
	CtxUserKey  = "user"
	CtxTokenKey = "access_token"
)

// AuthMW wraps the dependencies of the bearer-token middleware
type AuthMW struct {
	tokenSvc   domain.TokenService
	tokenCache domain.TokenCache
	userRepo   domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, tokenCache domain.TokenCache, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:   tokenSvc,
		tokenCache: tokenCache,
		userRepo:   userRepo,
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": message})
	c.Abort()
}

// RequireAuth resolves the bearer token to an authenticated user and attaches
// it to the request context.
func (mw *AuthMW) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Not authorized. Please login to access this resource.")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abortUnauthorized(c, "Not authorized. Please login to access this resource.")
			return
		}
		token := tokenParts[1]

		// Blacklist check comes before signature verification; a revoked
		// token is dead no matter how valid it looks.
		blacklistKey := repositories.BlacklistPrefix + repositories.HashSecret(token)
		if _, err := mw.tokenCache.Get(c.Request.Context(), blacklistKey); err == nil {
			abortUnauthorized(c, "Token is invalid. Please login again.")
			return
		}

		claims, err := mw.tokenSvc.Validate(token)
		if err != nil {
			switch err {
			case domain.ErrTokenExpired:
				abortUnauthorized(c, "Token expired. Please login again.")
			default:
				abortUnauthorized(c, "Invalid token. Please login again.")
			}
			return
		}

		if claims.Kind != domain.TokenKindAccess {
			abortUnauthorized(c, "Invalid token. Please login again.")
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			abortUnauthorized(c, "User not found. Please login again.")
			return
		}
		if !user.IsActive {
			abortUnauthorized(c, "Your account has been deactivated.")
			return
		}

		c.Set(CtxUserKey, user)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by RequireAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
