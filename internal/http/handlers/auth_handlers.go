package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	FirstName  string `json:"firstName" binding:"required"`
	LastName   string `json:"lastName" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest represents forgot-password request
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents reset-password request
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest represents authenticated password change request
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

func userSummary(user *domain.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"firstName":       user.FirstName,
		"lastName":        user.LastName,
		"email":           user.Email,
		"role":            user.Role,
		"department":      user.Department,
		"phoneNumber":     user.PhoneNumber,
		"isActive":        user.IsActive,
		"isEmailVerified": user.IsEmailVerified,
		"lastLogin":       user.LastLogin,
		"createdAt":       user.CreatedAt,
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		Role:       domain.Role(req.Role),
		Department: req.Department,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			badRequest(c, "User with this email already exists")
		case errors.Is(err, domain.ErrWeakPassword):
			badRequest(c, "Password must be at least 6 characters")
		default:
			log.Printf("register: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful. Please check your email to verify your account.",
		"data":    gin.H{"user": userSummary(user)},
	})
}

// VerifyEmail handles the emailed verification link
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	if err := h.authSvc.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			badRequest(c, "Invalid or expired verification token")
			return
		}
		log.Printf("verify-email: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Email verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified successfully. You can now login.",
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		case errors.Is(err, domain.ErrAccountNotVerified):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please verify your email before logging in"})
		case errors.Is(err, domain.ErrAccountDeactivated):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Your account has been deactivated. Please contact support."})
		default:
			log.Printf("login: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"accessToken":  result.AccessToken,
			"refreshToken": result.RefreshToken,
			"tokenType":    "Bearer",
			"expiresIn":    result.ExpiresIn,
			"user":         userSummary(result.User),
		},
	})
}

// Logout handles user logout. The failure path is deliberately silent: a
// logout that could not blacklist still responds 200 and the token simply
// ages out.
func (h *AuthHandlers) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxTokenKey)
	if err := h.authSvc.Logout(c.Request.Context(), token); err != nil {
		log.Printf("logout: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logout successful"})
}

// ForgotPassword handles password reset requests. The response never reveals
// whether the email is registered.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		log.Printf("forgot-password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send reset email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If an account with that email exists, a password reset link has been sent.",
	})
}

// ResetPassword handles the emailed reset link
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.authSvc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenNotFound):
			badRequest(c, "Invalid or expired reset token")
		case errors.Is(err, domain.ErrWeakPassword):
			badRequest(c, "Password must be at least 6 characters")
		default:
			log.Printf("reset-password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Password reset failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successful. You can now login with your new password.",
	})
}

// RefreshToken handles token rotation
func (h *AuthHandlers) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUserInactive):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired refresh token"})
		default:
			log.Printf("refresh-token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token refreshed",
		"data": gin.H{
			"accessToken":  result.AccessToken,
			"refreshToken": result.RefreshToken,
			"tokenType":    "Bearer",
			"expiresIn":    result.ExpiresIn,
		},
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized. Please login to access this resource."})
		return
	}

	profile, err := h.authSvc.GetUserProfile(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("me: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get user data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": userSummary(profile)},
	})
}

// UpdatePassword handles an authenticated password change
func (h *AuthHandlers) UpdatePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authorized. Please login to access this resource."})
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	err := h.authSvc.UpdatePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Current password is incorrect"})
		case errors.Is(err, domain.ErrWeakPassword):
			badRequest(c, "Password must be at least 6 characters")
		default:
			log.Printf("update-password: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}
