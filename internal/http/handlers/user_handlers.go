package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/http/middleware"
)

// UserHandlers handles profile and admin user-management HTTP requests
type UserHandlers struct {
	userSvc domain.UserService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc}
}

// ProfileUpdateRequest represents a profile update
type ProfileUpdateRequest struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Department  string `json:"department,omitempty"`
}

func (r ProfileUpdateRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Department:  r.Department,
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		badRequest(c, "Invalid user ID")
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
}

// GetProfile returns the authenticated user's profile
func (h *UserHandlers) GetProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	profile, err := h.userSvc.GetByID(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c)
			return
		}
		log.Printf("get-profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": userSummary(profile)}})
}

// UpdateProfile updates the authenticated user's own profile
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	updated, err := h.userSvc.UpdateProfile(c.Request.Context(), user.ID, req.toDomain())
	if err != nil {
		log.Printf("update-profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"data":    gin.H{"user": userSummary(updated)},
	})
}

// ListUsers returns a paged user listing (admin only)
func (h *UserHandlers) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.userSvc.List(c.Request.Context(), domain.ListFilter{
		Page:   page,
		Limit:  limit,
		Role:   domain.Role(c.Query("role")),
		Search: c.Query("search"),
	})
	if err != nil {
		log.Printf("list-users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list users"})
		return
	}

	users := make([]gin.H, 0, len(result.Users))
	for _, user := range result.Users {
		users = append(users, userSummary(user))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"users": users,
			"pagination": gin.H{
				"page":  result.Page,
				"limit": result.Limit,
				"total": result.Total,
				"pages": result.Pages,
			},
		},
	})
}

// GetUser returns a single user by ID (admin only)
func (h *UserHandlers) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c)
			return
		}
		log.Printf("get-user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user": userSummary(user)}})
}

// UpdateUser updates a user's profile fields (admin only)
func (h *UserHandlers) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userSvc.AdminUpdate(c.Request.Context(), id, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c)
			return
		}
		log.Printf("update-user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
		"data":    gin.H{"user": userSummary(user)},
	})
}

// DeleteUser permanently removes a user (admin only)
func (h *UserHandlers) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c)
			return
		}
		log.Printf("delete-user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

func (h *UserHandlers) setActive(c *gin.Context, active bool, message string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.SetActive(c.Request.Context(), id, active)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			notFound(c)
			return
		}
		log.Printf("set-active: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    gin.H{"user": userSummary(user)},
	})
}

// ActivateUser re-enables a deactivated account (admin only)
func (h *UserHandlers) ActivateUser(c *gin.Context) {
	h.setActive(c, true, "User activated successfully")
}

// DeactivateUser disables an account (admin only)
func (h *UserHandlers) DeactivateUser(c *gin.Context) {
	h.setActive(c, false, "User deactivated successfully")
}

// GetStats returns aggregate account counts (admin only)
func (h *UserHandlers) GetStats(c *gin.Context) {
	stats, err := h.userSvc.Stats(c.Request.Context())
	if err != nil {
		log.Printf("user-stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to get user statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total":    stats.Total,
			"active":   stats.Active,
			"verified": stats.Verified,
			"byRole":   stats.ByRole,
		},
	})
}
