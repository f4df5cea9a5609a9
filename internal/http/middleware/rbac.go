package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/domain"
)

// RBACMw enforces the per-route role policies behind a PolicyService.
type RBACMw struct {
	policySvc domain.PolicyService
}

// NewRBACMw creates new role-enforcement middleware
func NewRBACMw(policySvc domain.PolicyService) *RBACMw {
	return &RBACMw{policySvc: policySvc}
}

// Enforce checks the authenticated user's role against the policy table for
// the request path and method. Runs after RequireAuth.
func (mw *RBACMw) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortUnauthorized(c, "Not authorized. Please login to access this resource.")
			return
		}

		allowed, err := mw.policySvc.CheckPermission(
			"role_"+string(user.Role),
			c.Request.URL.Path,
			c.Request.Method,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Authorization check failed",
			})
			c.Abort()
			return
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "You do not have permission to perform this action",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
