package httpx

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/internal/http/handlers"
	"github.com/you/timetablesvc/internal/http/middleware"
)

// BuildRouter wires the HTTP surface: public auth routes, token-protected
// account routes, and role-gated user management.
func BuildRouter(
	ah *handlers.AuthHandlers,
	uh *handlers.UserHandlers,
	ph *handlers.PolicyHandlers,
	authMW *middleware.AuthMW,
	rbacMW *middleware.RBACMw,
	clientURL string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{clientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success":   true,
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.GET("/verify-email/:token", ah.VerifyEmail)
	auth.POST("/login", ah.Login)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.POST("/reset-password/:token", ah.ResetPassword)
	auth.POST("/refresh-token", ah.RefreshToken)

	authed := r.Group("/api/auth", authMW.RequireAuth())
	authed.POST("/logout", ah.Logout)
	authed.GET("/me", ah.Me)
	authed.PUT("/update-password", ah.UpdatePassword)

	users := r.Group("/api/users", authMW.RequireAuth(), rbacMW.Enforce())
	users.GET("/profile", uh.GetProfile)
	users.PUT("/profile", uh.UpdateProfile)
	users.GET("", uh.ListUsers)
	users.GET("/stats", uh.GetStats)
	users.GET("/:id", uh.GetUser)
	users.PUT("/:id", uh.UpdateUser)
	users.DELETE("/:id", uh.DeleteUser)
	users.PATCH("/:id/activate", uh.ActivateUser)
	users.PATCH("/:id/deactivate", uh.DeactivateUser)

	admin := r.Group("/api/admin", authMW.RequireAuth(), rbacMW.Enforce())
	admin.GET("/policies", ph.List)
	admin.POST("/policies", ph.Add)
	admin.DELETE("/policies", ph.Remove)

	return r
}
