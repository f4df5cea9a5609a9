package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/internal/config"
	httpx "github.com/you/timetablesvc/internal/http"
	"github.com/you/timetablesvc/internal/http/handlers"
	"github.com/you/timetablesvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	gin.SetMode(cfg.GinMode)

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	userH := handlers.NewUserHandlers(c.UserSvc)
	policyH := handlers.NewPolicyHandlers(c.PolicySvc)

	authMW := middleware.NewAuthMW(c.TokenSvc, c.TokenCache, c.UserRepo)
	rbacMW := middleware.NewRBACMw(c.PolicySvc)

	r := httpx.BuildRouter(authH, userH, policyH, authMW, rbacMW, cfg.ClientURL)

	seedPolicies(c)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role table on first boot.
func seedPolicies(c *Container) {
	if len(c.PolicySvc.GetPolicies()) > 0 {
		return
	}
	defaults := [][3]string{
		{"role_admin", "/api/users", "GET"},
		{"role_admin", "/api/users/*", "(GET|POST|PUT|PATCH|DELETE)"},
		{"role_admin", "/api/admin/*", "(GET|POST|DELETE)"},
		{"role_lecturer", "/api/users/profile", "(GET|PUT)"},
		{"role_student", "/api/users/profile", "(GET|PUT)"},
	}
	for _, p := range defaults {
		if err := c.PolicySvc.AddPolicy(p[0], p[1], p[2]); err != nil {
			log.Printf("seed policy %v: %v", p, err)
		}
	}
	log.Println("seeded default role policies")
}
