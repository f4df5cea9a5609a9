package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/config"
	"github.com/you/timetablesvc/internal/infrastructure/auth"
	"github.com/you/timetablesvc/internal/infrastructure/database"
	"github.com/you/timetablesvc/internal/infrastructure/notifications"
	"github.com/you/timetablesvc/internal/infrastructure/repositories"
	"github.com/you/timetablesvc/internal/services"
)

// Container holds all dependencies. Everything is constructed explicitly
// here; no package-level client handles exist anywhere in the tree.
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo   domain.UserRepository
	TokenCache domain.TokenCache

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	AuthSvc     domain.AuthService
	UserSvc     domain.UserService
	PolicySvc   domain.PolicyService

	Casbin *auth.CasbinService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	cas, err := auth.NewCasbinService(db)
	if err != nil {
		return nil, err
	}
	c.Casbin = cas

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.TokenCache = repositories.NewTokenCache(c.RedisClient)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.Mailer = notifications.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	c.PolicySvc = services.NewPolicyService(cas.E)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.TokenCache,
		c.PasswordSvc,
		c.TokenSvc,
		c.Mailer,
		services.AuthConfig{
			ClientURL:  cfg.ClientURL,
			VerifyTTL:  cfg.VerifyTTL,
			ResetTTL:   cfg.ResetTTL,
			SessionTTL: cfg.SessionTTL,
		},
	)
	c.UserSvc = services.NewUserService(c.UserRepo)

	return c, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
