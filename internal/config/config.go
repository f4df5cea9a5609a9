package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFile mirrors the optional config/config.yml overlay. Every field is
// optional; environment variables win.
type ConfigFile struct {
	App struct {
		Port    string `yaml:"port"`
		GinMode string `yaml:"gin_mode"`
	} `yaml:"app"`
	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	JWT struct {
		Secret     string `yaml:"secret"`
		Issuer     string `yaml:"issuer"`
		AccessTTL  string `yaml:"access_ttl"`
		RefreshTTL string `yaml:"refresh_ttl"`
	} `yaml:"jwt"`
	Tokens struct {
		VerifyTTL  string `yaml:"verify_ttl"`
		ResetTTL   string `yaml:"reset_ttl"`
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"tokens"`
	Mail struct {
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"mail"`
	ClientURL string `yaml:"client_url"`
}

type Config struct {
	Port          string
	GinMode       string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	JWTSecret     string
	JWTIssuer     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	VerifyTTL     time.Duration
	ResetTTL      time.Duration
	SessionTTL    time.Duration
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	ClientURL     string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func duration(k, def string) (time.Duration, error) {
	d, err := time.ParseDuration(env(k, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", k, err)
	}
	return d, nil
}

// Load builds the configuration from the environment. A .env file is loaded
// first if present, then config/config.yml seeds defaults for anything the
// environment leaves unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if file, err := loadConfigFile("config/config.yml"); err == nil {
		applyFileDefaults(file)
	}

	cfg := &Config{
		Port:          env("PORT", "5000"),
		GinMode:       env("GIN_MODE", "debug"),
		DSN:           env("DATABASE_DSN", ""),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: env("REDIS_PASSWORD", ""),
		JWTSecret:     env("JWT_SECRET", ""),
		JWTIssuer:     env("JWT_ISSUER", "timetablesvc"),
		SMTPHost:      env("SMTP_HOST", ""),
		SMTPPort:      587,
		SMTPUser:      env("SMTP_USER", ""),
		SMTPPassword:  env("SMTP_PASSWORD", ""),
		MailFrom:      env("MAIL_FROM", "Timetable Management System <no-reply@localhost>"),
		ClientURL:     env("CLIENT_URL", "http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.SMTPPort = port
	}

	var err error
	if cfg.AccessTTL, err = duration("JWT_ACCESS_TTL", "168h"); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = duration("JWT_REFRESH_TTL", "720h"); err != nil {
		return nil, err
	}
	if cfg.VerifyTTL, err = duration("VERIFY_TOKEN_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.ResetTTL, err = duration("RESET_TOKEN_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = duration("SESSION_TTL", "168h"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &file, nil
}

// applyFileDefaults pushes file values into the environment for any key the
// process environment does not already define.
func applyFileDefaults(file *ConfigFile) {
	set := func(k, v string) {
		if v != "" && os.Getenv(k) == "" {
			os.Setenv(k, v)
		}
	}
	set("PORT", file.App.Port)
	set("GIN_MODE", file.App.GinMode)
	set("DATABASE_DSN", file.Database.DSN)
	set("REDIS_ADDR", file.Redis.Addr)
	set("REDIS_PASSWORD", file.Redis.Password)
	if file.Redis.DB != 0 {
		set("REDIS_DB", strconv.Itoa(file.Redis.DB))
	}
	set("JWT_SECRET", file.JWT.Secret)
	set("JWT_ISSUER", file.JWT.Issuer)
	set("JWT_ACCESS_TTL", file.JWT.AccessTTL)
	set("JWT_REFRESH_TTL", file.JWT.RefreshTTL)
	set("VERIFY_TOKEN_TTL", file.Tokens.VerifyTTL)
	set("RESET_TOKEN_TTL", file.Tokens.ResetTTL)
	set("SESSION_TTL", file.Tokens.SessionTTL)
	set("SMTP_HOST", file.Mail.SMTPHost)
	if file.Mail.SMTPPort != 0 {
		set("SMTP_PORT", strconv.Itoa(file.Mail.SMTPPort))
	}
	set("SMTP_USER", file.Mail.Username)
	set("SMTP_PASSWORD", file.Mail.Password)
	set("MAIL_FROM", file.Mail.From)
	set("CLIENT_URL", file.ClientURL)
}
