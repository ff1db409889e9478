package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     int    `envconfig:"APP_PORT" default:"8080"`
	Upstream UpstreamConfig
	Draft    DraftConfig
	Redis    RedisConfig
	DB       DBConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Wizard   WizardConfig
}

// placement backend configuration
type UpstreamConfig struct {
	BaseURL string        `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	Token   string        `envconfig:"UPSTREAM_TOKEN"`
	Timeout time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"30s"`
}

// draft store configuration
type DraftConfig struct {
	Backend string        `envconfig:"DRAFT_STORE" default:"memory"`
	TTL     time.Duration `envconfig:"DRAFT_TTL" default:"24h"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// database configuration, used only by the postgres draft backend
type DBConfig struct {
	DSN      string `envconfig:"DATABASE_URL"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
}

// JWT configuration
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// wizard flow configuration
type WizardConfig struct {
	SessionTTL      time.Duration `envconfig:"WIZARD_SESSION_TTL" default:"2h"`
	MaxAttachmentMB int           `envconfig:"MAX_ATTACHMENT_MB" default:"5"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	// envconfig's required tag only catches absent variables, not empty ones
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL must not be empty")
	}
	switch c.Draft.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when DRAFT_STORE=redis")
		}
	case "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required when DRAFT_STORE=postgres")
		}
		if c.DB.MaxConns < 1 {
			return fmt.Errorf("DB_MAX_CONNS must be at least 1")
		}
	default:
		return fmt.Errorf("invalid draft store backend: %s (must be one of: memory, redis, postgres)", c.Draft.Backend)
	}
	if c.Draft.TTL <= 0 {
		return fmt.Errorf("DRAFT_TTL must be positive")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if len(c.CORS.TrustedOrigins) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}
	if c.Wizard.SessionTTL <= 0 {
		return fmt.Errorf("WIZARD_SESSION_TTL must be positive")
	}
	if c.Wizard.MaxAttachmentMB < 1 {
		return fmt.Errorf("MAX_ATTACHMENT_MB must be at least 1")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// MaxAttachmentBytes converts the configured megabyte limit to bytes.
func (c *Config) MaxAttachmentBytes() int {
	return c.Wizard.MaxAttachmentMB << 20
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, Upstream.BaseURL=%s, Upstream.Timeout=%s, "+
		"Draft.Backend=%s, Draft.TTL=%s, Wizard.SessionTTL=%s, Wizard.MaxAttachmentMB=%d, CORS.Origins=%d}",
		c.Env, c.Port, c.Upstream.BaseURL, c.Upstream.Timeout,
		c.Draft.Backend, c.Draft.TTL, c.Wizard.SessionTTL, c.Wizard.MaxAttachmentMB, len(c.CORS.TrustedOrigins))
}
