package config

import (
	"errors"
	"os"
	"strings"
)

// AppConfig is the portal configuration, composed from the domain files in this package.
//
// Values are loaded from environment variables with github.com/caarlos0/env:
//   - auth.go: login mode, credential verifier and login delay
//   - database.go: Redis session store and the Postgres audit trail
//   - http.go: listener, cookies and shutdown
//   - observability.go: logging and metrics
type AppConfig struct {
	// IsDev reads templates and static files from disk.
	// Set DEV=true or NODE_ENV=development.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth AuthConfig

	Redis    RedisConfig `envPrefix:"REDIS_"`
	Postgres DBConfig    `envPrefix:"DB_"`
	Audit    AuditConfig

	HTTP HTTPConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to values loaded from env.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.Observability.Sanitize()
	c.detectDevMode()
}

// Validate reports settings that cannot work together. Call after Sanitize.
func (c *AppConfig) Validate() error {
	return errors.Join(c.Auth.Validate(), c.Redis.Validate())
}

// detectDevMode falls back to NODE_ENV, which frontend tooling commonly sets.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
