package config

import (
	"errors"
	"strings"
)

// DBConfig contains PostgreSQL connection settings for the audit trail.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"penuel"`
	Password string `env:"PASSWORD" envDefault:"penuel"`
	Name     string `env:"NAME"     envDefault:"penuel"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // 'require' in production
	// RunMigrationsOnStart applies pending migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// AuditConfig controls the persistent login audit trail.
type AuditConfig struct {
	// Enabled records login, logout and self-heal events to Postgres.
	Enabled bool `env:"AUDIT_ENABLED" envDefault:"false"`
}

// RedisConfig contains the session store connection settings.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`

	// KeyPrefix namespaces session records; each session lives at <prefix><handle>.
	// Read from REDIS_SESSION_PREFIX.
	KeyPrefix string `env:"SESSION_PREFIX" envDefault:"session:"`
}

// Sanitize trims node lists and restores the default key prefix.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.SentinelNodes = trimAll(r.SentinelNodes)
	r.ClusterNodes = trimAll(r.ClusterNodes)
	if strings.TrimSpace(r.KeyPrefix) == "" {
		r.KeyPrefix = "session:"
	}
}

// Validate rejects topologies without addresses.
func (r *RedisConfig) Validate() error {
	switch {
	case r.UseCluster && r.UseSentinel:
		return errors.New("REDIS_USE_CLUSTER and REDIS_USE_SENTINEL are mutually exclusive")
	case r.UseSentinel && len(r.SentinelNodes) == 0:
		return errors.New("REDIS_SENTINEL_NODES is required when REDIS_USE_SENTINEL=true")
	case r.UseCluster && len(r.ClusterNodes) == 0 && r.URI == "":
		return errors.New("REDIS_CLUSTER_NODES or REDIS_URI is required when REDIS_USE_CLUSTER=true")
	case !r.UseCluster && !r.UseSentinel && r.URI == "":
		return errors.New("REDIS_URI is required")
	}
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
