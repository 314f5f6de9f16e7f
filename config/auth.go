package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AuthMode selects the credential verifier.
type AuthMode string

const (
	// AuthModeDirectory checks credentials against the built-in staff directory.
	AuthModeDirectory AuthMode = "directory"
	// AuthModeOIDC checks credentials with an OIDC provider's password grant.
	AuthModeOIDC AuthMode = "oidc"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch AuthMode(v) {
	case AuthModeDirectory, AuthModeOIDC:
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: directory, oidc)", v)
	}
}

// OIDCConfig configures the OIDC verifier.
type OIDCConfig struct {
	ClientID        string `env:"CLIENT_ID"`
	ClientSecret    string `env:"CLIENT_SECRET"`
	Scope           string `env:"SCOPE"            envDefault:"openid profile email"`
	DiscoveryURL    string `env:"DISCOVERY_URL"`
	RoleClaim       string `env:"ROLE_CLAIM"       envDefault:"role"`
	DepartmentClaim string `env:"DEPARTMENT_CLAIM" envDefault:"department"`
	// Timeout bounds each call to the provider.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// AuthConfig groups authentication settings.
type AuthConfig struct {
	Mode AuthMode `env:"AUTH_MODE" envDefault:"directory"`

	// LoginDelay is waited before every credential check. Zero disables it.
	LoginDelay time.Duration `env:"AUTH_LOGIN_DELAY" envDefault:"600ms"`

	OIDC OIDCConfig `envPrefix:"OIDC_"`
}

// maxLoginDelay keeps a misconfigured delay from stalling every login.
const maxLoginDelay = 10 * time.Second

// Sanitize clamps the login delay and trims provider settings.
func (a *AuthConfig) Sanitize() {
	if a.Mode == "" {
		a.Mode = AuthModeDirectory
	}
	if a.LoginDelay < 0 {
		a.LoginDelay = 0
	}
	if a.LoginDelay > maxLoginDelay {
		a.LoginDelay = maxLoginDelay
	}
	a.OIDC.DiscoveryURL = strings.TrimSpace(a.OIDC.DiscoveryURL)
	a.OIDC.ClientID = strings.TrimSpace(a.OIDC.ClientID)
	if a.OIDC.Timeout <= 0 {
		a.OIDC.Timeout = 10 * time.Second
	}
}

// Validate checks that the selected mode has what it needs.
func (a *AuthConfig) Validate() error {
	if a.Mode != AuthModeOIDC {
		return nil
	}
	var errs []error
	if a.OIDC.DiscoveryURL == "" {
		errs = append(errs, errors.New("OIDC_DISCOVERY_URL is required when AUTH_MODE=oidc"))
	}
	if a.OIDC.ClientID == "" {
		errs = append(errs, errors.New("OIDC_CLIENT_ID is required when AUTH_MODE=oidc"))
	}
	return errors.Join(errs...)
}
