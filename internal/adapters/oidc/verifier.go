package oidc

// Package oidc provides a remote credential verifier backed by an OIDC identity provider.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.CredentialVerifier = (*Verifier)(nil)

// VerifierConfig holds configuration for the OIDC verifier.
type VerifierConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	// RoleClaim and DepartmentClaim name the ID token claims carrying the portal role
	// and department. Defaults: "role" and "department".
	RoleClaim       string
	DepartmentClaim string
	HTTPClient      *http.Client // Optional, defaults to a 30s-timeout client
	Logger          *slog.Logger
}

// Verifier implements ports.CredentialVerifier with the OAuth2 resource owner
// password grant. The returned ID token is verified and its claims mapped to a
// portal credential.
type Verifier struct {
	config          *oauth2.Config
	verifier        *gooidc.IDTokenVerifier
	httpClient      *http.Client
	roleClaim       string
	departmentClaim string
	logger          *slog.Logger
}

// NewVerifier discovers the issuer and builds a Verifier.
func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       scopes(cfg.Scope),
		Endpoint:     op.Endpoint(),
	}
	return newVerifier(cfg, oc, op.Verifier(&gooidc.Config{ClientID: cfg.ClientID}), httpClient), nil
}

func newVerifier(cfg VerifierConfig, oc *oauth2.Config, idv *gooidc.IDTokenVerifier, hc *http.Client) *Verifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{
		config:          oc,
		verifier:        idv,
		httpClient:      hc,
		roleClaim:       firstNonEmpty(cfg.RoleClaim, "role"),
		departmentClaim: firstNonEmpty(cfg.DepartmentClaim, "department"),
		logger:          logger,
	}
}

// scopes always includes openid since the ID token is required.
func scopes(raw string) []string {
	out := strings.Fields(raw)
	for _, s := range out {
		if s == gooidc.ScopeOpenID {
			return out
		}
	}
	return append([]string{gooidc.ScopeOpenID}, out...)
}

// Verify exchanges identity/secret for tokens. A rejection by the token endpoint,
// and an identity whose claims do not form a complete portal session, both map to
// ports.ErrInvalidCredentials.
func (v *Verifier) Verify(ctx context.Context, identity, secret string) (domainauth.Credential, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, v.httpClient)
	tok, err := v.config.PasswordCredentialsToken(ctx, identity, secret)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && isRejection(re) {
			return domainauth.Credential{}, ports.ErrInvalidCredentials
		}
		return domainauth.Credential{}, fmt.Errorf("password grant: %w", err)
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return domainauth.Credential{}, errors.New("no id_token in token response")
	}
	idTok, err := v.verifier.Verify(ctx, rawID)
	if err != nil {
		return domainauth.Credential{}, fmt.Errorf("verify id_token: %w", err)
	}

	claims := map[string]any{}
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return domainauth.Credential{}, fmt.Errorf("parse id_token claims: %w", claimsErr)
	}

	cred := v.mapClaims(identity, claims)
	probe := domainauth.Session{Authenticated: true, Role: cred.Role, Department: cred.Department, Subject: cred.Identity}
	if !probe.IsComplete() {
		v.logger.WarnContext(ctx, "identity provider claims do not map to a portal session",
			"subject", cred.Identity, "role", cred.Role, "department", cred.Department)
		return domainauth.Credential{}, ports.ErrInvalidCredentials
	}
	return cred, nil
}

func (v *Verifier) mapClaims(identity string, claims map[string]any) domainauth.Credential {
	str := func(k string) string {
		s, _ := claims[k].(string)
		return s
	}
	role, _ := domainauth.ParseRole(str(v.roleClaim))
	dept, _ := domainauth.ParseDepartment(str(v.departmentClaim))
	// Owners may omit the department claim.
	if role == domainauth.RoleOwner && dept == domainauth.DepartmentUnset {
		dept = domainauth.DepartmentExecutive
	}
	return domainauth.Credential{
		Identity:   domainauth.NormalizeIdentity(firstNonEmpty(str("email"), identity)),
		Role:       role,
		Department: dept,
	}
}

// isRejection reports whether the token endpoint refused the credentials
// rather than failing for transport or server reasons.
func isRejection(re *oauth2.RetrieveError) bool {
	if re.ErrorCode == "invalid_grant" {
		return true
	}
	if re.Response == nil {
		return false
	}
	return re.Response.StatusCode == http.StatusBadRequest || re.Response.StatusCode == http.StatusUnauthorized
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
