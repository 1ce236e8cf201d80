// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ucmanaged/teamsvoice/pkg/logging"
)

const (
	// DefaultLoginURL is the Entra ID token endpoint root.
	DefaultLoginURL = "https://login.microsoftonline.com"

	// defaultClientID is the well-known public client id used for the
	// resource-owner grant when no app registration is configured.
	defaultClientID = "1950a258-227b-4e31-a9cf-717495945fc2"

	loginTimeout = 30 * time.Second
)

// SessionConfig carries everything needed to establish an administrative
// session against a tenant.
type SessionConfig struct {
	// TenantDomain is the tenant's default routing domain
	// (e.g. "contoso.onmicrosoft.com").
	TenantDomain string

	// AdminDomain overrides TenantDomain for authentication when the
	// administrator account lives on a different domain than the tenant
	// itself. Empty means no override.
	AdminDomain string

	// Username and Password are the administrator credentials.
	Username string
	Password string

	// ClientID is the app registration to authenticate as. Empty selects
	// the well-known public client.
	ClientID string

	// LoginURL overrides the token endpoint root. Empty selects
	// DefaultLoginURL.
	LoginURL string

	// Scope is the token audience. Empty derives it from the admin API
	// base URL.
	Scope string
}

// Validate checks the required session fields.
func (c SessionConfig) Validate() error {
	if c.TenantDomain == "" {
		return errors.New("session config: tenant_domain is required")
	}
	if c.Username == "" {
		return errors.New("session config: username is required")
	}
	if c.Password == "" {
		return errors.New("session config: password is required")
	}
	return nil
}

// authDomain returns the domain the token request is issued against.
func (c SessionConfig) authDomain() string {
	if c.AdminDomain != "" {
		return c.AdminDomain
	}
	return c.TenantDomain
}

// Session is an authenticated administrative session. It is an explicit
// handle: callers construct one (Connect) or resume one (ResumeSession) and
// pass it into NewClient. Nothing in this package keeps ambient session
// state.
type Session struct {
	token     string
	tenantID  string
	domain    string
	expiresAt time.Time
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// TenantID returns the tenant id claim of the token, when present.
func (s *Session) TenantID() string { return s.tenantID }

// Domain returns the domain the session was established against.
func (s *Session) Domain() string { return s.domain }

// ExpiresAt returns the token expiry. Zero when the token carried no
// expiry claim.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Valid reports whether the session can still be used.
func (s *Session) Valid() bool {
	if s == nil || s.token == "" {
		return false
	}
	if s.expiresAt.IsZero() {
		return true
	}
	return time.Now().Before(s.expiresAt)
}

// tokenResponse is the relevant subset of the token endpoint's reply.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Connect establishes a new administrative session with the resource-owner
// password grant. Any failure is returned as a *SessionError; callers treat
// it as fatal.
func Connect(ctx context.Context, cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &SessionError{Domain: cfg.authDomain(), Wrapped: err}
	}

	loginURL := cfg.LoginURL
	if loginURL == "" {
		loginURL = DefaultLoginURL
	}
	scope := cfg.Scope
	if scope == "" {
		scope = DefaultBaseURL + "/.default"
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = defaultClientID
	}

	domain := cfg.authDomain()
	form := url.Values{
		"grant_type": {"password"},
		"client_id":  {clientID},
		"username":   {cfg.Username},
		"password":   {cfg.Password},
		"scope":      {scope},
	}

	endpoint := fmt.Sprintf("%s/%s/oauth2/v2.0/token", strings.TrimRight(loginURL, "/"), domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &SessionError{Domain: domain, Wrapped: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpClient := &http.Client{Timeout: loginTimeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &SessionError{Domain: domain, Wrapped: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SessionError{Domain: domain, Wrapped: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SessionError{
			Domain:  domain,
			Wrapped: fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, firstLine(body)),
		}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, &SessionError{Domain: domain, Wrapped: fmt.Errorf("decoding token response: %w", err)}
	}
	if tok.AccessToken == "" {
		return nil, &SessionError{Domain: domain, Wrapped: errors.New("token endpoint returned no access token")}
	}

	sess := newSession(tok.AccessToken, domain)
	if sess.expiresAt.IsZero() && tok.ExpiresIn > 0 {
		sess.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}

	logging.Debug().
		Str("domain", domain).
		Str("tenant_id", sess.tenantID).
		Time("expires_at", sess.expiresAt).
		Msg("administrative session established")

	return sess, nil
}

// ResumeSession wraps an existing bearer token in a session handle. The
// token is not validated against the service; an expired token fails here
// only when its own expiry claim says so.
func ResumeSession(token, domain string) (*Session, error) {
	if token == "" {
		return nil, &SessionError{Domain: domain, Wrapped: errors.New("empty token")}
	}
	sess := newSession(token, domain)
	if !sess.Valid() {
		return nil, &SessionError{Domain: domain, Wrapped: errors.New("token already expired")}
	}
	return sess, nil
}

// newSession builds a session from a raw token, pulling expiry and tenant
// id out of the JWT claims. The signature is not verified; the token is
// opaque to this tool and only the service can judge it. Tokens that do
// not parse as JWTs are kept as-is with no expiry.
func newSession(token, domain string) *Session {
	sess := &Session{token: token, domain: domain}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return sess
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return sess
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.expiresAt = exp.Time
	}
	if tid, ok := claims["tid"].(string); ok {
		sess.tenantID = tid
	}
	return sess
}

// firstLine trims an error body down to something an operator can read.
func firstLine(body []byte) string {
	line := strings.TrimSpace(string(body))
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if len(line) > 200 {
		line = line[:200] + "..."
	}
	return line
}
