// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package teams is a client for the Teams administrative configuration
// service, covering the Enterprise Voice surface this tool backs up and
// restores: dial plans, voice routes, voice routing policies, the global
// PSTN usage list, translation rules, and PSTN gateway rule attachments.
//
// The service is a collaborator, not something this package reimplements:
// all validation of field combinations happens server side. The client adds
// only session handling, request throttling, and error mapping.
package teams

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/ucmanaged/teamsvoice/pkg/logging"
)

// DefaultBaseURL is the administrative API root.
const DefaultBaseURL = "https://api.interfaces.records.teams.microsoft.com"

// -----------------------------------------------------------------------------
// Admin interface
// -----------------------------------------------------------------------------

// Admin is the full Enterprise Voice administrative surface. *Client
// implements it against the live service; Fake implements it in memory for
// tests. Backup and restore code depends on this interface, never on the
// concrete client.
type Admin interface {
	DialPlanAdmin
	VoiceRouteAdmin
	VoiceRoutingPolicyAdmin
	PstnUsageAdmin
	TranslationRuleAdmin
	PstnGatewayAdmin
}

// TenantAdmin is the tenant-wide read surface used by full backups.
type TenantAdmin interface {
	// Tenant returns the tenant the session is bound to.
	Tenant(ctx context.Context) (*Tenant, error)

	// Query runs one named configuration query and returns its raw JSON
	// reply. Used by the full-tenant backup, which archives query output
	// verbatim.
	Query(ctx context.Context, resource string) (json.RawMessage, error)
}

var (
	_ Admin       = (*Client)(nil)
	_ TenantAdmin = (*Client)(nil)
)

// -----------------------------------------------------------------------------
// Client configuration
// -----------------------------------------------------------------------------

// ClientConfig tunes the HTTP client. Zero values are filled from
// DefaultClientConfig.
type ClientConfig struct {
	// BaseURL is the administrative API root.
	BaseURL string

	// Timeout bounds each individual request.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls. The administrative API
	// rejects bursts well below anything a sequential restore produces,
	// but a large tenant's gateway loop can still trip it.
	RequestsPerSecond float64

	// Burst is the limiter bucket size.
	Burst int
}

// DefaultClientConfig returns the production defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:           DefaultBaseURL,
		Timeout:           30 * time.Second,
		RequestsPerSecond: 4,
		Burst:             4,
	}
}

// Validate checks the config for usable values.
func (c ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("client config: base_url is required")
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("client config: base_url: %w", err)
	}
	if c.Timeout <= 0 {
		return errors.New("client config: timeout must be positive")
	}
	if c.RequestsPerSecond <= 0 {
		return errors.New("client config: requests_per_second must be positive")
	}
	if c.Burst <= 0 {
		return errors.New("client config: burst must be positive")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

// Client talks to the administrative service over HTTPS with a bearer
// session. All methods are synchronous and safe for the sequential use this
// tool makes of them.
type Client struct {
	cfg     ClientConfig
	session *Session
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client around an established session. The session is
// supplied by the caller; see Connect and ResumeSession.
func NewClient(session *Session, cfg ClientConfig) (*Client, error) {
	if session == nil || session.Token() == "" {
		return nil, ErrNoSession
	}

	def := DefaultClientConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst == 0 {
		cfg.Burst = def.Burst
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		cfg:     cfg,
		session: session,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// Session returns the session handle the client was built with.
func (c *Client) Session() *Session { return c.session }

// serviceError is the error body the administrative service returns on
// rejections.
type serviceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do issues one request. Returned errors are ErrNotFound (404), a
// *RemoteError carrying the service's rejection, or a *RemoteError wrapping
// a transport failure. Entity methods attach operation context via wrap.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &RemoteError{Wrapped: err}
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Wrapped: fmt.Errorf("encoding request: %w", err)}
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, payload)
	if err != nil {
		return &RemoteError{Wrapped: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.session.Token())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug().Str("method", method).Str("path", path).Msg("admin api request")

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Wrapped: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Wrapped: fmt.Errorf("reading response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		var svcErr serviceError
		if err := json.Unmarshal(data, &svcErr); err != nil || svcErr.Message == "" {
			svcErr.Message = firstLine(data)
		}
		return &RemoteError{
			StatusCode: resp.StatusCode,
			Code:       svcErr.Code,
			Message:    svcErr.Message,
		}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &RemoteError{Wrapped: fmt.Errorf("decoding response: %w", err)}
		}
	}
	return nil
}

// wrap attaches operation and identity context to errors coming out of do.
// ErrNotFound stays errors.Is-able through the returned chain.
func wrap(err error, op, identity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		if identity != "" {
			return fmt.Errorf("%s %q: %w", op, identity, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var re *RemoteError
	if errors.As(err, &re) {
		re.Op = op
		re.Identity = identity
		return re
	}
	return &RemoteError{Op: op, Identity: identity, Wrapped: err}
}

// collectionPath joins the versioned collection root with an escaped
// identity segment. Identities routinely contain spaces.
func collectionPath(collection, identity string) string {
	if identity == "" {
		return "/v1/" + collection
	}
	return "/v1/" + collection + "/" + url.PathEscape(identity)
}

// Tenant returns the tenant bound to the session.
func (c *Client) Tenant(ctx context.Context) (*Tenant, error) {
	var t Tenant
	if err := c.do(ctx, http.MethodGet, "/v1/tenant", nil, &t); err != nil {
		return nil, wrap(err, "get tenant", "")
	}
	return &t, nil
}

// Query runs one named tenant-wide configuration query, returning the raw
// JSON body for verbatim archiving.
func (c *Client) Query(ctx context.Context, resource string) (json.RawMessage, error) {
	resource = strings.TrimLeft(resource, "/")
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v1/"+resource, nil, &raw); err != nil {
		return nil, wrap(err, "query "+resource, "")
	}
	return raw, nil
}
