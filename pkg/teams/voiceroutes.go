// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package teams

import (
	"context"
	"net/http"
)

// VoiceRouteAdmin covers voice route operations.
type VoiceRouteAdmin interface {
	// VoiceRoutes lists every voice route in the tenant.
	VoiceRoutes(ctx context.Context) ([]VoiceRoute, error)

	// GetVoiceRoute fetches one route by identity. Missing routes return
	// ErrNotFound.
	GetVoiceRoute(ctx context.Context, identity string) (*VoiceRoute, error)

	// CreateVoiceRoute creates a route. Gateway and usage references are
	// passed through unchecked; the service validates them.
	CreateVoiceRoute(ctx context.Context, route VoiceRoute) error

	// UpdateVoiceRoute rewrites a route in place.
	UpdateVoiceRoute(ctx context.Context, route VoiceRoute) error

	// DeleteVoiceRoute removes a route.
	DeleteVoiceRoute(ctx context.Context, identity string) error
}

func (c *Client) VoiceRoutes(ctx context.Context) ([]VoiceRoute, error) {
	var routes []VoiceRoute
	if err := c.do(ctx, http.MethodGet, collectionPath("voiceroutes", ""), nil, &routes); err != nil {
		return nil, wrap(err, "list voice routes", "")
	}
	return routes, nil
}

func (c *Client) GetVoiceRoute(ctx context.Context, identity string) (*VoiceRoute, error) {
	var route VoiceRoute
	if err := c.do(ctx, http.MethodGet, collectionPath("voiceroutes", identity), nil, &route); err != nil {
		return nil, wrap(err, "get voice route", identity)
	}
	return &route, nil
}

func (c *Client) CreateVoiceRoute(ctx context.Context, route VoiceRoute) error {
	err := c.do(ctx, http.MethodPost, collectionPath("voiceroutes", ""), route, nil)
	return wrap(err, "create voice route", route.Identity)
}

func (c *Client) UpdateVoiceRoute(ctx context.Context, route VoiceRoute) error {
	err := c.do(ctx, http.MethodPut, collectionPath("voiceroutes", route.Identity), route, nil)
	return wrap(err, "update voice route", route.Identity)
}

func (c *Client) DeleteVoiceRoute(ctx context.Context, identity string) error {
	err := c.do(ctx, http.MethodDelete, collectionPath("voiceroutes", identity), nil, nil)
	return wrap(err, "delete voice route", identity)
}
