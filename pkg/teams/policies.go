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

// VoiceRoutingPolicyAdmin covers voice routing policy operations.
type VoiceRoutingPolicyAdmin interface {
	// VoiceRoutingPolicies lists every voice routing policy.
	VoiceRoutingPolicies(ctx context.Context) ([]VoiceRoutingPolicy, error)

	// GetVoiceRoutingPolicy fetches one policy by identity. Missing
	// policies return ErrNotFound.
	GetVoiceRoutingPolicy(ctx context.Context, identity string) (*VoiceRoutingPolicy, error)

	// CreateVoiceRoutingPolicy creates a policy.
	CreateVoiceRoutingPolicy(ctx context.Context, policy VoiceRoutingPolicy) error

	// UpdateVoiceRoutingPolicy rewrites a policy in place.
	UpdateVoiceRoutingPolicy(ctx context.Context, policy VoiceRoutingPolicy) error

	// DeleteVoiceRoutingPolicy removes a policy.
	DeleteVoiceRoutingPolicy(ctx context.Context, identity string) error
}

func (c *Client) VoiceRoutingPolicies(ctx context.Context) ([]VoiceRoutingPolicy, error) {
	var policies []VoiceRoutingPolicy
	if err := c.do(ctx, http.MethodGet, collectionPath("voiceroutingpolicies", ""), nil, &policies); err != nil {
		return nil, wrap(err, "list voice routing policies", "")
	}
	return policies, nil
}

func (c *Client) GetVoiceRoutingPolicy(ctx context.Context, identity string) (*VoiceRoutingPolicy, error) {
	var policy VoiceRoutingPolicy
	if err := c.do(ctx, http.MethodGet, collectionPath("voiceroutingpolicies", identity), nil, &policy); err != nil {
		return nil, wrap(err, "get voice routing policy", identity)
	}
	return &policy, nil
}

func (c *Client) CreateVoiceRoutingPolicy(ctx context.Context, policy VoiceRoutingPolicy) error {
	err := c.do(ctx, http.MethodPost, collectionPath("voiceroutingpolicies", ""), policy, nil)
	return wrap(err, "create voice routing policy", policy.Identity)
}

func (c *Client) UpdateVoiceRoutingPolicy(ctx context.Context, policy VoiceRoutingPolicy) error {
	err := c.do(ctx, http.MethodPut, collectionPath("voiceroutingpolicies", policy.Identity), policy, nil)
	return wrap(err, "update voice routing policy", policy.Identity)
}

func (c *Client) DeleteVoiceRoutingPolicy(ctx context.Context, identity string) error {
	err := c.do(ctx, http.MethodDelete, collectionPath("voiceroutingpolicies", identity), nil, nil)
	return wrap(err, "delete voice routing policy", identity)
}
