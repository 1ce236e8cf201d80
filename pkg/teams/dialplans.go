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

// DialPlanAdmin covers tenant dial plan operations.
type DialPlanAdmin interface {
	// DialPlans lists every dial plan in the tenant.
	DialPlans(ctx context.Context) ([]DialPlan, error)

	// GetDialPlan fetches one plan by identity. Missing plans return
	// ErrNotFound.
	GetDialPlan(ctx context.Context, identity string) (*DialPlan, error)

	// CreateDialPlan creates the base plan record. Normalization rules
	// are attached separately via SetNormalizationRules.
	CreateDialPlan(ctx context.Context, plan DialPlan) error

	// UpdateDialPlan rewrites the base plan record in place.
	UpdateDialPlan(ctx context.Context, plan DialPlan) error

	// DeleteDialPlan removes a plan.
	DeleteDialPlan(ctx context.Context, identity string) error

	// SetNormalizationRules replaces the plan's whole rule list in one
	// call. Replace semantics: rules not in the list are gone afterwards.
	SetNormalizationRules(ctx context.Context, identity string, rules []NormalizationRule) error
}

// dialPlanBody is the create/update payload. ExternalAccessPrefix is a
// pointer so an empty prefix is left out of the JSON entirely; the service
// rejects an explicit empty value but accepts the field being absent.
// NormalizationRules never travel in this payload.
type dialPlanBody struct {
	Identity              string  `json:"Identity"`
	Description           string  `json:"Description"`
	ExternalAccessPrefix  *string `json:"ExternalAccessPrefix,omitempty"`
	OptimizeDeviceDialing bool    `json:"OptimizeDeviceDialing"`
}

func newDialPlanBody(plan DialPlan) dialPlanBody {
	body := dialPlanBody{
		Identity:              plan.Identity,
		Description:           plan.Description,
		OptimizeDeviceDialing: plan.OptimizeDeviceDialing,
	}
	if plan.ExternalAccessPrefix != "" {
		body.ExternalAccessPrefix = &plan.ExternalAccessPrefix
	}
	return body
}

func (c *Client) DialPlans(ctx context.Context) ([]DialPlan, error) {
	var plans []DialPlan
	if err := c.do(ctx, http.MethodGet, collectionPath("dialplans", ""), nil, &plans); err != nil {
		return nil, wrap(err, "list dial plans", "")
	}
	return plans, nil
}

func (c *Client) GetDialPlan(ctx context.Context, identity string) (*DialPlan, error) {
	var plan DialPlan
	if err := c.do(ctx, http.MethodGet, collectionPath("dialplans", identity), nil, &plan); err != nil {
		return nil, wrap(err, "get dial plan", identity)
	}
	return &plan, nil
}

func (c *Client) CreateDialPlan(ctx context.Context, plan DialPlan) error {
	err := c.do(ctx, http.MethodPost, collectionPath("dialplans", ""), newDialPlanBody(plan), nil)
	return wrap(err, "create dial plan", plan.Identity)
}

func (c *Client) UpdateDialPlan(ctx context.Context, plan DialPlan) error {
	err := c.do(ctx, http.MethodPut, collectionPath("dialplans", plan.Identity), newDialPlanBody(plan), nil)
	return wrap(err, "update dial plan", plan.Identity)
}

func (c *Client) DeleteDialPlan(ctx context.Context, identity string) error {
	err := c.do(ctx, http.MethodDelete, collectionPath("dialplans", identity), nil, nil)
	return wrap(err, "delete dial plan", identity)
}

func (c *Client) SetNormalizationRules(ctx context.Context, identity string, rules []NormalizationRule) error {
	path := collectionPath("dialplans", identity) + "/normalizationrules"
	err := c.do(ctx, http.MethodPut, path, rules, nil)
	return wrap(err, "set normalization rules", identity)
}
