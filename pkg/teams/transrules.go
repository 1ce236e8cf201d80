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

// TranslationRuleAdmin covers gateway translation rule operations. Deleting
// a rule fails while any gateway still references it, which is why the
// purge clears gateway attachments first.
type TranslationRuleAdmin interface {
	// TranslationRules lists every translation rule.
	TranslationRules(ctx context.Context) ([]TranslationRule, error)

	// GetTranslationRule fetches one rule by identity. Missing rules
	// return ErrNotFound.
	GetTranslationRule(ctx context.Context, identity string) (*TranslationRule, error)

	// CreateTranslationRule creates a rule.
	CreateTranslationRule(ctx context.Context, rule TranslationRule) error

	// UpdateTranslationRule rewrites a rule in place.
	UpdateTranslationRule(ctx context.Context, rule TranslationRule) error

	// DeleteTranslationRule removes a rule.
	DeleteTranslationRule(ctx context.Context, identity string) error
}

func (c *Client) TranslationRules(ctx context.Context) ([]TranslationRule, error) {
	var rules []TranslationRule
	if err := c.do(ctx, http.MethodGet, collectionPath("translationrules", ""), nil, &rules); err != nil {
		return nil, wrap(err, "list translation rules", "")
	}
	return rules, nil
}

func (c *Client) GetTranslationRule(ctx context.Context, identity string) (*TranslationRule, error) {
	var rule TranslationRule
	if err := c.do(ctx, http.MethodGet, collectionPath("translationrules", identity), nil, &rule); err != nil {
		return nil, wrap(err, "get translation rule", identity)
	}
	return &rule, nil
}

func (c *Client) CreateTranslationRule(ctx context.Context, rule TranslationRule) error {
	err := c.do(ctx, http.MethodPost, collectionPath("translationrules", ""), rule, nil)
	return wrap(err, "create translation rule", rule.Identity)
}

func (c *Client) UpdateTranslationRule(ctx context.Context, rule TranslationRule) error {
	err := c.do(ctx, http.MethodPut, collectionPath("translationrules", rule.Identity), rule, nil)
	return wrap(err, "update translation rule", rule.Identity)
}

func (c *Client) DeleteTranslationRule(ctx context.Context, identity string) error {
	err := c.do(ctx, http.MethodDelete, collectionPath("translationrules", identity), nil, nil)
	return wrap(err, "delete translation rule", identity)
}
