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

// PstnUsageAdmin covers the single global PSTN usage record. The remote
// model is asymmetric: growing the list is additive, one name per call,
// while shrinking it is only possible by replacing the whole list.
type PstnUsageAdmin interface {
	// PstnUsages fetches the global usage record.
	PstnUsages(ctx context.Context) (*PstnUsage, error)

	// AddPstnUsage appends one usage name. Restore uses only this,
	// so whatever already exists is never removed by a restore.
	AddPstnUsage(ctx context.Context, name string) error

	// SetPstnUsages replaces the whole list. The purge passes an empty
	// list here to clear the record.
	SetPstnUsages(ctx context.Context, names []string) error
}

type pstnUsageBody struct {
	Name string `json:"Name"`
}

type pstnUsageSetBody struct {
	Usage []string `json:"Usage"`
}

func (c *Client) PstnUsages(ctx context.Context) (*PstnUsage, error) {
	var usage PstnUsage
	if err := c.do(ctx, http.MethodGet, collectionPath("pstnusages", ""), nil, &usage); err != nil {
		return nil, wrap(err, "get pstn usages", "")
	}
	return &usage, nil
}

func (c *Client) AddPstnUsage(ctx context.Context, name string) error {
	err := c.do(ctx, http.MethodPost, "/v1/pstnusages/usages", pstnUsageBody{Name: name}, nil)
	return wrap(err, "add pstn usage", name)
}

func (c *Client) SetPstnUsages(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	err := c.do(ctx, http.MethodPut, collectionPath("pstnusages", ""), pstnUsageSetBody{Usage: names}, nil)
	return wrap(err, "set pstn usages", "")
}
