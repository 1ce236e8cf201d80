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

// PstnGatewayAdmin covers gateway rule attachments. Gateways themselves are
// provisioned out of band; this tool never creates or deletes one, it only
// reads gateways and writes their four translation-rule lists.
type PstnGatewayAdmin interface {
	// PstnGateways lists every gateway in the tenant.
	PstnGateways(ctx context.Context) ([]PstnGateway, error)

	// GetPstnGateway fetches one gateway by identity. Missing gateways
	// return ErrNotFound.
	GetPstnGateway(ctx context.Context, identity string) (*PstnGateway, error)

	// UpdatePstnGateway writes the gateway's four translation-rule
	// lists. Nothing else on the gateway is touched.
	UpdatePstnGateway(ctx context.Context, gw PstnGateway) error
}

// pstnGatewayBody is the update payload: just the four rule lists. The
// misspelled outbound-to-Teams attribute is the API's own spelling.
type pstnGatewayBody struct {
	OutboundPstnNumberTranslationRules []string `json:"OutboundPstnNumberTranslationRules"`
	OutbundTeamsNumberTranslationRules []string `json:"OutbundTeamsNumberTranslationRules"`
	InboundPstnNumberTranslationRules  []string `json:"InboundPstnNumberTranslationRules"`
	InboundTeamsNumberTranslationRules []string `json:"InboundTeamsNumberTranslationRules"`
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (c *Client) PstnGateways(ctx context.Context) ([]PstnGateway, error) {
	var gws []PstnGateway
	if err := c.do(ctx, http.MethodGet, collectionPath("pstngateways", ""), nil, &gws); err != nil {
		return nil, wrap(err, "list pstn gateways", "")
	}
	return gws, nil
}

func (c *Client) GetPstnGateway(ctx context.Context, identity string) (*PstnGateway, error) {
	var gw PstnGateway
	if err := c.do(ctx, http.MethodGet, collectionPath("pstngateways", identity), nil, &gw); err != nil {
		return nil, wrap(err, "get pstn gateway", identity)
	}
	return &gw, nil
}

func (c *Client) UpdatePstnGateway(ctx context.Context, gw PstnGateway) error {
	body := pstnGatewayBody{
		OutboundPstnNumberTranslationRules: emptyIfNil(gw.OutboundPstnNumberTranslationRules),
		OutbundTeamsNumberTranslationRules: emptyIfNil(gw.OutbundTeamsNumberTranslationRules),
		InboundPstnNumberTranslationRules:  emptyIfNil(gw.InboundPstnNumberTranslationRules),
		InboundTeamsNumberTranslationRules: emptyIfNil(gw.InboundTeamsNumberTranslationRules),
	}
	err := c.do(ctx, http.MethodPut, collectionPath("pstngateways", gw.Identity), body, nil)
	return wrap(err, "update pstn gateway", gw.Identity)
}
