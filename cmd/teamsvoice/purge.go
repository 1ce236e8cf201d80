// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"

	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

// purgeStats counts what the purge removed.
type purgeStats struct {
	Removed int
	Failed  int
}

// purge deletes the live Enterprise Voice configuration ahead of a restore.
//
// The order is fixed: dial plans, voice routes, voice routing policies, the
// usage list, gateway rule attachments, and only then the translation
// rules. Gateways must release their rule references before a rule delete
// is attempted or the service rejects it as still in use.
//
// An object that is already gone is fine; a listing failure is not, because
// it would leave an unknown amount of configuration behind while the
// operator believes the slate is clean.
func purge(ctx context.Context, admin teams.Admin) (purgeStats, error) {
	p := &purger{admin: admin}

	plans, err := admin.DialPlans(ctx)
	if err != nil {
		return p.stats, fmt.Errorf("purge: listing dial plans: %w", err)
	}
	for _, plan := range plans {
		p.note("dial plan", plan.Identity, admin.DeleteDialPlan(ctx, plan.Identity))
	}

	routes, err := admin.VoiceRoutes(ctx)
	if err != nil {
		return p.stats, fmt.Errorf("purge: listing voice routes: %w", err)
	}
	for _, route := range routes {
		p.note("voice route", route.Identity, admin.DeleteVoiceRoute(ctx, route.Identity))
	}

	policies, err := admin.VoiceRoutingPolicies(ctx)
	if err != nil {
		return p.stats, fmt.Errorf("purge: listing voice routing policies: %w", err)
	}
	for _, policy := range policies {
		p.note("voice routing policy", policy.Identity, admin.DeleteVoiceRoutingPolicy(ctx, policy.Identity))
	}

	p.note("pstn usage list", "Global", admin.SetPstnUsages(ctx, nil))

	gateways, err := admin.PstnGateways(ctx)
	if err != nil {
		return p.stats, fmt.Errorf("purge: listing pstn gateways: %w", err)
	}
	for _, gw := range gateways {
		cleared := teams.PstnGateway{Identity: gw.Identity}
		p.note("pstn gateway rules", gw.Identity, admin.UpdatePstnGateway(ctx, cleared))
	}

	rules, err := admin.TranslationRules(ctx)
	if err != nil {
		return p.stats, fmt.Errorf("purge: listing translation rules: %w", err)
	}
	for _, rule := range rules {
		p.note("translation rule", rule.Identity, admin.DeleteTranslationRule(ctx, rule.Identity))
	}

	return p.stats, nil
}

type purger struct {
	admin teams.Admin
	stats purgeStats
}

// note books one delete outcome. Not-found means someone got there first,
// which is as removed as removed gets.
func (p *purger) note(what, identity string, err error) {
	switch {
	case err == nil:
		p.stats.Removed++
	case teams.NotFound(err):
		logging.Debug().Str("identity", identity).Msgf("%s already absent", what)
		p.stats.Removed++
	default:
		p.stats.Failed++
		ux.Warning(fmt.Sprintf("purge: %s %q: %v", what, identity, err))
		logging.Warn().Err(err).Str("identity", identity).Msgf("purge %s failed", what)
	}
}
