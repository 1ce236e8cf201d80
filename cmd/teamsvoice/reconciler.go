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

// reconcileStats tallies record outcomes across one restore run.
type reconcileStats struct {
	Created int
	Updated int
	Failed  int
	Skipped int
}

// reconciler applies validated collections onto the live tenant. Per record
// it looks up the remote object by identity and either creates or updates
// it, so a restore converges whether the tenant was purged, partially
// populated, or already current.
//
// A rejected record is reported and counted but never stops the loop; a
// partially restored collection is an accepted outcome and the summary
// makes it visible.
type reconciler struct {
	admin teams.Admin
	stats reconcileStats
}

func newReconciler(admin teams.Admin) *reconciler {
	return &reconciler{admin: admin}
}

// Run restores every collection present in the set. The order is fixed:
// dial plans, PSTN usages, voice routes, voice routing policies,
// translation rules, and last the gateway rule attachments, which reference
// the rules created just before.
func (r *reconciler) Run(ctx context.Context, set *restoreSet) reconcileStats {
	if set.Has(teams.EntityDialPlans) {
		r.phase(teams.EntityDialPlans, len(set.dialPlans))
		r.dialPlans(ctx, set.dialPlans)
	}
	if set.Has(teams.EntityPstnUsages) {
		r.phase(teams.EntityPstnUsages, len(set.usages.Usage))
		r.pstnUsages(ctx, set.usages)
	}
	if set.Has(teams.EntityVoiceRoutes) {
		r.phase(teams.EntityVoiceRoutes, len(set.voiceRoutes))
		r.voiceRoutes(ctx, set.voiceRoutes)
	}
	if set.Has(teams.EntityVoiceRoutingPolicies) {
		r.phase(teams.EntityVoiceRoutingPolicies, len(set.policies))
		r.voiceRoutingPolicies(ctx, set.policies)
	}
	if set.Has(teams.EntityTranslationRules) {
		r.phase(teams.EntityTranslationRules, len(set.transRules))
		r.translationRules(ctx, set.transRules)
	}
	if set.Has(teams.EntityPstnGateways) {
		r.phase(teams.EntityPstnGateways, len(set.gateways))
		r.pstnGateways(ctx, set.gateways)
	}
	return r.stats
}

// Stats returns the tally so far.
func (r *reconciler) Stats() reconcileStats { return r.stats }

func (r *reconciler) phase(et teams.EntityType, count int) {
	ux.Info(fmt.Sprintf("Restoring %s (%d records)", et, count))
	logging.Info().Stringer("collection", et).Int("records", count).Msg("reconciling")
}

// dialPlans restores plans in two passes per record: the base object first,
// then the parsed normalization rules attached in one replacing call.
func (r *reconciler) dialPlans(ctx context.Context, plans []teams.DialPlan) {
	for _, plan := range plans {
		existed, err := r.exists(r.lookupErr(ctx, teams.EntityDialPlans, plan.Identity))
		if err != nil {
			r.fail("dial plan", plan.Identity, err)
			continue
		}

		if existed {
			err = r.admin.UpdateDialPlan(ctx, plan)
		} else {
			err = r.admin.CreateDialPlan(ctx, plan)
		}
		if err != nil {
			r.fail("dial plan", plan.Identity, err)
			continue
		}

		rules, err := teams.ParseNormalizationRules(plan.NormalizationRules)
		if err != nil {
			r.fail("dial plan", plan.Identity, fmt.Errorf("normalization rules: %w", err))
			continue
		}
		if len(rules) > 0 {
			if err := r.admin.SetNormalizationRules(ctx, plan.Identity, rules); err != nil {
				r.fail("dial plan", plan.Identity, err)
				continue
			}
		}
		r.done("dial plan", plan.Identity, existed)
	}
}

// pstnUsages grows the global usage list one name at a time. The remote
// operation is additive only; shrinking happens solely through the purge.
func (r *reconciler) pstnUsages(ctx context.Context, usage *teams.PstnUsage) {
	for _, name := range usage.Usage {
		if err := r.admin.AddPstnUsage(ctx, name); err != nil {
			r.fail("pstn usage", name, err)
			continue
		}
		r.done("pstn usage", name, false)
	}
}

func (r *reconciler) voiceRoutes(ctx context.Context, routes []teams.VoiceRoute) {
	for _, route := range routes {
		existed, err := r.exists(r.lookupErr(ctx, teams.EntityVoiceRoutes, route.Identity))
		if err != nil {
			r.fail("voice route", route.Identity, err)
			continue
		}
		if existed {
			err = r.admin.UpdateVoiceRoute(ctx, route)
		} else {
			err = r.admin.CreateVoiceRoute(ctx, route)
		}
		if err != nil {
			r.fail("voice route", route.Identity, err)
			continue
		}
		r.done("voice route", route.Identity, existed)
	}
}

func (r *reconciler) voiceRoutingPolicies(ctx context.Context, policies []teams.VoiceRoutingPolicy) {
	for _, policy := range policies {
		existed, err := r.exists(r.lookupErr(ctx, teams.EntityVoiceRoutingPolicies, policy.Identity))
		if err != nil {
			r.fail("voice routing policy", policy.Identity, err)
			continue
		}
		if existed {
			err = r.admin.UpdateVoiceRoutingPolicy(ctx, policy)
		} else {
			err = r.admin.CreateVoiceRoutingPolicy(ctx, policy)
		}
		if err != nil {
			r.fail("voice routing policy", policy.Identity, err)
			continue
		}
		r.done("voice routing policy", policy.Identity, existed)
	}
}

func (r *reconciler) translationRules(ctx context.Context, rules []teams.TranslationRule) {
	for _, rule := range rules {
		existed, err := r.exists(r.lookupErr(ctx, teams.EntityTranslationRules, rule.Identity))
		if err != nil {
			r.fail("translation rule", rule.Identity, err)
			continue
		}
		if existed {
			err = r.admin.UpdateTranslationRule(ctx, rule)
		} else {
			err = r.admin.CreateTranslationRule(ctx, rule)
		}
		if err != nil {
			r.fail("translation rule", rule.Identity, err)
			continue
		}
		r.done("translation rule", rule.Identity, existed)
	}
}

// pstnGateways writes rule attachments onto gateways that exist in the live
// tenant. Gateways are provisioned out of band, so a gateway in the archive
// but not in the tenant is skipped, not created.
func (r *reconciler) pstnGateways(ctx context.Context, gateways []teams.PstnGateway) {
	for _, gw := range gateways {
		existed, err := r.exists(r.lookupErr(ctx, teams.EntityPstnGateways, gw.Identity))
		if err != nil {
			r.fail("pstn gateway", gw.Identity, err)
			continue
		}
		if !existed {
			r.stats.Skipped++
			logging.Debug().Str("identity", gw.Identity).Msg("gateway not present in tenant, skipping")
			continue
		}
		if err := r.admin.UpdatePstnGateway(ctx, gw); err != nil {
			r.fail("pstn gateway", gw.Identity, err)
			continue
		}
		r.done("pstn gateway", gw.Identity, true)
	}
}

// lookupErr performs the existence probe for one identity and returns its
// error (nil means the object exists).
func (r *reconciler) lookupErr(ctx context.Context, et teams.EntityType, identity string) error {
	var err error
	switch et {
	case teams.EntityDialPlans:
		_, err = r.admin.GetDialPlan(ctx, identity)
	case teams.EntityVoiceRoutes:
		_, err = r.admin.GetVoiceRoute(ctx, identity)
	case teams.EntityVoiceRoutingPolicies:
		_, err = r.admin.GetVoiceRoutingPolicy(ctx, identity)
	case teams.EntityTranslationRules:
		_, err = r.admin.GetTranslationRule(ctx, identity)
	case teams.EntityPstnGateways:
		_, err = r.admin.GetPstnGateway(ctx, identity)
	}
	return err
}

// exists folds a lookup error into the create-or-update decision.
// Not-found selects create; any other lookup failure means existence is
// unknown and the record fails rather than guesses.
func (r *reconciler) exists(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case teams.NotFound(err):
		return false, nil
	default:
		return false, err
	}
}

func (r *reconciler) done(what, identity string, existed bool) {
	if existed {
		r.stats.Updated++
		ux.Step(ux.IconSuccess, what+" "+identity, "updated")
	} else {
		r.stats.Created++
		ux.Step(ux.IconSuccess, what+" "+identity, "created")
	}
}

func (r *reconciler) fail(what, identity string, err error) {
	r.stats.Failed++
	ux.Step(ux.IconError, what+" "+identity, err.Error())
	logging.Warn().Err(err).Str("identity", identity).Msgf("restore %s failed", what)
}
