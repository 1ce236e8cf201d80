// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucmanaged/teamsvoice/pkg/teams"
)

// fullRestoreSet builds a set with every collection present, pointing at
// the gateways of seededFake.
func fullRestoreSet() *restoreSet {
	set := newRestoreSet()
	set.dialPlans = []teams.DialPlan{{
		Identity: "US East",
		NormalizationRules: []string{
			"Name=US10;Pattern=^1(\\d{10})$;Translation=+1$1;Description=US 10-digit;IsInternalExtension=False",
		},
	}}
	set.usages = &teams.PstnUsage{Identity: "Global", Usage: []string{"Local"}}
	set.voiceRoutes = []teams.VoiceRoute{{Identity: "US Local", NumberPattern: "^\\+1"}}
	set.policies = []teams.VoiceRoutingPolicy{{Identity: "US Users"}}
	set.transRules = []teams.TranslationRule{{Identity: "StripPlus"}}
	set.gateways = []teams.PstnGateway{{Identity: "sbc1.contoso.com"}}
	for _, et := range teams.EntityTypes() {
		set.present[et] = true
	}
	return set
}

func TestReconciler_CreateVersusUpdate(t *testing.T) {
	fake := teams.NewFake()
	fake.DialPlanRecords = []teams.DialPlan{{Identity: "US East", Description: "stale"}}

	set := newRestoreSet()
	set.dialPlans = []teams.DialPlan{
		{Identity: "US East", Description: "fresh"},
		{Identity: "EMEA"},
	}
	set.present[teams.EntityDialPlans] = true

	stats := newReconciler(fake).Run(context.Background(), set)

	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 1, fake.CallCount("UpdateDialPlan"))
	assert.Equal(t, 1, fake.CallCount("CreateDialPlan"))

	require.Len(t, fake.DialPlanRecords, 2)
	assert.Equal(t, "fresh", fake.DialPlanRecords[0].Description)
}

func TestReconciler_Order(t *testing.T) {
	fake := teams.NewFake()
	fake.GatewayRecords = []teams.PstnGateway{{Identity: "sbc1.contoso.com"}}

	newReconciler(fake).Run(context.Background(), fullRestoreSet())

	// Collections land in dependency order: plans, usages, routes,
	// policies, rules, then the gateway attachments referencing the rules.
	order := []string{
		"CreateDialPlan",
		"AddPstnUsage",
		"CreateVoiceRoute",
		"CreateVoiceRoutingPolicy",
		"CreateTranslationRule",
		"UpdatePstnGateway",
	}
	prev := -1
	for _, op := range order {
		idx := fake.CallIndex(op)
		require.NotEqual(t, -1, idx, "expected a %s call", op)
		assert.Greater(t, idx, prev, "%s out of order", op)
		prev = idx
	}
}

func TestReconciler_UsageListIsAdditive(t *testing.T) {
	fake := teams.NewFake()
	fake.UsageRecord.Usage = []string{"Existing"}

	set := newRestoreSet()
	set.usages = &teams.PstnUsage{Identity: "Global", Usage: []string{"Sales", "Support"}}
	set.present[teams.EntityPstnUsages] = true

	stats := newReconciler(fake).Run(context.Background(), set)

	// One additive call per name and never a list replacement, so names
	// already on the tenant survive.
	assert.Equal(t, 2, fake.CallCount("AddPstnUsage"))
	assert.Equal(t, 0, fake.CallCount("SetPstnUsages"))
	assert.Equal(t, []string{"Existing", "Sales", "Support"}, fake.UsageRecord.Usage)
	assert.Equal(t, 2, stats.Created)
}

func TestReconciler_GatewayAbsentIsSkipped(t *testing.T) {
	fake := teams.NewFake()

	set := newRestoreSet()
	set.gateways = []teams.PstnGateway{{Identity: "decommissioned.contoso.com"}}
	set.present[teams.EntityPstnGateways] = true

	stats := newReconciler(fake).Run(context.Background(), set)

	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 0, fake.CallCount("UpdatePstnGateway"))
	assert.Empty(t, fake.GatewayRecords)
}

func TestReconciler_RecordFailureDoesNotStopTheLoop(t *testing.T) {
	fake := teams.NewFake()
	fake.Fail["CreateVoiceRoute Broken"] = errors.New("rejected by the service")

	set := newRestoreSet()
	set.voiceRoutes = []teams.VoiceRoute{
		{Identity: "First"},
		{Identity: "Broken"},
		{Identity: "Last"},
	}
	set.present[teams.EntityVoiceRoutes] = true

	stats := newReconciler(fake).Run(context.Background(), set)

	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Failed)
	require.Len(t, fake.VoiceRouteRecords, 2)
	assert.Equal(t, "First", fake.VoiceRouteRecords[0].Identity)
	assert.Equal(t, "Last", fake.VoiceRouteRecords[1].Identity)
}

func TestReconciler_LookupFailureFailsTheRecord(t *testing.T) {
	fake := teams.NewFake()
	fake.Fail["GetTranslationRule Flaky"] = errors.New("timeout")

	set := newRestoreSet()
	set.transRules = []teams.TranslationRule{{Identity: "Flaky"}}
	set.present[teams.EntityTranslationRules] = true

	stats := newReconciler(fake).Run(context.Background(), set)

	// Existence unknown means neither create nor update is attempted.
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 0, fake.CallCount("CreateTranslationRule"))
	assert.Equal(t, 0, fake.CallCount("UpdateTranslationRule"))
}

func TestReconciler_DialPlanRules(t *testing.T) {
	t.Run("rules attached in a second pass", func(t *testing.T) {
		fake := teams.NewFake()
		blob := "Name=US10;Pattern=^1(\\d{10})$;Translation=+1$1;Description=US 10-digit;IsInternalExtension=False"

		set := newRestoreSet()
		set.dialPlans = []teams.DialPlan{{Identity: "US East", NormalizationRules: []string{blob}}}
		set.present[teams.EntityDialPlans] = true

		stats := newReconciler(fake).Run(context.Background(), set)

		assert.Equal(t, 1, stats.Created)
		assert.Equal(t, 1, fake.CallCount("SetNormalizationRules"))
		require.Len(t, fake.DialPlanRecords, 1)
		assert.Equal(t, []string{blob}, fake.DialPlanRecords[0].NormalizationRules)
	})

	t.Run("no rules means no second pass", func(t *testing.T) {
		fake := teams.NewFake()

		set := newRestoreSet()
		set.dialPlans = []teams.DialPlan{{Identity: "Bare"}}
		set.present[teams.EntityDialPlans] = true

		stats := newReconciler(fake).Run(context.Background(), set)

		assert.Equal(t, 1, stats.Created)
		assert.Equal(t, 0, fake.CallCount("SetNormalizationRules"))
	})

	t.Run("unparseable rule fails the plan", func(t *testing.T) {
		fake := teams.NewFake()

		set := newRestoreSet()
		set.dialPlans = []teams.DialPlan{{
			Identity:           "Mangled",
			NormalizationRules: []string{"Name=NoPattern;Translation=x"},
		}}
		set.present[teams.EntityDialPlans] = true

		stats := newReconciler(fake).Run(context.Background(), set)

		assert.Equal(t, 1, stats.Failed)
		assert.Equal(t, 0, stats.Created)
		assert.Equal(t, 0, fake.CallCount("SetNormalizationRules"))
	})
}

func TestReconciler_SkipsAbsentCollections(t *testing.T) {
	fake := teams.NewFake()

	set := newRestoreSet()
	set.voiceRoutes = []teams.VoiceRoute{{Identity: "Only"}}
	set.present[teams.EntityVoiceRoutes] = true

	newReconciler(fake).Run(context.Background(), set)

	assert.Equal(t, 0, fake.CallCount("GetDialPlan"))
	assert.Equal(t, 0, fake.CallCount("AddPstnUsage"))
	assert.Equal(t, 1, fake.CallCount("CreateVoiceRoute"))
}
