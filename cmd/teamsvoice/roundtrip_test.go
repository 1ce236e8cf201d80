// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucmanaged/teamsvoice/pkg/archive"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
)

// emptyTargetTenant returns a fake with nothing configured except the two
// gateway trunks, which exist before any configuration lands on them.
func emptyTargetTenant() *teams.Fake {
	target := teams.NewFake()
	target.GatewayRecords = []teams.PstnGateway{
		{Identity: "sbc1.contoso.com"},
		{Identity: "sbc2.contoso.com"},
	}
	return target
}

// TestBackupRestoreRoundTrip backs up one tenant and restores the archive
// into a second, empty one. Afterwards the second tenant's Enterprise
// Voice configuration matches the first, gateway rule attachments
// included.
func TestBackupRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := seededFake()

	dest, err := executeBackup(ctx, source, source, t.TempDir(), false, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	arc, err := archive.Open(dest)
	require.NoError(t, err)
	defer arc.Close()

	set, verrs := validateArchive(arc)
	require.Empty(t, verrs)

	target := emptyTargetTenant()
	stats := newReconciler(target).Run(ctx, set)

	// 2 plans, 2 usage names, 2 routes, 2 policies, 2 rules created; the
	// 2 gateways existed and took updates.
	assert.Equal(t, 10, stats.Created)
	assert.Equal(t, 2, stats.Updated)
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 0, stats.Skipped)

	assert.Equal(t, source.DialPlanRecords, target.DialPlanRecords)
	assert.Equal(t, source.VoiceRouteRecords, target.VoiceRouteRecords)
	assert.Equal(t, source.PolicyRecords, target.PolicyRecords)
	assert.Equal(t, source.UsageRecord.Usage, target.UsageRecord.Usage)
	assert.Equal(t, source.RuleRecords, target.RuleRecords)
	assert.Equal(t, source.GatewayRecords, target.GatewayRecords)
}

// TestRestoreConvergesOnSecondRun restores the same archive twice into the
// same tenant. The second run takes the update path throughout and lands
// on the same records; only the usage list grows, because its remote
// operation is additive.
func TestRestoreConvergesOnSecondRun(t *testing.T) {
	ctx := context.Background()
	source := seededFake()

	dest, err := executeBackup(ctx, source, source, t.TempDir(), false, time.Now())
	require.NoError(t, err)

	arc, err := archive.Open(dest)
	require.NoError(t, err)
	defer arc.Close()

	set, verrs := validateArchive(arc)
	require.Empty(t, verrs)

	target := emptyTargetTenant()

	first := newReconciler(target).Run(ctx, set)
	require.Equal(t, 0, first.Failed)
	plansAfterFirst := append([]teams.DialPlan{}, target.DialPlanRecords...)

	second := newReconciler(target).Run(ctx, set)
	assert.Equal(t, 0, second.Failed)
	assert.Equal(t, 2, second.Created, "only the additive usage names count as created again")
	assert.Equal(t, 10, second.Updated)

	assert.Equal(t, plansAfterFirst, target.DialPlanRecords)
	assert.Equal(t, source.VoiceRouteRecords, target.VoiceRouteRecords)
	assert.Equal(t, source.RuleRecords, target.RuleRecords)
	assert.Equal(t, source.GatewayRecords, target.GatewayRecords)
	assert.Equal(t, []string{"Local", "International", "Local", "International"}, target.UsageRecord.Usage)
}
