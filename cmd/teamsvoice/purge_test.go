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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucmanaged/teamsvoice/pkg/teams"
)

// lastCallIndex returns the position of the last recorded call starting
// with op, or -1.
func lastCallIndex(fake *teams.Fake, op string) int {
	last := -1
	for i, c := range fake.Calls {
		if c == op || strings.HasPrefix(c, op+" ") {
			last = i
		}
	}
	return last
}

func TestPurge_RemovesEverything(t *testing.T) {
	fake := seededFake()

	stats, err := purge(context.Background(), fake)
	require.NoError(t, err)

	// 2 plans + 2 routes + 2 policies + the usage list + 2 gateway
	// clears + 2 rules.
	assert.Equal(t, 11, stats.Removed)
	assert.Equal(t, 0, stats.Failed)

	assert.Empty(t, fake.DialPlanRecords)
	assert.Empty(t, fake.VoiceRouteRecords)
	assert.Empty(t, fake.PolicyRecords)
	assert.Empty(t, fake.UsageRecord.Usage)
	assert.Empty(t, fake.RuleRecords)

	// Gateways survive with their rule attachments cleared.
	require.Len(t, fake.GatewayRecords, 2)
	for _, gw := range fake.GatewayRecords {
		for _, list := range gw.RuleLists() {
			assert.Empty(t, list)
		}
	}
}

func TestPurge_Order(t *testing.T) {
	fake := seededFake()

	_, err := purge(context.Background(), fake)
	require.NoError(t, err)

	steps := []string{
		"DeleteDialPlan",
		"DeleteVoiceRoute",
		"DeleteVoiceRoutingPolicy",
		"SetPstnUsages",
		"UpdatePstnGateway",
		"DeleteTranslationRule",
	}
	prev := -1
	for _, op := range steps {
		idx := fake.CallIndex(op)
		require.NotEqual(t, -1, idx, "expected a %s call", op)
		assert.Greater(t, idx, prev, "%s out of order", op)
		prev = idx
	}

	// Every gateway releases its rule references before the first rule
	// delete, or the service would reject the delete as in use.
	assert.Less(t, lastCallIndex(fake, "UpdatePstnGateway"), fake.CallIndex("DeleteTranslationRule"))
}

func TestPurge_ToleratesAlreadyAbsent(t *testing.T) {
	fake := seededFake()
	fake.Fail["DeleteDialPlan US East"] = fmt.Errorf("delete dial plan %q: %w", "US East", teams.ErrNotFound)

	stats, err := purge(context.Background(), fake)
	require.NoError(t, err)

	// An object gone before we got to it still counts as removed.
	assert.Equal(t, 11, stats.Removed)
	assert.Equal(t, 0, stats.Failed)
}

func TestPurge_RecordsFailuresAndContinues(t *testing.T) {
	fake := seededFake()
	fake.Fail["DeleteVoiceRoute US Local"] = errors.New("409 still referenced")

	stats, err := purge(context.Background(), fake)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.Removed)
	assert.Equal(t, 1, stats.Failed)

	// The failed route is left in place, the rest of its step and every
	// later step still ran.
	require.Len(t, fake.VoiceRouteRecords, 1)
	assert.Equal(t, "US Local", fake.VoiceRouteRecords[0].Identity)
	assert.Empty(t, fake.RuleRecords)
}

func TestPurge_ListingFailureAborts(t *testing.T) {
	fake := seededFake()
	fake.Fail["ListPstnGateways"] = errors.New("503 from the service")

	_, err := purge(context.Background(), fake)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pstn gateways")

	// Steps before the failing one ran; the rule deletes never started.
	assert.Empty(t, fake.DialPlanRecords)
	assert.Empty(t, fake.UsageRecord.Usage)
	assert.Equal(t, 0, fake.CallCount("DeleteTranslationRule"))
	assert.Len(t, fake.RuleRecords, 2)
}
