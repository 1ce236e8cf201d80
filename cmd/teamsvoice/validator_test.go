// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ucmanaged/teamsvoice/pkg/archive"
	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

func TestMain(m *testing.M) {
	// Keep test output readable: plain UX lines, log noise off.
	ux.SetPlain(true)
	logging.InitWithWriter("error", io.Discard)
	os.Exit(m.Run())
}

// buildArchive packs the given entries into a zip in a temp dir and opens
// it. Entry names map to content verbatim.
func buildArchive(t *testing.T, entries map[string]string) *archive.Archive {
	t.Helper()
	dir := t.TempDir()

	var paths []string
	for name, content := range entries {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
		paths = append(paths, p)
	}

	dest := filepath.Join(dir, "backup.zip")
	_, err := archive.Pack(dest, paths)
	require.NoError(t, err)

	arc, err := archive.Open(dest)
	require.NoError(t, err)
	t.Cleanup(func() { arc.Close() })
	return arc
}

// voiceEntries returns a minimal valid six-entry archive content set.
func voiceEntries() map[string]string {
	return map[string]string{
		"Dialplans.txt": `[{"Identity":"US East","Description":"east coast",` +
			`"OptimizeDeviceDialing":false,"NormalizationRules":` +
			`["Name=US10;Pattern=^1(\\d{10})$;Translation=+1$1;Description=US 10-digit;IsInternalExtension=False"]}]`,
		"VoiceRoutes.txt": `[{"Identity":"US Local","NumberPattern":"^\\+1","Priority":1,` +
			`"OnlinePstnUsages":["Local"],"OnlinePstnGatewayList":["sbc1.contoso.com"]}]`,
		"VoiceRoutingPolicies.txt": `[{"Identity":"US Users","OnlinePstnUsages":["Local"]}]`,
		"PSTNUsages.txt":           `{"Identity":"Global","Usage":["Local","LongDistance"]}`,
		"TranslationRules.txt":     `[{"Identity":"StripPlus","Pattern":"^\\+(\\d+)$","Translation":"$1"}]`,
		"PSTNGateways.txt": `[{"Identity":"sbc1.contoso.com",` +
			`"OutboundPstnNumberTranslationRules":["StripPlus"],` +
			`"OutbundTeamsNumberTranslationRules":[],` +
			`"InboundPstnNumberTranslationRules":[],` +
			`"InboundTeamsNumberTranslationRules":[]}]`,
	}
}

func TestValidateArchive_AllValid(t *testing.T) {
	arc := buildArchive(t, voiceEntries())

	set, errs := validateArchive(arc)
	require.Empty(t, errs)
	assert.False(t, set.Empty())

	for _, et := range teams.EntityTypes() {
		assert.True(t, set.Has(et), "expected %s to validate", et)
	}
	require.Len(t, set.dialPlans, 1)
	assert.Equal(t, "US East", set.dialPlans[0].Identity)
	require.NotNil(t, set.usages)
	assert.Equal(t, []string{"Local", "LongDistance"}, set.usages.Usage)
	require.Len(t, set.gateways, 1)
	assert.Equal(t, []string{"StripPlus"}, set.gateways[0].OutboundPstnNumberTranslationRules)
}

func TestValidateArchive_MissingEntryDropsOnlyThatType(t *testing.T) {
	entries := voiceEntries()
	delete(entries, "TranslationRules.txt")
	arc := buildArchive(t, entries)

	set, errs := validateArchive(arc)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "TranslationRules")

	assert.False(t, set.Has(teams.EntityTranslationRules))
	for _, et := range []teams.EntityType{
		teams.EntityDialPlans,
		teams.EntityVoiceRoutes,
		teams.EntityVoiceRoutingPolicies,
		teams.EntityPstnUsages,
		teams.EntityPstnGateways,
	} {
		assert.True(t, set.Has(et), "%s should still proceed", et)
	}
}

func TestValidateArchive_MalformedJSON(t *testing.T) {
	entries := voiceEntries()
	entries["VoiceRoutes.txt"] = "this is not json"
	arc := buildArchive(t, entries)

	set, errs := validateArchive(arc)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "VoiceRoutes")
	assert.False(t, set.Has(teams.EntityVoiceRoutes))
	assert.True(t, set.Has(teams.EntityDialPlans))
}

func TestValidateArchive_FirstRecordChecks(t *testing.T) {
	t.Run("missing identity", func(t *testing.T) {
		entries := voiceEntries()
		entries["Dialplans.txt"] = `[{"Description":"no identity here"}]`
		arc := buildArchive(t, entries)

		set, errs := validateArchive(arc)
		require.Len(t, errs, 1)
		assert.False(t, set.Has(teams.EntityDialPlans))
	})

	t.Run("empty usage list", func(t *testing.T) {
		entries := voiceEntries()
		entries["PSTNUsages.txt"] = `{"Identity":"Global","Usage":[]}`
		arc := buildArchive(t, entries)

		set, errs := validateArchive(arc)
		require.Len(t, errs, 1)
		assert.False(t, set.Has(teams.EntityPstnUsages))
	})

	t.Run("empty collection", func(t *testing.T) {
		entries := voiceEntries()
		entries["VoiceRoutes.txt"] = `[]`
		arc := buildArchive(t, entries)

		set, errs := validateArchive(arc)
		require.Len(t, errs, 1)
		assert.False(t, set.Has(teams.EntityVoiceRoutes))
	})
}

func TestValidateArchive_SingleObjectEntry(t *testing.T) {
	// A one-record collection serialized as a bare object instead of a
	// one-element array still validates.
	entries := voiceEntries()
	entries["VoiceRoutes.txt"] = `{"Identity":"Only Route","NumberPattern":".*","Priority":0,` +
		`"OnlinePstnUsages":[],"OnlinePstnGatewayList":[]}`
	arc := buildArchive(t, entries)

	set, errs := validateArchive(arc)
	require.Empty(t, errs)
	require.Len(t, set.voiceRoutes, 1)
	assert.Equal(t, "Only Route", set.voiceRoutes[0].Identity)
}

func TestValidateArchive_NothingValidates(t *testing.T) {
	arc := buildArchive(t, map[string]string{"README.txt": "not a backup"})

	set, errs := validateArchive(arc)
	assert.Len(t, errs, 6)
	assert.True(t, set.Empty())
}

func TestValidationError_Message(t *testing.T) {
	err := &validationError{Entity: teams.EntityPstnUsages, Err: io.ErrUnexpectedEOF}
	assert.True(t, strings.HasPrefix(err.Error(), "PSTNUsages: "))
}
