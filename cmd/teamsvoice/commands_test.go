// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"backup", "restore", "upload", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}
}

func TestCommandFlags(t *testing.T) {
	for _, flag := range []string{"config", "log-level", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing persistent flag %s", flag)
	}
	assert.NotNil(t, backupCmd.Flags().Lookup("full"))
	assert.NotNil(t, backupCmd.Flags().Lookup("output"))
	assert.NotNil(t, backupCmd.Flags().Lookup("admin-domain"))
	assert.NotNil(t, restoreCmd.Flags().Lookup("keep-existing"))
	assert.NotNil(t, restoreCmd.Flags().Lookup("admin-domain"))
	assert.NotNil(t, uploadCmd.Flags().Lookup("bucket"))
}

func TestRestoreRequiresArchiveArgument(t *testing.T) {
	require.NotNil(t, restoreCmd.Args)
	assert.Error(t, restoreCmd.Args(restoreCmd, []string{}))
	assert.NoError(t, restoreCmd.Args(restoreCmd, []string{"backup.zip"}))
	assert.Error(t, restoreCmd.Args(restoreCmd, []string{"a.zip", "b.zip"}))
}

func TestRestorePhaseString(t *testing.T) {
	cases := map[restorePhase]string{
		phaseIdle:              "idle",
		phaseArchiveOpened:     "archive_opened",
		phaseValidated:         "validated",
		phaseConfirmed:         "confirmed",
		phasePurged:            "purged",
		phaseReconciling:       "reconciling",
		phaseDone:              "done",
		phaseAbortedByOperator: "aborted_by_operator",
		phaseAbortedByError:    "aborted_by_error",
		restorePhase(99):       "unknown",
	}
	for phase, want := range cases {
		assert.Equal(t, want, phase.String())
	}
}
