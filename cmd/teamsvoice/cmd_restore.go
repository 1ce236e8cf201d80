// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ucmanaged/teamsvoice/pkg/archive"
	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

// restorePhase names the stage a restore run is in, for tracing.
type restorePhase int

const (
	phaseIdle restorePhase = iota
	phaseArchiveOpened
	phaseValidated
	phaseConfirmed
	phasePurged
	phaseReconciling
	phaseDone
	phaseAbortedByOperator
	phaseAbortedByError
)

func (p restorePhase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseArchiveOpened:
		return "archive_opened"
	case phaseValidated:
		return "validated"
	case phaseConfirmed:
		return "confirmed"
	case phasePurged:
		return "purged"
	case phaseReconciling:
		return "reconciling"
	case phaseDone:
		return "done"
	case phaseAbortedByOperator:
		return "aborted_by_operator"
	case phaseAbortedByError:
		return "aborted_by_error"
	default:
		return "unknown"
	}
}

func runRestore(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	client, err := connectAdmin(ctx, adminDomain)
	if err != nil {
		fatal("could not establish an administrative session", err)
	}

	if !keepExisting && !ux.Interactive() {
		logging.Debug().Msg("stdin is not a terminal; confirmation will be read from piped input")
	}

	code := executeRestore(ctx, client, args[0], keepExisting, os.Stdin)
	if code != exitOK {
		exit(code)
	}
}

// executeRestore drives one restore run: open, validate, confirm, purge,
// reconcile. The archive handle is released on every exit path. The return
// value is the process exit code; per-record failures do not fail the run,
// they are tallied and shown.
func executeRestore(ctx context.Context, admin teams.Admin, archivePath string, keepCurrent bool, input io.Reader) int {
	advance := func(p restorePhase) {
		logging.Debug().Stringer("phase", p).Msg("restore phase")
	}
	advance(phaseIdle)

	ux.Title("Teams Enterprise Voice restore")

	arc, err := archive.Open(archivePath)
	if err != nil {
		ux.Error(err.Error())
		logging.Error().Err(err).Str("archive", archivePath).Msg("archive open failed")
		advance(phaseAbortedByError)
		return exitError
	}
	defer arc.Close()
	advance(phaseArchiveOpened)
	ux.Info("Reading " + archivePath)

	set, verrs := validateArchive(arc)
	for _, verr := range verrs {
		ux.Warning("validation: " + verr.Error())
		logging.Warn().Err(verr).Msg("collection dropped from restore")
	}
	if set.Empty() {
		ux.Error("no collection in the archive validated; nothing to restore")
		advance(phaseAbortedByError)
		return exitError
	}
	advance(phaseValidated)

	if !keepCurrent {
		if !confirmPurge(input) {
			ux.Info("Aborted. The existing configuration was not touched.")
			logging.Info().Msg("operator declined the purge")
			advance(phaseAbortedByOperator)
			return exitDeclined
		}
		advance(phaseConfirmed)

		ux.Info("Purging the existing Enterprise Voice configuration")
		stats, err := purge(ctx, admin)
		if err != nil {
			ux.Error(err.Error())
			logging.Error().Err(err).Msg("purge aborted the run")
			advance(phaseAbortedByError)
			return exitError
		}
		advance(phasePurged)
		ux.Success(fmt.Sprintf("Purge complete: %d removed, %d failed", stats.Removed, stats.Failed))
	}

	advance(phaseReconciling)
	stats := newReconciler(admin).Run(ctx, set)
	advance(phaseDone)

	ux.Summary(stats.Created, stats.Updated, stats.Failed, stats.Skipped)
	if stats.Failed > 0 {
		ux.Warning(fmt.Sprintf("restore finished with %d failed records; see the log for details", stats.Failed))
	} else {
		ux.Success("Restore complete")
	}
	return exitOK
}

// confirmPurge asks the operator before any destructive action. Only an
// explicit y or yes proceeds; anything else, including closed input,
// declines.
func confirmPurge(input io.Reader) bool {
	fmt.Print("This will DELETE the existing Enterprise Voice configuration. Continue? (y/n): ")
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
