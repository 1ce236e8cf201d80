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
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ucmanaged/teamsvoice/cmd/teamsvoice/config"
	"github.com/ucmanaged/teamsvoice/pkg/archive"
	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

func runBackup(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	client, err := connectAdmin(ctx, adminDomain)
	if err != nil {
		fatal("could not establish an administrative session", err)
	}

	dir := backupOutput
	if dir == "" {
		dir = config.Global.Backup.Directory
	}
	if dir == "" {
		dir = "."
	}

	dest, err := executeBackup(ctx, client, client, dir, backupFull, time.Now())
	if err != nil {
		fatal("backup failed", err)
	}
	ux.Success("Backup written to " + dest)
}

// executeBackup collects, stages, and packs one backup archive, returning
// the archive path. Staging files live in the output directory only between
// collection and packing.
func executeBackup(ctx context.Context, admin teams.Admin, tenant teams.TenantAdmin, dir string, full bool, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	mode := "Enterprise Voice"
	if full {
		mode = "full tenant"
	}
	ux.Title("Teams configuration backup")
	ux.Info(fmt.Sprintf("Collecting %s configuration", mode))
	logging.Info().Bool("full", full).Str("dir", dir).Msg("backup started")

	var tenantName string
	if full {
		// The display name only decorates the filename; a backup without
		// it is still a backup.
		if t, err := tenant.Tenant(ctx); err != nil {
			ux.Warning(fmt.Sprintf("could not resolve the tenant display name: %v", err))
		} else {
			tenantName = t.DisplayName
		}
	}

	var entries []stagingEntry
	var err error
	if full {
		entries, err = collectFull(ctx, admin, tenant)
	} else {
		entries, err = collectVoice(ctx, admin)
	}
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		ux.Step(ux.IconSuccess, e.Name, fmt.Sprintf("%d bytes", len(e.Data)))
	}

	dest := filepath.Join(dir, backupFileName(full, now, tenantName))
	paths, err := writeStaging(dir, entries)
	if err != nil {
		deleteStaging(paths)
		return "", err
	}
	if _, err := archive.Pack(dest, paths); err != nil {
		deleteStaging(paths)
		return "", err
	}
	deleteStaging(paths)

	logging.Info().Str("archive", dest).Int("entries", len(entries)).Msg("backup complete")
	return dest, nil
}
