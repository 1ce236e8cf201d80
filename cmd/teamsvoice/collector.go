// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

// stagingEntry is one file of a backup before packing: the archive entry
// name and its serialized content.
type stagingEntry struct {
	Name string
	Data []byte
}

// collectVoice pulls the six Enterprise Voice collections and serializes
// each one to its archive entry content. Any listing failure aborts the
// whole backup: an archive silently missing a collection would later
// restore as a partial configuration without anyone noticing.
func collectVoice(ctx context.Context, admin teams.Admin) ([]stagingEntry, error) {
	var entries []stagingEntry

	add := func(et teams.EntityType, v any, err error) error {
		if err != nil {
			return fmt.Errorf("collecting %s: %w", et, err)
		}
		data, err := marshalEntry(v)
		if err != nil {
			return fmt.Errorf("serializing %s: %w", et, err)
		}
		entries = append(entries, stagingEntry{Name: et.EntryName(), Data: data})
		return nil
	}

	plans, err := admin.DialPlans(ctx)
	if err := add(teams.EntityDialPlans, plans, err); err != nil {
		return nil, err
	}
	routes, err := admin.VoiceRoutes(ctx)
	if err := add(teams.EntityVoiceRoutes, routes, err); err != nil {
		return nil, err
	}
	policies, err := admin.VoiceRoutingPolicies(ctx)
	if err := add(teams.EntityVoiceRoutingPolicies, policies, err); err != nil {
		return nil, err
	}
	usage, err := admin.PstnUsages(ctx)
	if err := add(teams.EntityPstnUsages, usage, err); err != nil {
		return nil, err
	}
	rules, err := admin.TranslationRules(ctx)
	if err := add(teams.EntityTranslationRules, rules, err); err != nil {
		return nil, err
	}
	gateways, err := admin.PstnGateways(ctx)
	if err := add(teams.EntityPstnGateways, gateways, err); err != nil {
		return nil, err
	}

	return entries, nil
}

// collectFull runs every query in the tenant-wide catalogue on top of the
// voice collections. A single failing query is skipped with a warning; the
// catalogue spans the whole admin surface and not every tenant licenses
// every resource.
func collectFull(ctx context.Context, admin teams.Admin, tenant teams.TenantAdmin) ([]stagingEntry, error) {
	entries, err := collectVoice(ctx, admin)
	if err != nil {
		return nil, err
	}

	for _, q := range tenantQueries {
		raw, err := tenant.Query(ctx, q.Resource)
		if err != nil {
			ux.Warning(fmt.Sprintf("query %s failed, skipping: %v", q.Name, err))
			logging.Warn().Err(err).Str("query", q.Name).Msg("tenant query skipped")
			continue
		}
		data, err := indentRaw(raw)
		if err != nil {
			ux.Warning(fmt.Sprintf("query %s returned unreadable output, skipping", q.Name))
			continue
		}
		entries = append(entries, stagingEntry{Name: q.Name + ".txt", Data: data})
	}

	return entries, nil
}

// marshalEntry serializes one collection the way entries are stored:
// indented UTF-8 JSON with a trailing newline.
func marshalEntry(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// indentRaw re-indents a raw query reply for the archive.
func indentRaw(raw json.RawMessage) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return marshalEntry(v)
}

// writeStaging writes each entry to its own file in dir and returns the
// paths in entry order. The files exist only between collection and
// packing.
func writeStaging(dir string, entries []stagingEntry) ([]string, error) {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		p := filepath.Join(dir, e.Name)
		if err := os.WriteFile(p, e.Data, 0644); err != nil {
			return paths, fmt.Errorf("writing %s: %w", e.Name, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// deleteStaging removes the staging files after a successful pack. The
// archive is already complete at this point, so a leftover file is only
// clutter and worth a warning, never a failure.
func deleteStaging(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			ux.Warning(fmt.Sprintf("could not remove staging file %s: %v", p, err))
			logging.Warn().Err(err).Str("path", p).Msg("staging file left behind")
		}
	}
}

// backupFileName builds the archive filename. Voice backups carry the
// TeamsEV prefix; full-tenant backups use the Teams prefix and append the
// tenant's display name when known.
func backupFileName(full bool, now time.Time, tenantName string) string {
	date := now.Format("2006-01-02")
	if !full {
		return "TeamsEVBackup_" + date + ".zip"
	}
	name := "TeamsBackup_" + date
	if cleaned := sanitizeFileName(tenantName); cleaned != "" {
		name += " " + cleaned
	}
	return name + ".zip"
}

// sanitizeFileName strips path separators and other characters that are
// unsafe in filenames from a tenant display name.
func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return -1
		}
		return r
	}, s)
}
