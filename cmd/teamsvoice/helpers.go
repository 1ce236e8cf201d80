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
	"os"

	"github.com/ucmanaged/teamsvoice/cmd/teamsvoice/config"
	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/teams"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

// connectAdmin validates the config, signs in, and returns a ready client.
// The domain override flag wins over the config's admin_domain.
func connectAdmin(ctx context.Context, domainOverride string) (*teams.Client, error) {
	cfg := config.Global
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	password := config.Password()
	if password == "" {
		return nil, errors.New("TEAMSVOICE_PASSWORD is not set; export it or put it in a .env file")
	}

	admin := cfg.Tenant.AdminDomain
	if domainOverride != "" {
		admin = domainOverride
	}

	ux.Info(fmt.Sprintf("Connecting to %s as %s", cfg.Tenant.Domain, cfg.Tenant.Username))
	sess, err := teams.Connect(ctx, teams.SessionConfig{
		TenantDomain: cfg.Tenant.Domain,
		AdminDomain:  admin,
		Username:     cfg.Tenant.Username,
		Password:     password,
		ClientID:     cfg.Tenant.ClientID,
	})
	if err != nil {
		return nil, err
	}

	client, err := teams.NewClient(sess, teams.ClientConfig{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
	})
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("tenant", cfg.Tenant.Domain).
		Str("tenant_id", sess.TenantID()).
		Msg("session established")
	return client, nil
}

// fatal reports an unrecoverable error and terminates the process.
func fatal(msg string, err error) {
	ux.Error(fmt.Sprintf("%s: %v", msg, err))
	logging.Error().Err(err).Msg(msg)
	logging.Close()
	os.Exit(exitError)
}

// exit terminates with the given code, flushing the log file first.
func exit(code int) {
	logging.Close()
	os.Exit(code)
}
