// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// configValidate is the shared validator instance for config structs.
var configValidate = validator.New()

// TeamsVoiceConfig is the on-disk configuration. Credentials never live
// here; the password comes exclusively from the environment (see Password).
type TeamsVoiceConfig struct {
	// Tenant identifies which tenant to operate on and who connects.
	Tenant TenantConfig `yaml:"tenant"`

	// API tunes the administrative API client.
	API APIConfig `yaml:"api"`

	// Backup controls where archives are written.
	Backup BackupConfig `yaml:"backup"`

	// Cloud configures optional archive upload to GCS.
	Cloud CloudConfig `yaml:"cloud"`

	// Logging controls log level and optional file output.
	Logging LoggingConfig `yaml:"logging"`
}

type TenantConfig struct {
	// Domain is the tenant's default routing domain,
	// e.g. contoso.onmicrosoft.com.
	Domain string `yaml:"domain" validate:"required,fqdn"`

	// AdminDomain authenticates against a different domain when the admin
	// account is homed elsewhere. Usually empty.
	AdminDomain string `yaml:"admin_domain,omitempty" validate:"omitempty,fqdn"`

	// Username is the administrator UPN.
	Username string `yaml:"username" validate:"required,email"`

	// ClientID overrides the app registration used for sign-in. Empty
	// selects the built-in public client.
	ClientID string `yaml:"client_id,omitempty" validate:"omitempty,uuid"`
}

type APIConfig struct {
	// BaseURL overrides the administrative API root. Empty selects the
	// production endpoint.
	BaseURL string `yaml:"base_url,omitempty" validate:"omitempty,url"`

	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `yaml:"timeout_seconds" validate:"min=1,max=600"`

	// RequestsPerSecond throttles outgoing calls.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gt=0"`
}

type BackupConfig struct {
	// Directory is where backup archives land. Staging files are written
	// here too and removed after packing.
	Directory string `yaml:"directory" validate:"required"`
}

type CloudConfig struct {
	ProjectID string `yaml:"project_id,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`

	// ServiceAccountKey is a path to a key file. Empty uses application
	// default credentials.
	ServiceAccountKey string `yaml:"service_account_key,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`

	// Directory enables file logging when set.
	Directory string `yaml:"directory,omitempty"`
}

// Timeout returns the API timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Validate checks the whole config. Commands that talk to the tenant call
// this before connecting; version and upload skip it.
func (c TeamsVoiceConfig) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

// DefaultConfig returns the config written on first run. Tenant fields
// start empty and fail Validate until the operator fills them in.
func DefaultConfig() TeamsVoiceConfig {
	return TeamsVoiceConfig{
		API: APIConfig{
			TimeoutSeconds:    30,
			RequestsPerSecond: 4,
		},
		Backup: BackupConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
