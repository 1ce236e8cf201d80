// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestCreateDefault verifies default config creation.
func TestCreateDefault(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ".teamsvoice", "teamsvoice.yaml")

	if err := createDefault(configPath); err != nil {
		t.Fatalf("createDefault() failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}

	var cfg TeamsVoiceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("failed to parse config: %v", err)
	}

	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("API.TimeoutSeconds = %d, want 30", cfg.API.TimeoutSeconds)
	}
	if cfg.Backup.Directory != "." {
		t.Errorf("Backup.Directory = %q, want %q", cfg.Backup.Directory, ".")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

// TestLoadInternal_PartialFile verifies a sparse config file keeps defaults
// for everything it does not mention.
func TestLoadInternal_PartialFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "teamsvoice.yaml")

	partial := []byte("tenant:\n  domain: contoso.onmicrosoft.com\n  username: admin@contoso.onmicrosoft.com\n")
	if err := os.WriteFile(configPath, partial, 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := loadInternal(configPath); err != nil {
		t.Fatalf("loadInternal() failed: %v", err)
	}

	if Global.Tenant.Domain != "contoso.onmicrosoft.com" {
		t.Errorf("Tenant.Domain = %q", Global.Tenant.Domain)
	}
	if Global.API.TimeoutSeconds != 30 {
		t.Errorf("API.TimeoutSeconds = %d, want default 30", Global.API.TimeoutSeconds)
	}
}

// TestLoadInternal_MissingExplicitPath verifies an operator-supplied path
// that does not exist is an error, not a silent default.
func TestLoadInternal_MissingExplicitPath(t *testing.T) {
	if err := loadInternal(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config path")
	}
}

// TestApplyEnvOverrides verifies environment variables win over the file.
func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TEAMSVOICE_TENANT_DOMAIN", "env.onmicrosoft.com")
	t.Setenv("TEAMSVOICE_USERNAME", "env-admin@env.onmicrosoft.com")
	t.Setenv("TEAMSVOICE_BUCKET", "env-bucket")

	cfg := DefaultConfig()
	cfg.Tenant.Domain = "file.onmicrosoft.com"
	applyEnvOverrides(&cfg)

	if cfg.Tenant.Domain != "env.onmicrosoft.com" {
		t.Errorf("Tenant.Domain = %q, want env override", cfg.Tenant.Domain)
	}
	if cfg.Tenant.Username != "env-admin@env.onmicrosoft.com" {
		t.Errorf("Tenant.Username = %q, want env override", cfg.Tenant.Username)
	}
	if cfg.Cloud.Bucket != "env-bucket" {
		t.Errorf("Cloud.Bucket = %q, want env override", cfg.Cloud.Bucket)
	}
}

// TestPassword verifies the password comes from the environment only.
func TestPassword(t *testing.T) {
	t.Setenv("TEAMSVOICE_PASSWORD", "hunter2")
	if Password() != "hunter2" {
		t.Errorf("Password() = %q, want %q", Password(), "hunter2")
	}
}

// TestValidate verifies tenant fields are required and bounded.
func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("default config with empty tenant should not validate")
	}

	cfg.Tenant.Domain = "contoso.onmicrosoft.com"
	cfg.Tenant.Username = "admin@contoso.onmicrosoft.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("filled config failed validation: %v", err)
	}

	cfg.Logging.Level = "shouting"
	if err := cfg.Validate(); err == nil {
		t.Error("bad log level should not validate")
	}
}
