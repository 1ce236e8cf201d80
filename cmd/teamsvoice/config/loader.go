// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// Global is a singleton instance
	Global TeamsVoiceConfig
	once   sync.Once
)

// Load ensures the config is loaded into the Global variable. An empty path
// selects the default location and creates a starter file on first run.
func Load(path string) error {
	var err error
	once.Do(func() {
		err = loadInternal(path)
	})
	return err
}

func loadInternal(path string) error {
	// A .env next to the binary is a convenience for lab tenants; missing
	// is the normal case.
	_ = godotenv.Load()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			fmt.Printf("First run detected, creating the config at %s\n", path)
			if err := createDefault(path); err != nil {
				return err
			}
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read the config file: %w", err)
	}
	Global = DefaultConfig()
	if err = yaml.Unmarshal(data, &Global); err != nil {
		return fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	applyEnvOverrides(&Global)
	return nil
}

// DefaultPath returns ~/.teamsvoice/teamsvoice.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".teamsvoice", "teamsvoice.yaml"), nil
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// applyEnvOverrides lets the environment win over the file for the fields an
// operator most often needs to switch per run or keep out of the file.
func applyEnvOverrides(cfg *TeamsVoiceConfig) {
	if v := os.Getenv("TEAMSVOICE_TENANT_DOMAIN"); v != "" {
		cfg.Tenant.Domain = v
	}
	if v := os.Getenv("TEAMSVOICE_ADMIN_DOMAIN"); v != "" {
		cfg.Tenant.AdminDomain = v
	}
	if v := os.Getenv("TEAMSVOICE_USERNAME"); v != "" {
		cfg.Tenant.Username = v
	}
	if v := os.Getenv("TEAMSVOICE_BUCKET"); v != "" {
		cfg.Cloud.Bucket = v
	}
}

// Password returns the administrator password from the environment. The
// config file carries no password field.
func Password() string {
	return os.Getenv("TEAMSVOICE_PASSWORD")
}
