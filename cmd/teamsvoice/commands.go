// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ucmanaged/teamsvoice/cmd/teamsvoice/config"
	"github.com/ucmanaged/teamsvoice/pkg/logging"
	"github.com/ucmanaged/teamsvoice/pkg/ux"
)

// Process exit codes. Scripts distinguish an operator saying no from a
// failed run.
const (
	exitOK       = 0
	exitError    = 1
	exitDeclined = 2
)

// --- Global Command Variables ---
var (
	cfgFile  string
	logLevel string
	noColor  bool

	adminDomain  string // shared by backup and restore
	backupFull   bool
	backupOutput string
	keepExisting bool
	uploadBucket string

	rootCmd = &cobra.Command{
		Use:   "teamsvoice",
		Short: "Backup and restore for Teams Enterprise Voice tenant configuration",
		Long: `teamsvoice archives a tenant's Enterprise Voice configuration (dial
plans, voice routes, voice routing policies, PSTN usages, translation
rules, PSTN gateway rule attachments) and restores such an archive onto a
tenant, creating or updating each object as needed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cfgFile); err != nil {
				return err
			}
			ux.InitMode(noColor)
			level := logLevel
			if level == "" {
				level = config.Global.Logging.Level
			}
			err := logging.Init(logging.Config{
				Level:   level,
				LogDir:  config.Global.Logging.Directory,
				Service: "teamsvoice",
			})
			if err != nil {
				// Stderr logging still works without the file.
				ux.Warning(fmt.Sprintf("file logging disabled: %v", err))
			}
			logging.Info().
				Str("run_id", uuid.NewString()).
				Str("command", cmd.Name()).
				Msg("run started")
			return nil
		},
	}

	backupCmd = &cobra.Command{
		Use:   "backup",
		Short: "Back up the tenant's Enterprise Voice configuration to a zip archive",
		Args:  cobra.NoArgs,
		Run:   runBackup, // Defined in cmd_backup.go
	}

	restoreCmd = &cobra.Command{
		Use:   "restore [archive]",
		Short: "Restore an Enterprise Voice configuration archive onto the tenant",
		Long: `Restore reads a backup archive, validates each collection, and applies
it with create-or-update semantics. Unless --keep-existing is set, the
live configuration is deleted first after an explicit confirmation.`,
		Args: cobra.ExactArgs(1),
		Run:  runRestore, // Defined in cmd_restore.go
	}

	uploadCmd = &cobra.Command{
		Use:   "upload [path]",
		Short: "Upload a backup archive (or a directory of them) to GCS",
		Args:  cobra.ExactArgs(1),
		Run:   runUpload, // Defined in cmd_upload.go
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run:   runVersion, // Defined in cmd_version.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Path to the config file (default ~/.teamsvoice/teamsvoice.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Plain output without styling (also honored via NO_COLOR)")

	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().BoolVar(&backupFull, "full", false,
		"Back up the whole tenant policy surface, not just Enterprise Voice")
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "",
		"Directory to write the archive to (default from config)")
	backupCmd.Flags().StringVar(&adminDomain, "admin-domain", "",
		"Authenticate against this domain instead of the tenant domain")

	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().BoolVar(&keepExisting, "keep-existing", false,
		"Skip the destructive purge and restore on top of the current configuration")
	restoreCmd.Flags().StringVar(&adminDomain, "admin-domain", "",
		"Authenticate against this domain instead of the tenant domain")

	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadBucket, "bucket", "",
		"GCS bucket to upload to (default from config)")

	rootCmd.AddCommand(versionCmd)
}
