// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides the structured logger shared by every part of
// the tool.
//
// Diagnostics go to stderr so command output stays clean for pipelines:
// pretty console format when stderr is a terminal, JSON otherwise. An
// optional log directory adds a JSON file alongside, one per service and
// day.
//
// Usage:
//
//	logging.Init(logging.Config{Level: "debug"})
//	defer logging.Close()
//	logging.Info().Str("archive", path).Msg("backup complete")
//
// Secrets are the caller's problem: nothing here redacts tokens or
// passwords, so do not log them.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Config controls logger initialization.
type Config struct {
	// Level is the minimum severity: trace, debug, info, warn or error.
	// Anything else falls back to info.
	Level string

	// LogDir, when set, adds a JSON log file under this directory.
	// A leading ~ expands to the home directory.
	LogDir string

	// Service names the log file ({service}_{date}.log). Defaults to
	// "teamsvoice".
	Service string
}

var (
	log     zerolog.Logger
	logFile *os.File
)

func init() {
	// Usable before Init for early failures.
	log = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// parseLevel maps a level name onto zerolog's scale.
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init configures the package logger. Safe to call more than once; the
// last call wins. Returns an error only when the log directory cannot be
// prepared, and stderr logging still works in that case.
func Init(cfg Config) error {
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	var console io.Writer = os.Stderr
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	writer := console
	if cfg.LogDir != "" {
		f, err := openLogFile(cfg.LogDir, cfg.Service)
		if err != nil {
			log = zerolog.New(console).Level(level).With().Timestamp().Logger()
			return err
		}
		closeLogFile()
		logFile = f
		writer = zerolog.MultiLevelWriter(console, f)
	}

	log = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return nil
}

// InitWithWriter points the logger at a custom writer. Tests use it to
// capture output.
func InitWithWriter(level string, w io.Writer) {
	l := parseLevel(level)
	zerolog.SetGlobalLevel(l)
	log = zerolog.New(w).Level(l).With().Timestamp().Logger()
}

// openLogFile creates the log directory if needed and opens today's file
// for appending.
func openLogFile(dir, service string) (*os.File, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expanding log dir: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	if service == "" {
		service = "teamsvoice"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Close releases the log file, if one was opened.
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return log.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal starts a fatal-level event; Msg exits the process.
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// With derives a child context for attaching standing fields.
func With() zerolog.Context {
	return log.With()
}
