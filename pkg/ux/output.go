// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux styles the operator-facing command output. Diagnostics belong
// to pkg/logging; everything printed here is the tool talking to a human
// (or, in plain mode, to a script).
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette. Blues for structure, conventional colors for state.
var (
	ColorAccent  = lipgloss.Color("#5B8DEF") // headings, highlights
	ColorSuccess = lipgloss.Color("#35C28F")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#5C6773")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
}

// Icon marks a line's state.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
)

// Render returns the icon with its state color.
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return Styles.Muted.Render(string(i))
	}
}

// Title prints a styled section heading. Silent in plain mode; scripts key
// off the state lines, not decoration.
func Title(text string) {
	if Plain() {
		return
	}
	fmt.Println(Styles.Title.Render(text))
}

// Success prints a completed-step line.
func Success(text string) {
	if Plain() {
		fmt.Fprintf(os.Stdout, "OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconSuccess.Render(), text)
}

// Warning prints a recoverable-problem line.
func Warning(text string) {
	if Plain() {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
}

// Error prints a failure line to stderr.
func Error(text string) {
	if Plain() {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
}

// Info prints a progress line.
func Info(text string) {
	if Plain() {
		fmt.Println(text)
		return
	}
	fmt.Printf("%s %s\n", IconArrow.Render(), text)
}

// Muted prints secondary detail. Silent in plain mode.
func Muted(text string) {
	if Plain() {
		return
	}
	fmt.Println(Styles.Muted.Render(text))
}

// Step prints one collection step with its state and optional detail.
func Step(state Icon, name, detail string) {
	if Plain() {
		fmt.Printf("%s\t%s\t%s\n", string(state), name, detail)
		return
	}
	if detail != "" {
		fmt.Printf("%s %s %s\n", state.Render(), name, Styles.Muted.Render("("+detail+")"))
		return
	}
	fmt.Printf("%s %s\n", state.Render(), name)
}

// Summary prints the restore tally.
func Summary(created, updated, failed, skipped int) {
	if Plain() {
		fmt.Printf("SUMMARY: created=%d updated=%d failed=%d skipped=%d\n",
			created, updated, failed, skipped)
		return
	}
	fmt.Printf("\n%s %s  %s %s  %s %s  %s %s\n",
		Styles.Success.Render(fmt.Sprintf("%d", created)), Styles.Muted.Render("created"),
		Styles.Success.Render(fmt.Sprintf("%d", updated)), Styles.Muted.Render("updated"),
		Styles.Error.Render(fmt.Sprintf("%d", failed)), Styles.Muted.Render("failed"),
		Styles.Warning.Render(fmt.Sprintf("%d", skipped)), Styles.Muted.Render("skipped"),
	)
}
