// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Output runs in one of two modes: styled for humans at a terminal, plain
// for scripts and redirected output. Plain mode drops color and decoration
// and prefixes state lines so they can be grepped.

var (
	modeMu    sync.RWMutex
	plainMode bool
	modeSet   bool
)

// InitMode picks the output mode. forcePlain comes from the --no-color
// flag; NO_COLOR and a non-terminal stdout also select plain mode.
func InitMode(forcePlain bool) {
	modeMu.Lock()
	defer modeMu.Unlock()
	modeSet = true
	if forcePlain {
		plainMode = true
		return
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		plainMode = true
		return
	}
	plainMode = !stdoutIsTerminal()
}

// SetPlain forces a mode, mainly for tests.
func SetPlain(plain bool) {
	modeMu.Lock()
	defer modeMu.Unlock()
	modeSet = true
	plainMode = plain
}

// Plain reports whether output is in plain mode. Before InitMode it falls
// back to terminal detection.
func Plain() bool {
	modeMu.RLock()
	defer modeMu.RUnlock()
	if !modeSet {
		return !stdoutIsTerminal()
	}
	return plainMode
}

// Interactive reports whether prompting the operator makes sense: stdin
// must be a terminal regardless of output mode.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
