// Copyright (C) 2026 UC Managed (ops@ucmanaged.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Printf("teamsvoice %s (commit %s, built %s)\n", version, commit, date)
}
