// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tacnet - a tactical radio net for the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/tacnet-tui/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, cli.ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
