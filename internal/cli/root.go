// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Options holds the global flags and the injectable collaborators.
type Options struct {
	ConfigPath string
	Provider   string
	NoTactical bool
	Serve      bool

	// NewGenerator builds the uplink; nil means NewGenerator.
	NewGenerator GeneratorFactory

	Out io.Writer
	Err io.Writer
}

// NewRootCmd builds the tacnet command tree. Running it without a
// subcommand opens the radio console.
func NewRootCmd(opts *Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	root := &cobra.Command{
		Use:   "tacnet",
		Short: "tacnet - tactical radio net for the terminal",
		Long: `tacnet is a tactical radio chat console.

Your transmissions can be rewritten into radio brevity by the uplink model,
HQ answers some of them after a short delay, and a SIGINT feed reports
intercepted chatter every few seconds.

Run without arguments to open the radio console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole(cmd.Context(), opts)
		},
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.tacnet/config.toml)")
	pf.StringVar(&opts.Provider, "provider", "", "uplink provider: gemini or ollama")
	root.Flags().BoolVar(&opts.NoTactical, "no-tactical", false, "start with Tactical Brevity Mode off")
	root.Flags().BoolVar(&opts.Serve, "serve", false, "run the status relay alongside the console")

	root.AddCommand(
		newTacCmd(opts),
		newIntelCmd(opts),
		newServeCmd(opts),
		newModelsCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd(&Options{}).ExecuteContext(ctx)
}
