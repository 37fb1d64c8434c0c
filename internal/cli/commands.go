// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/config"
	"github.com/jeranaias/tacnet-tui/internal/model"
)

// =============================================================================
// TAC
// =============================================================================

func newTacCmd(opts *Options) *cobra.Command {
	var callsign string
	cmd := &cobra.Command{
		Use:   "tac <text>",
		Short: "Rewrite text as tactical radio brevity",
		Long: `Sends one line through the uplink and prints the tactical rewrite.
If the uplink is unavailable the text is printed unchanged.

Example:
  tacnet tac "we are moving to the bridge, two hostiles spotted"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if callsign == "" {
				callsign = cfg.Mission.Callsign
			}
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("nothing to transmit")
			}

			rt := NewRuntime(cmd.Context(), cfg, newLogger(cfg), opts.NewGenerator)
			defer rt.Logger.Sync() //nolint:errcheck
			defer rt.Stop()

			out := rt.Augment.Tacticalize(cmd.Context(), text, callsign)
			fmt.Fprintln(opts.Out, CallsignStyle.Render(callsign+":")+" "+out)
			return nil
		},
	}
	cmd.Flags().StringVar(&callsign, "callsign", "", "sender callsign (default mission.callsign)")
	return cmd
}

// =============================================================================
// INTEL
// =============================================================================

func newIntelCmd(opts *Options) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "intel",
		Short: "Intercept SIGINT reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New("--count must be at least 1")
			}
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			rt := NewRuntime(cmd.Context(), cfg, newLogger(cfg), opts.NewGenerator)
			defer rt.Logger.Sync() //nolint:errcheck
			defer rt.Stop()

			for i := 0; i < count; i++ {
				rep := rt.Feed.Poll(cmd.Context())
				fmt.Fprintln(opts.Out, DimStyle.Render("["+rep.Timestamp+"] "+rep.Source)+" "+ValueStyle.Render(rep.Content))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of reports")
	return cmd
}

// =============================================================================
// SERVE
// =============================================================================

func newServeCmd(opts *Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the intel feed and status relay without the console",
		Long: `Runs the conversation store and intel feed headless and serves them
over the read-only status relay until interrupted.

Endpoints:
  GET /health, /metrics, /v1/messages, /v1/messages/{id}, /v1/intel`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := newLogger(cfg)
			defer logger.Sync() //nolint:errcheck

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt := NewRuntime(ctx, cfg, logger, opts.NewGenerator)
			rt.Start(ctx)
			defer rt.Stop()

			stopRelay := startRelay(rt)
			fmt.Fprintln(opts.Out, TitleStyle.Render("STATUS RELAY ON "+cfg.Server.Addr))
			logger.Info("relay started", zap.String("addr", cfg.Server.Addr))

			<-ctx.Done()
			stopRelay()
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}

// =============================================================================
// MODELS
// =============================================================================

func newModelsCmd(opts *Options) *cobra.Command {
	var asJSON, local bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List known uplink models",
		Long: `Lists the models tacnet knows by callsign. With --local, lists the
models pulled into the Ollama server at ollama.url instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				return listLocalModels(cmd.Context(), opts, asJSON)
			}
			var all []model.ModelInfo
			for _, p := range []string{config.ProviderGemini, config.ProviderOllama} {
				all = append(all, model.GetModelsByProvider(p)...)
			}
			if asJSON {
				enc := json.NewEncoder(opts.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			}

			fmt.Fprintln(opts.Out, TitleStyle.Render("UPLINK MODELS"))
			for _, info := range all {
				fmt.Fprintln(opts.Out, RenderField(info.ID, info.Callsign+"  "+DimStyle.Render(info.Provider+" / "+info.Name)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().BoolVar(&local, "local", false, "list models pulled into the local Ollama server")
	return cmd
}

func listLocalModels(ctx context.Context, opts *Options, asJSON bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client := newOllamaClient(cfg)

	ctx, cancel := context.WithTimeout(ctx, ollamaCheckTimeout)
	defer cancel()
	models, err := client.ListModels(ctx)
	if err != nil {
		return describeOllamaError(client, err)
	}

	if asJSON {
		enc := json.NewEncoder(opts.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(models)
	}

	fmt.Fprintln(opts.Out, TitleStyle.Render("LOCAL MODELS AT "+client.BaseURL()))
	if len(models) == 0 {
		fmt.Fprintln(opts.Out, DimStyle.Render("none pulled (run: ollama pull "+cfg.Ollama.Model+")"))
		return nil
	}
	for _, m := range models {
		value := humanize.Bytes(uint64(m.Size))
		if m.Matches(cfg.Ollama.Model) {
			value += "  " + CallsignStyle.Render("ACTIVE")
		}
		fmt.Fprintln(opts.Out, RenderField(m.Name, value))
	}
	return nil
}

// =============================================================================
// VERSION
// =============================================================================

func newVersionCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(opts.Out, "tacnet %s (commit %s, built %s, %s %s/%s)\n",
				Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
