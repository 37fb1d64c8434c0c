// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/tacnet-tui/internal/config"
)

func newConfigCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the tacnet configuration",
		Long: `Reads and writes the configuration file (default ~/.tacnet/config.toml).

Examples:
  tacnet config show
  tacnet config init
  tacnet config get mission.callsign
  tacnet config set ui.theme amber`,
	}
	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigInitCmd(opts),
		newConfigGetCmd(opts),
		newConfigSetCmd(opts),
		newConfigKeysCmd(opts),
	)
	return cmd
}

func newConfigShowCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API key redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			path, _ := configPath(opts)
			fmt.Fprintln(opts.Out, TitleStyle.Render("TACNET CONFIGURATION"))
			fmt.Fprintln(opts.Out, RenderField("File", path))
			fmt.Fprintln(opts.Out, RenderSeparator(min(GetTerminalWidth()-4, 60)))
			fmt.Fprintln(opts.Out, cfg.String())
			return nil
		},
	}
}

func newConfigInitCmd(opts *Options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := saveConfig(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintln(opts.Out, "Wrote "+path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigGetCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			v, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			if strings.EqualFold(args[0], "gemini.api_key") && v != "" {
				v = "[REDACTED]"
			}
			fmt.Fprintln(opts.Out, v)
			return nil
		},
	}
}

func newConfigSetCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one value in the configuration file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(opts)
			if err != nil {
				return err
			}

			// Env overrides are not applied here so they never get persisted.
			cfg := config.Default()
			if _, statErr := os.Stat(path); statErr == nil {
				if err := loadFile(cfg, path); err != nil {
					return err
				}
			}

			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid value for %s: %w", args[0], err)
			}
			if err := saveConfig(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(opts.Out, "%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newConfigKeysCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every configuration key",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, k := range config.GetAllKeys() {
				fmt.Fprintln(opts.Out, k)
			}
		},
	}
}

// configPath is --config, or the default TOML location.
func configPath(opts *Options) (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

func isJSON(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}

func loadFile(cfg *config.Config, path string) error {
	if isJSON(path) {
		return config.LoadJSON(cfg, path)
	}
	return config.LoadTOML(cfg, path)
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		return errors.New("no config path")
	}
	if isJSON(path) {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}
