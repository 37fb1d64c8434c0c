// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/config"
	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/ui/chat"
)

// shutdownTimeout bounds the relay's graceful stop.
const shutdownTimeout = 5 * time.Second

// runConsole opens the radio console and blocks until the operator quits.
func runConsole(ctx context.Context, opts *Options) error {
	if err := RequiresTTY("open the radio console"); err != nil {
		return fmt.Errorf("%w (try 'tacnet tac' or 'tacnet serve')", err)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt := NewRuntime(ctx, cfg, logger, opts.NewGenerator)
	rt.Start(ctx)
	defer rt.Stop()

	if cfg.Server.Enabled {
		stopRelay := startRelay(rt)
		defer stopRelay()
	}

	console := chat.New(ctx, rt.Store, rt.Feed, chat.Config{
		Callsign: cfg.Mission.Callsign,
		Position: model.Position{Lat: cfg.Position.Lat, Lng: cfg.Position.Lng},
		Theme:    cfg.UI.Theme,
		Tactical: cfg.UI.TacticalDefault,
		Uplink:   rt.UplinkLabel(),
	})

	p := tea.NewProgram(console, tea.WithAltScreen(), tea.WithContext(ctx))
	unbind := chat.Bind(p, rt.Store, rt.Feed)
	defer unbind()

	if stopWatch := watchTheme(ctx, opts, cfg, p, logger); stopWatch != nil {
		defer stopWatch()
	}

	logger.Info("console started",
		zap.String("provider", cfg.Provider),
		zap.String("model", rt.Augment.Model()),
		zap.Bool("relay", cfg.Server.Enabled),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// startRelay serves the status relay in the background and returns its
// shutdown func.
func startRelay(rt *Runtime) func() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := rt.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.Logger.Error("status relay failed", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := rt.Server.Shutdown(ctx); err != nil {
			rt.Logger.Warn("status relay shutdown", zap.Error(err))
		}
		wg.Wait()
	}
}

// watchTheme reloads the console palette when the config file's ui.theme
// changes. It returns nil when the file cannot be watched.
func watchTheme(ctx context.Context, opts *Options, cfg *config.Config, p *tea.Program, logger *zap.Logger) func() {
	path := opts.ConfigPath
	if path == "" {
		var err error
		if path, err = config.ConfigPathTOML(); err != nil {
			return nil
		}
		if err := config.EnsureConfigDir(); err != nil {
			return nil
		}
	}

	var (
		mu      sync.Mutex
		current = cfg.UI.Theme
	)
	w, err := config.NewWatcher(path, func(next *config.Config) {
		mu.Lock()
		changed := next.UI.Theme != current
		current = next.UI.Theme
		mu.Unlock()
		if changed {
			logger.Info("theme reloaded", zap.String("theme", next.UI.Theme))
			p.Send(chat.ThemeChangedMsg{Name: next.UI.Theme})
		}
	})
	if err != nil {
		logger.Debug("config watch disabled", zap.Error(err))
		return nil
	}
	w.WithErrorHandler(func(err error) {
		logger.Warn("config reload failed", zap.String("path", w.Path()), zap.Error(err))
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return func() {
		w.Close()
		<-done
	}
}
