// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package intel runs the periodic SIGINT feed: a ticker that asks the
// uplink for one sentence of intelligence and keeps the newest few reports.
package intel

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/metrics"
	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

// DefaultInterval is the time between polls.
const DefaultInterval = 15000 * time.Millisecond

// Source produces intel sentences. augment.Client satisfies it.
// GenerateIntel is total: it never fails, it falls back.
type Source interface {
	GenerateIntel(ctx context.Context) string
}

// Config holds feed parameters.
type Config struct {
	// Interval between polls (default: 15s)
	Interval time.Duration

	// Capacity of the report ring (default: 5)
	Capacity int
}

// Option configures a Feed.
type Option func(*Feed)

// WithClock injects the clock used for report timestamps.
func WithClock(c util.Clock) Option {
	return func(f *Feed) {
		if c != nil {
			f.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Feed) { f.metrics = m }
}

// Feed polls a Source on a fixed interval into a Ring.
type Feed struct {
	src      Source
	interval time.Duration
	ring     *Ring
	clock    util.Clock
	logger   *zap.Logger
	metrics  *metrics.Metrics

	mu      sync.Mutex
	subs    map[int]func(model.IntelReport)
	nextSub int
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewFeed creates a stopped Feed. Call Start to begin polling.
func NewFeed(src Source, cfg Config, opts ...Option) *Feed {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	f := &Feed{
		src:      src,
		interval: cfg.Interval,
		ring:     NewRing(cfg.Capacity),
		clock:    util.SystemClock{},
		logger:   zap.NewNop(),
		subs:     make(map[int]func(model.IntelReport)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Interval returns the poll interval.
func (f *Feed) Interval() time.Duration {
	return f.interval
}

// Start begins polling. The first poll happens one interval after Start.
// Calling Start on a running feed does nothing.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.done = make(chan struct{})
	go f.run(ctx, f.done)

	f.logger.Debug("intel feed started", zap.Duration("interval", f.interval))
}

// Stop cancels the ticker and waits for an in-progress poll to finish.
func (f *Feed) Stop() {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	f.logger.Debug("intel feed stopped")
}

func (f *Feed) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.Poll(ctx)
		}
	}
}

// Poll fetches one report, pushes it onto the ring and returns it.
func (f *Feed) Poll(ctx context.Context) model.IntelReport {
	content := f.src.GenerateIntel(ctx)
	rep := model.NewIntelReport(content, f.clock.Now())
	f.ring.Push(rep)
	f.metrics.IntelReported()

	f.mu.Lock()
	subs := make([]func(model.IntelReport), 0, len(f.subs))
	for _, fn := range f.subs {
		subs = append(subs, fn)
	}
	f.mu.Unlock()

	for _, fn := range subs {
		fn(rep)
	}
	return rep
}

// Reports returns the retained reports, newest first.
func (f *Feed) Reports() []model.IntelReport {
	return f.ring.Items()
}

// Subscribe registers fn to be called after every poll. The returned func
// unregisters it.
func (f *Feed) Subscribe(fn func(model.IntelReport)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}
