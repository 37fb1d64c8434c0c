// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation owns the radio message log and the two workflows
// that write to it: operator submissions and simulated HQ replies.
package conversation

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/tacnet-tui/internal/metrics"
	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultCallsign       = "ECHO-1"
	DefaultHQCallsign     = "OVERLORD"
	DefaultReplyDelay     = 2000 * time.Millisecond
	DefaultReplyThreshold = 0.4

	// BriefingText opens every seeded session.
	BriefingText = "STRIKE TEAM ECHO, ESTABLISH COMMS. MISSION IS LIVE. PROVIDE STATUS REPORT."
)

// Drop reasons reported to metrics.
const (
	DropBlank    = "blank"
	DropInFlight = "in_flight"
)

// HQ reply lifecycle events reported to metrics.
const (
	ReplyScheduled  = "scheduled"
	ReplySkipped    = "skipped"
	ReplyAppended   = "appended"
	ReplySuppressed = "suppressed"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Augmenter is the subset of augment.Client the store needs.
// Both calls are total and never return errors.
type Augmenter interface {
	Tacticalize(ctx context.Context, input, callsign string) string
	GenerateHQResponse(ctx context.Context, history []model.Message) string
}

// Rand is a uniform [0,1) source.
type Rand interface {
	Float64() float64
}

// RandFunc adapts a function to Rand.
type RandFunc func() float64

// Float64 calls f.
func (f RandFunc) Float64() float64 { return f() }

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds the mission parameters for a Store.
type Config struct {
	// Callsign stamped on operator messages (default: ECHO-1)
	Callsign string

	// HQCallsign stamped on simulated replies (default: OVERLORD)
	HQCallsign string

	// ReplyDelay before an HQ reply is requested (default: 2000ms)
	ReplyDelay time.Duration

	// ReplyThreshold: a reply is scheduled when a draw exceeds it (default: 0.4)
	ReplyThreshold float64

	// SeedBriefing appends the opening HQ transmission on creation
	SeedBriefing bool
}

// DefaultConfig returns the standard mission parameters.
func DefaultConfig() Config {
	return Config{
		Callsign:       DefaultCallsign,
		HQCallsign:     DefaultHQCallsign,
		ReplyDelay:     DefaultReplyDelay,
		ReplyThreshold: DefaultReplyThreshold,
		SeedBriefing:   true,
	}
}

// Option configures a Store.
type Option func(*Store)

// WithRand injects the randomness source for the HQ reply draw.
func WithRand(r Rand) Option {
	return func(s *Store) {
		if r != nil {
			s.rand = r
		}
	}
}

// WithClock injects the clock used for message timestamps.
func WithClock(c util.Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// =============================================================================
// STORE
// =============================================================================

// Store is the append-only radio log.
//
// Messages are never mutated or removed after Append. Readers receive
// copies, so a sequence read earlier is always a prefix of one read later.
// At most one submission is augmented at a time; HQ replies are not
// serialized and may overlap.
type Store struct {
	aug     Augmenter
	cfg     Config
	rand    Rand
	clock   util.Clock
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	messages []model.Message
	subs     map[int]func(model.Message)
	nextSub  int
	stopped  bool

	sending atomic.Bool
	pending atomic.Int32

	ctx       context.Context
	cancel    context.CancelFunc
	stopWatch func() bool
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

// New creates a Store that augments through aug, which must not be nil.
func New(aug Augmenter, cfg Config, opts ...Option) *Store {
	def := DefaultConfig()
	if cfg.Callsign == "" {
		cfg.Callsign = def.Callsign
	}
	if cfg.HQCallsign == "" {
		cfg.HQCallsign = def.HQCallsign
	}
	if cfg.ReplyDelay < 0 {
		cfg.ReplyDelay = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		aug:    aug,
		cfg:    cfg,
		rand:   RandFunc(rand.Float64),
		clock:  util.SystemClock{},
		logger: zap.NewNop(),
		subs:   make(map[int]func(model.Message)),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.SeedBriefing {
		s.Append(Briefing(cfg.HQCallsign, s.clock.Now()))
	}
	return s
}

// Briefing returns the opening HQ transmission.
func Briefing(hqCallsign string, now time.Time) model.Message {
	return model.NewMessage(model.SenderHQ, hqCallsign, BriefingText, true, now).
		WithPriority(model.PriorityHigh)
}

// Config returns the store's mission parameters.
func (s *Store) Config() Config {
	return s.cfg
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start ties the store to ctx: when ctx is done the store stops.
func (s *Store) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.stopWatch != nil {
		return
	}
	s.stopWatch = context.AfterFunc(ctx, s.Stop)
}

// Stop cancels every pending HQ reply and waits for their goroutines.
// Replies that have not been appended yet are dropped. Safe to call twice.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		watch := s.stopWatch
		s.mu.Unlock()

		if watch != nil {
			watch()
		}
		s.cancel()
		s.wg.Wait()
		s.logger.Debug("conversation store stopped")
	})
}

// =============================================================================
// READ INTERFACE
// =============================================================================

// Messages returns a copy of the log in insertion order.
func (s *Store) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneMessages(s.messages)
}

// Len returns the number of messages in the log.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// Sending reports whether a submission is being augmented.
func (s *Store) Sending() bool {
	return s.sending.Load()
}

// PendingReplies returns the number of scheduled HQ replies not yet resolved.
func (s *Store) PendingReplies() int {
	return int(s.pending.Load())
}

// Subscribe registers fn to be called after every append, outside the
// store lock. The returned func unregisters it.
func (s *Store) Subscribe(fn func(model.Message)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// =============================================================================
// WRITE INTERFACE
// =============================================================================

// Append adds msg to the end of the log. It is the only way messages enter
// the store.
func (s *Store) Append(msg model.Message) {
	s.appendMessage(msg, false)
}

// appendMessage appends msg and returns a snapshot of the log including it.
// With onlyRunning set, nothing is appended after Stop.
func (s *Store) appendMessage(msg model.Message, onlyRunning bool) ([]model.Message, bool) {
	msg = msg.Clone()

	s.mu.Lock()
	if onlyRunning && s.stopped {
		s.mu.Unlock()
		return nil, false
	}
	s.messages = append(s.messages, msg)
	snapshot := model.CloneMessages(s.messages)
	subs := make([]func(model.Message), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.metrics.MessageAppended(msg.Sender.String())
	for _, fn := range subs {
		fn(msg.Clone())
	}
	return snapshot, true
}

// SubmitUserMessage appends an operator transmission.
//
// Blank text and submissions made while another is in flight are rejected
// and return false. In tactical mode the text is rewritten by the
// augmenter first. The in-flight guard is released when this returns, even
// if the augmenter panics; the follow-up HQ reply, if any, runs in the
// background.
func (s *Store) SubmitUserMessage(ctx context.Context, rawText string, tactical bool) (model.Message, bool) {
	if strings.TrimSpace(rawText) == "" {
		s.metrics.SubmissionDropped(DropBlank)
		return model.Message{}, false
	}
	if !s.sending.CompareAndSwap(false, true) {
		s.metrics.SubmissionDropped(DropInFlight)
		s.logger.Debug("submission rejected: already in flight")
		return model.Message{}, false
	}
	defer s.sending.Store(false)

	text := rawText
	if tactical {
		text = s.aug.Tacticalize(ctx, rawText, s.cfg.Callsign)
	}

	msg := model.NewMessage(model.SenderUser, s.cfg.Callsign, text, tactical, s.clock.Now())
	snapshot, _ := s.appendMessage(msg, false)

	s.logger.Info("transmission appended",
		zap.String("id", msg.ID),
		zap.Bool("tactical", tactical))

	s.MaybeScheduleHQReply(snapshot)
	return msg, true
}

// MaybeScheduleHQReply draws once from the store's Rand and, when the draw
// exceeds the reply threshold, schedules an HQ reply to snapshot after the
// reply delay. It returns whether a reply was scheduled.
//
// The reply is appended with the time at which it completes, not the time
// it was scheduled. Replies overlap freely with new submissions.
func (s *Store) MaybeScheduleHQReply(snapshot []model.Message) bool {
	draw := s.rand.Float64()
	if draw <= s.cfg.ReplyThreshold {
		s.metrics.HQReply(ReplySkipped)
		return false
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.metrics.HQReply(ReplySuppressed)
		return false
	}
	s.wg.Add(1)
	s.pending.Add(1)
	s.mu.Unlock()

	history := model.CloneMessages(snapshot)
	s.metrics.HQReply(ReplyScheduled)
	s.logger.Debug("hq reply scheduled",
		zap.Float64("draw", draw),
		zap.Duration("delay", s.cfg.ReplyDelay))

	go s.deliverHQReply(history)
	return true
}

func (s *Store) deliverHQReply(history []model.Message) {
	defer s.wg.Done()
	defer s.pending.Add(-1)

	timer := time.NewTimer(s.cfg.ReplyDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-s.ctx.Done():
		s.metrics.HQReply(ReplySuppressed)
		return
	}

	text := s.aug.GenerateHQResponse(s.ctx, history)
	if s.ctx.Err() != nil {
		s.metrics.HQReply(ReplySuppressed)
		return
	}

	reply := model.NewMessage(model.SenderHQ, s.cfg.HQCallsign, text, true, s.clock.Now()).
		WithPriority(model.PriorityMed)
	if _, ok := s.appendMessage(reply, true); !ok {
		s.metrics.HQReply(ReplySuppressed)
		return
	}
	s.metrics.HQReply(ReplyAppended)
	s.logger.Info("hq reply appended", zap.String("id", reply.ID))
}
