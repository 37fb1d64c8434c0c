// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/tacnet-tui/internal/augment"
	"github.com/jeranaias/tacnet-tui/internal/metrics"
	"github.com/jeranaias/tacnet-tui/internal/model"
	"github.com/jeranaias/tacnet-tui/internal/util"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// =============================================================================
// TEST HELPERS
// =============================================================================

// stubAugmenter records calls and delegates to optional funcs.
type stubAugmenter struct {
	mu        sync.Mutex
	tactical  func(ctx context.Context, input, callsign string) string
	hq        func(ctx context.Context, history []model.Message) string
	histories [][]model.Message
}

func (a *stubAugmenter) Tacticalize(ctx context.Context, input, callsign string) string {
	if a.tactical != nil {
		return a.tactical(ctx, input, callsign)
	}
	return input
}

func (a *stubAugmenter) GenerateHQResponse(ctx context.Context, history []model.Message) string {
	a.mu.Lock()
	a.histories = append(a.histories, history)
	a.mu.Unlock()
	if a.hq != nil {
		return a.hq(ctx, history)
	}
	return "HQ ACKNOWLEDGES."
}

func (a *stubAugmenter) lastHistory(t *testing.T) []model.Message {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	require.NotEmpty(t, a.histories)
	return a.histories[len(a.histories)-1]
}

func fixedDraw(v float64) Rand {
	return RandFunc(func() float64 { return v })
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SeedBriefing = false
	cfg.ReplyDelay = 10 * time.Millisecond
	return cfg
}

func newTestStore(t *testing.T, aug Augmenter, draw float64, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithRand(fixedDraw(draw))}, opts...)
	s := New(aug, testConfig(), opts...)
	t.Cleanup(s.Stop)
	return s
}

func hqMessages(s *Store) []model.Message {
	var out []model.Message
	for _, m := range s.Messages() {
		if m.Sender == model.SenderHQ {
			out = append(out, m)
		}
	}
	return out
}

func waitForHQ(t *testing.T, s *Store, n int) []model.Message {
	t.Helper()
	require.Eventually(t, func() bool { return len(hqMessages(s)) >= n },
		2*time.Second, 5*time.Millisecond)
	return hqMessages(s)
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmitUserMessage_Verbatim(t *testing.T) {
	s := newTestStore(t, &stubAugmenter{}, 0)

	msg, ok := s.SubmitUserMessage(context.Background(), "  moving to grid 4  ", false)

	require.True(t, ok)
	assert.Equal(t, "  moving to grid 4  ", msg.Text)
	assert.Equal(t, model.SenderUser, msg.Sender)
	assert.Equal(t, "ECHO-1", msg.Callsign)
	assert.False(t, msg.Tactical)
	assert.Nil(t, msg.Priority)
	assert.NotEmpty(t, msg.ID)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Empty(t, cmp.Diff(msg, msgs[0]))
}

func TestSubmitUserMessage_RejectsBlank(t *testing.T) {
	m := metrics.New()
	s := newTestStore(t, &stubAugmenter{}, 0.99, WithMetrics(m))

	for _, raw := range []string{"", " ", "\n\t  "} {
		msg, ok := s.SubmitUserMessage(context.Background(), raw, true)
		assert.False(t, ok, "raw=%q", raw)
		assert.Empty(t, msg.ID)
	}

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.PendingReplies())
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SubmissionsDropped.WithLabelValues(DropBlank)))
}

func TestSubmitUserMessage_Tactical(t *testing.T) {
	aug := &stubAugmenter{
		tactical: func(_ context.Context, input, callsign string) string {
			if input == "need extraction now" && callsign == "ECHO-1" {
				return "REQUESTING IMMEDIATE EXFIL, OVER."
			}
			return input
		},
	}
	s := newTestStore(t, aug, 0)

	msg, ok := s.SubmitUserMessage(context.Background(), "need extraction now", true)

	require.True(t, ok)
	assert.Equal(t, model.SenderUser, msg.Sender)
	assert.Equal(t, "ECHO-1", msg.Callsign)
	assert.Equal(t, "REQUESTING IMMEDIATE EXFIL, OVER.", msg.Text)
	assert.True(t, msg.Tactical)
}

func TestSubmitUserMessage_TacticalUplinkDown(t *testing.T) {
	client := augment.New(augment.GeneratorFunc(func(context.Context, augment.GenerateRequest) (string, error) {
		return "", errors.New("connection refused")
	}))
	s := newTestStore(t, client, 0)

	msg, ok := s.SubmitUserMessage(context.Background(), "need extraction now", true)

	require.True(t, ok)
	assert.Equal(t, "need extraction now", msg.Text)
	assert.True(t, msg.Tactical)
}

func TestSubmitUserMessage_SingleFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	aug := &stubAugmenter{
		tactical: func(_ context.Context, input, _ string) string {
			close(entered)
			<-release
			return "FIRST, OVER."
		},
	}
	m := metrics.New()
	s := newTestStore(t, aug, 0, WithMetrics(m))

	done := make(chan model.Message)
	go func() {
		msg, _ := s.SubmitUserMessage(context.Background(), "first", true)
		done <- msg
	}()

	<-entered
	assert.True(t, s.Sending())

	_, ok := s.SubmitUserMessage(context.Background(), "second", false)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsDropped.WithLabelValues(DropInFlight)))

	close(release)
	first := <-done
	assert.Equal(t, "FIRST, OVER.", first.Text)
	assert.False(t, s.Sending())
	assert.Equal(t, 1, s.Len())

	_, ok = s.SubmitUserMessage(context.Background(), "third", false)
	assert.True(t, ok)
}

func TestSubmitUserMessage_GuardReleasedOnPanic(t *testing.T) {
	aug := &stubAugmenter{
		tactical: func(context.Context, string, string) string {
			panic("radio on fire")
		},
	}
	s := newTestStore(t, aug, 0)

	assert.Panics(t, func() {
		s.SubmitUserMessage(context.Background(), "need extraction now", true)
	})
	assert.False(t, s.Sending())
	assert.Equal(t, 0, s.Len())

	msg, ok := s.SubmitUserMessage(context.Background(), "plain text", false)
	require.True(t, ok)
	assert.Equal(t, "plain text", msg.Text)
}

func TestSubmitUserMessage_GuardReleasedBeforeReply(t *testing.T) {
	aug := &stubAugmenter{}
	s := New(aug, Config{ReplyDelay: time.Hour}, WithRand(fixedDraw(0.9)))

	_, ok := s.SubmitUserMessage(context.Background(), "status green", false)
	require.True(t, ok)

	assert.False(t, s.Sending())
	assert.Equal(t, 1, s.PendingReplies())

	_, ok = s.SubmitUserMessage(context.Background(), "still green", false)
	assert.True(t, ok)
	assert.Equal(t, 2, s.PendingReplies())

	s.Stop()
	assert.Equal(t, 0, s.PendingReplies())
	assert.Empty(t, hqMessages(s))
}

// =============================================================================
// HQ REPLIES
// =============================================================================

func TestMaybeScheduleHQReply_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		draw      float64
		scheduled bool
	}{
		{"zero", 0, false},
		{"at threshold", 0.4, false},
		{"just above", 0.41, true},
		{"high", 0.99, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t, &stubAugmenter{}, tc.draw)
			assert.Equal(t, tc.scheduled, s.MaybeScheduleHQReply(nil))
		})
	}
}

func TestHQReply_Appended(t *testing.T) {
	s := newTestStore(t, &stubAugmenter{}, 0.9)

	_, ok := s.SubmitUserMessage(context.Background(), "in position", false)
	require.True(t, ok)

	replies := waitForHQ(t, s, 1)
	require.Len(t, replies, 1)
	reply := replies[0]
	assert.Equal(t, "HQ ACKNOWLEDGES.", reply.Text)
	assert.Equal(t, "OVERLORD", reply.Callsign)
	assert.True(t, reply.Tactical)
	require.NotNil(t, reply.Priority)
	assert.Equal(t, model.PriorityMed, *reply.Priority)
}

func TestHQReply_NoneBelowThreshold(t *testing.T) {
	m := metrics.New()
	s := newTestStore(t, &stubAugmenter{}, 0.2, WithMetrics(m))

	_, ok := s.SubmitUserMessage(context.Background(), "in position", false)
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, hqMessages(s))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HQReplies.WithLabelValues(ReplySkipped)))
}

func TestHQReply_ReceivesSnapshot(t *testing.T) {
	aug := &stubAugmenter{}
	s := newTestStore(t, aug, 0.9)

	msg, ok := s.SubmitUserMessage(context.Background(), "contact front", false)
	require.True(t, ok)
	waitForHQ(t, s, 1)

	want := []model.Message{msg}
	assert.Empty(t, cmp.Diff(want, aug.lastHistory(t)))
}

func TestHQReply_Fallbacks(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{"call failed", "", errors.New("401 unauthorized"), "HQ COPIES ALL. STAY FROSTY."},
		{"empty text", "", nil, "STATION COPIES ALL. MAINTAIN DISCIPLINE. OUT."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := augment.New(augment.GeneratorFunc(func(context.Context, augment.GenerateRequest) (string, error) {
				return tc.reply, tc.err
			}))
			s := newTestStore(t, client, 0.9)

			_, ok := s.SubmitUserMessage(context.Background(), "radio check", false)
			require.True(t, ok)

			replies := waitForHQ(t, s, 1)
			assert.Equal(t, tc.want, replies[0].Text)
		})
	}
}

func TestHQReply_TimestampAtAppend(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := util.NewFixedClock(start)
	release := make(chan struct{})
	aug := &stubAugmenter{
		hq: func(context.Context, []model.Message) string {
			<-release
			return "COPY."
		},
	}
	s := newTestStore(t, aug, 0.9, WithClock(clock))

	msg, ok := s.SubmitUserMessage(context.Background(), "radio check", false)
	require.True(t, ok)
	assert.Equal(t, "2025-01-01 10:00:00 Z", msg.Timestamp)

	clock.Advance(7 * time.Second)
	close(release)

	replies := waitForHQ(t, s, 1)
	assert.Equal(t, "2025-01-01 10:00:07 Z", replies[0].Timestamp)
}

func TestHQReply_Overlapping(t *testing.T) {
	release := make(chan struct{})
	aug := &stubAugmenter{
		hq: func(context.Context, []model.Message) string {
			<-release
			return "COPY."
		},
	}
	s := newTestStore(t, aug, 0.9)

	_, ok := s.SubmitUserMessage(context.Background(), "one", false)
	require.True(t, ok)
	_, ok = s.SubmitUserMessage(context.Background(), "two", false)
	require.True(t, ok)

	assert.Equal(t, 2, s.PendingReplies())
	close(release)

	waitForHQ(t, s, 2)
	require.Eventually(t, func() bool { return s.PendingReplies() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 4, s.Len())
}

func TestStop_SuppressesPendingReplies(t *testing.T) {
	m := metrics.New()
	aug := &stubAugmenter{
		hq: func(ctx context.Context, _ []model.Message) string {
			<-ctx.Done()
			return "TOO LATE."
		},
	}
	s := New(aug, testConfig(), WithRand(fixedDraw(0.9)), WithMetrics(m))

	_, ok := s.SubmitUserMessage(context.Background(), "holding", false)
	require.True(t, ok)
	require.Equal(t, 1, s.PendingReplies())

	s.Stop()

	assert.Empty(t, hqMessages(s))
	assert.Equal(t, 0, s.PendingReplies())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HQReplies.WithLabelValues(ReplySuppressed)))
	assert.False(t, s.MaybeScheduleHQReply(s.Messages()))

	s.Stop()
}

func TestStart_StopsWhenContextDone(t *testing.T) {
	s := New(&stubAugmenter{}, Config{ReplyDelay: time.Hour}, WithRand(fixedDraw(0.9)))
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.True(t, s.MaybeScheduleHQReply(nil))
	cancel()

	require.Eventually(t, func() bool { return s.PendingReplies() == 0 }, time.Second, 5*time.Millisecond)
	assert.False(t, s.MaybeScheduleHQReply(nil))
	s.Stop()
}

// =============================================================================
// READ INTERFACE
// =============================================================================

func TestMessages_AppendOnlyPrefix(t *testing.T) {
	s := newTestStore(t, &stubAugmenter{}, 0.9)
	ctx := context.Background()

	_, _ = s.SubmitUserMessage(ctx, "alpha", false)
	t1 := s.Messages()

	_, _ = s.SubmitUserMessage(ctx, "bravo", false)
	waitForHQ(t, s, 2)
	t2 := s.Messages()

	require.GreaterOrEqual(t, len(t2), len(t1))
	assert.Empty(t, cmp.Diff(t1, t2[:len(t1)]))
}

func TestMessages_Idempotent(t *testing.T) {
	s := New(&stubAugmenter{}, DefaultConfig(), WithRand(fixedDraw(0)))
	defer s.Stop()

	first := s.Messages()
	second := s.Messages()
	assert.Empty(t, cmp.Diff(first, second))

	// Mutating a returned copy must not reach the store.
	*first[0].Priority = model.PriorityLow
	first[0].Text = "tampered"
	assert.Empty(t, cmp.Diff(second, s.Messages()))
}

func TestNew_SeedBriefing(t *testing.T) {
	s := New(&stubAugmenter{}, DefaultConfig())
	defer s.Stop()

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, model.SenderHQ, msgs[0].Sender)
	assert.Equal(t, "OVERLORD", msgs[0].Callsign)
	assert.Equal(t, BriefingText, msgs[0].Text)
	assert.True(t, msgs[0].Tactical)
	assert.True(t, msgs[0].IsUrgent())
}

func TestNew_FillsDefaults(t *testing.T) {
	s := New(&stubAugmenter{}, Config{})
	defer s.Stop()

	cfg := s.Config()
	assert.Equal(t, DefaultCallsign, cfg.Callsign)
	assert.Equal(t, DefaultHQCallsign, cfg.HQCallsign)
	assert.Equal(t, 0, s.Len())
}

func TestSubscribe(t *testing.T) {
	s := newTestStore(t, &stubAugmenter{}, 0)

	var mu sync.Mutex
	var got []string
	unsubscribe := s.Subscribe(func(m model.Message) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, m.Text)
	})

	_, _ = s.SubmitUserMessage(context.Background(), "one", false)
	unsubscribe()
	_, _ = s.SubmitUserMessage(context.Background(), "two", false)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"one"}, got)
}
