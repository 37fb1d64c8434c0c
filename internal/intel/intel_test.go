// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intel

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
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

// countingSource returns "report N" for the Nth call.
type countingSource struct {
	n atomic.Int32
}

func (s *countingSource) GenerateIntel(context.Context) string {
	return fmt.Sprintf("report %d", s.n.Add(1))
}

func contents(reps []model.IntelReport) []string {
	out := make([]string, len(reps))
	for i, r := range reps {
		out[i] = r.Content
	}
	return out
}

// =============================================================================
// RING
// =============================================================================

func TestRing_NewestFirst(t *testing.T) {
	r := NewRing(5)
	assert.Empty(t, r.Items())

	for i := 1; i <= 3; i++ {
		r.Push(model.IntelReport{Content: fmt.Sprintf("r%d", i)})
	}

	assert.Equal(t, []string{"r3", "r2", "r1"}, contents(r.Items()))
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 5, r.Cap())
}

func TestRing_EvictsOldest(t *testing.T) {
	r := NewRing(5)
	for i := 1; i <= 6; i++ {
		r.Push(model.IntelReport{Content: fmt.Sprintf("r%d", i)})
	}

	got := contents(r.Items())
	assert.Equal(t, []string{"r6", "r5", "r4", "r3", "r2"}, got)
	assert.NotContains(t, got, "r1")
}

func TestRing_ManyInserts(t *testing.T) {
	r := NewRing(5)
	for i := 1; i <= 23; i++ {
		r.Push(model.IntelReport{Content: fmt.Sprintf("r%d", i)})
		assert.LessOrEqual(t, r.Len(), 5)
	}
	assert.Equal(t, []string{"r23", "r22", "r21", "r20", "r19"}, contents(r.Items()))
}

func TestRing_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewRing(0).Cap())
	assert.Equal(t, DefaultCapacity, NewRing(-3).Cap())
	assert.Equal(t, 1, NewRing(1).Cap())
}

func TestRing_ItemsIsCopy(t *testing.T) {
	r := NewRing(2)
	r.Push(model.IntelReport{Content: "a"})

	items := r.Items()
	items[0].Content = "tampered"
	assert.Equal(t, "a", r.Items()[0].Content)
}

func TestRing_Concurrent(t *testing.T) {
	r := NewRing(5)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.Push(model.IntelReport{Content: "x"})
				_ = r.Items()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, r.Len())
}

// =============================================================================
// FEED
// =============================================================================

func TestFeed_Poll(t *testing.T) {
	clock := util.NewFixedClock(time.Date(2025, 1, 1, 10, 30, 0, 0, time.Local))
	m := metrics.New()
	f := NewFeed(&countingSource{}, Config{}, WithClock(clock), WithMetrics(m))

	rep := f.Poll(context.Background())

	assert.Equal(t, "report 1", rep.Content)
	assert.Equal(t, model.SourceSIGINT, rep.Source)
	assert.Equal(t, "10:30:00", rep.Timestamp)
	assert.Empty(t, cmp.Diff([]model.IntelReport{rep}, f.Reports()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntelReports))
}

func TestFeed_SixthPollEvictsOldest(t *testing.T) {
	f := NewFeed(&countingSource{}, Config{})
	for i := 0; i < 6; i++ {
		f.Poll(context.Background())
	}

	got := contents(f.Reports())
	assert.Equal(t, []string{"report 6", "report 5", "report 4", "report 3", "report 2"}, got)
}

func TestFeed_UplinkFailure(t *testing.T) {
	client := augment.New(augment.GeneratorFunc(func(context.Context, augment.GenerateRequest) (string, error) {
		panic("uplink exploded")
	}))
	f := NewFeed(client, Config{})

	rep := f.Poll(context.Background())

	assert.Equal(t, "SIGINT: UNSTABLE CONNECTION DETECTED.", rep.Content)
	assert.Equal(t, "SIGINT", rep.Source)
}

func TestFeed_DefaultInterval(t *testing.T) {
	f := NewFeed(&countingSource{}, Config{})
	assert.Equal(t, 15*time.Second, f.Interval())
}

func TestFeed_StartPollsOnInterval(t *testing.T) {
	src := &countingSource{}
	f := NewFeed(src, Config{Interval: 10 * time.Millisecond})

	f.Start(context.Background())
	f.Start(context.Background())

	require.Eventually(t, func() bool { return len(f.Reports()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	f.Stop()

	polled := src.n.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, polled, src.n.Load(), "feed kept polling after Stop")
	assert.LessOrEqual(t, len(f.Reports()), 5)

	f.Stop()
}

func TestFeed_NoPollBeforeFirstInterval(t *testing.T) {
	src := &countingSource{}
	f := NewFeed(src, Config{Interval: time.Hour})

	f.Start(context.Background())
	f.Stop()

	assert.Empty(t, f.Reports())
	assert.Equal(t, int32(0), src.n.Load())
}

func TestFeed_ContextCancelStopsPolling(t *testing.T) {
	src := &countingSource{}
	f := NewFeed(src, Config{Interval: 5 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	f.Start(ctx)
	cancel()
	f.Stop()

	polled := src.n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, polled, src.n.Load())
}

func TestFeed_Subscribe(t *testing.T) {
	f := NewFeed(&countingSource{}, Config{})

	var got []string
	unsubscribe := f.Subscribe(func(r model.IntelReport) { got = append(got, r.Content) })

	f.Poll(context.Background())
	unsubscribe()
	f.Poll(context.Background())

	assert.Equal(t, []string{"report 1"}, got)
}
