package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricetracker/internal/ticker"
)

// scriptedFetcher replays results in order, repeating the last one.
type scriptedFetcher struct {
	results []fetchResult
	calls   int
}

type fetchResult struct {
	quote ticker.Quote
	err   error
}

func (f *scriptedFetcher) Fetch(ctx context.Context) (ticker.Quote, error) {
	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++
	return f.results[i].quote, f.results[i].err
}

func newTestTracker(results ...fetchResult) (*Tracker, *Queue, *fakeClock, *scriptedFetcher) {
	clock := newFakeClock()
	q := NewQueue(clock.Now)
	f := &scriptedFetcher{results: results}
	return New(Config{Interval: time.Second}, f, q, zerolog.Nop()), q, clock, f
}

var okQuote = fetchResult{quote: ticker.Quote{BTC: 50000, ETH: 3000}}

func TestTracker_InitialState(t *testing.T) {
	tr, q, _, f := newTestTracker(okQuote)

	assert.Equal(t, Stopped, tr.State())
	assert.Equal(t, StatusIdle, tr.Status())
	assert.Equal(t, Prices{ticker.BTC: 0, ticker.ETH: 0}, tr.Prices())
	assert.False(t, tr.HasData())
	assert.Equal(t, 0, q.Pending())
	assert.Equal(t, 0, f.calls)
}

func TestTracker_StartTicksImmediately(t *testing.T) {
	tr, q, _, f := newTestTracker(okQuote)

	tr.Start()

	assert.Equal(t, Running, tr.State())
	assert.Equal(t, 1, f.calls)
	assert.Equal(t, "BTC: $50000.00\nETH: $3000.00", tr.Status())
	assert.Equal(t, 50000.0, tr.Price(ticker.BTC))
	assert.Equal(t, 3000.0, tr.Price(ticker.ETH))
	assert.True(t, tr.HasData())
	assert.Equal(t, 1, q.Pending())
	assert.NotZero(t, tr.Pending())
}

func TestTracker_StartIsIdempotent(t *testing.T) {
	tr, q, _, f := newTestTracker(okQuote)

	tr.Start()
	tr.Start()

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, 1, q.Pending())
}

func TestTracker_ExactlyOnePendingWhileRunning(t *testing.T) {
	tr, q, clock, f := newTestTracker(okQuote)

	tr.Start()
	for i := 0; i < 5; i++ {
		clock.Advance(500 * time.Millisecond)
		q.RunDue()
		require.Equal(t, 1, q.Pending(), "iteration %d", i)
	}
	// Two full intervals elapsed after the initial tick.
	assert.Equal(t, 3, f.calls)
}

func TestTracker_StopCancelsPending(t *testing.T) {
	tr, q, clock, f := newTestTracker(okQuote)

	tr.Start()
	tr.Stop()

	assert.Equal(t, Stopped, tr.State())
	assert.Equal(t, StatusStopped, tr.Status())
	assert.Equal(t, 0, q.Pending())
	assert.Zero(t, tr.Pending())

	clock.Advance(10 * time.Second)
	q.RunDue()
	assert.Equal(t, 1, f.calls)

	// Stopping twice changes nothing.
	tr.Stop()
	assert.Equal(t, StatusStopped, tr.Status())
}

func TestTracker_StopBeforeStartIsNoop(t *testing.T) {
	tr, _, _, _ := newTestTracker(okQuote)

	tr.Stop()

	assert.Equal(t, Stopped, tr.State())
	assert.Equal(t, StatusIdle, tr.Status())
}

func TestTracker_StaleTickAfterStopIsNoop(t *testing.T) {
	tr, _, _, f := newTestTracker(okQuote)

	tr.Start()
	tr.Stop()
	tr.tick()

	assert.Equal(t, 1, f.calls)
	assert.Equal(t, StatusStopped, tr.Status())
	assert.Zero(t, tr.Pending())
}

func TestTracker_FailedFetchKeepsPricesAndLoop(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"network", fmt.Errorf("%w: HTTP request failed [BTCUSDT]: connection refused", ticker.ErrNetwork), StatusFetchError},
		{"parse", fmt.Errorf("%w: missing price [ETHUSDT]", ticker.ErrParse), StatusParseError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, q, clock, f := newTestTracker(okQuote, fetchResult{err: tt.err}, okQuote)

			tr.Start()
			clock.Advance(time.Second)
			q.RunDue()

			assert.Equal(t, tt.status, tr.Status())
			assert.Equal(t, 50000.0, tr.Price(ticker.BTC))
			assert.Equal(t, 3000.0, tr.Price(ticker.ETH))
			assert.Equal(t, Running, tr.State())
			assert.Equal(t, 1, q.Pending())

			clock.Advance(time.Second)
			q.RunDue()
			assert.Equal(t, 3, f.calls)
			assert.Equal(t, "BTC: $50000.00\nETH: $3000.00", tr.Status())
		})
	}
}

func TestTracker_FirstFetchFails(t *testing.T) {
	tr, q, _, _ := newTestTracker(fetchResult{err: ticker.ErrNetwork})

	tr.Start()

	assert.Equal(t, StatusFetchError, tr.Status())
	assert.False(t, tr.HasData())
	assert.Equal(t, 1, q.Pending())
}

func TestTracker_TimeoutReachesFetcher(t *testing.T) {
	clock := newFakeClock()
	q := NewQueue(clock.Now)
	var deadline bool
	f := FetcherFunc(func(ctx context.Context) (ticker.Quote, error) {
		_, deadline = ctx.Deadline()
		return ticker.Quote{BTC: 1, ETH: 2}, nil
	})

	tr := New(Config{Interval: time.Second, Timeout: 3 * time.Second}, f, q, zerolog.Nop())
	tr.Start()

	assert.True(t, deadline)
}

func TestFormatStatus_Rounding(t *testing.T) {
	assert.Equal(t, "BTC: $64123.46\nETH: $3001.00", FormatStatus(64123.455001, 3000.999))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "stopped", Stopped.String())
	assert.Equal(t, "running", Running.String())
}
