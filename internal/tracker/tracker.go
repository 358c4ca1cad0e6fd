package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"pricetracker/internal/ticker"
)

// Status label texts.
const (
	StatusIdle       = "Click 'Start' to begin"
	StatusStopped    = "Tracking stopped"
	StatusFetchError = "Error fetching prices...\nRetrying..."
	StatusParseError = "Error parsing data..."
)

// DefaultInterval is the delay between the end of one tick and the next.
const DefaultInterval = 1000 * time.Millisecond

// State is the polling loop state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Fetcher returns one quote for all tracked assets.
type Fetcher interface {
	Fetch(ctx context.Context) (ticker.Quote, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (ticker.Quote, error)

func (f FetcherFunc) Fetch(ctx context.Context) (ticker.Quote, error) {
	return f(ctx)
}

// Config holds tracker settings.
type Config struct {
	Interval time.Duration // delay between ticks (default: 1s)
	Timeout  time.Duration // upper bound for one whole fetch (0: none beyond the client's)
}

// Tracker owns the polling loop state: the running flag, the single
// pending tick, the latest prices and the status text. It is not safe
// for concurrent use; everything runs on the scheduler's thread.
type Tracker struct {
	cfg     Config
	fetcher Fetcher
	sched   Scheduler
	logger  zerolog.Logger

	state   State
	pending TimerID
	prices  Prices
	status  string
	ticks   int
}

// New creates a stopped Tracker.
func New(cfg Config, fetcher Fetcher, sched Scheduler, logger zerolog.Logger) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Tracker{
		cfg:     cfg,
		fetcher: fetcher,
		sched:   sched,
		logger:  logger.With().Str("component", "tracker").Logger(),
		prices:  newPrices(),
		status:  StatusIdle,
	}
}

// Start switches to Running and ticks immediately. No-op when running.
func (t *Tracker) Start() {
	if t.state == Running {
		return
	}
	t.state = Running
	t.logger.Info().Dur("interval", t.cfg.Interval).Msg("tracking started")
	t.tick()
}

// Stop switches to Stopped and cancels the next tick. No-op when stopped.
func (t *Tracker) Stop() {
	if t.state == Stopped {
		return
	}
	t.state = Stopped
	if t.pending != 0 {
		t.sched.Cancel(t.pending)
		t.pending = 0
	}
	t.status = StatusStopped
	t.logger.Info().Int("ticks", t.ticks).Msg("tracking stopped")
}

func (t *Tracker) tick() {
	t.pending = 0
	if t.state != Running {
		return
	}
	t.ticks++

	ctx := context.Background()
	if t.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.Timeout)
		defer cancel()
	}

	q, err := t.fetcher.Fetch(ctx)
	if err != nil {
		kind := ticker.KindOf(err)
		t.logger.Warn().Err(err).Str("kind", kind).Msg("could not get prices")
		if kind == ticker.ErrParse.Error() {
			t.status = StatusParseError
		} else {
			t.status = StatusFetchError
		}
	} else {
		t.prices.apply(q)
		t.status = FormatStatus(t.prices[ticker.BTC], t.prices[ticker.ETH])
	}

	if t.state == Running {
		t.pending = t.sched.AfterFunc(t.cfg.Interval, t.tick)
	}
}

// State returns the current loop state.
func (t *Tracker) State() State { return t.state }

// Running reports whether the loop is active.
func (t *Tracker) Running() bool { return t.state == Running }

// Pending returns the scheduled tick, or zero if none.
func (t *Tracker) Pending() TimerID { return t.pending }

// Status returns the status label text.
func (t *Tracker) Status() string { return t.status }

// Price returns the latest price of an asset, 0 before the first fetch.
func (t *Tracker) Price(asset string) float64 { return t.prices[asset] }

// Prices returns a copy of the latest prices.
func (t *Tracker) Prices() Prices {
	out := make(Prices, len(t.prices))
	for k, v := range t.prices {
		out[k] = v
	}
	return out
}

// HasData reports whether at least one fetch has succeeded.
func (t *Tracker) HasData() bool { return t.prices.HasData() }
