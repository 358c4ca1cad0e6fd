// Package app holds the window's state and the four user actions,
// independent of how the window is drawn.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pricetracker/internal/store"
	"pricetracker/internal/ticker"
	"pricetracker/internal/tracker"
)

// SnapshotStore is the authoritative sink for saved prices.
type SnapshotStore interface {
	Append(ctx context.Context, snap store.Snapshot) error
	ListAll(ctx context.Context) ([]store.Snapshot, error)
}

// SnapshotJournal is the best-effort text copy of saved prices.
type SnapshotJournal interface {
	Append(snap store.Snapshot) error
}

// HistoryView is the read-only list of saved snapshots.
type HistoryView struct {
	Snapshots []store.Snapshot // newest first
	Lines     []string
}

// Empty reports whether there is nothing saved yet.
func (h *HistoryView) Empty() bool { return len(h.Snapshots) == 0 }

// Surface is the control surface: it routes the start, stop, save and
// show-history actions to the tracker and the store, and exposes what
// the window should show. Not safe for concurrent use.
type Surface struct {
	tracker *tracker.Tracker
	store   SnapshotStore
	journal SnapshotJournal
	now     func() time.Time
	logger  zerolog.Logger

	dialogs []Dialog
	history *HistoryView
	fatal   bool
	quit    bool
}

// Option configures a Surface.
type Option func(*Surface)

// WithClock overrides the clock used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Surface) { s.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// NewSurface wires a surface around a tracker and its sinks.
func NewSurface(t *tracker.Tracker, st SnapshotStore, j SnapshotJournal, opts ...Option) *Surface {
	s := &Surface{
		tracker: t,
		store:   st,
		journal: j,
		now:     time.Now,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "surface").Logger()
	return s
}

// NewFatal returns a surface that only shows the storage init error and
// quits once it is dismissed.
func NewFatal(err error) *Surface {
	return &Surface{
		now:    time.Now,
		logger: zerolog.Nop(),
		fatal:  true,
		dialogs: []Dialog{{
			Kind:    Error,
			Title:   titleDatabaseErr,
			Message: fmt.Sprintf("Could not initialize database: %v", err),
		}},
	}
}

// Start begins tracking.
func (s *Surface) Start() {
	if s.tracker == nil {
		return
	}
	s.tracker.Start()
}

// Stop ends tracking.
func (s *Surface) Stop() {
	if s.tracker == nil {
		return
	}
	s.tracker.Stop()
}

// Save writes the latest prices to the database, then to the journal.
// The two writes are independent: a failure in one does not undo or
// skip the other, and each failure gets its own dialog.
func (s *Surface) Save(ctx context.Context) {
	if s.tracker == nil || !s.tracker.Running() || !s.tracker.HasData() {
		s.push(Warning, titleWarning, MsgNoData)
		return
	}

	snap := store.NewSnapshot(s.now(), s.tracker.Price(ticker.BTC), s.tracker.Price(ticker.ETH))

	if err := s.store.Append(ctx, snap); err != nil {
		s.logger.Error().Err(err).Str("timestamp", snap.Timestamp).Msg("could not save snapshot")
		s.push(Error, titleDatabaseErr, fmt.Sprintf("Could not save data: %v", err))
	} else {
		s.logger.Info().
			Str("timestamp", snap.Timestamp).
			Float64("btc", snap.BTCPrice).
			Float64("eth", snap.ETHPrice).
			Msg("snapshot saved")
		s.push(Info, titleSuccess, MsgSaved)
	}

	if s.journal == nil {
		return
	}
	if err := s.journal.Append(snap); err != nil {
		s.logger.Warn().Err(err).Msg("could not append to journal")
		s.push(Error, titleJournalErr, fmt.Sprintf("Could not write log file: %v", err))
	}
}

// ShowHistory loads every saved snapshot into the history view.
func (s *Surface) ShowHistory(ctx context.Context) {
	if s.store == nil {
		return
	}
	snaps, err := s.store.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("could not list snapshots")
		s.history = nil
		s.push(Error, titleDatabaseErr, fmt.Sprintf("Could not fetch data: %v", err))
		return
	}

	view := &HistoryView{Snapshots: snaps}
	if len(snaps) == 0 {
		view.Lines = []string{MsgNoHistory}
	}
	for _, snap := range snaps {
		view.Lines = append(view.Lines, snap.HistoryLine())
	}
	s.history = view
}

// CloseHistory hides the history view.
func (s *Surface) CloseHistory() { s.history = nil }

// History returns the open history view, or nil.
func (s *Surface) History() *HistoryView { return s.history }

// Dialog returns the dialog on top, if any.
func (s *Surface) Dialog() (Dialog, bool) {
	if len(s.dialogs) == 0 {
		return Dialog{}, false
	}
	return s.dialogs[0], true
}

// DismissDialog closes the top dialog. Dismissing the last dialog of a
// fatal surface requests shutdown.
func (s *Surface) DismissDialog() {
	if len(s.dialogs) == 0 {
		return
	}
	s.dialogs = s.dialogs[1:]
	if s.fatal && len(s.dialogs) == 0 {
		s.quit = true
	}
}

// Escape closes whatever is on top: the dialog if one is shown,
// otherwise the history view. It reports whether anything closed.
func (s *Surface) Escape() bool {
	if len(s.dialogs) > 0 {
		s.DismissDialog()
		return true
	}
	if s.history != nil {
		s.CloseHistory()
		return true
	}
	return false
}

// Quit reports whether the window should close.
func (s *Surface) Quit() bool { return s.quit }

// Fatal reports whether the surface only exists to report an init failure.
func (s *Surface) Fatal() bool { return s.fatal }

// Status is the status label text.
func (s *Surface) Status() string {
	if s.tracker == nil {
		return ""
	}
	return s.tracker.Status()
}

// StartVisible reports whether the start button is shown.
func (s *Surface) StartVisible() bool { return s.tracker != nil && !s.tracker.Running() }

// StopVisible reports whether the stop button is shown.
func (s *Surface) StopVisible() bool { return s.tracker != nil && s.tracker.Running() }

// SaveEnabled reports whether the save button accepts clicks.
func (s *Surface) SaveEnabled() bool { return s.tracker != nil && s.tracker.Running() }

func (s *Surface) push(kind DialogKind, title, msg string) {
	s.dialogs = append(s.dialogs, Dialog{Kind: kind, Title: title, Message: msg})
}
