package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/salesqueen/internal/lead"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/notify"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/store"
)

// Session is one user's working state plus the services it depends on.
// A Session is not safe for concurrent use.
type Session struct {
	agg       *Aggregator
	persist   *Persistence
	reducer   *Reducer
	estimator pricing.Estimator
	notifier  notify.Notifier
	logger    *slog.Logger
	breakdown pricing.Breakdown
}

// Option configures a Session.
type Option func(*Session)

// WithEstimator selects the active quoting strategy. The default is the
// catalog estimator.
func WithEstimator(e pricing.Estimator) Option {
	return func(s *Session) { s.estimator = e }
}

// WithNotifier sets where notices are shown. The default discards them.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithLogger sets the logger. The default discards log output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns a Session in its initial state that saves to backend.
// Call Open to restore a previously saved project.
func NewSession(backend store.Backend, opts ...Option) *Session {
	catalog := pricing.DefaultCatalog()
	s := &Session{
		reducer:   NewReducer(catalog, pricing.DefaultPageRates()),
		estimator: pricing.NewCatalogEstimator(catalog),
		notifier:  notify.Discard,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.persist = NewPersistence(backend, s.logger)
	s.agg = NewAggregator(lead.NewCapture(s), catalog)
	s.recompute()
	return s
}

// Open loads the saved project and restores every component from it.
// It reports whether a saved project was found.
func (s *Session) Open(ctx context.Context) bool {
	doc, ok := s.persist.Load(ctx)
	if !ok {
		return false
	}
	s.agg.Restore(&doc)
	s.recompute()
	return true
}

// Dispatch applies a, recomputes the estimate and saves the project.
// A rejected action returns an error wrapping ErrValidation and changes nothing.
// A failed save is reported through the notifier, not as an error.
func (s *Session) Dispatch(ctx context.Context, a Action) (pricing.Breakdown, error) {
	next, err := s.reducer.Reduce(s.agg.Collect(), a)
	if err != nil {
		s.logger.Debug("action rejected", "action", a.Name(), "error", err)
		return s.breakdown, err
	}

	s.agg.Restore(&next)
	s.recompute()
	s.logger.Debug("action applied", "action", a.Name(), "percentage", s.Percentage())

	if !s.persist.Save(ctx, s.agg.Collect()) {
		s.notify(notify.MsgSaveFailed, notify.LevelDanger)
		return s.breakdown, nil
	}

	switch a.(type) {
	case SubmitLead:
		s.notify(notify.MsgLeadSaved, notify.LevelSuccess)
	case ClaimPlace:
		s.notify(notify.MsgBusinessClaimed, notify.LevelSuccess)
	}
	return s.breakdown, nil
}

// Save writes the current project and shows the outcome.
func (s *Session) Save(ctx context.Context) bool {
	ok := s.persist.Save(ctx, s.agg.Collect())
	if ok {
		s.notify(notify.MsgSaved, notify.LevelSuccess)
	} else {
		s.notify(notify.MsgSaveFailed, notify.LevelDanger)
	}
	return ok
}

// Clear deletes the saved project and resets the session.
func (s *Session) Clear(ctx context.Context) {
	s.persist.Clear(ctx)
	s.agg.Reset()
	s.recompute()
	s.notify(notify.MsgCleared, notify.LevelInfo)
}

// PersistLead implements lead.Persister. The lead is already applied to the
// capture, so the whole current project is written.
func (s *Session) PersistLead(ctx context.Context, _ model.Lead) bool {
	return s.persist.Save(ctx, s.agg.Collect())
}

// Refer records interest in a business the user does not own.
func (s *Session) Refer(place model.Place) {
	s.logger.Info("referral captured", "place", place.Name)
	s.notify(notify.MsgReferral, notify.LevelInfo)
}

// Snapshot returns the current project document.
func (s *Session) Snapshot() model.Project {
	return s.agg.Collect()
}

// Aggregator returns the live component state.
func (s *Session) Aggregator() *Aggregator {
	return s.agg
}

// Lead returns the lead capture. Writes through it are saved immediately.
func (s *Session) Lead() *lead.Capture {
	return s.agg.Lead()
}

// Estimator returns the active quoting strategy.
func (s *Session) Estimator() pricing.Estimator {
	return s.estimator
}

// Estimate returns the breakdown of the active strategy for the current state.
func (s *Session) Estimate() pricing.Breakdown {
	return s.breakdown
}

// EstimateWith computes the breakdown of e for the current state.
func (s *Session) EstimateWith(e pricing.Estimator) pricing.Breakdown {
	return e.Estimate(s.Input())
}

// Input returns the pricing input for the current state.
func (s *Session) Input() pricing.Input {
	in := pricing.Input{Selection: s.agg.Selection()}
	if q, ok := s.agg.Quote(); ok {
		in.Pages = q
	}
	return in
}

// Percentage returns the overall completion.
func (s *Session) Percentage() int {
	return s.agg.Progress().Percentage()
}

// History lists saved revisions when the backend keeps them.
func (s *Session) History(ctx context.Context, limit int) ([]store.Revision, error) {
	h, ok := s.persist.Backend().(store.Historian)
	if !ok {
		return nil, ErrNoHistory
	}
	return h.History(ctx, limit)
}

// Checkout restores the revision id and saves it as the current project.
func (s *Session) Checkout(ctx context.Context, id string) error {
	h, ok := s.persist.Backend().(store.Historian)
	if !ok {
		return ErrNoHistory
	}
	doc, err := h.Revision(ctx, id)
	if err != nil {
		return fmt.Errorf("checkout %s: %w", id, err)
	}
	s.agg.Reset()
	s.agg.Restore(doc)
	s.recompute()
	if !s.persist.Save(ctx, s.agg.Collect()) {
		return ErrSaveFailed
	}
	return nil
}

func (s *Session) recompute() {
	s.breakdown = s.estimator.Estimate(s.Input())
}

func (s *Session) notify(msg string, level notify.Level) {
	s.notifier.Notify(notify.Notice{Message: msg, Level: level})
}
