package geo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultQuietPeriod is how long input must stay unchanged before a
// debounced search runs.
const DefaultQuietPeriod = 380 * time.Millisecond

// Searcher turns a stream of search input into lookups.
//
// Input is debounced and skipped when it repeats the last searched query.
// Search runs immediately. Superseded lookups are not cancelled: results are
// delivered as they complete, so the last response wins.
type Searcher struct {
	ctx      context.Context
	locator  Locator
	opts     NearbyOptions
	onResult func(Result)
	debounce func(func())

	mu        sync.Mutex
	fired     *sync.Cond
	pending   bool
	lastQuery string
	wg        sync.WaitGroup
}

// SearcherOption configures a Searcher.
type SearcherOption func(*searcherConfig)

type searcherConfig struct {
	quiet time.Duration
}

// WithQuietPeriod overrides DefaultQuietPeriod.
func WithQuietPeriod(d time.Duration) SearcherOption {
	return func(c *searcherConfig) { c.quiet = d }
}

// NewSearcher returns a Searcher that reports every completed lookup to
// onResult. Calls to onResult never overlap.
func NewSearcher(ctx context.Context, l Locator, opts NearbyOptions, onResult func(Result), options ...SearcherOption) *Searcher {
	cfg := searcherConfig{quiet: DefaultQuietPeriod}
	for _, opt := range options {
		opt(&cfg)
	}
	s := &Searcher{
		ctx:      ctx,
		locator:  l,
		opts:     opts,
		onResult: onResult,
		debounce: debounce.New(cfg.quiet),
	}
	s.fired = sync.NewCond(&s.mu)
	return s
}

// Input records typed text. A lookup runs once input has been quiet for the
// quiet period, unless the text equals the last searched query.
func (s *Searcher) Input(query string) {
	s.mu.Lock()
	s.pending = true
	s.mu.Unlock()

	s.debounce(func() {
		s.mu.Lock()
		s.pending = false
		s.wg.Add(1)
		s.fired.Broadcast()
		s.mu.Unlock()

		defer s.wg.Done()
		s.run(query, true)
	})
}

// Search looks up query now, in the background.
func (s *Searcher) Search(query string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(query, false)
	}()
}

// Wait blocks until pending input has fired and every lookup has been
// delivered. It must not be called concurrently with Input.
func (s *Searcher) Wait() {
	s.mu.Lock()
	for s.pending {
		s.fired.Wait()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// LastQuery returns the last query that was searched.
func (s *Searcher) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

func (s *Searcher) run(query string, debounced bool) {
	if strings.TrimSpace(query) == "" {
		return
	}
	s.mu.Lock()
	if debounced && query == s.lastQuery {
		s.mu.Unlock()
		return
	}
	s.lastQuery = query
	s.mu.Unlock()

	res := Lookup(s.ctx, s.locator, query, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult(res)
}
