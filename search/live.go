package search

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"getpetback/models"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// Suggester is the slice of the API client live search needs.
type Suggester interface {
	QuickSearch(ctx context.Context, query string) ([]models.Listing, error)
}

// Result is one live-search outcome delivered to the subscriber.
type Result struct {
	Query    string
	Listings []models.Listing
	Err      error
}

// Live is the debounced quick-search: a request fires only after the
// input has been idle for the configured delay and is long enough.
// Each issued request carries a generation number; a response older
// than the latest issued generation is discarded, and the superseded
// request's context is cancelled, so a slow early response can never
// overwrite a newer one.
type Live struct {
	api      Suggester
	delay    time.Duration
	minLen   int
	onResult func(Result)

	mu     sync.Mutex
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
}

// NewLive creates a live search. onResult is called from a background
// goroutine whenever a query resolves (or is cleared).
func NewLive(api Suggester, delay time.Duration, minLen int, onResult func(Result)) *Live {
	return &Live{
		api:      api,
		delay:    delay,
		minLen:   minLen,
		onResult: onResult,
	}
}

// Input feeds one keystroke's worth of query text. A query shorter
// than the minimum clears suggestions immediately without a request.
func (l *Live) Input(query string) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if utf8.RuneCountInString(query) < l.minLen {
		l.mu.Unlock()
		l.onResult(Result{Query: query})
		return
	}

	l.timer = time.AfterFunc(l.delay, func() {
		l.fire(query, gen)
	})
	l.mu.Unlock()
}

// Close cancels any pending debounce timer and in-flight request.
func (l *Live) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Live) fire(query string, gen uint64) {
	l.mu.Lock()
	if gen != l.gen {
		// Newer input arrived while the timer was pending.
		l.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	listings, err := l.api.QuickSearch(ctx, query)

	l.mu.Lock()
	stale := gen != l.gen
	if !stale {
		l.cancel = nil
	}
	l.mu.Unlock()

	if stale {
		logger.Debug("Discarding stale search response", zap.String("query", query))
		return
	}
	l.onResult(Result{Query: query, Listings: listings, Err: err})
}
