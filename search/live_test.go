package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"getpetback/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSuggester lets the test decide when each query resolves, so
// slow-early / fast-late orderings can be forced deterministically.
type blockingSuggester struct {
	mu      sync.Mutex
	started chan string
	gates   map[string]chan struct{}
}

func newBlockingSuggester() *blockingSuggester {
	return &blockingSuggester{
		started: make(chan string, 10),
		gates:   map[string]chan struct{}{},
	}
}

func (s *blockingSuggester) gate(query string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.gates[query]; !ok {
		s.gates[query] = make(chan struct{})
	}
	return s.gates[query]
}

func (s *blockingSuggester) release(query string) {
	close(s.gate(query))
}

func (s *blockingSuggester) QuickSearch(ctx context.Context, query string) ([]models.Listing, error) {
	s.started <- query
	select {
	case <-s.gate(query):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []models.Listing{{ID: 1, Kind: query}}, nil
}

func waitStarted(t *testing.T, s *blockingSuggester, want string) {
	t.Helper()
	select {
	case got := <-s.started:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatalf("request for %q never started", want)
	}
}

func TestLiveShortQueryClearsWithoutRequest(t *testing.T) {
	stub := newBlockingSuggester()
	results := make(chan Result, 1)
	live := NewLive(stub, time.Millisecond, 4, func(r Result) { results <- r })
	defer live.Close()

	live.Input("кот")

	select {
	case r := <-results:
		assert.Equal(t, "кот", r.Query)
		assert.Empty(t, r.Listings)
		assert.NoError(t, r.Err)
	case <-time.After(time.Second):
		t.Fatal("no clear result delivered")
	}
	assert.Empty(t, stub.started, "short queries must not hit the API")
}

func TestLiveDebouncesKeystrokes(t *testing.T) {
	stub := newBlockingSuggester()
	results := make(chan Result, 10)
	live := NewLive(stub, 50*time.Millisecond, 4, func(r Result) { results <- r })
	defer live.Close()

	// Three keystrokes inside the idle window: only the last fires.
	live.Input("кошк")
	live.Input("кошка")
	live.Input("кошка п")

	waitStarted(t, stub, "кошка п")
	stub.release("кошка п")

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "кошка п", r.Query)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	assert.Empty(t, stub.started, "earlier keystrokes must not issue requests")
}

func TestLiveDiscardsStaleResponse(t *testing.T) {
	stub := newBlockingSuggester()
	results := make(chan Result, 10)
	live := NewLive(stub, time.Millisecond, 4, func(r Result) { results <- r })
	defer live.Close()

	// First request goes out and hangs.
	live.Input("aaaa")
	waitStarted(t, stub, "aaaa")

	// A newer query supersedes it; the old context is cancelled and
	// whatever the old request returns must never surface.
	live.Input("bbbb")
	waitStarted(t, stub, "bbbb")
	stub.release("bbbb")
	stub.release("aaaa")

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "bbbb", r.Query)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case r := <-results:
		t.Fatalf("stale result surfaced: %+v", r)
	case <-time.After(100 * time.Millisecond):
	}
}
