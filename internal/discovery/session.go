package discovery

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/medilink/supply-service/internal/catalog"
)

// Session serializes searches for a single logical caller. Every search
// takes a monotonically increasing token; a search that finishes after a
// newer one was issued discards its own results instead of overwriting the
// newer ones.
type Session struct {
	engine *Engine
	token  atomic.Uint64

	mu      sync.Mutex
	query   string
	results []SearchResult
}

// NewSession creates a session over the engine.
func NewSession(engine *Engine) *Session {
	return &Session{engine: engine}
}

// Search runs a query and stores the results, unless a newer query
// superseded this one while its collaborator calls were in flight. A
// superseded search returns nil and leaves the stored results alone.
func (s *Session) Search(ctx context.Context, query string, pharmacies []catalog.Pharmacy, userLoc *UserLocation) []SearchResult {
	token := s.token.Add(1)

	results := s.engine.Search(ctx, query, pharmacies, userLoc)

	if !s.storeIfCurrent(token, query, results) {
		s.engine.metrics.RecordStaleSearch()
		return nil
	}
	return results
}

// storeIfCurrent stores the results unless the token has been superseded.
// The token is re-read under the mutex so an older search that raced past
// a newer one's store can never overwrite it.
func (s *Session) storeIfCurrent(token uint64, query string, results []SearchResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token.Load() != token {
		return false
	}
	s.query = query
	s.results = results
	return true
}

// Latest returns the query and results of the most recent completed,
// non-superseded search.
func (s *Session) Latest() (string, []SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SearchResult, len(s.results))
	copy(out, s.results)
	return s.query, out
}
