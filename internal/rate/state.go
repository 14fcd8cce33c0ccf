package rate

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/koinval/koinval/internal/domain"
)

// State is the process-wide rate snapshot the form reads: the current
// quote plus a loading flag gating the manual refresh control. Updates
// are whole-value replacement, never partial.
type State struct {
	mu      sync.RWMutex
	current domain.RateQuote
	loading bool
}

// NewState seeds the state with the fallback rate so the form is usable
// before the first fetch completes.
func NewState(fallback decimal.Decimal) *State {
	return &State{
		current: domain.RateQuote{
			Rate:   fallback,
			Source: domain.RateSourceFallback,
		},
	}
}

// Snapshot returns the current quote and whether a refresh is in flight.
func (s *State) Snapshot() (domain.RateQuote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.loading
}

// Replace swaps in a new quote, superseding the previous one.
func (s *State) Replace(q domain.RateQuote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = q
}

// TryBeginRefresh marks a refresh as in flight. Returns false if one
// already is; the caller must not start another.
func (s *State) TryBeginRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

// EndRefresh clears the in-flight flag.
func (s *State) EndRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}
