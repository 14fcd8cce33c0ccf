package rate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/koinval/koinval/internal/domain"
)

// DefaultFallbackRate is substituted when the live source is
// unreachable or returns unusable data. The form stays usable on it.
var DefaultFallbackRate = decimal.NewFromInt(15000)

const quoteCacheKey = "USD/IDR"

// Fetcher fetches a USD→IDR rate from a remote source.
type Fetcher interface {
	FetchUSDIDR(ctx context.Context) (decimal.Decimal, error)
}

// Service resolves the current exchange rate, degrading to the fixed
// fallback instead of failing. Remote quotes are cached for a short TTL
// so repeated refreshes within it do not hammer the source.
type Service struct {
	fetcher  Fetcher
	cache    *gocache.Cache
	fallback decimal.Decimal
	state    *State
}

// NewService creates a rate service around the given fetcher.
func NewService(fetcher Fetcher, fallback decimal.Decimal, cacheTTL time.Duration) *Service {
	return &Service{
		fetcher:  fetcher,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		fallback: fallback,
		state:    NewState(fallback),
	}
}

// State exposes the shared rate snapshot.
func (s *Service) State() *State {
	return s.state
}

// Fetch resolves a quote and replaces the current state with it. It
// never fails: any fetch problem degrades to the fallback rate with a
// human-readable advisory. Each call supersedes the previous quote.
func (s *Service) Fetch(ctx context.Context) domain.RateQuote {
	quote := s.resolve(ctx)
	s.state.Replace(quote)
	return quote
}

func (s *Service) resolve(ctx context.Context) domain.RateQuote {
	if cached, ok := s.cache.Get(quoteCacheKey); ok {
		return cached.(domain.RateQuote)
	}

	idr, err := s.fetcher.FetchUSDIDR(ctx)
	if err != nil {
		slog.Warn("rate fetch failed, using fallback", "fallback", s.fallback, "error", err)
		return domain.RateQuote{
			Rate:      s.fallback,
			Source:    domain.RateSourceFallback,
			Advisory:  fmt.Sprintf("live USD/IDR rate unavailable, using fallback %s: %v", s.fallback, err),
			FetchedAt: time.Now(),
		}
	}

	quote := domain.RateQuote{
		Rate:      idr,
		Source:    domain.RateSourceRemote,
		FetchedAt: time.Now(),
	}
	// Failures are never cached; the next call retries the source.
	s.cache.SetDefault(quoteCacheKey, quote)
	return quote
}
