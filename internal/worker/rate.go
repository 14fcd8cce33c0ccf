package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/koinval/koinval/internal/domain"
)

// RateRefresher resolves the current exchange rate and stores it.
type RateRefresher interface {
	Fetch(ctx context.Context) domain.RateQuote
}

// RateWorker keeps the exchange rate warm: one fetch immediately at
// start-up (the form's rate field is seeded from it), then periodic
// refreshes until the context is cancelled.
type RateWorker struct {
	refresher RateRefresher
	interval  time.Duration
}

// NewRateWorker creates a new RateWorker.
func NewRateWorker(refresher RateRefresher, interval time.Duration) *RateWorker {
	return &RateWorker{
		refresher: refresher,
		interval:  interval,
	}
}

// Run starts the refresh loop. It blocks until the context is cancelled.
func (w *RateWorker) Run(ctx context.Context) {
	slog.Info("RateWorker: starting")

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RateWorker: shutting down")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RateWorker) refresh(ctx context.Context) {
	quote := w.refresher.Fetch(ctx)
	if quote.Source == domain.RateSourceFallback {
		slog.Warn("RateWorker: on fallback rate", "rate", quote.Rate, "advisory", quote.Advisory)
		return
	}
	slog.Info("RateWorker: rate refreshed", "rate", quote.Rate)
}
