package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Projection is the forward-looking part of a valuation: holding growth
// from a constant daily accrual, evaluated at a target date. The three
// fields are always populated together; a ValuationResult carries either
// the whole group or none of it.
type Projection struct {
	DaysProjected      int             `json:"daysProjected"`
	ProjectedBaseValue decimal.Decimal `json:"projectedBaseValue"`
	ProjectedFiatValue decimal.Decimal `json:"projectedFiatValue"`
}

// ValuationResult is the immutable outcome of one successful computation.
// Base values are in the coin's native unit, fiat values in IDR.
type ValuationResult struct {
	TotalBaseValue decimal.Decimal `json:"totalBaseValue"`
	TotalFiatValue decimal.Decimal `json:"totalFiatValue"`
	Projection     *Projection     `json:"projection,omitempty"`
}

// RateSource tells where a quote came from.
type RateSource string

const (
	// RateSourceRemote marks a quote obtained from the live endpoint.
	RateSourceRemote RateSource = "remote"
	// RateSourceFallback marks the fixed substitute used when the live
	// endpoint is unreachable or returns unusable data.
	RateSourceFallback RateSource = "fallback"
)

// RateQuote is one resolved USD→IDR exchange rate.
type RateQuote struct {
	Rate      decimal.Decimal `json:"rate"`
	Source    RateSource      `json:"source"`
	Advisory  string          `json:"advisory,omitempty"`
	FetchedAt time.Time       `json:"fetchedAt"`
}
