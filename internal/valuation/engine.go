package valuation

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/koinval/koinval/internal/domain"
)

var (
	ErrInvalidPrice   = errors.New("invalid price")
	ErrInvalidHolding = errors.New("invalid holding")
	ErrInvalidAccrual = errors.New("invalid daily accrual")
	ErrInvalidRate    = errors.New("invalid exchange rate")
)

const targetDateLayout = "2006-01-02"

// Request is one snapshot of the form's normalized inputs.
type Request struct {
	Price        domain.Quantity
	Holding      domain.Quantity
	DailyAccrual domain.Quantity
	Rate         domain.Quantity
	TargetDate   string // YYYY-MM-DD; empty disables projection
}

type fieldCheck struct {
	err error
	ok  bool
}

// Compute validates req and produces a ValuationResult. The check order
// is fixed — price, holding, accrual, rate — so the reported error
// always names the first offending field. `now` is passed explicitly;
// the engine itself never reads the clock or does I/O.
func Compute(req Request, now time.Time) (domain.ValuationResult, error) {
	checks := []fieldCheck{
		{ErrInvalidPrice, req.Price.Valid() && !req.Price.IsNegative()},
		{ErrInvalidHolding, req.Holding.Valid() && !req.Holding.IsNegative()},
		{ErrInvalidAccrual, req.DailyAccrual.Valid() && !req.DailyAccrual.IsNegative()},
		{ErrInvalidRate, req.Rate.IsPositive()},
	}
	if failed, found := lo.Find(checks, func(c fieldCheck) bool { return !c.ok }); found {
		return domain.ValuationResult{}, failed.err
	}

	totalBase := req.Price.Decimal().Mul(req.Holding.Decimal())
	result := domain.ValuationResult{
		TotalBaseValue: totalBase,
		TotalFiatValue: totalBase.Mul(req.Rate.Decimal()),
	}
	result.Projection = project(req, now)

	return result, nil
}

// project returns nil unless the accrual is positive and the target
// date parses: an absent projection is a disabled feature, never an
// error. A target on or before today still yields a projection, pinned
// at zero added days.
func project(req Request, now time.Time) *domain.Projection {
	if !req.DailyAccrual.IsPositive() {
		return nil
	}
	rawDate := strings.TrimSpace(req.TargetDate)
	if rawDate == "" {
		return nil
	}
	target, err := time.ParseInLocation(targetDateLayout, rawDate, now.Location())
	if err != nil {
		return nil
	}

	days := max(daysUntil(now, target), 0)

	projectedBase := req.Holding.Decimal().
		Add(req.DailyAccrual.Decimal().Mul(decimal.NewFromInt(int64(days)))).
		Mul(req.Price.Decimal())

	return &domain.Projection{
		DaysProjected:      days,
		ProjectedBaseValue: projectedBase,
		ProjectedFiatValue: projectedBase.Mul(req.Rate.Decimal()),
	}
}

// daysUntil counts calendar days from now to target, both pinned to
// local midnight so time-of-day never shifts the window. Ceil absorbs
// DST-shortened days.
func daysUntil(now, target time.Time) int {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	targetMidnight := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, loc)
	return int(math.Ceil(targetMidnight.Sub(today).Hours() / 24))
}
