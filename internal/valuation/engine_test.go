package valuation

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// Fixed "now" for projection math: a Friday afternoon, not midnight,
// so time-of-day normalization is actually exercised.
var testNow = time.Date(2024, 3, 1, 15, 30, 45, 0, time.UTC)

func req(price, holding, accrual, rate, targetDate string) Request {
	return Request{
		Price:        ParseAmount(price),
		Holding:      ParseAmount(holding),
		DailyAccrual: ParseAmount(accrual),
		Rate:         ParseAmount(rate),
		TargetDate:   targetDate,
	}
}

func TestComputePresentValue(t *testing.T) {
	result, err := Compute(req("0.48", "1000", "0", "15000", ""), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("480"); !result.TotalBaseValue.Equal(want) {
		t.Errorf("TotalBaseValue = %s, want %s", result.TotalBaseValue, want)
	}
	if want := decimal.RequireFromString("7200000"); !result.TotalFiatValue.Equal(want) {
		t.Errorf("TotalFiatValue = %s, want %s", result.TotalFiatValue, want)
	}
	if result.Projection != nil {
		t.Errorf("Projection = %+v, want nil", result.Projection)
	}
}

func TestComputeProjection30Days(t *testing.T) {
	target := testNow.AddDate(0, 0, 30).Format("2006-01-02")
	result, err := Compute(req("0.4796", "8,578", "180", "15,000", target), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Projection == nil {
		t.Fatal("Projection is nil, want populated")
	}
	if result.Projection.DaysProjected != 30 {
		t.Errorf("DaysProjected = %d, want 30", result.Projection.DaysProjected)
	}
	// (8578 + 180*30) * 0.4796 = 13978 * 0.4796
	if want := decimal.RequireFromString("6703.8488"); !result.Projection.ProjectedBaseValue.Equal(want) {
		t.Errorf("ProjectedBaseValue = %s, want %s", result.Projection.ProjectedBaseValue, want)
	}
	if want := decimal.RequireFromString("100557732"); !result.Projection.ProjectedFiatValue.Equal(want) {
		t.Errorf("ProjectedFiatValue = %s, want %s", result.Projection.ProjectedFiatValue, want)
	}
}

func TestComputeValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"invalid price wins over invalid holding", req("abc", "xyz", "0", "15000", ""), ErrInvalidPrice},
		{"negative price", req("-1", "1000", "0", "15000", ""), ErrInvalidPrice},
		{"invalid holding wins over invalid accrual", req("0.48", "xyz", "bad", "0", ""), ErrInvalidHolding},
		{"negative holding regardless of rate", req("0.48", "-5", "0", "0", ""), ErrInvalidHolding},
		{"negative accrual wins over zero rate", req("0.48", "1000", "-2", "0", ""), ErrInvalidAccrual},
		{"zero rate", req("0.48", "1000", "0", "0", ""), ErrInvalidRate},
		{"negative rate", req("0.48", "1000", "0", "-15000", ""), ErrInvalidRate},
		{"unparseable rate", req("0.48", "1000", "0", "idk", ""), ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.req, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestComputeProjectionAbsence(t *testing.T) {
	target := testNow.AddDate(0, 0, 10).Format("2006-01-02")
	tests := []struct {
		name string
		req  Request
	}{
		{"zero accrual with date", req("0.48", "1000", "0", "15000", target)},
		{"positive accrual without date", req("0.48", "1000", "180", "15000", "")},
		{"unparseable date is soft", req("0.48", "1000", "180", "15000", "next tuesday")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.req, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Projection != nil {
				t.Errorf("Projection = %+v, want nil", result.Projection)
			}
		})
	}
}

func TestComputeProjectionFloor(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"target is today", testNow.Format("2006-01-02")},
		{"target in the past", testNow.AddDate(0, 0, -10).Format("2006-01-02")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(req("0.48", "1000", "180", "15000", tt.target), testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Projection == nil {
				t.Fatal("Projection is nil, want zero-day projection")
			}
			if result.Projection.DaysProjected != 0 {
				t.Errorf("DaysProjected = %d, want 0", result.Projection.DaysProjected)
			}
			if !result.Projection.ProjectedBaseValue.Equal(result.TotalBaseValue) {
				t.Errorf("ProjectedBaseValue = %s, want TotalBaseValue %s",
					result.Projection.ProjectedBaseValue, result.TotalBaseValue)
			}
		})
	}
}

func TestComputeMidnightNormalization(t *testing.T) {
	// One second before midnight: tomorrow is still a full calendar day away.
	lateNow := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)
	result, err := Compute(req("1", "100", "10", "15000", "2024-03-02"), lateNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Projection == nil {
		t.Fatal("Projection is nil")
	}
	if result.Projection.DaysProjected != 1 {
		t.Errorf("DaysProjected = %d, want 1", result.Projection.DaysProjected)
	}
}

func TestComputeIdempotent(t *testing.T) {
	target := testNow.AddDate(0, 0, 30).Format("2006-01-02")
	r := req("0.4796", "8578", "180", "15000", target)

	first, err1 := Compute(r, testNow)
	second, err2 := Compute(r, testNow)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}
