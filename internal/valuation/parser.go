package valuation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/koinval/koinval/internal/domain"
)

// ParseAmount normalizes one raw form field into a Quantity.
// Commas are grouping separators only ("8,578" == "8578"); empty or
// whitespace-only input counts as zero. Anything that does not parse
// as a finite decimal ("abc", "Infinity", "1e") comes back invalid
// rather than silently zero.
func ParseAmount(raw string) domain.Quantity {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return domain.ValidQuantity(decimal.Zero)
	}

	cleaned = strings.ReplaceAll(cleaned, ",", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return domain.InvalidQuantity()
	}
	return domain.ValidQuantity(d)
}
