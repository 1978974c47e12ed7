// Package scoring derives the ranking and profitability numbers for a
// categorized candidate record. Several formula variants have existed over
// time, so the formula sits behind a small Policy interface instead of being
// hard-coded into the pipeline.
package scoring

import (
	"github.com/catalog-ingest-api/internal/normalize"
	"github.com/shopspring/decimal"
)

// Policy computes the ranking signals for one candidate. Implementations
// must be pure functions of their input.
type Policy interface {
	Score(rec *normalize.Record, categoryPath []string) (score, profitScore int)
}

// StandardPolicy is the canonical formula:
//
//	score  = 2 if categorized
//	       + 2 if price <= LowPriceMax, else 1 if price <= MidPriceMax
//	       + 1 if an image is present
//	       + 1 if free shipping
//	profit = score + 1 if a sale price undercuts the price
type StandardPolicy struct {
	LowPriceMax decimal.Decimal
	MidPriceMax decimal.Decimal
}

// NewStandardPolicy returns the canonical policy with the usual 50/120
// price thresholds.
func NewStandardPolicy() StandardPolicy {
	return StandardPolicy{
		LowPriceMax: decimal.NewFromInt(50),
		MidPriceMax: decimal.NewFromInt(120),
	}
}

// Score implements Policy
func (p StandardPolicy) Score(rec *normalize.Record, categoryPath []string) (int, int) {
	score := 0

	if len(categoryPath) > 0 {
		score += 2
	}

	switch {
	case rec.Price.LessThanOrEqual(p.LowPriceMax):
		score += 2
	case rec.Price.LessThanOrEqual(p.MidPriceMax):
		score++
	}

	if rec.ImageURL != "" {
		score++
	}
	if rec.FreeShipping {
		score++
	}

	profit := score
	if rec.SalePrice.Valid && rec.SalePrice.Decimal.LessThan(rec.Price) {
		profit++
	}

	return score, profit
}
