package scoring

import (
	"testing"

	"github.com/catalog-ingest-api/internal/normalize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rec(price string) *normalize.Record {
	return &normalize.Record{Price: decimal.RequireFromString(price)}
}

func TestStandardPolicyScore(t *testing.T) {
	p := NewStandardPolicy()

	tests := []struct {
		name       string
		rec        *normalize.Record
		path       []string
		wantScore  int
		wantProfit int
	}{
		{
			name:      "bare uncategorized expensive item",
			rec:       rec("500"),
			wantScore: 0, wantProfit: 0,
		},
		{
			name:      "category bonus",
			rec:       rec("500"),
			path:      []string{"home", "kitchen", "cookware"},
			wantScore: 2, wantProfit: 2,
		},
		{
			name:      "low price boundary",
			rec:       rec("50"),
			wantScore: 2, wantProfit: 2,
		},
		{
			name:      "mid price boundary",
			rec:       rec("120"),
			wantScore: 1, wantProfit: 1,
		},
		{
			name: "all bonuses",
			rec: func() *normalize.Record {
				r := rec("49.99")
				r.ImageURL = "http://cdn.example/x.jpg"
				r.FreeShipping = true
				return r
			}(),
			path:      []string{"garden", "bbq", "grills"},
			wantScore: 6, wantProfit: 6,
		},
		{
			name: "discount raises profit only",
			rec: func() *normalize.Record {
				r := rec("100")
				r.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString("79.99"))
				return r
			}(),
			wantScore: 1, wantProfit: 2,
		},
		{
			name: "sale price equal to price earns nothing",
			rec: func() *normalize.Record {
				r := rec("100")
				r.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString("100"))
				return r
			}(),
			wantScore: 1, wantProfit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, profit := p.Score(tt.rec, tt.path)
			assert.Equal(t, tt.wantScore, score, "score")
			assert.Equal(t, tt.wantProfit, profit, "profit score")
		})
	}
}

func TestStandardPolicyIsPure(t *testing.T) {
	p := NewStandardPolicy()
	r := rec("42")
	r.ImageURL = "http://cdn.example/a.png"

	s1, pr1 := p.Score(r, []string{"home"})
	s2, pr2 := p.Score(r, []string{"home"})
	assert.Equal(t, s1, s2)
	assert.Equal(t, pr1, pr2)
}
