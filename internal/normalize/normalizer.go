// Package normalize turns resolved raw fields into a typed candidate record,
// rejecting structurally invalid rows. Rejection is local: the caller counts
// the row as skipped and moves on.
package normalize

import (
	"fmt"
	"strings"

	"github.com/catalog-ingest-api/internal/resolve"
	"github.com/shopspring/decimal"
)

// ValidationError marks a row that cannot become a catalog item
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid row: %s %s", e.Field, e.Message)
}

// Record is the normalized candidate, ready for categorization and scoring.
// It exists only inside one ingestion run.
type Record struct {
	SourceURL    string
	Title        string
	Description  string
	CategoryText string
	Brand        string
	Advertiser   string
	ProductCode  string
	AffiliateURL string
	ProductURL   string
	ImageURL     string
	Price        decimal.Decimal
	SalePrice    decimal.NullDecimal
	Currency     string
	FreeShipping bool
	HasGift      bool
}

// Normalizer validates and types candidate fields
type Normalizer struct {
	defaultCurrency string
	affirmative     map[string]bool
}

// New creates a normalizer. affirmativeTokens is the language-agnostic set of
// values meaning "yes" for boolean feed columns.
func New(defaultCurrency string, affirmativeTokens []string) *Normalizer {
	set := make(map[string]bool, len(affirmativeTokens))
	for _, tok := range affirmativeTokens {
		set[strings.ToLower(strings.TrimSpace(tok))] = true
	}
	return &Normalizer{defaultCurrency: defaultCurrency, affirmative: set}
}

// Normalize builds a Record from resolved fields or reports why the row is
// unusable.
func (n *Normalizer) Normalize(f resolve.Fields) (*Record, error) {
	rec := &Record{
		Title:        strings.TrimSpace(f.Title),
		Description:  strings.TrimSpace(f.Description),
		CategoryText: strings.TrimSpace(f.CategoryText),
		Brand:        strings.TrimSpace(f.Brand),
		Advertiser:   strings.TrimSpace(f.Advertiser),
		ProductCode:  strings.TrimSpace(f.ProductCode),
		AffiliateURL: strings.TrimSpace(f.AffiliateURL),
		ProductURL:   strings.TrimSpace(f.ProductURL),
		ImageURL:     strings.TrimSpace(f.ImageURL),
		Currency:     strings.TrimSpace(f.Currency),
		FreeShipping: n.Affirmative(f.FreeShippingRaw),
		HasGift:      n.Affirmative(f.GiftRaw),
	}

	price := ParseDecimal(f.PriceRaw)
	sale := ParseDecimal(f.SalePriceRaw)
	rec.SalePrice = sale

	// the feed sometimes fills only the discounted column
	if !price.Valid && sale.Valid {
		price = sale
	}

	// identity: clean product link, else affiliate link, else product code
	rec.SourceURL = rec.ProductURL
	if rec.SourceURL == "" {
		rec.SourceURL = rec.AffiliateURL
	}
	if rec.SourceURL == "" {
		rec.SourceURL = rec.ProductCode
	}

	switch {
	case rec.Title == "":
		return nil, &ValidationError{Field: "title", Message: "is required"}
	case rec.AffiliateURL == "":
		return nil, &ValidationError{Field: "affiliate_url", Message: "is required"}
	case rec.SourceURL == "":
		return nil, &ValidationError{Field: "source_url", Message: "could not be derived"}
	case !price.Valid:
		return nil, &ValidationError{Field: "price", Message: "is not numeric"}
	case !price.Decimal.IsPositive():
		return nil, &ValidationError{Field: "price", Message: "must be positive"}
	}
	rec.Price = price.Decimal

	if rec.Currency == "" {
		rec.Currency = n.defaultCurrency
	}

	return rec, nil
}

// Affirmative reports whether a raw feed value belongs to the configured
// "yes" token set.
func (n *Normalizer) Affirmative(raw string) bool {
	return n.affirmative[strings.ToLower(strings.TrimSpace(raw))]
}

// ParseDecimal parses a price-like string: whitespace (including thousands
// spacing) is stripped and a comma decimal separator becomes a period, so
// "1 234,56" parses as 1234.56. A non-numeric result is the null decimal.
func ParseDecimal(s string) decimal.NullDecimal {
	s = strings.Join(strings.Fields(s), "")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
