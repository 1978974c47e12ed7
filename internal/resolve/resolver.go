// Package resolve maps arbitrary feed column names onto the fixed set of
// canonical product fields. Every canonical field carries an ordered alias
// list (localized and English header variants); when no alias matches, a
// small set of heuristics scans the whole row. This two-tier strategy absorbs
// feed-schema drift without per-feed code changes.
package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/catalog-ingest-api/internal/tabular"
)

// Fields is the raw-string projection of one feed row onto canonical fields.
// Values are untrimmed originals; cleanup belongs to the normalizer.
type Fields struct {
	Title           string
	Description     string
	CategoryText    string
	Brand           string
	Advertiser      string
	ProductCode     string
	AffiliateURL    string
	ProductURL      string
	ImageURL        string
	PriceRaw        string
	SalePriceRaw    string
	Currency        string
	FreeShippingRaw string
	GiftRaw         string
}

var (
	absURLRe = regexp.MustCompile(`^https?://\S+$`)

	imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	imageHintTokens = []string{"image", "img", "cdn", "photo", "media"}

	// headers considered price-bearing for the heuristic scan, in priority order
	priceHeaderTokens = []string{"цена", "price", "cost"}
)

// Resolver resolves rows against a configured alias table
type Resolver struct {
	aliases Aliases
}

// New creates a resolver with the given alias table. Pass DefaultAliases()
// unless a feed needs overrides.
func New(aliases Aliases) *Resolver {
	return &Resolver{aliases: aliases}
}

// Resolve projects one row onto the canonical fields. The header preserves
// the feed's column order so fallback scans are deterministic.
func (r *Resolver) Resolve(header []string, row tabular.Row) Fields {
	f := Fields{
		Title:           r.pick(row, FieldTitle),
		Description:     r.pick(row, FieldDescription),
		CategoryText:    r.pick(row, FieldCategoryText),
		Brand:           r.pick(row, FieldBrand),
		Advertiser:      r.pick(row, FieldAdvertiser),
		ProductCode:     r.pick(row, FieldProductCode),
		AffiliateURL:    r.pick(row, FieldAffiliateURL),
		ProductURL:      r.pick(row, FieldProductURL),
		ImageURL:        r.pick(row, FieldImageURL),
		PriceRaw:        r.pick(row, FieldPrice),
		SalePriceRaw:    r.pick(row, FieldSalePrice),
		Currency:        r.pick(row, FieldCurrency),
		FreeShippingRaw: r.pick(row, FieldFreeShipping),
		GiftRaw:         r.pick(row, FieldGift),
	}

	if f.AffiliateURL == "" {
		f.AffiliateURL = firstURL(header, row)
	}
	if f.ImageURL == "" {
		f.ImageURL = firstImageURL(header, row)
	}
	if f.PriceRaw == "" {
		f.PriceRaw = firstPriceValue(header, row)
	}

	return f
}

// pick returns the first non-blank value scanning the field's aliases in order
func (r *Resolver) pick(row tabular.Row, field string) string {
	for _, alias := range r.aliases[field] {
		if v, ok := row[alias]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// firstURL returns the first value across the row matching an absolute
// HTTP(S) URL, scanning in header order.
func firstURL(header []string, row tabular.Row) string {
	for _, h := range header {
		if v := strings.TrimSpace(row[h]); absURLRe.MatchString(v) {
			return v
		}
	}
	return ""
}

// firstImageURL prefers URLs with a known image extension, then URLs whose
// text carries an image/CDN hint token.
func firstImageURL(header []string, row tabular.Row) string {
	var hinted string
	for _, h := range header {
		v := strings.TrimSpace(row[h])
		if !absURLRe.MatchString(v) {
			continue
		}
		lower := strings.ToLower(v)
		for _, ext := range imageExtensions {
			if strings.HasSuffix(lower, ext) {
				return v
			}
		}
		if hinted == "" {
			for _, hint := range imageHintTokens {
				if strings.Contains(lower, hint) {
					hinted = v
					break
				}
			}
		}
	}
	return hinted
}

// firstPriceValue scans values whose header name contains a price-indicating
// token, in token priority order, taking the first numerically parseable one.
func firstPriceValue(header []string, row tabular.Row) string {
	for _, token := range priceHeaderTokens {
		for _, h := range header {
			if !strings.Contains(strings.ToLower(h), token) {
				continue
			}
			if v := strings.TrimSpace(row[h]); numeric(v) {
				return v
			}
		}
	}
	return ""
}

// numeric mirrors the normalizer's price parsing just enough to test
// parseability: whitespace stripped, comma decimal separator accepted.
func numeric(s string) bool {
	s = strings.Join(strings.Fields(s), "")
	s = strings.Replace(s, ",", ".", 1)
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
