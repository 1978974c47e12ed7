package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the moderation state of a catalog item. Ingestion only ever
// writes StatusNew; the remaining states are set by operators.
type Status string

const (
	StatusNew         Status = "new"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusBlacklisted Status = "blacklisted"
)

// ValidStatuses defines the allowed moderation states
var ValidStatuses = map[Status]bool{
	StatusNew:         true,
	StatusApproved:    true,
	StatusRejected:    true,
	StatusBlacklisted: true,
}

// LocalCheck is the enrichment flag for the local-market availability check
type LocalCheck string

const (
	LocalCheckUnknown LocalCheck = "unknown"
	LocalCheckYes     LocalCheck = "yes"
	LocalCheckNo      LocalCheck = "no"
)

// Legacy flat category buckets, kept as a fallback for rows the rule-based
// categorizer cannot place.
const (
	LegacyHome    = "home"
	LegacyGarden  = "garden"
	LegacyTools   = "tools"
	LegacyOutdoor = "outdoor"
	LegacyKitchen = "kitchen"
	LegacyStorage = "storage"
	LegacyOther   = "other"
)

// CatalogItem is the persisted product entity. Identity is SourceURL:
// re-ingesting the same SourceURL updates the existing row, never duplicates.
type CatalogItem struct {
	ID             string              `json:"id" db:"id"`
	SourceURL      string              `json:"source_url" db:"source_url"`
	Title          string              `json:"title" db:"title"`
	Description    string              `json:"description" db:"description"`
	LegacyCategory string              `json:"legacy_category" db:"legacy_category"`
	CategoryID     *string             `json:"category_id,omitempty" db:"category_id"`
	CategoryPath   []string            `json:"category_path" db:"category_path"`
	CategoryLocked bool                `json:"category_locked" db:"category_locked"`
	Source         string              `json:"source" db:"source"`
	Brand          string              `json:"brand,omitempty" db:"brand"`
	ProductCode    string              `json:"product_code,omitempty" db:"product_code"`
	AffiliateURL   string              `json:"affiliate_url" db:"affiliate_url"`
	ImageURL       string              `json:"image_url" db:"image_url"`
	Price          decimal.NullDecimal `json:"price" db:"price"`
	SalePrice      decimal.NullDecimal `json:"sale_price" db:"sale_price"`
	Currency       string              `json:"currency" db:"currency"`
	FreeShipping   bool                `json:"free_shipping" db:"free_shipping"`
	HasGift        bool                `json:"has_gift" db:"has_gift"`
	Score          int                 `json:"score" db:"score"`
	ProfitScore    int                 `json:"profit_score" db:"profit_score"`
	Status         Status              `json:"status" db:"status"`
	LocalCheck     LocalCheck          `json:"local_check" db:"local_check"`
	Views          int                 `json:"views" db:"views"`
	Clicks         int                 `json:"clicks" db:"clicks"`
	CreatedAt      time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" db:"updated_at"`
}

// CatalogFilter narrows catalog listing queries
type CatalogFilter struct {
	Status     Status
	PathPrefix []string
	Limit      int
	Offset     int
}
