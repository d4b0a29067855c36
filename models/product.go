package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ExternalProduct mirrors one product listing on the commerce platform,
// unique per (brand_id, external_product_id). Driven by batch sync.
type ExternalProduct struct {
	ID                int64  `gorm:"primaryKey"`
	BrandID           int64  `gorm:"uniqueIndex:idx_brand_external_product;not null"`
	ExternalProductID string `gorm:"uniqueIndex:idx_brand_external_product;size:64;not null"`

	Title       string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:255"`
	Status      string `gorm:"size:50"`

	Price          decimal.Decimal  `gorm:"type:numeric(12,2)"`
	SalePrice      *decimal.Decimal `gorm:"type:numeric(12,2)"`
	InventoryCount int64

	Tags     json.RawMessage `gorm:"type:jsonb"`
	Images   json.RawMessage `gorm:"type:jsonb"`
	Metadata json.RawMessage `gorm:"type:jsonb"`

	LastSyncAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
