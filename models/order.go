package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the canonical payment-status vocabulary, independent
// of the vendor's own status strings.
type PaymentStatus string

const (
	PaymentPaid              PaymentStatus = "paid"
	PaymentPending           PaymentStatus = "pending"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
)

// ExternalOrder mirrors one order on the commerce platform. Exactly one
// row exists per (brand_id, external_order_id); every sighting of the
// same order replaces the mutable fields.
type ExternalOrder struct {
	ID              int64  `gorm:"primaryKey"`
	BrandID         int64  `gorm:"uniqueIndex:idx_brand_external_order;not null"`
	ExternalOrderID string `gorm:"uniqueIndex:idx_brand_external_order;size:64;not null"`
	OrderNumber     string `gorm:"size:64"`

	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2)"`
	CommissionAmount decimal.Decimal `gorm:"type:numeric(12,2)"`
	BrandEarnings    decimal.Decimal `gorm:"type:numeric(12,2)"`

	FinancialStatus   string        `gorm:"size:50"`
	FulfillmentStatus string        `gorm:"size:50"`
	PaymentStatus     PaymentStatus `gorm:"size:50"`

	CustomerEmail string `gorm:"size:255"`
	CustomerName  string `gorm:"size:255"`

	// Vendor-shaped blobs carried through unmodified for audit. Their
	// schema is outside this system's control.
	LineItems       json.RawMessage `gorm:"type:jsonb"`
	ShippingAddress json.RawMessage `gorm:"type:jsonb"`
	BillingAddress  json.RawMessage `gorm:"type:jsonb"`
	Metadata        json.RawMessage `gorm:"type:jsonb"`

	// SourceCreatedAt is copied from the vendor event, not local receipt time.
	SourceCreatedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
