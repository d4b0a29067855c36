package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand is the tenant owning mirrored orders and products. This service
// only reads brands; they are managed elsewhere.
type Brand struct {
	ID         int64  `gorm:"primaryKey"`
	Name       string `gorm:"size:200"`
	ShopDomain string `gorm:"size:255;uniqueIndex"`
	// AccessToken authenticates outbound calls to the commerce platform
	// and to the shipping sync workflow.
	AccessToken string `gorm:"type:text"`
	// CommissionRate is a fraction in [0,1]. Nil means the brand has no
	// configured rate and the platform default applies.
	CommissionRate *decimal.Decimal `gorm:"type:numeric(5,4)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
