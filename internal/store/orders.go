package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"shopsync/models"
)

// Orders persists mirrored orders.
type Orders struct {
	db *gorm.DB
}

func NewOrders(db *gorm.DB) *Orders {
	return &Orders{db: db}
}

// UpsertOrder inserts or fully replaces the row for the order's
// (brand_id, external_order_id) key in a single statement, so two
// concurrent reconciliations of the same key cannot interleave; the
// last writer wins. Identity fields, created_at and source_created_at
// keep their first-written values. The xmax trick distinguishes a fresh
// insert from a conflict-update.
func (s *Orders) UpsertOrder(ctx context.Context, o *models.ExternalOrder) (bool, error) {
	sql := `
		INSERT INTO external_orders (
			brand_id, external_order_id, order_number,
			total_amount, commission_amount, brand_earnings,
			financial_status, fulfillment_status, payment_status,
			customer_email, customer_name,
			line_items, shipping_address, billing_address, metadata,
			source_created_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?::jsonb, ?::jsonb, ?::jsonb, ?, ?, ?)
		ON CONFLICT (brand_id, external_order_id) DO UPDATE SET
			order_number = EXCLUDED.order_number,
			total_amount = EXCLUDED.total_amount,
			commission_amount = EXCLUDED.commission_amount,
			brand_earnings = EXCLUDED.brand_earnings,
			financial_status = EXCLUDED.financial_status,
			fulfillment_status = EXCLUDED.fulfillment_status,
			payment_status = EXCLUDED.payment_status,
			customer_email = EXCLUDED.customer_email,
			customer_name = EXCLUDED.customer_name,
			line_items = EXCLUDED.line_items,
			shipping_address = EXCLUDED.shipping_address,
			billing_address = EXCLUDED.billing_address,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS inserted
	`

	var result struct {
		ID       int64
		Inserted bool
	}

	err := s.db.WithContext(ctx).Raw(sql,
		o.BrandID, o.ExternalOrderID, o.OrderNumber,
		o.TotalAmount, o.CommissionAmount, o.BrandEarnings,
		o.FinancialStatus, o.FulfillmentStatus, o.PaymentStatus,
		o.CustomerEmail, o.CustomerName,
		jsonArg(o.LineItems), jsonArg(o.ShippingAddress), jsonArg(o.BillingAddress), jsonArg(o.Metadata),
		o.SourceCreatedAt, o.CreatedAt, o.UpdatedAt,
	).Scan(&result).Error
	if err != nil {
		return false, fmt.Errorf("failed to upsert order %s for brand %d: %w", o.ExternalOrderID, o.BrandID, err)
	}

	o.ID = result.ID
	return result.Inserted, nil
}

// GetOrder fetches one mirrored order by its composite key.
func (s *Orders) GetOrder(ctx context.Context, brandID int64, externalOrderID string) (*models.ExternalOrder, error) {
	var order models.ExternalOrder
	err := s.db.WithContext(ctx).
		Where("brand_id = ? AND external_order_id = ?", brandID, externalOrderID).
		First(&order).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query order %s for brand %d: %w", externalOrderID, brandID, err)
	}
	return &order, nil
}

// jsonArg passes a raw JSON blob as a text parameter cast to jsonb in
// SQL. Empty blobs become NULL.
func jsonArg(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
