package recon

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopsync/models"
)

// Outcome reports what a reconciliation did to the local record.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
)

// OrderStore persists mirrored orders. Upsert is atomic on the
// (brand_id, external_order_id) key and reports whether it inserted.
type OrderStore interface {
	UpsertOrder(ctx context.Context, order *models.ExternalOrder) (created bool, err error)
}

// ProductStore persists mirrored products, keyed the same way.
type ProductStore interface {
	UpsertProduct(ctx context.Context, product *models.ExternalProduct) (created bool, err error)
}

// AuditSink records reconciliation outcomes for later inspection.
// Failures never affect the primary path.
type AuditSink interface {
	RecordReconEvent(ctx context.Context, brandID int64, entity, externalID, outcome string, eventTime time.Time) error
}

// Engine idempotently creates or updates one local record per external
// entity. Conflicts on the same key resolve last-writer-wins inside a
// single atomic upsert.
type Engine struct {
	orders   OrderStore
	products ProductStore
	audit    AuditSink
	now      func() time.Time
}

func NewEngine(orders OrderStore, products ProductStore, audit AuditSink) *Engine {
	return &Engine{
		orders:   orders,
		products: products,
		audit:    audit,
		now:      time.Now,
	}
}

// ReconcileOrder upserts the candidate record. On update, all mutable
// fields are replaced; identity fields and the source creation
// timestamp are left as first written.
func (e *Engine) ReconcileOrder(ctx context.Context, order *models.ExternalOrder) (Outcome, error) {
	now := e.now()
	order.CreatedAt = now
	order.UpdatedAt = now

	created, err := e.orders.UpsertOrder(ctx, order)
	if err != nil {
		return "", fmt.Errorf("reconcile order brand=%d external_id=%s: %w",
			order.BrandID, order.ExternalOrderID, err)
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	e.recordAudit(ctx, order.BrandID, "order", order.ExternalOrderID, outcome, now)
	return outcome, nil
}

// ReconcileProduct upserts the candidate product record.
func (e *Engine) ReconcileProduct(ctx context.Context, product *models.ExternalProduct) (Outcome, error) {
	now := e.now()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := e.products.UpsertProduct(ctx, product)
	if err != nil {
		return "", fmt.Errorf("reconcile product brand=%d external_id=%s: %w",
			product.BrandID, product.ExternalProductID, err)
	}

	outcome := OutcomeUpdated
	if created {
		outcome = OutcomeCreated
	}
	e.recordAudit(ctx, product.BrandID, "product", product.ExternalProductID, outcome, now)
	return outcome, nil
}

func (e *Engine) recordAudit(ctx context.Context, brandID int64, entity, externalID string, outcome Outcome, ts time.Time) {
	if e.audit == nil {
		return
	}
	if err := e.audit.RecordReconEvent(ctx, brandID, entity, externalID, string(outcome), ts); err != nil {
		log.Printf("Failed to record audit event for %s %s: %v", entity, externalID, err)
	}
}
