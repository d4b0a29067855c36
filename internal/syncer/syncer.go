package syncer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shopsync/internal/recon"
	"shopsync/internal/shopify"
	"shopsync/models"
)

// ErrUpstream marks a failed fetch from the commerce platform. It
// aborts the batch: there is nothing to reconcile.
var ErrUpstream = errors.New("upstream fetch failed")

// BrandStore resolves the tenant whose shop is being synced.
type BrandStore interface {
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
}

// Fetcher pages the platform's listing endpoints. Empty page means the
// listing is exhausted.
type Fetcher interface {
	FetchOrdersPage(ctx context.Context, shopDomain, accessToken string, sinceID int64) ([]shopify.Order, error)
	FetchProductsPage(ctx context.Context, shopDomain, accessToken string, sinceID int64) ([]shopify.Product, error)
}

// Syncer pulls the full listing for one brand and feeds every record
// through the reconciliation engine, the same code path webhooks use.
// Per-record failures are counted, not fatal.
type Syncer struct {
	brands   BrandStore
	platform Fetcher
	engine   *recon.Engine
	now      func() time.Time
}

func NewSyncer(brands BrandStore, platform Fetcher, engine *recon.Engine) *Syncer {
	return &Syncer{
		brands:   brands,
		platform: platform,
		engine:   engine,
		now:      time.Now,
	}
}

// SyncOrders mirrors every order the platform lists for the brand.
func (s *Syncer) SyncOrders(ctx context.Context, brandID int64) (*models.SyncReport, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand.AccessToken == "" {
		return nil, fmt.Errorf("%w: brand %d has no access token", ErrUpstream, brandID)
	}

	log.Printf("🚀 Starting order sync for brand %d (%s)", brand.ID, brand.ShopDomain)

	report := &models.SyncReport{}
	var sinceID int64

	for {
		page, err := s.platform.FetchOrdersPage(ctx, brand.ShopDomain, brand.AccessToken, sinceID)
		if err != nil {
			if report.TotalProcessed == 0 {
				return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
			}
			return report, fmt.Errorf("%w after %d records: %v", ErrUpstream, report.TotalProcessed, err)
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			o := &page[i]
			report.TotalProcessed++
			sinceID = o.ID

			rec, err := recon.OrderFromVendor(brand, o)
			if err != nil {
				report.Failed++
				if errors.Is(err, recon.ErrDataIntegrity) {
					log.Printf("✗ Data integrity failure syncing order %d: %v", o.ID, err)
				} else {
					log.Printf("✗ Failed to transform order %d: %v", o.ID, err)
				}
				continue
			}

			outcome, err := s.engine.ReconcileOrder(ctx, rec)
			if err != nil {
				report.Failed++
				log.Printf("✗ Failed to reconcile order %d: %v", o.ID, err)
				continue
			}
			s.count(report, outcome)
		}
	}

	log.Printf("✓ Order sync for brand %d done: created=%d updated=%d failed=%d total=%d",
		brand.ID, report.Created, report.Updated, report.Failed, report.TotalProcessed)
	return report, nil
}

// SyncProducts mirrors every product listing for the brand.
func (s *Syncer) SyncProducts(ctx context.Context, brandID int64) (*models.SyncReport, error) {
	brand, err := s.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand.AccessToken == "" {
		return nil, fmt.Errorf("%w: brand %d has no access token", ErrUpstream, brandID)
	}

	log.Printf("🚀 Starting product sync for brand %d (%s)", brand.ID, brand.ShopDomain)

	report := &models.SyncReport{}
	syncedAt := s.now()
	var sinceID int64

	for {
		page, err := s.platform.FetchProductsPage(ctx, brand.ShopDomain, brand.AccessToken, sinceID)
		if err != nil {
			if report.TotalProcessed == 0 {
				return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
			}
			return report, fmt.Errorf("%w after %d records: %v", ErrUpstream, report.TotalProcessed, err)
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			p := &page[i]
			report.TotalProcessed++
			sinceID = p.ID

			rec, err := recon.ProductFromVendor(brand, p, syncedAt)
			if err != nil {
				report.Failed++
				log.Printf("✗ Failed to transform product %d: %v", p.ID, err)
				continue
			}

			outcome, err := s.engine.ReconcileProduct(ctx, rec)
			if err != nil {
				report.Failed++
				log.Printf("✗ Failed to reconcile product %d: %v", p.ID, err)
				continue
			}
			s.count(report, outcome)
		}
	}

	log.Printf("✓ Product sync for brand %d done: created=%d updated=%d failed=%d total=%d",
		brand.ID, report.Created, report.Updated, report.Failed, report.TotalProcessed)
	return report, nil
}

func (s *Syncer) count(report *models.SyncReport, outcome recon.Outcome) {
	switch outcome {
	case recon.OutcomeCreated:
		report.Created++
	case recon.OutcomeUpdated:
		report.Updated++
	}
}
