package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"shopsync/models"
)

// Products persists mirrored product listings, same upsert contract as
// orders.
type Products struct {
	db *gorm.DB
}

func NewProducts(db *gorm.DB) *Products {
	return &Products{db: db}
}

func (s *Products) UpsertProduct(ctx context.Context, p *models.ExternalProduct) (bool, error) {
	sql := `
		INSERT INTO external_products (
			brand_id, external_product_id,
			title, description, category, status,
			price, sale_price, inventory_count,
			tags, images, metadata,
			last_sync_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?::jsonb, ?::jsonb, ?::jsonb, ?, ?, ?)
		ON CONFLICT (brand_id, external_product_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			price = EXCLUDED.price,
			sale_price = EXCLUDED.sale_price,
			inventory_count = EXCLUDED.inventory_count,
			tags = EXCLUDED.tags,
			images = EXCLUDED.images,
			metadata = EXCLUDED.metadata,
			last_sync_at = EXCLUDED.last_sync_at,
			updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0) AS inserted
	`

	var result struct {
		ID       int64
		Inserted bool
	}

	err := s.db.WithContext(ctx).Raw(sql,
		p.BrandID, p.ExternalProductID,
		p.Title, p.Description, p.Category, p.Status,
		p.Price, p.SalePrice, p.InventoryCount,
		jsonArg(p.Tags), jsonArg(p.Images), jsonArg(p.Metadata),
		p.LastSyncAt, p.CreatedAt, p.UpdatedAt,
	).Scan(&result).Error
	if err != nil {
		return false, fmt.Errorf("failed to upsert product %s for brand %d: %w", p.ExternalProductID, p.BrandID, err)
	}

	p.ID = result.ID
	return result.Inserted, nil
}
