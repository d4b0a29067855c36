package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shopsync/models"
)

// ErrBrandNotFound reports an unknown tenant.
var ErrBrandNotFound = errors.New("brand not found")

// Brands is a read-only view of the tenant table.
type Brands struct {
	db *gorm.DB
}

func NewBrands(db *gorm.DB) *Brands {
	return &Brands{db: db}
}

func (s *Brands) GetByShopDomain(ctx context.Context, shopDomain string) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.WithContext(ctx).Where("shop_domain = ?", shopDomain).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("shop %s: %w", shopDomain, ErrBrandNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brand for shop %s: %w", shopDomain, err)
	}
	return &brand, nil
}

func (s *Brands) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.WithContext(ctx).First(&brand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("brand %d: %w", id, ErrBrandNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query brand %d: %w", id, err)
	}
	return &brand, nil
}
