package recon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shopsync/internal/shopify"
	"shopsync/models"
)

// OrderFromVendor builds the local mirror record for one vendor order,
// applying financial derivation and status mapping. The vendor blobs
// (line items, addresses, full payload) are carried through unmodified.
func OrderFromVendor(brand *models.Brand, o *shopify.Order) (*models.ExternalOrder, error) {
	total, err := decimal.NewFromString(o.TotalPrice)
	if err != nil {
		return nil, fmt.Errorf("order %d has unparseable total_price %q: %w", o.ID, o.TotalPrice, err)
	}

	rate := CommissionRateFor(brand)
	commission, earnings, err := DeriveFinancials(total, rate)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}

	email := o.Email
	name := ""
	if o.Customer != nil {
		if o.Customer.Email != "" {
			email = o.Customer.Email
		}
		name = strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName)
	}

	orderNumber := o.Name
	if orderNumber == "" && o.OrderNumber > 0 {
		orderNumber = strconv.FormatInt(o.OrderNumber, 10)
	}

	return &models.ExternalOrder{
		BrandID:           brand.ID,
		ExternalOrderID:   strconv.FormatInt(o.ID, 10),
		OrderNumber:       orderNumber,
		TotalAmount:       total,
		CommissionAmount:  commission,
		BrandEarnings:     earnings,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		PaymentStatus:     MapPaymentStatus(o.FinancialStatus),
		CustomerEmail:     email,
		CustomerName:      name,
		LineItems:         o.LineItems,
		ShippingAddress:   o.ShippingAddress,
		BillingAddress:    o.BillingAddress,
		Metadata:          o.Raw,
		SourceCreatedAt:   o.CreatedAt,
	}, nil
}

// ProductFromVendor builds the local mirror record for one vendor
// product. When the vendor lists a compare-at price the listed price is
// a sale price; otherwise it is the regular price.
func ProductFromVendor(brand *models.Brand, p *shopify.Product, syncedAt time.Time) (*models.ExternalProduct, error) {
	var price decimal.Decimal
	var salePrice *decimal.Decimal
	var inventory int64

	if len(p.Variants) > 0 {
		v := p.Variants[0]
		listed, err := decimal.NewFromString(v.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d has unparseable price %q: %w", p.ID, v.Price, err)
		}
		price = listed

		if v.CompareAtPrice != nil && *v.CompareAtPrice != "" {
			regular, err := decimal.NewFromString(*v.CompareAtPrice)
			if err != nil {
				return nil, fmt.Errorf("product %d has unparseable compare_at_price %q: %w", p.ID, *v.CompareAtPrice, err)
			}
			price = regular
			salePrice = &listed
		}

		for _, variant := range p.Variants {
			inventory += variant.InventoryQuantity
		}
	}

	tags, err := json.Marshal(splitTags(p.Tags))
	if err != nil {
		return nil, fmt.Errorf("product %d: %w", p.ID, err)
	}

	return &models.ExternalProduct{
		BrandID:           brand.ID,
		ExternalProductID: strconv.FormatInt(p.ID, 10),
		Title:             p.Title,
		Description:       p.BodyHTML,
		Category:          p.ProductType,
		Status:            p.Status,
		Price:             price,
		SalePrice:         salePrice,
		InventoryCount:    inventory,
		Tags:              tags,
		Images:            p.Images,
		Metadata:          p.Raw,
		LastSyncAt:        syncedAt,
	}, nil
}

// splitTags turns the vendor's comma-separated tag string into a set.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
