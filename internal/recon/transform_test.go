package recon

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync/internal/shopify"
	"shopsync/models"
)

func testBrand() *models.Brand {
	rate := dec("0.10")
	return &models.Brand{
		ID:             7,
		ShopDomain:     "acme.myshopify.com",
		AccessToken:    "shpat_test",
		CommissionRate: &rate,
	}
}

func TestOrderFromVendor(t *testing.T) {
	raw := json.RawMessage(`{"id":987,"total_price":"100.00","financial_status":"paid"}`)
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	o := &shopify.Order{
		ID:              987,
		Name:            "#1001",
		TotalPrice:      "100.00",
		FinancialStatus: "paid",
		Email:           "fallback@example.com",
		Customer: &shopify.Customer{
			Email:     "jane@example.com",
			FirstName: "Jane",
			LastName:  "Doe",
		},
		SourceName: "shopscope",
		LineItems:  json.RawMessage(`[{"id":1}]`),
		CreatedAt:  created,
		Raw:        raw,
	}

	rec, err := OrderFromVendor(testBrand(), o)
	require.NoError(t, err)

	assert.Equal(t, int64(7), rec.BrandID)
	assert.Equal(t, "987", rec.ExternalOrderID)
	assert.Equal(t, "#1001", rec.OrderNumber)
	assert.True(t, rec.TotalAmount.Equal(dec("100.00")))
	assert.True(t, rec.CommissionAmount.Equal(dec("10.00")))
	assert.True(t, rec.BrandEarnings.Equal(dec("90.00")))
	assert.Equal(t, models.PaymentPaid, rec.PaymentStatus)
	assert.Equal(t, "paid", rec.FinancialStatus)
	assert.Equal(t, "jane@example.com", rec.CustomerEmail)
	assert.Equal(t, "Jane Doe", rec.CustomerName)
	assert.Equal(t, created, rec.SourceCreatedAt)

	// Vendor blobs pass through byte-for-byte.
	assert.Equal(t, json.RawMessage(`[{"id":1}]`), rec.LineItems)
	assert.Equal(t, raw, rec.Metadata)
}

func TestOrderFromVendor_BadTotalPrice(t *testing.T) {
	o := &shopify.Order{ID: 1, TotalPrice: "not-a-number"}
	_, err := OrderFromVendor(testBrand(), o)
	require.Error(t, err)
}

func TestOrderFromVendor_NegativeTotalIsIntegrityError(t *testing.T) {
	o := &shopify.Order{ID: 1, TotalPrice: "-5.00", FinancialStatus: "paid"}
	_, err := OrderFromVendor(testBrand(), o)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestProductFromVendor(t *testing.T) {
	syncedAt := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	compareAt := "25.00"

	p := &shopify.Product{
		ID:          555,
		Title:       "Canvas Tote",
		BodyHTML:    "<p>Sturdy.</p>",
		ProductType: "Bags",
		Status:      "active",
		Tags:        "summer, canvas , new",
		Variants: []shopify.Variant{
			{Price: "19.99", CompareAtPrice: &compareAt, InventoryQuantity: 4},
			{Price: "19.99", InventoryQuantity: 6},
		},
		Raw: json.RawMessage(`{"id":555}`),
	}

	rec, err := ProductFromVendor(testBrand(), p, syncedAt)
	require.NoError(t, err)

	assert.Equal(t, "555", rec.ExternalProductID)
	assert.Equal(t, "Canvas Tote", rec.Title)
	assert.Equal(t, "Bags", rec.Category)
	// Compare-at set means the listed price is a sale price.
	assert.True(t, rec.Price.Equal(dec("25.00")))
	require.NotNil(t, rec.SalePrice)
	assert.True(t, rec.SalePrice.Equal(dec("19.99")))
	assert.Equal(t, int64(10), rec.InventoryCount)
	assert.Equal(t, syncedAt, rec.LastSyncAt)
	assert.JSONEq(t, `["summer","canvas","new"]`, string(rec.Tags))
}

func TestProductFromVendor_NoVariants(t *testing.T) {
	p := &shopify.Product{ID: 556, Title: "Gift Card", Tags: ""}
	rec, err := ProductFromVendor(testBrand(), p, time.Now())
	require.NoError(t, err)
	assert.True(t, rec.Price.IsZero())
	assert.Nil(t, rec.SalePrice)
	assert.JSONEq(t, `[]`, string(rec.Tags))
}
