package shopify

import (
	"encoding/json"
	"time"
)

// Order is the subset of the vendor order payload this service reads.
// Everything else stays in Raw and is carried through opaquely.
type Order struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	OrderNumber       int64           `json:"order_number"`
	TotalPrice        string          `json:"total_price"`
	FinancialStatus   string          `json:"financial_status"`
	FulfillmentStatus string          `json:"fulfillment_status"`
	Email             string          `json:"email"`
	Customer          *Customer       `json:"customer"`
	SourceName        string          `json:"source_name"`
	SourceIdentifier  string          `json:"source_identifier"`
	LandingSite       string          `json:"landing_site"`
	ReferringSite     string          `json:"referring_site"`
	LineItems         json.RawMessage `json:"line_items"`
	ShippingAddress   json.RawMessage `json:"shipping_address"`
	BillingAddress    json.RawMessage `json:"billing_address"`
	NoteAttributes    json.RawMessage `json:"note_attributes"`
	CreatedAt         time.Time       `json:"created_at"`

	// Raw holds the untouched vendor JSON for this order.
	Raw json.RawMessage `json:"-"`
}

type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Product is the subset of the vendor product payload this service reads.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	BodyHTML    string          `json:"body_html"`
	ProductType string          `json:"product_type"`
	Status      string          `json:"status"`
	Tags        string          `json:"tags"`
	Variants    []Variant       `json:"variants"`
	Images      json.RawMessage `json:"images"`

	Raw json.RawMessage `json:"-"`
}

type Variant struct {
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	InventoryQuantity int64   `json:"inventory_quantity"`
}
