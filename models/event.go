package models

// ShippingSyncJob is the message payload pushed to RabbitMQ when a new
// order was mirrored and the brand's shipping zones need a refresh.
type ShippingSyncJob struct {
	JobID           string `json:"job_id"`
	BrandID         int64  `json:"brand_id"`
	ExternalOrderID string `json:"external_order_id"`
	ShopDomain      string `json:"shop_domain"`
}
