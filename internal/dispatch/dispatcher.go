package dispatch

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"shopsync/models"
)

// Publisher hands a message to the queue backing the side-effect
// workflows.
type Publisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// Dispatcher fires dependent workflows after a successful
// reconciliation. It is best-effort by contract: nothing here may fail
// the primary operation that already succeeded.
type Dispatcher struct {
	publisher Publisher
	queueName string
}

func NewDispatcher(publisher Publisher, queueName string) *Dispatcher {
	return &Dispatcher{
		publisher: publisher,
		queueName: queueName,
	}
}

// OrderCreated queues a shipping-zone sync for a newly mirrored order.
// Called only on created outcomes, once per new order. A brand without
// a stored credential is skipped; publish failures are logged and
// swallowed.
func (d *Dispatcher) OrderCreated(ctx context.Context, brand *models.Brand, order *models.ExternalOrder) {
	if brand.AccessToken == "" {
		log.Printf("Brand %d has no access token, skipping shipping sync for order %s",
			brand.ID, order.ExternalOrderID)
		return
	}

	job := models.ShippingSyncJob{
		JobID:           uuid.NewString(),
		BrandID:         brand.ID,
		ExternalOrderID: order.ExternalOrderID,
		ShopDomain:      brand.ShopDomain,
	}

	body, err := json.Marshal(job)
	if err != nil {
		log.Printf("✗ Failed to encode shipping sync job for order %s: %v", order.ExternalOrderID, err)
		return
	}

	if err := d.publisher.Publish(ctx, d.queueName, body); err != nil {
		log.Printf("✗ Failed to queue shipping sync for brand %d order %s: %v",
			brand.ID, order.ExternalOrderID, err)
		return
	}

	log.Printf("✓ Queued shipping sync job %s for brand %d order %s", job.JobID, brand.ID, order.ExternalOrderID)
}
