package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"shopsync/internal/rabbitmq"
	"shopsync/models"
)

// BrandStore resolves the credential for the brand a job belongs to.
type BrandStore interface {
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
}

// ShippingWorker consumes queued shipping-zone sync jobs and calls the
// internal shipping workflow. The whole pipeline is best effort: a
// failed call is logged and the job acked, so a broken downstream can
// never back up the queue or touch the mirrored data.
type ShippingWorker struct {
	consumer   *rabbitmq.Consumer
	brands     BrandStore
	httpClient *http.Client
	syncURL    string
	queueName  string
}

func NewShippingWorker(consumer *rabbitmq.Consumer, brands BrandStore, syncURL, queueName string) *ShippingWorker {
	return &ShippingWorker{
		consumer:   consumer,
		brands:     brands,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		syncURL:    syncURL,
		queueName:  queueName,
	}
}

func (w *ShippingWorker) Start() error {
	log.Printf("🚀 Starting Shipping Worker for queue: %s", w.queueName)
	return w.consumer.ConsumeQueue(w.queueName, w.handleMessage)
}

func (w *ShippingWorker) handleMessage(body []byte) error {
	var job models.ShippingSyncJob
	if err := json.Unmarshal(body, &job); err != nil {
		log.Printf("✗ Dropping malformed shipping sync job: %v", err)
		return nil
	}

	log.Printf("📦 Processing shipping sync job %s: brand=%d order=%s", job.JobID, job.BrandID, job.ExternalOrderID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.syncShippingZones(ctx, &job); err != nil {
		log.Printf("✗ Shipping sync job %s failed: %v", job.JobID, err)
		return nil
	}

	log.Printf("✓ Shipping sync job %s completed", job.JobID)
	return nil
}

func (w *ShippingWorker) syncShippingZones(ctx context.Context, job *models.ShippingSyncJob) error {
	brand, err := w.brands.GetByID(ctx, job.BrandID)
	if err != nil {
		return err
	}
	if brand.AccessToken == "" {
		log.Printf("Brand %d lost its access token, skipping shipping sync", brand.ID)
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"brand_id":     brand.ID,
		"shop_domain":  job.ShopDomain,
		"access_token": brand.AccessToken,
	})
	if err != nil {
		return fmt.Errorf("failed to encode shipping sync request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.syncURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shipping sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shipping sync returned status %d", resp.StatusCode)
	}
	return nil
}
