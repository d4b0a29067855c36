package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"shopsync/internal/recon"
	"shopsync/internal/shopify"
	"shopsync/internal/store"
	"shopsync/internal/syncer"
	"shopsync/models"
)

// BrandResolver maps the webhook routing header to a tenant.
type BrandResolver interface {
	GetByShopDomain(ctx context.Context, shopDomain string) (*models.Brand, error)
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
}

// Dispatcher fires the side-effect workflow for newly created orders.
type Dispatcher interface {
	OrderCreated(ctx context.Context, brand *models.Brand, order *models.ExternalOrder)
}

// BatchSyncer runs full listing syncs for one brand.
type BatchSyncer interface {
	SyncOrders(ctx context.Context, brandID int64) (*models.SyncReport, error)
	SyncProducts(ctx context.Context, brandID int64) (*models.SyncReport, error)
}

// Handler exposes the webhook ingress and the admin sync routes.
type Handler struct {
	brands        BrandResolver
	engine        *recon.Engine
	dispatcher    Dispatcher
	syncer        BatchSyncer
	webhookSecret string
}

func NewHandler(brands BrandResolver, engine *recon.Engine, dispatcher Dispatcher, batch BatchSyncer, webhookSecret string) *Handler {
	return &Handler{
		brands:        brands,
		engine:        engine,
		dispatcher:    dispatcher,
		syncer:        batch,
		webhookSecret: webhookSecret,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhooks/orders", h.handleOrderWebhook)
	mux.HandleFunc("POST /api/sync/orders", h.handleSyncOrders)
	mux.HandleFunc("POST /api/sync/products", h.handleSyncProducts)
}

func (h *Handler) handleOrderWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// Authenticate before anything else. The response does not say
	// whether body, header or secret was wrong.
	signature := r.Header.Get("X-Shopify-Hmac-Sha256")
	shopDomain := r.Header.Get("X-Shopify-Shop-Domain")
	if shopDomain == "" || !VerifyWebhookSignature(body, signature, h.webhookSecret) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	brand, err := h.brands.GetByShopDomain(r.Context(), shopDomain)
	if errors.Is(err, store.ErrBrandNotFound) {
		http.Error(w, "unknown shop", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("✗ Failed to resolve brand for shop %s: %v", shopDomain, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var order shopify.Order
	if err := json.Unmarshal(body, &order); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	order.Raw = body

	if !FromStorefront(&order) {
		log.Printf("Skipping order %d for shop %s: not from our storefront", order.ID, shopDomain)
		writeJSON(w, http.StatusOK, map[string]string{"status": "skipped"})
		return
	}

	rec, err := recon.OrderFromVendor(brand, &order)
	if err != nil {
		if errors.Is(err, recon.ErrDataIntegrity) {
			log.Printf("✗ Data integrity failure on webhook for shop %s: %v", shopDomain, err)
		} else {
			log.Printf("✗ Failed to transform webhook order for shop %s: %v", shopDomain, err)
		}
		http.Error(w, "unprocessable order", http.StatusUnprocessableEntity)
		return
	}

	outcome, err := h.engine.ReconcileOrder(r.Context(), rec)
	if err != nil {
		log.Printf("✗ Failed to reconcile webhook order for shop %s: %v", shopDomain, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if outcome == recon.OutcomeCreated {
		h.dispatcher.OrderCreated(r.Context(), brand, rec)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSyncOrders(w http.ResponseWriter, r *http.Request) {
	h.handleSync(w, r, h.syncer.SyncOrders)
}

func (h *Handler) handleSyncProducts(w http.ResponseWriter, r *http.Request) {
	h.handleSync(w, r, h.syncer.SyncProducts)
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request, run func(context.Context, int64) (*models.SyncReport, error)) {
	brandID, err := strconv.ParseInt(r.URL.Query().Get("brand_id"), 10, 64)
	if err != nil || brandID <= 0 {
		http.Error(w, "invalid brand_id", http.StatusBadRequest)
		return
	}

	report, err := run(r.Context(), brandID)
	if errors.Is(err, store.ErrBrandNotFound) {
		http.Error(w, "unknown brand", http.StatusNotFound)
		return
	}
	if errors.Is(err, syncer.ErrUpstream) {
		log.Printf("✗ Sync for brand %d aborted: %v", brandID, err)
		http.Error(w, "upstream fetch failed", http.StatusBadGateway)
		return
	}
	if err != nil {
		log.Printf("✗ Sync for brand %d failed: %v", brandID, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
