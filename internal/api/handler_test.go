package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopsync/internal/recon"
	"shopsync/internal/store"
	"shopsync/internal/syncer"
	"shopsync/models"
)

const testSecret = "shpss_test_secret"

type fakeBrands struct {
	byDomain map[string]*models.Brand
}

func (f *fakeBrands) GetByShopDomain(_ context.Context, shopDomain string) (*models.Brand, error) {
	b, ok := f.byDomain[shopDomain]
	if !ok {
		return nil, fmt.Errorf("shop %s: %w", shopDomain, store.ErrBrandNotFound)
	}
	return b, nil
}

func (f *fakeBrands) GetByID(_ context.Context, id int64) (*models.Brand, error) {
	for _, b := range f.byDomain {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, fmt.Errorf("brand %d: %w", id, store.ErrBrandNotFound)
}

type memOrderStore struct {
	orders map[string]*models.ExternalOrder
	fail   error
}

func (s *memOrderStore) UpsertOrder(_ context.Context, o *models.ExternalOrder) (bool, error) {
	if s.fail != nil {
		return false, s.fail
	}
	key := fmt.Sprintf("%d/%s", o.BrandID, o.ExternalOrderID)
	_, existed := s.orders[key]
	clone := *o
	s.orders[key] = &clone
	return !existed, nil
}

type memProductStore struct{}

func (s *memProductStore) UpsertProduct(_ context.Context, _ *models.ExternalProduct) (bool, error) {
	return true, nil
}

type recordingDispatcher struct {
	calls []string
}

func (d *recordingDispatcher) OrderCreated(_ context.Context, brand *models.Brand, order *models.ExternalOrder) {
	d.calls = append(d.calls, fmt.Sprintf("%d/%s", brand.ID, order.ExternalOrderID))
}

type fakeSyncer struct {
	report *models.SyncReport
	err    error
}

func (f *fakeSyncer) SyncOrders(context.Context, int64) (*models.SyncReport, error) {
	return f.report, f.err
}

func (f *fakeSyncer) SyncProducts(context.Context, int64) (*models.SyncReport, error) {
	return f.report, f.err
}

type fixture struct {
	handler    *Handler
	mux        *http.ServeMux
	orders     *memOrderStore
	dispatcher *recordingDispatcher
	syncer     *fakeSyncer
}

func newFixture() *fixture {
	rate := decimal.NewFromFloat(0.10)
	brands := &fakeBrands{byDomain: map[string]*models.Brand{
		"acme.myshopify.com": {
			ID:             7,
			ShopDomain:     "acme.myshopify.com",
			AccessToken:    "shpat_test",
			CommissionRate: &rate,
		},
	}}

	orders := &memOrderStore{orders: make(map[string]*models.ExternalOrder)}
	engine := recon.NewEngine(orders, &memProductStore{}, nil)
	dispatcher := &recordingDispatcher{}
	batch := &fakeSyncer{report: &models.SyncReport{Created: 2, Updated: 3, Failed: 1, TotalProcessed: 6}}

	handler := NewHandler(brands, engine, dispatcher, batch, testSecret)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &fixture{handler: handler, mux: mux, orders: orders, dispatcher: dispatcher, syncer: batch}
}

func (f *fixture) postWebhook(t *testing.T, body, shopDomain, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders", strings.NewReader(body))
	if shopDomain != "" {
		req.Header.Set("X-Shopify-Shop-Domain", shopDomain)
	}
	if signature != "" {
		req.Header.Set("X-Shopify-Hmac-Sha256", signature)
	}
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)
	return w
}

const paidOrderBody = `{"id":987,"total_price":"100.00","financial_status":"paid","source_name":"shopscope","created_at":"2025-03-14T09:30:00Z","customer":{"email":"jane@example.com","first_name":"Jane","last_name":"Doe"}}`

func TestWebhook_HappyPath(t *testing.T) {
	f := newFixture()

	w := f.postWebhook(t, paidOrderBody, "acme.myshopify.com", sign([]byte(paidOrderBody), testSecret))
	require.Equal(t, http.StatusOK, w.Code)

	stored := f.orders.orders["7/987"]
	require.NotNil(t, stored)
	assert.True(t, stored.TotalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, stored.CommissionAmount.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, stored.BrandEarnings.Equal(decimal.RequireFromString("90.00")))
	assert.Equal(t, models.PaymentPaid, stored.PaymentStatus)
	assert.Equal(t, "jane@example.com", stored.CustomerEmail)

	// New order fires the side effect exactly once.
	assert.Equal(t, []string{"7/987"}, f.dispatcher.calls)
}

func TestWebhook_RedeliveryUpdatesWithoutSecondDispatch(t *testing.T) {
	f := newFixture()
	signature := sign([]byte(paidOrderBody), testSecret)

	w := f.postWebhook(t, paidOrderBody, "acme.myshopify.com", signature)
	require.Equal(t, http.StatusOK, w.Code)
	w = f.postWebhook(t, paidOrderBody, "acme.myshopify.com", signature)
	require.Equal(t, http.StatusOK, w.Code)

	// Still exactly one record, dispatched once.
	assert.Len(t, f.orders.orders, 1)
	assert.Equal(t, []string{"7/987"}, f.dispatcher.calls)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	f := newFixture()

	w := f.postWebhook(t, paidOrderBody, "acme.myshopify.com", "bogus-signature")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.dispatcher.calls)
}

func TestWebhook_MissingShopHeader(t *testing.T) {
	f := newFixture()

	w := f.postWebhook(t, paidOrderBody, "", sign([]byte(paidOrderBody), testSecret))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, f.orders.orders)
}

func TestWebhook_UnknownShop(t *testing.T) {
	f := newFixture()

	w := f.postWebhook(t, paidOrderBody, "stranger.myshopify.com", sign([]byte(paidOrderBody), testSecret))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, f.orders.orders)
}

func TestWebhook_NoProvenanceMarkersIsNoOp(t *testing.T) {
	f := newFixture()
	body := `{"id":987,"total_price":"100.00","financial_status":"paid","source_name":"web"}`

	w := f.postWebhook(t, body, "acme.myshopify.com", sign([]byte(body), testSecret))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "skipped")
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.dispatcher.calls)
}

func TestWebhook_PersistenceFailure(t *testing.T) {
	f := newFixture()
	f.orders.fail = errors.New("connection refused")

	w := f.postWebhook(t, paidOrderBody, "acme.myshopify.com", sign([]byte(paidOrderBody), testSecret))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, f.dispatcher.calls)
}

func TestWebhook_MalformedBody(t *testing.T) {
	f := newFixture()
	body := `{"id":987,`

	w := f.postWebhook(t, body, "acme.myshopify.com", sign([]byte(body), testSecret))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncRoute_ReturnsReport(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/sync/orders?brand_id=7", nil)
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"created":2,"updated":3,"failed":1,"total_processed":6}`, w.Body.String())
}

func TestSyncRoute_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		err      error
		wantCode int
	}{
		{"missing brand id", "/api/sync/orders", nil, http.StatusBadRequest},
		{"unknown brand", "/api/sync/orders?brand_id=9", store.ErrBrandNotFound, http.StatusNotFound},
		{"upstream failure", "/api/sync/products?brand_id=7", fmt.Errorf("%w: 401", syncer.ErrUpstream), http.StatusBadGateway},
		{"other failure", "/api/sync/products?brand_id=7", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.syncer.err = tc.err
			if tc.err != nil {
				f.syncer.report = nil
			}

			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			w := httptest.NewRecorder()
			f.mux.ServeHTTP(w, req)
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}
