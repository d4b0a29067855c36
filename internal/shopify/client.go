package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the commerce platform's admin REST API on behalf of
// one shop at a time. Credentials are per call, not per client, so a
// single instance serves every brand.
type Client struct {
	httpClient *http.Client
	apiVersion string
	pageSize   int
}

func NewClient(apiVersion string, pageSize int) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiVersion: apiVersion,
		pageSize:   pageSize,
	}
}

func (c *Client) PageSize() int {
	return c.pageSize
}

// FetchOrdersPage returns one page of orders after sinceID. An empty
// slice means the listing is exhausted.
func (c *Client) FetchOrdersPage(ctx context.Context, shopDomain, accessToken string, sinceID int64) ([]Order, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/orders.json?status=any&limit=%d&since_id=%d",
		shopDomain, c.apiVersion, c.pageSize, sinceID)

	body, err := c.get(ctx, url, accessToken)
	if err != nil {
		return nil, err
	}

	var page struct {
		Orders []json.RawMessage `json:"orders"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode orders page: %w", err)
	}

	orders := make([]Order, 0, len(page.Orders))
	for _, raw := range page.Orders {
		var o Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		o.Raw = raw
		orders = append(orders, o)
	}
	return orders, nil
}

// FetchProductsPage returns one page of products after sinceID.
func (c *Client) FetchProductsPage(ctx context.Context, shopDomain, accessToken string, sinceID int64) ([]Product, error) {
	url := fmt.Sprintf("https://%s/admin/api/%s/products.json?limit=%d&since_id=%d",
		shopDomain, c.apiVersion, c.pageSize, sinceID)

	body, err := c.get(ctx, url, accessToken)
	if err != nil {
		return nil, err
	}

	var page struct {
		Products []json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode products page: %w", err)
	}

	products := make([]Product, 0, len(page.Products))
	for _, raw := range page.Products {
		var p Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		p.Raw = raw
		products = append(products, p)
	}
	return products, nil
}

func (c *Client) get(ctx context.Context, url, accessToken string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Shopify-Access-Token", accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("platform returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform response: %w", err)
	}
	return body, nil
}
