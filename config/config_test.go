package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, 250, cfg.Shopify.PageSize)
	assert.Equal(t, "shipping.sync.v1", cfg.RabbitMQ.ShippingQueue)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SHOPIFY_PAGE_SIZE", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, 50, cfg.Shopify.PageSize)
}

func TestValidate(t *testing.T) {
	t.Setenv("SHOPIFY_WEBHOOK_SECRET", "shpss_test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiresWebhookSecret(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Shopify.WebhookSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsOversizedPage(t *testing.T) {
	t.Setenv("SHOPIFY_WEBHOOK_SECRET", "shpss_test")
	t.Setenv("SHOPIFY_PAGE_SIZE", "500")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())
}
