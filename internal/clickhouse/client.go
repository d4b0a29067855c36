package clickhouse

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"shopsync/config"
)

type Client struct {
	conn     driver.Conn
	database string
}

func NewClient(cfg config.ClickHouseConfig) (*Client, error) {
	opts := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		DialTimeout:  time.Second * 30,
	}

	// Native protocol on 9000 stays plaintext; 8443 means HTTPS.
	if cfg.Port == 8443 {
		opts.TLS = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{
		conn:     conn,
		database: cfg.Database,
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// RecordReconEvent appends one reconciliation outcome to the audit log.
// Best effort: callers log failures and move on.
func (c *Client) RecordReconEvent(ctx context.Context, brandID int64, entity, externalID, outcome string, eventTime time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.Recon_Event (
			brand_id, entity, external_id, outcome, event_time
		) VALUES (?, ?, ?, ?, ?)
	`, c.database)

	return c.conn.Exec(ctx, query,
		brandID,
		entity,
		externalID,
		outcome,
		eventTime,
	)
}

func (c *Client) Conn() driver.Conn {
	return c.conn
}
