package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopsync/config"
	"shopsync/internal/api"
	"shopsync/internal/clickhouse"
	"shopsync/internal/dispatch"
	"shopsync/internal/postgres"
	"shopsync/internal/rabbitmq"
	"shopsync/internal/recon"
	"shopsync/internal/shopify"
	"shopsync/internal/store"
	"shopsync/internal/syncer"
	"shopsync/internal/workers"
)

func main() {
	log.Println("🚀 Starting ShopSync Service...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Printf("✓ Configuration loaded")
	log.Printf("  - HTTP: %s", cfg.HTTP.Addr)
	log.Printf("  - Postgres: %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.Database)
	log.Printf("  - RabbitMQ: %s", cfg.RabbitMQ.URL)

	// Connect to Postgres
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pgClient.Close()

	if err := pgClient.Migrate(); err != nil {
		log.Fatalf("Failed to migrate Postgres schema: %v", err)
	}
	log.Println("✓ Connected to Postgres")

	// Connect to ClickHouse (optional audit sink)
	var audit recon.AuditSink
	if cfg.ClickHouse.Enabled {
		chClient, err := clickhouse.NewClient(cfg.ClickHouse)
		if err != nil {
			log.Fatalf("Failed to connect to ClickHouse: %v", err)
		}
		defer chClient.Close()
		audit = chClient
		log.Println("✓ Connected to ClickHouse")
	} else {
		log.Println("ClickHouse audit sink disabled")
	}

	// Connect to RabbitMQ
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}
	defer publisher.Close()

	shippingConsumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to create shipping consumer: %v", err)
	}
	defer shippingConsumer.Close()
	log.Println("✓ Connected to RabbitMQ")

	// Wire components
	brands := store.NewBrands(pgClient.DB())
	orders := store.NewOrders(pgClient.DB())
	products := store.NewProducts(pgClient.DB())

	engine := recon.NewEngine(orders, products, audit)
	dispatcher := dispatch.NewDispatcher(publisher, cfg.RabbitMQ.ShippingQueue)
	platform := shopify.NewClient(cfg.Shopify.APIVersion, cfg.Shopify.PageSize)
	batch := syncer.NewSyncer(brands, platform, engine)
	handler := api.NewHandler(brands, engine, dispatcher, batch, cfg.Shopify.WebhookSecret)

	shippingWorker := workers.NewShippingWorker(shippingConsumer, brands, cfg.Shipping.SyncURL, cfg.RabbitMQ.ShippingQueue)

	// Start shipping worker
	go func() {
		if err := shippingWorker.Start(); err != nil {
			log.Printf("Shipping worker error: %v", err)
		}
	}()

	// Start HTTP server
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		log.Printf("✓ HTTP server listening on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}
	log.Println("✓ Stopped gracefully")
}
