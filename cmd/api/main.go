package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"shei-hoise-api/internal/cart"
	"shei-hoise-api/internal/checkout"
	"shei-hoise-api/internal/config"
	"shei-hoise-api/internal/db"
	"shei-hoise-api/internal/events"
	"shei-hoise-api/internal/httpserver"
	"shei-hoise-api/internal/metrics"
	orderrepo "shei-hoise-api/internal/repository/order"
	productrepo "shei-hoise-api/internal/repository/product"
	storerepo "shei-hoise-api/internal/repository/store"
	ordersvc "shei-hoise-api/internal/service/order"
	productsvc "shei-hoise-api/internal/service/product"
	storesvc "shei-hoise-api/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if kafkaPub := events.NewKafkaPublisher(cfg.KafkaBrokers); kafkaPub != nil {
		publisher = kafkaPub
		defer kafkaPub.Close()
		logger.Printf("publishing order events to %s", cfg.KafkaBrokers)
	}

	storeRepo := storerepo.NewPostgres(dbpool)
	storeService := storesvc.New(storeRepo)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	productService := productsvc.New(productRepo)
	carts := cart.NewManager(cart.NewPostgresStorage(dbpool), logger)
	drafts := checkout.NewPostgresDrafts(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	orderService := ordersvc.New(storeService, orderRepo, carts, publisher, logger)

	m, registry := metrics.New()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		StoreSvc:   storeService,
		ProductSvc: productService,
		OrderSvc:   orderService,
		Carts:      carts,
		Drafts:     drafts,
		Metrics:    m,
		MetricsH:   metrics.Handler(registry),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
