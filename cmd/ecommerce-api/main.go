package main

import (
	"context"
	"os"

	"github.com/MikeMC777/ecommerce-platform/internal/config"
	"github.com/MikeMC777/ecommerce-platform/internal/logging"
	"github.com/MikeMC777/ecommerce-platform/internal/order"
	"github.com/MikeMC777/ecommerce-platform/internal/postgres"
	"github.com/MikeMC777/ecommerce-platform/internal/product"
)

func main() {
	cfg := config.Load()
	log := logging.New(logging.Options{
		Service: "ecommerce-api",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Error("schema bootstrap failed", "err", err)
		os.Exit(1)
	}

	productRepo := product.NewPGRepo(pool)
	products := product.NewService(productRepo)
	orders := order.NewService(productRepo, order.NewPGRepo(pool))

	r := newRouter(cfg, log, products, orders)
	log.Info("ecommerce-api listening", "addr", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
