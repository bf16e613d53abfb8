package main

import (
	"context"
	"flag"
	"log"
	"os"

	"shopping-cart-service/internal/catalog"
	"shopping-cart-service/internal/config"
	"shopping-cart-service/internal/db"
	cartitemrepo "shopping-cart-service/internal/repository/cartitem"
	"shopping-cart-service/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Iterations, "iterations", opts.Iterations, "number of random cart items to attempt")
	flag.Parse()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	store := cartitemrepo.NewPostgres(pool, logger)
	cat := catalog.New(cfg.CatalogBaseURL, cfg.CatalogTimeout, logger)

	created, err := seed.Apply(ctx, store, cat, logger, opts)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied: %d cart items created", created)
}
