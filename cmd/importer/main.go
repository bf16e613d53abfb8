package main

import (
	"context"
	"flag"
	"log"
	"os"

	"shopping-cart-service/internal/config"
	"shopping-cart-service/internal/db"
	"shopping-cart-service/internal/importer"
	cartitemrepo "shopping-cart-service/internal/repository/cartitem"
)

func main() {
	file := flag.String("file", "", "path to a legacy cart CSV export")
	flag.Parse()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if *file == "" {
		logger.Fatal("usage: importer -file <export.csv>")
	}

	cfg := config.FromEnv()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		logger.Fatalf("open export: %v", err)
	}
	defer f.Close()

	store := cartitemrepo.NewPostgres(pool, logger)
	imp := importer.NewCSVImporter(f, store)

	imported, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}

	logger.Printf("imported %d cart items", imported)
}
