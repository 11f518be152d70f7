package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/radarjus/newsradar/internal/aggregator"
	"github.com/radarjus/newsradar/internal/collector"
	"github.com/radarjus/newsradar/internal/config"
	"github.com/radarjus/newsradar/internal/enricher"
	"github.com/radarjus/newsradar/internal/portal"
	"github.com/radarjus/newsradar/internal/storage"
)

// One-shot fetch-and-persist entry point: runs a full aggregation cycle
// regardless of cache freshness. Useful for warming the cache after a deploy
// or debugging a portal.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	client := collector.NewClient()
	agg := aggregator.New(
		portal.Defaults(),
		collector.NewRSSFetcher(client),
		collector.NewListingFetcher(),
		enricher.New(client),
		store,
		cfg.FreshnessWindow,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	items, err := agg.FetchAll(ctx)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	if err := store.WriteBatch(ctx, items, cfg.FreshnessWindow); err != nil {
		log.Fatalf("persist batch failed: %v", err)
	}
	log.Printf("collected and cached %d items", len(items))
}
