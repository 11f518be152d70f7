package main

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/radarjus/newsradar/internal/aggregator"
	"github.com/radarjus/newsradar/internal/api"
	"github.com/radarjus/newsradar/internal/collector"
	"github.com/radarjus/newsradar/internal/config"
	"github.com/radarjus/newsradar/internal/enricher"
	"github.com/radarjus/newsradar/internal/portal"
	"github.com/radarjus/newsradar/internal/scheduler"
	"github.com/radarjus/newsradar/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment as-is")
	}
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

	// retention purge keeps the append-only cache table bounded
	s, err := scheduler.New(cfg.PurgeCronSpec, store, cfg.RetentionDays)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	// API
	r := gin.Default()
	r.Use(api.CORSMiddleware())

	apiServer := api.NewServer(agg)
	apiServer.RegisterRoutes(r)

	// serve the SPA frontend when a web root is configured
	if cfg.WebRoot != "" {
		assetsDir := filepath.Join(cfg.WebRoot, "assets")
		indexFile := filepath.Join(cfg.WebRoot, "index.html")
		r.Static("/assets", assetsDir)
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			c.File(indexFile)
		})
	}

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
