package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"biasnews/internal/aggregate"
	"biasnews/internal/cache"
	"biasnews/internal/config"
	"biasnews/internal/handler"
	"biasnews/pkg/news"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("error connecting cache backend: %v", err)
	}

	sources := buildSources(cfg)

	agg, err := aggregate.New(sources, store, aggregate.Options{
		CacheTTL:       cfg.CacheTTL,
		PerCallTimeout: cfg.PerCallTimeout,
		PerSourceLimit: cfg.PerSourceLimit,
	})
	if err != nil {
		log.Fatalf("error building aggregator: %v", err)
	}

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	h := handler.NewFeedHandler(agg, cfg.PrimaryCountry, cfg.OtherCountries)
	h.Register(r)

	slog.Info("starting api", "port", cfg.Port, "cache_backend", cfg.CacheBackend, "sources", len(sources))

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

func newStore(cfg *config.Config) (cache.Store, error) {
	if cfg.CacheBackend == config.BackendRedis {
		return cache.NewRedisStore(context.Background(), cfg.RedisURL)
	}
	return cache.NewMemoryStore(), nil
}

func buildSources(cfg *config.Config) []news.Source {
	sources := []news.Source{
		news.NewNewsAPIClient(cfg.NewsAPIKey),
		news.NewGNewsClient(cfg.GNewsAPIKey),
		news.NewMediastackClient(cfg.MediastackKey),
		news.NewCurrentsClient(cfg.CurrentsKey),
	}
	if cfg.RSSEnabled {
		sources = append(sources, news.NewRSSClient(nil))
	}
	return sources
}
