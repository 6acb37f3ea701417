// Command fetcher runs one aggregation cycle against the live sources
// and logs what each contributed. Useful for cron runs and diagnosing
// provider trouble without the API in front.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"biasnews/internal/aggregate"
	"biasnews/internal/cache"
	"biasnews/internal/config"
	"biasnews/pkg/news"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	sources := []news.Source{
		news.NewNewsAPIClient(cfg.NewsAPIKey),
		news.NewGNewsClient(cfg.GNewsAPIKey),
		news.NewMediastackClient(cfg.MediastackKey),
		news.NewCurrentsClient(cfg.CurrentsKey),
	}
	if cfg.RSSEnabled {
		sources = append(sources, news.NewRSSClient(nil))
	}

	agg, err := aggregate.New(sources, cache.NewMemoryStore(), aggregate.Options{
		CacheTTL:       cfg.CacheTTL,
		PerCallTimeout: cfg.PerCallTimeout,
		PerSourceLimit: cfg.PerSourceLimit,
	})
	if err != nil {
		log.Fatalf("error building aggregator: %v", err)
	}

	for _, status := range agg.SourceStatus() {
		slog.Info("source", "name", status.Name, "configured", status.Configured)
	}

	feed, err := agg.PrioritizedFeed(context.Background(), cfg.PrimaryCountry, cfg.OtherCountries, cfg.PerSourceLimit, false)
	if err != nil {
		log.Fatalf("error aggregating: %v", err)
	}

	slog.Info("aggregation complete",
		"total", len(feed.Articles),
		"primary", feed.Sections.Primary,
		"other", feed.Sections.Other,
	)

	top := feed.Articles
	if len(top) > 10 {
		top = top[:10]
	}
	for i, a := range top {
		slog.Info("headline", "rank", i+1, "title", a.Title, "source", a.SourceName, "country", a.Country)
	}
}
