// Package aggregate implements the news aggregation pipeline: parallel
// multi-source fetch with failure isolation, cross-source title
// deduplication, country-tier ranking, and a cache in front of it all.
package aggregate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"biasnews/internal/cache"
	"biasnews/pkg/news"
)

const (
	feedPrefix    = "feed"
	countryPrefix = "country"
)

// Options tune the pipeline. Zero values fall back to defaults.
type Options struct {
	CacheTTL       time.Duration
	PerCallTimeout time.Duration
	PerSourceLimit int
}

func (o Options) withDefaults() Options {
	if o.CacheTTL == 0 {
		o.CacheTTL = 10 * time.Minute
	}
	if o.PerCallTimeout == 0 {
		o.PerCallTimeout = 15 * time.Second
	}
	if o.PerSourceLimit == 0 {
		o.PerSourceLimit = 50
	}
	return o
}

// SectionCounts partitions the final feed relative to the primary country.
type SectionCounts struct {
	Primary int `json:"primary"`
	Other   int `json:"other"`
}

// Feed is the ranked, deduplicated output of one aggregation call.
type Feed struct {
	Articles []news.Article `json:"articles"`
	Sections SectionCounts  `json:"sections"`
}

// SourceStatus reports whether one adapter has its credentials configured.
type SourceStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}

// Aggregator composes cache, fetch coordinator, deduplicator and ranker.
// The cache store is the only mutable state it touches.
type Aggregator struct {
	sources []news.Source
	store   cache.Store
	opts    Options
}

func New(sources []news.Source, store cache.Store, opts Options) (*Aggregator, error) {
	if len(sources) == 0 {
		return nil, errors.New("aggregate: no sources configured")
	}
	if store == nil {
		return nil, errors.New("aggregate: nil cache store")
	}
	return &Aggregator{sources: sources, store: store, opts: opts.withDefaults()}, nil
}

// PrioritizedFeed aggregates across every configured source for the
// primary country and each of the others, returning at most limit
// articles ranked primary-first. Partial source failures degrade
// coverage only; an empty feed is a valid outcome.
//
// With useCache the whole computation sits behind a TTL cache entry
// keyed on (primary, others, limit). useCache=false bypasses the cache
// entirely and does not refresh the stored entry, matching the
// semantics of a forced live read.
func (a *Aggregator) PrioritizedFeed(ctx context.Context, primary string, others []string, limit int, useCache bool) (*Feed, error) {
	if limit < 1 {
		return nil, fmt.Errorf("aggregate: invalid limit %d", limit)
	}

	compute := func(ctx context.Context) ([]byte, error) {
		return json.Marshal(a.buildFeed(ctx, primary, others, limit))
	}

	if !useCache {
		payload, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return decodeFeed(payload)
	}

	key := cache.Key(feedPrefix, "prioritized", map[string]string{
		"primary": primary,
		"others":  strings.Join(others, ","),
		"limit":   strconv.Itoa(limit),
	})

	payload, err := a.store.GetOrCompute(ctx, key, a.opts.CacheTTL, compute)
	if err != nil {
		return nil, err
	}
	return decodeFeed(payload)
}

// CountryHeadlines is the single-country entry point: same pipeline,
// one country, cached under its own prefix.
func (a *Aggregator) CountryHeadlines(ctx context.Context, country string, limit int, useCache bool) (*Feed, error) {
	if limit < 1 {
		return nil, fmt.Errorf("aggregate: invalid limit %d", limit)
	}

	compute := func(ctx context.Context) ([]byte, error) {
		return json.Marshal(a.buildFeed(ctx, country, nil, limit))
	}

	if !useCache {
		payload, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		return decodeFeed(payload)
	}

	key := cache.Key(countryPrefix, "headlines", map[string]string{
		"country": country,
		"limit":   strconv.Itoa(limit),
	})

	payload, err := a.store.GetOrCompute(ctx, key, a.opts.CacheTTL, compute)
	if err != nil {
		return nil, err
	}
	return decodeFeed(payload)
}

func (a *Aggregator) buildFeed(ctx context.Context, primary string, others []string, limit int) *Feed {
	countries := append([]string{primary}, others...)

	results := FetchAll(ctx, a.sources, countries, a.opts.PerSourceLimit, a.opts.PerCallTimeout)
	for _, res := range results {
		if res.Err != nil {
			slog.Error("source failed", "source", res.Source, "country", res.Country, "kind", string(res.Err.Kind), "error", res.Err)
			continue
		}
		slog.Info("source fetched", "source", res.Source, "country", res.Country, "articles", len(res.Articles))
	}

	ranked := Rank(Merge(results), primary, others)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	feed := &Feed{Articles: ranked}
	for _, article := range ranked {
		if article.Section == news.SectionPrimary {
			feed.Sections.Primary++
		} else {
			feed.Sections.Other++
		}
	}
	return feed
}

func decodeFeed(payload []byte) (*Feed, error) {
	var feed Feed
	if err := json.Unmarshal(payload, &feed); err != nil {
		return nil, fmt.Errorf("aggregate: decode cached feed: %w", err)
	}
	if feed.Articles == nil {
		feed.Articles = make([]news.Article, 0)
	}
	return &feed, nil
}

// SourceStatus reports per-adapter credential state for the API-status
// diagnostic surface.
func (a *Aggregator) SourceStatus() []SourceStatus {
	statuses := make([]SourceStatus, 0, len(a.sources))
	for _, src := range a.sources {
		statuses = append(statuses, SourceStatus{Name: src.Name(), Configured: src.Configured()})
	}
	return statuses
}

// ClearCache removes every cached entry under prefix, or everything
// when prefix is empty. Exposed to operational tooling.
func (a *Aggregator) ClearCache(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		if err := a.store.InvalidateAll(ctx); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return a.store.InvalidatePrefix(ctx, prefix)
}
