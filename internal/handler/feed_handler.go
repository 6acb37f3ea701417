package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"biasnews/internal/aggregate"

	"github.com/gin-gonic/gin"
)

// FeedProvider is what the handlers need from the aggregation pipeline.
type FeedProvider interface {
	PrioritizedFeed(ctx context.Context, primary string, others []string, limit int, useCache bool) (*aggregate.Feed, error)
	CountryHeadlines(ctx context.Context, country string, limit int, useCache bool) (*aggregate.Feed, error)
	SourceStatus() []aggregate.SourceStatus
	ClearCache(ctx context.Context, prefix string) (int, error)
}

type FeedHandler struct {
	provider       FeedProvider
	primaryCountry string
	otherCountries []string
}

func NewFeedHandler(provider FeedProvider, primaryCountry string, otherCountries []string) *FeedHandler {
	return &FeedHandler{
		provider:       provider,
		primaryCountry: primaryCountry,
		otherCountries: otherCountries,
	}
}

func (h *FeedHandler) Register(r *gin.Engine) {
	r.GET("/news/prioritized-feed", h.GetPrioritizedFeed)
	r.GET("/news/headlines", h.GetHeadlines)
	r.GET("/news/country/:code", h.GetCountryNews)
	r.GET("/news/api-status", h.GetAPIStatus)
	r.DELETE("/news/cache", h.ClearCache)
	r.GET("/health", h.GetHealth)
}

func (h *FeedHandler) GetPrioritizedFeed(c *gin.Context) {
	limit := getQueryLimit(c)
	useCache := getQueryBool(c, "use_cache", true)

	others := h.otherCountries
	if raw := c.Query("countries"); raw != "" {
		parsed, bad, ok := parseCountries(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported country: " + bad})
			return
		}
		others = parsed
	}

	feed, err := h.provider.PrioritizedFeed(c.Request.Context(), h.primaryCountry, others, limit, useCache)
	if err != nil {
		slog.Error("error building prioritized feed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation error"})
		return
	}

	c.JSON(http.StatusOK, FeedResponse{
		Status:        "success",
		TotalArticles: len(feed.Articles),
		Articles:      feed.Articles,
		Sections:      feed.Sections,
	})
}

func (h *FeedHandler) GetHeadlines(c *gin.Context) {
	limit := getQueryLimit(c)
	useCache := getQueryBool(c, "use_cache", true)

	feed, err := h.provider.CountryHeadlines(c.Request.Context(), h.primaryCountry, limit, useCache)
	if err != nil {
		slog.Error("error fetching headlines", "country", h.primaryCountry, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation error"})
		return
	}

	c.JSON(http.StatusOK, CountryFeedResponse{
		Status:        "success",
		Country:       h.primaryCountry,
		TotalArticles: len(feed.Articles),
		Articles:      feed.Articles,
	})
}

func (h *FeedHandler) GetCountryNews(c *gin.Context) {
	country, ok := aggregate.NormalizeCountry(c.Param("code"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported country: " + c.Param("code")})
		return
	}

	limit := getQueryLimit(c)
	useCache := getQueryBool(c, "use_cache", true)

	feed, err := h.provider.CountryHeadlines(c.Request.Context(), country, limit, useCache)
	if err != nil {
		slog.Error("error fetching country news", "country", country, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Aggregation error"})
		return
	}

	c.JSON(http.StatusOK, CountryFeedResponse{
		Status:        "success",
		Country:       country,
		TotalArticles: len(feed.Articles),
		Articles:      feed.Articles,
	})
}

func (h *FeedHandler) GetAPIStatus(c *gin.Context) {
	statuses := h.provider.SourceStatus()

	configured := 0
	for _, s := range statuses {
		if s.Configured {
			configured++
		}
	}

	c.JSON(http.StatusOK, APIStatusResponse{
		Status:              "success",
		APIStatus:           statuses,
		TotalConfiguredAPIs: configured,
	})
}

func (h *FeedHandler) ClearCache(c *gin.Context) {
	prefix := c.Query("prefix")

	removed, err := h.provider.ClearCache(c.Request.Context(), prefix)
	if err != nil {
		slog.Error("error clearing cache", "prefix", prefix, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cache error"})
		return
	}

	c.JSON(http.StatusOK, CacheClearResponse{Status: "success", Removed: removed})
}

func (h *FeedHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"sources": len(h.provider.SourceStatus()),
	})
}

// parseCountries resolves a comma-separated country list. Empty
// segments are skipped; any unresolvable segment fails the whole list.
func parseCountries(raw string) (codes []string, bad string, ok bool) {
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		code, known := aggregate.NormalizeCountry(trimmed)
		if !known {
			return nil, trimmed, false
		}
		codes = append(codes, code)
	}
	return codes, "", true
}

func getQueryInt(c *gin.Context, name string, defaultValue int) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 50
		maxLimit     = 100
	)

	limit := getQueryInt(c, "limit", defaultLimit)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}
	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}
	return limit
}

func getQueryBool(c *gin.Context, name string, defaultValue bool) bool {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}
