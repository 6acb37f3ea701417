package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Feed is one RSS/Atom feed belonging to a country's outlet set.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds holds the built-in per-country feed lists.
var DefaultFeeds = map[string][]Feed{
	"in": {
		{Name: "NDTV", URL: "https://feeds.feedburner.com/ndtvnews-top-stories"},
		{Name: "The Hindu", URL: "https://www.thehindu.com/news/national/feeder/default.rss"},
		{Name: "Times of India", URL: "https://timesofindia.indiatimes.com/rss.cms"},
		{Name: "Hindustan Times", URL: "https://www.hindustantimes.com/feeds/rss/top-news/rssfeed.xml"},
	},
	"gb": {
		{Name: "BBC", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
		{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss"},
	},
	"us": {
		{Name: "NPR", URL: "https://www.npr.org/rss/rss.php?id=1004"},
		{Name: "New York Times", URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml"},
	},
}

const itemsPerFeed = 10

type RSSClient struct {
	feeds  map[string][]Feed
	parser *gofeed.Parser
}

func NewRSSClient(feeds map[string][]Feed) *RSSClient {
	if feeds == nil {
		feeds = DefaultFeeds
	}
	// The parser's HTTP client must be set before Fetch runs: the
	// coordinator calls one client concurrently per country, and
	// gofeed initializes a missing client lazily on first use.
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	return &RSSClient{feeds: feeds, parser: parser}
}

func (c *RSSClient) Name() string { return SourceRSS }

// Configured is always true: RSS feeds need no credentials.
func (c *RSSClient) Configured() bool { return true }

// Fetch walks every feed registered for the country, taking the top
// items of each. A single broken feed is skipped; the call only fails
// when every feed for the country failed.
func (c *RSSClient) Fetch(ctx context.Context, country string, limit int) ([]Article, error) {
	feeds := c.feeds[country]
	if len(feeds) == 0 {
		return nil, nil
	}

	var (
		articles []Article
		failed   int
		lastErr  error
	)

	for _, feed := range feeds {
		parsed, err := c.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			slog.Warn("rss feed failed", "feed", feed.Name, "error", err)
			failed++
			lastErr = err
			continue
		}

		items := parsed.Items
		if len(items) > itemsPerFeed {
			items = items[:itemsPerFeed]
		}

		for _, item := range items {
			a := Article{
				Title:       item.Title,
				Description: truncate(stripHTML(item.Description), 300),
				URL:         item.Link,
				SourceName:  fmt.Sprintf("RSS - %s", feed.Name),
				APISource:   c.Name(),
				Country:     country,
			}
			if item.PublishedParsed != nil {
				a.PublishedAt = *item.PublishedParsed
			} else if item.UpdatedParsed != nil {
				a.PublishedAt = *item.UpdatedParsed
			}
			articles = append(articles, a)
		}

		if len(articles) >= limit {
			articles = articles[:limit]
			break
		}
	}

	if failed == len(feeds) {
		return nil, classifyTransport(c.Name(), fmt.Errorf("all %d feeds failed: %w", failed, lastErr))
	}

	return articles, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
