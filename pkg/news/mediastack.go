package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type MediastackClient struct {
	accessKey  string
	httpClient *http.Client
}

func NewMediastackClient(accessKey string) *MediastackClient {
	return &MediastackClient{
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *MediastackClient) Name() string { return SourceMediastack }

func (c *MediastackClient) Configured() bool { return c.accessKey != "" }

func (c *MediastackClient) Fetch(ctx context.Context, country string, limit int) ([]Article, error) {
	if !c.Configured() {
		return nil, newFetchError(c.Name(), ErrAuth, errors.New("missing MEDIASTACK_API_KEY"))
	}

	// Mediastack's free tier only serves plain HTTP.
	url := fmt.Sprintf(
		"http://api.mediastack.com/v1/news?access_key=%s&countries=%s&languages=en&limit=%d",
		c.accessKey, country, limit,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newFetchError(c.Name(), ErrNetwork, fmt.Errorf("mediastack request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(c.Name(), fmt.Errorf("mediastack fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(c.Name(), resp.StatusCode)
	}

	var raw mediastackResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, newFetchError(c.Name(), ErrParse, fmt.Errorf("mediastack decode: %w", err))
	}

	articles := make([]Article, 0, len(raw.Data))
	for _, item := range raw.Data {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			SourceName:  fmt.Sprintf("Mediastack - %s", item.Source),
			APISource:   c.Name(),
			Country:     country,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type mediastackResponse struct {
	Data []mediastackArticle `json:"data"`
}

type mediastackArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
}
