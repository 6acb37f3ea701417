package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type GNewsClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewGNewsClient(apiKey string) *GNewsClient {
	return &GNewsClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *GNewsClient) Name() string { return SourceGNews }

func (c *GNewsClient) Configured() bool { return c.apiKey != "" }

func (c *GNewsClient) Fetch(ctx context.Context, country string, limit int) ([]Article, error) {
	if !c.Configured() {
		return nil, newFetchError(c.Name(), ErrAuth, errors.New("missing GNEWS_API_KEY"))
	}

	url := fmt.Sprintf(
		"https://gnews.io/api/v4/top-headlines?country=%s&lang=en&max=%d&apikey=%s",
		country, limit, c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newFetchError(c.Name(), ErrNetwork, fmt.Errorf("gnews request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(c.Name(), fmt.Errorf("gnews fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(c.Name(), resp.StatusCode)
	}

	var raw gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, newFetchError(c.Name(), ErrParse, fmt.Errorf("gnews decode: %w", err))
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			SourceName:  fmt.Sprintf("GNews - %s", item.Source.Name),
			APISource:   c.Name(),
			Country:     country,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	PublishedAt string      `json:"publishedAt"`
	Source      gnewsSource `json:"source"`
}

type gnewsSource struct {
	Name string `json:"name"`
}
