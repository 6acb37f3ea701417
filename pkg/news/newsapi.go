package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string { return SourceNewsAPI }

func (c *NewsAPIClient) Configured() bool { return c.apiKey != "" }

func (c *NewsAPIClient) Fetch(ctx context.Context, country string, limit int) ([]Article, error) {
	if !c.Configured() {
		return nil, newFetchError(c.Name(), ErrAuth, errors.New("missing NEWS_API_KEY"))
	}

	url := fmt.Sprintf(
		"https://newsapi.org/v2/top-headlines?country=%s&language=en&pageSize=%d&apiKey=%s",
		country, limit, c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newFetchError(c.Name(), ErrNetwork, fmt.Errorf("newsapi request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(c.Name(), fmt.Errorf("newsapi fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(c.Name(), resp.StatusCode)
	}

	var raw newsapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, newFetchError(c.Name(), ErrParse, fmt.Errorf("newsapi decode: %w", err))
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
			SourceName:  fmt.Sprintf("NewsAPI - %s", item.Source.Name),
			APISource:   c.Name(),
			Country:     country,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type newsapiResponse struct {
	Status   string           `json:"status"`
	Articles []newsapiArticle `json:"articles"`
}

type newsapiArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	PublishedAt string        `json:"publishedAt"`
	Source      newsapiSource `json:"source"`
}

type newsapiSource struct {
	Name string `json:"name"`
}
