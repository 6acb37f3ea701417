package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Capability describes how a provider can be queried. A provider whose
// country filter is missing or unreliable carries per-country keyword
// fallbacks that are searched instead.
type Capability struct {
	SupportsCountryFilter bool
	KeywordFallback       map[string][]string
}

// Currents has no usable country filter, so each country maps to a few
// free-text proxies for its coverage.
var currentsCapability = Capability{
	SupportsCountryFilter: false,
	KeywordFallback: map[string][]string{
		"in": {"India", "Indian", "Delhi", "Mumbai", "Bangalore", "Chennai", "Kolkata"},
		"us": {"USA", "United States", "America", "Washington", "New York"},
		"gb": {"UK", "United Kingdom", "Britain", "London"},
		"au": {"Australia", "Australian", "Sydney", "Melbourne"},
		"ca": {"Canada", "Canadian", "Toronto", "Vancouver"},
		"de": {"Germany", "German", "Berlin", "Munich"},
		"fr": {"France", "French", "Paris"},
		"jp": {"Japan", "Japanese", "Tokyo"},
		"ae": {"UAE", "Dubai", "Abu Dhabi", "Emirates"},
		"sg": {"Singapore", "Singaporean"},
	},
}

const currentsTimeLayout = "2006-01-02 15:04:05 -0700"

type CurrentsClient struct {
	apiKey     string
	capability Capability
	httpClient *http.Client
}

func NewCurrentsClient(apiKey string) *CurrentsClient {
	return &CurrentsClient{
		apiKey:     apiKey,
		capability: currentsCapability,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *CurrentsClient) Name() string { return SourceCurrents }

func (c *CurrentsClient) Configured() bool { return c.apiKey != "" }

// Fetch queries the search endpoint once per fallback keyword (at most
// three) because the provider cannot filter by country directly.
func (c *CurrentsClient) Fetch(ctx context.Context, country string, limit int) ([]Article, error) {
	if !c.Configured() {
		return nil, newFetchError(c.Name(), ErrAuth, errors.New("missing CURRENTS_API_KEY"))
	}

	keywords := c.capability.KeywordFallback[country]
	if len(keywords) == 0 {
		keywords = []string{strings.ToUpper(country)}
	}
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}

	var articles []Article
	for _, keyword := range keywords {
		batch, err := c.search(ctx, country, keyword)
		if err != nil {
			return nil, err
		}
		articles = append(articles, batch...)
		if len(articles) >= limit {
			articles = articles[:limit]
			break
		}
	}

	return articles, nil
}

func (c *CurrentsClient) search(ctx context.Context, country, keyword string) ([]Article, error) {
	endpoint := fmt.Sprintf(
		"https://api.currentsapi.services/v1/search?apiKey=%s&language=en&page_size=20&keywords=%s",
		c.apiKey, url.QueryEscape(keyword),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newFetchError(c.Name(), ErrNetwork, fmt.Errorf("currents request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(c.Name(), fmt.Errorf("currents fetch: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(c.Name(), resp.StatusCode)
	}

	var raw currentsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, newFetchError(c.Name(), ErrParse, fmt.Errorf("currents decode: %w", err))
	}

	articles := make([]Article, 0, len(raw.News))
	for _, item := range raw.News {
		publishedAt, err := time.Parse(currentsTimeLayout, item.Published)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			SourceName:  fmt.Sprintf("Currents - %s", item.Domain),
			APISource:   c.Name(),
			Country:     country,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

type currentsResponse struct {
	News []currentsArticle `json:"news"`
}

type currentsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Published   string `json:"published"`
	Domain      string `json:"domain"`
}
