package news

import (
	"context"
	"time"
)

// Provenance values recorded on Article.APISource.
const (
	SourceNewsAPI    = "newsapi"
	SourceGNews      = "gnews"
	SourceMediastack = "mediastack"
	SourceCurrents   = "currents"
	SourceRSS        = "rss"
)

// Section values assigned after ranking.
const (
	SectionPrimary = "primary"
	SectionOther   = "other"
)

// Article is the canonical normalized news item every adapter produces.
// PriorityScore and Section are computed by the ranking stage, never by
// an adapter.
type Article struct {
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	URL           string    `json:"url"`
	SourceName    string    `json:"source_name"`
	APISource     string    `json:"api_source"`
	Country       string    `json:"country,omitempty"`
	PublishedAt   time.Time `json:"published_at"`
	PriorityScore float64   `json:"priority_score"`
	Section       string    `json:"section,omitempty"`
}

// Source is one external news provider. Fetch returns the provider's
// headlines for a country normalized into Articles; every error it
// returns is a *FetchError. Configured reports whether the credentials
// the provider needs are present.
type Source interface {
	Fetch(ctx context.Context, country string, limit int) ([]Article, error)
	Name() string
	Configured() bool
}
