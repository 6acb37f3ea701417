package handler

import (
	"biasnews/internal/aggregate"
	"biasnews/pkg/news"
)

type FeedResponse struct {
	Status        string                  `json:"status"`
	TotalArticles int                     `json:"total_articles"`
	Articles      []news.Article          `json:"articles"`
	Sections      aggregate.SectionCounts `json:"sections"`
}

type CountryFeedResponse struct {
	Status        string         `json:"status"`
	Country       string         `json:"country"`
	TotalArticles int            `json:"total_articles"`
	Articles      []news.Article `json:"articles"`
}

type APIStatusResponse struct {
	Status              string                   `json:"status"`
	APIStatus           []aggregate.SourceStatus `json:"api_status"`
	TotalConfiguredAPIs int                      `json:"total_configured_apis"`
}

type CacheClearResponse struct {
	Status  string `json:"status"`
	Removed int    `json:"removed"`
}
