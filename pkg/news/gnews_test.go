package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestGNewsFetch(t *testing.T) {
	payload := map[string]interface{}{
		"articles": []map[string]interface{}{
			{
				"title":       "Monsoon Arrives Early",
				"description": "The monsoon reached the coast a week ahead of schedule.",
				"url":         "https://example.com/monsoon",
				"publishedAt": "2026-08-27T06:00:00Z",
				"source":      map[string]interface{}{"name": "Deccan Herald"},
			},
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := &GNewsClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	articles, err := client.Fetch(context.Background(), "in", 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))

	a := articles[0]
	assert.Equal(t, "Monsoon Arrives Early", a.Title)
	assert.Equal(t, "GNews - Deccan Herald", a.SourceName)
	assert.Equal(t, SourceGNews, a.APISource)
	assert.Equal(t, "in", a.Country)
	assert.NotEqual(t, time.Time{}, a.PublishedAt)
}

func TestGNewsFetchAuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := &GNewsClient{
		apiKey:     "bad-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Fetch(context.Background(), "in", 10)

	var fe *FetchError
	assert.Equal(t, true, errors.As(err, &fe))
	assert.Equal(t, ErrAuth, fe.Kind)
	assert.Equal(t, SourceGNews, fe.Source)
}

func TestGNewsFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := &GNewsClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	_, err := client.Fetch(context.Background(), "in", 10)

	var fe *FetchError
	assert.Equal(t, true, errors.As(err, &fe))
	assert.Equal(t, ErrParse, fe.Kind)
}
