package aggregate

import (
	"strings"

	"biasnews/pkg/news"
)

// Merge concatenates the articles of every successful result in
// registration order and drops duplicate titles, keeping the first
// occurrence. Titles are compared case-folded and trimmed; the original
// casing is preserved in the output. Articles without a title or URL
// are dropped.
func Merge(results []SourceResult) []news.Article {
	seen := make(map[string]struct{})
	merged := make([]news.Article, 0)

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		for _, a := range res.Articles {
			if a.URL == "" {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(a.Title))
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, a)
		}
	}

	return merged
}
