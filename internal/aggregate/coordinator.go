package aggregate

import (
	"context"
	"sync"
	"time"

	"biasnews/pkg/news"
)

// SourceResult is the outcome of one (source, country) fetch unit:
// either articles or a typed failure, never both.
type SourceResult struct {
	Source   string
	Country  string
	Articles []news.Article
	Err      *news.FetchError
}

// FetchAll fans out one goroutine per (country, source) pair, each
// bounded by its own perCallTimeout. It waits for every unit to finish
// or time out and never aborts the batch because one unit failed: a
// failed unit is returned as a SourceResult carrying its FetchError.
//
// Results come back in registration order (countries outer, sources
// inner) regardless of completion order, so downstream merging is
// deterministic. Cancelling ctx cancels all in-flight calls.
func FetchAll(ctx context.Context, sources []news.Source, countries []string, limit int, perCallTimeout time.Duration) []SourceResult {
	results := make([]SourceResult, len(countries)*len(sources))

	var wg sync.WaitGroup
	for ci, country := range countries {
		for si, src := range sources {
			wg.Add(1)
			go func(idx int, country string, src news.Source) {
				defer wg.Done()

				callCtx, cancel := context.WithTimeout(ctx, perCallTimeout)
				defer cancel()

				articles, err := src.Fetch(callCtx, country, limit)
				if err != nil {
					results[idx] = SourceResult{
						Source:  src.Name(),
						Country: country,
						Err:     news.AsFetchError(src.Name(), err),
					}
					return
				}

				results[idx] = SourceResult{
					Source:   src.Name(),
					Country:  country,
					Articles: articles,
				}
			}(ci*len(sources)+si, country, src)
		}
	}
	wg.Wait()

	return results
}
