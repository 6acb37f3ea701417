package aggregate

import (
	"sort"
	"time"

	"biasnews/pkg/news"
)

// tierScale must dominate the largest possible recency term so that the
// country tier is always the primary sort key: Unix()/recencyDivisor
// stays below 4e7 for any realistic timestamp, three orders of
// magnitude under one tier step.
const (
	tierScale      = 1e9
	recencyDivisor = 60
)

// tierTable maps country codes to priority tiers for one ranking pass.
// The primary country gets tier 0, the other configured countries get
// successive tiers in their registration order, and anything else
// (including a missing country) gets the lowest priority tier.
type tierTable struct {
	tiers   map[string]int
	unknown int
}

func newTierTable(primary string, others []string) tierTable {
	tiers := map[string]int{primary: 0}
	next := 1
	for _, c := range others {
		if _, ok := tiers[c]; ok {
			continue
		}
		tiers[c] = next
		next++
	}
	return tierTable{tiers: tiers, unknown: next}
}

func (t tierTable) tier(country string) int {
	if tier, ok := t.tiers[country]; ok {
		return tier
	}
	return t.unknown
}

// Rank returns a new slice of scored articles sorted descending by
// priority: ascending country tier, then descending recency, then
// original fetch order. The input is not mutated. Articles without a
// publication time rank as if published now.
func Rank(articles []news.Article, primary string, others []string) []news.Article {
	tiers := newTierTable(primary, others)
	now := time.Now()

	ranked := make([]news.Article, len(articles))
	copy(ranked, articles)

	for i := range ranked {
		publishedAt := ranked[i].PublishedAt
		if publishedAt.IsZero() {
			publishedAt = now
		}
		tier := tiers.tier(ranked[i].Country)
		ranked[i].PriorityScore = -float64(tier)*tierScale + float64(publishedAt.Unix())/recencyDivisor
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	for i := range ranked {
		if ranked[i].Country == primary {
			ranked[i].Section = news.SectionPrimary
		} else {
			ranked[i].Section = news.SectionOther
		}
	}

	return ranked
}
