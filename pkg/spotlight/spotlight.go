// Package spotlight implements the quick search box: data sources contribute
// items matching a query and the spotlight merges them.
package spotlight

import (
	"context"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DataSource answers a spotlight query with ranked items.
type DataSource interface {
	Find(ctx context.Context, q string) []Item
}

type Spotlight interface {
	Register(ds ...DataSource)
	Find(ctx context.Context, q string) []Item
}

func New() Spotlight {
	return &spotlight{}
}

type spotlight struct {
	sources []DataSource
}

func (s *spotlight) Register(ds ...DataSource) {
	s.sources = append(s.sources, ds...)
}

func (s *spotlight) Find(ctx context.Context, q string) []Item {
	var items []Item
	for _, ds := range s.sources {
		items = append(items, ds.Find(ctx, q)...)
	}
	return items
}

// Rank returns the indexes of words fuzzily matching q, best match first.
// Matching ignores case and diacritics.
func Rank(q string, words []string) []int {
	ranks := fuzzy.RankFindNormalizedFold(q, words)
	sort.Stable(ranks)
	out := make([]int, len(ranks))
	for i, r := range ranks {
		out[i] = r.OriginalIndex
	}
	return out
}
