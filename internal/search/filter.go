package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-vlist/internal/model"
)

// Filter returns the indices of the items matching expr, in collection order
func Filter(c *model.Collection, expr FilterExpr) []int {
	indices := make([]int, 0)
	for i, item := range c.Items {
		if expr.Matches(item) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Rank returns the indices of items that fuzzy-match term, best match first.
// Items with equal distance keep collection order.
func Rank(c *model.Collection, term string) []int {
	ranks := fuzzy.RankFindFold(term, c.Texts())
	sort.Stable(ranks)

	indices := make([]int, len(ranks))
	for i, r := range ranks {
		indices[i] = r.OriginalIndex
	}
	return indices
}

// Run parses query and applies it to c. An empty query returns nil, which
// selects the whole collection in a model.View.
func Run(c *model.Collection, query string, mode Mode) ([]int, error) {
	expr, err := ParseQuery(query, mode)
	if err != nil {
		return nil, err
	}
	if _, ok := expr.(AlwaysMatchExpr); ok {
		return nil, nil
	}
	return Filter(c, expr), nil
}
