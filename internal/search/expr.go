// Package search filters a collection down to the items matching a query
package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pstuifzand/tui-vlist/internal/model"
)

// FilterExpr represents a filter expression that can match items
type FilterExpr interface {
	Matches(item *model.Item) bool
	String() string // For debug output
}

// TextExpr matches items whose text contains the search term (case-insensitive)
type TextExpr struct {
	term string
}

func NewTextExpr(term string) *TextExpr {
	return &TextExpr{term: strings.ToLower(term)}
}

func (e *TextExpr) Matches(item *model.Item) bool {
	return strings.Contains(strings.ToLower(item.Text), e.term)
}

func (e *TextExpr) String() string {
	return fmt.Sprintf("text(%q)", e.term)
}

// FuzzyExpr matches items whose text contains the term's characters in order
type FuzzyExpr struct {
	term string
}

func NewFuzzyExpr(term string) *FuzzyExpr {
	return &FuzzyExpr{term: term}
}

func (e *FuzzyExpr) Matches(item *model.Item) bool {
	return fuzzy.MatchFold(e.term, item.Text)
}

func (e *FuzzyExpr) String() string {
	return fmt.Sprintf("fuzzy(%q)", e.term)
}

// RegexExpr matches items whose text matches a regular expression pattern
type RegexExpr struct {
	pattern string
	re      *regexp.Regexp
}

func NewRegexExpr(pattern string) (*RegexExpr, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexExpr{pattern: pattern, re: re}, nil
}

func (e *RegexExpr) Matches(item *model.Item) bool {
	return e.re.MatchString(item.Text)
}

func (e *RegexExpr) String() string {
	return fmt.Sprintf("regex(/%s/)", e.pattern)
}

// NotExpr inverts another expression
type NotExpr struct {
	expr FilterExpr
}

func NewNotExpr(expr FilterExpr) *NotExpr {
	return &NotExpr{expr: expr}
}

func (e *NotExpr) Matches(item *model.Item) bool {
	return !e.expr.Matches(item)
}

func (e *NotExpr) String() string {
	return fmt.Sprintf("not(%s)", e.expr)
}

// AndExpr matches when every child expression matches
type AndExpr struct {
	exprs []FilterExpr
}

func NewAndExpr(exprs ...FilterExpr) *AndExpr {
	return &AndExpr{exprs: exprs}
}

func (e *AndExpr) Matches(item *model.Item) bool {
	for _, expr := range e.exprs {
		if !expr.Matches(item) {
			return false
		}
	}
	return true
}

func (e *AndExpr) String() string {
	return "and(" + joinExprs(e.exprs) + ")"
}

// OrExpr matches when any child expression matches
type OrExpr struct {
	exprs []FilterExpr
}

func NewOrExpr(exprs ...FilterExpr) *OrExpr {
	return &OrExpr{exprs: exprs}
}

func (e *OrExpr) Matches(item *model.Item) bool {
	for _, expr := range e.exprs {
		if expr.Matches(item) {
			return true
		}
	}
	return false
}

func (e *OrExpr) String() string {
	return "or(" + joinExprs(e.exprs) + ")"
}

func joinExprs(exprs []FilterExpr) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = expr.String()
	}
	return strings.Join(parts, ", ")
}

// AlwaysMatchExpr matches all items (for empty queries)
type AlwaysMatchExpr struct{}

func (AlwaysMatchExpr) Matches(*model.Item) bool {
	return true
}

func (AlwaysMatchExpr) String() string {
	return "always-match"
}
