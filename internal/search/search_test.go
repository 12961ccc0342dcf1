package search

import (
	"testing"

	"github.com/pstuifzand/tui-vlist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection(texts ...string) *model.Collection {
	items := make([]*model.Item, len(texts))
	for i, t := range texts {
		items[i] = &model.Item{Text: t}
	}
	return model.NewCollection("test", items)
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		mode  Mode
		want  string
	}{
		{"empty", "   ", ModeFuzzy, "always-match"},
		{"fuzzy word", "abc", ModeFuzzy, `fuzzy("abc")`},
		{"substring word", "Abc", ModeSubstring, `text("abc")`},
		{"quoted", `"hello world"`, ModeFuzzy, `text("hello world")`},
		{"regex", `/^a.*z$/`, ModeFuzzy, `regex(/^a.*z$/)`},
		{"forced fuzzy", "~abc", ModeSubstring, `fuzzy("abc")`},
		{"negation", "-draft", ModeSubstring, `not(text("draft"))`},
		{"negated quote", `-"a b"`, ModeFuzzy, `not(text("a b"))`},
		{"and", "foo bar", ModeSubstring, `and(text("foo"), text("bar"))`},
		{"or", "foo | bar baz", ModeSubstring, `or(text("foo"), and(text("bar"), text("baz")))`},
		{"or without spaces", "foo|bar", ModeSubstring, `or(text("foo"), text("bar"))`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseQuery(tt.query, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.String())
		})
	}
}

func TestParseQueryErrors(t *testing.T) {
	for _, q := range []string{`"open`, `/open`, `/[/`, `| foo`, `foo |`} {
		_, err := ParseQuery(q, ModeFuzzy)
		assert.Error(t, err, "query %q", q)
	}
}

func TestFilter(t *testing.T) {
	c := collection("Install guide", "Release notes", "Draft: install FAQ", "Changelog")

	tests := []struct {
		query string
		mode  Mode
		want  []int
	}{
		{"install", ModeSubstring, []int{0, 2}},
		{"install -draft", ModeSubstring, []int{0}},
		{"rn", ModeFuzzy, []int{1, 2}},
		{"/^[CR]/", ModeFuzzy, []int{1, 3}},
		{"guide | changelog", ModeSubstring, []int{0, 3}},
		{"nothing-matches", ModeSubstring, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Run(c, tt.query, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunEmptyQuerySelectsAll(t *testing.T) {
	got, err := Run(collection("a", "b"), "", ModeFuzzy)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRank(t *testing.T) {
	c := collection("abcdef", "zzz", "abc", "xaxbxc")
	got := Rank(c, "abc")

	require.Len(t, got, 3)
	assert.Equal(t, 2, got[0], "exact match ranks first")
	assert.NotContains(t, got, 1)
}
