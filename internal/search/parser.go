package search

import (
	"fmt"
	"strings"
	"unicode"
)

// Mode selects how plain words in a query match
type Mode int

const (
	// ModeFuzzy matches plain words as in-order subsequences
	ModeFuzzy Mode = iota
	// ModeSubstring matches plain words as case-insensitive substrings
	ModeSubstring
)

func (m Mode) String() string {
	if m == ModeSubstring {
		return "substring"
	}
	return "fuzzy"
}

// ParseQuery parses a filter query.
//
//	word       plain word, matched according to mode
//	"a b"      substring match including spaces
//	~word      fuzzy match regardless of mode
//	/re/       regular expression
//	-term      negation
//	a | b      either side matches; binds looser than the implicit AND
func ParseQuery(query string, mode Mode) (FilterExpr, error) {
	tokens, err := tokenize(query)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return AlwaysMatchExpr{}, nil
	}

	var alternatives []FilterExpr
	var terms []FilterExpr
	flush := func() error {
		if len(terms) == 0 {
			return fmt.Errorf("empty alternative in query %q", query)
		}
		if len(terms) == 1 {
			alternatives = append(alternatives, terms[0])
		} else {
			alternatives = append(alternatives, NewAndExpr(terms...))
		}
		terms = nil
		return nil
	}

	for _, tok := range tokens {
		if tok == "|" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		expr, err := parseTerm(tok, mode)
		if err != nil {
			return nil, err
		}
		terms = append(terms, expr)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(alternatives) == 1 {
		return alternatives[0], nil
	}
	return NewOrExpr(alternatives...), nil
}

func parseTerm(tok string, mode Mode) (FilterExpr, error) {
	if strings.HasPrefix(tok, "-") && len(tok) > 1 {
		inner, err := parseTerm(tok[1:], mode)
		if err != nil {
			return nil, err
		}
		return NewNotExpr(inner), nil
	}

	switch {
	case len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"':
		return NewTextExpr(tok[1 : len(tok)-1]), nil
	case len(tok) >= 2 && tok[0] == '/' && tok[len(tok)-1] == '/':
		return NewRegexExpr(tok[1 : len(tok)-1])
	case strings.HasPrefix(tok, "~") && len(tok) > 1:
		return NewFuzzyExpr(tok[1:]), nil
	}

	if mode == ModeSubstring {
		return NewTextExpr(tok), nil
	}
	return NewFuzzyExpr(tok), nil
}

// tokenize splits on whitespace, keeping quoted strings and /regex/ together
func tokenize(query string) ([]string, error) {
	var tokens []string
	runes := []rune(query)

	for i := 0; i < len(runes); {
		r := runes[i]
		if unicode.IsSpace(r) {
			i++
			continue
		}
		if r == '|' {
			tokens = append(tokens, "|")
			i++
			continue
		}

		start := i
		// A leading '-' may precede a quoted string or regex
		if r == '-' && i+1 < len(runes) {
			i++
			r = runes[i]
		}
		if r == '"' || r == '/' {
			end := indexRune(runes, r, i+1)
			if end < 0 {
				return nil, fmt.Errorf("unterminated %c in query", r)
			}
			i = end + 1
		} else {
			for i < len(runes) && !unicode.IsSpace(runes[i]) && runes[i] != '|' {
				i++
			}
		}
		tokens = append(tokens, string(runes[start:i]))
	}

	return tokens, nil
}

func indexRune(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
