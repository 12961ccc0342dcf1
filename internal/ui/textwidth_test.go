package ui

import (
	"testing"
)

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected int
	}{
		{"ASCII letter", 'A', 1},
		{"ASCII space", ' ', 1},
		{"Emoji", '😀', 2},
		{"Chinese character", '中', 2},
		{"Combining acute", '\u0301', 0},
		{"Tab", '\t', 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuneWidth(tt.r)
			if got != tt.expected {
				t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.expected)
			}
		})
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"fits", "Hello", 10, "Hello"},
		{"cut ascii", "Hello World", 5, "Hello"},
		{"wide rune not split", "中国人", 5, "中国"},
		{"zero width", "Hello", 0, ""},
		{"emoji", "😀😀😀", 3, "😀"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateToWidth(tt.input, tt.maxWidth)
			if got != tt.expected {
				t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestWrapToWidth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  []string
	}{
		{"short", "abc", 5, []string{"abc"}},
		{"exact", "abcde", 5, []string{"abcde"}},
		{"two lines", "abcdefg", 5, []string{"abcde", "fg"}},
		{"wide runes", "中国人民", 5, []string{"中国", "人民"}},
		{"empty", "", 5, []string{""}},
		{"no width", "abc", 0, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapToWidth(tt.input, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("WrapToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPadToWidth(t *testing.T) {
	if got := PadToWidth("ab", 4); got != "ab  " {
		t.Errorf("PadToWidth = %q, want %q", got, "ab  ")
	}
	if got := PadToWidth("中", 3); got != "中 " {
		t.Errorf("PadToWidth = %q, want %q", got, "中 ")
	}
	if got := PadToWidth("abcdef", 3); got != "abc" {
		t.Errorf("PadToWidth = %q, want %q", got, "abc")
	}
}

func TestScrollbarThumb(t *testing.T) {
	tests := []struct {
		name                    string
		total, viewport, offset float64
		track                   int
		wantStart, wantSize     int
	}{
		{"fits", 10, 20, 0, 10, 0, 10},
		{"top", 100, 10, 0, 10, 0, 1},
		{"bottom", 100, 10, 90, 10, 9, 1},
		{"middle", 100, 50, 25, 10, 3, 5},
		{"tiny thumb clamps to one row", 100000, 10, 0, 20, 0, 1},
		{"no track", 100, 10, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, size := ScrollbarThumb(tt.total, tt.viewport, tt.offset, tt.track)
			if start != tt.wantStart || size != tt.wantSize {
				t.Errorf("ScrollbarThumb() = (%d, %d), want (%d, %d)", start, size, tt.wantStart, tt.wantSize)
			}
		})
	}
}
