package ui

import (
	"github.com/mattn/go-runewidth"
)

// TextWidth helpers work with display width (screen columns), not byte
// length, so wide characters and combining marks line up.

// RuneWidth returns the display width of a single rune.
// Control and combining characters are 0 columns wide.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth truncates s to at most maxWidth columns without
// splitting a wide character
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// WrapToWidth splits s into lines of at most width columns. Wide runes
// never straddle two lines. Returns at least one (possibly empty) line.
func WrapToWidth(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}

	var lines []string
	start, col := 0, 0
	for i, r := range s {
		rw := RuneWidth(r)
		if col+rw > width && col > 0 {
			lines = append(lines, s[start:i])
			start, col = i, 0
		}
		col += rw
	}
	return append(lines, s[start:])
}

// PadToWidth pads s with spaces to exactly width columns, truncating if longer
func PadToWidth(s string, width int) string {
	s = TruncateToWidth(s, width)
	for w := StringWidth(s); w < width; w++ {
		s += " "
	}
	return s
}
