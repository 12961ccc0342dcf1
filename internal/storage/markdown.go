package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pstuifzand/tui-vlist/internal/model"
)

// ReadMarkdown turns headers and list items of a markdown document into
// items. Nesting is kept as two spaces of indentation per level. Paragraph
// text following an item becomes that item's detail.
func ReadMarkdown(r io.Reader, title string) (*model.Collection, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		items       []*model.Item
		headerLevel = -1
		inFence     bool
	)
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(raw)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence || trimmed == "" {
			continue
		}

		id := fmt.Sprintf("md_%d", line)
		if level, text := parseHeader(raw); level >= 0 {
			headerLevel = level
			items = append(items, &model.Item{ID: id, Text: indent(level) + text})
			continue
		}
		if level, text := parseListItem(raw); level >= 0 {
			items = append(items, &model.Item{ID: id, Text: indent(headerLevel+1+level) + text})
			continue
		}

		if len(items) == 0 {
			items = append(items, &model.Item{ID: id, Text: trimmed})
			continue
		}
		last := items[len(items)-1]
		if last.Detail != "" {
			last.Detail += " "
		}
		last.Detail += trimmed
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}

	return model.NewCollection(title, items), nil
}

func indent(level int) string {
	return strings.Repeat("  ", max(level, 0))
}

// parseHeader returns the 0-based level and text of an ATX header, or -1
func parseHeader(line string) (int, string) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return -1, ""
	}
	if level < len(line) && line[level] != ' ' && line[level] != '\t' {
		return -1, ""
	}
	return level - 1, strings.TrimSpace(line[level:])
}

// parseListItem returns the nesting level and text of a bullet, or -1.
// A tab counts as two spaces.
func parseListItem(line string) (int, string) {
	width := 0
	i := 0
	for ; i < len(line); i++ {
		if line[i] == ' ' {
			width++
		} else if line[i] == '\t' {
			width += 2
		} else {
			break
		}
	}

	rest := line[i:]
	for _, marker := range []string{"- ", "* ", "+ "} {
		if strings.HasPrefix(rest, marker) {
			return width / 2, strings.TrimSpace(rest[len(marker):])
		}
	}
	return -1, ""
}
