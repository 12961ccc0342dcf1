package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMarkdown(t *testing.T) {
	doc := `Intro line
# Title
Some text
about the title.

## Section
- first
  - nested
	- tabbed
* second
` + "```" + `
- not an item
` + "```" + `
#hashtag
`
	c, err := ReadMarkdown(strings.NewReader(doc), "doc.md")
	require.NoError(t, err)

	var texts []string
	for _, item := range c.Items {
		texts = append(texts, item.Text)
	}
	assert.Equal(t, []string{
		"Intro line",
		"Title",
		"  Section",
		"    first",
		"      nested",
		"      tabbed",
		"    second",
	}, texts)

	assert.Equal(t, "Some text about the title.", c.At(1).Detail)
	assert.Equal(t, "#hashtag", c.At(6).Detail, "a hash without a space is text")
	assert.Equal(t, "md_2", c.At(1).ID)
}

func TestParseListItem(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
	}{
		{"- a", 0, "a"},
		{"  + b", 1, "b"},
		{"\t\t* c", 2, "c"},
		{"-no space", -1, ""},
		{"plain", -1, ""},
	}
	for _, tt := range tests {
		level, text := parseListItem(tt.line)
		assert.Equal(t, tt.level, level, tt.line)
		assert.Equal(t, tt.text, text, tt.line)
	}
}

func TestLoadMarkdownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.markdown")
	require.NoError(t, os.WriteFile(path, []byte("- one\n- two\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "two", c.At(1).Text)
}
