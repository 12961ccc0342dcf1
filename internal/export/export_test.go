package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pstuifzand/tui-vlist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView() *model.View {
	c := model.NewCollection("t", []*model.Item{
		{ID: "a", Text: "alpha"},
		{ID: "b", Text: "  beta", Detail: "second"},
		{ID: "c", Text: "gamma"},
	})
	return model.NewView(c, []int{0, 1, 2})
}

func TestWriterFormats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		fields []string
		want   string
	}{
		{"lines", FormatLines, nil, "alpha\n  beta\ngamma\n"},
		{"markdown", FormatMarkdown, nil, "- alpha\n  - beta\n- gamma\n"},
		{"fields default", FormatFields, nil, "1\ta\talpha\n2\tb\t  beta\n3\tc\tgamma\n"},
		{"fields custom", FormatFields, []string{"id", "detail"}, "a\t\nb\tsecond\nc\t\n"},
		{"jsonl", FormatJSONL, []string{"id", "index"},
			"{\"id\":\"a\",\"index\":1}\n{\"id\":\"b\",\"index\":2}\n{\"id\":\"c\",\"index\":3}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Writer{Format: tt.format, Fields: tt.fields}.Write(&buf, testView()))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Writer{Format: FormatJSON, Fields: []string{"text"}}.Write(&buf, testView()))
	assert.JSONEq(t, `[{"text":"alpha"},{"text":"  beta"},{"text":"gamma"}]`, buf.String())
}

func TestWriterSourceIndex(t *testing.T) {
	c := model.NewCollection("t", []*model.Item{{Text: "x"}, {Text: "y"}, {Text: "z"}})
	view := model.NewView(c, []int{2})

	var buf bytes.Buffer
	require.NoError(t, Writer{Format: FormatFields, Fields: []string{"index", "source_index", "text"}}.Write(&buf, view))
	assert.Equal(t, "1\t3\tz\n", buf.String())
}

func TestWriterUnknownField(t *testing.T) {
	var buf bytes.Buffer
	err := Writer{Format: FormatFields, Fields: []string{"tags"}}.Write(&buf, testView())
	assert.EqualError(t, err, "unknown field: tags")
	assert.Empty(t, buf.String())
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"lines": FormatLines, "TEXT": FormatLines, "md": FormatMarkdown,
		"tsv": FormatFields, "json": FormatJSON, " jsonl ": FormatJSONL,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("yaml")
	assert.Error(t, err)
	assert.Equal(t, "jsonl", FormatJSONL.String())
}

func TestParseFields(t *testing.T) {
	assert.Equal(t, []string{"id", "text"}, ParseFields(" id, ,text,"))
	assert.Nil(t, ParseFields(""))
}

func TestToFile(t *testing.T) {
	dir := t.TempDir()

	mdPath := filepath.Join(dir, "out.md")
	require.NoError(t, ToFile(mdPath, testView(), nil))
	content, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Equal(t, "- alpha\n  - beta\n- gamma\n", string(content))

	assert.Equal(t, FormatJSONL, FormatForPath("x.NDJSON"))
	assert.Equal(t, FormatLines, FormatForPath("x.txt"))

	err = ToFile(filepath.Join(dir, "missing", "out.txt"), testView(), nil)
	assert.Error(t, err)
}
