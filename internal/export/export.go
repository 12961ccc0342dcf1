// Package export writes items of a list to files and streams
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-vlist/internal/model"
)

// Format specifies how items are written
type Format int

const (
	FormatLines Format = iota
	FormatMarkdown
	FormatFields
	FormatJSON
	FormatJSONL
)

var formatNames = map[Format]string{
	FormatLines:    "lines",
	FormatMarkdown: "markdown",
	FormatFields:   "fields",
	FormatJSON:     "json",
	FormatJSONL:    "jsonl",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DefaultFields are written by the fields format when none are given
var DefaultFields = []string{"index", "id", "text"}

// ParseFormat parses a format name as given on the command line
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lines", "text":
		return FormatLines, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "fields", "tsv":
		return FormatFields, nil
	case "json":
		return FormatJSON, nil
	case "jsonl":
		return FormatJSONL, nil
	default:
		return FormatLines, fmt.Errorf("invalid format: %s (valid options: lines, markdown, fields, json, jsonl)", name)
	}
}

// FormatForPath picks a format from the file extension
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	case ".tsv":
		return FormatFields
	case ".json":
		return FormatJSON
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatLines
	}
}

// ParseFields splits a comma separated field list
func ParseFields(value string) []string {
	var fields []string
	for _, field := range strings.Split(value, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			fields = append(fields, field)
		}
	}
	return fields
}

// Source is a sequence of items, e.g. a filtered view
type Source interface {
	Len() int
	At(i int) *model.Item
	SourceIndex(i int) int
}

// Writer writes items in one format
type Writer struct {
	Format Format
	Fields []string
}

// Write writes every item of src to w
func (wr Writer) Write(w io.Writer, src Source) error {
	fields := wr.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}
	for _, field := range fields {
		if !knownField(field) {
			return fmt.Errorf("unknown field: %s", field)
		}
	}

	bw := bufio.NewWriter(w)
	var err error
	switch wr.Format {
	case FormatJSON:
		err = writeJSON(bw, src, fields)
	case FormatJSONL:
		err = writeJSONL(bw, src, fields)
	default:
		for i := 0; i < src.Len() && err == nil; i++ {
			err = wr.writeLine(bw, src, i, fields)
		}
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func (wr Writer) writeLine(w *bufio.Writer, src Source, i int, fields []string) error {
	item := src.At(i)
	var line string
	switch wr.Format {
	case FormatMarkdown:
		line = markdownBullet(item.Text)
	case FormatFields:
		values := make([]string, len(fields))
		for j, field := range fields {
			values[j] = fmt.Sprint(fieldValue(src, i, field))
		}
		line = strings.Join(values, "\t")
	default:
		line = item.Text
	}
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// markdownBullet writes leading indentation as list nesting
func markdownBullet(text string) string {
	trimmed := strings.TrimLeft(text, " ")
	depth := (len(text) - len(trimmed)) / 2
	return strings.Repeat("  ", depth) + "- " + trimmed
}

func writeJSON(w io.Writer, src Source, fields []string) error {
	result := make([]map[string]any, src.Len())
	for i := range result {
		result[i] = itemObject(src, i, fields)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func writeJSONL(w io.Writer, src Source, fields []string) error {
	enc := json.NewEncoder(w)
	for i := 0; i < src.Len(); i++ {
		if err := enc.Encode(itemObject(src, i, fields)); err != nil {
			return err
		}
	}
	return nil
}

func itemObject(src Source, i int, fields []string) map[string]any {
	obj := make(map[string]any, len(fields))
	for _, field := range fields {
		obj[field] = fieldValue(src, i, field)
	}
	return obj
}

func knownField(field string) bool {
	switch field {
	case "index", "source_index", "id", "text", "detail":
		return true
	}
	return false
}

// fieldValue extracts a field of the i-th item. Indexes are 1-based, the way
// they are shown in the list.
func fieldValue(src Source, i int, field string) any {
	item := src.At(i)
	switch field {
	case "index":
		return i + 1
	case "source_index":
		return src.SourceIndex(i) + 1
	case "id":
		return item.ID
	case "text":
		return item.Text
	case "detail":
		return item.Detail
	default:
		return ""
	}
}

// ToFile writes src to path in the format given by its extension
func ToFile(path string, src Source, fields []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	wr := Writer{Format: FormatForPath(path), Fields: fields}
	if err := wr.Write(f, src); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return f.Close()
}
