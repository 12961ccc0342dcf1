package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-vlist/internal/model"
	"gopkg.in/yaml.v3"
)

// maxLineSize bounds a single line of a text item file
const maxLineSize = 1024 * 1024

// Load reads a collection from path. JSON and YAML files hold either an
// array of items or an object with an "items" array. Markdown files are read
// by ReadMarkdown. Anything else is read as one item per non-empty line.
// "-" reads lines from stdin.
func Load(path string) (*model.Collection, error) {
	if path == "-" {
		return ReadLines(os.Stdin, "stdin")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	title := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f, title)
	case ".yaml", ".yml":
		return ReadYAML(f, title)
	case ".md", ".markdown":
		return ReadMarkdown(f, title)
	}
	return ReadLines(f, title)
}

// ReadLines turns every non-empty line of r into an item
func ReadLines(r io.Reader, title string) (*model.Collection, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var items []*model.Item
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		items = append(items, &model.Item{
			ID:   fmt.Sprintf("line_%d", line),
			Text: text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	return model.NewCollection(title, items), nil
}

// ReadJSON decodes a JSON item file
func ReadJSON(r io.Reader, title string) (*model.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return model.NewCollection(title, nil), nil
	}

	var collection model.Collection
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &collection.Items); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &collection); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return normalize(&collection, title), nil
}

// ReadYAML decodes a YAML item file with the same shapes as ReadJSON
func ReadYAML(r io.Reader, title string) (*model.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return model.NewCollection(title, nil), nil
	}

	var collection model.Collection
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		err = root.Decode(&collection.Items)
	} else {
		err = root.Decode(&collection)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return normalize(&collection, title), nil
}

// normalize drops null entries, gives items without an ID a new one and
// falls back to title when the file has none
func normalize(collection *model.Collection, title string) *model.Collection {
	items := collection.Items[:0]
	for _, item := range collection.Items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			item.ID = model.NewID()
		}
		items = append(items, item)
	}
	if collection.Title == "" {
		collection.Title = title
	}
	return model.NewCollection(collection.Title, items)
}

// SaveJSON writes a collection as an indented JSON object
func SaveJSON(path string, collection *model.Collection) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
