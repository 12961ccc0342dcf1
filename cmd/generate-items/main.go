package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pstuifzand/tui-vlist/internal/model"
	"github.com/pstuifzand/tui-vlist/internal/storage"
)

func main() {
	count := flag.Int("count", 100000, "Number of items to generate")
	output := flag.String("output", "items.json", "Output file path, .json or plain lines")
	details := flag.Bool("details", false, "Add a second line of detail to every item")
	flag.Parse()

	if *count < 1 {
		fmt.Fprintf(os.Stderr, "count must be at least 1\n")
		os.Exit(1)
	}

	collection := generateItems(*count, *details)

	var err error
	if strings.EqualFold(filepath.Ext(*output), ".json") {
		err = storage.SaveJSON(*output, collection)
	} else {
		err = writeLines(*output, collection)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d items\n", collection.Len())
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

func generateItems(count int, details bool) *model.Collection {
	items := make([]*model.Item, count)
	for i := range items {
		item := &model.Item{
			ID:   fmt.Sprintf("item_%d", i),
			Text: generateText(i),
		}
		if details {
			item.Detail = generateDescription(i)
		}
		items[i] = item
	}
	return model.NewCollection(fmt.Sprintf("%d generated items", count), items)
}

func generateText(index int) string {
	categories := []string{
		"Task", "Note", "Idea", "Bug", "Feature", "Enhancement",
		"Documentation", "Refactor", "Test", "Optimization",
		"Research", "Design", "Implementation", "Review",
	}

	category := categories[index%len(categories)]
	return fmt.Sprintf("%s #%d - %s", category, index, generateDescription(index/len(categories)))
}

func generateDescription(index int) string {
	descriptions := []string{
		"Core functionality",
		"User interface",
		"Performance improvement",
		"Bug fix",
		"New capability",
		"API integration",
		"Data validation",
		"Error handling",
		"Caching layer",
		"Database schema",
		"Authentication",
		"Configuration",
		"Logging system",
		"Monitoring",
		"Security audit",
	}

	return descriptions[index%len(descriptions)]
}

func writeLines(path string, collection *model.Collection) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	var sb strings.Builder
	for _, item := range collection.Items {
		sb.WriteString(item.Text)
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
