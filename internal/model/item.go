// Package model contains the items shown in the list
package model

import (
	"github.com/google/uuid"
)

// Item is a single row of the list
type Item struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Text   string `json:"text" yaml:"text"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// NewItem creates a new item with a generated ID
func NewItem(text string) *Item {
	return &Item{
		ID:   NewID(),
		Text: text,
	}
}

// Collection is an ordered, read-only sequence of items
type Collection struct {
	Title string  `json:"title,omitempty" yaml:"title,omitempty"`
	Items []*Item `json:"items" yaml:"items"`
}

// NewCollection creates a collection over items
func NewCollection(title string, items []*Item) *Collection {
	if items == nil {
		items = make([]*Item, 0)
	}
	return &Collection{Title: title, Items: items}
}

// Len returns the number of items
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// At returns the item at index i, or nil when out of range
func (c *Collection) At(i int) *Item {
	if i < 0 || i >= c.Len() {
		return nil
	}
	return c.Items[i]
}

// Slice returns items[start:end] clamped to the collection
func (c *Collection) Slice(start, end int) []*Item {
	n := c.Len()
	start = max(0, min(start, n))
	end = max(start, min(end, n))
	return c.Items[start:end]
}

// Texts returns the text of every item, used for filtering
func (c *Collection) Texts() []string {
	texts := make([]string, c.Len())
	for i, item := range c.Items {
		texts[i] = item.Text
	}
	return texts
}

// View is a subset of a collection selected by index, e.g. a filter result
type View struct {
	source  *Collection
	indices []int
}

// NewView selects the given source indices. A nil indices slice selects everything.
func NewView(source *Collection, indices []int) *View {
	return &View{source: source, indices: indices}
}

// Len returns the number of items in the view
func (v *View) Len() int {
	if v.indices == nil {
		return v.source.Len()
	}
	return len(v.indices)
}

// At returns the i-th item of the view
func (v *View) At(i int) *Item {
	src := v.SourceIndex(i)
	if src < 0 {
		return nil
	}
	return v.source.At(src)
}

// SourceIndex maps a view index to the index in the source collection, or -1
func (v *View) SourceIndex(i int) int {
	if i < 0 || i >= v.Len() {
		return -1
	}
	if v.indices == nil {
		return i
	}
	return v.indices[i]
}

// Filtered reports whether the view hides part of the source
func (v *View) Filtered() bool {
	return v.indices != nil
}

// NewID returns a random item ID
func NewID() string {
	return uuid.NewString()
}
