// Package virtual computes which slice of a uniform-height list must be
// rendered for a given scroll position, so a host only draws what is visible.
package virtual

import (
	"errors"
	"fmt"
	"math"
)

// DefaultOverscan is the number of extra items rendered past each visible edge
const DefaultOverscan = 3

// initialRangeSize is the range used before the container is first measured
const initialRangeSize = 20

var (
	// ErrInvalidConfiguration is returned for non-positive item heights and
	// other option values the engine cannot compute with
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNilContainer is returned when attaching to a nil container
	ErrNilContainer = errors.New("nil container")
)

// VisibleRange is the half-open index window [StartIndex, EndIndex) to render
type VisibleRange struct {
	StartIndex int
	EndIndex   int
}

// Len returns the number of items in the range
func (r VisibleRange) Len() int {
	return r.EndIndex - r.StartIndex
}

// Contains reports whether index falls inside the range
func (r VisibleRange) Contains(index int) bool {
	return index >= r.StartIndex && index < r.EndIndex
}

func (r VisibleRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.StartIndex, r.EndIndex)
}

// LayoutMetrics holds the sizes a renderer needs to keep the scrollbar and
// row positions correct while only a slice is drawn
type LayoutMetrics struct {
	ItemHeight  float64
	Overscan    int
	TotalHeight float64
	TopOffset   float64
}

// ViewportState is the last sampled scroll position and viewport size
type ViewportState struct {
	ScrollOffset   float64
	ViewportHeight float64
}

// validHeight reports whether h can be divided by
func validHeight(h float64) bool {
	return h > 0 && !math.IsInf(h, 0) && !math.IsNaN(h)
}

// ComputeVisibleRange returns the item window covering the viewport plus
// overscan items on both sides, clipped to [0, itemCount].
func ComputeVisibleRange(itemCount int, itemHeight float64, overscan int, scrollOffset, viewportHeight float64) (VisibleRange, error) {
	if !validHeight(itemHeight) {
		return VisibleRange{}, fmt.Errorf("%w: item height must be positive, got %v", ErrInvalidConfiguration, itemHeight)
	}
	if overscan < 0 {
		return VisibleRange{}, fmt.Errorf("%w: overscan must not be negative, got %d", ErrInvalidConfiguration, overscan)
	}
	if itemCount <= 0 {
		return VisibleRange{}, nil
	}

	// NaN compares false against everything, so clamp it explicitly
	if scrollOffset < 0 || math.IsNaN(scrollOffset) {
		scrollOffset = 0
	}
	if viewportHeight < 0 || math.IsNaN(viewportHeight) {
		viewportHeight = 0
	}

	first := math.Floor(scrollOffset / itemHeight)
	last := math.Ceil((scrollOffset + viewportHeight) / itemHeight)

	start := clampIndex(first-float64(overscan), itemCount)
	end := clampIndex(last+float64(overscan), itemCount)

	return VisibleRange{StartIndex: start, EndIndex: end}, nil
}

// clampIndex converts v to an int inside [0, itemCount]
func clampIndex(v float64, itemCount int) int {
	if v <= 0 {
		return 0
	}
	if v >= float64(itemCount) {
		return itemCount
	}
	return int(v)
}

// ComputeLayoutMetrics derives total and top offsets for a range computed
// with the given overscan
func ComputeLayoutMetrics(itemCount int, itemHeight float64, overscan int, r VisibleRange) LayoutMetrics {
	return LayoutMetrics{
		ItemHeight:  itemHeight,
		Overscan:    overscan,
		TotalHeight: float64(itemCount) * itemHeight,
		TopOffset:   float64(r.StartIndex) * itemHeight,
	}
}

// InitialRange is the range reported before the first measurement
func InitialRange(itemCount int) VisibleRange {
	if itemCount < 0 {
		itemCount = 0
	}
	return VisibleRange{StartIndex: 0, EndIndex: min(initialRangeSize, itemCount)}
}

// RowDescriptor places one item of the visible slice
type RowDescriptor struct {
	Index int
	Top   float64
}

// Rows maps a range to the position of each item in it, in index order.
// The caller decides how to draw each row.
func Rows(r VisibleRange, m LayoutMetrics) []RowDescriptor {
	if r.Len() <= 0 {
		return nil
	}
	rows := make([]RowDescriptor, 0, r.Len())
	for i := r.StartIndex; i < r.EndIndex; i++ {
		rows = append(rows, RowDescriptor{
			Index: i,
			Top:   float64(i) * m.ItemHeight,
		})
	}
	return rows
}
