package virtual

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestComputeVisibleRangeScenarios(t *testing.T) {
	tests := []struct {
		name           string
		itemCount      int
		itemHeight     float64
		overscan       int
		scrollOffset   float64
		viewportHeight float64
		want           VisibleRange
	}{
		{"top of long list", 1000, 60, 5, 0, 500, VisibleRange{0, 14}},
		{"middle of long list", 1000, 60, 5, 6000, 500, VisibleRange{95, 114}},
		{"bottom clipped", 1000, 60, 5, 59500, 500, VisibleRange{986, 1000}},
		{"no overscan", 100, 1, 0, 10, 5, VisibleRange{10, 15}},
		{"partial row at bottom", 100, 2, 0, 3, 4, VisibleRange{1, 4}},
		{"list shorter than viewport", 5, 1, 3, 0, 40, VisibleRange{0, 5}},
		{"scrolled past end", 10, 1, 2, 500, 20, VisibleRange{10, 10}},
		{"negative scroll clamps", 100, 1, 0, -50, 10, VisibleRange{0, 10}},
		{"zero viewport", 100, 1, 1, 20, 0, VisibleRange{19, 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeVisibleRange(tt.itemCount, tt.itemHeight, tt.overscan, tt.scrollOffset, tt.viewportHeight)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeVisibleRangeEmptyList(t *testing.T) {
	for _, offset := range []float64{0, 10, 1e9, -3} {
		for _, height := range []float64{0, 1, 500} {
			got, err := ComputeVisibleRange(0, 20, 5, offset, height)
			require.NoError(t, err)
			assert.Equal(t, VisibleRange{}, got, "offset=%v height=%v", offset, height)
		}
	}
}

func TestComputeVisibleRangeInvalidHeight(t *testing.T) {
	for _, h := range []float64{0, -1, -60, math.NaN(), math.Inf(1)} {
		_, err := ComputeVisibleRange(100, h, 3, 0, 100)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("ComputeVisibleRange(height=%v) error = %v, want ErrInvalidConfiguration", h, err)
		}
	}

	_, err := ComputeVisibleRange(100, 1, -1, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestComputeVisibleRangeBounds(t *testing.T) {
	for _, count := range []int{0, 1, 7, 100, 1000} {
		for _, h := range []float64{0.5, 1, 3, 60} {
			for _, o := range []int{0, 1, 5, 50} {
				for offset := -100.0; offset <= 70000; offset += 977 {
					for _, vh := range []float64{0, 1, 24, 500, 10000} {
						r, err := ComputeVisibleRange(count, h, o, offset, vh)
						require.NoError(t, err)
						if r.StartIndex < 0 || r.StartIndex > r.EndIndex || r.EndIndex > count {
							t.Fatalf("range %v out of bounds for count=%d h=%v o=%d offset=%v vh=%v",
								r, count, h, o, offset, vh)
						}
					}
				}
			}
		}
	}
}

func TestComputeVisibleRangeIdempotent(t *testing.T) {
	a, err := ComputeVisibleRange(500, 17, 4, 1234.5, 321)
	require.NoError(t, err)
	b, err := ComputeVisibleRange(500, 17, 4, 1234.5, 321)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestComputeVisibleRangeMonotonicStart(t *testing.T) {
	prev := -1
	for offset := 0.0; offset < 70000; offset += 13 {
		r, err := ComputeVisibleRange(1000, 60, 5, offset, 500)
		require.NoError(t, err)
		if r.StartIndex < prev {
			t.Fatalf("start decreased from %d to %d at offset %v", prev, r.StartIndex, offset)
		}
		prev = r.StartIndex
	}
}

func TestComputeVisibleRangeOverscanWidens(t *testing.T) {
	for offset := 0.0; offset < 3000; offset += 111 {
		narrow, err := ComputeVisibleRange(200, 10, 1, offset, 95)
		require.NoError(t, err)
		wide, err := ComputeVisibleRange(200, 10, 6, offset, 95)
		require.NoError(t, err)

		assert.LessOrEqual(t, wide.StartIndex, narrow.StartIndex, "offset %v", offset)
		assert.GreaterOrEqual(t, wide.EndIndex, narrow.EndIndex, "offset %v", offset)
	}
}

func TestComputeLayoutMetrics(t *testing.T) {
	r := VisibleRange{StartIndex: 95, EndIndex: 114}
	m := ComputeLayoutMetrics(1000, 60, 5, r)

	assert.Equal(t, 60000.0, m.TotalHeight)
	assert.Equal(t, 5700.0, m.TopOffset)
	assert.Equal(t, 60.0, m.ItemHeight)
	assert.Equal(t, 5, m.Overscan)

	empty := ComputeLayoutMetrics(0, 60, 0, VisibleRange{})
	assert.Zero(t, empty.TotalHeight)
	assert.Zero(t, empty.TopOffset)
}

func TestInitialRange(t *testing.T) {
	assert.Equal(t, VisibleRange{0, 20}, InitialRange(1000))
	assert.Equal(t, VisibleRange{0, 7}, InitialRange(7))
	assert.Equal(t, VisibleRange{0, 0}, InitialRange(0))
	assert.Equal(t, VisibleRange{0, 0}, InitialRange(-4))
}

func TestRows(t *testing.T) {
	r := VisibleRange{StartIndex: 3, EndIndex: 6}
	m := ComputeLayoutMetrics(10, 2, 0, r)

	want := []RowDescriptor{
		{Index: 3, Top: 6},
		{Index: 4, Top: 8},
		{Index: 5, Top: 10},
	}
	if diff := cmp.Diff(want, Rows(r, m)); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}

	assert.Nil(t, Rows(VisibleRange{4, 4}, m))
	assert.Equal(t, m.TopOffset, Rows(r, m)[0].Top)
}

func TestVisibleRangeHelpers(t *testing.T) {
	r := VisibleRange{StartIndex: 2, EndIndex: 5}
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
	assert.Equal(t, "[2,5)", r.String())
}
