package ui

import "math"

// ScrollbarThumb returns the first row and the length of the scrollbar thumb
// on a track of trackLen rows. total and viewport are content and visible
// heights, offset is the scroll position. Content that fits fills the track.
func ScrollbarThumb(total, viewport, offset float64, trackLen int) (start, size int) {
	if trackLen <= 0 {
		return 0, 0
	}
	if total <= viewport || viewport <= 0 {
		return 0, trackLen
	}

	size = int(math.Round(float64(trackLen) * viewport / total))
	size = max(1, min(size, trackLen))

	maxScroll := total - viewport
	ratio := math.Max(0, math.Min(1, offset/maxScroll))
	start = int(math.Round(float64(trackLen-size) * ratio))
	return start, size
}

// renderScrollbar draws a vertical scrollbar at column x
func renderScrollbar(screen *Screen, x, y, height int, total, viewport, offset float64) {
	start, size := ScrollbarThumb(total, viewport, offset, height)
	track := screen.ScrollbarTrackStyle()
	thumb := screen.ScrollbarThumbStyle()

	for row := 0; row < height; row++ {
		if row >= start && row < start+size {
			screen.SetCell(x, y+row, '█', thumb)
		} else {
			screen.SetCell(x, y+row, '│', track)
		}
	}
}
