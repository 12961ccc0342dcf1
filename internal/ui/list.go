package ui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-vlist/internal/model"
	"github.com/pstuifzand/tui-vlist/internal/virtual"
)

// ItemSource is the sequence of items a ListView shows
type ItemSource interface {
	Len() int
	At(i int) *model.Item
}

type listener struct {
	id int
	fn func()
}

// ListView is a scrollable list that draws only the rows the virtualization
// engine reports as visible. It is the engine's container: scroll offsets and
// heights are in terminal rows.
type ListView struct {
	source ItemSource
	engine *virtual.Engine
	detach virtual.Detach

	x, y, width, height int
	scrollTop           int
	selected            int
	itemHeight          int
	showIndex           bool

	listeners map[virtual.EventKind][]listener
	nextID    int

	onRangeChange func(virtual.VisibleRange)
	renderedRows  int
}

// NewListView creates a list over source and attaches a virtualization
// engine configured by opts. Item heights must be whole rows.
func NewListView(source ItemSource, opts virtual.Options) (*ListView, error) {
	engine, err := virtual.New(source.Len(), opts)
	if err != nil {
		return nil, err
	}
	if opts.ItemHeight != math.Trunc(opts.ItemHeight) {
		return nil, fmt.Errorf("%w: item height must be a whole number of rows, got %v",
			virtual.ErrInvalidConfiguration, opts.ItemHeight)
	}

	lv := &ListView{
		source:     source,
		engine:     engine,
		itemHeight: int(opts.ItemHeight),
		listeners:  make(map[virtual.EventKind][]listener),
	}

	detach, err := engine.Attach(lv, lv.handleRangeChange)
	if err != nil {
		return nil, fmt.Errorf("failed to attach list view: %w", err)
	}
	lv.detach = detach
	return lv, nil
}

// Close detaches the engine from the list
func (lv *ListView) Close() {
	if lv.detach != nil {
		lv.detach()
	}
}

// ScrollTop returns the scroll offset in rows
func (lv *ListView) ScrollTop() float64 {
	return float64(lv.scrollTop)
}

// ClientHeight returns the number of rows the list shows
func (lv *ListView) ClientHeight() float64 {
	return float64(lv.viewHeight())
}

// viewHeight is the list height, capped by a fixed list height when one is set
func (lv *ListView) viewHeight() int {
	if lh := lv.engine.Options().ListHeight; lh > 0 {
		return min(lv.height, int(lh))
	}
	return lv.height
}

// Subscribe registers fn for scroll or resize events
func (lv *ListView) Subscribe(kind virtual.EventKind, fn func()) (func(), error) {
	if kind != virtual.EventScroll && kind != virtual.EventResize {
		return nil, fmt.Errorf("unsupported event kind %s", kind)
	}

	id := lv.nextID
	lv.nextID++
	lv.listeners[kind] = append(lv.listeners[kind], listener{id: id, fn: fn})

	return func() {
		ls := lv.listeners[kind]
		for i, l := range ls {
			if l.id == id {
				lv.listeners[kind] = append(ls[:i:i], ls[i+1:]...)
				return
			}
		}
	}, nil
}

func (lv *ListView) fire(kind virtual.EventKind) {
	// Copy so a listener may unsubscribe while we iterate
	ls := append([]listener(nil), lv.listeners[kind]...)
	for _, l := range ls {
		l.fn()
	}
}

// SetOnRangeChange sets a callback for visible range changes
func (lv *ListView) SetOnRangeChange(fn func(virtual.VisibleRange)) {
	lv.onRangeChange = fn
}

func (lv *ListView) handleRangeChange(r virtual.VisibleRange) {
	if lv.onRangeChange != nil {
		lv.onRangeChange(r)
	}
}

// Engine returns the virtualization engine attached to the list
func (lv *ListView) Engine() *virtual.Engine {
	return lv.engine
}

// SetBounds places the list on screen. A size change is reported to the
// engine as a resize event.
func (lv *ListView) SetBounds(x, y, width, height int) {
	width = max(0, width)
	height = max(0, height)
	resized := width != lv.width || height != lv.height

	lv.x, lv.y = x, y
	lv.width, lv.height = width, height
	if !resized {
		return
	}

	lv.scrollTop = lv.clampScroll(lv.scrollTop)
	lv.fire(virtual.EventResize)
	lv.ensureSelectedVisible()
}

// Bounds returns the list position and size
func (lv *ListView) Bounds() (x, y, width, height int) {
	return lv.x, lv.y, lv.width, lv.height
}

// SetSource replaces the items shown, e.g. after filtering
func (lv *ListView) SetSource(source ItemSource) {
	lv.source = source

	before := lv.scrollTop
	count := source.Len()
	lv.selected = max(0, min(lv.selected, count-1))
	lv.scrollTop = lv.clampScroll(lv.scrollTop)

	lv.engine.SetItemCount(count)
	if lv.scrollTop != before {
		lv.fire(virtual.EventScroll)
	}
	lv.ensureSelectedVisible()
}

// Source returns the items shown
func (lv *ListView) Source() ItemSource {
	return lv.source
}

// SetItemHeight changes the number of rows per item, keeping the selected
// item in view
func (lv *ListView) SetItemHeight(rows int) error {
	if err := lv.engine.SetItemHeight(float64(rows)); err != nil {
		return err
	}
	lv.itemHeight = rows
	lv.setScrollTop(lv.selected * rows)
	lv.ensureSelectedVisible()
	return nil
}

// SetListHeight fixes the number of rows the list shows, zero uses its
// whole height. The selected item stays in view.
func (lv *ListView) SetListHeight(rows int) error {
	if err := lv.engine.SetListHeight(float64(rows)); err != nil {
		return err
	}
	lv.setScrollTop(lv.scrollTop)
	lv.ensureSelectedVisible()
	return nil
}

// ItemHeight returns the number of rows per item
func (lv *ListView) ItemHeight() int {
	return lv.itemHeight
}

// SetShowIndex toggles the row number gutter
func (lv *ListView) SetShowIndex(show bool) {
	lv.showIndex = show
}

// ShowIndex reports whether row numbers are drawn
func (lv *ListView) ShowIndex() bool {
	return lv.showIndex
}

func (lv *ListView) maxScroll() int {
	return max(0, lv.source.Len()*lv.itemHeight-lv.viewHeight())
}

func (lv *ListView) clampScroll(offset int) int {
	return max(0, min(offset, lv.maxScroll()))
}

// setScrollTop moves the viewport and fires a scroll event if it moved
func (lv *ListView) setScrollTop(offset int) {
	offset = lv.clampScroll(offset)
	if offset == lv.scrollTop {
		return
	}
	lv.scrollTop = offset
	lv.fire(virtual.EventScroll)
}

// ScrollOffset returns the scroll offset in rows
func (lv *ListView) ScrollOffset() int {
	return lv.scrollTop
}

// ScrollTo scrolls to an absolute row offset without moving the selection
// out of view
func (lv *ListView) ScrollTo(offset int) {
	lv.setScrollTop(offset)
	lv.keepSelectionInView()
}

// ScrollBy scrolls by delta rows
func (lv *ListView) ScrollBy(delta int) {
	lv.ScrollTo(lv.scrollTop + delta)
}

// keepSelectionInView moves the selection to the nearest fully visible item
// after the viewport moved independently of it
func (lv *ListView) keepSelectionInView() {
	count := lv.source.Len()
	height := lv.viewHeight()
	if count == 0 || height < lv.itemHeight {
		return
	}
	first := (lv.scrollTop + lv.itemHeight - 1) / lv.itemHeight
	last := (lv.scrollTop+height)/lv.itemHeight - 1
	last = min(last, count-1)
	if lv.selected < first {
		lv.selected = first
	} else if lv.selected > last {
		lv.selected = max(first, last)
	}
}

func (lv *ListView) ensureSelectedVisible() {
	if lv.source.Len() == 0 {
		return
	}
	height := lv.viewHeight()
	top := lv.selected * lv.itemHeight
	bottom := top + lv.itemHeight
	if top < lv.scrollTop {
		lv.setScrollTop(top)
	} else if bottom > lv.scrollTop+height {
		// An item taller than the viewport shows its first row
		lv.setScrollTop(min(top, bottom-height))
	}
}

// Selected returns the index of the selected item
func (lv *ListView) Selected() int {
	return lv.selected
}

// SelectedItem returns the selected item, or nil for an empty list
func (lv *ListView) SelectedItem() *model.Item {
	return lv.source.At(lv.selected)
}

// SelectIndex selects item i, clamped to the list, and scrolls it into view
func (lv *ListView) SelectIndex(i int) {
	count := lv.source.Len()
	if count == 0 {
		lv.selected = 0
		return
	}
	lv.selected = max(0, min(i, count-1))
	lv.ensureSelectedVisible()
}

// SelectNext moves selection down
func (lv *ListView) SelectNext() {
	lv.SelectIndex(lv.selected + 1)
}

// SelectPrev moves selection up
func (lv *ListView) SelectPrev() {
	lv.SelectIndex(lv.selected - 1)
}

// SelectFirst selects the first item
func (lv *ListView) SelectFirst() {
	lv.SelectIndex(0)
}

// SelectLast selects the last item
func (lv *ListView) SelectLast() {
	lv.SelectIndex(lv.source.Len() - 1)
}

// PageSize returns the number of whole items that fit in the viewport
func (lv *ListView) PageSize() int {
	return max(1, lv.viewHeight()/lv.itemHeight)
}

// ScrollPageDown scrolls the viewport down by pageSize items and moves selection
func (lv *ListView) ScrollPageDown(pageSize int) {
	pageSize = max(1, pageSize)
	lv.setScrollTop(lv.scrollTop + pageSize*lv.itemHeight)
	lv.SelectIndex(lv.selected + pageSize)
}

// ScrollPageUp scrolls the viewport up by pageSize items and moves selection
func (lv *ListView) ScrollPageUp(pageSize int) {
	pageSize = max(1, pageSize)
	lv.setScrollTop(lv.scrollTop - pageSize*lv.itemHeight)
	lv.SelectIndex(lv.selected - pageSize)
}

// IndexAt returns the item index drawn at screen row y, or -1
func (lv *ListView) IndexAt(y int) int {
	row := y - lv.y
	if row < 0 || row >= lv.viewHeight() {
		return -1
	}
	idx := (lv.scrollTop + row) / lv.itemHeight
	if idx >= lv.source.Len() {
		return -1
	}
	return idx
}

// HandleKey handles navigation keys. It returns false for keys it ignores.
func (lv *ListView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		lv.SelectPrev()
	case tcell.KeyDown:
		lv.SelectNext()
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		lv.ScrollPageUp(lv.PageSize())
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		lv.ScrollPageDown(lv.PageSize())
	case tcell.KeyCtrlU:
		lv.ScrollPageUp(max(1, lv.PageSize()/2))
	case tcell.KeyCtrlD:
		lv.ScrollPageDown(max(1, lv.PageSize()/2))
	case tcell.KeyCtrlE:
		lv.ScrollBy(1)
	case tcell.KeyCtrlY:
		lv.ScrollBy(-1)
	case tcell.KeyHome:
		lv.SelectFirst()
	case tcell.KeyEnd:
		lv.SelectLast()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'j':
			lv.SelectNext()
		case 'k':
			lv.SelectPrev()
		case 'g':
			lv.SelectFirst()
		case 'G':
			lv.SelectLast()
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// wheelStep is the number of rows one wheel notch scrolls
const wheelStep = 3

// HandleMouse handles wheel scrolling and click selection
func (lv *ListView) HandleMouse(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		lv.ScrollBy(-wheelStep)
	case buttons&tcell.WheelDown != 0:
		lv.ScrollBy(wheelStep)
	case buttons&tcell.Button1 != 0:
		x, y := ev.Position()
		if x < lv.x || x >= lv.x+lv.width {
			return false
		}
		idx := lv.IndexAt(y)
		if idx < 0 {
			return false
		}
		lv.SelectIndex(idx)
	default:
		return false
	}
	return true
}

// RenderedRows returns how many items the last Render drew on screen
func (lv *ListView) RenderedRows() int {
	return lv.renderedRows
}

// Render draws the visible slice of the list and its scrollbar
func (lv *ListView) Render(screen *Screen) {
	if lv.width <= 0 || lv.height <= 0 {
		lv.renderedRows = 0
		return
	}

	listWidth := lv.width
	if lv.width >= 2 {
		listWidth-- // scrollbar column
	}
	screen.Fill(lv.x, lv.y, listWidth, lv.height, ' ', screen.ListTextStyle())

	count := lv.source.Len()
	if count == 0 {
		lv.renderedRows = 0
		screen.DrawStringLimited(lv.x+1, lv.y, "No items", listWidth-1, screen.ListEmptyStyle())
		return
	}

	gutter := 0
	if lv.showIndex {
		gutter = len(strconv.Itoa(count)) + 1
	}
	textWidth := max(0, listWidth-gutter)

	height := lv.viewHeight()
	metrics := lv.engine.Metrics()
	rendered := 0
	for _, row := range virtual.Rows(lv.engine.Range(), metrics) {
		item := lv.source.At(row.Index)
		if item == nil {
			continue
		}
		top := int(row.Top) - lv.scrollTop
		if top+lv.itemHeight <= 0 || top >= height {
			// Overscan rows exist to be ready, not to be seen
			continue
		}
		rendered++
		lv.renderItem(screen, item, row.Index, top, height, listWidth, gutter, textWidth)
	}
	lv.renderedRows = rendered

	if lv.width >= 2 {
		renderScrollbar(screen, lv.x+lv.width-1, lv.y, height,
			metrics.TotalHeight, float64(height), float64(lv.scrollTop))
	}
}

func (lv *ListView) renderItem(screen *Screen, item *model.Item, index, top, height, listWidth, gutter, textWidth int) {
	style := screen.ListTextStyle()
	if index == lv.selected {
		style = screen.ListSelectedStyle()
	}

	lines := WrapToWidth(item.Text, textWidth)
	if len(lines) < lv.itemHeight && item.Detail != "" {
		lines = append(lines, WrapToWidth(item.Detail, textWidth)...)
	}

	for line := 0; line < lv.itemHeight; line++ {
		sy := top + line
		if sy < 0 || sy >= height {
			continue
		}
		rowY := lv.y + sy
		if index == lv.selected {
			screen.Fill(lv.x, rowY, listWidth, 1, ' ', style)
		}
		if line == 0 && gutter > 0 {
			num := fmt.Sprintf("%*d", gutter-1, index+1)
			screen.DrawString(lv.x, rowY, num, screen.ListIndexStyle())
		}
		if line < len(lines) {
			screen.DrawString(lv.x+gutter, rowY, lines[line], style)
		}
	}
}
