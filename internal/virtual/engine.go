package virtual

import (
	"errors"
	"fmt"
	"math"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

// ErrAlreadyAttached is returned when an engine is attached to a second container
var ErrAlreadyAttached = errors.New("engine already attached to a container")

// EventKind identifies a container event the engine listens to
type EventKind int

const (
	EventScroll EventKind = iota
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Container is the scrollable element hosting the list
type Container interface {
	// ScrollTop returns the current scroll offset in item-height units
	ScrollTop() float64
	// ClientHeight returns the visible height of the container
	ClientHeight() float64
	// Subscribe registers fn for events of the given kind and returns a
	// function that removes the registration
	Subscribe(kind EventKind, fn func()) (unsubscribe func(), err error)
}

// Options configures an Engine
type Options struct {
	// ItemHeight is the uniform height of every item, must be positive
	ItemHeight float64
	// Overscan is the number of items rendered beyond each visible edge
	Overscan int
	// ListHeight fixes the viewport height; zero measures the container
	ListHeight float64

	// Scheduler runs recomputations, Immediate when nil
	Scheduler Scheduler
	// Logger receives debug output, a no-op logger when nil
	Logger *zap.Logger
}

// DefaultOptions returns options for one-row items with the default overscan
func DefaultOptions() Options {
	return Options{
		ItemHeight: 1,
		Overscan:   DefaultOverscan,
	}
}

// Validate checks the values the range computation depends on
func (o Options) Validate() error {
	if !validHeight(o.ItemHeight) {
		return fmt.Errorf("%w: item height must be positive, got %v", ErrInvalidConfiguration, o.ItemHeight)
	}
	if o.Overscan < 0 {
		return fmt.Errorf("%w: overscan must not be negative, got %d", ErrInvalidConfiguration, o.Overscan)
	}
	if o.ListHeight < 0 || math.IsNaN(o.ListHeight) || math.IsInf(o.ListHeight, 0) {
		return fmt.Errorf("%w: list height must be zero or positive, got %v", ErrInvalidConfiguration, o.ListHeight)
	}
	return nil
}

// Detach releases the listeners acquired by Attach. Calling it more than
// once is harmless.
type Detach func()

// attachment is one Attach call; handlers check active so events from an
// orphaned container are ignored even if it never unsubscribes them
type attachment struct {
	container   Container
	onChange    func(VisibleRange)
	unsubscribe []func()
	active      bool
}

func (a *attachment) release() {
	a.active = false
	for i := len(a.unsubscribe) - 1; i >= 0; i-- {
		a.unsubscribe[i]()
	}
	a.unsubscribe = nil
}

// Engine tracks the viewport of one container and keeps the visible range
// current as the container scrolls, resizes or the item count changes.
// All methods must be called from the goroutine that delivers container events.
type Engine struct {
	opts      Options
	scheduler Scheduler
	log       *zap.Logger

	itemCount int
	viewport  ViewportState
	measured  bool
	rng       VisibleRange
	notified  VisibleRange

	current *attachment
}

// New creates an engine for itemCount items
func New(itemCount int, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if itemCount < 0 {
		itemCount = 0
	}

	e := &Engine{
		opts:      opts,
		scheduler: opts.Scheduler,
		log:       opts.Logger,
		itemCount: itemCount,
	}
	if e.scheduler == nil {
		e.scheduler = Immediate{}
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	e.rng = InitialRange(itemCount)
	e.notified = e.rng
	return e, nil
}

// Range returns the current visible range
func (e *Engine) Range() VisibleRange {
	return e.rng
}

// Metrics returns the layout metrics for the current range
func (e *Engine) Metrics() LayoutMetrics {
	return ComputeLayoutMetrics(e.itemCount, e.opts.ItemHeight, e.opts.Overscan, e.rng)
}

// Viewport returns the last sampled viewport
func (e *Engine) Viewport() ViewportState {
	return e.viewport
}

// ItemCount returns the number of items the engine computes for
func (e *Engine) ItemCount() int {
	return e.itemCount
}

// Options returns the engine's configuration
func (e *Engine) Options() Options {
	return e.opts
}

// Attached reports whether the engine currently listens to a container
func (e *Engine) Attached() bool {
	return e.current != nil
}

// Attach starts listening to scroll and resize events on c and calls
// onRangeChange whenever a recomputation changes the visible range.
// The container is measured once right away.
func (e *Engine) Attach(c Container, onRangeChange func(VisibleRange)) (Detach, error) {
	if c == nil {
		return nil, ErrNilContainer
	}
	if e.current != nil {
		return nil, ErrAlreadyAttached
	}

	att := &attachment{
		container: c,
		onChange:  onRangeChange,
		active:    true,
	}

	ok := false
	defer func() {
		// Covers both a returned error and a panicking Subscribe
		if !ok {
			att.release()
		}
	}()

	for _, kind := range []EventKind{EventScroll, EventResize} {
		unsub, err := c.Subscribe(kind, func() { e.handleEvent(att, kind) })
		if err != nil {
			return nil, fmt.Errorf("failed to subscribe to %s events: %w", kind, err)
		}
		if unsub != nil {
			att.unsubscribe = append(att.unsubscribe, unsub)
		}
	}
	ok = true

	e.current = att
	e.log.Debug("attached to container",
		zap.Int("items", e.itemCount),
		zap.Float64("itemHeight", e.opts.ItemHeight),
		zap.Int("overscan", e.opts.Overscan))

	e.request(att)

	return func() { e.detach(att) }, nil
}

func (e *Engine) detach(att *attachment) {
	if !att.active {
		return
	}
	att.release()
	if e.current == att {
		e.current = nil
	}
	e.log.Debug("detached from container")
}

func (e *Engine) handleEvent(att *attachment, kind EventKind) {
	if !att.active {
		return
	}
	e.log.Debug("container event", zap.Stringer("kind", kind))
	e.request(att)
}

// request schedules a recomputation for att
func (e *Engine) request(att *attachment) {
	e.scheduler.Schedule(func() {
		if !att.active {
			return
		}
		e.sample(att.container)
		e.update(att)
	})
}

// sample reads the viewport from the container
func (e *Engine) sample(c Container) {
	height := e.opts.ListHeight
	if height <= 0 {
		height = c.ClientHeight()
	}
	e.viewport = ViewportState{
		ScrollOffset:   c.ScrollTop(),
		ViewportHeight: height,
	}
	e.measured = true
}

// update recomputes the range from the stored viewport and notifies att
// when it differs from the last range reported
func (e *Engine) update(att *attachment) {
	e.recompute()
	if att == nil || !att.active || e.rng == e.notified {
		return
	}
	e.notified = e.rng
	e.log.Debug("visible range changed",
		zap.Int("start", e.rng.StartIndex),
		zap.Int("end", e.rng.EndIndex),
		zap.Float64("scrollOffset", e.viewport.ScrollOffset),
		zap.Float64("viewportHeight", e.viewport.ViewportHeight))
	if att.onChange != nil {
		att.onChange(e.rng)
	}
}

func (e *Engine) recompute() {
	if !e.measured {
		e.rng = InitialRange(e.itemCount)
		return
	}
	r, err := ComputeVisibleRange(e.itemCount, e.opts.ItemHeight, e.opts.Overscan,
		e.viewport.ScrollOffset, e.viewport.ViewportHeight)
	if err != nil {
		// Options are validated on every change, so this means a bug
		e.log.Error("range computation failed", zap.Error(err))
		return
	}
	e.rng = r
}

// Recompute samples the attached container and updates the range right
// away, bypassing the scheduler
func (e *Engine) Recompute() {
	if e.current == nil {
		e.recompute()
		return
	}
	e.sample(e.current.container)
	e.update(e.current)
}

// SetItemCount changes the number of items. The current range is clipped
// immediately and a full recomputation is scheduled.
func (e *Engine) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	if n == e.itemCount {
		return
	}
	e.itemCount = n
	e.rng = clipRange(e.rng, n)
	e.refresh()
}

// SetOverscan changes the overscan buffer size
func (e *Engine) SetOverscan(overscan int) error {
	opts := e.opts
	opts.Overscan = overscan
	if err := opts.Validate(); err != nil {
		return err
	}
	e.opts = opts
	e.refresh()
	return nil
}

// SetItemHeight changes the uniform item height
func (e *Engine) SetItemHeight(h float64) error {
	opts := e.opts
	opts.ItemHeight = h
	if err := opts.Validate(); err != nil {
		return err
	}
	e.opts = opts
	e.refresh()
	return nil
}

// SetListHeight fixes the viewport height, zero measures the container
func (e *Engine) SetListHeight(h float64) error {
	opts := e.opts
	opts.ListHeight = h
	if err := opts.Validate(); err != nil {
		return err
	}
	e.opts = opts
	e.refresh()
	return nil
}

func (e *Engine) refresh() {
	if e.current != nil {
		e.request(e.current)
		return
	}
	e.recompute()
}

func clipRange(r VisibleRange, n int) VisibleRange {
	r.EndIndex = min(r.EndIndex, n)
	r.StartIndex = min(r.StartIndex, r.EndIndex)
	return r
}

// engineState is the printable part of an Engine
type engineState struct {
	ItemCount  int
	ItemHeight float64
	Overscan   int
	ListHeight float64
	Viewport   ViewportState
	Measured   bool
	Range      VisibleRange
	Metrics    LayoutMetrics
	Attached   bool
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// DebugDump returns a readable dump of the engine state for debug logs
func (e *Engine) DebugDump() string {
	return dumpConfig.Sdump(engineState{
		ItemCount:  e.itemCount,
		ItemHeight: e.opts.ItemHeight,
		Overscan:   e.opts.Overscan,
		ListHeight: e.opts.ListHeight,
		Viewport:   e.viewport,
		Measured:   e.measured,
		Range:      e.rng,
		Metrics:    e.Metrics(),
		Attached:   e.current != nil,
	})
}
