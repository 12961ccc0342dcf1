package virtual

// Scheduler decides when a requested recomputation runs
type Scheduler interface {
	Schedule(fn func())
}

// Immediate runs every scheduled function synchronously
type Immediate struct{}

// Schedule runs fn right away
func (Immediate) Schedule(fn func()) {
	fn()
}

// FrameBatcher coalesces scheduled functions until the next frame boundary.
// Only the most recently scheduled function runs on Flush; recomputation
// reads the final viewport state so earlier requests are redundant.
//
// FrameBatcher is not safe for concurrent use; schedule and flush from the
// same goroutine that delivers container events.
type FrameBatcher struct {
	pending   func()
	coalesced int
}

// NewFrameBatcher creates an empty batcher
func NewFrameBatcher() *FrameBatcher {
	return &FrameBatcher{}
}

// Schedule replaces any pending function with fn
func (b *FrameBatcher) Schedule(fn func()) {
	if b.pending != nil {
		b.coalesced++
	}
	b.pending = fn
}

// Pending reports whether a function is waiting for the next flush
func (b *FrameBatcher) Pending() bool {
	return b.pending != nil
}

// Coalesced returns how many scheduled functions were superseded so far
func (b *FrameBatcher) Coalesced() int {
	return b.coalesced
}

// Flush runs the pending function, if any. It reports whether one ran.
func (b *FrameBatcher) Flush() bool {
	fn := b.pending
	if fn == nil {
		return false
	}
	b.pending = nil
	fn()
	return true
}
