// Package phantom provides the event scheduling pipeline and diff-based
// terminal renderer at the core of a terminal UI framework: an incremental
// input parser, a bounded priority queue, a frame-budgeted event loop, and a
// double-buffered cell renderer with raw-mode lifecycle management.
package phantom

import "time"

// Event is a structured input or scheduling event delivered to the
// application through the event loop. Concrete types are Key, Mouse, Paste,
// Tick, and the system events Resize, FocusIn, FocusOut, Suspended, and
// Resumed.
type Event interface{}

// Tick is a synthetic event delivered by the event loop at the configured
// tick interval. Applications typically draw and render in response to Tick.
type Tick struct {
	Time time.Time
}

// Resize is delivered whenever a window size change is detected (likely via
// SIGWINCH)
type Resize struct {
	Cols   int
	Rows   int
	XPixel int
	YPixel int
}

// Paste is delivered when a bracketed paste was detected. The value of Paste
// is the pasted content
type Paste string

// FocusIn is sent when the terminal has gained focus
type FocusIn struct{}

// FocusOut is sent when the terminal has lost focus
type FocusOut struct{}

// Suspended is sent when the application has been moved to the background
type Suspended struct{}

// Resumed is sent when the application has returned to the foreground
type Resumed struct{}

// Priority orders events in the queue. Higher priorities drain first; within
// one priority, events drain in arrival order.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// classify returns the scheduling priority for an event: system events are
// high, ticks are low, everything else is normal.
func classify(ev Event) Priority {
	switch ev.(type) {
	case Resize, FocusIn, FocusOut, Suspended, Resumed:
		return PriorityHigh
	case Tick:
		return PriorityLow
	default:
		return PriorityNormal
	}
}
