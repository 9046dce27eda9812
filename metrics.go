package phantom

import "time"

// Metrics is a per-iteration snapshot of scheduler health, recomputed once
// per loop pass from elapsed wall time and the queue's stats.
type Metrics struct {
	// LastFrame is the wall-clock duration of the most recent iteration's
	// work, excluding the trailing sleep
	LastFrame time.Duration
	// FrameBudget is the budget the iteration was measured against
	FrameBudget time.Duration
	// QueueDepth is the number of events still pending
	QueueDepth int
	// CommandsPending is the number of undrained commands
	CommandsPending int
	// DroppedEvents counts backpressure drops over the loop's lifetime
	DroppedEvents uint64
	// PeakQueueDepth is the high-water mark of pending events
	PeakQueueDepth int
	// FramesOverBudget counts iterations whose work exceeded the budget
	FramesOverBudget uint64
}
