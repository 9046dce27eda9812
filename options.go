package phantom

import (
	"io"
	"time"

	"golang.org/x/exp/slog"
)

// Options provide construction parameters for the event loop, backend, and
// renderer. The zero value is usable: logs are discarded and every knob falls
// back to its default.
type Options struct {
	// Logger is an optional slog.Logger to log to. Stdlib levels are used
	// throughout.
	Logger *slog.Logger

	// TickInterval is the cadence of synthetic Tick events. Defaults to
	// DefaultTickInterval (120 ticks per second).
	TickInterval time.Duration

	// FrameBudget bounds how long one loop iteration may sleep. When zero
	// the budget tracks the tick interval.
	FrameBudget time.Duration

	// QueueCapacity bounds the event queue. Defaults to
	// DefaultQueueCapacity.
	QueueCapacity int

	// EscTimeout is the window in which a lone ESC may still turn out to
	// be the start of an escape sequence. Defaults to DefaultEscTimeout.
	// The effective resolution floor is the loop iteration interval.
	EscTimeout time.Duration

	// WidthMethod selects the display-width oracle for cell sizing.
	WidthMethod WidthMethod
}

// DefaultTickInterval is 120 ticks per second, frame-rate-class timing
const DefaultTickInterval = time.Second / 120

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (o Options) tickInterval() time.Duration {
	if o.TickInterval <= 0 {
		return DefaultTickInterval
	}
	return o.TickInterval
}
