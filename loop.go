package phantom

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/slog"
)

// ErrAlreadyRunning is returned by Run when the loop is already running
var ErrAlreadyRunning = errors.New("event loop is already running")

// Handler receives dispatched events. Returning stop = true consumes the
// event, halts its dispatch, and flags the loop to exit. A non-nil error
// aborts the current Run call.
type Handler func(Event) (stop bool, err error)

// EventLoop is the scheduler: it owns a Backend and an ordered handler
// chain, and runs fixed-budget iterations of ingest, dispatch, metrics, and
// tick-or-sleep. Run is a plain blocking call; host it in a goroutine or a
// task group if the application needs the loop off its main thread.
type EventLoop struct {
	backend  Backend
	handlers []Handler
	log      *slog.Logger

	running atomic.Bool

	mu             sync.Mutex
	tickInterval   time.Duration
	budgetOverride time.Duration // 0 means track the tick interval
	metrics        Metrics
	framesOver     uint64
}

// NewEventLoop builds a loop around the given backend. The backend and the
// loop live and die together: Stop shuts both down.
func NewEventLoop(backend Backend, opts Options) *EventLoop {
	return &EventLoop{
		backend:        backend,
		log:            opts.logger(),
		tickInterval:   opts.tickInterval(),
		budgetOverride: opts.FrameBudget,
	}
}

// AddHandler appends a handler to the chain. Events are offered to handlers
// in registration order.
func (l *EventLoop) AddHandler(h Handler) {
	l.handlers = append(l.handlers, h)
}

// SetTickInterval changes the synthetic tick cadence. Without a frame budget
// override, the budget follows.
func (l *EventLoop) SetTickInterval(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d > 0 {
		l.tickInterval = d
	}
}

// TickInterval returns the current synthetic tick cadence
func (l *EventLoop) TickInterval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tickInterval
}

// SetFrameBudget overrides the frame budget independently of the tick
// interval. A zero or negative value clears the override, reverting the
// budget to tracking the tick interval — including across later
// SetTickInterval calls.
func (l *EventLoop) SetFrameBudget(d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d <= 0 {
		l.budgetOverride = 0
		return
	}
	l.budgetOverride = d
}

// FrameBudget returns the effective frame budget: the explicit override if
// one is set, the tick interval otherwise. The budget bounds only the
// iteration's sleep; work is never gated or skipped by it.
func (l *EventLoop) FrameBudget() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frameBudgetLocked()
}

func (l *EventLoop) frameBudgetLocked() time.Duration {
	if l.budgetOverride > 0 {
		return l.budgetOverride
	}
	return l.tickInterval
}

// Metrics returns the snapshot computed by the most recent iteration
func (l *EventLoop) Metrics() Metrics {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.metrics
}

// Stop flags the loop to exit and forwards shutdown to the backend. Safe to
// call from inside a handler — it takes effect once the current dispatch
// pass completes — or from any other goroutine.
func (l *EventLoop) Stop() {
	l.running.Store(false)
	if err := l.backend.Stop(); err != nil {
		l.log.Warn("backend stop", "error", err)
	}
}

// Run operates the loop until Stop is called, a handler requests exit, or a
// fatal error surfaces. Each iteration ingests input, drains every queued
// event in priority order, recomputes metrics, then either dispatches a
// synthetic Tick or sleeps for the smaller of the remaining tick interval
// and the remaining frame budget. The sleep is skipped entirely on
// iterations that saw input, so a burst never pays added latency.
func (l *EventLoop) Run() error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	lastTick := time.Now()
	for l.running.Load() {
		start := time.Now()

		activity, err := l.backend.Tick()
		if err != nil {
			return err
		}

		exit, err := l.drain()
		if err != nil {
			return err
		}
		if exit {
			l.Stop()
			return nil
		}

		l.observe(time.Since(start))

		now := time.Now()
		if now.Sub(lastTick) >= l.TickInterval() {
			lastTick = now
			exit, err = l.dispatch(Tick{Time: now})
			if err != nil {
				return err
			}
			if exit {
				l.Stop()
				return nil
			}
			continue
		}

		if activity {
			continue
		}
		remTick := l.TickInterval() - time.Since(lastTick)
		remBudget := l.FrameBudget() - time.Since(start)
		sleep := remTick
		if remBudget < sleep {
			sleep = remBudget
		}
		if sleep > 0 {
			time.Sleep(sleep)
		}
	}
	return nil
}

// drain dispatches every event queued before this pass began, in priority
// order with arrival-order ties.
func (l *EventLoop) drain() (bool, error) {
	for {
		qe, ok := l.backend.PopEvent()
		if !ok {
			return false, nil
		}
		stop, err := l.dispatch(qe.Event)
		if err != nil {
			return false, err
		}
		if stop {
			return true, nil
		}
	}
}

// dispatch offers one event to the handler chain in registration order. The
// first handler to request exit ends dispatch for this event.
func (l *EventLoop) dispatch(ev Event) (bool, error) {
	for _, h := range l.handlers {
		stop, err := h(ev)
		if err != nil {
			return false, err
		}
		if stop {
			return true, nil
		}
	}
	return false, nil
}

// observe recomputes the metrics snapshot from this iteration's elapsed work
// time and the queue's stats.
func (l *EventLoop) observe(elapsed time.Duration) {
	stats := l.backend.Stats()
	l.mu.Lock()
	defer l.mu.Unlock()
	budget := l.frameBudgetLocked()
	if elapsed > budget {
		l.framesOver += 1
		l.log.Debug("frame over budget",
			"elapsed", elapsed, "budget", budget)
	}
	l.metrics = Metrics{
		LastFrame:        elapsed,
		FrameBudget:      budget,
		QueueDepth:       stats.EventCount,
		CommandsPending:  stats.CommandCount,
		DroppedEvents:    stats.DroppedEvents,
		PeakQueueDepth:   stats.PeakEventCount,
		FramesOverBudget: l.framesOver,
	}
}
