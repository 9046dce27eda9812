package phantom

import (
	"errors"
	"sort"
	"sync"
)

// ErrQueueShutdown is returned by pushes after Shutdown has been called
var ErrQueueShutdown = errors.New("queue is shut down")

// DefaultQueueCapacity bounds the event queue when Options.QueueCapacity is
// zero
const DefaultQueueCapacity = 1024

// QueuedEvent is an event annotated with its scheduling priority and the
// sequence number assigned when it entered the queue. Sequence numbers break
// ties within one priority in arrival order.
type QueuedEvent struct {
	Event    Event
	Priority Priority
	seq      uint64
}

// QueueStats is a point-in-time snapshot of queue occupancy and backpressure
// accounting. EventCount never exceeds the configured capacity.
type QueueStats struct {
	EventCount     int
	PeakEventCount int
	DroppedEvents  uint64
	CommandCount   int
}

// EventQueue is a bounded, priority-ordered holding area for pending events,
// with an independent FIFO for outgoing commands. When full it sheds the
// lowest-priority, oldest entry rather than growing; drops are visible only
// through Stats.
//
// The queue carries its own lock so a threaded backend substitute can share
// it with the dispatching loop.
type EventQueue struct {
	mu       sync.Mutex
	events   []QueuedEvent // ordered by (priority desc, seq asc)
	commands []Command
	capacity int
	seq      uint64
	peak     int
	dropped  uint64
	shutdown bool
}

// NewEventQueue returns a queue holding at most capacity events. A capacity
// below one falls back to DefaultQueueCapacity.
func NewEventQueue(capacity int) *EventQueue {
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}
	return &EventQueue{
		capacity: capacity,
		events:   make([]QueuedEvent, 0, capacity),
	}
}

// PushEvent inserts an event honoring priority ordering. If the queue is at
// capacity, the lowest-priority, oldest entry is evicted — the incoming event
// itself, if nothing queued ranks below it — and exactly one drop is
// recorded.
func (q *EventQueue) PushEvent(ev Event, p Priority) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return ErrQueueShutdown
	}

	if len(q.events) >= q.capacity {
		q.dropped += 1
		lowest := q.events[len(q.events)-1].Priority
		if p < lowest {
			// The incoming event is the lowest-priority candidate
			return nil
		}
		// Evict the oldest entry of the lowest priority. The slice is
		// ordered, so that is the first entry of the trailing
		// lowest-priority run.
		evict := sort.Search(len(q.events), func(i int) bool {
			return q.events[i].Priority <= lowest
		})
		q.events = append(q.events[:evict], q.events[evict+1:]...)
	}

	q.seq += 1
	qe := QueuedEvent{Event: ev, Priority: p, seq: q.seq}
	// Insert after every entry of equal or higher priority
	at := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Priority < p
	})
	q.events = append(q.events, QueuedEvent{})
	copy(q.events[at+1:], q.events[at:])
	q.events[at] = qe

	if len(q.events) > q.peak {
		q.peak = len(q.events)
	}
	return nil
}

// PushAuto inserts an event with its auto-classified priority: system events
// high, ticks low, input events normal.
func (q *EventQueue) PushAuto(ev Event) error {
	return q.PushEvent(ev, classify(ev))
}

// PopEvent removes and returns the highest-priority, earliest-queued event
func (q *EventQueue) PopEvent() (QueuedEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return QueuedEvent{}, false
	}
	qe := q.events[0]
	q.events = q.events[1:]
	return qe, true
}

// PushCommand appends a command to the outgoing FIFO
func (q *EventQueue) PushCommand(cmd Command) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.shutdown {
		return ErrQueueShutdown
	}
	q.commands = append(q.commands, cmd)
	return nil
}

// PopCommands transfers the entire pending command batch to the caller in
// FIFO order. It returns nil when no commands are pending.
func (q *EventQueue) PopCommands() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.commands) == 0 {
		return nil
	}
	batch := q.commands
	q.commands = nil
	return batch
}

// Stats returns a snapshot of queue occupancy and drop accounting
func (q *EventQueue) Stats() QueueStats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QueueStats{
		EventCount:     len(q.events),
		PeakEventCount: q.peak,
		DroppedEvents:  q.dropped,
		CommandCount:   len(q.commands),
	}
}

// Shutdown stops the queue accepting new events and commands. Entries already
// queued remain poppable so an in-flight drain can complete.
func (q *EventQueue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shutdown = true
}
