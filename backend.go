package phantom

// Backend ingests OS input and exposes queue operations to the event loop.
// The loop stays backend-agnostic: a higher-throughput implementation — one
// integrated with an OS readiness facility, or a threaded reader — can stand
// in for PollingBackend without touching the scheduler, provided it honors
// the same contract.
type Backend interface {
	// Tick ingests any currently available input and resolves pending
	// parser timeouts. It reports whether anything happened, which the
	// loop uses to decide whether sleeping is safe this iteration. Errors
	// are fatal to the loop; transient I/O conditions are absorbed.
	Tick() (bool, error)

	// PopEvent removes and returns the highest-priority pending event
	PopEvent() (QueuedEvent, bool)

	// PopCommands transfers the pending command batch to the caller
	PopCommands() []Command

	// Stats snapshots the underlying queue
	Stats() QueueStats

	// PostEvent queues an event at an explicit priority
	PostEvent(ev Event, p Priority) error

	// Post queues an event at its auto-classified priority
	Post(ev Event) error

	// PostCommand appends to the outgoing command FIFO
	PostCommand(cmd Command) error

	// Stop shuts the backend down: ingestion ceases and the queue stops
	// accepting new events, while already-queued entries remain poppable
	// so a final drain can complete.
	Stop() error
}
