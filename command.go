package phantom

// Command is an output produced by an event handler during dispatch. The core
// queues Commands in FIFO order but never interprets them: the embedding
// application drains them after each iteration and acts on the ones it
// understands.
type Command interface{}

// WriteStdout asks the application to write raw bytes to the terminal
type WriteStdout []byte

// Redraw asks the application to compose and render a new frame
type Redraw struct{}

// SetTitle asks the application to retitle the terminal window (OSC 2)
type SetTitle string

// Notify asks the application to post a desktop notification (OSC 9 or 777)
type Notify struct {
	Title string
	Body  string
}

// RequestFocus asks the application to bring the terminal window forward
type RequestFocus struct{}

// CopyToClipboard asks the application to place content on the system
// clipboard (OSC 52)
type CopyToClipboard string

// QueryColor asks the application to query the terminal for the value of a
// palette index (OSC 4)
type QueryColor uint8
