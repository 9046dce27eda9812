//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos

package phantom

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"
	"golang.org/x/sys/unix"
)

// PollingBackend is the reference Backend: it drains whatever bytes the input
// descriptor currently holds on every Tick and never blocks. The descriptor
// is switched to non-blocking mode at construction and its original flags are
// restored on Stop.
type PollingBackend struct {
	queue     *EventQueue
	parser    *InputParser
	file      *os.File
	fd        int
	origFlags int
	buf       []byte
	winch     chan os.Signal
	cont      chan os.Signal
	log       *slog.Logger
	stopped   bool
}

// NewPollingBackend wraps the given input file, typically os.Stdin
func NewPollingBackend(f *os.File, opts Options) (*PollingBackend, error) {
	fd := int(f.Fd())
	flags, err := unix.FcntlInt(f.Fd(), unix.F_GETFL, 0)
	if err != nil {
		return nil, fmt.Errorf("query input flags: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		return nil, fmt.Errorf("set input non-blocking: %w", err)
	}
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	cont := make(chan os.Signal, 1)
	signal.Notify(cont, syscall.SIGCONT)
	return &PollingBackend{
		queue:     NewEventQueue(opts.QueueCapacity),
		parser:    NewInputParser(opts.EscTimeout),
		file:      f,
		fd:        fd,
		origFlags: flags,
		buf:       make([]byte, 4096),
		winch:     winch,
		cont:      cont,
		log:       opts.logger(),
	}, nil
}

// Tick drains all currently available input in a read loop that stops
// cleanly on would-block, feeds the parser, and performs the once-per-tick
// pending flush. It reports whether any bytes were read or any event was
// flushed.
func (b *PollingBackend) Tick() (bool, error) {
	if b.stopped {
		return false, nil
	}
	activity := false
	now := time.Now()
	select {
	case <-b.winch:
		activity = true
		b.reportWinsize()
	default:
	}
	select {
	case <-b.cont:
		// Back in the foreground; the window may have changed while
		// we were stopped
		activity = true
		_ = b.queue.PushAuto(Resumed{})
		b.reportWinsize()
	default:
	}
	for {
		n, err := unix.Read(b.fd, b.buf)
		if n > 0 {
			activity = true
			b.parser.Feed(b.queue, b.buf[:n], now)
			continue
		}
		switch err {
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			// No data right now. EWOULDBLOCK is the same errno on
			// every supported platform.
		case nil:
			// Zero-byte read: the descriptor hit EOF
		default:
			return activity, fmt.Errorf("read input: %w", err)
		}
		break
	}
	if b.parser.FlushPending(b.queue, now) {
		activity = true
	}
	return activity, nil
}

func (b *PollingBackend) PopEvent() (QueuedEvent, bool) {
	return b.queue.PopEvent()
}

func (b *PollingBackend) PopCommands() []Command {
	return b.queue.PopCommands()
}

func (b *PollingBackend) Stats() QueueStats {
	return b.queue.Stats()
}

func (b *PollingBackend) PostEvent(ev Event, p Priority) error {
	return b.queue.PushEvent(ev, p)
}

func (b *PollingBackend) Post(ev Event) error {
	return b.queue.PushAuto(ev)
}

func (b *PollingBackend) PostCommand(cmd Command) error {
	return b.queue.PushCommand(cmd)
}

// reportWinsize posts a Resize event with the current terminal geometry
func (b *PollingBackend) reportWinsize() {
	ws, err := unix.IoctlGetWinsize(b.fd, unix.TIOCGWINSZ)
	if err != nil {
		b.log.Error("couldn't get winsize", "error", err)
		return
	}
	_ = b.queue.PushAuto(Resize{
		Cols:   int(ws.Col),
		Rows:   int(ws.Row),
		XPixel: int(ws.Xpixel),
		YPixel: int(ws.Ypixel),
	})
}

// Stop restores the descriptor's original flags and shuts the queue down.
// Stop is idempotent.
func (b *PollingBackend) Stop() error {
	if b.stopped {
		return nil
	}
	b.stopped = true
	signal.Stop(b.winch)
	signal.Stop(b.cont)
	b.queue.Shutdown()
	if _, err := unix.FcntlInt(b.file.Fd(), unix.F_SETFL, b.origFlags); err != nil {
		b.log.Warn("couldn't restore input flags", "error", err)
		return fmt.Errorf("restore input flags: %w", err)
	}
	return nil
}
