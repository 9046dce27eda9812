package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/phantomtui/phantom"
	"golang.org/x/exp/slog"
)

func main() {
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	opts := phantom.Options{
		TickInterval: time.Second / 60,
	}
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		handler := tint.NewHandler(f, &tint.Options{
			AddSource:  true,
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05.000",
			NoColor:    true,
		})
		opts.Logger = slog.New(handler)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type model struct {
	renderer *phantom.Renderer
	backend  phantom.Backend
	status   string
	mouse    string
	ticks    uint64
}

func run(opts phantom.Options) error {
	renderer := phantom.NewRenderer(os.Stdout, opts)
	if err := renderer.EnterRawMode(); err != nil {
		return err
	}
	defer renderer.ExitRawMode()

	backend, err := phantom.NewPollingBackend(os.Stdin, opts)
	if err != nil {
		return err
	}

	loop := phantom.NewEventLoop(backend, opts)
	m := &model{
		renderer: renderer,
		backend:  backend,
		status:   "press q or <c-c> to quit",
	}
	loop.AddHandler(m.update)

	if err := backend.PostCommand(phantom.SetTitle("phantom demo")); err != nil {
		return err
	}

	return loop.Run()
}

// runCommands drains and acts on the commands handlers have queued
func (m *model) runCommands() {
	for _, cmd := range m.backend.PopCommands() {
		switch cmd := cmd.(type) {
		case phantom.SetTitle:
			m.renderer.SetTitle(string(cmd))
		case phantom.WriteStdout:
			os.Stdout.Write(cmd)
		}
	}
}

func (m *model) update(ev phantom.Event) (bool, error) {
	switch ev := ev.(type) {
	case phantom.Key:
		switch ev.String() {
		case "q", "<c-c>":
			return true, nil
		}
		m.status = "key: " + ev.String()
	case phantom.Mouse:
		m.mouse = fmt.Sprintf("mouse: button %d at %d,%d", ev.Button, ev.Col, ev.Row)
	case phantom.Paste:
		m.status = fmt.Sprintf("pasted %d bytes", len(ev))
	case phantom.Resize:
		m.renderer.Resize(ev.Cols, ev.Rows)
	case phantom.FocusIn:
		m.status = "focused"
	case phantom.FocusOut:
		m.status = "unfocused"
	case phantom.Tick:
		m.ticks += 1
		m.runCommands()
		m.draw()
		return false, m.renderer.Render()
	}
	return false, nil
}

func (m *model) draw() {
	cols, rows := m.renderer.Size()
	for row := 0; row < rows; row += 1 {
		for col := 0; col < cols; col += 1 {
			m.renderer.SetCell(col, row, phantom.Cell{})
		}
	}

	title := phantom.Style{Attribute: phantom.AttrBold}
	dim := phantom.Style{Attribute: phantom.AttrDim}
	m.renderer.WriteString(2, 1, "phantom", title)
	m.renderer.WriteString(2, 3, m.status, phantom.Style{})
	m.renderer.WriteString(2, 4, m.mouse, phantom.Style{})
	m.renderer.WriteString(2, rows-2, fmt.Sprintf("ticks: %d", m.ticks), dim)
	m.renderer.HideCursor()
}
