package progress

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Display is a running progress widget.
type Display struct {
	p    *tea.Program
	ui   *UI
	done chan error

	once sync.Once
	err  error
}

// WithUI shows a progress widget in a bubbletea program and returns a
// callback feeding it. The program exits once a callback reports
// n >= total, on ctrl+c, or on Close.
func WithUI(width string, opts ...tea.ProgramOption) (Callback, *Display) {
	ui, _ := NewUI(width)
	d := &Display{
		p:    tea.NewProgram(ui, opts...),
		ui:   ui,
		done: make(chan error, 1),
	}
	go func() {
		_, err := d.p.Run()
		d.done <- err
	}()
	cbk := func(n, total int) {
		d.p.Send(Msg{N: n, Total: total})
	}
	return cbk, d
}

// Wait blocks until the program exits.
func (d *Display) Wait() error {
	d.once.Do(func() { d.err = <-d.done })
	return d.err
}

// Close stops the program and waits for it.
func (d *Display) Close() error {
	d.p.Quit()
	return d.Wait()
}

// UI returns the widget. Read it only after Wait returns.
func (d *Display) UI() *UI { return d.ui }
