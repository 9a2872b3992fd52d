// Package progress builds progress reporters for long dataset loads: a
// terminal widget driven by a callback, and a plain line printer.
package progress

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"odcview/internal/display"
)

// Callback reports that n of total items are done.
type Callback func(n, total int)

// Msg carries a progress update into a running UI.
type Msg struct {
	N, Total int
}

const defaultTermWidth = 80

var (
	rateStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"})
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E6E6E6")).Bold(true)
)

// UI is the progress widget: a "FPS / n of total" info row above a bar.
// It is owned by whoever holds its callback and is not safe for
// concurrent use.
type UI struct {
	widthSpec string
	width     int

	bar   progress.Model
	start time.Time
	now   func() time.Time

	n, total int
	rate     float64
	left     string
	right    string
}

// NewUI creates the widget and the callback that updates it. width is a
// ParseWidth spec; an invalid spec falls back to the full width.
func NewUI(width string) (*UI, Callback) {
	u := newUI(width, time.Now)
	return u, u.Report
}

func newUI(width string, now func() time.Time) *UI {
	u := &UI{
		widthSpec: width,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		now:       now,
		start:     now(),
	}
	u.resize(defaultTermWidth)
	return u
}

func (u *UI) resize(termWidth int) {
	w, err := ParseWidth(u.widthSpec, termWidth)
	if err != nil {
		display.Logger().Warn("progress: using full width", "err", err)
		w = max(termWidth, 1)
	}
	u.width = w
	u.bar.Width = w
}

// Report records that n of total items are done. The rate is n divided by
// the seconds since the widget was created, or 0 before any time passed.
func (u *UI) Report(n, total int) {
	elapsed := u.now().Sub(u.start).Seconds()
	u.n, u.total = n, total
	u.rate = 0
	if elapsed > 0 {
		u.rate = float64(n) / elapsed
	}
	u.right = fmt.Sprintf("%d of %d", n, total)
	u.left = fmt.Sprintf("FPS: %.1f", u.rate)
}

// Rate returns the items per second computed by the last Report.
func (u *UI) Rate() float64 { return u.rate }

// Labels returns the left (rate) and right (count) info labels.
func (u *UI) Labels() (left, right string) { return u.left, u.right }

// Percent returns the bar fill in [0, 1].
func (u *UI) Percent() float64 {
	if u.total <= 0 {
		return 0
	}
	p := float64(u.n) / float64(u.total)
	return min(max(p, 0), 1)
}

// Width returns the resolved widget width in cells.
func (u *UI) Width() int { return u.width }

func (u *UI) Init() tea.Cmd { return nil }

func (u *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.resize(msg.Width)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return u, tea.Quit
		}
	case Msg:
		u.Report(msg.N, msg.Total)
		if msg.Total > 0 && msg.N >= msg.Total {
			return u, tea.Quit
		}
	}
	return u, nil
}

func (u *UI) View() string {
	left := rateStyle.Render(u.left)
	right := countStyle.Render(u.right)
	gap := max(1, u.width-lipgloss.Width(left)-lipgloss.Width(right))
	info := lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
	return lipgloss.JoinVertical(lipgloss.Left, info, u.bar.ViewAs(u.Percent())) + "\n"
}

// Simple returns a callback printing "\r   n of total" to w.
func Simple(w io.Writer) Callback {
	return func(n, total int) {
		fmt.Fprintf(w, "\r%4d of %4d", n, total)
	}
}
