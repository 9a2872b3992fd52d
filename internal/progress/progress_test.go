package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestReportRate(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	u := newUI("100%", clk.now)

	clk.t = clk.t.Add(2 * time.Second)
	u.Report(5, 20)
	left, right := u.Labels()
	if left != "FPS: 2.5" {
		t.Errorf("left label = %q, want %q", left, "FPS: 2.5")
	}
	if right != "5 of 20" {
		t.Errorf("right label = %q, want %q", right, "5 of 20")
	}
	if got := u.Percent(); got != 0.25 {
		t.Errorf("Percent = %v, want 0.25", got)
	}
}

func TestReportZeroElapsed(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	u := newUI("", clk.now)
	u.Report(3, 10)
	if u.Rate() != 0 {
		t.Errorf("Rate = %v, want 0", u.Rate())
	}
	if left, _ := u.Labels(); left != "FPS: 0.0" {
		t.Errorf("left label = %q", left)
	}
}

func TestPercentBounds(t *testing.T) {
	u := newUI("", time.Now)
	u.Report(5, 0)
	if u.Percent() != 0 {
		t.Errorf("Percent with zero total = %v", u.Percent())
	}
	u.Report(12, 10)
	if u.Percent() != 1 {
		t.Errorf("Percent overflow = %v", u.Percent())
	}
}

func TestWindowResize(t *testing.T) {
	u := newUI("50%", time.Now)
	if u.Width() != 40 {
		t.Errorf("default width = %d, want 40", u.Width())
	}
	u.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if u.Width() != 60 {
		t.Errorf("resized width = %d, want 60", u.Width())
	}
	u.Report(1, 2)
	view := u.View()
	if !strings.Contains(view, "1 of 2") || !strings.Contains(view, "FPS:") {
		t.Errorf("view missing labels:\n%s", view)
	}
}

func TestBadWidthFallsBack(t *testing.T) {
	u := newUI("200px", time.Now)
	if u.Width() != defaultTermWidth {
		t.Errorf("width = %d, want %d", u.Width(), defaultTermWidth)
	}
}

func TestUpdateQuitsWhenDone(t *testing.T) {
	u := newUI("", time.Now)
	if _, cmd := u.Update(Msg{N: 1, Total: 2}); cmd != nil {
		t.Error("partial progress returned a command")
	}
	_, cmd := u.Update(Msg{N: 2, Total: 2})
	if cmd == nil {
		t.Fatal("final progress returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("final progress did not quit")
	}
}

func TestSimple(t *testing.T) {
	var buf bytes.Buffer
	cbk := Simple(&buf)
	cbk(3, 120)
	cbk(120, 120)
	if got, want := buf.String(), "\r   3 of  120\r 120 of  120"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestParseWidth(t *testing.T) {
	tests := []struct {
		spec  string
		total int
		want  int
	}{
		{"", 80, 80},
		{"100%", 80, 80},
		{"80%", 100, 80},
		{"33%", 10, 3},
		{"1%", 10, 1},
		{"60", 80, 60},
		{"30ch", 80, 30},
	}
	for _, tt := range tests {
		got, err := ParseWidth(tt.spec, tt.total)
		if err != nil || got != tt.want {
			t.Errorf("ParseWidth(%q, %d) = %d, %v; want %d", tt.spec, tt.total, got, err, tt.want)
		}
	}
	for _, bad := range []string{"200px", "0", "-3", "120%", "abc%", "30em"} {
		if _, err := ParseWidth(bad, 80); !errors.Is(err, ErrBadWidth) {
			t.Errorf("ParseWidth(%q) err = %v, want ErrBadWidth", bad, err)
		}
	}
}

func TestWithUI(t *testing.T) {
	var out bytes.Buffer
	cbk, d := WithUI("100%",
		tea.WithInput(&bytes.Buffer{}),
		tea.WithOutput(&out),
		tea.WithoutSignalHandler(),
	)
	cbk(1, 3)
	cbk(3, 3)

	errc := make(chan error, 1)
	go func() { errc <- d.Wait() }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("program did not exit")
	}
	if _, right := d.UI().Labels(); right != "3 of 3" {
		t.Errorf("right label = %q", right)
	}
}
