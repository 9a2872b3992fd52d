package main

import (
	"bytes"
	"errors"
	"flag"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/tiff"

	"odcview/internal/display"
	"odcview/internal/xr"
)

func bandsDataset(t *testing.T) *xr.Dataset {
	t.Helper()
	ds := xr.NewDataset()
	for _, name := range []string{"red", "green", "blue"} {
		a, err := xr.FromValues(xr.Uint16, []string{"y", "x"}, []int{1, 2}, []float64{10, 20})
		if err != nil {
			t.Fatal(err)
		}
		a.Name = name
		if err := ds.Add(a); err != nil {
			t.Fatal(err)
		}
	}
	return ds
}

func clampFlags(t *testing.T, args ...string) (*flag.FlagSet, float64) {
	t.Helper()
	fs := flag.NewFlagSet("png", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	clamp := fs.Float64("clamp", 0, "")
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs, *clamp
}

func TestRGBAOptionsClamp(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr bool
		want    float64 // red value of pixel (0, 1)
	}{
		{nil, false, 255},
		{[]string{"-clamp", "40"}, false, 127},
		{[]string{"-clamp", "-5"}, true, 0},
		{[]string{"-clamp", "0"}, true, 0},
	}
	for _, tt := range tests {
		fs, clamp := clampFlags(t, tt.args...)
		out, err := display.ToRGBA(bandsDataset(t), rgbaOptions(fs, clamp)...)
		if tt.wantErr {
			if !errors.Is(err, display.ErrZeroClamp) {
				t.Errorf("%v: err = %v, want ErrZeroClamp", tt.args, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%v: %v", tt.args, err)
		}
		if got := out.At(0, 1, 0); got != tt.want {
			t.Errorf("%v: red = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestRunPNGWritesAndLogs(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{200, 100, 50, 255})
	src := filepath.Join(dir, "scene.tif")
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	display.SetLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))
	defer display.SetLogger(nil)

	if err := runPNG([]string{"-o", dir, src}); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "scene.png")
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("png not written: %v", err)
	}
	if !strings.Contains(logs.String(), "wrote png") || !strings.Contains(logs.String(), out) {
		t.Errorf("log = %q, want a wrote png record for %s", logs.String(), out)
	}
}
