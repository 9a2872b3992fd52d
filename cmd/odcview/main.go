package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"odcview/internal/display"
	"odcview/internal/geom"
	"odcview/internal/progress"
	"odcview/internal/raster"
	"odcview/internal/tui"
)

const usage = `usage: odcview [-v] <command> [args]

commands:
  geojson DOC...                  print dataset footprints as GeoJSON (EPSG:4326)
  map DOC...                      browse dataset footprints in the terminal
  png [-clamp N] [-uri] [-o DIR] [-width W] TIFF...
                                  composite TIFFs to RGBA PNGs
  info TIFF...                    print image shape and aspect
  preview [-clamp N] TIFF         show an RGBA preview in the terminal
`

func main() {
	log.SetFlags(0)
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	verbose := flag.Bool("v", false, "debug logging to stderr")
	flag.Parse()
	if *verbose {
		display.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	var err error
	switch args[0] {
	case "geojson":
		err = runGeoJSON(args[1:])
	case "map":
		err = runMap(args[1:])
	case "png":
		err = runPNG(args[1:])
	case "info":
		err = runInfo(args[1:])
	case "preview":
		err = runPreview(args[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadDocs(paths []string) ([]*geom.Doc, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no dataset documents given")
	}
	var docs []*geom.Doc
	for _, p := range paths {
		d, err := geom.LoadDocs(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d...)
	}
	return docs, nil
}

func runGeoJSON(args []string) error {
	docs, err := loadDocs(args)
	if err != nil {
		return err
	}
	fc, err := geom.ShowDatasets(geom.Datasets(docs))
	if err != nil {
		return err
	}
	out, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	_, err = fmt.Println(string(out))
	return err
}

func runMap(args []string) error {
	docs, err := loadDocs(args)
	if err != nil {
		return err
	}
	m, err := tui.NewWithDatasets(docs)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

// rgbaOptions passes -clamp to ToRGBA whenever it was given on the command
// line, so non-positive values are rejected rather than ignored.
func rgbaOptions(fs *flag.FlagSet, clamp float64) []display.RGBAOption {
	var set bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "clamp" {
			set = true
		}
	})
	if set {
		return []display.RGBAOption{display.WithClamp(clamp)}
	}
	return nil
}

func runPNG(args []string) error {
	fs := flag.NewFlagSet("png", flag.ExitOnError)
	clamp := fs.Float64("clamp", 0, "value mapped to 255 (default: max over bands)")
	uri := fs.Bool("uri", false, "print data URIs instead of writing files")
	dir := fs.String("o", ".", "output directory")
	width := fs.String("width", "80%", "progress bar width (N, Nch or N%)")
	_ = fs.Parse(args)
	paths := fs.Args()
	if len(paths) == 0 {
		return fmt.Errorf("png: no input files")
	}

	var (
		cbk progress.Callback
		ui  *progress.Display
	)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		cbk, ui = progress.WithUI(*width, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	} else {
		cbk = progress.Simple(os.Stderr)
	}
	dss, err := raster.LoadTIFFs(paths, cbk)
	if ui != nil {
		if err != nil {
			_ = ui.Close()
		} else if werr := ui.Wait(); werr != nil {
			return werr
		}
	} else {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	for i, ds := range dss {
		rgba, err := display.ToRGBA(ds, rgbaOptions(fs, *clamp)...)
		if err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}
		data, err := display.ToPNGData(rgba)
		if err != nil {
			return fmt.Errorf("%s: %w", paths[i], err)
		}
		if *uri {
			fmt.Println(display.DataURI(data, "image/png"))
			continue
		}
		name := filepath.Join(*dir, strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i]))+".png")
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return err
		}
		display.Logger().Info("wrote png", "path", name, "bytes", len(data))
	}
	return nil
}

func runInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("info: no input files")
	}
	for _, p := range args {
		ds, err := raster.LoadTIFF(p)
		if err != nil {
			return err
		}
		h, w, err := display.ImageShape(ds)
		if err != nil {
			return err
		}
		aspect, err := display.ImageAspect(ds)
		if err != nil {
			return err
		}
		red, _ := ds.Var("red")
		fmt.Printf("%s: %dx%d aspect %.3f bands %s dtype %s\n", p, w, h, aspect, strings.Join(ds.Names(), ","), red.DType)
	}
	return nil
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	clamp := fs.Float64("clamp", 0, "value mapped to 255 (default: max over bands)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("preview: want exactly one TIFF")
	}
	ds, err := raster.LoadTIFF(fs.Arg(0))
	if err != nil {
		return err
	}
	rgba, err := display.ToRGBA(ds, rgbaOptions(fs, *clamp)...)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(tui.NewWithImage(rgba), tea.WithAltScreen()).Run()
	return err
}
