package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/vearutop/tonemap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// usageError is a command line error, reported with exit status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		usage()
		return 2
	}

	var err error
	switch args[0] {
	case "list":
		err = runList()
	case "batch":
		err = runBatch(ctx, args[1:])
	case "apply":
		err = runApply(args[1:])
	case "response":
		err = runResponse(args[1:])
	default:
		usage()
		return 2
	}
	if err == nil {
		return 0
	}
	if errors.Is(err, flag.ErrHelp) {
		return 2
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	if errors.As(err, new(usageError)) {
		return 2
	}
	return 1
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: tonemap <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  list")
	fmt.Fprintf(os.Stderr, "  batch -in image.hdr [-out out-%%s.jpg] [-op reinhard,aces-fitted] [-q 95] [-round] [-srgb]\n")
	fmt.Fprintln(os.Stderr, "        [-gamut bt709|p3|adobe] [-w 0] [-h 0] [-interp lanczos3] [-workers 0]")
	fmt.Fprintln(os.Stderr, "        [-response dorfCurves.txt] [-curve name] [-iso 1] [-v]")
	fmt.Fprintln(os.Stderr, "  apply -op name r g b")
	fmt.Fprintln(os.Stderr, "  response [-table dorfCurves.txt] [-curve name] [-iso 1] r g b")
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return usageError{err}
	}
	return nil
}

func runList() error {
	for _, op := range tonemap.Operators() {
		fmt.Fprintf(os.Stdout, "%d\t%s\n", int(op), op)
	}
	return nil
}

func runBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	inPath := fs.String("in", "image.hdr", "input HDR image (.hdr, .exr, .tif)")
	outPattern := fs.String("out", "out-%s.jpg", "output path pattern, %s is replaced with operator name")
	ops := fs.String("op", "all", "comma-separated operators")
	q := fs.Int("q", 95, "JPEG quality")
	round := fs.Bool("round", false, "round instead of truncate when quantizing")
	srgb := fs.Bool("srgb", false, "apply sRGB transfer function to output")
	gamut := fs.String("gamut", "bt709", "input gamut")
	width := fs.Uint("w", 0, "output width, 0 keeps aspect ratio")
	height := fs.Uint("h", 0, "output height, 0 keeps aspect ratio")
	interp := fs.String("interp", "lanczos3", "resize interpolation")
	workers := fs.Int("workers", 0, "parallel workers, 0 for all CPUs")
	responsePath := fs.String("response", "", "camera response curves (DoRF format)")
	curve := fs.String("curve", "", "camera response curve name")
	iso := fs.Float64("iso", 1, "camera ISO sensitivity factor")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *inPath == "" || *outPattern == "" {
		return usageError{errors.New("missing required arguments")}
	}
	if *verbose {
		tonemap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	operators, err := tonemap.ParseOperators(*ops)
	if err != nil {
		return err
	}
	g, err := tonemap.ParseGamut(*gamut)
	if err != nil {
		return err
	}
	ip, err := tonemap.ParseInterpolation(*interp)
	if err != nil {
		return err
	}
	var response *tonemap.ResponseTable
	if *responsePath != "" {
		if response, err = loadResponse(*responsePath, *curve); err != nil {
			return err
		}
	}

	written, err := tonemap.TonemapFile(ctx, *inPath, *outPattern, func(o *tonemap.Options) {
		o.Operators = operators
		o.Quality = *q
		o.Round = *round
		o.SRGB = *srgb
		o.Gamut = g
		o.Width = *width
		o.Height = *height
		o.Interpolation = ip
		o.Workers = *workers
		o.Response = response
		o.ISO = float32(*iso)
	})
	for _, p := range written {
		fmt.Fprintln(os.Stdout, p)
	}
	return err
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	name := fs.String("op", "", "operator name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	op, err := tonemap.ParseOperator(*name)
	if err != nil {
		return err
	}
	c, err := parseColor(fs.Args())
	if err != nil {
		return err
	}
	printColor(op.Apply(c))
	return nil
}

func runResponse(args []string) error {
	fs := flag.NewFlagSet("response", flag.ContinueOnError)
	tablePath := fs.String("table", "", "camera response curves (DoRF format), sRGB curve if empty")
	curve := fs.String("curve", "", "camera response curve name")
	iso := fs.Float64("iso", 1, "camera ISO sensitivity factor")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !(*iso > 0) {
		return fmt.Errorf("invalid ISO %v", *iso)
	}
	table := tonemap.SRGBResponse(1024)
	if *tablePath != "" {
		var err error
		if table, err = loadResponse(*tablePath, *curve); err != nil {
			return err
		}
	}
	c, err := parseColor(fs.Args())
	if err != nil {
		return err
	}
	printColor(table.Apply(c, float32(*iso)))
	return nil
}

func loadResponse(path, curve string) (*tonemap.ResponseTable, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tables, err := tonemap.ParseDoRF(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tonemap.FindResponse(tables, curve)
}

func parseColor(args []string) (tonemap.Color, error) {
	if len(args) != 3 {
		return tonemap.Color{}, usageError{errors.New("expected three color components: r g b")}
	}
	var v [3]float32
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return tonemap.Color{}, usageError{fmt.Errorf("component %d: %w", i, err)}
		}
		v[i] = float32(f)
	}
	return tonemap.Color{R: v[0], G: v[1], B: v[2]}, nil
}

func printColor(c tonemap.Color) {
	r, g, b := c.Clamp(0, 1).Bytes()
	fmt.Fprintf(os.Stdout, "%.6f %.6f %.6f\t#%02x%02x%02x\n", c.R, c.G, c.B, r, g, b)
}
