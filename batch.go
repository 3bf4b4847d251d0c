package tonemap

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Result is one tonemapped rendering of an HDR image.
type Result struct {
	// Name is the operator name, or Options.ResponseName for the camera response.
	Name  string
	Image image.Image
}

// Batch renders img with every selected operator, followed by the camera
// response rendering if Options.Response is set.
func Batch(ctx context.Context, img *HDRImage, opts ...func(o *Options)) ([]Result, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	var res []Result
	err = eachResult(ctx, img, &opt, func(r Result) error {
		res = append(res, r)
		return nil
	})
	return res, err
}

type job struct {
	name string
	fn   PixelFunc
}

func (o *Options) jobs() []job {
	jobs := make([]job, 0, len(o.Operators)+1)
	for _, op := range o.Operators {
		jobs = append(jobs, job{name: op.String(), fn: op.Apply})
	}
	if o.Response != nil {
		jobs = append(jobs, job{name: o.ResponseName, fn: o.Response.Func(o.ISO)})
	}
	return jobs
}

// eachResult renders jobs one at a time, emit receives each result before
// the next one is rendered.
func eachResult(ctx context.Context, img *HDRImage, opt *Options, emit func(Result) error) error {
	for _, j := range opt.jobs() {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		ldr, err := render(ctx, img, j.fn, opt)
		if err != nil {
			return fmt.Errorf("%s: %w", j.name, err)
		}
		Logger().Debug("rendered", slog.String("name", j.name), slog.Duration("elapsed", time.Since(start)))
		if err := emit(Result{Name: j.name, Image: resizeLDR(ldr, opt.Width, opt.Height, opt.Interpolation)}); err != nil {
			return err
		}
	}
	return nil
}

// TonemapFile decodes the HDR image at inPath and writes one output per
// operator to the path built from pattern (for example "out-%s.jpg").
// The output format follows the pattern extension: .jpg, .jpeg or .png.
// Each output is written before the next one is rendered.
// It returns the written paths, including on error.
func TonemapFile(ctx context.Context, inPath, pattern string, opts ...func(o *Options)) ([]string, error) {
	opt, err := newOptions(opts)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = defaultPattern
	}
	if _, err := OutputPath(pattern, "none"); err != nil {
		return nil, err
	}
	format, err := formatForPath(pattern)
	if err != nil {
		return nil, err
	}

	img, err := DecodeHDRFile(inPath)
	if err != nil {
		return nil, err
	}
	Logger().Info("decoded", slog.String("path", inPath), slog.Int("width", img.W), slog.Int("height", img.H))

	var (
		written []string
		buf     bytes.Buffer
	)
	err = eachResult(ctx, img, &opt, func(r Result) error {
		out, err := OutputPath(pattern, r.Name)
		if err != nil {
			return err
		}
		buf.Reset()
		if err := Encode(&buf, r.Image, format, opt.Quality); err != nil {
			return fmt.Errorf("encode %s: %w", out, err)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", r.Name, err)
		}
		Logger().Info("written", slog.String("path", out))
		written = append(written, out)
		return nil
	})
	return written, err
}

// Format is an LDR output encoding.
type Format int

const (
	// FormatJPEG is baseline JPEG.
	FormatJPEG Format = iota
	// FormatPNG is lossless PNG.
	FormatPNG
)

func formatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".png":
		return FormatPNG, nil
	}
	return 0, fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
}

// Encode writes img in the given format, quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		return png.Encode(w, img)
	}
	return fmt.Errorf("unknown output format %d", int(f))
}
