package tonemap

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestRGBE(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeRGBE(&buf, testHDRImage(t, w, h)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scene.hdr")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTonemapFile(t *testing.T) {
	in := writeTestRGBE(t, 12, 6)
	pattern := filepath.Join(t.TempDir(), "out-%s.jpg")

	written, err := TonemapFile(context.Background(), in, pattern)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != len(Operators()) {
		t.Fatalf("expected %d outputs, got %d", len(Operators()), len(written))
	}
	for i, op := range Operators() {
		want := filepath.Clean(strings.Replace(pattern, "%s", op.String(), 1))
		if written[i] != want {
			t.Fatalf("output %d: got %s want %s", i, written[i], want)
		}
		f, err := os.Open(written[i])
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := jpeg.DecodeConfig(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if cfg.Width != 12 || cfg.Height != 6 {
			t.Fatalf("%s: got %dx%d", op, cfg.Width, cfg.Height)
		}
	}
}

func TestTonemapFilePNGResize(t *testing.T) {
	in := writeTestRGBE(t, 16, 8)
	pattern := filepath.Join(t.TempDir(), "%s.png")

	written, err := TonemapFile(context.Background(), in, pattern, func(o *Options) {
		o.Operators = []Operator{Reinhard, HableFilmic}
		o.Width = 8
		o.Interpolation = InterpolationBilinear
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 outputs, got %v", written)
	}
	if filepath.Base(written[1]) != "hable-filmic.png" {
		t.Fatalf("unexpected name %s", written[1])
	}
	data, err := os.ReadFile(written[0])
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 8 || cfg.Height != 4 {
		t.Fatalf("resize: got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestTonemapFileResponse(t *testing.T) {
	in := writeTestRGBE(t, 4, 4)
	dir := t.TempDir()

	written, err := TonemapFile(context.Background(), in, filepath.Join(dir, "r-%s.png"), func(o *Options) {
		o.Operators = []Operator{None}
		o.Response = SRGBResponse(256)
		o.ISO = 2
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 || filepath.Base(written[1]) != "r-camera-response.png" {
		t.Fatalf("unexpected outputs %v", written)
	}
}

func TestTonemapFileInvalid(t *testing.T) {
	in := writeTestRGBE(t, 2, 2)
	dir := t.TempDir()

	for _, p := range []string{"out.jpg", "%s-%s.jpg", "%d.jpg", "100%-%s.jpg"} {
		_, err := TonemapFile(context.Background(), in, filepath.Join(dir, p))
		if !errors.Is(err, ErrInvalidPattern) {
			t.Fatalf("%q: expected ErrInvalidPattern, got %v", p, err)
		}
	}

	if _, err := TonemapFile(context.Background(), in, filepath.Join(dir, "%s.gif")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}

	_, err := TonemapFile(context.Background(), filepath.Join(dir, "missing.hdr"), filepath.Join(dir, "%s.jpg"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("no outputs expected, found %d", len(entries))
	}
}

func TestTonemapFileWritesInOrder(t *testing.T) {
	in := writeTestRGBE(t, 4, 4)
	dir := t.TempDir()
	// A directory in place of the second output makes its write fail.
	if err := os.Mkdir(filepath.Join(dir, "reinhard.png"), 0o700); err != nil {
		t.Fatal(err)
	}

	written, err := TonemapFile(context.Background(), in, filepath.Join(dir, "%s.png"), func(o *Options) {
		o.Operators = []Operator{None, Reinhard, HableFilmic}
	})
	if err == nil {
		t.Fatal("expected write error")
	}
	if len(written) != 1 || filepath.Base(written[0]) != "none.png" {
		t.Fatalf("expected only none.png, got %v", written)
	}
	if _, err := os.Stat(filepath.Join(dir, "none.png")); err != nil {
		t.Fatalf("first output must be on disk: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "hable-filmic.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("rendering must stop after a failed write, got %v", err)
	}
}

func TestBatchEmitsResultsInOrder(t *testing.T) {
	opt, err := newOptions([]func(o *Options){func(o *Options) {
		o.Operators = []Operator{Reinhard, None}
		o.Response = LinearResponse()
	}})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	stop := errors.New("stop")
	err = eachResult(context.Background(), testHDRImage(t, 2, 2), &opt, func(r Result) error {
		names = append(names, r.Name)
		if len(names) == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected emit error, got %v", err)
	}
	if got := strings.Join(names, ","); got != "reinhard,none" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestBatch(t *testing.T) {
	img := testHDRImage(t, 10, 10)
	res, err := Batch(context.Background(), img, func(o *Options) {
		o.Operators = []Operator{ACESApproximated, Reinhard}
		o.Response = LinearResponse()
		o.ResponseName = "linear"
		o.Height = 5
	})
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, 0, len(res))
	for _, r := range res {
		names = append(names, r.Name)
		if b := r.Image.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
			t.Fatalf("%s: got %v", r.Name, b)
		}
	}
	if got := strings.Join(names, ","); got != "aces-approximated,reinhard,linear" {
		t.Fatalf("unexpected order %s", got)
	}
}

func TestBatchInvalidISO(t *testing.T) {
	img := testHDRImage(t, 2, 2)
	_, err := Batch(context.Background(), img, func(o *Options) {
		o.Response = LinearResponse()
		o.ISO = 0
	})
	if err == nil {
		t.Fatal("expected error for zero ISO")
	}
}

func TestOutputPath(t *testing.T) {
	for _, tc := range []struct {
		pattern, name, want string
		ok                  bool
	}{
		{"out-%s.jpg", "reinhard", "out-reinhard.jpg", true},
		{"dir/%s/img.png", "none", filepath.Join("dir", "none", "img.png"), true},
		{"out.jpg", "none", "", false},
		{"%s%s", "none", "", false},
		{"%v.jpg", "none", "", false},
	} {
		got, err := OutputPath(tc.pattern, tc.name)
		if tc.ok != (err == nil) {
			t.Fatalf("%q: unexpected error %v", tc.pattern, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %q want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestEncode(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatPNG, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := Encode(&buf, img, Format(9), 90); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
