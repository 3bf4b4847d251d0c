package tonemap

import (
	"errors"
	"fmt"
)

// ErrNotRGB is returned for input images that do not carry three color channels.
var ErrNotRGB = errors.New("image must be in RGB format")

// HDRImage stores a linear-light image as row-major RGB float32 triplets.
// Pixel values are relative to display white (1.0 = white).
type HDRImage struct {
	W, H int
	Pix  []float32
}

// NewHDRImage allocates a zeroed w x h image.
func NewHDRImage(w, h int) (*HDRImage, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", w, h)
	}
	return &HDRImage{W: w, H: h, Pix: make([]float32, w*h*3)}, nil
}

// At returns the pixel at (x, y), coordinates are clamped to the image bounds.
func (h *HDRImage) At(x, y int) Color {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x >= h.W {
		x = h.W - 1
	}
	if y >= h.H {
		y = h.H - 1
	}
	i := (y*h.W + x) * 3
	return Color{R: h.Pix[i], G: h.Pix[i+1], B: h.Pix[i+2]}
}

// Set stores c at (x, y). Out of bounds coordinates are ignored.
func (h *HDRImage) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= h.W || y >= h.H {
		return
	}
	i := (y*h.W + x) * 3
	h.Pix[i] = c.R
	h.Pix[i+1] = c.G
	h.Pix[i+2] = c.B
}

func (h *HDRImage) validate() error {
	if h == nil {
		return errors.New("missing HDR image")
	}
	if h.W <= 0 || h.H <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", h.W, h.H)
	}
	if len(h.Pix) != h.W*h.H*3 {
		return fmt.Errorf("%w: %d samples for %dx%d pixels", ErrNotRGB, len(h.Pix), h.W, h.H)
	}
	return nil
}
