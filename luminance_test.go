package tonemap

import (
	"math"
	"testing"
)

func TestLuminance(t *testing.T) {
	if l := Luminance(Splat(1)); !approx(l, 1, 1e-6) {
		t.Fatalf("white: got %v", l)
	}
	if l := Luminance(Color{G: 1}); l != 0.7152 {
		t.Fatalf("green: got %v", l)
	}
}

func TestChangeLuminance(t *testing.T) {
	colors := []Color{
		{R: 1, G: 1, B: 1},
		{R: 0.1, G: 0.7, B: 3},
		{R: 12, G: 0, B: 0},
		{R: 0, G: 0, B: 0.001},
		{R: 250, G: 1e-3, B: 42},
	}
	for _, c := range colors {
		eps := 1e-6 * (c.R + c.G + c.B)
		if got := ChangeLuminance(c, Luminance(c)); !approxColor(got, c, eps) {
			t.Fatalf("round trip %v: got %v", c, got)
		}
		half := ChangeLuminance(c, Luminance(c)/2)
		if !approx(Luminance(half), Luminance(c)/2, eps) {
			t.Fatalf("rescale %v: got luminance %v", c, Luminance(half))
		}
		if !approxColor(half.Scale(2), c, eps) {
			t.Fatalf("chromaticity changed: %v vs %v", half, c)
		}
	}
}

func TestChangeLuminanceBlack(t *testing.T) {
	c := ChangeLuminance(Color{}, 0)
	if !math.IsNaN(float64(c.R)) {
		t.Fatalf("expected NaN, got %v", c)
	}
	r, g, b := c.Clamp(0, 1).Bytes()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("black must stay black, got %d %d %d", r, g, b)
	}
}
