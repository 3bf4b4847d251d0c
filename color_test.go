package tonemap

import (
	"math"
	"testing"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func approxColor(a, b Color, eps float32) bool {
	return approx(a.R, b.R, eps) && approx(a.G, b.G, eps) && approx(a.B, b.B, eps)
}

func TestColorArithmetic(t *testing.T) {
	a := Color{R: 1, G: 2, B: 3}
	b := Color{R: 4, G: 5, B: 6}

	cases := []struct {
		name string
		got  Color
		want Color
	}{
		{"add", a.Add(b), Color{5, 7, 9}},
		{"sub", b.Sub(a), Color{3, 3, 3}},
		{"mul", a.Mul(b), Color{4, 10, 18}},
		{"div", b.Div(Color{2, 5, 3}), Color{2, 1, 2}},
		{"add scalar", a.AddScalar(1), Color{2, 3, 4}},
		{"sub scalar", a.SubScalar(1), Color{0, 1, 2}},
		{"scale", a.Scale(2), Color{2, 4, 6}},
		{"div scalar", b.DivScalar(2), Color{2, 2.5, 3}},
		{"scalar first sub", Splat(1).Sub(a), Color{0, -1, -2}},
		{"scalar first div", Splat(6).Div(a), Color{6, 3, 2}},
		{"clamp", Color{-1, 0.5, 7}.Clamp(0, 1), Color{0, 0.5, 1}},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}

	if d := Dot(a, b); d != 32 {
		t.Fatalf("dot: got %v want 32", d)
	}
}

func TestColorDivByZero(t *testing.T) {
	c := Color{R: 1, G: 0, B: -1}.Div(Splat(0))
	if !math.IsInf(float64(c.R), 1) || !math.IsNaN(float64(c.G)) || !math.IsInf(float64(c.B), -1) {
		t.Fatalf("unexpected result %v", c)
	}
}

func TestLerp(t *testing.T) {
	a := Splat(0)
	b := Splat(10)
	got := Lerp(a, b, Color{R: 0, G: 0.5, B: 1})
	if got != (Color{R: 0, G: 5, B: 10}) {
		t.Fatalf("per channel lerp: got %v", got)
	}
	if v := LerpScalar(2, 4, 0.25); v != 2.5 {
		t.Fatalf("scalar lerp: got %v", v)
	}
}

func TestBytes(t *testing.T) {
	r, g, b := Color{R: 1, G: 0.5, B: 0}.Bytes()
	if r != 255 || g != 127 || b != 0 {
		t.Fatalf("truncate: got %d %d %d", r, g, b)
	}

	r, g, b = Color{R: 1, G: 0.5, B: 0}.RoundBytes()
	if r != 255 || g != 128 || b != 0 {
		t.Fatalf("round: got %d %d %d", r, g, b)
	}

	nan := float32(math.NaN())
	r, g, b = Color{R: nan, G: 3, B: -2}.Bytes()
	if r != 0 || g != 255 || b != 0 {
		t.Fatalf("saturate: got %d %d %d", r, g, b)
	}

	for v := 0; v < 256; v++ {
		c := FromBytes(uint8(v), uint8(v), uint8(v))
		r, _, _ := c.RoundBytes()
		if int(r) != v {
			t.Fatalf("round trip %d: got %d", v, r)
		}
	}

	if c := FromBytes(255, 0, 51); c != (Color{R: 1, G: 0, B: 0.2}) {
		t.Fatalf("from bytes: got %v", c)
	}
}
