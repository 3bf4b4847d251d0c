package tonemap

// Color is a linear RGB triplet. Components are unbounded until Clamp is applied.
type Color struct {
	R, G, B float32
}

// Splat returns a color with all three components set to v.
// Scalar-first arithmetic is written as Splat(s).Sub(c) or Splat(s).Div(c).
func Splat(v float32) Color {
	return Color{R: v, G: v, B: v}
}

// Add returns c + o elementwise.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Sub returns c - o elementwise.
func (c Color) Sub(o Color) Color {
	return Color{R: c.R - o.R, G: c.G - o.G, B: c.B - o.B}
}

// Mul returns c * o elementwise.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Div returns c / o elementwise. Zero divisors yield Inf or NaN.
func (c Color) Div(o Color) Color {
	return Color{R: c.R / o.R, G: c.G / o.G, B: c.B / o.B}
}

// AddScalar adds s to every component.
func (c Color) AddScalar(s float32) Color {
	return Color{R: c.R + s, G: c.G + s, B: c.B + s}
}

// SubScalar subtracts s from every component.
func (c Color) SubScalar(s float32) Color {
	return Color{R: c.R - s, G: c.G - s, B: c.B - s}
}

// Scale multiplies every component by s.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// DivScalar divides every component by s.
func (c Color) DivScalar(s float32) Color {
	return Color{R: c.R / s, G: c.G / s, B: c.B / s}
}

// Clamp saturates every component to [lo, hi]. NaN components are left as is.
func (c Color) Clamp(lo, hi float32) Color {
	return Color{R: clamp(c.R, lo, hi), G: clamp(c.G, lo, hi), B: clamp(c.B, lo, hi)}
}

// Dot returns the dot product of a and b.
func Dot(a, b Color) float32 {
	return a.R*b.R + a.G*b.G + a.B*b.B
}

// Lerp interpolates between a and b with an independent weight per channel.
func Lerp(a, b, t Color) Color {
	return a.Mul(Splat(1).Sub(t)).Add(b.Mul(t))
}

// LerpScalar interpolates between a and b.
func LerpScalar(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// FromBytes converts 8-bit channels to a color in [0, 1].
func FromBytes(r, g, b uint8) Color {
	return Color{R: float32(r) / 255.0, G: float32(g) / 255.0, B: float32(b) / 255.0}
}

// Bytes converts the color to 8-bit channels, truncating toward zero.
// Values outside [0, 1] saturate, NaN maps to 0.
func (c Color) Bytes() (uint8, uint8, uint8) {
	return truncByte(c.R), truncByte(c.G), truncByte(c.B)
}

// RoundBytes is like Bytes, but rounds half up instead of truncating.
func (c Color) RoundBytes() (uint8, uint8, uint8) {
	return roundByte(c.R), roundByte(c.G), roundByte(c.B)
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func truncByte(v float32) uint8 {
	v *= 255.0
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func roundByte(v float32) uint8 {
	v = v*255.0 + 0.5
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
