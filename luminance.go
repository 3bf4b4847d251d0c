package tonemap

// luminanceWeights are the BT.709 relative luminance coefficients.
var luminanceWeights = Color{R: 0.2126, G: 0.7152, B: 0.0722}

// Luminance returns the relative luminance of a linear BT.709 color.
func Luminance(c Color) float32 {
	return Dot(c, luminanceWeights)
}

// ChangeLuminance scales c uniformly so that its luminance becomes l,
// keeping chromaticity.
//
// A color with zero luminance has no chromaticity to keep: the result is
// NaN (or Inf for a non-zero l) and is not trapped here.
func ChangeLuminance(c Color, l float32) Color {
	return c.Scale(l / Luminance(c))
}
