package tonemap

import "math"

func srgbInvOetf(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(math.Pow(float64((v+0.055)/1.055), 2.4))
}

func srgbOetf(v float32) float32 {
	if v >= 1 {
		// 1.055 - 0.055 is one ulp short of 1 in float32.
		return 1
	}
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*float32(math.Pow(float64(v), 1.0/2.4)) - 0.055
}

// EncodeSRGB applies the sRGB transfer function to a linear color in [0, 1].
func EncodeSRGB(c Color) Color {
	return Color{R: srgbOetf(c.R), G: srgbOetf(c.G), B: srgbOetf(c.B)}
}
