package tonemap

import (
	"fmt"
	"strings"
)

// Gamut identifies the primaries of linear input pixels.
type Gamut int

const (
	// GamutBT709 is sRGB / Rec.709, the gamut all operators expect.
	GamutBT709 Gamut = iota
	// GamutDisplayP3 is Display P3 (D65).
	GamutDisplayP3
	// GamutAdobeRGB is Adobe RGB (1998).
	GamutAdobeRGB
)

// Matrices are D65 linear RGB <-> XYZ.
var (
	bt709ToXYZ = ColorMatrix{
		{R: 0.4123908, G: 0.35758433, B: 0.1804808},
		{R: 0.212639, G: 0.71516865, B: 0.07219232},
		{R: 0.019330818, G: 0.11919478, B: 0.95053214},
	}
	displayP3ToXYZ = ColorMatrix{
		{R: 0.48657095, G: 0.2656677, B: 0.19821729},
		{R: 0.22897457, G: 0.69173855, B: 0.07928691},
		{R: 0, G: 0.04511338, B: 1.0439444},
	}
	adobeRGBToXYZ = ColorMatrix{
		{R: 0.5767309, G: 0.185554, B: 0.1881852},
		{R: 0.2973769, G: 0.6273491, B: 0.0752741},
		{R: 0.0270343, G: 0.0706872, B: 0.9911085},
	}
	xyzToBT709 = ColorMatrix{
		{R: 3.24097, G: -1.5373832, B: -0.49861076},
		{R: -0.96924365, G: 1.8759675, B: 0.041555058},
		{R: 0.05563008, G: -0.20397696, B: 1.0569715},
	}
)

var gamutNames = map[Gamut]string{
	GamutBT709:     "bt709",
	GamutDisplayP3: "p3",
	GamutAdobeRGB:  "adobe",
}

func (g Gamut) String() string {
	if n, ok := gamutNames[g]; ok {
		return n
	}
	return fmt.Sprintf("Gamut(%d)", int(g))
}

// ParseGamut resolves a gamut by its short name (bt709, srgb, p3, adobe).
func ParseGamut(name string) (Gamut, error) {
	switch strings.ToLower(name) {
	case "", "bt709", "srgb":
		return GamutBT709, nil
	case "p3", "display-p3", "displayp3":
		return GamutDisplayP3, nil
	case "adobe", "adobergb", "adobe-rgb":
		return GamutAdobeRGB, nil
	}
	return 0, fmt.Errorf("unknown gamut %q", name)
}

// ToBT709 returns the matrix converting linear colors in g to linear BT.709.
func (g Gamut) ToBT709() ColorMatrix {
	switch g {
	case GamutDisplayP3:
		return xyzToBT709.Mul(displayP3ToXYZ)
	case GamutAdobeRGB:
		return xyzToBT709.Mul(adobeRGBToXYZ)
	default:
		return xyzToBT709.Mul(bt709ToXYZ)
	}
}
