package tonemap

import (
	"fmt"
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Interpolation selects the resampling kernel used to resize output images.
type Interpolation int

const (
	// InterpolationNearest is nearest-neighbor sampling.
	InterpolationNearest Interpolation = iota
	// InterpolationBilinear is linear sampling.
	InterpolationBilinear
	// InterpolationBicubic is cubic sampling.
	InterpolationBicubic
	// InterpolationMitchellNetravali is Mitchell-Netravali sampling.
	InterpolationMitchellNetravali
	// InterpolationLanczos2 is Lanczos sampling with a=2.
	InterpolationLanczos2
	// InterpolationLanczos3 is Lanczos sampling with a=3.
	InterpolationLanczos3
)

var interpolationNames = map[string]Interpolation{
	"nearest":  InterpolationNearest,
	"bilinear": InterpolationBilinear,
	"bicubic":  InterpolationBicubic,
	"mitchell": InterpolationMitchellNetravali,
	"lanczos2": InterpolationLanczos2,
	"lanczos3": InterpolationLanczos3,
}

// ParseInterpolation resolves an interpolation by name.
func ParseInterpolation(name string) (Interpolation, error) {
	if i, ok := interpolationNames[strings.ToLower(name)]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) kernel() resize.InterpolationFunction {
	switch i {
	case InterpolationBilinear:
		return resize.Bilinear
	case InterpolationBicubic:
		return resize.Bicubic
	case InterpolationMitchellNetravali:
		return resize.MitchellNetravali
	case InterpolationLanczos2:
		return resize.Lanczos2
	case InterpolationLanczos3:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// resizeLDR scales img to w x h, a zero dimension keeps the aspect ratio.
// Resampling happens on the quantized image, after tonemapping.
func resizeLDR(img image.Image, w, h uint, interp Interpolation) image.Image {
	if w == 0 && h == 0 {
		return img
	}
	b := img.Bounds()
	if uint(b.Dx()) == w && uint(b.Dy()) == h {
		return img
	}
	return resize.Resize(w, h, img, interp.kernel())
}
