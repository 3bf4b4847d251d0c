package tonemap

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/tiff"
)

// DecodeTIFFHDR decodes an RGB TIFF into an HDRImage.
// 16-bit samples are taken as linear light, 8-bit samples as sRGB encoded.
func DecodeTIFFHDR(data []byte) (*HDRImage, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if isGrayImage(img) {
		return nil, fmt.Errorf("%w: grayscale TIFF", ErrNotRGB)
	}
	b := img.Bounds()
	out, err := NewHDRImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("TIFF: %w", err)
	}
	linear := is16Bit(img)
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			r, g, b2, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			c := Color{R: float32(r) / 65535.0, G: float32(g) / 65535.0, B: float32(b2) / 65535.0}
			if !linear {
				c = Color{R: srgbInvOetf(c.R), G: srgbInvOetf(c.G), B: srgbInvOetf(c.B)}
			}
			out.Set(x, y, c)
		}
	}
	return out, nil
}

func isGrayImage(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	default:
		return false
	}
}

func is16Bit(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64:
		return true
	default:
		return false
	}
}
