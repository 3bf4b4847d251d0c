package tonemap

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// DecodeRGBE decodes a Radiance RGBE (.hdr, .pic) image.
func DecodeRGBE(data []byte) (*HDRImage, error) {
	m, err := rgbe.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode RGBE: %w", err)
	}
	src, ok := m.(hdr.Image)
	if !ok {
		return nil, errors.New("decode RGBE: not an HDR image")
	}
	b := src.Bounds()
	out, err := NewHDRImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("RGBE: %w", err)
	}
	for y := 0; y < out.H; y++ {
		for x := 0; x < out.W; x++ {
			r, g, b2, _ := src.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
			out.Set(x, y, Color{R: float32(r), G: float32(g), B: float32(b2)})
		}
	}
	return out, nil
}

// EncodeRGBE writes the image in Radiance RGBE format.
func EncodeRGBE(w io.Writer, img *HDRImage) error {
	if err := img.validate(); err != nil {
		return err
	}
	return rgbe.Encode(w, hdrView{img})
}

// hdrView exposes an HDRImage as hdr.Image.
type hdrView struct {
	*HDRImage
}

func (v hdrView) ColorModel() color.Model { return hdrcolor.RGBModel }

func (v hdrView) Bounds() image.Rectangle { return image.Rect(0, 0, v.W, v.H) }

func (v hdrView) At(x, y int) color.Color { return v.HDRAt(x, y) }

func (v hdrView) HDRAt(x, y int) hdrcolor.Color {
	c := v.HDRImage.At(x, y)
	return hdrcolor.RGB{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (v hdrView) Size() int { return v.W * v.H }
