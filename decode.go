package tonemap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsupportedFormat is returned for input data that is not a known HDR format.
var ErrUnsupportedFormat = errors.New("unsupported HDR image format")

var (
	rgbeSigs = [][]byte{[]byte("#?RADIANCE"), []byte("#?RGBE")}
	exrSig   = []byte{0x76, 0x2f, 0x31, 0x01}
	tiffSigs = [][]byte{[]byte("II*\x00"), []byte("MM\x00*")}
)

// DecodeHDR detects the image format by signature and decodes it.
// Radiance RGBE, OpenEXR and TIFF are supported.
func DecodeHDR(data []byte) (*HDRImage, error) {
	switch {
	case hasAnyPrefix(data, rgbeSigs):
		return DecodeRGBE(data)
	case bytes.HasPrefix(data, exrSig):
		return DecodeEXR(data)
	case hasAnyPrefix(data, tiffSigs):
		return DecodeTIFFHDR(data)
	}
	return nil, ErrUnsupportedFormat
}

// DecodeHDRFile reads and decodes an HDR image file.
func DecodeHDRFile(path string) (*HDRImage, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("could not load the image: %w", err)
	}
	img, err := DecodeHDR(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

func hasAnyPrefix(data []byte, sigs [][]byte) bool {
	for _, s := range sigs {
		if bytes.HasPrefix(data, s) {
			return true
		}
	}
	return false
}
