package tonemap

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidPattern is returned for output patterns without exactly one %s verb.
var ErrInvalidPattern = errors.New("output pattern must contain exactly one %s")

// Options controls rendering and encoding of tonemapped images.
type Options struct {
	// Operators selects the operators to render, all of them when empty.
	Operators []Operator
	// Quality is the JPEG quality (1-100).
	Quality int
	// Round quantizes to 8 bits with rounding instead of truncation.
	Round bool
	// SRGB applies the sRGB transfer function after tonemapping.
	// Without it, linear values are written as is.
	SRGB bool
	// Gamut is the gamut of the input pixels, converted to BT.709 before tonemapping.
	Gamut Gamut
	// Workers limits parallel row processing, 0 uses GOMAXPROCS.
	Workers int
	// Width and Height resize the output when non-zero.
	// If one of them is zero, aspect ratio is preserved.
	Width, Height uint
	// Interpolation selects the resampling kernel for resizing.
	Interpolation Interpolation
	// Response, when set, adds a camera response rendering named ResponseName.
	Response     *ResponseTable
	ResponseName string
	ISO          float32
}

func defaultOptions() Options {
	return Options{
		Quality:       defaultQuality,
		Gamut:         GamutBT709,
		Interpolation: InterpolationLanczos3,
		ResponseName:  "camera-response",
		ISO:           defaultISO,
	}
}

func newOptions(opts []func(o *Options)) (Options, error) {
	opt := defaultOptions()
	for _, apply := range opts {
		apply(&opt)
	}
	if len(opt.Operators) == 0 {
		opt.Operators = Operators()
	}
	for _, op := range opt.Operators {
		if !op.Valid() {
			return opt, fmt.Errorf("%w: %d", ErrUnknownOperator, int(op))
		}
	}
	if opt.Quality < 1 || opt.Quality > 100 {
		return opt, fmt.Errorf("invalid JPEG quality %d", opt.Quality)
	}
	if opt.Response != nil && !(opt.ISO > 0) {
		return opt, fmt.Errorf("invalid ISO %v", opt.ISO)
	}
	return opt, nil
}

// OutputPath interpolates name into pattern.
func OutputPath(pattern, name string) (string, error) {
	if strings.Count(pattern, "%") != 1 || strings.Count(pattern, "%s") != 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	return filepath.Clean(fmt.Sprintf(pattern, name)), nil
}
