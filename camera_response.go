package tonemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidTable is returned for camera response samples that are not a
// strictly increasing irradiance sequence with matching intensities.
var ErrInvalidTable = errors.New("invalid camera response table")

// ResponseTable is a sampled camera response curve mapping normalized scene
// irradiance to recorded intensity. It is immutable and safe for concurrent use.
type ResponseTable struct {
	name       string
	irradiance []float32
	intensity  []float32
}

// NewResponseTable validates and copies the samples.
// At least two samples are required and irradiance must be strictly increasing.
func NewResponseTable(irradiance, intensity []float32) (*ResponseTable, error) {
	if len(irradiance) != len(intensity) {
		return nil, fmt.Errorf("%w: %d irradiance vs %d intensity samples", ErrInvalidTable, len(irradiance), len(intensity))
	}
	if len(irradiance) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidTable, len(irradiance))
	}
	for i := 1; i < len(irradiance); i++ {
		if !(irradiance[i] > irradiance[i-1]) {
			return nil, fmt.Errorf("%w: irradiance not strictly increasing at %d", ErrInvalidTable, i)
		}
	}
	return &ResponseTable{
		irradiance: append([]float32(nil), irradiance...),
		intensity:  append([]float32(nil), intensity...),
	}, nil
}

// LinearResponse is the identity response on [0, 1].
func LinearResponse() *ResponseTable {
	return &ResponseTable{
		name:       "linear",
		irradiance: []float32{0, 1},
		intensity:  []float32{0, 1},
	}
}

// SRGBResponse samples the sRGB OETF at n evenly spaced points (n >= 2).
func SRGBResponse(n int) *ResponseTable {
	if n < 2 {
		n = 2
	}
	t := &ResponseTable{
		name:       "srgb",
		irradiance: make([]float32, n),
		intensity:  make([]float32, n),
	}
	for i := 0; i < n; i++ {
		x := float32(i) / float32(n-1)
		t.irradiance[i] = x
		t.intensity[i] = srgbOetf(x)
	}
	return t
}

// Name returns the curve name, empty for anonymous tables.
func (t *ResponseTable) Name() string {
	return t.name
}

// Len returns the number of samples.
func (t *ResponseTable) Len() int {
	return len(t.irradiance)
}

// segment returns idx such that irradiance[idx] <= x < irradiance[idx+1],
// clamped to [0, n-2] for values outside of the sampled range.
func (t *ResponseTable) segment(x float32) int {
	n := len(t.irradiance)
	idx := sort.Search(n, func(i int) bool {
		return t.irradiance[i] > x
	}) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-2 {
		idx = n - 2
	}
	return idx
}

// Intensity maps a single channel irradiance to the recorded intensity in [0, 1].
// The irradiance is clamped to [0, 1] and divided by iso before lookup.
func (t *ResponseTable) Intensity(irradiance, iso float32) float32 {
	irradiance = clamp(irradiance, 0, 1)
	irradiance /= iso

	idx := t.segment(irradiance)
	x0, x1 := t.irradiance[idx], t.irradiance[idx+1]
	frac := clamp((irradiance-x0)/(x1-x0), 0, 1)

	return clamp(LerpScalar(t.intensity[idx], t.intensity[idx+1], frac), 0, 1)
}

// Apply maps every channel of c through the response curve.
func (t *ResponseTable) Apply(c Color, iso float32) Color {
	return Color{
		R: t.Intensity(c.R, iso),
		G: t.Intensity(c.G, iso),
		B: t.Intensity(c.B, iso),
	}
}

// Func returns a pixel function applying the curve at the given iso.
func (t *ResponseTable) Func(iso float32) PixelFunc {
	return func(c Color) Color {
		return t.Apply(c, iso)
	}
}

// ParseDoRF reads camera response curves in the format of the Columbia
// "Database of Response Functions" (dorfCurves.txt): every curve is a name
// line, a graph line, then "I =" followed by irradiance samples and "B ="
// followed by brightness samples. Lines starting with '#' are ignored.
func ParseDoRF(r io.Reader) ([]*ResponseTable, error) {
	var (
		res     []*ResponseTable
		header  []string
		irr     []float32
		bri     []float32
		target  *[]float32
		lineNum int
	)

	flush := func() error {
		if len(header) == 0 && irr == nil && bri == nil {
			return nil
		}
		t, err := NewResponseTable(irr, bri)
		if err != nil {
			return fmt.Errorf("curve %q: %w", strings.Join(header, " "), err)
		}
		if len(header) > 0 {
			t.name = header[0]
		}
		res = append(res, t)
		header, irr, bri, target = nil, nil, nil, nil
		return nil
	}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "I ="), line == "I=":
			target = &irr
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "I ="), "I="))
		case strings.HasPrefix(line, "B ="), line == "B=":
			target = &bri
			line = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(line, "B ="), "B="))
		case !isNumericLine(line):
			// A label after a complete B block starts the next curve.
			if bri != nil {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			header = append(header, line)
			target = nil
			continue
		}
		if line == "" {
			continue
		}
		if target == nil {
			return nil, fmt.Errorf("line %d: samples outside of I/B block", lineNum)
		}
		for _, f := range strings.Fields(line) {
			v, err := strconv.ParseFloat(f, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			*target = append(*target, float32(v))
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%w: no curves found", ErrInvalidTable)
	}
	return res, nil
}

// FindResponse returns the first table whose name matches (case-insensitive).
// An empty name selects the first table.
func FindResponse(tables []*ResponseTable, name string) (*ResponseTable, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: no curves", ErrInvalidTable)
	}
	if name == "" {
		return tables[0], nil
	}
	for _, t := range tables {
		if strings.EqualFold(t.name, name) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("camera response curve %q not found", name)
}

func isNumericLine(line string) bool {
	f := strings.Fields(line)
	if len(f) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(f[0], 32)
	return err == nil
}
