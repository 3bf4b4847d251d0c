package tonemap

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

const exrMagic = 20000630

const (
	exrCompressionNone = 0
	exrCompressionZips = 2
	exrCompressionZip  = 3
)

const (
	exrPixelUint  = 0
	exrPixelHalf  = 1
	exrPixelFloat = 2
)

const (
	exrFlagTiled     = 0x00000200
	exrFlagDeep      = 0x00000800
	exrFlagMultipart = 0x00001000
)

// exrChannel maps an EXR channel to an RGB component, comp is -1 for ignored channels.
type exrChannel struct {
	name      string
	pixelType int32
	xSampling int32
	ySampling int32
	comp      int
}

func (ch exrChannel) bytesPerSample() int {
	if ch.pixelType == exrPixelHalf {
		return 2
	}
	return 4
}

type exrHeader struct {
	channels    []exrChannel
	dataWindow  [4]int32
	compression byte
}

func (h *exrHeader) size() (int, int) {
	return int(h.dataWindow[2]-h.dataWindow[0]) + 1, int(h.dataWindow[3]-h.dataWindow[1]) + 1
}

func (h *exrHeader) linesPerBlock() int {
	if h.compression == exrCompressionZip {
		return 16
	}
	return 1
}

// DecodeEXR decodes a single-part scanline OpenEXR image with R, G and B channels.
// Supported compressions are none, ZIPS and ZIP.
func DecodeEXR(data []byte) (*HDRImage, error) {
	r := bytes.NewReader(data)
	hdr, err := readEXRHeader(r)
	if err != nil {
		return nil, err
	}

	width, height := hdr.size()
	img, err := NewHDRImage(width, height)
	if err != nil {
		return nil, fmt.Errorf("OpenEXR: %w", err)
	}

	blockLines := hdr.linesPerBlock()
	offsets := make([]uint64, (height+blockLines-1)/blockLines)
	for i := range offsets {
		if offsets[i], err = readLE[uint64](r); err != nil {
			return nil, err
		}
	}

	for _, off := range offsets {
		if off == 0 {
			continue
		}
		if _, err := r.Seek(int64(off), io.SeekStart); err != nil {
			return nil, err
		}
		if err := decodeEXRBlock(r, hdr, img); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func readEXRHeader(r *bytes.Reader) (*exrHeader, error) {
	magic, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	if magic != exrMagic {
		return nil, errors.New("not an OpenEXR file")
	}
	version, err := readLE[uint32](r)
	if err != nil {
		return nil, err
	}
	switch {
	case version&exrFlagTiled != 0:
		return nil, errors.New("tiled OpenEXR not supported")
	case version&exrFlagMultipart != 0:
		return nil, errors.New("multipart OpenEXR not supported")
	case version&exrFlagDeep != 0:
		return nil, errors.New("deep OpenEXR not supported")
	}

	hdr := &exrHeader{compression: exrCompressionNone}
	hasDataWindow := false
	for {
		name, err := readNullString(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}
		typ, err := readNullString(r)
		if err != nil {
			return nil, err
		}
		size, err := readLE[int32](r)
		if err != nil {
			return nil, err
		}
		if size < 0 || int64(size) > int64(r.Len()) {
			return nil, errors.New("invalid EXR attribute size")
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}

		switch name {
		case "channels":
			if typ != "chlist" {
				return nil, errors.New("unexpected channels attribute type")
			}
			if hdr.channels, err = parseEXRChannels(payload); err != nil {
				return nil, err
			}
		case "dataWindow":
			if typ != "box2i" || len(payload) != 16 {
				return nil, errors.New("invalid dataWindow attribute")
			}
			for i := range hdr.dataWindow {
				hdr.dataWindow[i] = int32(binary.LittleEndian.Uint32(payload[i*4:]))
			}
			hasDataWindow = true
		case "compression":
			if typ != "compression" || len(payload) < 1 {
				return nil, errors.New("invalid compression attribute")
			}
			hdr.compression = payload[0]
		case "tiles":
			return nil, errors.New("tiled OpenEXR not supported")
		case "type":
			if !strings.HasPrefix(string(payload), "scanlineimage") {
				return nil, fmt.Errorf("OpenEXR part type %q not supported", strings.TrimRight(string(payload), "\x00"))
			}
		}
	}

	if len(hdr.channels) == 0 {
		return nil, errors.New("OpenEXR missing channels")
	}
	if !hasDataWindow {
		return nil, errors.New("OpenEXR missing dataWindow")
	}
	var seen [3]bool
	for _, ch := range hdr.channels {
		if ch.xSampling != 1 || ch.ySampling != 1 {
			return nil, errors.New("OpenEXR subsampled channels are not supported")
		}
		if ch.comp >= 0 {
			seen[ch.comp] = true
		}
	}
	if !seen[0] || !seen[1] || !seen[2] {
		return nil, fmt.Errorf("%w: OpenEXR R, G and B channels required", ErrNotRGB)
	}
	switch hdr.compression {
	case exrCompressionNone, exrCompressionZips, exrCompressionZip:
	default:
		return nil, fmt.Errorf("unsupported OpenEXR compression %d", hdr.compression)
	}
	return hdr, nil
}

func parseEXRChannels(data []byte) ([]exrChannel, error) {
	r := bytes.NewReader(data)
	var channels []exrChannel
	for {
		name, err := readNullString(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}
		pixelType, err := readLE[int32](r)
		if err != nil {
			return nil, err
		}
		if pixelType != exrPixelHalf && pixelType != exrPixelFloat && pixelType != exrPixelUint {
			return nil, fmt.Errorf("unsupported OpenEXR pixel type %d", pixelType)
		}
		// pLinear and three reserved bytes.
		if _, err := r.Seek(4, io.SeekCurrent); err != nil {
			return nil, err
		}
		xSampling, err := readLE[int32](r)
		if err != nil {
			return nil, err
		}
		ySampling, err := readLE[int32](r)
		if err != nil {
			return nil, err
		}
		comp := -1
		switch strings.ToUpper(name) {
		case "R":
			comp = 0
		case "G":
			comp = 1
		case "B":
			comp = 2
		}
		channels = append(channels, exrChannel{
			name:      name,
			pixelType: pixelType,
			xSampling: xSampling,
			ySampling: ySampling,
			comp:      comp,
		})
	}
	return channels, nil
}

func decodeEXRBlock(r *bytes.Reader, hdr *exrHeader, dst *HDRImage) error {
	y, err := readLE[int32](r)
	if err != nil {
		return err
	}
	dataSize, err := readLE[int32](r)
	if err != nil {
		return err
	}
	if dataSize < 0 || int64(dataSize) > int64(r.Len()) {
		return errors.New("invalid OpenEXR block size")
	}
	raw := make([]byte, dataSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return err
	}

	startY := int(y - hdr.dataWindow[1])
	if startY < 0 || startY >= dst.H {
		return errors.New("OpenEXR scanline out of bounds")
	}
	lines := hdr.linesPerBlock()
	if startY+lines > dst.H {
		lines = dst.H - startY
	}

	expected := 0
	for _, ch := range hdr.channels {
		expected += dst.W * lines * ch.bytesPerSample()
	}
	data, err := exrDecompress(hdr.compression, raw, expected)
	if err != nil {
		return err
	}

	// Scanlines are stored channel by channel, channels sorted by name.
	offset := 0
	for row := 0; row < lines; row++ {
		base := (startY + row) * dst.W * 3
		for _, ch := range hdr.channels {
			lineBytes := dst.W * ch.bytesPerSample()
			if offset+lineBytes > len(data) {
				return errors.New("OpenEXR block truncated")
			}
			line := data[offset : offset+lineBytes]
			offset += lineBytes
			if ch.comp < 0 {
				continue
			}
			for x := 0; x < dst.W; x++ {
				dst.Pix[base+x*3+ch.comp] = exrSample(ch.pixelType, line, x)
			}
		}
	}
	return nil
}

func exrSample(pixelType int32, line []byte, x int) float32 {
	switch pixelType {
	case exrPixelHalf:
		return halfToFloat32(binary.LittleEndian.Uint16(line[x*2:]))
	case exrPixelFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(line[x*4:]))
	default:
		return float32(binary.LittleEndian.Uint32(line[x*4:]))
	}
}

func exrDecompress(compression byte, data []byte, expected int) ([]byte, error) {
	if compression == exrCompressionNone || len(data) == expected {
		// Blocks that do not shrink are stored uncompressed.
		if len(data) != expected {
			return nil, errors.New("unexpected OpenEXR block size")
		}
		return data, nil
	}
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	unpacked, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	if len(unpacked) != expected {
		return nil, errors.New("unexpected OpenEXR decompressed size")
	}
	undoPredictor(unpacked)
	return unshuffleBytes(unpacked), nil
}

func undoPredictor(data []byte) {
	for i := 1; i < len(data); i++ {
		data[i] = byte(int(data[i]) + int(data[i-1]) - 128)
	}
}

// unshuffleBytes interleaves the two halves of data produced by the ZIP encoder.
func unshuffleBytes(data []byte) []byte {
	half := (len(data) + 1) / 2
	lo, hi := data[:half], data[half:]
	out := make([]byte, 0, len(data))
	for i, b := range lo {
		out = append(out, b)
		if i < len(hi) {
			out = append(out, hi[i])
		}
	}
	return out
}

func readNullString(r *bytes.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

// readLE reads one little-endian value.
func readLE[T uint32 | uint64 | int32](r io.Reader) (T, error) {
	var v T
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

// halfToFloat32 converts an IEEE 754 binary16 value.
func halfToFloat32(h uint16) float32 {
	exp := int(h>>10) & 0x1f
	frac := float64(h&0x3ff) / 1024

	var v float64
	switch exp {
	case 0:
		v = math.Ldexp(frac, -14)
	case 0x1f:
		if frac != 0 {
			return float32(math.NaN())
		}
		v = math.Inf(1)
	default:
		v = math.Ldexp(1+frac, exp-15)
	}
	if h&0x8000 != 0 {
		v = -v
	}
	return float32(v)
}
