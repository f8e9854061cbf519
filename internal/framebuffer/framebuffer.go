// Package framebuffer reads the scaler's shared-memory framebuffer: its
// big-endian header, pixel data, and triple-buffer layout. Grounded on the
// reference's framebuffer.rs.
package framebuffer

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/fpgacore/hostfw/internal/physmem"
)

// BaseAddress and Size are the physical window the scaler writes into.
const (
	BaseAddress uint64 = 0x2000_0000
	Size        int    = 2048 * 1024 * 3 * 4
)

const scalerFbType = 0x01

// PixelFormat identifies the scaler's output pixel encoding.
type PixelFormat uint8

const (
	RGB16   PixelFormat = 0
	RGB24   PixelFormat = 1
	RGBA32  PixelFormat = 2
	Invalid PixelFormat = 0xFF
)

func pixelFormatFromByte(b byte) PixelFormat {
	switch b {
	case 0:
		return RGB16
	case 1:
		return RGB24
	case 2:
		return RGBA32
	default:
		return Invalid
	}
}

// Attributes unpacks the header's 16-bit attributes word.
type Attributes uint16

func (a Attributes) Interlaced() bool          { return a&1 != 0 }
func (a Attributes) FieldNumber() bool         { return a&(1<<1) != 0 }
func (a Attributes) HorizontalDownscaled() bool { return a&(1<<2) != 0 }
func (a Attributes) VerticalDownscaled() bool   { return a&(1<<3) != 0 }
func (a Attributes) TripleBuffered() bool       { return a&(1<<4) != 0 }

// FrameCounter is a 3-bit value in the header that changes, though not
// necessarily monotonically, roughly every frame; it behaves as a cheap
// checksum for vsync detection rather than a true counter.
func (a Attributes) FrameCounter() uint8 { return uint8((a >> 3) & 0x7) }

const headerByteLen = 16

// Header is the 16-byte big-endian scaler header at the start of each
// buffer.
type Header struct {
	Type          uint8
	PixelFormat   PixelFormat
	HeaderLen     uint16
	Attributes    Attributes
	Width         uint16
	Height        uint16
	Line          uint16
	OutputWidth   uint16
	OutputHeight  uint16
}

// readHeader parses a Header from the first headerByteLen bytes of region,
// returning false if the type byte doesn't match the scaler's framebuffer
// type (no header present, or not yet initialized by a core).
func readHeader(region []byte) (Header, bool) {
	if len(region) < headerByteLen {
		return Header{}, false
	}
	if region[0] != scalerFbType {
		return Header{}, false
	}
	return Header{
		Type:         region[0],
		PixelFormat:  pixelFormatFromByte(region[1]),
		HeaderLen:    binary.BigEndian.Uint16(region[2:4]),
		Attributes:   Attributes(binary.BigEndian.Uint16(region[4:6])),
		Width:        binary.BigEndian.Uint16(region[6:8]),
		Height:       binary.BigEndian.Uint16(region[8:10]),
		Line:         binary.BigEndian.Uint16(region[10:12]),
		OutputWidth:  binary.BigEndian.Uint16(region[12:14]),
		OutputHeight: binary.BigEndian.Uint16(region[14:16]),
	}, true
}

// Layout identifies how many scaler buffers are active and where.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutSingle
	LayoutTripleSmall
	LayoutTripleLarge
)

// offsetOf returns the byte offset of buffer index (0, 1, or 2) within the
// mapped window for a given layout.
func offsetOf(layout Layout, index int) (int, bool) {
	if index == 0 {
		return 0, true
	}
	switch {
	case layout == LayoutTripleSmall && index == 1:
		return 0x0020_0000, true
	case layout == LayoutTripleSmall && index == 2:
		return 0x0040_0000, true
	case layout == LayoutTripleLarge && index == 1:
		return 0x0080_0000, true
	case layout == LayoutTripleLarge && index == 2:
		return 0x0100_0000, true
	default:
		return 0, false
	}
}

// Reader exposes the scaler's shared-memory output to the host: header
// inspection, vsync waiting, and screenshot extraction.
type Reader struct {
	mem    physmem.Mapper
	layout Layout
}

// New wraps an already-mapped framebuffer window.
func New(mem physmem.Mapper) *Reader {
	return &Reader{mem: mem, layout: LayoutUnknown}
}

// ProbeLayout re-derives the triple-buffer layout from the headers
// currently present in memory. A core must have written at least its first
// header before this is meaningful; it is re-run whenever a new core is
// loaded, since layout stability across loads is not guaranteed.
func (r *Reader) ProbeLayout() Layout {
	first, ok := r.headerAt(0)
	if !ok || !first.Attributes.TripleBuffered() {
		r.layout = LayoutSingle
		return r.layout
	}

	_, smallOK := r.headerAtOffset(0x0020_0000)
	_, largeOK := r.headerAtOffset(0x0080_0000)

	switch {
	case largeOK:
		r.layout = LayoutTripleLarge
	case smallOK:
		r.layout = LayoutTripleSmall
	default:
		r.layout = LayoutUnknown
	}
	return r.layout
}

func (r *Reader) headerAtOffset(offset int) (Header, bool) {
	region, err := r.mem.Slice(r.mem.Base()+uint64(offset), headerByteLen)
	if err != nil {
		return Header{}, false
	}
	return readHeader(region)
}

// headerAt returns the header for buffer index under the current layout.
func (r *Reader) headerAt(index int) (Header, bool) {
	offset, ok := offsetOf(r.layout, index)
	if !ok {
		return Header{}, false
	}
	return r.headerAtOffset(offset)
}

// Header returns the header of the primary (index 0) buffer.
func (r *Reader) Header() (Header, bool) { return r.headerAt(0) }

// CurrentLayout reports the layout last determined by ProbeLayout.
func (r *Reader) CurrentLayout() Layout { return r.layout }

// checksumByte returns the single frame-counter byte for buffer index,
// offset 5 into its header (the low byte of the big-endian attributes
// field, which holds the frame-counter bits).
func (r *Reader) checksumByte(index int) (byte, bool) {
	offset, ok := offsetOf(r.layout, index)
	if !ok {
		return 0, false
	}
	region, err := r.mem.Slice(r.mem.Base()+uint64(offset)+5, 1)
	if err != nil || len(region) < 1 {
		return 0, false
	}
	return region[0], true
}

// WaitFrame blocks (busy-polling) until the summed frame-checksum byte
// across all active buffers changes, signalling a new frame was scanned
// out. Single-buffer layouts sum just buffer 0 three times, which still
// changes whenever the one checksum byte does.
func (r *Reader) WaitFrame() {
	sum := func() byte {
		var total byte
		for i := 0; i < 3; i++ {
			idx := i
			if r.layout == LayoutSingle {
				idx = 0
			}
			b, _ := r.checksumByte(idx)
			total += b
		}
		return total
	}

	last := sum()
	for sum() == last {
	}
}

// Write copies data into the primary buffer's pixel region, starting right
// after its header.
func (r *Reader) Write(data []byte) error {
	header, ok := r.Header()
	if !ok {
		return fmt.Errorf("framebuffer: no header present")
	}
	region, err := r.mem.Slice(r.mem.Base()+uint64(header.HeaderLen), len(data))
	if err != nil {
		return err
	}
	copy(region, data)
	return nil
}

// Screenshot extracts the primary buffer's pixel data as an image.Image.
// Only RGB24 is currently decoded; other pixel formats return an error,
// matching the reference's own unimplemented RGB16/RGBA32 paths.
func (r *Reader) Screenshot() (image.Image, error) {
	header, ok := r.Header()
	if !ok {
		return nil, fmt.Errorf("framebuffer: no header present")
	}
	if header.PixelFormat != RGB24 {
		return nil, fmt.Errorf("framebuffer: unsupported pixel format %d", header.PixelFormat)
	}

	width := int(header.Width)
	height := int(header.Height)
	line := int(header.Line)

	pixels, err := r.mem.Slice(r.mem.Base()+uint64(header.HeaderLen), line*height*3)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := pixels[y*line*3 : y*line*3+width*3]
		for x := 0; x < width; x++ {
			r8, g8, b8 := row[x*3], row[x*3+1], row[x*3+2]
			img.Set(x, y, colorRGB{r8, g8, b8})
		}
	}
	return img, nil
}

// colorRGB is a minimal opaque color.Color implementation avoiding an
// extra copy through color.RGBA's alpha handling.
type colorRGB struct{ r, g, b uint8 }

func (c colorRGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = 0xFFFF
	return
}

// SaveScreenshotPNG extracts the current screenshot and writes it to path
// as a PNG file.
func (r *Reader) SaveScreenshotPNG(path string) error {
	img, err := r.Screenshot()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
