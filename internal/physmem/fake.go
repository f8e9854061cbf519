package physmem

import "fmt"

// Mapper is the subset of Window's surface that register banks and the
// framebuffer reader depend on, so tests can substitute Fake for a real
// mmap'd Window.
type Mapper interface {
	Base() uint64
	Bytes() []byte
	Slice(physAddr uint64, length int) ([]byte, error)
}

// Fake is an in-memory stand-in for Window, backed by a plain byte slice.
// It lets every downstream package exercise register and framebuffer logic
// without a real /dev/mem device.
type Fake struct {
	base uint64
	data []byte
}

// NewFake allocates a zeroed fake window of size bytes starting at base.
func NewFake(base uint64, size int) *Fake {
	return &Fake{base: base, data: make([]byte, size)}
}

func (f *Fake) Base() uint64  { return f.base }
func (f *Fake) Bytes() []byte { return f.data }

func (f *Fake) Slice(physAddr uint64, length int) ([]byte, error) {
	if physAddr < f.base {
		return nil, fmt.Errorf("physmem: address 0x%x below window base 0x%x", physAddr, f.base)
	}
	off := physAddr - f.base
	end := off + uint64(length)
	if end > uint64(len(f.data)) {
		return nil, fmt.Errorf("physmem: region 0x%x+0x%x exceeds window size 0x%x", physAddr, length, len(f.data))
	}
	return f.data[off:end], nil
}

var _ Mapper = (*Window)(nil)
var _ Mapper = (*Fake)(nil)
