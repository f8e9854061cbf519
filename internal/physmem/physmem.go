// Package physmem opens the host's physical-memory device and hands out
// typed views into hardware register and framebuffer regions.
package physmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultDevice is the physical-memory character device used when no
// override is given.
const DefaultDevice = "/dev/mem"

// Window is a single mapping of a physical address range into the
// process's address space. It is process-wide but not internally
// synchronized; callers must ensure single-thread access to any one
// register.
type Window struct {
	base uint64
	data []byte
	file *os.File
}

// Map opens dev and maps size bytes starting at the physical address base.
// The mapping is read/write and shared, matching the discipline a live
// register aperture or framebuffer region requires.
func Map(dev string, base uint64, size int) (*Window, error) {
	f, err := os.OpenFile(dev, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("physmem: open %s: %w", dev, err)
	}

	data, err := unix.Mmap(int(f.Fd()), int64(base), size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("physmem: mmap base=0x%x size=0x%x: %w", base, size, err)
	}

	return &Window{base: base, data: data, file: f}, nil
}

// Base returns the physical address this window starts at.
func (w *Window) Base() uint64 { return w.base }

// Bytes returns the raw mapped region. Register banks overlay their
// structs onto a sub-slice of this.
func (w *Window) Bytes() []byte { return w.data }

// Slice returns the mapped bytes for a sub-region of the window, given the
// sub-region's physical address and length.
func (w *Window) Slice(physAddr uint64, length int) ([]byte, error) {
	if physAddr < w.base {
		return nil, fmt.Errorf("physmem: address 0x%x below window base 0x%x", physAddr, w.base)
	}
	off := physAddr - w.base
	end := off + uint64(length)
	if end > uint64(len(w.data)) {
		return nil, fmt.Errorf("physmem: region 0x%x+0x%x exceeds window size 0x%x", physAddr, length, len(w.data))
	}
	return w.data[off:end], nil
}

// Close releases the mapping. The window must not be used afterward.
func (w *Window) Close() error {
	var err error
	if w.data != nil {
		err = unix.Munmap(w.data)
		w.data = nil
	}
	if w.file != nil {
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
		w.file = nil
	}
	return err
}
