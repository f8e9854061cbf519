package framebuffer

import (
	"encoding/binary"
	"testing"

	"github.com/fpgacore/hostfw/internal/physmem"
)

func writeHeader(region []byte, triple bool, width, height, line uint16, pixelFmt byte, checksum byte) {
	region[0] = scalerFbType
	region[1] = pixelFmt
	binary.BigEndian.PutUint16(region[2:4], headerByteLen)
	attrs := uint16(0)
	if triple {
		attrs |= 1 << 4
	}
	attrs |= uint16(checksum&0x7) << 3
	binary.BigEndian.PutUint16(region[4:6], attrs)
	binary.BigEndian.PutUint16(region[6:8], width)
	binary.BigEndian.PutUint16(region[8:10], height)
	binary.BigEndian.PutUint16(region[10:12], line)
}

func TestProbeLayoutSingle(t *testing.T) {
	fake := physmem.NewFake(BaseAddress, Size)
	region, _ := fake.Slice(BaseAddress, headerByteLen)
	writeHeader(region, false, 4, 4, 4, byte(RGB24), 0)

	r := New(fake)
	if layout := r.ProbeLayout(); layout != LayoutSingle {
		t.Fatalf("ProbeLayout() = %v, want LayoutSingle", layout)
	}
}

func TestProbeLayoutTripleLarge(t *testing.T) {
	fake := physmem.NewFake(BaseAddress, Size)
	region, _ := fake.Slice(BaseAddress, headerByteLen)
	writeHeader(region, true, 4, 4, 4, byte(RGB24), 0)

	large, _ := fake.Slice(BaseAddress+0x0080_0000, headerByteLen)
	writeHeader(large, true, 4, 4, 4, byte(RGB24), 0)

	r := New(fake)
	if layout := r.ProbeLayout(); layout != LayoutTripleLarge {
		t.Fatalf("ProbeLayout() = %v, want LayoutTripleLarge", layout)
	}
}

func TestWaitFrameDetectsChecksumChange(t *testing.T) {
	fake := physmem.NewFake(BaseAddress, Size)
	region, _ := fake.Slice(BaseAddress, headerByteLen)
	writeHeader(region, false, 4, 4, 4, byte(RGB24), 0)

	r := New(fake)
	r.ProbeLayout()

	done := make(chan struct{})
	go func() {
		r.WaitFrame()
		close(done)
	}()

	region[5] = 1

	<-done
}

func TestScreenshotRejectsUnsupportedFormat(t *testing.T) {
	fake := physmem.NewFake(BaseAddress, Size)
	region, _ := fake.Slice(BaseAddress, headerByteLen)
	writeHeader(region, false, 4, 4, 4, byte(RGB16), 0)

	r := New(fake)
	r.ProbeLayout()

	if _, err := r.Screenshot(); err == nil {
		t.Fatal("expected error for RGB16 screenshot")
	}
}
