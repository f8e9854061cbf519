package regs

import (
	"testing"
	"unsafe"

	"github.com/fpgacore/hostfw/internal/physmem"
)

func TestFpgaManagerRegsLayout(t *testing.T) {
	var r FpgaManagerRegs
	if got, want := unsafe.Sizeof(r), uintptr(0x1C0); got != want {
		t.Fatalf("sizeof(FpgaManagerRegs) = 0x%X, want 0x%X", got, want)
	}
	if got, want := unsafe.Offsetof(r.gpo), uintptr(0x10); got != want {
		t.Fatalf("offsetof(gpo) = 0x%X, want 0x%X", got, want)
	}
	if got, want := unsafe.Offsetof(r.gpi), uintptr(0x14); got != want {
		t.Fatalf("offsetof(gpi) = 0x%X, want 0x%X", got, want)
	}
}

func TestL3RegsLayout(t *testing.T) {
	var r L3Regs
	if got, want := unsafe.Sizeof(r), uintptr(0x4C10C); got != want {
		t.Fatalf("sizeof(L3Regs) = 0x%X, want 0x%X", got, want)
	}
	if got, want := unsafe.Offsetof(r.sdrData), uintptr(0xA0); got != want {
		t.Fatalf("offsetof(sdrData) = 0x%X, want 0x%X", got, want)
	}
	if got, want := unsafe.Offsetof(r.l4mainFnModBmIss), uintptr(0x2008); got != want {
		t.Fatalf("offsetof(l4mainFnModBmIss) = 0x%X, want 0x%X", got, want)
	}
	if got, want := unsafe.Offsetof(r.fpgaMgrDataFnModBmIss), uintptr(0x23008); got != want {
		t.Fatalf("offsetof(fpgaMgrDataFnModBmIss) = 0x%X, want 0x%X", got, want)
	}
	if got, want := unsafe.Offsetof(r.usb1ReadQos), uintptr(0x4C100); got != want {
		t.Fatalf("offsetof(usb1ReadQos) = 0x%X, want 0x%X", got, want)
	}
}

func TestFpgaManagerGpoReadBack(t *testing.T) {
	win := physmem.NewFake(FpgaManagerBase, int(unsafe.Sizeof(FpgaManagerRegs{})))
	m, err := NewFpgaManager(win)
	if err != nil {
		t.Fatalf("NewFpgaManager: %v", err)
	}

	m.SetGpo(0x1234)
	if got := m.Gpo(); got != 0x1234 {
		t.Fatalf("Gpo() = 0x%X, want 0x1234", got)
	}
}

func TestStatModeMsel(t *testing.T) {
	s := Stat(0x04) // mode bits 100 = UserMode
	if s.Mode() != StatModeUserMode {
		t.Fatalf("Mode() = %v, want UserMode", s.Mode())
	}

	s = Stat(0x01 | (0x05 << 3)) // mode=ResetPhase, msel=5
	if s.Mode() != StatModeResetPhase {
		t.Fatalf("Mode() = %v, want ResetPhase", s.Mode())
	}
	if s.Msel() != 0x05 {
		t.Fatalf("Msel() = 0x%X, want 0x05", s.Msel())
	}
}

func TestCtrlBits(t *testing.T) {
	var c Ctrl
	c.SetEn(true)
	c.SetCdRatio(2)
	if !c.En() {
		t.Fatal("En() = false, want true")
	}
	if c.CdRatio() != 2 {
		t.Fatalf("CdRatio() = %d, want 2", c.CdRatio())
	}
	c.SetEn(false)
	if c.En() {
		t.Fatal("En() = true after SetEn(false)")
	}
	if c.CdRatio() != 2 {
		t.Fatal("SetEn must not disturb CdRatio bits")
	}
}
