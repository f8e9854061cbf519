package regs

import "unsafe"

// SdramBase is the physical address of the SDRAM controller register
// block. Layout elided except for the registers the FPGA loader touches
// when handing SDRAM arbitration to the fabric.
const SdramBase = 0xFFC20000

type SdramCtrlRegs struct {
	ctrl       reg32
	_pad0      [0x5C - 0x04]byte
	fpgaportrst reg32
	_pad1      [0x80 - 0x60]byte
}

func init() {
	var r SdramCtrlRegs
	assertOffset("SdramCtrlRegs.ctrl", unsafe.Offsetof(r.ctrl), 0x00)
	assertOffset("SdramCtrlRegs.fpgaportrst", unsafe.Offsetof(r.fpgaportrst), 0x5C)
}

// SdramCtrl overlays SdramCtrlRegs onto a mapped region.
type SdramCtrl struct {
	r *SdramCtrlRegs
}

func NewSdramCtrl(win Region) (*SdramCtrl, error) {
	region, err := win.Slice(SdramBase, int(unsafe.Sizeof(SdramCtrlRegs{})))
	if err != nil {
		return nil, err
	}
	r, err := overlay[SdramCtrlRegs](region)
	if err != nil {
		return nil, err
	}
	return &SdramCtrl{r: r}, nil
}

func (s *SdramCtrl) FpgaPortRst() uint32 { return s.r.fpgaportrst.Load() }
func (s *SdramCtrl) SetFpgaPortRst(v uint32) { s.r.fpgaportrst.Store(v) }
