package regs

import "unsafe"

// SysMgrBase is the physical address of the System Manager register
// block.
const SysMgrBase = 0xFFD08000

type SystemManagerRegs struct {
	siliconID reg32
	_pad0     [0x10 - 0x04]byte
	fpgaIntfGrp reg32
	_pad1     [0x30 - 0x14]byte
}

func init() {
	var r SystemManagerRegs
	assertOffset("SystemManagerRegs.siliconID", unsafe.Offsetof(r.siliconID), 0x00)
	assertOffset("SystemManagerRegs.fpgaIntfGrp", unsafe.Offsetof(r.fpgaIntfGrp), 0x10)
}

// SystemManager overlays SystemManagerRegs onto a mapped region.
type SystemManager struct {
	r *SystemManagerRegs
}

func NewSystemManager(win Region) (*SystemManager, error) {
	region, err := win.Slice(SysMgrBase, int(unsafe.Sizeof(SystemManagerRegs{})))
	if err != nil {
		return nil, err
	}
	r, err := overlay[SystemManagerRegs](region)
	if err != nil {
		return nil, err
	}
	return &SystemManager{r: r}, nil
}

func (s *SystemManager) SiliconID() uint32 { return s.r.siliconID.Load() }

// FpgaIntfGrp selects which HPS peripherals are routed through the
// FPGA fabric versus the hard peripheral pins.
func (s *SystemManager) FpgaIntfGrp() uint32 { return s.r.fpgaIntfGrp.Load() }
func (s *SystemManager) SetFpgaIntfGrp(v uint32) { s.r.fpgaIntfGrp.Store(v) }
