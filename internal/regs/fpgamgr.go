package regs

import "unsafe"

// FpgaManagerBase is the physical address of the FPGA Manager register
// block.
const FpgaManagerBase = 0xFF706000

// Ctrl is the FPGA Manager control register bitfield, grounded bit-for-bit
// on the reference's fpgamgrregs/ctrl.rs.
type Ctrl uint32

const (
	ctrlEn          = 1 << 0
	ctrlNce         = 1 << 1
	ctrlNConfigPull = 1 << 2
	ctrlNStatusPull = 1 << 3
	ctrlConfDonePull = 1 << 4
	ctrlPrReq       = 1 << 5
	ctrlCdRatioMask = 0x3 << 6
	ctrlCdRatioShift = 6
	ctrlAxiCfgEn    = 1 << 8
	ctrlCfgWidth    = 1 << 9
)

func (c Ctrl) En() bool           { return c&ctrlEn != 0 }
func (c *Ctrl) SetEn(v bool)      { c.setBit(ctrlEn, v) }
func (c Ctrl) Nce() bool          { return c&ctrlNce != 0 }
func (c *Ctrl) SetNce(v bool)     { c.setBit(ctrlNce, v) }
func (c Ctrl) NConfigPull() bool  { return c&ctrlNConfigPull != 0 }
func (c *Ctrl) SetNConfigPull(v bool) { c.setBit(ctrlNConfigPull, v) }
func (c Ctrl) NStatusPull() bool  { return c&ctrlNStatusPull != 0 }
func (c *Ctrl) SetNStatusPull(v bool) { c.setBit(ctrlNStatusPull, v) }
func (c Ctrl) ConfDonePull() bool { return c&ctrlConfDonePull != 0 }
func (c *Ctrl) SetConfDonePull(v bool) { c.setBit(ctrlConfDonePull, v) }
func (c Ctrl) PrReq() bool        { return c&ctrlPrReq != 0 }
func (c *Ctrl) SetPrReq(v bool)   { c.setBit(ctrlPrReq, v) }

// CdRatio is the configuration-data clock ratio (0..3).
func (c Ctrl) CdRatio() uint32 {
	return uint32(c&ctrlCdRatioMask) >> ctrlCdRatioShift
}

func (c *Ctrl) SetCdRatio(ratio uint32) {
	*c = (*c &^ ctrlCdRatioMask) | Ctrl((ratio<<ctrlCdRatioShift)&ctrlCdRatioMask)
}

func (c Ctrl) AxiCfgEn() bool      { return c&ctrlAxiCfgEn != 0 }
func (c *Ctrl) SetAxiCfgEn(v bool) { c.setBit(ctrlAxiCfgEn, v) }

// CfgWidth reports whether the configuration port is 32 bits wide (true) or
// 16 bits wide (false).
func (c Ctrl) CfgWidth() bool      { return c&ctrlCfgWidth != 0 }
func (c *Ctrl) SetCfgWidth(v bool) { c.setBit(ctrlCfgWidth, v) }

func (c *Ctrl) setBit(mask uint32, v bool) {
	if v {
		*c |= Ctrl(mask)
	} else {
		*c &^= Ctrl(mask)
	}
}

// StatMode is the FPGA Manager status-register mode field.
type StatMode uint32

const (
	StatModePoweredOff  StatMode = 0x0
	StatModeResetPhase  StatMode = 0x1
	StatModeConfigPhase StatMode = 0x2
	StatModeInitPhase   StatMode = 0x3
	StatModeUserMode    StatMode = 0x4
	StatModeUndetermined StatMode = 0x5
)

// Stat is the FPGA Manager status register bitfield, grounded bit-for-bit
// on the reference's fpgamgrregs/stat.rs: mode at bits 2:0, msel at bits
// 7:3.
type Stat uint32

const (
	statModeMask = 0x7
	statMselMask = 0x1F
	statMselShift = 3
)

func (s Stat) Mode() StatMode {
	return StatMode(uint32(s) & statModeMask)
}

func (s Stat) Msel() uint32 {
	return (uint32(s) >> statMselShift) & statMselMask
}

// Is32Bit reports whether the MSEL-selected configuration scheme uses a
// 32-bit-wide configuration port.
func (s Stat) Is32Bit() bool {
	switch s.Msel() {
	case 0x00, 0x01, 0x04, 0x05, 0x08, 0x09, 0x0C, 0x0D:
		return true
	default:
		return false
	}
}

// FpgaManagerRegs is the repr(C)-equivalent FPGA Manager register block:
// status, control, data-clock count/status, GPO, GPI (read-only), misc-in,
// then the interrupt/GPIO register group. Total size is fixed at 0x1C0.
type FpgaManagerRegs struct {
	stat     reg32
	ctrl     reg32
	dclkcnt  reg32
	dclkstat reg32
	gpo      reg32
	gpi      reg32 // read-only
	miscint  reg32

	_pad0 [0x80 - 0x1C]byte

	monGpioExtPortA reg32 // read-only snapshot of GPIO input lines
	_pad1           [0x94 - 0x84]byte
	gpioIntEn       reg32

	_pad2 [0x1C0 - 0x98]byte
}

func init() {
	var r FpgaManagerRegs
	assertOffset("FpgaManagerRegs.stat", unsafe.Offsetof(r.stat), 0x00)
	assertOffset("FpgaManagerRegs.ctrl", unsafe.Offsetof(r.ctrl), 0x04)
	assertOffset("FpgaManagerRegs.dclkcnt", unsafe.Offsetof(r.dclkcnt), 0x08)
	assertOffset("FpgaManagerRegs.dclkstat", unsafe.Offsetof(r.dclkstat), 0x0C)
	assertOffset("FpgaManagerRegs.gpo", unsafe.Offsetof(r.gpo), 0x10)
	assertOffset("FpgaManagerRegs.gpi", unsafe.Offsetof(r.gpi), 0x14)
	assertOffset("FpgaManagerRegs.miscint", unsafe.Offsetof(r.miscint), 0x18)
	assertOffset("FpgaManagerRegs.monGpioExtPortA", unsafe.Offsetof(r.monGpioExtPortA), 0x80)
	assertOffset("FpgaManagerRegs.gpioIntEn", unsafe.Offsetof(r.gpioIntEn), 0x94)
	assertSize("FpgaManagerRegs", unsafe.Sizeof(r), 0x1C0)
}

// FpgaManager overlays FpgaManagerRegs onto a mapped region and exposes
// typed, volatile-safe accessors.
type FpgaManager struct {
	r *FpgaManagerRegs
}

// NewFpgaManager maps the FPGA Manager register block out of win.
func NewFpgaManager(win Region) (*FpgaManager, error) {
	region, err := win.Slice(FpgaManagerBase, int(unsafe.Sizeof(FpgaManagerRegs{})))
	if err != nil {
		return nil, err
	}
	r, err := overlay[FpgaManagerRegs](region)
	if err != nil {
		return nil, err
	}
	return &FpgaManager{r: r}, nil
}

func (m *FpgaManager) Stat() Stat { return Stat(m.r.stat.Load()) }
func (m *FpgaManager) Ctrl() Ctrl { return Ctrl(m.r.ctrl.Load()) }
func (m *FpgaManager) SetCtrl(c Ctrl) { m.r.ctrl.Store(uint32(c)) }
func (m *FpgaManager) DclkCnt() uint32 { return m.r.dclkcnt.Load() }
func (m *FpgaManager) SetDclkCnt(v uint32) { m.r.dclkcnt.Store(v) }
func (m *FpgaManager) DclkStat() uint32 { return m.r.dclkstat.Load() }
func (m *FpgaManager) Gpo() uint32 { return m.r.gpo.Load() }
func (m *FpgaManager) SetGpo(v uint32) { m.r.gpo.Store(v) }

// Gpi is read-only: the FPGA Manager's data-window input line never has a
// writer accessor.
func (m *FpgaManager) Gpi() uint32 { return m.r.gpi.Load() }

func (m *FpgaManager) MiscInt() uint32 { return m.r.miscint.Load() }
func (m *FpgaManager) SetMiscInt(v uint32) { m.r.miscint.Store(v) }

// MonGpioExtPortA is read-only: it mirrors the live GPIO input lines.
func (m *FpgaManager) MonGpioExtPortA() uint32 { return m.r.monGpioExtPortA.Load() }

func (m *FpgaManager) GpioIntEn() uint32 { return m.r.gpioIntEn.Load() }
func (m *FpgaManager) SetGpioIntEn(v uint32) { m.r.gpioIntEn.Store(v) }
