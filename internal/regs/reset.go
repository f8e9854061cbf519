package regs

import "unsafe"

// ResetManagerBase is the physical address of the Reset Manager register
// block. Its internal layout is elided per the platform's design notes;
// only the registers this firmware actually drives are named.
const ResetManagerBase = 0xFFD05000

type ResetManagerRegs struct {
	status    reg32
	ctrl      reg32
	counts    reg32
	_pad0     [0x10 - 0x0C]byte
	mpuModRst reg32
	perModRst reg32
	brgModRst reg32
	miscModRst reg32
}

func init() {
	var r ResetManagerRegs
	assertOffset("ResetManagerRegs.status", unsafe.Offsetof(r.status), 0x00)
	assertOffset("ResetManagerRegs.ctrl", unsafe.Offsetof(r.ctrl), 0x04)
	assertOffset("ResetManagerRegs.mpuModRst", unsafe.Offsetof(r.mpuModRst), 0x10)
}

// ResetManager overlays ResetManagerRegs onto a mapped region.
type ResetManager struct {
	r *ResetManagerRegs
}

func NewResetManager(win Region) (*ResetManager, error) {
	region, err := win.Slice(ResetManagerBase, int(unsafe.Sizeof(ResetManagerRegs{})))
	if err != nil {
		return nil, err
	}
	r, err := overlay[ResetManagerRegs](region)
	if err != nil {
		return nil, err
	}
	return &ResetManager{r: r}, nil
}

func (m *ResetManager) Status() uint32 { return m.r.status.Load() }
func (m *ResetManager) Ctrl() uint32   { return m.r.ctrl.Load() }
func (m *ResetManager) SetCtrl(v uint32) { m.r.ctrl.Store(v) }
func (m *ResetManager) BrgModRst() uint32 { return m.r.brgModRst.Load() }
func (m *ResetManager) SetBrgModRst(v uint32) { m.r.brgModRst.Store(v) }
