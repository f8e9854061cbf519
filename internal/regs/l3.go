package regs

import "unsafe"

// L3Base is the physical address of the L3 interconnect register block.
const L3Base = 0xFF800000

// L3Regs is the L3 interconnect register block: a write-only remap
// register, per-master security registers, then per-master FN_MOD_BM_ISS
// and QoS register groups at large fixed offsets. The gaps between groups
// are real: each L4 bus's control registers live in their own 4 KiB page
// of the L3 switch's address map, grounded on the reference's l3regs.rs.
type L3Regs struct {
	remap reg32 // write-only

	_pad0x4 [4]byte

	l4main          reg32
	l4sp            reg32
	l4mp            reg32
	l4osc1          reg32
	l4spim          reg32
	stm             reg32
	lwhps2fpgaregs  reg32

	_pad0x24 [4]byte

	usb1     reg32
	nandData reg32

	_pad0x30 [0x80 - 0x30]byte

	usb0        reg32
	nandRegs    reg32
	qspiData    reg32
	fpgaMgrData reg32
	hps2fpgaregs reg32
	acp         reg32
	rom         reg32
	ocram       reg32
	sdrData     reg32

	_pad0xa4 [0x2008 - 0xA4]byte // security-group tail + periph/comp ID registers

	l4mainFnModBmIss reg32

	_pad0x200c [0x23008 - 0x2008 - 4]byte

	fpgaMgrDataFnModBmIss reg32

	_pad0x2300c [0x4C100 - 0x23008 - 4]byte

	usb1ReadQos reg32

	usb1WriteQos reg32
	usb1FnMod    reg32
}

func init() {
	var r L3Regs
	assertOffset("L3Regs.remap", unsafe.Offsetof(r.remap), 0x0)
	assertOffset("L3Regs.sdrData", unsafe.Offsetof(r.sdrData), 0xA0)
	assertOffset("L3Regs.l4mainFnModBmIss", unsafe.Offsetof(r.l4mainFnModBmIss), 0x2008)
	assertOffset("L3Regs.fpgaMgrDataFnModBmIss", unsafe.Offsetof(r.fpgaMgrDataFnModBmIss), 0x23008)
	assertOffset("L3Regs.usb1ReadQos", unsafe.Offsetof(r.usb1ReadQos), 0x4C100)
	assertSize("L3Regs", unsafe.Sizeof(r), 0x4C10C)
}

// L3 overlays L3Regs onto a mapped region.
type L3 struct {
	r *L3Regs
}

// NewL3 maps the L3 interconnect register block out of win.
func NewL3(win Region) (*L3, error) {
	region, err := win.Slice(L3Base, int(unsafe.Sizeof(L3Regs{})))
	if err != nil {
		return nil, err
	}
	r, err := overlay[L3Regs](region)
	if err != nil {
		return nil, err
	}
	return &L3{r: r}, nil
}

// SetRemap is the only accessor for the remap register: it is write-only
// in hardware and therefore has no reader here.
func (l *L3) SetRemap(v uint32) { l.r.remap.Store(v) }

func (l *L3) L4Main() uint32 { return l.r.l4main.Load() }
func (l *L3) SetL4Main(v uint32) { l.r.l4main.Store(v) }

func (l *L3) Usb1() uint32 { return l.r.usb1.Load() }
func (l *L3) SetUsb1(v uint32) { l.r.usb1.Store(v) }

func (l *L3) FpgaMgrData() uint32 { return l.r.fpgaMgrData.Load() }
func (l *L3) SetFpgaMgrData(v uint32) { l.r.fpgaMgrData.Store(v) }

func (l *L3) SdrData() uint32 { return l.r.sdrData.Load() }
func (l *L3) SetSdrData(v uint32) { l.r.sdrData.Store(v) }

func (l *L3) L4MainFnModBmIss() uint32 { return l.r.l4mainFnModBmIss.Load() }
func (l *L3) SetL4MainFnModBmIss(v uint32) { l.r.l4mainFnModBmIss.Store(v) }

func (l *L3) FpgaMgrDataFnModBmIss() uint32 { return l.r.fpgaMgrDataFnModBmIss.Load() }
func (l *L3) SetFpgaMgrDataFnModBmIss(v uint32) { l.r.fpgaMgrDataFnModBmIss.Store(v) }

func (l *L3) Usb1ReadQos() uint32 { return l.r.usb1ReadQos.Load() }
func (l *L3) SetUsb1ReadQos(v uint32) { l.r.usb1ReadQos.Store(v) }

func (l *L3) Usb1WriteQos() uint32 { return l.r.usb1WriteQos.Load() }
func (l *L3) SetUsb1WriteQos(v uint32) { l.r.usb1WriteQos.Store(v) }

func (l *L3) Usb1FnMod() uint32 { return l.r.usb1FnMod.Load() }
func (l *L3) SetUsb1FnMod(v uint32) { l.r.usb1FnMod.Store(v) }
