package regs

import "unsafe"

// FpgaMgrDataBase is the physical address of the small write-only window
// used to stream bulk data (ROM/BIOS/RBF bytes) through the FPGA Manager's
// AXI configuration-data slave port, one 32-bit word at a time.
const FpgaMgrDataBase = 0xFFB90000

type fpgaMgrDataRegs struct {
	data reg32 // write-only
}

// FpgaMgrData overlays the 4-byte data window onto a mapped region.
type FpgaMgrData struct {
	r *fpgaMgrDataRegs
}

func NewFpgaMgrData(win Region) (*FpgaMgrData, error) {
	region, err := win.Slice(FpgaMgrDataBase, int(unsafe.Sizeof(fpgaMgrDataRegs{})))
	if err != nil {
		return nil, err
	}
	r, err := overlay[fpgaMgrDataRegs](region)
	if err != nil {
		return nil, err
	}
	return &FpgaMgrData{r: r}, nil
}

// Write is the only accessor: the data window is write-only in hardware.
func (d *FpgaMgrData) Write(word uint32) { d.r.data.Store(word) }
