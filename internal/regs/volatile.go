// Package regs provides repr(C)-equivalent, field-aligned register structs
// mapped directly over the physical register regions handed out by
// internal/physmem. Every accessor is a single volatile-discipline load or
// store of exactly the field width; composite bitfields are expressed as a
// distinct newtype with explicit getters/setters per bit or range.
package regs

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/fpgacore/hostfw/internal/physmem"
)

// reg32 is the volatile-access primitive for a 32-bit hardware register. It
// must never be read or written through a plain Go load/store: all access
// goes through atomic, matching what a genuinely volatile register requires
// (the compiler cannot reorder, cache, or fold a sequence of atomic ops).
type reg32 struct{ v uint32 }

func (r *reg32) Load() uint32     { return atomic.LoadUint32(&r.v) }
func (r *reg32) Store(v uint32)   { atomic.StoreUint32(&r.v, v) }

// reg16 is the 16-bit counterpart of reg32.
type reg16 struct{ v uint16 }

func (r *reg16) Load() uint16   { return atomic.LoadUint16(&r.v) }
func (r *reg16) Store(v uint16) { atomic.StoreUint16(&r.v, v) }

// overlay casts a mapped byte slice onto a register struct pointer of type
// T, after checking the slice is at least as long as the struct. Callers
// must not retain the slice independently of the returned pointer; both
// alias the same backing array handed out by the physical memory window.
func overlay[T any](region []byte) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(region) < size {
		return nil, fmt.Errorf("regs: region too small: have %d bytes, need %d", len(region), size)
	}
	return (*T)(unsafe.Pointer(&region[0])), nil
}

// Region is anything that can hand back the raw bytes backing a register
// struct at a given physical address — physmem.Window or physmem.Fake.
type Region = physmem.Mapper
