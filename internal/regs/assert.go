package regs

import "fmt"

// assertOffset and assertSize stand in for the reference's compile-time
// offset assertions (const_assert_eq! over offset_of!). Go has no constant
// unsafe.Offsetof over a package-level const, so the check runs once at
// package init instead of at compile time, but it still fails fast, before
// any register is touched, rather than silently misreading hardware.
func assertOffset(field string, got, want uintptr) {
	if got != want {
		panic(fmt.Sprintf("regs: %s offset = 0x%X, want 0x%X", field, got, want))
	}
}

func assertSize(typeName string, got, want uintptr) {
	if got != want {
		panic(fmt.Sprintf("regs: sizeof(%s) = 0x%X, want 0x%X", typeName, got, want))
	}
}
