package socfpga

import (
	"github.com/fpgacore/hostfw/internal/buttonmap"
	"github.com/fpgacore/hostfw/internal/core"
)

// buttonFromCode resolves an InputEvent's integer Code to an abstract
// Button for a gamepad event; callers post the Button's own int value.
func buttonFromCode(code int) buttonmap.Button { return buttonmap.Button(code) }

// packedBitOrder is the recorded-input bit order (A, B, Select, Start,
// Up, Down, Left, Right), matching a recording's RLDUTSBA-derived packed
// byte.
var packedBitOrder = [8]buttonmap.Button{
	buttonmap.A, buttonmap.B, buttonmap.Back, buttonmap.Start,
	buttonmap.DpadUp, buttonmap.DpadDown, buttonmap.DpadLeft, buttonmap.DpadRight,
}

// applyPackedButtons presses/releases every button implied by a recorded
// frame's packed byte for one port.
func applyPackedButtons(h *core.Handle, player int, packed byte) {
	for bit, b := range packedBitOrder {
		if packed&(1<<uint(bit)) != 0 {
			h.GamepadButtonDown(player, b)
		} else {
			h.GamepadButtonUp(player, b)
		}
	}
}
