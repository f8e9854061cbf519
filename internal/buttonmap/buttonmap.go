// Package buttonmap implements the bidirectional mapping between abstract
// controller buttons, per-core button names, and a packed bit field.
// Grounded on the reference's core/buttons.rs.
package buttonmap

import "strings"

// Button is the abstract-button symbol space, sized to hold the DPad,
// face buttons, shoulders, start/back, stick clicks, analog axes, and a
// "no mapping" sentinel.
type Button int

const (
	NoMapping Button = -1

	DpadRight Button = iota
	DpadLeft
	DpadDown
	DpadUp

	B
	A
	Y
	X

	LeftShoulder
	RightShoulder

	Back
	Start

	MsRight
	MsLeft
	MsDown
	MsUp
	MsBtnL
	MsBtnR
	MsBtnM
	MsBtnEmu

	BtnOsdKtglKb
	BtnOsdKtglGamepad1
	BtnOsdKtglGamepad2
	Menu

	Axis1X
	Axis1Y
	Axis2X
	Axis2Y
	AxisLX
	AxisLY
	AxisRX
	AxisRY
	AxisMX
	AxisMY
)

// buttonNames maps each non-sentinel Button to its canonical serialized
// name, as accepted (case-insensitively) in a core's joystick-buttons
// declaration.
var buttonNames = map[Button]string{
	DpadRight:    "DpadRight",
	DpadLeft:     "DpadLeft",
	DpadDown:     "DpadDown",
	DpadUp:       "DpadUp",
	B:            "B",
	A:            "A",
	Y:            "Y",
	X:            "X",
	LeftShoulder: "L",
	RightShoulder: "R",
	Back:         "Back",
	Start:        "Start",
	MsRight:      "MsRight",
	MsLeft:       "MsLeft",
	MsDown:       "MsDown",
	MsUp:         "MsUp",
	MsBtnL:       "MsBtnL",
	MsBtnR:       "MsBtnR",
	MsBtnM:       "MsBtnM",
	MsBtnEmu:     "MsBtnEmu",
	BtnOsdKtglKb: "BtnOsdKtglKb",
	BtnOsdKtglGamepad1: "BtnOsdKtglGamepad1",
	BtnOsdKtglGamepad2: "BtnOsdKtglGamepad2",
	Menu:         "Menu",
	Axis1X:       "Axis1X",
	Axis1Y:       "Axis1Y",
	Axis2X:       "Axis2X",
	Axis2Y:       "Axis2Y",
	AxisLX:       "AxisLX",
	AxisLY:       "AxisLY",
	AxisRX:       "AxisRX",
	AxisRY:       "AxisRY",
	AxisMX:       "AxisMX",
	AxisMY:       "AxisMY",
}

// aliases are accepted alternate spellings for a button name, per the
// platform's naming conventions (SNES-style "Select" vs "Back", and the
// single-letter shoulder names).
var aliases = map[string]Button{
	"select":       Back,
	"back":         Back,
	"l":            LeftShoulder,
	"leftshoulder": LeftShoulder,
	"r":            RightShoulder,
	"rightshoulder": RightShoulder,
}

func init() {
	for b, name := range buttonNames {
		aliases[strings.ToLower(name)] = b
	}
}

// ParseButtonName resolves a core-declared button name (trimmed,
// case-insensitive) to its abstract Button, or NoMapping if unrecognized.
// A name may list '|'-separated alternatives (e.g. "R|P"); the first
// alternative that resolves wins.
func ParseButtonName(name string) Button {
	for _, alt := range strings.Split(name, "|") {
		alt = strings.ToLower(strings.TrimSpace(alt))
		if b, ok := aliases[alt]; ok {
			return b
		}
	}
	return NoMapping
}

const numSdlButtons = 256

// defaultSnesNames is the default SNES-style button-name list the
// reference builds its default map from.
var defaultSnesNames = []string{"A", "B", "X", "Y", "L", "R", "Back", "Start"}

// ButtonMap holds the SDL-index -> abstract table, the abstract ->
// core-bit-position table, and the packed pressed-state word.
type ButtonMap struct {
	sdlToAbstract [numSdlButtons]Button
	corePos       map[Button]uint8
	bits          uint32
}

// New builds the default mapping: the fixed SDL->abstract table (indices
// 0..14 cover A, B, X, Y, Back, menu-toggle, Start, the two primary
// analog axes, the shoulders, and the DPad) composed with the default
// SNES-style button-name list.
func New() *ButtonMap {
	m := &ButtonMap{}
	for i := range m.sdlToAbstract {
		m.sdlToAbstract[i] = NoMapping
	}

	sdlDefaults := []Button{
		A, B, X, Y, Back, BtnOsdKtglGamepad1, Start, Axis1X, Axis2X,
		LeftShoulder, RightShoulder, DpadUp, DpadDown, DpadLeft, DpadRight,
	}
	for i, b := range sdlDefaults {
		m.sdlToAbstract[i] = b
	}

	m.MapFromNameList(defaultSnesNames)
	return m
}

// MapFromNameList rebuilds the abstract -> core-bit-position table from a
// core's joystick-buttons declaration: the DPad occupies positions 0..4
// always, then each name in list is assigned the next position in order.
// Unknown names still occupy a position (keeping the positions of the
// remaining names stable) but route to NoMapping, so they are never set.
func (m *ButtonMap) MapFromNameList(names []string) {
	m.corePos = map[Button]uint8{
		DpadRight: 0,
		DpadLeft:  1,
		DpadDown:  2,
		DpadUp:    3,
	}
	for i, name := range names {
		pos := uint8(i + 4)
		b := ParseButtonName(name)
		if b == NoMapping {
			continue
		}
		m.corePos[b] = pos
	}
}

// Press sets the bit for an abstract button that has a core mapping; it
// is a no-op for NoMapping or an unmapped button.
func (m *ButtonMap) Press(b Button) {
	if pos, ok := m.corePos[b]; ok {
		m.bits |= 1 << pos
	}
}

// Release clears the bit for an abstract button.
func (m *ButtonMap) Release(b Button) {
	if pos, ok := m.corePos[b]; ok {
		m.bits &^= 1 << pos
	}
}

// Down resolves an SDL button index through both tables and sets the
// corresponding bit, returning the new packed word.
func (m *ButtonMap) Down(sdlIndex int) uint32 {
	if sdlIndex >= 0 && sdlIndex < numSdlButtons {
		m.Press(m.sdlToAbstract[sdlIndex])
	}
	return m.bits
}

// Up is Down's release counterpart.
func (m *ButtonMap) Up(sdlIndex int) uint32 {
	if sdlIndex >= 0 && sdlIndex < numSdlButtons {
		m.Release(m.sdlToAbstract[sdlIndex])
	}
	return m.bits
}

// Set overwrites the packed pressed-state word wholesale.
func (m *ButtonMap) Set(word uint32) { m.bits = word }

// Value returns the current packed pressed-state word.
func (m *ButtonMap) Value() uint32 { return m.bits }

// Position reports the core bit position an abstract button maps to, if
// any.
func (m *ButtonMap) Position(b Button) (uint8, bool) {
	pos, ok := m.corePos[b]
	return pos, ok
}
