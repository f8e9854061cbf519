// Package keyboard implements the 256-entry lookup from an abstract
// (SDL/USB-HID scancode page) keyboard scancode to a PS/2 Set-2 code, bit
// for bit compatible with the reference's keyboard.rs so existing cores
// keep working unmodified.
package keyboard

// Code is a PS/2 code together with any modifier/extended bias bits
// folded into the same word, per the platform's wire convention.
type Code uint32

// Modifier and flag bits, OR'd into the PS/2 code where required. These
// values are a domain convention, not a language construct, and must
// match exactly for wire compatibility with existing cores.
const (
	LCtrl       Code = 0x000100
	LShift      Code = 0x000200
	LAlt        Code = 0x000400
	LGui        Code = 0x000800
	RCtrl       Code = 0x001000
	RShift      Code = 0x002000
	RAlt        Code = 0x004000
	RGui        Code = 0x008000
	ModMask     Code = 0x00FF00
	CapsToggle  Code = 0x040000
	Ext         Code = 0x080000
	EmuSwitch1  Code = 0x100000
	EmuSwitch2  Code = 0x200000
	Upstroke    Code = 0x400000
)

// None is the sentinel for an abstract scancode with no PS/2 equivalent;
// keyDown/keyUp discard it.
const None Code = 0xFF

// sdlToPs2 is indexed by the abstract scancode (the USB-HID/SDL3
// keyboard-page ordering: letters at 4..29, digits at 30..39, and so on).
// Entries not populated below default to None.
var sdlToPs2 [256]Code

func set(index int, code Code) { sdlToPs2[index] = code }

func init() {
	for i := range sdlToPs2 {
		sdlToPs2[i] = None
	}

	letters := []Code{
		0x1C, 0x32, 0x21, 0x23, 0x24, 0x2B, 0x34, 0x33, 0x43, 0x3B, // A-J
		0x42, 0x4B, 0x3A, 0x31, 0x44, 0x4D, 0x15, 0x2D, 0x1B, 0x2C, // K-T
		0x3C, 0x2A, 0x1D, 0x22, 0x35, 0x1A, // U-Z
	}
	for i, c := range letters {
		set(4+i, c)
	}

	digits := []Code{0x16, 0x1E, 0x26, 0x25, 0x2E, 0x36, 0x3D, 0x3E, 0x46, 0x45} // 1..9, 0
	for i, c := range digits {
		set(30+i, c)
	}

	set(40, 0x5A) // Enter
	set(41, 0x76) // Escape
	set(42, 0x66) // Backspace
	set(43, 0x0D) // Tab
	set(44, 0x29) // Space

	set(45, 0x4E) // Minus
	set(46, 0x55) // Equal
	set(47, 0x54) // LeftBracket
	set(48, 0x5B) // RightBracket
	set(49, 0x5D) // Backslash
	set(51, 0x4C) // Semicolon
	set(52, 0x52) // Apostrophe
	set(53, 0x0E) // Grave
	set(54, 0x41) // Comma
	set(55, 0x49) // Period
	set(56, 0x4A) // Slash

	set(57, 0x58) // CapsLock

	fkeys := []Code{0x05, 0x06, 0x04, 0x0C, 0x03, 0x0B, 0x83, 0x0A, 0x01, 0x09, 0x78, 0x07} // F1..F12
	for i, c := range fkeys {
		set(58+i, c)
	}

	set(71, EmuSwitch1+0x7E) // ScrollLock, repurposed as an emulator-switch key
	set(72, 0xE1)            // Pause

	set(73, Ext+0x70) // Insert
	set(74, Ext+0x6C) // Home
	set(75, Ext+0x7D) // PageUp
	set(76, Ext+0x71) // Delete
	set(77, Ext+0x69) // End
	set(78, Ext+0x7A) // PageDown

	set(79, Ext+0x74) // Right
	set(80, Ext+0x6B) // Left
	set(81, Ext+0x72) // Down
	set(82, Ext+0x75) // Up

	set(83, EmuSwitch2+0x77) // NumLockClear
	set(84, Ext+0x4A)        // KpDivide
	set(85, 0x7C)            // KpMultiply
	set(86, 0x7B)            // KpMinus
	set(87, 0x79)            // KpPlus
	set(88, Ext+0x5A)        // KpEnter

	kp := []Code{0x69, 0x72, 0x7A, 0x6B, 0x73, 0x74, 0x6C, 0x75, 0x7D} // Kp1..Kp9
	for i, c := range kp {
		set(89+i, c)
	}
	set(98, 0x70) // Kp0
	set(99, 0x71) // KpPeriod

	set(101, Ext+0x2F) // Application/Menu (Compose)

	set(224, LCtrl+0x14)       // LeftCtrl
	set(225, LShift+0x12)      // LeftShift
	set(226, LAlt+0x11)        // LeftAlt
	set(227, LGui+Ext+0x1F)    // LeftGui
	set(228, RCtrl+Ext+0x14)   // RightCtrl
	set(229, RShift+0x59)      // RightShift
	set(230, RAlt+Ext+0x11)    // RightAlt
	set(231, RGui+Ext+0x27)    // RightGui
}

// Lookup translates an abstract scancode to its PS/2 code (with bias
// bits), or None if index is out of range or unmapped.
func Lookup(index int) Code {
	if index < 0 || index >= len(sdlToPs2) {
		return None
	}
	return sdlToPs2[index]
}
