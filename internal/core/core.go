// Package core aggregates the SPI command channel, the loader's
// identification result, the FPGA Manager control register, the bulk data
// window, the framebuffer reader, and the input tables into a single Core
// Handle: the
// object every higher-level operation (input polling, save-state polling,
// playback) drives once a bitstream has loaded and identified itself.
// Grounded on the reference's Machine aggregator (internal/emu/emu.go),
// generalized from a fixed Game Boy pipeline to a dynamically loaded core.
package core

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/fpgacore/hostfw/internal/buttonmap"
	"github.com/fpgacore/hostfw/internal/fpgaload"
	"github.com/fpgacore/hostfw/internal/framebuffer"
	"github.com/fpgacore/hostfw/internal/keyboard"
	"github.com/fpgacore/hostfw/internal/regs"
	"github.com/fpgacore/hostfw/internal/spi"
	"github.com/fpgacore/hostfw/internal/statusbits"
)

// CommandOpcode tags a runtime SPI command word. The platform does not
// publish a canonical opcode table for these; values here are this host's
// own convention, consistent across loads of the same core family.
type CommandOpcode uint16

const (
	OpSetVolume  CommandOpcode = 0x0001
	OpSetRTC     CommandOpcode = 0x0002
	OpBeginROM   CommandOpcode = 0x0003
	OpBeginBIOS  CommandOpcode = 0x0004
	OpEndFile    CommandOpcode = 0x0005
	OpStatusBits CommandOpcode = 0x0006
	OpKeyboard   CommandOpcode = 0x0007
	OpGamepad    CommandOpcode = 0x0008
	OpInitVideo  CommandOpcode = 0x0009
	OpPollMount  CommandOpcode = 0x000A
	OpMountAck   CommandOpcode = 0x000B
)

// Mount request/reply bit layout for OpPollMount's reply word: this host's
// own convention, since the wire format for mount service requests is not
// part of the platform's documented surface, consistent across loads of
// the same core family.
const (
	mountPendingBit = 1 << 15
	mountMoreBit    = 1 << 14
	mountOpShift    = 8
	mountOpMask     = 0x3
	mountSlotMask   = 0xFF
)

// mountOp discriminates a pending mount request's direction.
type mountOp uint8

const (
	mountOpRead mountOp = iota
	mountOpWrite
)

// defaultVolume is the level Init() programs before the caller has had a
// chance to apply a user preference.
const defaultVolume uint8 = 255

// FpgaManager is the subset of FPGA Manager control-register access a
// hardware reset needs. Implemented by *regs.FpgaManager.
type FpgaManager interface {
	Ctrl() regs.Ctrl
	SetCtrl(c regs.Ctrl)
}

// DataWindow streams bulk payload words, shared with the loader's
// FPGAMGRDATA window.
type DataWindow interface {
	Write(word uint32)
}

// Mount is a seekable byte stream backing one core-visible slot (an SD
// card image, a save file).
type Mount = io.ReadWriteSeeker

// ErrNoSuchSlot is returned by SaveState/SaveStateMut past the last slot.
var ErrNoSuchSlot = errors.New("core: no such save-state slot")

// Handle is the live, identified core: everything a driver loop needs to
// push input and pull output from a running core in one place.
type Handle struct {
	identity fpgaload.Identity

	spi  *spi.Channel
	data DataWindow
	fb   *framebuffer.Reader
	mgr  FpgaManager

	status  statusbits.Bitmap
	buttons map[int]*buttonmap.ButtonMap

	mounts map[int]Mount

	saveSlots [][]byte
}

// New builds a Handle around an already-loaded, already-identified core.
// mgr may be nil, in which case Reset's hardware path becomes a no-op
// (tests that don't exercise reset build Handles this way).
func New(identity fpgaload.Identity, channel *spi.Channel, data DataWindow, fb *framebuffer.Reader, mgr FpgaManager) *Handle {
	return &Handle{
		identity: identity,
		spi:      channel,
		data:     data,
		fb:       fb,
		mgr:      mgr,
		buttons:  map[int]*buttonmap.ButtonMap{},
		mounts:   map[int]Mount{},
	}
}

// Identity returns the handshake result the core loaded with.
func (h *Handle) Identity() fpgaload.Identity { return h.identity }

func (h *Handle) command(op CommandOpcode, args ...uint16) {
	h.spi.Write(uint16(op))
	for _, a := range args {
		h.spi.Write(a)
	}
}

// Init performs the one-time wake-up sequence a freshly loaded core
// needs: a hardware reset through the FPGA Manager, the real-time clock,
// and a default volume level, before the caller has applied any of its
// own preferences.
func (h *Handle) Init() {
	h.Reset()
	h.SetRTC(uint32(time.Now().Unix()))
	h.SendVolume(defaultVolume)
}

// InitVideo applies the video configuration (resolution, aspect ratio,
// scaler mode) for the loaded core. isMenuCore selects the reduced
// configuration the platform's own menu core runs under.
func (h *Handle) InitVideo(opts VideoOptions, isMenuCore bool) {
	var menuFlag uint16
	if isMenuCore {
		menuFlag = 1
	}
	h.command(OpInitVideo, uint16(opts.Resolution), uint16(opts.AspectRatio), uint16(opts.ScalerMode), menuFlag)
}

// VideoOptions is the subset of a user's video preferences a core's
// init_video step needs: a resolution index, an aspect-ratio index, and a
// scaler mode, mirroring the integer-coded video fields of the
// platform's own configuration format rather than free-form strings.
type VideoOptions struct {
	Resolution  uint8
	AspectRatio uint8
	ScalerMode  uint8
}

// Reset sets the FPGA Manager's core enable/chip-enable control bits, a
// hardware reset that goes through the fabric's configuration interface
// rather than asking the core to reset itself.
func (h *Handle) Reset() {
	if h.mgr == nil {
		return
	}
	c := h.mgr.Ctrl()
	c.SetNce(true)
	c.SetEn(true)
	h.mgr.SetCtrl(c)
}

// SoftReset pulses the status bitmap's reset bit (bit 0), per the
// platform's convention that bit 0 is reserved for the core-wide reset
// trigger. Unlike Reset, this never touches the FPGA Manager.
func (h *Handle) SoftReset() {
	h.status.Set(0, true)
	h.SendStatusBits(h.status)
	h.status.Set(0, false)
	h.SendStatusBits(h.status)
}

// SendVolume issues the volume command word.
func (h *Handle) SendVolume(level uint8) {
	h.command(OpSetVolume, uint16(level))
}

// SetRTC issues the real-time-clock command word, packing a Unix
// timestamp as two 16-bit words, low word first.
func (h *Handle) SetRTC(unixSeconds uint32) {
	h.command(OpSetRTC, uint16(unixSeconds), uint16(unixSeconds>>16))
}

// streamPayload zero-pads to a whole 32-bit word and writes it through the
// data window, little-endian, matching the loader's own streaming
// convention.
func streamPayload(w DataWindow, payload []byte) {
	for i := 0; i < len(payload); i += 4 {
		var word uint32
		for j := 0; j < 4 && i+j < len(payload); j++ {
			word |= uint32(payload[i+j]) << (8 * j)
		}
		w.Write(word)
	}
}

// SendROM streams bytes into the fabric as the core's ROM image.
func (h *Handle) SendROM(data []byte) {
	h.command(OpBeginROM)
	streamPayload(h.data, data)
	h.EndSendFile()
}

// SendBIOS streams bytes into the fabric as the core's BIOS/firmware
// image.
func (h *Handle) SendBIOS(data []byte) {
	h.command(OpBeginBIOS)
	streamPayload(h.data, data)
	h.EndSendFile()
}

// EndSendFile issues the end-of-transfer command.
func (h *Handle) EndSendFile() {
	h.command(OpEndFile)
}

// Mount associates a seekable stream with a core-visible slot.
func (h *Handle) Mount(slot int, f Mount) {
	h.mounts[slot] = f
}

// Unmount removes a slot's backing stream.
func (h *Handle) Unmount(slot int) {
	delete(h.mounts, slot)
}

// PollMounts drains and services one pending read/write request issued by
// the core against a mounted stream, if any. A request with no matching
// slot in the mount map is still drained (its data words discarded or
// zero-filled) so the channel stays in sync. It returns true while the
// caller should keep polling because the core reported more requests
// queued behind this one.
func (h *Handle) PollMounts() bool {
	reply := h.spi.Write(uint16(OpPollMount))
	if reply&mountPendingBit == 0 {
		return false
	}

	slot := int(reply & mountSlotMask)
	op := mountOp((reply >> mountOpShift) & mountOpMask)
	more := reply&mountMoreBit != 0

	length := int(h.spi.Write(0))
	file := h.mounts[slot]

	switch {
	case file == nil:
		for i := 0; i < length; i += 2 {
			h.spi.Write(0)
		}
	case op == mountOpWrite:
		buf := make([]byte, 0, length)
		for i := 0; i < length; i += 2 {
			w := h.spi.Write(0)
			buf = append(buf, byte(w))
			if i+1 < length {
				buf = append(buf, byte(w>>8))
			}
		}
		file.Write(buf)
	default: // mountOpRead
		buf := make([]byte, length)
		n, _ := file.Read(buf)
		for i := 0; i < length; i += 2 {
			var w uint16
			if i < n {
				w = uint16(buf[i])
			}
			if i+1 < n {
				w |= uint16(buf[i+1]) << 8
			}
			h.spi.Write(w)
		}
	}

	h.spi.Write(uint16(OpMountAck))
	return more
}

// KeyDown translates an abstract keyboard scancode to its PS/2 code and
// issues it.
func (h *Handle) KeyDown(scancode int) {
	code := keyboard.Lookup(scancode)
	if code == keyboard.None {
		return
	}
	h.command(OpKeyboard, uint16(code), 1)
}

// KeyUp is KeyDown's release counterpart.
func (h *Handle) KeyUp(scancode int) {
	code := keyboard.Lookup(scancode)
	if code == keyboard.None {
		return
	}
	h.command(OpKeyboard, uint16(code), 0)
}

// buttonMapFor lazily creates a player's button map using the defaults;
// callers that need a core-declared name list should call
// SetButtonNames first.
func (h *Handle) buttonMapFor(player int) *buttonmap.ButtonMap {
	m, ok := h.buttons[player]
	if !ok {
		m = buttonmap.New()
		h.buttons[player] = m
	}
	return m
}

// SetButtonNames rebuilds a player's button map from a core's declared
// joystick-buttons name list.
func (h *Handle) SetButtonNames(player int, names []string) {
	h.buttonMapFor(player).MapFromNameList(names)
}

// GamepadButtonDown updates a player's packed button word and sends it.
func (h *Handle) GamepadButtonDown(player int, b buttonmap.Button) {
	m := h.buttonMapFor(player)
	m.Press(b)
	h.command(OpGamepad, uint16(player), uint16(m.Value()), uint16(m.Value()>>16))
}

// GamepadButtonUp is GamepadButtonDown's release counterpart.
func (h *Handle) GamepadButtonUp(player int, b buttonmap.Button) {
	m := h.buttonMapFor(player)
	m.Release(b)
	h.command(OpGamepad, uint16(player), uint16(m.Value()), uint16(m.Value()>>16))
}

// ButtonValue returns a player's current packed button word.
func (h *Handle) ButtonValue(player int) uint32 {
	return h.buttonMapFor(player).Value()
}

// StatusBits returns the host's cached view of the status bitmap.
func (h *Handle) StatusBits() statusbits.Bitmap { return h.status }

// SendStatusBits replaces the cached status bitmap and pushes its words to
// the core.
func (h *Handle) SendStatusBits(bm statusbits.Bitmap) {
	h.status = bm
	h.command(OpStatusBits)
	for _, w := range bm.Words() {
		h.spi.Write(w)
	}
}

// SetSaveSlots installs the in-memory save-state slot list; a nil entry
// marks the end of the populated range, matching the save-state poller's
// own walk-until-nil convention.
func (h *Handle) SetSaveSlots(slots [][]byte) { h.saveSlots = slots }

// SaveState returns a read-only copy of slot's bytes, or ErrNoSuchSlot if
// the index is past the last populated slot.
func (h *Handle) SaveState(slot int) ([]byte, error) {
	if slot < 0 || slot >= len(h.saveSlots) || h.saveSlots[slot] == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchSlot, slot)
	}
	return append([]byte(nil), h.saveSlots[slot]...), nil
}

// SaveStateMut returns the live, mutable slot bytes, or ErrNoSuchSlot.
func (h *Handle) SaveStateMut(slot int) ([]byte, error) {
	if slot < 0 || slot >= len(h.saveSlots) || h.saveSlots[slot] == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchSlot, slot)
	}
	return h.saveSlots[slot], nil
}

// Screenshot extracts the current frame via the framebuffer reader.
func (h *Handle) Screenshot() (image.Image, error) {
	return h.fb.Screenshot()
}
