// Package fpgaload drives the FPGA Manager state machine to push a
// configuration bitstream through the fabric's configuration port, and
// performs the post-load identification handshake.
package fpgaload

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/fpgacore/hostfw/internal/regs"
)

// ErrHandshakeMismatch is returned when the post-load identification
// handshake does not see the expected magic pattern in GPI.
var ErrHandshakeMismatch = errors.New("fpgaload: handshake magic mismatch")

// ErrBadIOVersion is returned when a GPI word that passes the magic check
// carries an IO version of zero, which the platform reserves as "no core
// present". The IO-version bits lie inside the magic mask, so a GPI word
// with a zero IO version fails the magic check first and is reported as
// ErrHandshakeMismatch.
var ErrBadIOVersion = errors.New("fpgaload: handshake reported zero IO version")

const (
	readyMagic     = 0x5CA62300
	readyMagicMask = 0xFFFFFF00
	ifaceWidthBit  = 1 << 16
	ioVersionShift = 18
	ioVersionMask  = 0x3
	gpoSelectedBit = 1 << 31

	busyBit = 1 << 31

	resetPollDelay  = 10 * time.Millisecond
	pollsPerAttempt = 1000
	maxResetRetries = 3
)

// CoreType identifies the family of the loaded core, per the platform's
// handshake convention.
type CoreType byte

const (
	CoreUnknown           CoreType = 0x55
	CoreGeneric           CoreType = 0xA4
	CoreSharpMZ           CoreType = 0xA7
	CoreGenericDualSDRAM  CoreType = 0xA8
)

// InterfaceType is the SPI data width the loaded core expects.
type InterfaceType uint8

const (
	Interface8Bit  InterfaceType = 0
	Interface16Bit InterfaceType = 1
)

// Identity is the result of a successful post-load handshake.
type Identity struct {
	Type      CoreType
	Interface InterfaceType
	IOVersion uint8
}

// Manager is the subset of the FPGA Manager register accessors the loader
// needs.
type Manager interface {
	Stat() regs.Stat
	Ctrl() regs.Ctrl
	SetCtrl(regs.Ctrl)
	Gpo() uint32
	SetGpo(uint32)
	Gpi() uint32
}

// DataWindow is the small write-only window the loader streams bulk
// configuration bytes through.
type DataWindow interface {
	Write(word uint32)
}

// Rebooter performs a hard platform reboot when the Manager never becomes
// ready even after the reset recovery path. It is the loader's only
// sanctioned hard-timeout mechanism.
type Rebooter interface {
	Reboot() error
}

// Loader drives a bitstream through the configuration port.
type Loader struct {
	mgr    Manager
	data   DataWindow
	reboot Rebooter
}

// New creates a Loader. reboot may be nil, in which case a Manager that
// never reports ready surfaces as an error instead of rebooting.
func New(mgr Manager, data DataWindow, reboot Rebooter) *Loader {
	return &Loader{mgr: mgr, data: data, reboot: reboot}
}

// Load strips the bitstream envelope, resets the fabric, streams the
// payload, waits for the Manager to report ready, and performs the
// identification handshake.
func (l *Loader) Load(raw []byte) (Identity, error) {
	payload := StripEnvelope(raw)

	if err := l.waitNotBusy(); err != nil {
		return Identity{}, err
	}

	l.coreReset()
	l.stream(payload)

	if err := l.waitReady(); err != nil {
		return Identity{}, fmt.Errorf("fpgaload: %w", err)
	}

	return l.handshake()
}

// waitNotBusy polls the Manager's GPI sign bit. If it never clears within
// a polling window, it pulses the reset control bits and sleeps 10ms
// between recovery attempts; if it is still not ready after
// maxResetRetries, it issues a platform reboot.
func (l *Loader) waitNotBusy() error {
	for attempt := 0; attempt < maxResetRetries; attempt++ {
		for i := 0; i < pollsPerAttempt; i++ {
			if l.mgr.Gpi()&busyBit == 0 {
				return nil
			}
		}
		l.pulseReset()
		time.Sleep(resetPollDelay)
	}
	if l.reboot != nil {
		return l.reboot.Reboot()
	}
	return errors.New("fpgaload: manager stuck busy after reset-and-reboot recovery")
}

func (l *Loader) pulseReset() {
	c := l.mgr.Ctrl()
	c.SetNConfigPull(true)
	l.mgr.SetCtrl(c)
	c.SetNConfigPull(false)
	l.mgr.SetCtrl(c)
}

func (l *Loader) coreReset() {
	c := l.mgr.Ctrl()
	c.SetNce(true)
	c.SetEn(true)
	l.mgr.SetCtrl(c)
}

func (l *Loader) stream(payload []byte) {
	for i := 0; i < len(payload); i += 4 {
		var word [4]byte
		copy(word[:], payload[i:])
		l.data.Write(binary.LittleEndian.Uint32(word[:]))
	}
}

func (l *Loader) waitReady() error {
	for i := 0; i < pollsPerAttempt*maxResetRetries; i++ {
		if l.mgr.Stat().Mode() == regs.StatModeUserMode {
			return nil
		}
	}
	return errors.New("fpga manager did not reach user mode")
}

// handshake zeroes GPO, reads GPI, and validates the magic pattern. On
// success it restores GPO's selected high bit and returns the decoded
// Identity.
func (l *Loader) handshake() (Identity, error) {
	l.mgr.SetGpo(0)
	gpi := l.mgr.Gpi()

	if gpi&readyMagicMask != readyMagic {
		return Identity{}, ErrHandshakeMismatch
	}

	l.mgr.SetGpo(gpoSelectedBit)

	id := Identity{
		Type:      CoreType(byte(gpi)),
		IOVersion: uint8((gpi >> ioVersionShift) & ioVersionMask),
	}
	if id.IOVersion == 0 {
		return Identity{}, ErrBadIOVersion
	}
	if gpi&ifaceWidthBit != 0 {
		id.Interface = Interface16Bit
	} else {
		id.Interface = Interface8Bit
	}
	return id, nil
}
