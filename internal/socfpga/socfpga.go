// Package socfpga is the process-wide aggregate of every physical-memory
// mapping and hardware-facing subsystem the host needs, plus the
// single-threaded driver loop that ties them to a live core. Grounded on
// the reference's SocFpga<M> aggregate (cyclone-v/src/lib.rs), which owns
// one mapped region per hardware block and exposes typed field accessors
// over it.
package socfpga

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fpgacore/hostfw/internal/core"
	"github.com/fpgacore/hostfw/internal/fpgaload"
	"github.com/fpgacore/hostfw/internal/framebuffer"
	"github.com/fpgacore/hostfw/internal/pacer"
	"github.com/fpgacore/hostfw/internal/physmem"
	"github.com/fpgacore/hostfw/internal/playback"
	"github.com/fpgacore/hostfw/internal/regs"
	"github.com/fpgacore/hostfw/internal/savestate"
	"github.com/fpgacore/hostfw/internal/spi"
)

// SocFpga owns every physical-memory mapping on the board and the
// subsystems built on top of them. None of its hardware-facing fields are
// internally synchronized; the DriverLoop is the only caller permitted to
// touch them after construction, per the platform's single-task
// scheduling model.
type SocFpga struct {
	dev string

	fpgaMgrWin *physmem.Window
	l3Win      *physmem.Window
	resetWin   *physmem.Window
	sdramWin   *physmem.Window
	sysmgrWin  *physmem.Window
	dataWin    *physmem.Window
	fbWin      *physmem.Window

	FpgaManager *regs.FpgaManager
	L3          *regs.L3
	Reset       *regs.ResetManager
	Sdram       *regs.SdramCtrl
	SysMgr      *regs.SystemManager
	FbData      *regs.FpgaMgrData

	SPI  *spi.Channel
	FB   *framebuffer.Reader
	Load *fpgaload.Loader

	Core *core.Handle

	log *slog.Logger
}

// windowSpec maps a physmem.Window field onto a base/size pair to keep the
// repetitive open-and-assert-errors sequence in Open a single loop.
type windowSpec struct {
	name string
	base uint64
	size int
	dst  **physmem.Window
}

// Open maps every register aperture and constructs the subsystems above
// them. dev overrides the physical-memory device (tests use a fake
// mapper instead and build a SocFpga by hand).
func Open(dev string, log *slog.Logger) (*SocFpga, error) {
	s := &SocFpga{dev: dev, log: log}

	specs := []windowSpec{
		{"fpga-manager", regs.FpgaManagerBase, 0x1000, &s.fpgaMgrWin},
		{"l3", regs.L3Base, 0x4D000, &s.l3Win},
		{"reset-manager", regs.ResetManagerBase, 0x100, &s.resetWin},
		{"sdram", regs.SdramBase, 0x10000, &s.sdramWin},
		{"sysmgr", regs.SysMgrBase, 0x1000, &s.sysmgrWin},
		{"fpga-data", regs.FpgaMgrDataBase, 0x4, &s.dataWin},
		{"framebuffer", framebuffer.BaseAddress, framebuffer.Size, &s.fbWin},
	}
	for _, spec := range specs {
		win, err := physmem.Map(dev, spec.base, spec.size)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("socfpga: map %s: %w", spec.name, err)
		}
		*spec.dst = win
	}

	var err error
	if s.FpgaManager, err = regs.NewFpgaManager(s.fpgaMgrWin); err != nil {
		s.Close()
		return nil, err
	}
	if s.L3, err = regs.NewL3(s.l3Win); err != nil {
		s.Close()
		return nil, err
	}
	if s.Reset, err = regs.NewResetManager(s.resetWin); err != nil {
		s.Close()
		return nil, err
	}
	if s.Sdram, err = regs.NewSdramCtrl(s.sdramWin); err != nil {
		s.Close()
		return nil, err
	}
	if s.SysMgr, err = regs.NewSystemManager(s.sysmgrWin); err != nil {
		s.Close()
		return nil, err
	}
	if s.FbData, err = regs.NewFpgaMgrData(s.dataWin); err != nil {
		s.Close()
		return nil, err
	}

	s.SPI = spi.New(s.FpgaManager)
	s.FB = framebuffer.New(s.fbWin)
	s.Load = fpgaload.New(s.FpgaManager, s.FbData, rebooter{})

	return s, nil
}

// rebooter is the loader's last-resort recovery hook when the fabric never
// reports ready. It does not reboot the platform: Reboot returns an error,
// so a stuck FPGA Manager surfaces as a load failure.
type rebooter struct{}

func (rebooter) Reboot() error {
	return fmt.Errorf("socfpga: platform reboot requested but not wired to an init system")
}

// Close unmaps every window that was successfully opened.
func (s *SocFpga) Close() error {
	var first error
	for _, w := range []*physmem.Window{s.fpgaMgrWin, s.l3Win, s.resetWin, s.sdramWin, s.sysmgrWin, s.dataWin, s.fbWin} {
		if w == nil {
			continue
		}
		if err := w.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// LoadCore loads an RBF through the fabric and wires up a Core Handle once
// identification succeeds.
func (s *SocFpga) LoadCore(raw []byte) error {
	identity, err := s.Load.Load(raw)
	if err != nil {
		return err
	}
	s.FB.ProbeLayout()
	s.Core = core.New(identity, s.SPI, s.FbData, s.FB, s.FpgaManager)
	s.Core.Init()
	return nil
}

// DriverLoop runs the cooperative single-threaded tick loop: drain input,
// apply one recorded frame while playback is attached, sweep save states
// every k-th tick, wait for the next frame. The tick has no shortcut
// evaluation step. Two ancillary goroutines (a status watcher and an offload
// worker) run alongside it, supervised by an errgroup, but never touch
// hardware registers, the SPI channel, or the core handle directly.
type DriverLoop struct {
	soc     *SocFpga
	pacer   *pacer.Pacer
	saver   *savestate.Poller
	player  *playback.Player
	inputCh chan InputEvent
	log     *slog.Logger
}

// InputEvent is a unit of work handed to the driver loop from outside
// (a keyboard or gamepad edge). The ancillary goroutines
// only ever produce these; they never call into the core directly.
type InputEvent struct {
	Kind     InputKind
	Player   int
	Code     int
	Pressed  bool
}

// InputKind discriminates an InputEvent's payload interpretation.
type InputKind int

const (
	InputKeyboard InputKind = iota
	InputGamepad
)

// NewDriverLoop builds a DriverLoop for a fixed frame period.
func NewDriverLoop(soc *SocFpga, period time.Duration, saver *savestate.Poller, log *slog.Logger) *DriverLoop {
	return &DriverLoop{
		soc:     soc,
		pacer:   pacer.New(period),
		saver:   saver,
		inputCh: make(chan InputEvent, 256),
		log:     log,
	}
}

// AttachPlayback arms recorded-input playback; subsequent ticks drain one
// recorded frame at a time instead of (or alongside) live input.
func (d *DriverLoop) AttachPlayback(p *playback.Player) { d.player = p }

// Events returns the channel ancillary goroutines post InputEvents to.
func (d *DriverLoop) Events() chan<- InputEvent { return d.inputCh }

// Run drives ticks until ctx is cancelled. The status watcher and offload
// worker are launched in the same errgroup so a panic or error in either
// surfaces to the caller without taking down the tick loop mid-frame.
func (d *DriverLoop) Run(ctx context.Context, statusWatcher, offloadWorker func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return statusWatcher(ctx) })
	g.Go(func() error { return offloadWorker(ctx) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			d.tick()
			d.pacer.Tick()
		}
	})
	return g.Wait()
}

// TickOnce runs exactly one iteration of the tick body without consulting
// the pacer, for headless/benchmark callers that want to run at full
// speed instead of real-time cadence.
func (d *DriverLoop) TickOnce() { d.tick() }

func (d *DriverLoop) tick() {
	d.drainInput()
	if d.player != nil && !d.player.Done() {
		d.applyRecordedFrame()
	}
	if d.saver != nil {
		d.saver.Tick()
	}
	if d.soc.FB != nil {
		d.soc.FB.WaitFrame()
	}
}

func (d *DriverLoop) drainInput() {
	for {
		select {
		case ev := <-d.inputCh:
			d.applyEvent(ev)
		default:
			return
		}
	}
}

func (d *DriverLoop) applyEvent(ev InputEvent) {
	if d.soc.Core == nil {
		return
	}
	switch ev.Kind {
	case InputKeyboard:
		if ev.Pressed {
			d.soc.Core.KeyDown(ev.Code)
		} else {
			d.soc.Core.KeyUp(ev.Code)
		}
	case InputGamepad:
		// Callers resolve the abstract Button before posting a gamepad
		// event; Code carries its integer value here.
		if ev.Pressed {
			d.soc.Core.GamepadButtonDown(ev.Player, buttonFromCode(ev.Code))
		} else {
			d.soc.Core.GamepadButtonUp(ev.Player, buttonFromCode(ev.Code))
		}
	}
}

func (d *DriverLoop) applyRecordedFrame() {
	frame, ok := d.player.Next()
	if !ok || d.soc.Core == nil {
		return
	}
	for port, bits := range frame.Ports {
		applyPackedButtons(d.soc.Core, port, bits)
	}
}
