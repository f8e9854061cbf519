package fpgaload

import (
	"testing"

	"github.com/fpgacore/hostfw/internal/regs"
)

func TestStripEnvelopeScenarioS4(t *testing.T) {
	raw := make([]byte, 16+5)
	copy(raw, "MiSTer")
	raw[12], raw[13], raw[14], raw[15] = 5, 0, 0, 0
	copy(raw[16:], "hello")

	got := StripEnvelope(raw)
	if string(got) != "hello" {
		t.Fatalf("StripEnvelope = %q, want %q", got, "hello")
	}
}

func TestStripEnvelopeNoMagic(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}
	got := StripEnvelope(raw)
	if len(got) != len(raw) {
		t.Fatalf("StripEnvelope without magic changed length: %d vs %d", len(got), len(raw))
	}
}

// fakeManager is a mock GPI fixture for the handshake property (testable
// property 8) and the busy/ready polling paths.
type fakeManager struct {
	gpo        uint32
	gpi        uint32
	ctrl       regs.Ctrl
	statSeq    []regs.Stat
	statCalls  int
	gpiBusyFor int
}

func (m *fakeManager) Stat() regs.Stat {
	if m.statCalls < len(m.statSeq) {
		s := m.statSeq[m.statCalls]
		m.statCalls++
		return s
	}
	if len(m.statSeq) > 0 {
		return m.statSeq[len(m.statSeq)-1]
	}
	return Stat(regs.StatModeUserMode)
}

func Stat(mode regs.StatMode) regs.Stat { return regs.Stat(mode) }

func (m *fakeManager) Ctrl() regs.Ctrl       { return m.ctrl }
func (m *fakeManager) SetCtrl(c regs.Ctrl)   { m.ctrl = c }
func (m *fakeManager) Gpo() uint32           { return m.gpo }
func (m *fakeManager) SetGpo(v uint32)       { m.gpo = v }
func (m *fakeManager) Gpi() uint32 {
	if m.gpiBusyFor > 0 {
		m.gpiBusyFor--
		return busyBit
	}
	return m.gpi
}

type fakeData struct{ words []uint32 }

func (d *fakeData) Write(word uint32) { d.words = append(d.words, word) }

func TestHandshakeMagicMatch(t *testing.T) {
	mgr := &fakeManager{gpi: 0x5CA62300 | uint32(CoreGeneric) | (1 << ioVersionShift)}
	data := &fakeData{}
	l := New(mgr, data, nil)

	id, err := l.handshake()
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if id.Type != CoreGeneric {
		t.Fatalf("Type = 0x%X, want 0x%X", id.Type, CoreGeneric)
	}
}

func TestHandshakeZeroIOVersionRejected(t *testing.T) {
	mgr := &fakeManager{gpi: 0x5CA62300 | uint32(CoreGeneric)}
	data := &fakeData{}
	l := New(mgr, data, nil)

	_, err := l.handshake()
	if err != ErrBadIOVersion {
		t.Fatalf("err = %v, want ErrBadIOVersion", err)
	}
}

func TestHandshakeMismatch(t *testing.T) {
	mgr := &fakeManager{gpi: 0xDEADBEEF}
	data := &fakeData{}
	l := New(mgr, data, nil)

	_, err := l.handshake()
	if err != ErrHandshakeMismatch {
		t.Fatalf("err = %v, want ErrHandshakeMismatch", err)
	}
}

func TestHandshakeInterfaceAndIOVersion(t *testing.T) {
	gpi := uint32(0x5CA62300) | uint32(CoreSharpMZ) | ifaceWidthBit | (2 << ioVersionShift)
	mgr := &fakeManager{gpi: gpi}
	l := New(mgr, &fakeData{}, nil)

	id, err := l.handshake()
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if id.Interface != Interface16Bit {
		t.Fatalf("Interface = %v, want 16-bit", id.Interface)
	}
	if id.IOVersion != 2 {
		t.Fatalf("IOVersion = %d, want 2", id.IOVersion)
	}
}

func TestLoadStreamsPayloadAndHandshakes(t *testing.T) {
	mgr := &fakeManager{
		gpi:     0x5CA62300 | uint32(CoreGeneric) | (1 << ioVersionShift),
		statSeq: []regs.Stat{Stat(regs.StatModeConfigPhase), Stat(regs.StatModeUserMode)},
	}
	data := &fakeData{}
	l := New(mgr, data, nil)

	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02}
	id, err := l.Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if id.Type != CoreGeneric {
		t.Fatalf("Type = 0x%X, want CoreGeneric", id.Type)
	}
	if len(data.words) != 2 {
		t.Fatalf("streamed %d words, want 2 (one full + one zero-padded)", len(data.words))
	}
	if data.words[0] != 0xEFBEADDE {
		t.Fatalf("word[0] = 0x%X, want 0xEFBEADDE", data.words[0])
	}
}
