package playback

import "testing"

func TestParseTextBasic(t *testing.T) {
	data := []byte("0|........|........\n0|.......A|........\n1|RLDU....|........\n")
	rec, err := ParseText(data, 2)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(rec.Frames) != 3 {
		t.Fatalf("len(Frames) = %d, want 3", len(rec.Frames))
	}
	if rec.Frames[1].Ports[0] != 1 {
		t.Fatalf("frame 1 port 0 = %#x, want 0x01 (A held, last column)", rec.Frames[1].Ports[0])
	}
	if rec.Frames[2].Commands != 1 {
		t.Fatalf("frame 2 commands = %d, want 1", rec.Frames[2].Commands)
	}
}

func TestParseTextLeadingPipeTolerated(t *testing.T) {
	data := []byte("|0|........|........\n")
	rec, err := ParseText(data, 2)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(rec.Frames) != 1 {
		t.Fatalf("len(Frames) = %d, want 1", len(rec.Frames))
	}
}

func TestCountLeadIn(t *testing.T) {
	data := []byte("0|........|........\n0|........|........\n1|A.......|........\n")
	rec, _ := ParseText(data, 2)
	if rec.LeadInFrames != 2 {
		t.Fatalf("LeadInFrames = %d, want 2", rec.LeadInFrames)
	}
}

func TestParseBinaryRoundTrip(t *testing.T) {
	data := []byte{0, 0x01, 0x02, 1, 0x80, 0x00}
	rec, err := ParseBinary(data, 2)
	if err != nil {
		t.Fatalf("ParseBinary: %v", err)
	}
	if len(rec.Frames) != 2 {
		t.Fatalf("len(Frames) = %d, want 2", len(rec.Frames))
	}
	if rec.Frames[1].Commands != 1 || rec.Frames[1].Ports[0] != 0x80 {
		t.Fatalf("frame 1 = %+v", rec.Frames[1])
	}
}

func TestPlayerNextAndDone(t *testing.T) {
	rec := &Recording{Frames: []Frame{{Commands: 0}, {Commands: 1}}}
	p := NewPlayer(rec)

	if p.Done() {
		t.Fatal("Done() true before consuming any frames")
	}
	if _, ok := p.Next(); !ok {
		t.Fatal("Next() returned ok=false on first frame")
	}
	if _, ok := p.Next(); !ok {
		t.Fatal("Next() returned ok=false on second frame")
	}
	if _, ok := p.Next(); ok {
		t.Fatal("Next() returned ok=true past the end")
	}
	if !p.Done() {
		t.Fatal("Done() false after exhausting frames")
	}
}
