package buttonmap

import "testing"

func TestScenarioS6MapFromNameList(t *testing.T) {
	m := New()
	m.MapFromNameList([]string{"A", "B", "Select", "Start", "L", "", "R|P"})

	cases := []struct {
		b    Button
		want uint8
		ok   bool
	}{
		{DpadRight, 0, true},
		{DpadLeft, 1, true},
		{DpadDown, 2, true},
		{DpadUp, 3, true},
		{A, 4, true},
		{B, 5, true},
		{Back, 6, true},
		{Start, 7, true},
		{LeftShoulder, 8, true},
		{RightShoulder, 10, true},
	}
	for _, c := range cases {
		pos, ok := m.Position(c.b)
		if ok != c.ok || pos != c.want {
			t.Fatalf("Position(%v) = (%d, %v), want (%d, %v)", c.b, pos, ok, c.want, c.ok)
		}
	}

	m.Press(Start)
	if got := m.Value(); got != 0x80 {
		t.Fatalf("value after press(Start) = 0x%X, want 0x80", got)
	}
}

func TestButtonMapRoundTrip(t *testing.T) {
	m := New()
	for b := range map[Button]bool{A: true, B: true, Start: true, LeftShoulder: true} {
		pos, ok := m.Position(b)
		if !ok {
			t.Fatalf("Position(%v) not mapped by default table", b)
		}

		m.Press(b)
		if m.Value()&(1<<pos) == 0 {
			t.Fatalf("press(%v) did not set bit %d", b, pos)
		}

		m.Release(b)
		if m.Value()&(1<<pos) != 0 {
			t.Fatalf("release(%v) did not clear bit %d", b, pos)
		}
	}
}

func TestDefaultSdlTableCoversPrimaryButtons(t *testing.T) {
	m := New()
	if m.Down(0) == 0 {
		t.Fatal("Down(0) (SDL button A) should set a bit in the default map")
	}
}
