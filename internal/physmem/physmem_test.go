package physmem

import "testing"

func TestFakeSliceBounds(t *testing.T) {
	w := NewFake(0xFF000000, 0x1000)

	s, err := w.Slice(0xFF000010, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if len(s) != 4 {
		t.Fatalf("len = %d, want 4", len(s))
	}

	if _, err := w.Slice(0xFE000000, 4); err == nil {
		t.Fatal("expected error for address below base")
	}
	if _, err := w.Slice(0xFF000FFE, 4); err == nil {
		t.Fatal("expected error for region exceeding window size")
	}
}

func TestFakeSliceAliasesBytes(t *testing.T) {
	w := NewFake(0x20000000, 0x100)
	s, err := w.Slice(0x20000000, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	s[0] = 0xAB
	if w.Bytes()[0] != 0xAB {
		t.Fatal("Slice must alias the underlying buffer, not copy it")
	}
}
