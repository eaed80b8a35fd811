package field

import "testing"

func TestBitsShiftsStayInColumn(t *testing.T) {
	// A bit at the top of column 2 must vanish when shifted up, not appear
	// at the bottom of column 3.
	b := OneBit(2, 15)
	if got := b.Up(); !got.IsZero() {
		t.Errorf("Up from row 15 = %v, want empty", got)
	}

	b = OneBit(3, 0)
	if got := b.Down(); !got.IsZero() {
		t.Errorf("Down from row 0 = %v, want empty", got)
	}

	// Down from the bottom of column 4 (the lo/hi boundary) must not leak
	// into column 3.
	b = OneBit(4, 0)
	if got := b.Down(); !got.IsZero() {
		t.Errorf("Down across word boundary = %v, want empty", got)
	}

	// Horizontal shifts cross the word boundary cleanly.
	b = OneBit(3, 5)
	if got := b.Right(); !got.Get(4, 5) || got.PopCount() != 1 {
		t.Errorf("Right across word boundary failed: %v", got)
	}
	b = OneBit(4, 5)
	if got := b.Left(); !got.Get(3, 5) || got.PopCount() != 1 {
		t.Errorf("Left across word boundary failed: %v", got)
	}
}

func TestBitsExpand(t *testing.T) {
	// Two disjoint regions: expansion from a seed in one must not reach the
	// other.
	region := OneBit(1, 1).With(1, 2).With(2, 2).With(5, 5).With(5, 6)
	comp := OneBit(1, 1).Expand(region)
	if comp.PopCount() != 3 {
		t.Errorf("component size = %d, want 3", comp.PopCount())
	}
	if comp.Get(5, 5) || comp.Get(5, 6) {
		t.Error("expansion leaked into a disjoint region")
	}
}

func TestBitsColumnRoundtrip(t *testing.T) {
	var b Bits
	b = b.SetColumn(2, 0x1234)
	b = b.SetColumn(5, 0x0F0F)
	if got := b.Column(2); got != 0x1234 {
		t.Errorf("Column(2) = %#x, want 0x1234", got)
	}
	if got := b.Column(5); got != 0x0F0F {
		t.Errorf("Column(5) = %#x, want 0x0F0F", got)
	}
	b = b.SetColumn(2, 0)
	if got := b.Column(2); got != 0 {
		t.Errorf("cleared Column(2) = %#x, want 0", got)
	}
	if got := b.Column(5); got != 0x0F0F {
		t.Errorf("Column(5) disturbed by SetColumn(2): %#x", got)
	}
}

func TestFieldMasks(t *testing.T) {
	if got := FieldBits12.PopCount(); got != FieldWidth*FieldHeight {
		t.Errorf("FieldBits12 covers %d cells, want %d", got, FieldWidth*FieldHeight)
	}
	if got := FieldBits13.PopCount(); got != FieldWidth*GhostRow {
		t.Errorf("FieldBits13 covers %d cells, want %d", got, FieldWidth*GhostRow)
	}
}
