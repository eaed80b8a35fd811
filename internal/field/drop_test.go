package field

import (
	"errors"
	"strings"
	"testing"
)

func TestAllDecisionsCanonicalSet(t *testing.T) {
	if len(AllDecisions) != 22 {
		t.Fatalf("len(AllDecisions) = %d, want 22", len(AllDecisions))
	}

	seen := map[Decision]bool{}
	for _, d := range AllDecisions {
		if !d.IsValid() {
			t.Errorf("decision %v is not valid", d)
		}
		if seen[d] {
			t.Errorf("decision %v duplicated", d)
		}
		seen[d] = true
	}
	if seen[Decision{Column: 1, Rotation: 3}] {
		t.Error("(1,3) must be excluded")
	}
	if seen[Decision{Column: 6, Rotation: 1}] {
		t.Error("(6,1) must be excluded")
	}
}

func TestDropPieceRotations(t *testing.T) {
	tests := []struct {
		name     string
		decision Decision
		axis     [2]int // x, y
		child    [2]int
	}{
		{"child above", Decision{Column: 2, Rotation: 0}, [2]int{2, 1}, [2]int{2, 2}},
		{"child right", Decision{Column: 2, Rotation: 1}, [2]int{2, 1}, [2]int{3, 1}},
		{"child below", Decision{Column: 2, Rotation: 2}, [2]int{2, 2}, [2]int{2, 1}},
		{"child left", Decision{Column: 2, Rotation: 3}, [2]int{2, 1}, [2]int{1, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBitBoard()
			frames, err := b.DropPiece(tc.decision, PiecePair{Axis: Red, Child: Blue})
			if err != nil {
				t.Fatalf("DropPiece failed: %v", err)
			}
			if frames <= 0 {
				t.Errorf("frames = %d, want > 0", frames)
			}
			if got := b.ColorAt(tc.axis[0], tc.axis[1]); got != Red {
				t.Errorf("axis at %v = %v, want Red", tc.axis, got)
			}
			if got := b.ColorAt(tc.child[0], tc.child[1]); got != Blue {
				t.Errorf("child at %v = %v, want Blue", tc.child, got)
			}
		})
	}
}

func TestDropPieceHorizontalFallsIndependently(t *testing.T) {
	b := MustParseBoard("R.....\nR.....\n")

	if _, err := b.DropPiece(Decision{Column: 1, Rotation: 1}, PiecePair{Axis: Blue, Child: Yellow}); err != nil {
		t.Fatalf("DropPiece failed: %v", err)
	}
	if got := b.ColorAt(1, 3); got != Blue {
		t.Errorf("axis landed at (1,3) = %v, want Blue", got)
	}
	if got := b.ColorAt(2, 1); got != Yellow {
		t.Errorf("child landed at (2,1) = %v, want Yellow", got)
	}
	if b.Height(1) != 3 || b.Height(2) != 1 {
		t.Errorf("heights = %d,%d, want 3,1", b.Height(1), b.Height(2))
	}
}

func TestDropPieceOverflow(t *testing.T) {
	// Column 1 filled to the ghost row: any further placement there
	// overflows and leaves the board untouched.
	b := MustParseBoard(strings.Repeat("R.....\nB.....\nY.....\n", 4) + "G.....\n")
	if got := b.Height(1); got != GhostRow {
		t.Fatalf("Height(1) = %d, want %d", got, GhostRow)
	}
	before := b

	_, err := b.DropPiece(Decision{Column: 1, Rotation: 0}, PiecePair{Axis: Red, Child: Red})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
	if !b.Equals(&before) {
		t.Error("failed drop modified the board")
	}

	// A vertical pair on a column at height 12 also overflows: the child
	// would land above row 13.
	b2 := MustParseBoard(strings.Repeat("..R...\n..B...\n..Y...\n", 4))
	if got := b2.Height(3); got != 12 {
		t.Fatalf("Height(3) = %d, want 12", got)
	}
	if _, err := b2.DropPiece(Decision{Column: 3, Rotation: 0}, PiecePair{Axis: Red, Child: Red}); !errors.Is(err, ErrOverflow) {
		t.Errorf("err = %v, want ErrOverflow", err)
	}
}

func TestIsDead(t *testing.T) {
	b := MustParseBoard(strings.Repeat("..R...\n..B...\n..Y...\n", 4))
	if !b.IsDead() {
		t.Error("column 3 reaching row 12 must be dead")
	}

	empty := NewBitBoard()
	if empty.IsDead() {
		t.Error("empty board must not be dead")
	}
}

func TestDropSingle(t *testing.T) {
	b := NewBitBoard()
	if err := b.DropSingle(4, Green); err != nil {
		t.Fatalf("DropSingle failed: %v", err)
	}
	if got := b.ColorAt(4, 1); got != Green {
		t.Errorf("ColorAt(4,1) = %v, want Green", got)
	}
	if b.Height(4) != 1 {
		t.Errorf("Height(4) = %d, want 1", b.Height(4))
	}
}
