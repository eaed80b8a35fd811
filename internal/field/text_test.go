package field

import (
	"strings"
	"testing"
)

func TestParseBoardRoundtrip(t *testing.T) {
	text := strings.Repeat("......\n", 8) +
		".GYBR.\n" +
		".GYBR.\n" +
		"RGYBR.\n" +
		"RRGYBR\n"

	b, err := ParseBoard(text)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}

	if got := b.ColorAt(1, 1); got != Red {
		t.Errorf("ColorAt(1,1) = %v, want Red", got)
	}
	if got := b.ColorAt(2, 4); got != Green {
		t.Errorf("ColorAt(2,4) = %v, want Green", got)
	}
	if got := b.Height(1); got != 2 {
		t.Errorf("Height(1) = %d, want 2", got)
	}
	if got := b.Height(5); got != 4 {
		t.Errorf("Height(5) = %d, want 4", got)
	}

	// Text -> field -> text is the identity on the full 12-row form.
	reparsed, err := ParseBoard(b.Text())
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if !reparsed.Equals(&b) {
		t.Error("text roundtrip changed the board")
	}
}

func TestParseBoardPartialRows(t *testing.T) {
	// A short fixture describes the bottom rows only.
	b, err := ParseBoard("RRRR..")
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	for x := 1; x <= 4; x++ {
		if got := b.ColorAt(x, 1); got != Red {
			t.Errorf("ColorAt(%d,1) = %v, want Red", x, got)
		}
	}
	if b.CountPuyos() != 4 {
		t.Errorf("CountPuyos = %d, want 4", b.CountPuyos())
	}
}

func TestParseBoardRejectsFloating(t *testing.T) {
	if _, err := ParseBoard("R.....\n......"); err == nil {
		t.Error("floating puyo should be rejected")
	}
}

func TestParseBoardRejectsGarbage(t *testing.T) {
	if _, err := ParseBoard("RRXR.."); err == nil {
		t.Error("invalid character should be rejected")
	}
	if _, err := ParseBoard("RRR"); err == nil {
		t.Error("ragged length should be rejected")
	}
}

func TestPlainBoardRoundtrip(t *testing.T) {
	b := MustParseBoard("O.....\nRBYGRB\n")
	plain := b.ToPlain()
	back := plain.ToBitBoard()
	if !back.Equals(&b) {
		t.Error("plain roundtrip changed the board")
	}
	if plain.ColorAt(0, 0) != Wall || plain.ColorAt(7, 5) != Wall {
		t.Error("plain board border is not wall")
	}
}
