package plan

import (
	"strings"
	"testing"

	"github.com/hailam/puyoplay/internal/field"
)

func TestIterateDepthOneEmptyField(t *testing.T) {
	b := field.NewBitBoard()
	seq := []field.PiecePair{{Axis: field.Red, Child: field.Blue}}

	var plans []*Plan
	Iterate(&b, seq, 1, func(p *Plan) bool {
		cp := *p
		plans = append(plans, &cp)
		return true
	})

	if len(plans) != 22 {
		t.Fatalf("depth-1 enumeration yielded %d plans, want 22", len(plans))
	}
	for _, p := range plans {
		if p.Depth() != 1 {
			t.Errorf("plan depth = %d, want 1", p.Depth())
		}
		if p.Result.HasPopped() {
			t.Errorf("nothing can pop on an empty board: %+v", p.Result)
		}
		if p.TotalFrames <= 0 {
			t.Errorf("plan has no frame cost")
		}
	}
}

func TestIterateDeterministicOrder(t *testing.T) {
	b := field.MustParseBoard("RRG...\nBBYY..\n")
	seq := []field.PiecePair{
		{Axis: field.Red, Child: field.Yellow},
		{Axis: field.Green, Child: field.Green},
	}

	run := func() []field.Decision {
		var firsts []field.Decision
		Iterate(&b, seq, 2, func(p *Plan) bool {
			firsts = append(firsts, p.FirstDecision())
			return true
		})
		return firsts
	}

	a, c := run(), run()
	if len(a) != len(c) {
		t.Fatalf("runs enumerated %d vs %d plans", len(a), len(c))
	}
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("order diverged at %d: %v vs %v", i, a[i], c[i])
		}
	}
}

func TestIterateVisitorPrunes(t *testing.T) {
	b := field.NewBitBoard()
	seq := []field.PiecePair{
		{Axis: field.Red, Child: field.Red},
		{Axis: field.Blue, Child: field.Blue},
	}

	deep := 0
	Iterate(&b, seq, 2, func(p *Plan) bool {
		if p.Depth() == 2 {
			deep++
		}
		return false
	})
	if deep != 0 {
		t.Errorf("pruned enumeration still visited %d depth-2 plans", deep)
	}

	deep = 0
	Iterate(&b, seq, 2, func(p *Plan) bool {
		if p.Depth() == 2 {
			deep++
		}
		return true
	})
	if deep != 22*22 {
		t.Errorf("full depth-2 enumeration visited %d plans, want %d", deep, 22*22)
	}
}

func TestIterateSkipsOverflow(t *testing.T) {
	// Column 1 is full; placements touching it are skipped, the rest
	// proceed.
	b := field.MustParseBoard(strings.Repeat("R.....\nB.....\nY.....\n", 4) + "G.....\n")
	seq := []field.PiecePair{{Axis: field.Red, Child: field.Blue}}

	count := 0
	Iterate(&b, seq, 1, func(p *Plan) bool {
		d := p.FirstDecision()
		if d.Column == 1 || d.Column == 2 && d.Rotation == 3 {
			t.Errorf("decision %v should have overflowed", d)
		}
		count++
		return true
	})
	// Lost: the three placements with the axis in column 1 plus (2,3),
	// whose child lands there.
	if count != 22-4 {
		t.Errorf("enumerated %d plans, want %d", count, 22-4)
	}
}

func TestIterateCarriesZenkeshi(t *testing.T) {
	// RR on the floor: dropping RR on top clears the board; the following
	// placement should carry the pending zenkeshi flag.
	b := field.MustParseBoard("RR....")
	seq := []field.PiecePair{
		{Axis: field.Red, Child: field.Red},
		{Axis: field.Blue, Child: field.Yellow},
	}

	sawClear := false
	Iterate(&b, seq, 2, func(p *Plan) bool {
		if p.Depth() == 1 && p.Field.IsAllClear() {
			sawClear = true
			if !p.Zenkeshi {
				t.Error("full clear did not set the pending flag")
			}
		}
		if p.Depth() == 2 && p.FirstDecision() == (field.Decision{Column: 1, Rotation: 0}) {
			if !p.Zenkeshi {
				t.Error("depth-2 plan lost the pending zenkeshi flag")
			}
		}
		return true
	})
	if !sawClear {
		t.Fatal("no depth-1 plan cleared the board")
	}
}
