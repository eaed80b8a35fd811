package eval

import (
	"fmt"

	"github.com/hailam/puyoplay/internal/field"
)

// featureKind tags the static feature variants. Features are plain tagged
// values iterated from a fixed table; no dynamic dispatch is involved.
type featureKind uint8

const (
	kindShapeUDiff featureKind = iota // param: column
	kindValleyDepth                   // param: column
	kindRidgeHeight                   // param: column
	kindTotalHeight
	kindThirdColumnHeight
	kindConnection2
	kindConnection3
	kindOjamaCount
	kindDeadEnd
	kindPotentialBest
	kindPotentialBestChains
	kindPotentialSecond
	kindPatternMatch // param: template index
	kindRealizedScore
	kindRealizedChains
	kindRealizedQuick
	kindZenkeshiPending
	kindFrameCost
)

type feature struct {
	kind  featureKind
	name  string
	param int
}

// featureTable is the fixed, ordered feature set of the linear model.
var featureTable = buildFeatureTable()

func buildFeatureTable() []feature {
	fs := make([]feature, 0, 48)
	for x := 1; x <= field.FieldWidth; x++ {
		fs = append(fs, feature{kindShapeUDiff, fmt.Sprintf("shape_u_diff_%d", x), x})
	}
	for x := 1; x <= field.FieldWidth; x++ {
		fs = append(fs, feature{kindValleyDepth, fmt.Sprintf("shape_valley_%d", x), x})
	}
	for x := 1; x <= field.FieldWidth; x++ {
		fs = append(fs, feature{kindRidgeHeight, fmt.Sprintf("shape_ridge_%d", x), x})
	}
	fs = append(fs,
		feature{kindTotalHeight, "shape_total_height", 0},
		feature{kindThirdColumnHeight, "shape_third_column", 0},
		feature{kindConnection2, "connection_2", 0},
		feature{kindConnection3, "connection_3", 0},
		feature{kindOjamaCount, "ojama_count", 0},
		feature{kindDeadEnd, "dead_end", 0},
		feature{kindPotentialBest, "potential_best", 0},
		feature{kindPotentialBestChains, "potential_best_chains", 0},
		feature{kindPotentialSecond, "potential_second", 0},
	)
	for i, t := range templates {
		fs = append(fs, feature{kindPatternMatch, "pattern_" + t.Name, i})
	}
	fs = append(fs,
		feature{kindRealizedScore, "realized_score", 0},
		feature{kindRealizedChains, "realized_chains", 0},
		feature{kindRealizedQuick, "realized_quick", 0},
		feature{kindZenkeshiPending, "zenkeshi_pending", 0},
		feature{kindFrameCost, "frame_cost", 0},
	)
	return fs
}

// scratch carries the per-plan measurements shared by several features. It is
// filled once per Evaluate call so the feature loop itself allocates nothing.
type scratch struct {
	heights  [field.MapWidth]int
	uDiff    [field.MapWidth]int
	valley   [field.MapWidth]int
	ridge    [field.MapWidth]int
	conn2    int
	conn3    int
	ojama    int
	potBest  field.ChainResult
	potNext  field.ChainResult
	patterns [len(templates)]int
}

// idealShape is the U-shape target: relative column heights with the middle
// kept lowest so the trigger stays reachable.
var idealShape = [field.MapWidth]int{0, 2, 1, 0, 0, 1, 2, 0}

func (s *scratch) fill(b *field.BitBoard) {
	minH := field.GhostRow
	total := 0
	for x := 1; x <= field.FieldWidth; x++ {
		h := b.Height(x)
		s.heights[x] = h
		total += h
		if h < minH {
			minH = h
		}
	}

	for x := 1; x <= field.FieldWidth; x++ {
		d := s.heights[x] - minH - idealShape[x]
		if d < 0 {
			d = -d
		}
		s.uDiff[x] = d

		left, right := field.GhostRow, field.GhostRow
		if x > 1 {
			left = s.heights[x-1]
		}
		if x < field.FieldWidth {
			right = s.heights[x+1]
		}
		lower := left
		if right < lower {
			lower = right
		}
		higher := left
		if right > higher {
			higher = right
		}
		if d := lower - s.heights[x]; d > 0 {
			s.valley[x] = d
		} else {
			s.valley[x] = 0
		}
		if d := s.heights[x] - higher; d > 0 {
			s.ridge[x] = d
		} else {
			s.ridge[x] = 0
		}
	}

	s.conn2, s.conn3 = countConnections(b)
	s.ojama = b.ColorBits(field.Ojama).PopCount()
	s.potBest, s.potNext = ChainPotential(b)
	matchTemplates(b, &s.patterns)
}

// countConnections counts 2-cell and 3-cell chromatic groups. Groups of four
// or more would already have popped on a settled board, so only the small
// sizes matter here.
func countConnections(b *field.BitBoard) (c2, c3 int) {
	for _, c := range field.ChromaticColors {
		m := b.ColorBits(c).And(field.FieldBits12)
		linked := m.And(m.Up().Or(m.Down()).Or(m.Left()).Or(m.Right()))
		rest := linked
		for !rest.IsZero() {
			comp := rest.FirstBit().Expand(linked)
			rest = rest.AndNot(comp)
			switch comp.PopCount() {
			case 2:
				c2++
			case 3:
				c3++
			}
		}
	}
	return c2, c3
}
