package eval

import (
	"github.com/hailam/puyoplay/internal/field"
)

// ChainPotential probes every (column, color) single-puyo drop and returns
// the best and second-best chain results. This is the evaluator's view of how
// close the board is to firing; the fire condition reuses it for its
// saturation checks.
func ChainPotential(b *field.BitBoard) (best, second field.ChainResult) {
	for x := 1; x <= field.FieldWidth; x++ {
		for _, c := range field.ChromaticColors {
			probe := *b
			if err := probe.DropSingle(x, c); err != nil {
				continue
			}
			res := probe.Simulate()
			if res.Score > best.Score {
				second = best
				best = res
			} else if res.Score > second.Score {
				second = res
			}
		}
	}
	return best, second
}
