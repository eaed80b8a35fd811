// Package plan enumerates the reachable placements of a visible piece
// sequence on a board.
package plan

import (
	"github.com/hailam/puyoplay/internal/field"
)

// MaxDepth bounds the decision path length a Plan can carry.
const MaxDepth = 8

// Plan is one reachable line of play: the board after the final placement,
// the decision path that produced it, and the chain result of that final
// placement. Plans are plain values so the search can keep them inline.
type Plan struct {
	// Field is the board after the final placement settled.
	Field field.BitBoard
	// Result is the chain result of the final placement only.
	Result field.ChainResult

	path  [MaxDepth]field.Decision
	depth int

	// TotalFrames accumulates placement and chain frames along the path.
	TotalFrames int
	// TotalScore accumulates chain scores along the path, including any
	// consumed zenkeshi bonus.
	TotalScore int
	// Zenkeshi is set while a full-clear bonus is pending for this line.
	Zenkeshi bool
	// Dead is set when the final board occupies the death cell. Dead plans
	// are reported but never extended.
	Dead bool
}

// FirstDecision returns the placement to play now to follow this plan.
func (p *Plan) FirstDecision() field.Decision {
	return p.path[0]
}

// Depth returns the number of placements in the plan.
func (p *Plan) Depth() int {
	return p.depth
}

// Decisions returns the full decision path.
func (p *Plan) Decisions() []field.Decision {
	out := make([]field.Decision, p.depth)
	copy(out, p.path[:p.depth])
	return out
}

// Visitor receives each enumerated plan. Returning false prunes the subtree
// below the plan; enumeration of siblings continues either way.
type Visitor func(*Plan) bool

// Iterate walks every reachable plan of depth up to maxDepth, visiting plans
// in a deterministic order. Placements that would overflow the ghost row are
// skipped. The input board is not modified.
func Iterate(b *field.BitBoard, seq []field.PiecePair, maxDepth int, visit Visitor) {
	if maxDepth > len(seq) {
		maxDepth = len(seq)
	}
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	if maxDepth <= 0 {
		return
	}

	root := Plan{Field: *b}
	iterate(&root, seq, maxDepth, visit)
}

func iterate(parent *Plan, seq []field.PiecePair, maxDepth int, visit Visitor) {
	depth := parent.depth
	for _, d := range field.AllDecisions {
		child := *parent
		placeFrames, err := child.Field.DropPiece(d, seq[depth])
		if err != nil {
			// Overflowing placements are unreachable, not errors.
			continue
		}

		res := child.Field.Simulate()
		child.path[depth] = d
		child.depth = depth + 1
		child.Result = res
		child.TotalFrames += placeFrames + res.Frames
		child.TotalScore += res.Score
		if res.HasPopped() && child.Zenkeshi {
			child.TotalScore += field.ZenkeshiBonus
			child.Zenkeshi = false
		}
		if child.Field.IsAllClear() {
			child.Zenkeshi = true
		}
		child.Dead = child.Field.IsDead()

		if !visit(&child) {
			continue
		}
		if child.depth < maxDepth && !child.Dead {
			iterate(&child, seq, maxDepth, visit)
		}
	}
}
