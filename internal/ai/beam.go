package ai

import (
	"sort"

	"github.com/hailam/puyoplay/internal/field"
	"github.com/hailam/puyoplay/internal/plan"
)

// beamState is one surviving search node. States are plain values so the
// candidate buffer holds them inline.
type beamState struct {
	board    field.BitBoard
	first    field.Decision
	score    int
	frames   int
	depth    int
	zenkeshi bool
	dead     bool
}

// rolloutOutcome is what a single beam rollout reports back.
type rolloutOutcome struct {
	decision field.Decision
	score    int
	ok       bool
}

// beamSearch runs one serial beam over seq and returns the best first
// decision. stop is polled between depths; on cancellation the best decision
// found so far is returned.
func (a *AI) beamSearch(b *field.BitBoard, seq []field.PiecePair, width int, zenkeshi bool, stop func() bool) rolloutOutcome {
	// Both buffers are sized once and reused across depths.
	cand := make([]beamState, 0, width*len(field.AllDecisions))
	cur := make([]beamState, 0, width)
	cur = append(cur, beamState{board: *b, zenkeshi: zenkeshi})

	var out rolloutOutcome
	for d := 0; d < len(seq); d++ {
		if stop() {
			break
		}

		cand = cand[:0]
		for si := range cur {
			parent := &cur[si]
			if parent.dead {
				continue
			}
			for _, dec := range field.AllDecisions {
				child := *parent
				placeFrames, err := child.board.DropPiece(dec, seq[d])
				if err != nil {
					continue
				}
				res := child.board.Simulate()

				p := plan.Plan{
					Field:       child.board,
					Result:      res,
					TotalFrames: child.frames + placeFrames + res.Frames,
					Zenkeshi:    child.zenkeshi,
					Dead:        child.board.IsDead(),
				}
				if res.HasPopped() && p.Zenkeshi {
					p.Zenkeshi = false
				}
				if child.board.IsAllClear() {
					p.Zenkeshi = true
				}

				child.frames = p.TotalFrames
				child.zenkeshi = p.Zenkeshi
				child.dead = p.Dead
				child.depth = d + 1
				child.score = a.eval.Evaluate(&p)
				if d == 0 {
					child.first = dec
				}
				cand = append(cand, child)
			}
		}
		if len(cand) == 0 {
			break
		}

		// Order: eval score descending, then fewer cumulative frames, then
		// the first decision closest to column 3. Stable sort keeps full
		// determinism for equal keys.
		sort.SliceStable(cand, func(i, j int) bool {
			ci, cj := &cand[i], &cand[j]
			if ci.score != cj.score {
				return ci.score > cj.score
			}
			if ci.frames != cj.frames {
				return ci.frames < cj.frames
			}
			return colDist(ci.first.Column) < colDist(cj.first.Column)
		})
		if len(cand) > width {
			cand = cand[:width]
		}

		cur = cur[:0]
		cur = append(cur, cand...)

		// The best surviving state so far defines the rollout's answer; a
		// deadline hit between depths keeps this partial result.
		out = rolloutOutcome{decision: cur[0].first, score: cur[0].score, ok: true}
	}
	return out
}

func colDist(x int) int {
	if x < 3 {
		return 3 - x
	}
	return x - 3
}
