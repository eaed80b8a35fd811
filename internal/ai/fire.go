package ai

import (
	"fmt"

	"github.com/hailam/puyoplay/internal/eval"
	"github.com/hailam/puyoplay/internal/field"
)

// fireDecision is the outcome of the fire condition: a concrete placement
// that triggers a chain now, with the reason it was chosen.
type fireDecision struct {
	decision field.Decision
	result   field.ChainResult
	reason   string
}

// bestFire enumerates the 22 placements of the current pair and returns the
// one triggering the highest-scoring chain. ok is false when no placement
// pops anything.
func bestFire(b *field.BitBoard, pair field.PiecePair) (fireDecision, bool) {
	var best fireDecision
	found := false
	for _, d := range field.AllDecisions {
		probe := *b
		if _, err := probe.DropPiece(d, pair); err != nil {
			continue
		}
		res := probe.Simulate()
		if !res.HasPopped() {
			continue
		}
		if !found || res.Score > best.result.Score {
			best = fireDecision{decision: d, result: res}
			found = true
		}
	}
	return best, found
}

// zenkeshiFire looks for a placement that clears the whole board.
func zenkeshiFire(b *field.BitBoard, pair field.PiecePair) (fireDecision, bool) {
	for _, d := range field.AllDecisions {
		probe := *b
		if _, err := probe.DropPiece(d, pair); err != nil {
			continue
		}
		res := probe.Simulate()
		if res.HasPopped() && probe.IsAllClear() {
			return fireDecision{decision: d, result: res, reason: "early zenkeshi"}, true
		}
	}
	return fireDecision{}, false
}

// shouldFire decides whether to replace the building decision with an
// immediate chain trigger. Rules run in priority order; the first that
// applies wins.
func (a *AI) shouldFire(me *PlayerState, opp *PlayerState) (fireDecision, bool) {
	if len(me.Seq) == 0 {
		return fireDecision{}, false
	}
	pair := me.Seq[0]

	// 1. Early zenkeshi: a full clear in the opening is worth more than any
	// shape we could build instead.
	if me.Turn <= earlyGameTurns {
		if f, ok := zenkeshiFire(&me.Field, pair); ok {
			return f, true
		}
	}

	// 2. Counter: the opponent is mid-chain and garbage is on its way. Fire
	// the cancel if we can; if we cannot cancel yet, keep building rather
	// than panic-firing a partial chain.
	if opp != nil && opp.OngoingChainFrames > 0 && me.PendingOjama > 0 {
		needed := me.PendingOjama * a.cfg.OjamaRate
		if f, ok := bestFire(&me.Field, pair); ok && f.result.Score >= needed {
			f.reason = fmt.Sprintf("counter %d ojama", me.PendingOjama)
			return f, true
		}
		return fireDecision{}, false
	}

	// 3. Harass: a flat opponent board cannot absorb two rows of garbage
	// without wrecking its shape.
	if opp != nil && isFlat(&opp.Field) {
		if f, ok := bestFire(&me.Field, pair); ok && f.result.Score >= a.cfg.HarassScore {
			f.reason = "harass"
			return f, true
		}
	}

	// 4. Offset: incoming garbage that would bury the death column must be
	// canceled now; comfortable amounts are absorbed instead.
	if me.PendingOjama > 0 {
		rows := me.PendingOjama / field.FieldWidth
		if me.Field.Height(field.DeathX)+rows >= field.FieldHeight {
			needed := me.PendingOjama * a.cfg.OjamaRate
			if f, ok := bestFire(&me.Field, pair); ok {
				if f.result.Score >= needed {
					f.reason = "offset deadly ojama"
				} else {
					f.reason = "partial offset"
				}
				return f, true
			}
		}
		return fireDecision{}, false
	}

	// 5/6. Main chain at saturation: with enough potential on the board the
	// chain fires either on a positional lead or unconditionally.
	pot := eval.BestPotential(&me.Field)
	if pot.Score >= a.cfg.SaturationScore {
		if f, ok := bestFire(&me.Field, pair); ok && f.result.Score*2 >= pot.Score {
			if opp != nil {
				oppPot := eval.BestPotential(&opp.Field)
				if pot.Score > oppPot.Score {
					f.reason = "preemptive main chain"
					return f, true
				}
			}
			f.reason = "saturation"
			return f, true
		}
	}

	return fireDecision{}, false
}

// isFlat reports whether the board's column heights span at most two rows.
func isFlat(b *field.BitBoard) bool {
	minH, maxH := field.GhostRow, 0
	for x := 1; x <= field.FieldWidth; x++ {
		h := b.Height(x)
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	return maxH-minH <= 2
}
