// Package eval scores plans with a linear model over a static feature table.
package eval

import (
	"github.com/hailam/puyoplay/internal/field"
	"github.com/hailam/puyoplay/internal/plan"
)

// Evaluator maps a plan to an integer score, higher is better. The weight
// table is immutable after construction, so a single Evaluator is safe to
// share across search workers.
type Evaluator struct {
	weights []int
}

// NewEvaluator builds an evaluator from a flat weight table. Names must come
// from the feature set; unknown names fail construction.
func NewEvaluator(pairs []WeightPair) (*Evaluator, error) {
	w, err := resolveWeights(pairs)
	if err != nil {
		return nil, err
	}
	return &Evaluator{weights: w}, nil
}

// Default returns an evaluator with the baseline weights.
func Default() *Evaluator {
	e, err := NewEvaluator(nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Evaluate scores the plan. Deterministic for a fixed plan and weight table.
func (e *Evaluator) Evaluate(p *plan.Plan) int {
	var s scratch
	s.fill(&p.Field)

	score := 0
	for i := range featureTable {
		w := e.weights[i]
		if w == 0 {
			continue
		}
		score += w * featureValue(&featureTable[i], &s, p)
	}
	return score
}

// featureValue extracts one feature from the prepared scratch. Values are
// kept in small integer ranges so weights stay interpretable.
func featureValue(f *feature, s *scratch, p *plan.Plan) int {
	switch f.kind {
	case kindShapeUDiff:
		return s.uDiff[f.param]
	case kindValleyDepth:
		return s.valley[f.param]
	case kindRidgeHeight:
		return s.ridge[f.param]
	case kindTotalHeight:
		total := 0
		for x := 1; x <= field.FieldWidth; x++ {
			total += s.heights[x]
		}
		return total
	case kindThirdColumnHeight:
		return s.heights[3]
	case kindConnection2:
		return s.conn2
	case kindConnection3:
		return s.conn3
	case kindOjamaCount:
		return s.ojama
	case kindDeadEnd:
		if p.Dead {
			return 1
		}
		return 0
	case kindPotentialBest:
		return s.potBest.Score / 100
	case kindPotentialBestChains:
		return s.potBest.Chains
	case kindPotentialSecond:
		return s.potNext.Score / 100
	case kindPatternMatch:
		return s.patterns[f.param]
	case kindRealizedScore:
		return p.Result.Score / 100
	case kindRealizedChains:
		return p.Result.Chains
	case kindRealizedQuick:
		if p.Result.Quick {
			return 1
		}
		return 0
	case kindZenkeshiPending:
		if p.Zenkeshi {
			return 1
		}
		return 0
	case kindFrameCost:
		return p.TotalFrames
	}
	return 0
}

// BestPotential exposes the chain-potential probe for the fire condition.
func BestPotential(b *field.BitBoard) field.ChainResult {
	best, _ := ChainPotential(b)
	return best
}
