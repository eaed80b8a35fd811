package ai

import (
	"math/rand"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/puyoplay/internal/field"
	"github.com/hailam/puyoplay/internal/plan"
)

// workerResult carries one rollout's answer back to the aggregator.
type workerResult struct {
	outcome rolloutOutcome
	worker  int
}

// searchParallel fans out R beam rollouts, each with its own RNG-extended
// future, and aggregates their first decisions by majority vote. Workers
// share nothing mutable; they only read the initial state and poll the
// deadline between depths.
func (a *AI) searchParallel(me *PlayerState, deadline time.Time, hasDeadline bool) (field.Decision, int, bool) {
	depth := a.cfg.SearchDepth
	if len(me.Seq) > depth {
		depth = len(me.Seq)
	}
	if depth > plan.MaxDepth {
		depth = plan.MaxDepth
	}
	width := a.beamWidth(me.Turn)

	stop := func() bool {
		if a.stop.Load() {
			return true
		}
		return hasDeadline && !a.now().Before(deadline)
	}

	rollouts := a.cfg.Rollouts
	if len(me.Seq) >= depth {
		// Nothing hidden to randomize; every rollout would be identical.
		rollouts = 1
	}

	chans := make([]<-chan workerResult, rollouts)
	var g errgroup.Group
	for i := 0; i < rollouts; i++ {
		ch := make(chan workerResult, 1)
		chans[i] = ch
		worker := i
		seed := a.cfg.SeedBase + int64(i)
		g.Go(func() error {
			defer close(ch)
			rng := rand.New(rand.NewSource(seed))
			seq := extendSeq(me.Seq, depth, rng)
			out := a.beamSearch(&me.Field, seq, width, me.Zenkeshi, stop)
			ch <- workerResult{outcome: out, worker: worker}
			return nil
		})
	}

	// Fan-in: the merged channel closes once every worker is done. The done
	// channel only guards against an external Stop tearing the search down.
	votes := make(map[field.Decision]int)
	scoreSums := make(map[field.Decision]int)
	for r := range channerics.OrDone[workerResult](a.stopCh, channerics.Merge[workerResult](a.stopCh, chans...)) {
		if !r.outcome.ok {
			continue
		}
		votes[r.outcome.decision]++
		scoreSums[r.outcome.decision] += r.outcome.score
	}
	_ = g.Wait()

	return pickVoted(votes, scoreSums)
}

// pickVoted applies the aggregation tie-break: most votes, then highest mean
// eval score, then lowest column, then lowest rotation. Candidates are
// scanned in canonical decision order so the result does not depend on map
// iteration or worker completion order.
func pickVoted(votes, scoreSums map[field.Decision]int) (field.Decision, int, bool) {
	var best field.Decision
	found := false
	for _, d := range field.AllDecisions {
		v := votes[d]
		if v == 0 {
			continue
		}
		if !found {
			best, found = d, true
			continue
		}
		switch {
		case v > votes[best]:
			best = d
		case v == votes[best] &&
			scoreSums[d]*votes[best] > scoreSums[best]*v:
			// Cross-multiplied mean comparison keeps everything integral.
			best = d
		}
	}
	if !found {
		return field.Decision{}, 0, false
	}
	return best, scoreSums[best] / votes[best], true
}

// extendSeq pads the visible sequence with uniformly random pairs up to
// depth.
func extendSeq(visible []field.PiecePair, depth int, rng *rand.Rand) []field.PiecePair {
	seq := make([]field.PiecePair, 0, depth)
	seq = append(seq, visible...)
	if len(seq) > depth {
		seq = seq[:depth]
	}
	for len(seq) < depth {
		seq = append(seq, field.RandomPair(rng))
	}
	return seq
}
