package ai

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/hailam/puyoplay/internal/eval"
	"github.com/hailam/puyoplay/internal/field"
)

// framePeriod converts think budgets given in frames to wall time (60 fps).
const framePeriod = time.Second / 60

// earlyGameTurns bounds the opening window for the zenkeshi fire rule.
const earlyGameTurns = 6

// Clock supplies the current time. The core never reads the system clock
// directly; the driver injects one.
type Clock func() time.Time

// Config carries the tunable search parameters.
type Config struct {
	// BeamWidthEarly and BeamWidthMax bound the beam: the width grows with
	// the turn count as the board fills up.
	BeamWidthEarly int
	BeamWidthMax   int
	// Rollouts is the number of parallel randomized rollouts per think.
	Rollouts int
	// SearchDepth is the minimum lookahead; longer visible sequences deepen
	// the search to match.
	SearchDepth int
	// SeedBase seeds worker i with SeedBase+i, making thinks reproducible.
	SeedBase int64
	// OjamaRate is the score cost of one garbage puyo (70 under ES).
	OjamaRate int
	// SaturationScore is the main-chain potential at which we fire.
	SaturationScore int
	// HarassScore is the minimum chain score worth throwing at a flat
	// opponent (two rows of garbage).
	HarassScore int
	// OpeningTurns is the last turn the opening matcher is consulted.
	OpeningTurns int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		BeamWidthEarly:  20,
		BeamWidthMax:    140,
		Rollouts:        20,
		SearchDepth:     4,
		SeedBase:        1,
		OjamaRate:       field.OjamaRate,
		SaturationScore: 80000,
		HarassScore:     840,
		OpeningTurns:    5,
	}
}

func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.BeamWidthEarly <= 0 {
		c.BeamWidthEarly = d.BeamWidthEarly
	}
	if c.BeamWidthMax <= 0 {
		c.BeamWidthMax = d.BeamWidthMax
	}
	if c.Rollouts <= 0 {
		c.Rollouts = d.Rollouts
	}
	if c.SearchDepth <= 0 {
		c.SearchDepth = d.SearchDepth
	}
	if c.OjamaRate <= 0 {
		c.OjamaRate = d.OjamaRate
	}
	if c.SaturationScore <= 0 {
		c.SaturationScore = d.SaturationScore
	}
	if c.HarassScore <= 0 {
		c.HarassScore = d.HarassScore
	}
	if c.OpeningTurns <= 0 {
		c.OpeningTurns = d.OpeningTurns
	}
}

// AI is the decision core. One Think call returns one decision; the instance
// holds only immutable configuration plus cancellation state, so a single AI
// serves a whole game.
type AI struct {
	cfg     Config
	eval    *eval.Evaluator
	opening *OpeningMatcher
	now     Clock

	stop   atomic.Bool
	stopCh chan struct{}

	beamRuns atomic.Int64
}

// New builds an AI. A nil evaluator uses the default weights, a nil opening
// matcher uses the built-in table and a nil clock uses time.Now.
func New(cfg Config, ev *eval.Evaluator, opening *OpeningMatcher, now Clock) (*AI, error) {
	cfg.applyDefaults()
	if ev == nil {
		ev = eval.Default()
	}
	if opening == nil {
		var err error
		opening, err = NewOpeningMatcher(nil)
		if err != nil {
			return nil, err
		}
	}
	if now == nil {
		now = time.Now
	}
	return &AI{
		cfg:     cfg,
		eval:    ev,
		opening: opening,
		now:     now,
		stopCh:  make(chan struct{}),
	}, nil
}

// Stop cancels any in-flight search. Workers stop at their next depth
// boundary and the result fan-in stops collecting, so the current Think votes
// over the rollout results already collected and returns the sentinel when
// there are none. The stop is never reset: every later beam search on this AI
// ends before its first depth.
func (a *AI) Stop() {
	if a.stop.CompareAndSwap(false, true) {
		close(a.stopCh)
	}
}

// BeamInvocations reports how many thinks reached the beam search, i.e. were
// not resolved by the opening table or the fire condition.
func (a *AI) BeamInvocations() int64 {
	return a.beamRuns.Load()
}

func (a *AI) beamWidth(turn int) int {
	w := a.cfg.BeamWidthEarly + turn*4
	if w > a.cfg.BeamWidthMax {
		w = a.cfg.BeamWidthMax
	}
	return w
}

// Think returns the next placement for the first pair of me.Seq. thinkFrames
// bounds the wall time (0 = unbounded); on expiry the best partial result is
// returned. Think never fails: degenerate inputs produce the sentinel
// decision with a diagnostic message.
func (a *AI) Think(me *PlayerState, opp *PlayerState, thinkFrames int) AIDecision {
	start := a.now()
	finish := func(d field.Decision, msg string) AIDecision {
		return AIDecision{Decision: d, Message: msg, Duration: a.now().Sub(start)}
	}

	if me.Field.IsDead() {
		return finish(SentinelDecision, "dead state")
	}
	if len(me.Seq) == 0 {
		return finish(SentinelDecision, "no visible pairs")
	}

	if me.Turn >= 1 && me.Turn <= a.cfg.OpeningTurns {
		if d, ok := a.opening.Match(&me.Field, me.Turn, me.Seq[0]); ok {
			log.Printf("[Think] turn %d: opening template -> %v", me.Turn, d)
			return finish(d, "opening template")
		}
	}

	if f, ok := a.shouldFire(me, opp); ok {
		log.Printf("[Think] fire (%s): %v chains=%d score=%d",
			f.reason, f.decision, f.result.Chains, f.result.Score)
		return finish(f.decision, "fire: "+f.reason)
	}

	deadline := time.Time{}
	hasDeadline := thinkFrames > 0
	if hasDeadline {
		deadline = start.Add(time.Duration(thinkFrames) * framePeriod)
	}

	a.beamRuns.Add(1)
	d, score, ok := a.searchParallel(me, deadline, hasDeadline)
	if !ok {
		// Either every placement overflows or the budget expired before any
		// rollout finished a depth. Both degrade to the sentinel.
		return finish(SentinelDecision, "no search result")
	}
	return finish(d, fmt.Sprintf("beam score=%d", score))
}
