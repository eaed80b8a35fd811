// Package ai implements the decision engine: beam search over enumerated
// plans, the fire condition and the opening matcher.
package ai

import (
	"time"

	"github.com/hailam/puyoplay/internal/field"
)

// PlayerState is the read-only snapshot of one player handed to the decision
// core by the simulation driver.
type PlayerState struct {
	Field field.BitBoard
	// Seq holds the visible upcoming pairs, current pair first.
	Seq []field.PiecePair

	Score        int
	PendingOjama int
	Frames       int
	Zenkeshi     bool
	Turn         int

	// OngoingChainFrames is nonzero while the player's board is mid-chain,
	// counting the frames until the chain resolves.
	OngoingChainFrames int
}

// AIDecision is the outcome of one Think call.
type AIDecision struct {
	Decision field.Decision
	Message  string
	Duration time.Duration
}

// SentinelDecision is returned when no meaningful move exists: column 3,
// child above.
var SentinelDecision = field.Decision{Column: 3, Rotation: 0}
