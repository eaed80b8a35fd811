package field

// ES frame and scoring constants. The bonus tables are the published ES
// values; the frame costs are approximations of the ES drop timing.
const (
	framesVanishAnimation = 50
	framesGrounding       = 20
	framesHorizontalMove  = 2

	// OjamaRate converts score to garbage puyos under ES rules.
	OjamaRate = 70

	// ZenkeshiBonus is the flat score bonus granted to the first chain after
	// a full clear.
	ZenkeshiBonus = 3600

	minPopGroup = 4

	maxStepBonus = 999
)

// chainStepBonus is indexed by the 1-based chain step; later steps saturate
// at the final entry.
var chainStepBonus = [...]int{
	0, 0, 8, 16, 32, 64, 96, 128, 160, 192, 224,
	256, 288, 320, 352, 384, 416, 448, 480, 512,
}

// colorCountBonus is indexed by the number of distinct colors popped in one
// step.
var colorCountBonus = [...]int{0, 0, 3, 6, 12, 24}

// framesToDropFast is the fall cost keyed by drop distance in rows.
var framesToDropFast = [...]int{
	0, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36,
}

func groupSizeBonus(n int) int {
	switch {
	case n <= 4:
		return 0
	case n >= 11:
		return 10
	case n == 10:
		return 7
	default:
		return n - 3 // 5 -> 2, 6 -> 3, ... 9 -> 6
	}
}

// ChainResult aggregates one simulated cascade.
type ChainResult struct {
	Chains int
	Score  int
	Frames int
	// Quick is set when the final pop left nothing falling, so the next
	// piece may spawn without waiting out a drop.
	Quick bool
}

// HasPopped returns true if at least one group popped.
func (r ChainResult) HasPopped() bool {
	return r.Chains > 0
}

// OjamaCount converts the score to garbage puyos at the ES rate.
func (r ChainResult) OjamaCount() int {
	return r.Score / OjamaRate
}

// Simulate pops and settles groups until the board is stable, returning the
// aggregate chain result. The board is left in its post-chain state.
func (b *BitBoard) Simulate() ChainResult {
	var result ChainResult
	lastDrop := 0

	for step := 1; ; step++ {
		vanish, popped, colors, groupBonus := b.findVanishing()
		if vanish.IsZero() {
			break
		}

		bonus := stepBonus(step) + colorCountBonus[colors] + groupBonus
		if bonus < 1 {
			bonus = 1
		} else if bonus > maxStepBonus {
			bonus = maxStepBonus
		}
		result.Score += 10 * popped * bonus

		// Garbage orthogonally adjacent to a popped cell clears with it but
		// scores nothing.
		ojama := b.ColorBits(Ojama).And(vanish.Expand1(FieldBits12))
		b.RemoveBits(vanish.Or(ojama))

		lastDrop = b.settle()
		result.Chains = step
		result.Frames += framesVanishAnimation
		if lastDrop > 0 {
			result.Frames += framesToDropFast[lastDrop] + framesGrounding
		}
	}

	result.Quick = result.Chains > 0 && lastDrop == 0
	return result
}

func stepBonus(step int) int {
	if step >= len(chainStepBonus) {
		return chainStepBonus[len(chainStepBonus)-1]
	}
	return chainStepBonus[step]
}

// findVanishing computes the mask of chromatic cells that pop in the current
// step, together with the popped count, distinct color count and accumulated
// group-size bonus. Ghost-row cells never pop.
func (b *BitBoard) findVanishing() (vanish Bits, popped, colors, groupBonus int) {
	for _, c := range ChromaticColors {
		m := b.ColorBits(c).And(FieldBits12)
		if m.PopCount() < minPopGroup {
			continue
		}

		// Only cells with a same-color neighbor can belong to a popping
		// group; expanding from those seeds skips singletons entirely.
		linked := m.And(m.Up().Or(m.Down()).Or(m.Left()).Or(m.Right()))

		var colorVanish Bits
		rest := linked
		for !rest.IsZero() {
			comp := rest.FirstBit().Expand(linked)
			rest = rest.AndNot(comp)
			if n := comp.PopCount(); n >= minPopGroup {
				colorVanish = colorVanish.Or(comp)
				groupBonus += groupSizeBonus(n)
			}
		}
		if !colorVanish.IsZero() {
			colors++
			popped += colorVanish.PopCount()
			vanish = vanish.Or(colorVanish)
		}
	}
	return vanish, popped, colors, groupBonus
}

// settle compacts every column to the ground, recomputes heights and returns
// the largest distance any puyo fell.
func (b *BitBoard) settle() int {
	maxDrop := 0
	for x := 1; x <= FieldWidth; x++ {
		writeY := 1
		for y := 1; y <= GhostRow; y++ {
			c := b.ColorAt(x, y)
			if c == Empty {
				continue
			}
			if y != writeY {
				b.SetColor(x, y, Empty)
				b.SetColor(x, writeY, c)
				if d := y - writeY; d > maxDrop {
					maxDrop = d
				}
			}
			writeY++
		}
		b.heights[x] = uint8(writeY - 1)
	}
	return maxDrop
}
