package field

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrOverflow is returned when a placement would land a puyo above the ghost
// row.
var ErrOverflow = errors.New("puyo would land above the ghost row")

// PiecePair is a tumo: the ordered (axis, child) pair of chromatic colors.
type PiecePair struct {
	Axis  Color
	Child Color
}

// IsSymmetric returns true when both puyos share a color, which halves the
// set of distinct placements.
func (p PiecePair) IsSymmetric() bool {
	return p.Axis == p.Child
}

// String returns the two-letter form, axis first.
func (p PiecePair) String() string {
	return string([]byte{p.Axis.Char(), p.Child.Char()})
}

// RandomPair draws a uniformly random chromatic pair from r.
func RandomPair(r *rand.Rand) PiecePair {
	return PiecePair{
		Axis:  ChromaticColors[r.Intn(len(ChromaticColors))],
		Child: ChromaticColors[r.Intn(len(ChromaticColors))],
	}
}

// Decision places the axis puyo in a column with the child at one of four
// rotations: 0 above, 1 right, 2 below, 3 left.
type Decision struct {
	Column   int
	Rotation int
}

// AllDecisions is the canonical set of 22 placements: rotation 3 in column 1
// and rotation 1 in column 6 would put the child outside the field and are
// excluded. Order is fixed so enumeration is deterministic.
var AllDecisions = buildDecisions()

func buildDecisions() []Decision {
	ds := make([]Decision, 0, 22)
	for x := 1; x <= FieldWidth; x++ {
		for r := 0; r < 4; r++ {
			if x == 1 && r == 3 || x == FieldWidth && r == 1 {
				continue
			}
			ds = append(ds, Decision{Column: x, Rotation: r})
		}
	}
	return ds
}

// ChildColumn returns the column the child puyo occupies.
func (d Decision) ChildColumn() int {
	switch d.Rotation {
	case 1:
		return d.Column + 1
	case 3:
		return d.Column - 1
	}
	return d.Column
}

// IsValid reports whether the decision is one of the 22 canonical placements.
func (d Decision) IsValid() bool {
	if d.Column < 1 || d.Column > FieldWidth || d.Rotation < 0 || d.Rotation > 3 {
		return false
	}
	cx := d.ChildColumn()
	return cx >= 1 && cx <= FieldWidth
}

// String returns the (column, rotation) form.
func (d Decision) String() string {
	return fmt.Sprintf("(%d,%d)", d.Column, d.Rotation)
}

// DropPiece places the pair on the board according to d and returns the frame
// cost of the placement. The board is unchanged when the placement overflows.
func (b *BitBoard) DropPiece(d Decision, p PiecePair) (int, error) {
	if !d.IsValid() {
		return 0, fmt.Errorf("invalid decision %v", d)
	}

	ax, cx := d.Column, d.ChildColumn()
	var ay, cy int
	switch d.Rotation {
	case 0:
		ay = b.Height(ax) + 1
		cy = ay + 1
	case 2:
		cy = b.Height(ax) + 1
		ay = cy + 1
	default:
		ay = b.Height(ax) + 1
		cy = b.Height(cx) + 1
	}
	if ay > GhostRow || cy > GhostRow {
		return 0, ErrOverflow
	}

	b.SetColor(ax, ay, p.Axis)
	b.SetColor(cx, cy, p.Child)
	b.heights[ax]++
	b.heights[cx]++

	return placementFrames(d, ay, cy), nil
}

// DropSingle lands one puyo of color c on top of column x. Used by the
// chain-potential probes.
func (b *BitBoard) DropSingle(x int, c Color) error {
	y := b.Height(x) + 1
	if y > GhostRow {
		return ErrOverflow
	}
	b.SetColor(x, y, c)
	b.heights[x]++
	return nil
}

// placementFrames approximates the frame cost of moving the pair from the
// spawn column and letting it fall. A split drop (horizontal rotation over
// uneven columns) pays the second fall separately.
func placementFrames(d Decision, ay, cy int) int {
	dist := d.Column - 3
	if dist < 0 {
		dist = -dist
	}
	frames := framesHorizontalMove * dist

	high, low := ay, cy
	if cy > high {
		high, low = cy, high
	}
	frames += framesToDropFast[GhostRow+1-high] + framesGrounding
	if d.Rotation == 1 || d.Rotation == 3 {
		if split := high - low; split > 0 {
			frames += framesToDropFast[split] + framesGrounding
		}
	}
	return frames
}
