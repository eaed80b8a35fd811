package field

import (
	"math/bits"
)

// BitBoard is the packed playfield: three parallel bitplanes hold the 3-bit
// color of every cell, and a per-column height cache tracks the topmost
// occupied row. BitBoard is a value type; copying the struct clones the board.
type BitBoard struct {
	// planes[i] holds bit i of the cell color. planes[2] doubles as the
	// chromatic-puyo mask since all four normal colors have bit 2 set.
	planes  [3]Bits
	heights [8]uint8
}

var wallBits = Bits{^uint64(0), ^uint64(0)}.AndNot(FieldBits13)

// NewBitBoard returns an empty board with the border filled with wall.
func NewBitBoard() BitBoard {
	var b BitBoard
	// Wall == 2: only bit 1 set.
	b.planes[1] = wallBits
	return b
}

// ColorAt returns the color of cell (x, y).
func (b *BitBoard) ColorAt(x, y int) Color {
	var c Color
	if b.planes[0].Get(x, y) {
		c |= 1
	}
	if b.planes[1].Get(x, y) {
		c |= 2
	}
	if b.planes[2].Get(x, y) {
		c |= 4
	}
	return c
}

// SetColor writes the color of cell (x, y) without settling or height update.
// Callers mutating the visible field must call RecomputeHeights afterwards.
func (b *BitBoard) SetColor(x, y int, c Color) {
	for i := uint(0); i < 3; i++ {
		if c&(1<<i) != 0 {
			b.planes[i] = b.planes[i].With(x, y)
		} else {
			b.planes[i] = b.planes[i].Without(x, y)
		}
	}
}

// IsEmpty returns true if cell (x, y) holds nothing.
func (b *BitBoard) IsEmpty(x, y int) bool {
	return !b.planes[0].Get(x, y) && !b.planes[1].Get(x, y) && !b.planes[2].Get(x, y)
}

// Occupied returns the mask of non-empty cells inside the playable area.
func (b *BitBoard) Occupied() Bits {
	return b.planes[0].Or(b.planes[1]).Or(b.planes[2]).And(FieldBits13)
}

// ColorBits returns the mask of cells holding exactly color c.
func (b *BitBoard) ColorBits(c Color) Bits {
	m := Bits{^uint64(0), ^uint64(0)}
	for i := uint(0); i < 3; i++ {
		if c&(1<<i) != 0 {
			m = m.And(b.planes[i])
		} else {
			m = m.AndNot(b.planes[i])
		}
	}
	return m.And(FieldBits13)
}

// ChromaticBits returns the mask of all normal puyos in the playable area.
func (b *BitBoard) ChromaticBits() Bits {
	return b.planes[2].And(FieldBits13)
}

// Height returns the topmost occupied row of column x (0 when empty). On a
// settled board this equals the number of puyos stacked in the column.
func (b *BitBoard) Height(x int) int {
	return int(b.heights[x])
}

// RecomputeHeights rebuilds the height cache from the bitplanes.
func (b *BitBoard) RecomputeHeights() {
	occ := b.Occupied()
	for x := 1; x <= FieldWidth; x++ {
		b.heights[x] = uint8(topRow(occ.Column(x)))
	}
}

func topRow(col uint16) int {
	// Column lanes carry rows 1..13; bits 0 and 14..15 are outside the field.
	col &= 0x3FFE
	if col == 0 {
		return 0
	}
	return 15 - bits.LeadingZeros16(col)
}

// IsDead reports whether the death cell (3, 12) is occupied.
func (b *BitBoard) IsDead() bool {
	return !b.IsEmpty(DeathX, DeathY)
}

// IsAllClear reports whether no puyo remains on the playable field.
func (b *BitBoard) IsAllClear() bool {
	return b.Occupied().IsZero()
}

// CountPuyos returns the number of puyos on the playable field.
func (b *BitBoard) CountPuyos() int {
	return b.Occupied().PopCount()
}

// RemoveBits clears every cell in mask across all planes.
func (b *BitBoard) RemoveBits(mask Bits) {
	for i := range b.planes {
		b.planes[i] = b.planes[i].AndNot(mask)
	}
}

// Equals reports board equality including heights.
func (b *BitBoard) Equals(o *BitBoard) bool {
	return b.planes == o.planes && b.heights == o.heights
}

// String renders the visible rows top-first, one row per line.
func (b *BitBoard) String() string {
	buf := make([]byte, 0, (FieldWidth+1)*FieldHeight)
	for y := FieldHeight; y >= 1; y-- {
		for x := 1; x <= FieldWidth; x++ {
			buf = append(buf, b.ColorAt(x, y).Char())
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
