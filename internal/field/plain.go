package field

// PlainBoard is the flat 2D form of the playfield, indexed [x][y] over the
// full 8x16 grid. It exists for construction, debugging and as the lossless
// counterpart of BitBoard; gameplay always runs on the packed form.
type PlainBoard struct {
	cells [MapWidth][MapHeight]Color
}

// NewPlainBoard returns an empty plain board with the border filled with wall.
func NewPlainBoard() PlainBoard {
	var p PlainBoard
	for x := 0; x < MapWidth; x++ {
		for y := 0; y < MapHeight; y++ {
			if x == 0 || x == MapWidth-1 || y == 0 || y > GhostRow {
				p.cells[x][y] = Wall
			}
		}
	}
	return p
}

// ColorAt returns the color of cell (x, y).
func (p *PlainBoard) ColorAt(x, y int) Color {
	return p.cells[x][y]
}

// SetColor writes the color of cell (x, y).
func (p *PlainBoard) SetColor(x, y int, c Color) {
	p.cells[x][y] = c
}

// ToBitBoard packs the plain board. Heights are recomputed.
func (p *PlainBoard) ToBitBoard() BitBoard {
	b := NewBitBoard()
	for x := 1; x <= FieldWidth; x++ {
		for y := 1; y <= GhostRow; y++ {
			if c := p.cells[x][y]; c != Empty {
				b.SetColor(x, y, c)
			}
		}
	}
	b.RecomputeHeights()
	return b
}

// ToPlain unpacks the bit board into the flat form.
func (b *BitBoard) ToPlain() PlainBoard {
	p := NewPlainBoard()
	for x := 1; x <= FieldWidth; x++ {
		for y := 1; y <= GhostRow; y++ {
			p.cells[x][y] = b.ColorAt(x, y)
		}
	}
	return p
}
