package field

import (
	"fmt"
	"strings"
)

// ParseBoard builds a board from the 72-character text form: six characters
// per row, top row (row 12) first, bottom row (row 1) last. Whitespace and
// newlines are ignored, so fixtures may be written row per line. Input with
// fewer than 12 rows describes only the bottom rows, and a 13th row fills the
// ghost row; the length must be an exact multiple of the row width.
func ParseBoard(text string) (BitBoard, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' || r == ' ' {
			return -1
		}
		return r
	}, text)

	if len(cleaned)%FieldWidth != 0 {
		return BitBoard{}, fmt.Errorf("board text length %d is not a multiple of %d", len(cleaned), FieldWidth)
	}
	rows := len(cleaned) / FieldWidth
	if rows > GhostRow {
		return BitBoard{}, fmt.Errorf("board text has %d rows, max %d", rows, GhostRow)
	}

	b := NewBitBoard()
	for i := 0; i < len(cleaned); i++ {
		c, ok := ColorFromChar(cleaned[i])
		if !ok {
			return BitBoard{}, fmt.Errorf("invalid board character %q at offset %d", cleaned[i], i)
		}
		if c == Empty {
			continue
		}
		x := i%FieldWidth + 1
		y := rows - i/FieldWidth
		b.SetColor(x, y, c)
	}
	b.RecomputeHeights()

	if err := b.CheckSettled(); err != nil {
		return BitBoard{}, err
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures known to be well formed.
func MustParseBoard(text string) BitBoard {
	b, err := ParseBoard(text)
	if err != nil {
		panic(err)
	}
	return b
}

// Text renders the visible field as the canonical 72-character string with
// one newline per row.
func (b *BitBoard) Text() string {
	return b.String()
}

// CheckSettled verifies that no puyo floats above an empty cell.
func (b *BitBoard) CheckSettled() error {
	for x := 1; x <= FieldWidth; x++ {
		for y := 2; y <= GhostRow; y++ {
			if !b.IsEmpty(x, y) && b.IsEmpty(x, y-1) {
				return fmt.Errorf("floating puyo at (%d, %d)", x, y)
			}
		}
	}
	return nil
}
