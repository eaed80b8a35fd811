// Package puyop encodes boards and move lists in the puyop.com replay URL
// format so drivers can interchange recorded games.
package puyop

import (
	"fmt"
	"strings"

	"github.com/hailam/puyoplay/internal/field"
)

// alphabet is the 64-symbol URL alphabet.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ[]"

const urlPrefix = "https://www.puyop.com/s/"

// fieldCells is the encoded area: 13 rows by 6 columns, two cells per symbol.
const fieldCells = (field.GhostRow) * field.FieldWidth

var symbolIndex = func() map[byte]int {
	m := make(map[byte]int, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		m[alphabet[i]] = i
	}
	return m
}()

// cell color codes in the URL encoding.
const (
	codeEmpty  = 0
	codeRed    = 1
	codeBlue   = 2
	codeYellow = 3
	codeGreen  = 4
	codeOjama  = 6
)

func colorCode(c field.Color) (int, error) {
	switch c {
	case field.Empty:
		return codeEmpty, nil
	case field.Red:
		return codeRed, nil
	case field.Blue:
		return codeBlue, nil
	case field.Yellow:
		return codeYellow, nil
	case field.Green:
		return codeGreen, nil
	case field.Ojama:
		return codeOjama, nil
	}
	return 0, fmt.Errorf("color %v has no URL encoding", c)
}

func codeColor(code int) (field.Color, error) {
	switch code {
	case codeEmpty:
		return field.Empty, nil
	case codeRed:
		return field.Red, nil
	case codeBlue:
		return field.Blue, nil
	case codeYellow:
		return field.Yellow, nil
	case codeGreen:
		return field.Green, nil
	case codeOjama:
		return field.Ojama, nil
	}
	return field.Empty, fmt.Errorf("invalid color code %d", code)
}

// Move is one recorded placement.
type Move struct {
	Pair     field.PiecePair
	Decision field.Decision
}

// EncodeField packs the board into the field segment: cells scanned from the
// ghost row down, left to right, two cells per symbol, leading empty symbols
// dropped.
func EncodeField(b *field.BitBoard) (string, error) {
	codes := make([]int, 0, fieldCells)
	for y := field.GhostRow; y >= 1; y-- {
		for x := 1; x <= field.FieldWidth; x++ {
			c, err := colorCode(b.ColorAt(x, y))
			if err != nil {
				return "", err
			}
			codes = append(codes, c)
		}
	}

	var sb strings.Builder
	started := false
	for i := 0; i < len(codes); i += 2 {
		v := codes[i]*8 + codes[i+1]
		if v == 0 && !started {
			continue
		}
		started = true
		sb.WriteByte(alphabet[v])
	}
	return sb.String(), nil
}

// DecodeField unpacks a field segment into a board.
func DecodeField(s string) (field.BitBoard, error) {
	if len(s) > fieldCells/2 {
		return field.BitBoard{}, fmt.Errorf("field segment too long: %d symbols", len(s))
	}

	b := field.NewBitBoard()
	// The segment encodes the trailing cells of the scan; pad the lead.
	offset := fieldCells - len(s)*2
	for i := 0; i < len(s); i++ {
		v, ok := symbolIndex[s[i]]
		if !ok {
			return field.BitBoard{}, fmt.Errorf("invalid symbol %q", s[i])
		}
		for k, code := range [2]int{v / 8, v % 8} {
			c, err := codeColor(code)
			if err != nil {
				return field.BitBoard{}, err
			}
			if c == field.Empty {
				continue
			}
			cell := offset + i*2 + k
			x := cell%field.FieldWidth + 1
			y := field.GhostRow - cell/field.FieldWidth
			b.SetColor(x, y, c)
		}
	}
	b.RecomputeHeights()
	if err := b.CheckSettled(); err != nil {
		return field.BitBoard{}, err
	}
	return b, nil
}

// EncodeMoves packs the control segment: two symbols per move, the first
// holding the pair colors and the second the placement.
func EncodeMoves(moves []Move) (string, error) {
	var sb strings.Builder
	for _, m := range moves {
		a, err := colorCode(m.Pair.Axis)
		if err != nil {
			return "", err
		}
		c, err := colorCode(m.Pair.Child)
		if err != nil {
			return "", err
		}
		if !m.Decision.IsValid() {
			return "", fmt.Errorf("invalid decision %v", m.Decision)
		}
		sb.WriteByte(alphabet[a*8+c])
		sb.WriteByte(alphabet[(m.Decision.Column-1)*4+m.Decision.Rotation])
	}
	return sb.String(), nil
}

// DecodeMoves unpacks a control segment.
func DecodeMoves(s string) ([]Move, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("control segment length %d is odd", len(s))
	}
	moves := make([]Move, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		v, ok := symbolIndex[s[i]]
		if !ok {
			return nil, fmt.Errorf("invalid symbol %q", s[i])
		}
		axis, err := codeColor(v / 8)
		if err != nil {
			return nil, err
		}
		child, err := codeColor(v % 8)
		if err != nil {
			return nil, err
		}
		if !axis.IsChromatic() || !child.IsChromatic() {
			return nil, fmt.Errorf("control symbol %q does not encode a chromatic pair", s[i])
		}
		w, ok := symbolIndex[s[i+1]]
		if !ok {
			return nil, fmt.Errorf("invalid symbol %q", s[i+1])
		}
		d := field.Decision{Column: w/4 + 1, Rotation: w % 4}
		if !d.IsValid() {
			return nil, fmt.Errorf("invalid placement symbol %q", s[i+1])
		}
		moves = append(moves, Move{Pair: field.PiecePair{Axis: axis, Child: child}, Decision: d})
	}
	return moves, nil
}

// EncodeURL builds a full replay URL from an initial board and move list.
func EncodeURL(b *field.BitBoard, moves []Move) (string, error) {
	f, err := EncodeField(b)
	if err != nil {
		return "", err
	}
	ctl, err := EncodeMoves(moves)
	if err != nil {
		return "", err
	}
	if ctl == "" {
		return urlPrefix + f, nil
	}
	return urlPrefix + f + "_" + ctl, nil
}

// DecodeURL splits and decodes a replay URL (with or without the host
// prefix).
func DecodeURL(u string) (field.BitBoard, []Move, error) {
	s := strings.TrimPrefix(u, urlPrefix)
	fieldSeg, ctlSeg, _ := strings.Cut(s, "_")
	b, err := DecodeField(fieldSeg)
	if err != nil {
		return field.BitBoard{}, nil, err
	}
	moves, err := DecodeMoves(ctlSeg)
	if err != nil {
		return field.BitBoard{}, nil, err
	}
	return b, moves, nil
}
