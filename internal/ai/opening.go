package ai

import (
	"fmt"
	"strings"

	"github.com/hailam/puyoplay/internal/field"
)

// OpeningEntry maps a board pattern and piece pair to a precomputed decision
// for one opening turn. Patterns are color-agnostic: uppercase letters are
// color variables bound by a bijection over the chromatic colors, shared
// between the board cells and the pair.
type OpeningEntry struct {
	Turn int
	// Board lists the relevant bottom rows, top row first, columns from 1.
	// '.' cells are unconstrained. Empty string matches any board.
	Board string
	// Pair gives the variables for (axis, child).
	Pair string
	// Decision is the placement to play.
	Decision field.Decision
}

type openingPattern struct {
	turn     int
	cells    []templatePoint
	pairVars [2]int
	nvars    int
	decision field.Decision
}

type templatePoint struct {
	x, y int
	v    int
}

// OpeningMatcher resolves the first few turns from a template table instead
// of searching.
type OpeningMatcher struct {
	patterns []openingPattern
}

// DefaultOpeningEntries is the built-in table: flat-start placements keeping
// the death column low and pairs split toward the edges.
var DefaultOpeningEntries = []OpeningEntry{
	{Turn: 1, Board: "", Pair: "AA", Decision: field.Decision{Column: 1, Rotation: 0}},
	{Turn: 1, Board: "", Pair: "AB", Decision: field.Decision{Column: 1, Rotation: 1}},
	{Turn: 2, Board: "A.....\nA.....", Pair: "AA", Decision: field.Decision{Column: 2, Rotation: 0}},
	{Turn: 2, Board: "A.....\nA.....", Pair: "AB", Decision: field.Decision{Column: 2, Rotation: 1}},
	{Turn: 2, Board: "AB....", Pair: "AB", Decision: field.Decision{Column: 1, Rotation: 1}},
	{Turn: 2, Board: "AB....", Pair: "BA", Decision: field.Decision{Column: 2, Rotation: 3}},
	{Turn: 2, Board: "AB....", Pair: "CC", Decision: field.Decision{Column: 4, Rotation: 1}},
}

// NewOpeningMatcher compiles an entry table. A nil table uses the built-in
// entries.
func NewOpeningMatcher(entries []OpeningEntry) (*OpeningMatcher, error) {
	if entries == nil {
		entries = DefaultOpeningEntries
	}
	m := &OpeningMatcher{}
	for i := range entries {
		p, err := compileOpening(&entries[i])
		if err != nil {
			return nil, fmt.Errorf("opening entry %d: %w", i, err)
		}
		m.patterns = append(m.patterns, p)
	}
	return m, nil
}

func compileOpening(e *OpeningEntry) (openingPattern, error) {
	p := openingPattern{turn: e.Turn, decision: e.Decision}
	if e.Turn < 1 {
		return p, fmt.Errorf("turn %d out of range", e.Turn)
	}
	if !e.Decision.IsValid() {
		return p, fmt.Errorf("invalid decision %v", e.Decision)
	}
	if len(e.Pair) != 2 {
		return p, fmt.Errorf("pair %q must name two variables", e.Pair)
	}

	vars := map[byte]int{}
	bind := func(ch byte) (int, error) {
		if ch < 'A' || ch > 'D' {
			return 0, fmt.Errorf("invalid color variable %q", ch)
		}
		v, ok := vars[ch]
		if !ok {
			v = len(vars)
			if v >= 4 {
				return 0, fmt.Errorf("too many color variables")
			}
			vars[ch] = v
		}
		return v, nil
	}

	rows := []string{}
	if e.Board != "" {
		rows = strings.Split(e.Board, "\n")
	}
	for ri, row := range rows {
		y := len(rows) - ri
		for ci := 0; ci < len(row); ci++ {
			if row[ci] == '.' {
				continue
			}
			v, err := bind(row[ci])
			if err != nil {
				return p, err
			}
			p.cells = append(p.cells, templatePoint{x: ci + 1, y: y, v: v})
		}
	}
	for i := 0; i < 2; i++ {
		v, err := bind(e.Pair[i])
		if err != nil {
			return p, err
		}
		p.pairVars[i] = v
	}
	p.nvars = len(vars)
	return p, nil
}

// Match returns the tabled decision for the current board and pair, if any.
// Entries are tried in table order; the first consistent color bijection
// wins.
func (m *OpeningMatcher) Match(b *field.BitBoard, turn int, pair field.PiecePair) (field.Decision, bool) {
	for i := range m.patterns {
		p := &m.patterns[i]
		if p.turn != turn {
			continue
		}
		var binding [4]field.Color
		if p.matchBinding(b, pair, &binding, 0) {
			return p.decision, true
		}
	}
	return field.Decision{}, false
}

func (p *openingPattern) matchBinding(b *field.BitBoard, pair field.PiecePair, binding *[4]field.Color, v int) bool {
	if v == p.nvars {
		for _, c := range p.cells {
			if b.ColorAt(c.x, c.y) != binding[c.v] {
				return false
			}
		}
		return binding[p.pairVars[0]] == pair.Axis && binding[p.pairVars[1]] == pair.Child
	}

nextColor:
	for _, col := range field.ChromaticColors {
		for prev := 0; prev < v; prev++ {
			if binding[prev] == col {
				continue nextColor
			}
		}
		binding[v] = col
		if p.matchBinding(b, pair, binding, v+1) {
			return true
		}
	}
	return false
}
