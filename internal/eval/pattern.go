package eval

import (
	"github.com/hailam/puyoplay/internal/field"
)

// Template is a color-agnostic board pattern. Rows are written top-first over
// columns 1..n like board text; '.' matches anything, lowercase letters are
// color variables that must bind consistently to distinct chromatic colors.
type Template struct {
	Name string
	Rows []string
}

// templates holds the built-in chain-form patterns. Each is matched in both
// the given orientation and its left-right mirror.
var templates = [...]Template{
	{
		Name: "gtr",
		Rows: []string{
			"a..",
			"ab.",
			"bba",
		},
	},
	{
		Name: "newgtr",
		Rows: []string{
			"a..",
			"ab.",
			"abb",
		},
	},
	{
		Name: "submarine",
		Rows: []string{
			"ab.",
			"aab",
		},
	},
}

type templateCell struct {
	x, y int
	v    int // variable index
}

type compiledTemplate struct {
	cells []templateCell
	nvars int
}

// compiled holds both orientations of every template, flattened once at init
// so matching allocates nothing.
var compiled = func() [][2]compiledTemplate {
	out := make([][2]compiledTemplate, len(templates))
	for i := range templates {
		c0, n0 := templateCells(&templates[i], false)
		c1, n1 := templateCells(&templates[i], true)
		out[i] = [2]compiledTemplate{{c0, n0}, {c1, n1}}
	}
	return out
}()

// matchTemplates fills out[i] with the number of orientations of template i
// present on the board.
func matchTemplates(b *field.BitBoard, out *[len(templates)]int) {
	for i := range compiled {
		out[i] = 0
		for o := range compiled[i] {
			var binding [4]field.Color
			if assign(b, compiled[i][o].cells, &binding, compiled[i][o].nvars, 0) {
				out[i]++
			}
		}
	}
}

// templateCells flattens a template anchored at the bottom-left corner of the
// field. The variable space is tiny (at most four), so matching is a direct
// backtracking search over color bindings.
func templateCells(t *Template, mirror bool) ([]templateCell, int) {
	width := 0
	for _, r := range t.Rows {
		if len(r) > width {
			width = len(r)
		}
	}

	var cells []templateCell
	vars := map[byte]int{}
	for ri, row := range t.Rows {
		y := len(t.Rows) - ri
		for ci := 0; ci < len(row); ci++ {
			ch := row[ci]
			if ch == '.' {
				continue
			}
			v, ok := vars[ch]
			if !ok {
				v = len(vars)
				vars[ch] = v
			}
			x := ci + 1
			if mirror {
				x = width - ci
				x = field.FieldWidth + 1 - x // anchor mirror at the right wall
			}
			cells = append(cells, templateCell{x: x, y: y, v: v})
		}
	}
	return cells, len(vars)
}

func assign(b *field.BitBoard, cells []templateCell, binding *[4]field.Color, nvars, v int) bool {
	if v == nvars {
		for _, c := range cells {
			if b.ColorAt(c.x, c.y) != binding[c.v] {
				return false
			}
		}
		return true
	}

nextColor:
	for _, col := range field.ChromaticColors {
		for prev := 0; prev < v; prev++ {
			if binding[prev] == col {
				continue nextColor
			}
		}
		binding[v] = col
		// Prune early: every already-bindable cell must agree.
		ok := true
		for _, c := range cells {
			if c.v == v && b.ColorAt(c.x, c.y) != col {
				ok = false
				break
			}
		}
		if ok && assign(b, cells, binding, nvars, v+1) {
			return true
		}
	}
	return false
}
