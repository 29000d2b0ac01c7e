// Package formspec parses and normalizes the textual column and row specs of
// form layouts, such as "left:max(pref;50dlu):grow(0.5)".
//
// Every spec is rewritten as align:size:resize with axis-qualified units
// folded together, so "3dluX" as a column and "3dluY" as a row both encode
// to the same "3dlu" size.
package formspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInvalidSpec is wrapped by every parse or validation failure.
var ErrInvalidSpec = errors.New("invalid form spec")

// Axis selects the alignment vocabulary and default.
type Axis int

const (
	Column Axis = iota
	Row
)

func (a Axis) String() string {
	if a == Row {
		return "row"
	}
	return "column"
}

type specAST struct {
	Parts []*partAST `parser:"@@ ( ':' @@ )*"`
}

type partAST struct {
	Bounded *boundedAST `parser:"  @@"`
	Size    *constAST   `parser:"| @@"`
	Word    *wordAST    `parser:"| @@"`
}

type boundedAST struct {
	Func  string   `parser:"@( 'max' | 'min' ) '('"`
	Left  *sizeAST `parser:"@@ ';'"`
	Right *sizeAST `parser:"@@ ')'"`
}

type sizeAST struct {
	Const *constAST `parser:"  @@"`
	Word  string    `parser:"| @Ident"`
}

type constAST struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@Ident?"`
}

type wordAST struct {
	Name   string   `parser:"@Ident"`
	Weight *float64 `parser:"( '(' @Number ')' )?"`
}

var specLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?|\.[0-9]+`},
	{Name: "Ident", Pattern: `[a-z_][a-z_0-9]*`},
	{Name: "Punct", Pattern: `[():;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var specParser = participle.MustBuild[specAST](
	participle.Lexer(specLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

var units = map[string]string{
	"":     "px",
	"px":   "px",
	"pt":   "pt",
	"in":   "in",
	"cm":   "cm",
	"mm":   "mm",
	"dlu":  "dlu",
	"dlux": "dlu",
	"dluy": "dlu",
}

var componentSizes = map[string]string{
	"default":   "default",
	"d":         "default",
	"preferred": "pref",
	"pref":      "pref",
	"p":         "pref",
	"minimum":   "min",
	"min":       "min",
	"m":         "min",
}

var alignments = map[Axis]map[string]string{
	Column: {
		"left": "left", "l": "left",
		"center": "center", "c": "center",
		"right": "right", "r": "right",
		"fill": "fill", "f": "fill",
	},
	Row: {
		"top": "top", "t": "top",
		"center": "center", "c": "center",
		"bottom": "bottom", "b": "bottom",
		"fill": "fill", "f": "fill",
	},
}

// Spec is a normalized column or row spec.
type Spec struct {
	Align  string
	Size   string
	Resize string
}

func (s Spec) String() string {
	return s.Align + ":" + s.Size + ":" + s.Resize
}

// Parse normalizes one spec for the given axis.
func Parse(text string, axis Axis) (Spec, error) {
	ast, err := specParser.ParseString("", strings.ToLower(strings.TrimSpace(text)))
	if err != nil {
		return Spec{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidSpec, axis, text, err)
	}

	spec := Spec{Align: "fill", Resize: "none"}
	if axis == Row {
		spec.Align = "center"
	}
	var haveAlign, haveSize, haveResize bool
	for _, p := range ast.Parts {
		switch {
		case p.Bounded != nil:
			if haveSize {
				return Spec{}, fmt.Errorf("%w: %q has two sizes", ErrInvalidSpec, text)
			}
			left, err := size(p.Bounded.Left)
			if err != nil {
				return Spec{}, err
			}
			right, err := size(p.Bounded.Right)
			if err != nil {
				return Spec{}, err
			}
			spec.Size, haveSize = fmt.Sprintf("%s(%s;%s)", p.Bounded.Func, left, right), true
		case p.Size != nil:
			if haveSize {
				return Spec{}, fmt.Errorf("%w: %q has two sizes", ErrInvalidSpec, text)
			}
			s, err := constant(p.Size)
			if err != nil {
				return Spec{}, err
			}
			spec.Size, haveSize = s, true
		default:
			w := p.Word
			if a, ok := alignments[axis][w.Name]; ok && w.Weight == nil && !haveAlign && !haveSize {
				spec.Align, haveAlign = a, true
				continue
			}
			if s, ok := componentSizes[w.Name]; ok && w.Weight == nil && !haveSize {
				spec.Size, haveSize = s, true
				continue
			}
			if r, ok := resize(w); ok && haveSize && !haveResize {
				spec.Resize, haveResize = r, true
				continue
			}
			return Spec{}, fmt.Errorf("%w: %s %q: unexpected %q", ErrInvalidSpec, axis, text, w.Name)
		}
	}
	if !haveSize {
		return Spec{}, fmt.Errorf("%w: %s %q has no size", ErrInvalidSpec, axis, text)
	}
	return spec, nil
}

func size(s *sizeAST) (string, error) {
	if s.Const != nil {
		return constant(s.Const)
	}
	if c, ok := componentSizes[s.Word]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown size %q", ErrInvalidSpec, s.Word)
}

func constant(c *constAST) (string, error) {
	unit, ok := units[c.Unit]
	if !ok {
		return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidSpec, c.Unit)
	}
	return strconv.FormatFloat(c.Value, 'f', -1, 64) + unit, nil
}

func resize(w *wordAST) (string, bool) {
	switch w.Name {
	case "none", "n", "nogrow":
		if w.Weight != nil {
			return "", false
		}
		return "none", true
	case "grow", "g":
		if w.Weight == nil || *w.Weight == 1 {
			return "grow", true
		}
		return "grow(" + strconv.FormatFloat(*w.Weight, 'f', -1, 64) + ")", true
	}
	return "", false
}

// Encode normalizes specs and joins them with commas, the form the runtime
// layout constructor accepts.
func Encode(specs []string, axis Axis) (string, error) {
	parts := make([]string, 0, len(specs))
	for _, s := range specs {
		spec, err := Parse(s, axis)
		if err != nil {
			return "", err
		}
		parts = append(parts, spec.String())
	}
	return strings.Join(parts, ","), nil
}
