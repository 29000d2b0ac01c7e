package form

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidForm is wrapped by every semantic error Load reports.
var ErrInvalidForm = errors.New("invalid form")

// LoadFile reads a form description from path.
func LoadFile(path string) (*Form, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	form, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return form, nil
}

// Load decodes a YAML form description.
func Load(r io.Reader) (*Form, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc fileYAML
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidForm)
		}
		return nil, err
	}

	f := &Form{ClassToBind: doc.Class}
	for i := range doc.Components {
		c, err := doc.Components[i].build(fmt.Sprintf("components[%d]", i))
		if err != nil {
			return nil, err
		}
		f.Components = append(f.Components, c)
	}
	for _, g := range doc.ButtonGroups {
		if g.Name == "" {
			return nil, fmt.Errorf("%w: button group without a name", ErrInvalidForm)
		}
		f.ButtonGroups = append(f.ButtonGroups, ButtonGroup{Name: g.Name, Bound: g.Bound, Members: g.Members})
	}
	return f, nil
}

type fileYAML struct {
	Class        string            `yaml:"class"`
	Components   []componentYAML   `yaml:"components"`
	ButtonGroups []buttonGroupYAML `yaml:"buttonGroups"`
}

type buttonGroupYAML struct {
	Name    string   `yaml:"name"`
	Bound   bool     `yaml:"bound"`
	Members []string `yaml:"members"`
}

type componentYAML struct {
	ID           string           `yaml:"id"`
	Class        string           `yaml:"class"`
	Binding      string           `yaml:"binding"`
	CustomCreate bool             `yaml:"customCreate"`
	LabelFor     string           `yaml:"labelFor"`
	Properties   []propertyYAML   `yaml:"properties"`
	Constraints  *constraintsYAML `yaml:"constraints"`
	Layout       *layoutYAML      `yaml:"layout"`
	Children     []componentYAML  `yaml:"children"`
}

func (y *componentYAML) build(path string) (*Component, error) {
	if y.ID != "" {
		path = y.ID
	}
	if y.Class == "" {
		return nil, fmt.Errorf("%w: %s: missing class", ErrInvalidForm, path)
	}
	c := &Component{
		ID:           y.ID,
		Class:        y.Class,
		Binding:      y.Binding,
		CustomCreate: y.CustomCreate,
		LabelFor:     y.LabelFor,
		Constraints:  Constraints{Grid: DefaultGridConstraints()},
	}
	for _, p := range y.Properties {
		v, err := p.value()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: property %q: %v", ErrInvalidForm, path, p.Name, err)
		}
		c.Properties = append(c.Properties, Property{Name: p.Name, Value: v})
	}
	if y.Constraints != nil {
		cons, err := y.Constraints.build()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: constraints: %v", ErrInvalidForm, path, err)
		}
		c.Constraints = cons
	}
	if y.Layout != nil {
		l, err := y.Layout.build()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: layout: %v", ErrInvalidForm, path, err)
		}
		c.Layout = l
	}
	for i := range y.Children {
		child, err := y.Children[i].build(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, child)
	}
	return c, nil
}

// decodeString accepts a literal scalar, an explicit null, a {bundle, key}
// reference or {null: true}. The key null is matched on its text since
// the YAML resolver reads it as a null node.
func decodeString(n *yaml.Node) (String, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return String{Kind: StringNull}, nil
		}
		return String{Kind: StringLiteral, Text: n.Value}, nil
	case yaml.MappingNode:
		s := String{Kind: StringBundle}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			switch k.Value {
			case "bundle":
				s.Bundle = v.Value
			case "key":
				s.Key = v.Value
			case "null", "~":
				var null bool
				if err := v.Decode(&null); err != nil {
					return String{}, err
				}
				if null {
					return String{Kind: StringNull}, nil
				}
			default:
				return String{}, fmt.Errorf("line %d: unknown string field %q", k.Line, k.Value)
			}
		}
		if s.Bundle == "" || s.Key == "" {
			return String{}, fmt.Errorf("line %d: string needs bundle and key", n.Line)
		}
		return s, nil
	default:
		return String{}, fmt.Errorf("line %d: string must be a scalar or a mapping", n.Line)
	}
}

// optionalString decodes n unless the field was absent.
func optionalString(n *yaml.Node) (*String, error) {
	if n.Kind == 0 {
		return nil, nil
	}
	s, err := decodeString(n)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type colorYAML struct {
	RGB      *uint32 `yaml:"rgb"`
	Alpha    bool    `yaml:"alpha"`
	Theme    string  `yaml:"theme"`
	Constant string  `yaml:"constant"`
}

type fontYAML struct {
	Name  *string `yaml:"name"`
	Style *int32  `yaml:"style"`
	Size  *int32  `yaml:"size"`
	Theme string  `yaml:"theme"`
}

type propertyYAML struct {
	Name      string     `yaml:"name"`
	Int       *int32     `yaml:"int"`
	Bool      *bool      `yaml:"bool"`
	Float     *float32   `yaml:"float"`
	Double    *float64   `yaml:"double"`
	Long      *int64     `yaml:"long"`
	Char      *string    `yaml:"char"`
	String    yaml.Node  `yaml:"string"`
	Color     *colorYAML `yaml:"color"`
	Font      *fontYAML  `yaml:"font"`
	Dimension []int32    `yaml:"dimension"`
	Insets    []int32    `yaml:"insets"`
	Rectangle []int32    `yaml:"rectangle"`
	Icon      *string    `yaml:"icon"`
}

func (p *propertyYAML) value() (Value, error) {
	if p.Name == "" {
		return nil, errors.New("missing name")
	}
	var values []Value
	add := func(ok bool, v func() (Value, error)) error {
		if !ok {
			return nil
		}
		val, err := v()
		if err != nil {
			return err
		}
		values = append(values, val)
		return nil
	}
	errs := []error{
		add(p.Int != nil, func() (Value, error) { return Int(*p.Int), nil }),
		add(p.Bool != nil, func() (Value, error) { return Bool(*p.Bool), nil }),
		add(p.Float != nil, func() (Value, error) { return Float(*p.Float), nil }),
		add(p.Double != nil, func() (Value, error) { return Double(*p.Double), nil }),
		add(p.Long != nil, func() (Value, error) { return Long(*p.Long), nil }),
		add(p.Char != nil, func() (Value, error) {
			r := []rune(*p.Char)
			if len(r) != 1 || r[0] > 0xffff {
				return nil, fmt.Errorf("char %q is not a single UTF-16 unit", *p.Char)
			}
			return Char(r[0]), nil
		}),
		add(p.String.Kind != 0, func() (Value, error) { return decodeString(&p.String) }),
		add(p.Color != nil, func() (Value, error) {
			return Color{RGB: p.Color.RGB, Alpha: p.Color.Alpha, Theme: p.Color.Theme, Constant: p.Color.Constant}, nil
		}),
		add(p.Font != nil, func() (Value, error) {
			return Font{Name: p.Font.Name, Style: p.Font.Style, Size: p.Font.Size, Theme: p.Font.Theme}, nil
		}),
		add(p.Dimension != nil, func() (Value, error) {
			d, err := dimension(p.Dimension)
			return d, err
		}),
		add(p.Insets != nil, func() (Value, error) {
			i, err := insets(p.Insets)
			return i, err
		}),
		add(p.Rectangle != nil, func() (Value, error) {
			if len(p.Rectangle) != 4 {
				return nil, fmt.Errorf("rectangle needs 4 numbers, got %d", len(p.Rectangle))
			}
			r := p.Rectangle
			return Rectangle{X: r[0], Y: r[1], Width: r[2], Height: r[3]}, nil
		}),
		add(p.Icon != nil, func() (Value, error) { return Icon{Path: *p.Icon}, nil }),
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(values) != 1 {
		return nil, fmt.Errorf("expected exactly one value, got %d", len(values))
	}
	return values[0], nil
}

func dimension(v []int32) (Dimension, error) {
	if len(v) != 2 {
		return Dimension{}, fmt.Errorf("dimension needs 2 numbers, got %d", len(v))
	}
	return Dimension{Width: v[0], Height: v[1]}, nil
}

func insets(v []int32) (Insets, error) {
	if len(v) != 4 {
		return Insets{}, fmt.Errorf("insets need 4 numbers, got %d", len(v))
	}
	return Insets{Top: v[0], Left: v[1], Bottom: v[2], Right: v[3]}, nil
}

type layoutYAML struct {
	Kind                 string   `yaml:"kind"`
	Rows                 int      `yaml:"rows"`
	Columns              int      `yaml:"columns"`
	Margin               []int32  `yaml:"margin"`
	HGap                 *int     `yaml:"hgap"`
	VGap                 *int     `yaml:"vgap"`
	SameSizeHorizontally bool     `yaml:"sameSizeHorizontally"`
	SameSizeVertically   bool     `yaml:"sameSizeVertically"`
	ColumnSpecs          []string `yaml:"columnSpecs"`
	RowSpecs             []string `yaml:"rowSpecs"`
	Align                *int     `yaml:"align"`
	DefaultCard          string   `yaml:"defaultCard"`
}

func (y *layoutYAML) build() (Layout, error) {
	gap := func(p *int, def int) int {
		if p == nil {
			return def
		}
		return *p
	}
	switch strings.ToLower(y.Kind) {
	case "grid", "gridbag":
		g := Grid{
			Rows:                 y.Rows,
			Columns:              y.Columns,
			HGap:                 gap(y.HGap, GapInherit),
			VGap:                 gap(y.VGap, GapInherit),
			SameSizeHorizontally: y.SameSizeHorizontally,
			SameSizeVertically:   y.SameSizeVertically,
		}
		if y.Margin != nil {
			m, err := insets(y.Margin)
			if err != nil {
				return nil, err
			}
			g.Margin = m
		}
		if g.Rows < 1 || g.Columns < 1 {
			return nil, fmt.Errorf("grid needs at least one row and column, got %dx%d", g.Rows, g.Columns)
		}
		if strings.EqualFold(y.Kind, "grid") {
			return GridLayout{g}, nil
		}
		return GridBagLayout{g}, nil
	case "border":
		return BorderLayout{HGap: gap(y.HGap, 0), VGap: gap(y.VGap, 0)}, nil
	case "form":
		return FormLayout{Columns: y.ColumnSpecs, Rows: y.RowSpecs}, nil
	case "flow":
		return FlowLayout{Align: gap(y.Align, 1), HGap: gap(y.HGap, 5), VGap: gap(y.VGap, 5)}, nil
	case "card":
		return CardLayout{HGap: gap(y.HGap, 0), VGap: gap(y.VGap, 0), DefaultCard: y.DefaultCard}, nil
	case "split":
		return SplitPaneLayout{}, nil
	case "tabbed":
		return TabbedPaneLayout{}, nil
	case "scroll":
		return ScrollPaneLayout{}, nil
	case "toolbar":
		return ToolBarLayout{}, nil
	case "absolute":
		return AbsoluteLayout{}, nil
	default:
		return nil, fmt.Errorf("unknown layout kind %q", y.Kind)
	}
}

type gridYAML struct {
	Row             int      `yaml:"row"`
	Column          int      `yaml:"column"`
	RowSpan         *int     `yaml:"rowSpan"`
	ColSpan         *int     `yaml:"colSpan"`
	Anchor          string   `yaml:"anchor"`
	Fill            string   `yaml:"fill"`
	HSizePolicy     []string `yaml:"hSizePolicy"`
	VSizePolicy     []string `yaml:"vSizePolicy"`
	MinimumSize     []int32  `yaml:"minimumSize"`
	PreferredSize   []int32  `yaml:"preferredSize"`
	MaximumSize     []int32  `yaml:"maximumSize"`
	Indent          int      `yaml:"indent"`
	UseParentLayout bool     `yaml:"useParentLayout"`
}

type tabYAML struct {
	Title   yaml.Node `yaml:"title"`
	ToolTip yaml.Node `yaml:"toolTip"`
	Icon    string    `yaml:"icon"`
}

type cellYAML struct {
	HAlign string  `yaml:"hAlign"`
	VAlign string  `yaml:"vAlign"`
	Insets []int32 `yaml:"insets"`
}

type constraintsYAML struct {
	Grid   *gridYAML `yaml:"grid"`
	Region string    `yaml:"region"`
	Tab    *tabYAML  `yaml:"tab"`
	Card   string    `yaml:"card"`
	Cell   *cellYAML `yaml:"cell"`
}

var anchors = map[string]int{
	"":          AnchorCenter,
	"center":    AnchorCenter,
	"north":     AnchorNorth,
	"south":     AnchorSouth,
	"east":      AnchorEast,
	"west":      AnchorWest,
	"northeast": AnchorNorthEast,
	"southeast": AnchorSouthEast,
	"southwest": AnchorSouthWest,
	"northwest": AnchorNorthWest,
}

var fills = map[string]Fill{
	"":           FillNone,
	"none":       FillNone,
	"horizontal": FillHorizontal,
	"vertical":   FillVertical,
	"both":       FillBoth,
}

var sizePolicyFlags = map[string]int{
	"fixed":     SizePolicyFixed,
	"canShrink": SizePolicyCanShrink,
	"canGrow":   SizePolicyCanGrow,
	"wantGrow":  SizePolicyWantGrow,
}

func (y *constraintsYAML) build() (Constraints, error) {
	c := Constraints{Grid: DefaultGridConstraints(), Region: y.Region, Card: y.Card}
	if g := y.Grid; g != nil {
		gc := &c.Grid
		gc.Row, gc.Column, gc.Indent, gc.UseParentLayout = g.Row, g.Column, g.Indent, g.UseParentLayout
		if g.RowSpan != nil {
			gc.RowSpan = *g.RowSpan
		}
		if g.ColSpan != nil {
			gc.ColSpan = *g.ColSpan
		}
		if gc.Row < 0 || gc.Column < 0 || gc.RowSpan < 1 || gc.ColSpan < 1 {
			return c, fmt.Errorf("bad cell %d,%d span %dx%d", gc.Row, gc.Column, gc.RowSpan, gc.ColSpan)
		}
		var ok bool
		if gc.Anchor, ok = anchors[strings.ToLower(g.Anchor)]; !ok {
			return c, fmt.Errorf("unknown anchor %q", g.Anchor)
		}
		if gc.Fill, ok = fills[strings.ToLower(g.Fill)]; !ok {
			return c, fmt.Errorf("unknown fill %q", g.Fill)
		}
		var err error
		if gc.HSizePolicy, err = sizePolicy(g.HSizePolicy, gc.HSizePolicy); err != nil {
			return c, err
		}
		if gc.VSizePolicy, err = sizePolicy(g.VSizePolicy, gc.VSizePolicy); err != nil {
			return c, err
		}
		for _, s := range []struct {
			in  []int32
			out *Dimension
		}{{g.MinimumSize, &gc.MinimumSize}, {g.PreferredSize, &gc.PreferredSize}, {g.MaximumSize, &gc.MaximumSize}} {
			if s.in == nil {
				continue
			}
			d, err := dimension(s.in)
			if err != nil {
				return c, err
			}
			*s.out = d
		}
	}
	if y.Tab != nil {
		c.Tab = &TabConstraints{}
		var err error
		if c.Tab.Title, err = optionalString(&y.Tab.Title); err != nil {
			return c, fmt.Errorf("tab title: %w", err)
		}
		if c.Tab.ToolTip, err = optionalString(&y.Tab.ToolTip); err != nil {
			return c, fmt.Errorf("tab tool tip: %w", err)
		}
		if y.Tab.Icon != "" {
			c.Tab.Icon = &Icon{Path: y.Tab.Icon}
		}
	}
	if y.Cell != nil {
		c.Cell = &CellConstraints{HAlign: y.Cell.HAlign, VAlign: y.Cell.VAlign}
		if y.Cell.Insets != nil {
			in, err := insets(y.Cell.Insets)
			if err != nil {
				return c, err
			}
			c.Cell.Insets = in
		}
	}
	return c, nil
}

func sizePolicy(flags []string, def int) (int, error) {
	if flags == nil {
		return def, nil
	}
	policy := 0
	for _, f := range flags {
		bit, ok := sizePolicyFlags[f]
		if !ok {
			return 0, fmt.Errorf("unknown size policy %q", f)
		}
		policy |= bit
	}
	return policy, nil
}
