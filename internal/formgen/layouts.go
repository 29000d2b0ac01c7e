package formgen

import (
	"golang.org/x/exp/slices"

	"github.com/grindlemire/go-formc/internal/asm"
	"github.com/grindlemire/go-formc/internal/form"
	"github.com/grindlemire/go-formc/internal/formspec"
	"github.com/grindlemire/go-formc/internal/gridbag"
	"github.com/grindlemire/go-formc/internal/typeinfo"
)

// Runtime classes of the layout managers and their constraints.
const (
	gridLayoutManager = "com.intellij.uiDesigner.core.GridLayoutManager"
	gridConstraints   = "com.intellij.uiDesigner.core.GridConstraints"
	formLayout        = "com.jgoodies.forms.layout.FormLayout"
	cellConstraints   = "com.jgoodies.forms.layout.CellConstraints"
	cellAlignment     = "Lcom/jgoodies/forms/layout/CellConstraints$Alignment;"

	addWithConstraints = "(Ljava/awt/Component;Ljava/lang/Object;)V"
	addComponent       = "(Ljava/awt/Component;)Ljava/awt/Component;"
	setComponent       = "(Ljava/awt/Component;)V"
)

// Gaps used when neither a grid nor any of its grid ancestors sets one.
const (
	DefaultHGap = 10
	DefaultVGap = 5
)

// layoutEmitter wires one container. install runs once before the
// children are emitted and attach once per child, right after the child.
type layoutEmitter interface {
	install(slot int) error
	attach(child *form.Component, slot, index int) error
}

// layoutFinisher is implemented by emitters with work left after the last
// child is attached.
type layoutFinisher interface {
	finish() error
}

// container is the state shared by all layout emitters.
type container struct {
	g    *generator
	c    *form.Component
	slot int
}

func (k *container) b() *asm.Buffer { return k.g.b }

func (k *container) install(slot int) error {
	k.slot = slot
	return nil
}

// setLayout emits `container.setLayout(<manager>)` where args pushes the
// manager.
func (k *container) setLayout(args func()) {
	b := k.b()
	b.Load(k.slot)
	args()
	b.InvokeVirtual(k.c.Class, "setLayout", "(Ljava/awt/LayoutManager;)V")
}

// add emits `container.add(child, <constraints>)`.
func (k *container) add(slot int, constraints func()) {
	b := k.b()
	b.Load(k.slot)
	b.Load(slot)
	constraints()
	b.InvokeVirtual(k.c.Class, "add", addWithConstraints)
}

// call emits `container.<name>(child)` for a void single-component method.
func (k *container) call(name string, slot int) {
	b := k.b()
	b.Load(k.slot)
	b.Load(slot)
	b.InvokeVirtual(k.c.Class, name, setComponent)
}

func layoutEmitterFor(g *generator, c *form.Component, ancestors []*form.Component) (layoutEmitter, error) {
	k := container{g: g, c: c}
	var e layoutEmitter
	switch l := c.Layout.(type) {
	case form.GridLayout:
		e = &gridEmitter{container: k, grid: l.Grid, ancestors: ancestors}
	case form.GridBagLayout:
		e = &gridBagEmitter{container: k, grid: l.Grid, ancestors: ancestors}
	case form.BorderLayout:
		e = &borderEmitter{container: k, layout: l}
	case form.FormLayout:
		e = &formEmitter{container: k, layout: l}
	case form.FlowLayout:
		e = &flowEmitter{container: k, layout: l}
	case form.CardLayout:
		e = &cardEmitter{container: k, layout: l}
	case form.SplitPaneLayout:
		e = &splitEmitter{container: k}
	case form.TabbedPaneLayout:
		e = &tabbedEmitter{container: k}
	case form.ScrollPaneLayout:
		e = &scrollEmitter{container: k}
	case form.ToolBarLayout:
		e = &toolBarEmitter{container: k}
	case form.AbsoluteLayout:
		e = &absoluteEmitter{container: k}
	default:
		return nil, newError(KindUnsupportedLayout, c.Name(), "unknown layout %T", c.Layout)
	}
	if err := g.checkContainerClass(c); err != nil {
		return nil, err
	}
	return e, nil
}

// containerClasses names the class a container must extend for the layout
// kinds that use container-specific methods.
var containerClasses = map[string]string{
	"split":   "javax.swing.JSplitPane",
	"tabbed":  "javax.swing.JTabbedPane",
	"scroll":  "javax.swing.JScrollPane",
	"toolbar": "javax.swing.JToolBar",
}

func (g *generator) checkContainerClass(c *form.Component) error {
	want, ok := containerClasses[c.Layout.Kind()]
	if !ok {
		return nil
	}
	assignable, err := typeinfo.IsAssignable(g.cls.resolver, want, c.Class)
	if err != nil {
		// Hierarchy unknown; the verifier has the last word.
		return nil
	}
	if !assignable {
		return newError(KindUnsupportedLayout, c.Name(), "%s layout needs a %s, got %s", c.Layout.Kind(), want, c.Class)
	}
	return nil
}

// resolveGaps takes unset gaps from the nearest grid ancestor that sets
// them, falling back to the defaults.
func resolveGaps(grid form.Grid, ancestors []*form.Component) (h, v int) {
	h, v = grid.HGap, grid.VGap
	for i := len(ancestors) - 1; i >= 0 && (h < 0 || v < 0); i-- {
		parent, ok := form.GridOf(ancestors[i].Layout)
		if !ok {
			continue
		}
		if h < 0 && parent.HGap >= 0 {
			h = parent.HGap
		}
		if v < 0 && parent.VGap >= 0 {
			v = parent.VGap
		}
	}
	if h < 0 {
		h = DefaultHGap
	}
	if v < 0 {
		v = DefaultVGap
	}
	return h, v
}

// checkCell validates grid constraints against a rows x columns grid.
func checkCell(child *form.Component, rows, columns int) error {
	gc := child.Constraints.Grid
	switch {
	case gc.RowSpan < 1 || gc.ColSpan < 1:
		return newError(KindInvalidConstraint, child.Name(), "span %dx%d", gc.RowSpan, gc.ColSpan)
	case gc.Row < 0 || gc.Column < 0 || gc.Row+gc.RowSpan > rows || gc.Column+gc.ColSpan > columns:
		return newError(KindInvalidConstraint, child.Name(), "cell (%d,%d) span %dx%d is outside the %dx%d grid",
			gc.Row, gc.Column, gc.RowSpan, gc.ColSpan, rows, columns)
	}
	return nil
}

type gridEmitter struct {
	container
	grid      form.Grid
	ancestors []*form.Component
}

func (e *gridEmitter) install(slot int) error {
	e.slot = slot
	h, v := resolveGaps(e.grid, e.ancestors)
	b := e.b()
	e.setLayout(func() {
		b.Construct(gridLayoutManager, "(IILjava/awt/Insets;IIZZ)V", func() {
			b.PushInt(int32(e.grid.Rows))
			b.PushInt(int32(e.grid.Columns))
			emitInsets(b, e.grid.Margin)
			b.PushInt(int32(h))
			b.PushInt(int32(v))
			b.PushBool(e.grid.SameSizeHorizontally)
			b.PushBool(e.grid.SameSizeVertically)
		})
	})
	return nil
}

func (e *gridEmitter) attach(child *form.Component, slot, _ int) error {
	if err := checkCell(child, e.grid.Rows, e.grid.Columns); err != nil {
		return err
	}
	gc := child.Constraints.Grid
	b := e.b()
	e.add(slot, func() {
		b.Construct(gridConstraints, "(IIIIIIIILjava/awt/Dimension;Ljava/awt/Dimension;Ljava/awt/Dimension;IZ)V", func() {
			b.PushInt(int32(gc.Row))
			b.PushInt(int32(gc.Column))
			b.PushInt(int32(gc.RowSpan))
			b.PushInt(int32(gc.ColSpan))
			b.PushInt(int32(gc.Anchor))
			b.PushInt(int32(gc.Fill))
			b.PushInt(int32(gc.HSizePolicy))
			b.PushInt(int32(gc.VSizePolicy))
			pushSizeOverride(b, gc.MinimumSize)
			pushSizeOverride(b, gc.PreferredSize)
			pushSizeOverride(b, gc.MaximumSize)
			b.PushInt(int32(gc.Indent))
			b.PushBool(gc.UseParentLayout)
		})
	})
	return nil
}

func pushSizeOverride(b *asm.Buffer, d form.Dimension) {
	if d.Width == form.Unset && d.Height == form.Unset {
		b.PushNull()
		return
	}
	emitDimension(b, d)
}

type gridBagEmitter struct {
	container
	grid      form.Grid
	ancestors []*form.Component
	// placements per child index; fillers follow the child's own placement.
	placements [][]gridbag.Placement
}

func (e *gridBagEmitter) install(slot int) error {
	e.slot = slot
	cells := make([]gridbag.Cell, len(e.c.Children))
	for i, child := range e.c.Children {
		if err := checkCell(child, e.grid.Rows, e.grid.Columns); err != nil {
			return err
		}
		minimum, preferred := typeinfo.Sizes(e.g.cls.resolver, child.Class)
		cells[i] = gridbag.Cell{Constraints: child.Constraints.Grid, MinimumSize: minimum, PreferredSize: preferred}
	}
	h, v := resolveGaps(e.grid, e.ancestors)
	cfg := gridbag.Config{
		Rows:                 e.grid.Rows,
		Columns:              e.grid.Columns,
		HGap:                 h,
		VGap:                 v,
		Margin:               e.grid.Margin,
		SameSizeHorizontally: e.grid.SameSizeHorizontally,
		SameSizeVertically:   e.grid.SameSizeVertically,
	}
	e.placements = make([][]gridbag.Placement, len(cells))
	owner := -1
	for _, p := range gridbag.Convert(cfg, cells) {
		if !p.Filler {
			owner = p.Source
		}
		e.placements[owner] = append(e.placements[owner], p)
	}

	b := e.b()
	e.setLayout(func() { b.Construct("java.awt.GridBagLayout", "()V", nil) })
	return nil
}

func (e *gridBagEmitter) attach(child *form.Component, slot, index int) error {
	b := e.b()
	for _, p := range e.placements[index] {
		if p.Filler {
			b.Load(e.slot)
			b.Construct("javax.swing.JPanel", "()V", nil)
			setSize(b, "javax.swing.JPanel", "setMinimumSize", p.MinimumSize)
			setSize(b, "javax.swing.JPanel", "setPreferredSize", p.PreferredSize)
			pushGridBagConstraints(b, p)
			b.InvokeVirtual(e.c.Class, "add", addWithConstraints)
			continue
		}
		if p.PreferredSize != nil || p.MaximumSize != nil {
			b.Load(slot)
			setSize(b, child.Class, "setPreferredSize", p.PreferredSize)
			setSize(b, child.Class, "setMaximumSize", p.MaximumSize)
			b.Pop()
		}
		e.add(slot, func() { pushGridBagConstraints(b, p) })
	}
	return nil
}

// setSize emits `component.<setter>(new Dimension(w, h))` for the component
// on top of the stack, leaving it there. Nothing is emitted for nil.
func setSize(b *asm.Buffer, class, setter string, d *form.Dimension) {
	if d == nil {
		return
	}
	b.Dup()
	emitDimension(b, *d)
	b.InvokeVirtual(class, setter, "(Ljava/awt/Dimension;)V")
}

func pushGridBagConstraints(b *asm.Buffer, p gridbag.Placement) {
	b.Construct("java.awt.GridBagConstraints", "(IIIIDDIILjava/awt/Insets;II)V", func() {
		b.PushInt(int32(p.GridX))
		b.PushInt(int32(p.GridY))
		b.PushInt(int32(p.GridWidth))
		b.PushInt(int32(p.GridHeight))
		b.PushDouble(p.WeightX)
		b.PushDouble(p.WeightY)
		b.PushInt(int32(p.Anchor))
		b.PushInt(int32(p.Fill))
		emitInsets(b, p.Insets)
		b.PushInt(0)
		b.PushInt(0)
	})
}

var borderRegions = []string{"North", "South", "East", "West", "Center"}

type borderEmitter struct {
	container
	layout form.BorderLayout
}

func (e *borderEmitter) install(slot int) error {
	e.slot = slot
	b := e.b()
	e.setLayout(func() {
		b.Construct("java.awt.BorderLayout", "(II)V", func() {
			b.PushInt(int32(e.layout.HGap))
			b.PushInt(int32(e.layout.VGap))
		})
	})
	return nil
}

func (e *borderEmitter) attach(child *form.Component, slot, _ int) error {
	region := child.Constraints.Region
	if region == "" {
		region = "Center"
	}
	if !slices.Contains(borderRegions, region) {
		return newError(KindInvalidConstraint, child.Name(), "unknown border region %q", region)
	}
	e.add(slot, func() { e.b().PushString(region) })
	return nil
}

type formEmitter struct {
	container
	layout form.FormLayout
}

func (e *formEmitter) install(slot int) error {
	e.slot = slot
	columns, err := formspec.Encode(e.layout.Columns, formspec.Column)
	if err != nil {
		return wrapError(KindInvalidFormSpec, e.c.Name(), err)
	}
	rows, err := formspec.Encode(e.layout.Rows, formspec.Row)
	if err != nil {
		return wrapError(KindInvalidFormSpec, e.c.Name(), err)
	}
	b := e.b()
	e.setLayout(func() {
		b.Construct(formLayout, "(Ljava/lang/String;Ljava/lang/String;)V", func() {
			b.PushString(columns)
			b.PushString(rows)
		})
	})
	return nil
}

func (e *formEmitter) attach(child *form.Component, slot, _ int) error {
	if err := checkCell(child, len(e.layout.Rows), len(e.layout.Columns)); err != nil {
		return err
	}
	gc := child.Constraints.Grid
	var insets form.Insets
	h, v := cellAlignments(gc)
	if cc := child.Constraints.Cell; cc != nil {
		if cc.HAlign != "" {
			h = cc.HAlign
		}
		if cc.VAlign != "" {
			v = cc.VAlign
		}
		insets = cc.Insets
	}
	hField, ok := alignmentFields[h]
	if !ok || h == "top" || h == "bottom" {
		return newError(KindInvalidConstraint, child.Name(), "bad horizontal alignment %q", h)
	}
	vField, ok := alignmentFields[v]
	if !ok || v == "left" || v == "right" {
		return newError(KindInvalidConstraint, child.Name(), "bad vertical alignment %q", v)
	}

	b := e.b()
	e.add(slot, func() {
		b.Construct(cellConstraints, "(IIII"+cellAlignment+cellAlignment+"Ljava/awt/Insets;)V", func() {
			b.PushInt(int32(gc.Column + 1))
			b.PushInt(int32(gc.Row + 1))
			b.PushInt(int32(gc.ColSpan))
			b.PushInt(int32(gc.RowSpan))
			b.GetStatic(cellConstraints, hField, cellAlignment)
			b.GetStatic(cellConstraints, vField, cellAlignment)
			emitInsets(b, insets)
		})
	})
	return nil
}

var alignmentFields = map[string]string{
	"default": "DEFAULT",
	"fill":    "FILL",
	"left":    "LEFT",
	"right":   "RIGHT",
	"center":  "CENTER",
	"top":     "TOP",
	"bottom":  "BOTTOM",
}

// cellAlignments derives cell alignments from grid constraints. Filling
// wins over the anchor; a centered, non-filling cell keeps the column or
// row default.
func cellAlignments(gc form.GridConstraints) (h, v string) {
	h, v = "default", "default"
	switch {
	case gc.Fill == form.FillHorizontal || gc.Fill == form.FillBoth:
		h = "fill"
	case gc.Anchor&form.AnchorWest != 0:
		h = "left"
	case gc.Anchor&form.AnchorEast != 0:
		h = "right"
	}
	switch {
	case gc.Fill == form.FillVertical || gc.Fill == form.FillBoth:
		v = "fill"
	case gc.Anchor&form.AnchorNorth != 0:
		v = "top"
	case gc.Anchor&form.AnchorSouth != 0:
		v = "bottom"
	}
	return h, v
}

type flowEmitter struct {
	container
	layout form.FlowLayout
}

func (e *flowEmitter) install(slot int) error {
	e.slot = slot
	b := e.b()
	e.setLayout(func() {
		b.Construct("java.awt.FlowLayout", "(III)V", func() {
			b.PushInt(int32(e.layout.Align))
			b.PushInt(int32(e.layout.HGap))
			b.PushInt(int32(e.layout.VGap))
		})
	})
	return nil
}

func (e *flowEmitter) attach(_ *form.Component, slot, _ int) error {
	addAndPop(e.b(), e.c.Class, e.slot, slot)
	return nil
}

// addAndPop emits `container.add(child)` discarding the returned component.
func addAndPop(b *asm.Buffer, class string, parent, child int) {
	b.Load(parent)
	b.Load(child)
	b.InvokeVirtual(class, "add", addComponent)
	b.Pop()
}

type cardEmitter struct {
	container
	layout form.CardLayout
	names  []string
}

func (e *cardEmitter) install(slot int) error {
	e.slot = slot
	b := e.b()
	e.setLayout(func() {
		b.Construct("java.awt.CardLayout", "(II)V", func() {
			b.PushInt(int32(e.layout.HGap))
			b.PushInt(int32(e.layout.VGap))
		})
	})
	return nil
}

func (e *cardEmitter) attach(child *form.Component, slot, _ int) error {
	name := child.Constraints.Card
	if name == "" {
		name = child.Name()
	}
	e.names = append(e.names, name)
	e.add(slot, func() { e.b().PushString(name) })
	return nil
}

// finish shows the default card.
func (e *cardEmitter) finish() error {
	card := e.layout.DefaultCard
	if card == "" {
		return nil
	}
	if !slices.Contains(e.names, card) {
		return newError(KindInvalidConstraint, e.c.Name(), "default card %q is not a child", card)
	}
	b := e.b()
	b.Load(e.slot)
	b.InvokeVirtual(e.c.Class, "getLayout", "()Ljava/awt/LayoutManager;")
	b.CheckCast("java.awt.CardLayout")
	b.Load(e.slot)
	b.PushString(card)
	b.InvokeVirtual("java.awt.CardLayout", "show", "(Ljava/awt/Container;Ljava/lang/String;)V")
	return nil
}

type splitEmitter struct{ container }

func (e *splitEmitter) attach(child *form.Component, slot, _ int) error {
	switch child.Constraints.Region {
	case "left", "top":
		e.call("setLeftComponent", slot)
	case "right", "bottom":
		e.call("setRightComponent", slot)
	default:
		return newError(KindInvalidConstraint, child.Name(), "split pane side %q is not left, right, top or bottom", child.Constraints.Region)
	}
	return nil
}

type tabbedEmitter struct{ container }

func (e *tabbedEmitter) attach(child *form.Component, slot, _ int) error {
	tab := child.Constraints.Tab
	if tab == nil || tab.Title == nil || tab.Title.Kind == form.StringNull {
		return newError(KindMissingTabTitle, child.Name(), "tab has no title")
	}
	b := e.b()
	b.Load(e.slot)
	if err := (stringEmitter{*tab.Title}).push(b); err != nil {
		return withSubject(err, child.Name())
	}
	if tab.Icon == nil && tab.ToolTip == nil {
		b.Load(slot)
		b.InvokeVirtual(e.c.Class, "addTab", "(Ljava/lang/String;Ljava/awt/Component;)V")
		return nil
	}

	if tab.Icon != nil {
		if tab.Icon.Path == "" {
			return newError(KindInvalidConstraint, child.Name(), "tab icon has no resource path")
		}
		emitIcon(b, *tab.Icon)
	} else {
		b.PushNull()
	}
	b.Load(slot)
	if tab.ToolTip != nil {
		if err := (stringEmitter{*tab.ToolTip}).push(b); err != nil {
			return withSubject(err, child.Name())
		}
	} else {
		b.PushNull()
	}
	b.InvokeVirtual(e.c.Class, "addTab", "(Ljava/lang/String;Ljavax/swing/Icon;Ljava/awt/Component;Ljava/lang/String;)V")
	return nil
}

type scrollEmitter struct{ container }

func (e *scrollEmitter) attach(_ *form.Component, slot, _ int) error {
	e.call("setViewportView", slot)
	return nil
}

type toolBarEmitter struct{ container }

func (e *toolBarEmitter) attach(_ *form.Component, slot, _ int) error {
	addAndPop(e.b(), e.c.Class, e.slot, slot)
	return nil
}

// absoluteEmitter only ever sees empty containers.
type absoluteEmitter struct{ container }

func (e *absoluteEmitter) attach(child *form.Component, _, _ int) error {
	return newError(KindUnsupportedLayout, child.Name(), "absolute layout cannot place children")
}
