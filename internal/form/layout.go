package form

// Layout is the layout kind of a container. The set of implementations is
// closed; formgen dispatches on the concrete type.
type Layout interface {
	isLayout()
	Kind() string
}

// GapInherit marks a grid gap that is taken from the nearest ancestor grid.
const GapInherit = -1

// Grid holds the parameters shared by the row/column grid kinds.
type Grid struct {
	Rows, Columns        int
	Margin               Insets
	HGap, VGap           int
	SameSizeHorizontally bool
	SameSizeVertically   bool
}

// GridLayout is the row/column grid manager.
type GridLayout struct{ Grid }

// GridBagLayout is a row/column grid compiled to java.awt.GridBagLayout.
type GridBagLayout struct{ Grid }

// BorderLayout places children in named regions.
type BorderLayout struct {
	HGap, VGap int
}

// FormLayout is a cell grid described by textual column and row specs.
type FormLayout struct {
	Columns []string
	Rows    []string
}

// FlowLayout lines children up in rows.
type FlowLayout struct {
	Align      int
	HGap, VGap int
}

// CardLayout shows one child at a time.
type CardLayout struct {
	HGap, VGap int
	// DefaultCard is shown after the children are added when set.
	DefaultCard string
}

type SplitPaneLayout struct{}

type TabbedPaneLayout struct{}

type ScrollPaneLayout struct{}

type ToolBarLayout struct{}

// AbsoluteLayout positions children by coordinates. It cannot be compiled
// and is only accepted on containers without children.
type AbsoluteLayout struct{}

func (GridLayout) isLayout()       {}
func (GridBagLayout) isLayout()    {}
func (BorderLayout) isLayout()     {}
func (FormLayout) isLayout()       {}
func (FlowLayout) isLayout()       {}
func (CardLayout) isLayout()       {}
func (SplitPaneLayout) isLayout()  {}
func (TabbedPaneLayout) isLayout() {}
func (ScrollPaneLayout) isLayout() {}
func (ToolBarLayout) isLayout()    {}
func (AbsoluteLayout) isLayout()   {}

func (GridLayout) Kind() string       { return "grid" }
func (GridBagLayout) Kind() string    { return "gridbag" }
func (BorderLayout) Kind() string     { return "border" }
func (FormLayout) Kind() string       { return "form" }
func (FlowLayout) Kind() string       { return "flow" }
func (CardLayout) Kind() string       { return "card" }
func (SplitPaneLayout) Kind() string  { return "split" }
func (TabbedPaneLayout) Kind() string { return "tabbed" }
func (ScrollPaneLayout) Kind() string { return "scroll" }
func (ToolBarLayout) Kind() string    { return "toolbar" }
func (AbsoluteLayout) Kind() string   { return "absolute" }

// GridOf returns the grid parameters of the grid kinds.
func GridOf(l Layout) (Grid, bool) {
	switch l := l.(type) {
	case GridLayout:
		return l.Grid, true
	case GridBagLayout:
		return l.Grid, true
	default:
		return Grid{}, false
	}
}
