package form

// Anchor bits. Combinations give the corners; zero is centered.
const (
	AnchorCenter    = 0
	AnchorNorth     = 1
	AnchorSouth     = 2
	AnchorEast      = 4
	AnchorWest      = 8
	AnchorNorthEast = AnchorNorth | AnchorEast
	AnchorSouthEast = AnchorSouth | AnchorEast
	AnchorSouthWest = AnchorSouth | AnchorWest
	AnchorNorthWest = AnchorNorth | AnchorWest
)

// Fill says along which axes a component stretches to its cell.
type Fill int

const (
	FillNone Fill = iota
	FillHorizontal
	FillVertical
	FillBoth
)

// Size policy bits.
const (
	SizePolicyFixed     = 0
	SizePolicyCanShrink = 1
	SizePolicyCanGrow   = 2
	SizePolicyWantGrow  = 4
)

// Unset marks a size override dimension that is not specified.
const Unset = -1

// GridConstraints places a component in a grid kind container.
type GridConstraints struct {
	Row, Column      int
	RowSpan, ColSpan int
	Anchor           int
	Fill             Fill
	HSizePolicy      int
	VSizePolicy      int
	MinimumSize      Dimension
	PreferredSize    Dimension
	MaximumSize      Dimension
	Indent           int
	UseParentLayout  bool
}

// DefaultGridConstraints returns a 1x1 cell at the origin with no size
// overrides and a shrinkable, growable size policy on both axes.
func DefaultGridConstraints() GridConstraints {
	unset := Dimension{Width: Unset, Height: Unset}
	return GridConstraints{
		RowSpan:       1,
		ColSpan:       1,
		HSizePolicy:   SizePolicyCanShrink | SizePolicyCanGrow,
		VSizePolicy:   SizePolicyCanShrink | SizePolicyCanGrow,
		MinimumSize:   unset,
		PreferredSize: unset,
		MaximumSize:   unset,
	}
}

// Set reports whether both dimensions of an override are specified.
func (d Dimension) Set() bool {
	return d.Width >= 0 && d.Height >= 0
}

// Constraints is the per-parent payload of a component. Which part is read
// depends on the parent's layout.
type Constraints struct {
	Grid GridConstraints
	// Region is a border region (North, South, East, West, Center) or a split
	// pane side (left, right, top, bottom).
	Region string
	Tab    *TabConstraints
	Card   string
	Cell   *CellConstraints
}

// TabConstraints describes a tab of a tabbed pane.
type TabConstraints struct {
	Title   *String
	ToolTip *String
	Icon    *Icon
}

// CellConstraints overrides the alignment a form layout derives from the
// grid constraints.
type CellConstraints struct {
	HAlign string
	VAlign string
	Insets Insets
}
