package gridbag

import "github.com/grindlemire/go-formc/internal/form"

// java.awt.GridBagConstraints fill values.
const (
	FillNone       = 0
	FillBoth       = 1
	FillHorizontal = 2
	FillVertical   = 3
)

// java.awt.GridBagConstraints anchor values.
const (
	AnchorCenter    = 10
	AnchorNorth     = 11
	AnchorNorthEast = 12
	AnchorEast      = 13
	AnchorSouthEast = 14
	AnchorSouth     = 15
	AnchorSouthWest = 16
	AnchorWest      = 17
	AnchorNorthWest = 18
)

// IndentWidth is the left inset added per indent level.
const IndentWidth = 10

// Config describes the container.
type Config struct {
	Rows, Columns int
	// HGap and VGap are the resolved gaps; they are never GapInherit here.
	HGap, VGap           int
	Margin               form.Insets
	SameSizeHorizontally bool
	SameSizeVertically   bool
}

// Cell is one child: its constraints and the runtime sizes of its class.
type Cell struct {
	Constraints   form.GridConstraints
	MinimumSize   form.Dimension
	PreferredSize form.Dimension
}

// Placement is one GridBagConstraints value. Filler placements have
// Source -1 and belong to no child.
type Placement struct {
	Source                int
	Filler                bool
	GridX, GridY          int
	GridWidth, GridHeight int
	WeightX, WeightY      float64
	Anchor, Fill          int
	Insets                form.Insets
	MinimumSize           *form.Dimension
	PreferredSize         *form.Dimension
	MaximumSize           *form.Dimension
}

// Convert computes the placements of cells in order. A filler placement
// directly follows the placement of the child it belongs to.
func Convert(cfg Config, cells []Cell) []Placement {
	out := make([]Placement, 0, len(cells))
	for i, cell := range cells {
		gc := cell.Constraints
		p := Placement{
			Source:     i,
			GridX:      gc.Column,
			GridY:      gc.Row,
			GridWidth:  gc.ColSpan,
			GridHeight: gc.RowSpan,
			WeightX:    weight(cells, i, true),
			WeightY:    weight(cells, i, false),
			Anchor:     anchor(gc.Anchor),
			Fill:       fill(gc.Fill),
		}
		p.Insets.Left = int32(IndentWidth * gc.Indent)
		cfg.addGaps(&p)

		if gc.PreferredSize.Width > 0 && gc.PreferredSize.Height > 0 {
			d := gc.PreferredSize
			p.PreferredSize = &d
		}
		if gc.MaximumSize.Width > 0 && gc.MaximumSize.Height > 0 {
			d := gc.MaximumSize
			p.MaximumSize = &d
		}
		out = append(out, p)

		if diff, ok := fillerSize(cell); ok {
			out = append(out, Placement{
				Source:        -1,
				Filler:        true,
				GridX:         p.GridX,
				GridY:         p.GridY,
				GridWidth:     p.GridWidth,
				GridHeight:    p.GridHeight,
				Anchor:        AnchorCenter,
				Fill:          FillNone,
				Insets:        p.Insets,
				MinimumSize:   &diff,
				PreferredSize: &form.Dimension{Width: diff.Width, Height: diff.Height},
			})
		}
	}
	cfg.equalize(out, cells)
	return out
}

// weight is 1 when the cell wants to grow along the axis. Otherwise it is 0
// if another cell sharing one of its rows (horizontal) or columns (vertical)
// wants to grow, and 1 when none does.
func weight(cells []Cell, i int, horizontal bool) float64 {
	if wantsGrow(cells[i].Constraints, horizontal) {
		return 1
	}
	self := cells[i].Constraints
	for j, other := range cells {
		if j == i || !wantsGrow(other.Constraints, horizontal) {
			continue
		}
		if horizontal && overlap(self.Row, self.RowSpan, other.Constraints.Row, other.Constraints.RowSpan) {
			return 0
		}
		if !horizontal && overlap(self.Column, self.ColSpan, other.Constraints.Column, other.Constraints.ColSpan) {
			return 0
		}
	}
	return 1
}

func wantsGrow(gc form.GridConstraints, horizontal bool) bool {
	if horizontal {
		return gc.HSizePolicy&form.SizePolicyWantGrow != 0
	}
	return gc.VSizePolicy&form.SizePolicyWantGrow != 0
}

func overlap(a, aSpan, b, bSpan int) bool {
	return a < b+bSpan && b < a+aSpan
}

func fill(f form.Fill) int {
	switch f {
	case form.FillHorizontal:
		return FillHorizontal
	case form.FillVertical:
		return FillVertical
	case form.FillBoth:
		return FillBoth
	default:
		return FillNone
	}
}

func anchor(bits int) int {
	north := bits&form.AnchorNorth != 0 && bits&form.AnchorSouth == 0
	south := bits&form.AnchorSouth != 0 && bits&form.AnchorNorth == 0
	east := bits&form.AnchorEast != 0 && bits&form.AnchorWest == 0
	west := bits&form.AnchorWest != 0 && bits&form.AnchorEast == 0
	switch {
	case north && east:
		return AnchorNorthEast
	case north && west:
		return AnchorNorthWest
	case south && east:
		return AnchorSouthEast
	case south && west:
		return AnchorSouthWest
	case north:
		return AnchorNorth
	case south:
		return AnchorSouth
	case east:
		return AnchorEast
	case west:
		return AnchorWest
	default:
		return AnchorCenter
	}
}

// fillerSize returns how much the effective minimum size of cell exceeds
// the runtime minimum the layout would otherwise use.
func fillerSize(cell Cell) (form.Dimension, bool) {
	gc := cell.Constraints
	eff := cell.MinimumSize
	if gc.MinimumSize.Width >= 0 {
		eff.Width = gc.MinimumSize.Width
	}
	if gc.MinimumSize.Height >= 0 {
		eff.Height = gc.MinimumSize.Height
	}
	if gc.HSizePolicy&form.SizePolicyCanShrink == 0 {
		eff.Width = cell.PreferredSize.Width
		if gc.PreferredSize.Width > 0 {
			eff.Width = gc.PreferredSize.Width
		}
	}
	if gc.VSizePolicy&form.SizePolicyCanShrink == 0 {
		eff.Height = cell.PreferredSize.Height
		if gc.PreferredSize.Height > 0 {
			eff.Height = gc.PreferredSize.Height
		}
	}
	diff := form.Dimension{
		Width:  max(0, eff.Width-cell.MinimumSize.Width),
		Height: max(0, eff.Height-cell.MinimumSize.Height),
	}
	return diff, diff.Width > 0 || diff.Height > 0
}

// addGaps splits the gaps between neighbouring cells and adds the container
// margin on the outer edges.
func (cfg Config) addGaps(p *Placement) {
	if p.GridX > 0 {
		p.Insets.Left += int32(cfg.HGap / 2)
	}
	if p.GridX+p.GridWidth < cfg.Columns {
		p.Insets.Right += int32(cfg.HGap - cfg.HGap/2)
	}
	if p.GridY > 0 {
		p.Insets.Top += int32(cfg.VGap / 2)
	}
	if p.GridY+p.GridHeight < cfg.Rows {
		p.Insets.Bottom += int32(cfg.VGap - cfg.VGap/2)
	}

	if p.GridX == 0 {
		p.Insets.Left += cfg.Margin.Left
	}
	if p.GridX+p.GridWidth >= cfg.Columns {
		p.Insets.Right += cfg.Margin.Right
	}
	if p.GridY == 0 {
		p.Insets.Top += cfg.Margin.Top
	}
	if p.GridY+p.GridHeight >= cfg.Rows {
		p.Insets.Bottom += cfg.Margin.Bottom
	}
}

// equalize gives every child the largest preferred width and/or height.
func (cfg Config) equalize(out []Placement, cells []Cell) {
	if !cfg.SameSizeHorizontally && !cfg.SameSizeVertically {
		return
	}
	pref := func(c Cell) form.Dimension {
		d := c.PreferredSize
		if c.Constraints.PreferredSize.Width > 0 {
			d.Width = c.Constraints.PreferredSize.Width
		}
		if c.Constraints.PreferredSize.Height > 0 {
			d.Height = c.Constraints.PreferredSize.Height
		}
		return d
	}
	var widest, tallest int32
	for _, c := range cells {
		d := pref(c)
		widest = max(widest, d.Width)
		tallest = max(tallest, d.Height)
	}
	for i := range out {
		p := &out[i]
		if p.Filler {
			continue
		}
		d := pref(cells[p.Source])
		if cfg.SameSizeHorizontally {
			d.Width = widest
		}
		if cfg.SameSizeVertically {
			d.Height = tallest
		}
		p.PreferredSize = &d
	}
}
