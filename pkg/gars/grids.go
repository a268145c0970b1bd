package gars

import (
	"fmt"
)

// Grids holds one Grid per grid type.
//
// Grids is not safe for concurrent mutation. Configure it once, then share it
// read-only; ZoomGrids, Precision and the tile methods only read.
//
// Example:
//
//	grids := gars.NewGrids()
//	tile := gars.NewTile(256, 256, 45, 28, 5)
//	zg := grids.ZoomGrids(tile.Zoom)
//	lines := zg.LinesForTile(tile)
//	labels := zg.LabelsForTile(tile)
type Grids struct {
	grids [len(gridTypeNames)]*Grid
}

// NewGrids creates grids from the default properties. When types are given
// only those grids are enabled.
func NewGrids(types ...GridType) *Grids {
	return NewGridsFrom(DefaultProperties(), types...)
}

// NewGridsFrom creates grids from properties. When types are given only those
// grids are enabled.
func NewGridsFrom(props Properties, types ...GridType) *Grids {
	g := &Grids{}
	for _, t := range Values() {
		g.grids[t] = props.Grid(t).newGrid(t)
	}
	if len(types) > 0 {
		g.SetGridTypes(types...)
	}
	return g
}

// Grid returns the grid of a type, or nil for an invalid type.
func (g *Grids) Grid(t GridType) *Grid {
	if !t.valid() {
		return nil
	}
	return g.grids[t]
}

// All returns every grid, coarsest first.
func (g *Grids) All() []*Grid {
	return g.grids[:]
}

// IsEnabled reports whether the grid type is enabled.
func (g *Grids) IsEnabled(t GridType) bool {
	grid := g.Grid(t)
	return grid != nil && grid.Enabled
}

// Enable turns on the grid types.
func (g *Grids) Enable(types ...GridType) {
	for _, t := range types {
		if grid := g.Grid(t); grid != nil {
			grid.Enabled = true
		}
	}
}

// Disable turns off the grid types.
func (g *Grids) Disable(types ...GridType) {
	for _, t := range types {
		if grid := g.Grid(t); grid != nil {
			grid.Enabled = false
		}
	}
}

// SetGridTypes enables exactly the given grid types and disables the rest.
func (g *Grids) SetGridTypes(types ...GridType) {
	enabled := make(map[GridType]bool, len(types))
	for _, t := range types {
		enabled[t] = true
	}
	for _, grid := range g.grids {
		grid.Enabled = enabled[grid.Type]
	}
}

// SetMinZoom sets the grid minimum zoom, raising the maximum zoom if needed.
func (g *Grids) SetMinZoom(t GridType, minZoom int) {
	grid := g.mustGrid(t)
	grid.MinZoom = minZoom
	if grid.MaxZoom != NoMaxZoom && grid.MaxZoom < minZoom {
		grid.MaxZoom = minZoom
	}
}

// SetMaxZoom sets the grid maximum zoom, lowering the minimum zoom if needed.
func (g *Grids) SetMaxZoom(t GridType, maxZoom int) {
	grid := g.mustGrid(t)
	grid.MaxZoom = maxZoom
	if maxZoom != NoMaxZoom && grid.MinZoom > maxZoom {
		grid.MinZoom = maxZoom
	}
}

// SetZoomRange sets the grid zoom window.
func (g *Grids) SetZoomRange(t GridType, minZoom, maxZoom int) error {
	return g.mustGrid(t).SetZoomRange(minZoom, maxZoom)
}

// SetLinesMinZoom overrides the first zoom level with grid lines. Nil removes
// the override.
func (g *Grids) SetLinesMinZoom(t GridType, minZoom *int) {
	g.mustGrid(t).LinesMinZoom = copyInt(minZoom)
}

// SetLinesMaxZoom overrides the last zoom level with grid lines. Nil removes
// the override.
func (g *Grids) SetLinesMaxZoom(t GridType, maxZoom *int) {
	g.mustGrid(t).LinesMaxZoom = copyInt(maxZoom)
}

// Labeler returns the labeler of the grid type, or nil.
func (g *Grids) Labeler(t GridType) *Labeler {
	return g.mustGrid(t).Labeler
}

// SetLabeler replaces the labeler of the grid type.
func (g *Grids) SetLabeler(t GridType, labeler *Labeler) {
	g.mustGrid(t).Labeler = labeler
}

// IsLabelerEnabled reports whether the grid type has an enabled labeler.
func (g *Grids) IsLabelerEnabled(t GridType) bool {
	labeler := g.Labeler(t)
	return labeler != nil && labeler.Enabled
}

// EnableLabelers turns on the labelers of the grid types. Returns an error for
// a grid without a labeler.
func (g *Grids) EnableLabelers(types ...GridType) error {
	for _, t := range types {
		labeler, err := g.requiredLabeler(t)
		if err != nil {
			return err
		}
		labeler.Enabled = true
	}
	return nil
}

// DisableLabelers turns off the labelers of the grid types.
func (g *Grids) DisableLabelers(types ...GridType) {
	for _, t := range types {
		if labeler := g.Labeler(t); labeler != nil {
			labeler.Enabled = false
		}
	}
}

// DisableAllLabelers turns off every labeler.
func (g *Grids) DisableAllLabelers() {
	g.DisableLabelers(Values()...)
}

// SetLabelZoomRange sets the labeler zoom window of the grid type.
func (g *Grids) SetLabelZoomRange(t GridType, minZoom, maxZoom int) error {
	labeler, err := g.requiredLabeler(t)
	if err != nil {
		return err
	}
	if maxZoom != NoMaxZoom && maxZoom < minZoom {
		return fmt.Errorf("min zoom %d can not be larger than max zoom %d", minZoom, maxZoom)
	}
	labeler.MinZoom = minZoom
	labeler.MaxZoom = maxZoom
	return nil
}

// ZoomGrids returns the enabled grids drawn at zoom.
func (g *Grids) ZoomGrids(zoom int) *ZoomGrids {
	zg := NewZoomGrids(zoom)
	for _, grid := range g.grids {
		if grid.Enabled && grid.IsWithin(zoom) {
			zg.Add(grid)
		}
	}
	return zg
}

// Precision returns the finest grid type drawn at zoom, or false when no
// grid is drawn.
func (g *Grids) Precision(zoom int) (GridType, bool) {
	return g.ZoomGrids(zoom).Precision()
}

func (g *Grids) mustGrid(t GridType) *Grid {
	grid := g.Grid(t)
	if grid == nil {
		panic(fmt.Sprintf("gars: invalid grid type %d", int(t)))
	}
	return grid
}

func (g *Grids) requiredLabeler(t GridType) (*Labeler, error) {
	labeler := g.Labeler(t)
	if labeler == nil {
		return nil, fmt.Errorf("grid type %s does not have a labeler", t)
	}
	return labeler, nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
