package gars

import "sort"

// ZoomGrids holds the grids drawn at one zoom level, ordered from the
// coarsest to the finest precision.
type ZoomGrids struct {
	Zoom  int
	grids []*Grid
}

// NewZoomGrids creates an empty set for the zoom level.
func NewZoomGrids(zoom int) *ZoomGrids {
	return &ZoomGrids{Zoom: zoom}
}

// Add inserts a grid, keeping the set ordered by precision. A grid whose type
// is already present replaces the existing one.
func (z *ZoomGrids) Add(grid *Grid) {
	i := sort.Search(len(z.grids), func(i int) bool {
		return z.grids[i].Type >= grid.Type
	})
	if i < len(z.grids) && z.grids[i].Type == grid.Type {
		z.grids[i] = grid
		return
	}
	z.grids = append(z.grids, nil)
	copy(z.grids[i+1:], z.grids[i:])
	z.grids[i] = grid
}

// Grids returns the grids, coarsest first.
func (z *ZoomGrids) Grids() []*Grid {
	return z.grids
}

// Len returns the number of grids.
func (z *ZoomGrids) Len() int {
	return len(z.grids)
}

// HasGrids reports whether any grid is drawn at the zoom level.
func (z *ZoomGrids) HasGrids() bool {
	return len(z.grids) > 0
}

// Precision returns the finest grid type, or false when the set is empty.
func (z *ZoomGrids) Precision() (GridType, bool) {
	if len(z.grids) == 0 {
		return 0, false
	}
	return z.grids[len(z.grids)-1].Type, true
}

// LinesForTile returns the lines of every grid for the tile.
func (z *ZoomGrids) LinesForTile(tile Tile) []GridLine {
	bounds := tile.Bounds()
	var lines []GridLine
	for _, grid := range z.grids {
		lines = append(lines, grid.Lines(z.Zoom, bounds)...)
	}
	return lines
}

// LabelsForTile returns the labels of every grid for the tile.
func (z *ZoomGrids) LabelsForTile(tile Tile) []GridLabel {
	bounds := tile.Bounds()
	var labels []GridLabel
	for _, grid := range z.grids {
		labels = append(labels, grid.Labels(z.Zoom, bounds)...)
	}
	return labels
}
