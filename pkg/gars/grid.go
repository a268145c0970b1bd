package gars

import (
	"fmt"

	"github.com/beetlebugorg/gars/internal/bands"
)

// Grid draws the lines and labels of one grid type within a zoom window.
type Grid struct {
	// Type is the grid precision.
	Type GridType

	// Enabled turns the grid on or off.
	Enabled bool

	// MinZoom and MaxZoom bound the zoom levels the grid is drawn at.
	// MaxZoom may be NoMaxZoom.
	MinZoom int
	MaxZoom int

	// LinesMinZoom and LinesMaxZoom optionally narrow the zoom levels that
	// get lines. Nil means no override.
	LinesMinZoom *int
	LinesMaxZoom *int

	// Labeler generates cell labels. Optional.
	Labeler *Labeler
}

// NewGrid creates an enabled grid with an open zoom window.
func NewGrid(gridType GridType) *Grid {
	return &Grid{
		Type:    gridType,
		Enabled: true,
		MaxZoom: NoMaxZoom,
	}
}

// Precision returns the grid precision in degrees.
func (g *Grid) Precision() float64 {
	return g.Type.Precision()
}

// IsWithin reports whether zoom is within the grid's zoom window.
func (g *Grid) IsWithin(zoom int) bool {
	return zoomWithin(zoom, g.MinZoom, g.MaxZoom)
}

// IsLinesWithin reports whether lines are drawn at zoom.
func (g *Grid) IsLinesWithin(zoom int) bool {
	return (g.LinesMinZoom == nil || zoom >= *g.LinesMinZoom) &&
		(g.LinesMaxZoom == nil || zoom <= *g.LinesMaxZoom)
}

// IsLabelerWithin reports whether labels are generated at zoom.
func (g *Grid) IsLabelerWithin(zoom int) bool {
	return g.Labeler.IsWithin(zoom)
}

// SetZoomRange sets the zoom window. Returns an error if minZoom is greater
// than a bounded maxZoom.
func (g *Grid) SetZoomRange(minZoom, maxZoom int) error {
	if maxZoom != NoMaxZoom && maxZoom < minZoom {
		return fmt.Errorf("min zoom %d can not be larger than max zoom %d", minZoom, maxZoom)
	}
	g.MinZoom = minZoom
	g.MaxZoom = maxZoom
	return nil
}

// Lines returns the grid lines for the tile bounds, or nil when lines are not
// drawn at zoom.
//
// Each cell contributes its western (vertical) and southern (horizontal)
// edges. A line is tagged with the coarsest grid it lies on, so a 1° grid line
// that is also a 10° boundary is tagged TenDegree.
func (g *Grid) Lines(zoom int, tileBounds Bounds) []GridLine {
	if !g.IsLinesWithin(zoom) {
		return nil
	}

	precision := g.Precision()
	tileBounds = tileBounds.ToPrecision(precision)

	var lines []GridLine
	for lon := tileBounds.MinLon; lon <= tileBounds.MaxLon; lon = bands.NextPrecision(lon, precision) {
		verticalPrecision := PrecisionOf(lon)

		for lat := tileBounds.MinLat; lat <= tileBounds.MaxLat; lat = bands.NextPrecision(lat, precision) {
			horizontalPrecision := PrecisionOf(lat)

			southwest := Point{Lon: lon, Lat: lat}
			northwest := Point{Lon: lon, Lat: lat + precision}
			southeast := Point{Lon: lon + precision, Lat: lat}

			lines = append(lines,
				NewGridLine(southwest, northwest, verticalPrecision),
				NewGridLine(southwest, southeast, horizontalPrecision),
			)
		}
	}

	return lines
}

// LinesForTile returns the grid lines for the tile.
func (g *Grid) LinesForTile(tile Tile) []GridLine {
	return g.Lines(tile.Zoom, tile.Bounds())
}

// Labels returns the cell labels for the tile bounds, or nil when the grid
// has no labeler active at zoom.
func (g *Grid) Labels(zoom int, tileBounds Bounds) []GridLabel {
	if !g.IsLabelerWithin(zoom) {
		return nil
	}
	return g.Labeler.Labels(tileBounds, g.Type)
}

// LabelsForTile returns the cell labels for the tile.
func (g *Grid) LabelsForTile(tile Tile) []GridLabel {
	return g.Labels(tile.Zoom, tile.Bounds())
}
