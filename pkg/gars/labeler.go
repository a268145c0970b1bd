package gars

import (
	"github.com/beetlebugorg/gars/internal/bands"
)

// NoMaxZoom marks an open-ended zoom window.
const NoMaxZoom = -1

// Labeler generates cell labels for tile bounds.
type Labeler struct {
	// Enabled turns label generation on or off.
	Enabled bool

	// MinZoom is the first zoom level that gets labels.
	MinZoom int

	// MaxZoom is the last zoom level that gets labels, or NoMaxZoom.
	MaxZoom int
}

// NewLabeler creates an enabled labeler for the zoom window.
func NewLabeler(minZoom, maxZoom int) *Labeler {
	return &Labeler{Enabled: true, MinZoom: minZoom, MaxZoom: maxZoom}
}

// IsWithin reports whether the labeler is enabled and zoom is within its window.
func (l *Labeler) IsWithin(zoom int) bool {
	return l != nil && l.Enabled && zoomWithin(zoom, l.MinZoom, l.MaxZoom)
}

// Labels returns a label for every grid cell covering the tile bounds.
//
// The bounds are snapped outward to the grid precision and the cells are
// visited west to east, south to north within each column. Each label carries
// the cell bounds, its center, and the GARS coordinate of the center.
//
// Example:
//
//	india := gars.BoundsOf(69, 7, 98, 38)
//	labels := labeler.Labels(india, gars.TwentyDegree) // 9 labels, "60E0N" ...
func (l *Labeler) Labels(tileBounds Bounds, gridType GridType) []GridLabel {
	precision := gridType.Precision()
	format := labelFormatFor(gridType)

	tileBounds = tileBounds.ToPrecision(precision)

	var labels []GridLabel
	for lon := tileBounds.MinLon; lon <= tileBounds.MaxLon; lon = bands.NextPrecision(lon, precision) {
		for lat := tileBounds.MinLat; lat <= tileBounds.MaxLat; lat = bands.NextPrecision(lat, precision) {
			bounds := BoundsOf(lon, lat, lon+precision, lat+precision)
			center := bounds.Centroid()
			coordinate := FromPoint(center)

			labels = append(labels, GridLabel{
				Text:       format(lon, lat, coordinate),
				Center:     center,
				Bounds:     bounds,
				GridType:   gridType,
				Coordinate: coordinate,
			})
		}
	}

	return labels
}

// labelFormat builds the text of the cell with the southwest corner lon, lat
// and center coordinate c.
type labelFormat func(lon, lat float64, c Coordinate) string

func labelFormatFor(gridType GridType) labelFormat {
	if gridType.IsDegree() {
		return degreeLabel
	}
	return func(_, _ float64, c Coordinate) string {
		return c.Format(gridType)
	}
}

func degreeLabel(lon, lat float64, _ Coordinate) string {
	return bands.DegreeLabel(lon, lat)
}

func zoomWithin(zoom, minZoom, maxZoom int) bool {
	return zoom >= minZoom && (maxZoom == NoMaxZoom || zoom <= maxZoom)
}
