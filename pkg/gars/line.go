package gars

// GridLine is a grid line segment between two points, tagged with the
// coarsest grid precision it lies on. Renderers use the grid type to pick the
// line style.
type GridLine struct {
	Point1   Point
	Point2   Point
	GridType GridType
}

// NewGridLine creates a grid line.
func NewGridLine(point1, point2 Point, gridType GridType) GridLine {
	return GridLine{Point1: point1, Point2: point2, GridType: gridType}
}

// Bounds returns the bounding box of the segment.
func (l GridLine) Bounds() Bounds {
	return BoundsOf(
		min(l.Point1.Lon, l.Point2.Lon),
		min(l.Point1.Lat, l.Point2.Lat),
		max(l.Point1.Lon, l.Point2.Lon),
		max(l.Point1.Lat, l.Point2.Lat),
	)
}

// IsVertical reports whether the line runs along a meridian.
func (l GridLine) IsVertical() bool {
	return l.Point1.Lon == l.Point2.Lon
}
