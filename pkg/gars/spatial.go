package gars

import (
	"github.com/beetlebugorg/gars/internal/bands"
	"github.com/dhconnelly/rtreego"
)

// Point is a WGS84 position in decimal degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Bounds is a geographic bounding box in decimal degrees.
type Bounds struct {
	MinLon float64 // Western edge
	MaxLon float64 // Eastern edge
	MinLat float64 // Southern edge
	MaxLat float64 // Northern edge
}

// BoundsOf creates bounds from the southwest and northeast corners, in the
// west, south, east, north argument order used by bounding box strings.
func BoundsOf(minLon, minLat, maxLon, maxLat float64) Bounds {
	return Bounds{MinLon: minLon, MaxLon: maxLon, MinLat: minLat, MaxLat: maxLat}
}

// WorldBounds returns the full WGS84 extent.
func WorldBounds() Bounds {
	return BoundsOf(bands.MinLon, bands.MinLat, bands.MaxLon, bands.MaxLat)
}

// Contains returns true if the point (lon, lat) is within the bounds.
func (b Bounds) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon &&
		lat >= b.MinLat && lat <= b.MaxLat
}

// Intersects returns true if the given bounds intersects with this bounds.
func (b Bounds) Intersects(other Bounds) bool {
	return !(other.MaxLon < b.MinLon ||
		other.MinLon > b.MaxLon ||
		other.MaxLat < b.MinLat ||
		other.MinLat > b.MaxLat)
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLon: min(b.MinLon, other.MinLon),
		MaxLon: max(b.MaxLon, other.MaxLon),
		MinLat: min(b.MinLat, other.MinLat),
		MaxLat: max(b.MaxLat, other.MaxLat),
	}
}

// Expand returns a new Bounds expanded by the given margin in all directions.
//
// Margin is in decimal degrees.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		MinLon: b.MinLon - margin,
		MaxLon: b.MaxLon + margin,
		MinLat: b.MinLat - margin,
		MaxLat: b.MaxLat + margin,
	}
}

// Width returns the longitude extent in degrees.
func (b Bounds) Width() float64 {
	return b.MaxLon - b.MinLon
}

// Height returns the latitude extent in degrees.
func (b Bounds) Height() float64 {
	return b.MaxLat - b.MinLat
}

// Centroid returns the center of the bounds.
func (b Bounds) Centroid() Point {
	return Point{
		Lon: (b.MinLon + b.MaxLon) / 2.0,
		Lat: (b.MinLat + b.MaxLat) / 2.0,
	}
}

// Southwest returns the southwest corner.
func (b Bounds) Southwest() Point {
	return Point{Lon: b.MinLon, Lat: b.MinLat}
}

// ToPrecision snaps the bounds outward to the precision grid: the southwest
// corner is snapped down and the northeast corner is snapped up.
func (b Bounds) ToPrecision(precision float64) Bounds {
	return Bounds{
		MinLon: bands.PrecisionBefore(b.MinLon, precision),
		MaxLon: bands.PrecisionAfter(b.MaxLon, precision),
		MinLat: bands.PrecisionBefore(b.MinLat, precision),
		MaxLat: bands.PrecisionAfter(b.MaxLat, precision),
	}
}

// rect converts the bounds to an R-tree rectangle. Degenerate edges get a
// small extent because the R-tree rejects zero lengths.
func (b Bounds) rect() rtreego.Rect {
	const epsilon = 1e-9

	lonLength := b.Width()
	latLength := b.Height()
	if lonLength < epsilon {
		lonLength = epsilon
	}
	if latLength < epsilon {
		latLength = epsilon
	}

	rect, _ := rtreego.NewRect(rtreego.Point{b.MinLon, b.MinLat}, []float64{lonLength, latLength})
	return rect
}
