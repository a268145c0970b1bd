package gars

import (
	"github.com/beetlebugorg/gars/internal/bands"
)

// GridRange enumerates every 30 minute GARS cell in a band range and a letter
// range. Latitude bands are iterated innermost: all letters of one longitude
// band are returned before the next band.
//
// Example - count the cells covering Florida:
//
//	r := gars.GridRangeFor(gars.BoundsOf(-87.0, 24.0, -80.0, 31.0))
//	n := 0
//	for _, ok := r.Next(); ok; _, ok = r.Next() {
//	    n++
//	}
type GridRange struct {
	bandRange   *BandRange
	letterRange *LetterRange

	band    int
	hasBand bool
	started bool
}

// NewGridRange creates a grid range over the longitude and latitude ranges.
// The grid range owns the ranges and advances their cursors.
func NewGridRange(bandRange *BandRange, letterRange *LetterRange) *GridRange {
	return &GridRange{
		bandRange:   bandRange,
		letterRange: letterRange,
	}
}

// DefaultGridRange covers the whole globe: 720 * 360 cells.
func DefaultGridRange() *GridRange {
	return NewGridRange(DefaultBandRange(), DefaultLetterRange())
}

// GridRangeFor creates a grid range covering the bounds.
func GridRangeFor(bounds Bounds) *GridRange {
	return NewGridRange(
		BandRangeBetween(bounds.MinLon, bounds.MaxLon),
		LetterRangeBetween(bounds.MinLat, bounds.MaxLat),
	)
}

// BandRange returns the longitude band range.
func (g *GridRange) BandRange() *BandRange {
	return g.bandRange
}

// LetterRange returns the latitude band range.
func (g *GridRange) LetterRange() *LetterRange {
	return g.letterRange
}

// Len returns the number of cells in the range.
func (g *GridRange) Len() int {
	return g.bandRange.Len() * g.letterRange.Len()
}

// Bounds returns the geographic bounds enclosing every cell in the range,
// from the western edge of the western band to the eastern edge of the
// eastern band, and likewise for latitude.
func (g *GridRange) Bounds() Bounds {
	return BoundsOf(
		g.bandRange.WestLongitude(),
		g.letterRange.SouthLatitude(),
		g.bandRange.EastLongitude()+bands.ThirtyMinute,
		g.letterRange.NorthLatitude()+bands.ThirtyMinute,
	)
}

// Next returns the next cell with the default quadrant and keypad, or false
// once every longitude band has been enumerated.
func (g *GridRange) Next() (Coordinate, bool) {
	if !g.started {
		g.band, g.hasBand = g.bandRange.Next()
		g.letterRange.Reset()
		g.started = true
	}

	for g.hasBand {
		letters, ok := g.letterRange.Next()
		if ok {
			return Coordinate{
				longitude: g.band,
				latitude:  letters,
				quadrant:  DefaultQuadrant,
				keypad:    DefaultKeypad,
			}, true
		}

		g.band, g.hasBand = g.bandRange.Next()
		g.letterRange.Reset()
	}

	return Coordinate{}, false
}

// All drains the range into a slice.
func (g *GridRange) All() []Coordinate {
	coords := make([]Coordinate, 0, g.Len())
	for c, ok := g.Next(); ok; c, ok = g.Next() {
		coords = append(coords, c)
	}
	return coords
}
