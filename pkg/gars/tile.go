package gars

import (
	"fmt"
	"math"
)

// Tile is an XYZ web map tile.
type Tile struct {
	Width  int // Pixel width
	Height int // Pixel height
	X      int
	Y      int
	Zoom   int
}

// NewTile creates a tile.
func NewTile(width, height, x, y, zoom int) Tile {
	return Tile{Width: width, Height: height, X: x, Y: y, Zoom: zoom}
}

// Bounds returns the tile bounds in degrees.
//
// Tiles east of the antimeridian (2^zoom <= x < 2^(zoom+1)) continue past 180°
// rather than wrapping, so the grids drawn on them line up with the tile column.
func (t Tile) Bounds() Bounds {
	n := math.Exp2(float64(t.Zoom))
	return BoundsOf(
		tileLongitude(float64(t.X), n),
		tileLatitude(float64(t.Y+1), n),
		tileLongitude(float64(t.X+1), n),
		tileLatitude(float64(t.Y), n),
	)
}

func tileLongitude(x, n float64) float64 {
	return x/n*360.0 - 180.0
}

func tileLatitude(y, n float64) float64 {
	return math.Atan(math.Sinh(math.Pi*(1-2*y/n))) * 180.0 / math.Pi
}

// MaxZoom is the deepest supported tile zoom level.
const MaxZoom = 30

// Validate checks the tile zoom, column and row. Columns may run one world
// past the antimeridian, up to 2^(zoom+1).
func (t Tile) Validate() error {
	if t.Zoom < 0 || t.Zoom > MaxZoom {
		return fmt.Errorf("tile zoom %d out of range [0, %d]", t.Zoom, MaxZoom)
	}
	n := 1 << t.Zoom
	if t.X < 0 || t.X >= 2*n {
		return fmt.Errorf("tile x %d out of range [0, %d) at zoom %d", t.X, 2*n, t.Zoom)
	}
	if t.Y < 0 || t.Y >= n {
		return fmt.Errorf("tile y %d out of range [0, %d) at zoom %d", t.Y, n, t.Zoom)
	}
	return nil
}

// String returns the tile as zoom/x/y.
func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Zoom, t.X, t.Y)
}
