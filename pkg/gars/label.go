package gars

// GridLabel is the label of one grid cell.
//
// Text is a degree label ("60E20N") for degree grids and the GARS string at the
// grid precision for 30, 15 and 5 minute grids. Coordinate is the GARS
// coordinate of the cell center.
type GridLabel struct {
	Text       string
	Center     Point
	Bounds     Bounds
	GridType   GridType
	Coordinate Coordinate
}
