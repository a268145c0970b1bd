// Package gars implements the Global Area Reference System, the NGA grid that
// divides the world into 30 minute cells, 15 minute quadrants and 5 minute
// keypads.
//
// A GARS string is a three digit longitude band (001-720, west to east from
// 180°W), two latitude band letters (AA-QZ, south to north from 90°S, without
// I and O), an optional quadrant digit (1-4) and an optional keypad digit
// (1-9). "006AG39" is keypad 9 of quadrant 3 of cell 006AG.
//
// # Basic Usage
//
//	c, err := gars.Parse("006AG39")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := c.Point()                      // southwest corner: {-177.3333 -87}
//	b := c.Bounds(gars.FiveMinute)      // keypad footprint
//	fmt.Println(c.Format(gars.ThirtyMinute)) // 006AG
//
//	c = gars.From(-77.0365, 38.8977)
//	fmt.Println(c) // 206LT26
//
// Parse returns *FormatError for strings that do not match the grammar and
// *RangeError for well-formed strings with a band outside its range:
//
//	var rangeErr *gars.RangeError
//	if errors.As(err, &rangeErr) {
//	    fmt.Println(rangeErr.Field)
//	}
//
// # Grid Ranges
//
// GridRange enumerates the 30 minute cells covering a region, latitude bands
// innermost:
//
//	r := gars.GridRangeFor(gars.BoundsOf(-87.0, 24.0, -80.0, 31.0))
//	for c, ok := r.Next(); ok; c, ok = r.Next() {
//	    fmt.Println(c.Format(gars.ThirtyMinute))
//	}
//
// # Map Tiles
//
// Grids holds one Grid per GridType with the zoom levels it is drawn at. The
// zoom table is embedded and can be overridden with LoadProperties.
//
//	grids := gars.NewGrids()
//	tile := gars.NewTile(256, 256, 45, 28, 5)
//	zg := grids.ZoomGrids(tile.Zoom)
//
//	for _, line := range zg.LinesForTile(tile) {
//	    // line.GridType is the coarsest grid the segment lies on
//	}
//	for _, label := range zg.LabelsForTile(tile) {
//	    // label.Text, label.Center
//	}
//
// Use GenerateTiles to compute many tiles with a worker pool and LabelIndex to
// find the label under a point.
//
// # Thread Safety
//
// Coordinate, GridType, Point, Bounds and Tile are values and can be shared
// freely. Ranges are cursors and belong to one goroutine. Grids may be read
// from many goroutines once it is no longer modified.
package gars
