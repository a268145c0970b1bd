package main

import (
	"fmt"

	"github.com/beetlebugorg/gars/pkg/gars"
)

func main() {
	// Define viewport (Boston Harbor area)
	viewport := gars.BoundsOf(-71.1, 42.3, -70.9, 42.4)

	// Every 30 minute cell touching the viewport
	cells := gars.GridRangeFor(viewport)
	fmt.Printf("Cells: %d\n", cells.Len())
	for c, ok := cells.Next(); ok; c, ok = cells.Next() {
		fmt.Printf("  %s\n", c.Format(gars.ThirtyMinute))
	}

	// Label the 5 minute keypads and index them for hit testing
	labeler := gars.NewLabeler(0, gars.NoMaxZoom)
	labels := labeler.Labels(viewport, gars.FiveMinute)
	idx := gars.NewLabelIndex(labels)

	fmt.Printf("Keypad labels: %d\n", idx.Len())

	if label, ok := idx.Containing(gars.Point{Lon: -71.0275, Lat: 42.3584}); ok {
		fmt.Printf("Logan Airport: %s\n", label.Text)
	}
}
