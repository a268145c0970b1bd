package main

import (
	"fmt"
	"log"

	"github.com/beetlebugorg/gars/pkg/gars"
)

func main() {
	// Parse a GARS string
	c, err := gars.Parse("006AG39")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("GARS: %s\n", c)
	fmt.Printf("Cell: %s  Quadrant: %s  Keypad: %s\n",
		c.Format(gars.ThirtyMinute),
		c.Format(gars.FifteenMinute),
		c.Format(gars.FiveMinute))

	// Southwest corner of the keypad
	p := c.Point()
	fmt.Printf("Point: %.4f, %.4f\n", p.Lon, p.Lat)

	// Encode a position (Washington, DC)
	dc := gars.From(-77.0365, 38.8977)
	fmt.Printf("Washington, DC: %s\n", dc)

	bounds := dc.Bounds(gars.FiveMinute)
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinLon, bounds.MinLat,
		bounds.MaxLon, bounds.MaxLat)
}
