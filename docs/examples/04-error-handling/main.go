package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/beetlebugorg/gars/pkg/gars"
)

func safeParse(value string) (gars.Coordinate, error) {
	c, err := gars.Parse(value)
	if err != nil {
		var formatErr *gars.FormatError
		var rangeErr *gars.RangeError

		switch {
		case errors.As(err, &formatErr):
			return gars.Coordinate{}, fmt.Errorf("not a GARS string: %q", formatErr.Value)
		case errors.As(err, &rangeErr):
			return gars.Coordinate{}, fmt.Errorf("%s band out of range: %s", rangeErr.Field, rangeErr.Got)
		}
		return gars.Coordinate{}, err
	}

	return c, nil
}

func main() {
	for _, value := range []string{"006AG39", "006 ag 3", "361IO", "000AA", "721QZ", "001RA"} {
		c, err := safeParse(value)
		if err != nil {
			log.Printf("Error: %v", err)
			continue
		}
		fmt.Printf("%-10q -> %s\n", value, c)
	}

	// Invalid tiles are reported by Validate before any work is done
	if err := gars.NewTile(256, 256, 0, 99, 5).Validate(); err != nil {
		log.Printf("Expected error: %v", err)
	}
}
