package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/gars/pkg/gars"
)

// Draw only the degree overlays, with lines hidden below zoom 3
func degreeGrids() *gars.Grids {
	grids := gars.NewGrids(gars.TwentyDegree, gars.TenDegree, gars.FiveDegree, gars.OneDegree)

	linesMin := 3
	grids.SetLinesMinZoom(gars.TwentyDegree, &linesMin)
	return grids
}

func tilesAt(zoom int) []gars.Tile {
	n := 1 << zoom
	tiles := make([]gars.Tile, 0, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			tiles = append(tiles, gars.NewTile(256, 256, x, y, zoom))
		}
	}
	return tiles
}

func main() {
	// Default zoom table from the embedded properties
	grids := gars.NewGrids()

	fmt.Println("=== Generating zoom 6 tiles ===")
	features, errs := gars.GenerateTiles(grids, tilesAt(6), gars.GenerateOptions{
		Parallel:   true,
		SkipErrors: true,
		ErrorLog:   os.Stderr,
		Progress: func(generated, total int) {
			fmt.Printf("\rGenerating: %d/%d", generated, total)
		},
	})
	fmt.Println()
	if len(errs) > 0 {
		log.Fatalf("%d tiles failed", len(errs))
	}

	lines, labels := 0, 0
	for _, f := range features {
		lines += len(f.Lines)
		labels += len(f.Labels)
	}
	fmt.Printf("Tiles: %d  Lines: %d  Labels: %d\n", len(features), lines, labels)

	// Custom grid selection
	fmt.Println("\n=== Degree grids only ===")
	custom := degreeGrids()
	for zoom := 0; zoom <= 8; zoom++ {
		if p, ok := custom.Precision(zoom); ok {
			fmt.Printf("Zoom %d: %s\n", zoom, p)
		}
	}
}
