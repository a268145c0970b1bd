package gars

import (
	"fmt"
	"io"
	"runtime"
	"sync"
)

// GenerateOptions controls parallel tile generation and error handling.
type GenerateOptions struct {
	// Parallel enables concurrent tile generation.
	Parallel bool

	// Workers is the number of generator goroutines.
	// If 0, defaults to runtime.NumCPU(). Only used when Parallel is true.
	Workers int

	// SkipErrors continues past invalid tiles and collects their errors.
	// When false, the first error stops generation and is returned alone.
	SkipErrors bool

	// Progress is called after each tile with (generated, total).
	Progress func(generated, total int)

	// ErrorLog receives one line per tile error.
	ErrorLog io.Writer
}

// DefaultGenerateOptions returns parallel generation over all CPUs that skips
// invalid tiles.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// TileFeatures is the grid lines and labels of one tile.
type TileFeatures struct {
	Tile   Tile
	Lines  []GridLine
	Labels []GridLabel
}

// GenerateTile computes the lines and labels of the grids drawn at the tile
// zoom.
func GenerateTile(grids *Grids, tile Tile) (TileFeatures, error) {
	if err := tile.Validate(); err != nil {
		return TileFeatures{}, err
	}
	zg := grids.ZoomGrids(tile.Zoom)
	return TileFeatures{
		Tile:   tile,
		Lines:  zg.LinesForTile(tile),
		Labels: zg.LabelsForTile(tile),
	}, nil
}

// GenerateTiles computes the features of many tiles with a worker pool.
//
// Results keep the order of tiles; tiles that failed are left out when
// SkipErrors is set. grids is only read and must not be modified while
// generation runs.
//
// Example:
//
//	grids := gars.NewGrids()
//	features, errs := gars.GenerateTiles(grids, tiles, gars.GenerateOptions{
//	    Parallel:   true,
//	    SkipErrors: true,
//	    Progress: func(generated, total int) {
//	        fmt.Printf("\rGenerating: %d/%d", generated, total)
//	    },
//	})
func GenerateTiles(grids *Grids, tiles []Tile, opts GenerateOptions) ([]TileFeatures, []error) {
	if len(tiles) == 0 {
		return []TileFeatures{}, nil
	}

	if !opts.Parallel {
		return generateTilesSerial(grids, tiles, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(tiles) {
		workers = len(tiles)
	}

	type generateResult struct {
		index    int
		features TileFeatures
		err      error
	}

	jobs := make(chan int, len(tiles))
	results := make(chan generateResult, len(tiles))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				features, err := GenerateTile(grids, tiles[index])
				results <- generateResult{index: index, features: features, err: err}
			}
		}()
	}

	for i := range tiles {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	generated := make(map[int]TileFeatures, len(tiles))
	var errs []error
	done := 0

	for result := range results {
		done++
		if opts.Progress != nil {
			opts.Progress(done, len(tiles))
		}

		if result.err != nil {
			err := tileError(tiles[result.index], result.err, opts.ErrorLog)
			if !opts.SkipErrors {
				// Workers drain into the buffered channel and exit.
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}

		generated[result.index] = result.features
	}

	features := make([]TileFeatures, 0, len(generated))
	for i := range tiles {
		if f, ok := generated[i]; ok {
			features = append(features, f)
		}
	}

	return features, errs
}

func generateTilesSerial(grids *Grids, tiles []Tile, opts GenerateOptions) ([]TileFeatures, []error) {
	features := make([]TileFeatures, 0, len(tiles))
	var errs []error

	for i, tile := range tiles {
		f, err := GenerateTile(grids, tile)
		if opts.Progress != nil {
			opts.Progress(i+1, len(tiles))
		}
		if err != nil {
			err = tileError(tile, err, opts.ErrorLog)
			if !opts.SkipErrors {
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}
		features = append(features, f)
	}

	return features, errs
}

func tileError(tile Tile, err error, log io.Writer) error {
	err = fmt.Errorf("tile %s: %w", tile, err)
	if log != nil {
		fmt.Fprintf(log, "Error generating tile: %v\n", err)
	}
	return err
}
