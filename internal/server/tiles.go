package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/beetlebugorg/gars/internal/cache"
	"github.com/beetlebugorg/gars/internal/metrics"
	"github.com/beetlebugorg/gars/internal/telemetry"
	"github.com/beetlebugorg/gars/pkg/gars"
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TileHandler returns the grid lines and labels of a map tile.
// GET /v1/tiles/:z/:x/:y
func TileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tile, err := tileParams(c, deps.tileSize())
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		log := LoggerFromCtx(ctx)
		key := cache.TileKey(tile.Zoom, tile.X, tile.Y)

		if deps.Cache != nil {
			b, err := deps.Cache.Get(ctx, key)
			switch {
			case err == nil:
				metrics.CacheHits.WithLabelValues("tile").Inc()
				c.Set("X-Cache", "HIT")
				c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
				return c.Send(b)
			case errors.Is(err, cache.ErrMiss):
				metrics.CacheMisses.WithLabelValues("tile").Inc()
			default:
				log.Warn("tile cache get failed", "tile", tile.String(), "error", err)
			}
		}

		b, err := renderTile(ctx, deps.Grids, tile)
		if err != nil {
			log.Error("render tile", "tile", tile.String(), "error", err)
			return errInternal(c, "failed to render tile")
		}

		if deps.Cache != nil {
			if err := deps.Cache.Set(ctx, key, b, deps.CacheTTL); err != nil {
				log.Warn("tile cache set failed", "tile", tile.String(), "error", err)
			}
			c.Set("X-Cache", "MISS")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(b)
	}
}

// TileHitHandler returns the label of the finest grid drawn on a tile that
// contains a position.
// GET /v1/tiles/:z/:x/:y/hit?lon=&lat=
func TileHitHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tile, err := tileParams(c, deps.tileSize())
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lon, err := queryFloat(c, "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lat, err := queryFloat(c, "lat")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		features, err := gars.GenerateTile(deps.Grids, tile)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		idx := gars.NewLabelIndex(features.Labels)
		label, ok := idx.Containing(gars.Point{Lon: lon, Lat: lat})
		if !ok {
			return errNotFound(c, fmt.Sprintf("no label at %g,%g on tile %s", lon, lat, tile))
		}
		return c.JSON(newLabelResponse(label))
	}
}

func tileParams(c *fiber.Ctx, size int) (gars.Tile, error) {
	var v [3]int
	for i, name := range []string{"z", "x", "y"} {
		n, err := strconv.Atoi(c.Params(name))
		if err != nil {
			return gars.Tile{}, fmt.Errorf("tile %s must be an integer, got %q", name, c.Params(name))
		}
		v[i] = n
	}

	tile := gars.NewTile(size, size, v[1], v[2], v[0])
	if err := tile.Validate(); err != nil {
		return gars.Tile{}, err
	}
	return tile, nil
}

// renderTile generates and encodes the features of one tile.
func renderTile(ctx context.Context, grids *gars.Grids, tile gars.Tile) ([]byte, error) {
	_, span := telemetry.Tracer().Start(ctx, "gars.renderTile")
	span.SetAttributes(attribute.String("tile", tile.String()))
	defer span.End()

	start := time.Now()
	features, err := gars.GenerateTile(grids, tile)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate tile")
		return nil, err
	}
	metrics.TileDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("lines", len(features.Lines)),
		attribute.Int("labels", len(features.Labels)),
	)

	return encodeTile(grids, features)
}

func encodeTile(grids *gars.Grids, features gars.TileFeatures) ([]byte, error) {
	var precision *gars.GridType
	label := "none"
	if p, ok := grids.Precision(features.Tile.Zoom); ok {
		precision = &p
		label = p.String()
	}
	metrics.TilesGenerated.WithLabelValues(label).Inc()

	return json.Marshal(newTileResponse(features, precision))
}

// WarmTileCache renders every tile from zoom 0 through maxZoom and stores it
// in the cache. It returns the number of tiles stored.
func WarmTileCache(ctx context.Context, deps *Dependencies, maxZoom int) (int, error) {
	if deps.Cache == nil {
		return 0, errors.New("warm tile cache: no cache configured")
	}

	var tiles []gars.Tile
	for z := 0; z <= maxZoom; z++ {
		n := 1 << z
		for x := 0; x < n; x++ {
			for y := 0; y < n; y++ {
				tiles = append(tiles, gars.NewTile(deps.tileSize(), deps.tileSize(), x, y, z))
			}
		}
	}

	ctx, span := telemetry.Tracer().Start(ctx, "gars.WarmTileCache")
	span.SetAttributes(attribute.Int("max_zoom", maxZoom), attribute.Int("tiles", len(tiles)))
	defer span.End()

	log := LoggerFromCtx(ctx)
	opts := gars.DefaultGenerateOptions()
	opts.Progress = func(generated, total int) {
		if generated%1000 == 0 || generated == total {
			log.Debug("warming tile cache", "generated", generated, "total", total)
		}
	}

	features, errs := gars.GenerateTiles(deps.Grids, tiles, opts)
	for _, err := range errs {
		log.Warn("warm tile", "error", err)
	}

	stored := 0
	for _, f := range features {
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		b, err := encodeTile(deps.Grids, f)
		if err != nil {
			return stored, fmt.Errorf("encode tile %s: %w", f.Tile, err)
		}
		key := cache.TileKey(f.Tile.Zoom, f.Tile.X, f.Tile.Y)
		if err := deps.Cache.Set(ctx, key, b, deps.CacheTTL); err != nil {
			return stored, fmt.Errorf("store tile %s: %w", f.Tile, err)
		}
		stored++
	}
	return stored, nil
}
