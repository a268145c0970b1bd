package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/beetlebugorg/gars/internal/metrics"
	"github.com/beetlebugorg/gars/pkg/gars"
	"github.com/gofiber/fiber/v2"
)

// CoordinateHandler parses a GARS string and describes its cell.
// GET /v1/gars/:coordinate
func CoordinateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Params("coordinate")
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}

		coord, err := gars.Parse(value)
		if err != nil {
			metrics.CoordinatesParsed.WithLabelValues("invalid").Inc()
			return errInvalidGARS(c, err)
		}
		metrics.CoordinatesParsed.WithLabelValues("ok").Inc()

		precision, err := gars.ParsePrecision(value)
		if err != nil {
			return errInvalidGARS(c, err)
		}

		return c.JSON(newCoordinateResponse(coord, precision))
	}
}

// PointHandler encodes a position as a GARS coordinate.
// GET /v1/point?lon=&lat=&precision=five_minute
func PointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lon, err := queryFloat(c, "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lat, err := queryFloat(c, "lat")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		precision := gars.FiveMinute
		if p := c.Query("precision"); p != "" {
			precision, err = gars.ParseGridType(p)
			if err != nil {
				return errBadRequest(c, err.Error())
			}
			if precision.IsDegree() {
				return errBadRequest(c, fmt.Sprintf("precision %s has no GARS string", precision))
			}
		}

		return c.JSON(newCoordinateResponse(gars.From(lon, lat), precision))
	}
}

// LabelsHandler lists the labels of one grid type inside a bounding box.
// GET /v1/labels?bbox=minLon,minLat,maxLon,maxLat&type=one_degree
func LabelsHandler(deps *Dependencies) fiber.Handler {
	labeler := gars.NewLabeler(0, gars.NoMaxZoom)

	return func(c *fiber.Ctx) error {
		bounds, err := parseBBox(c.Query("bbox"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		gridType, err := gars.ParseGridType(c.Query("type", gars.OneDegree.String()))
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		if n := estimateLabels(bounds, gridType); n > deps.maxLabels() {
			return newError(c, fiber.StatusBadRequest, "too_many_labels",
				fmt.Sprintf("bbox holds about %d %s labels, limit is %d", n, gridType, deps.maxLabels()))
		}

		labels := labeler.Labels(bounds, gridType)
		return c.JSON(LabelsResponse{
			GridType: gridType,
			Bounds:   newBBox(bounds),
			Count:    len(labels),
			Labels:   newLabelResponses(labels),
		})
	}
}

func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a number, got %q", key, raw)
	}
	return v, nil
}

// parseBBox parses "minLon,minLat,maxLon,maxLat".
func parseBBox(raw string) (gars.Bounds, error) {
	if raw == "" {
		return gars.Bounds{}, fmt.Errorf("bbox is required")
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return gars.Bounds{}, fmt.Errorf("bbox must be minLon,minLat,maxLon,maxLat, got %q", raw)
	}

	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return gars.Bounds{}, fmt.Errorf("bbox value %q is not a number", part)
		}
		v[i] = f
	}

	bounds := gars.BoundsOf(v[0], v[1], v[2], v[3])
	if err := checkBBox(bounds); err != nil {
		return gars.Bounds{}, err
	}
	return bounds, nil
}

func checkBBox(b gars.Bounds) error {
	if b.MinLon >= b.MaxLon || b.MinLat >= b.MaxLat {
		return fmt.Errorf("bbox %g,%g,%g,%g is empty or inverted", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("bbox latitudes must be within -90..90")
	}
	return nil
}

// estimateLabels bounds the number of cells a labeler visits for bounds.
func estimateLabels(bounds gars.Bounds, gridType gars.GridType) int {
	p := gridType.Precision()
	cols := math.Ceil(bounds.Width()/p) + 1
	rows := math.Ceil(bounds.Height()/p) + 1
	if cols*rows > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(cols * rows)
}
