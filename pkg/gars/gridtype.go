package gars

import (
	"fmt"
	"math"
	"strings"

	"github.com/beetlebugorg/gars/internal/bands"
)

// GridType is a GARS grid precision.
//
// The seven types are ordered coarsest to finest. The three finest types
// (ThirtyMinute, FifteenMinute, FiveMinute) are the native GARS cell, quadrant
// and keypad sizes; the degree types are overlay grids used at low zoom.
type GridType int

const (
	// TwentyDegree is a 20° grid.
	TwentyDegree GridType = iota

	// TenDegree is a 10° grid.
	TenDegree

	// FiveDegree is a 5° grid.
	FiveDegree

	// OneDegree is a 1° grid.
	OneDegree

	// ThirtyMinute is the GARS cell: longitude band and latitude band letters.
	ThirtyMinute

	// FifteenMinute is the GARS quadrant.
	FifteenMinute

	// FiveMinute is the GARS keypad.
	FiveMinute
)

var gridTypeNames = [...]string{
	"twenty_degree",
	"ten_degree",
	"five_degree",
	"one_degree",
	"thirty_minute",
	"fifteen_minute",
	"five_minute",
}

var gridTypePrecisions = [...]float64{
	20.0,
	10.0,
	5.0,
	1.0,
	bands.ThirtyMinute,
	bands.FifteenMinute,
	bands.FiveMinute,
}

// Values returns all grid types, coarsest first.
func Values() []GridType {
	return []GridType{
		TwentyDegree,
		TenDegree,
		FiveDegree,
		OneDegree,
		ThirtyMinute,
		FifteenMinute,
		FiveMinute,
	}
}

// Precision returns the grid cell size in degrees.
func (t GridType) Precision() float64 {
	if !t.valid() {
		return math.NaN()
	}
	return gridTypePrecisions[t]
}

// String returns the grid type key, e.g. "thirty_minute".
func (t GridType) String() string {
	if !t.valid() {
		return fmt.Sprintf("GridType(%d)", int(t))
	}
	return gridTypeNames[t]
}

// IsDegree reports whether the grid is one of the degree overlay grids.
func (t GridType) IsDegree() bool {
	return t <= OneDegree
}

func (t GridType) valid() bool {
	return t >= TwentyDegree && t <= FiveMinute
}

// ParseGridType parses a grid type key such as "one_degree" or "FIVE_MINUTE".
func ParseGridType(name string) (GridType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range gridTypeNames {
		if n == key {
			return GridType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown grid type: %q", name)
}

// MarshalText encodes the grid type as its key.
func (t GridType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid grid type: %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a grid type key.
func (t *GridType) UnmarshalText(text []byte) error {
	parsed, err := ParseGridType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// PrecisionOf returns the coarsest grid type whose precision evenly divides
// value (in degrees), falling through to FiveMinute.
//
// Grid lines use this to pick the styling weight of a boundary that also lies
// on a coarser grid.
func PrecisionOf(value float64) GridType {
	for _, t := range Values()[:FiveMinute] {
		if math.Mod(value, t.Precision()) == 0 {
			return t
		}
	}
	return FiveMinute
}

// LessPrecise returns the grid types strictly coarser than t.
func LessPrecise(t GridType) []GridType {
	if !t.valid() {
		return nil
	}
	return Values()[:t]
}

// MorePrecise returns the grid types strictly finer than t.
func MorePrecise(t GridType) []GridType {
	if !t.valid() {
		return nil
	}
	return Values()[t+1:]
}
