package gars

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/beetlebugorg/gars/internal/bands"
)

// Band and subdivision limits.
const (
	MinBandNumber        = bands.MinBandNumber
	MaxBandNumber        = bands.MaxBandNumber
	MinBandLetters       = bands.MinBandLetters
	MaxBandLetters       = bands.MaxBandLetters
	MinBandLettersNumber = bands.MinBandLettersNumber
	MaxBandLettersNumber = bands.MaxBandLettersNumber

	// DefaultQuadrant is the southwest quadrant.
	DefaultQuadrant = bands.DefaultQuadrant

	// DefaultKeypad is the southwest keypad.
	DefaultKeypad = bands.DefaultKeypad
)

var garsPattern = regexp.MustCompile(`(?i)^(\d{3})([A-HJ-NP-Z]{2})(?:([1-4])([1-9])?)?$`)

// Coordinate is a GARS coordinate.
//
// A Coordinate always identifies a 5 minute keypad. Coordinates parsed from
// coarser strings carry the southwest quadrant (3) and keypad (7), so Point
// returns the southwest corner of the 30 minute cell.
//
// Coordinates are comparable: two coordinates are equal when all four fields
// are equal.
type Coordinate struct {
	longitude int
	latitude  string
	quadrant  int
	keypad    int
}

// New creates a coordinate, validating every field.
//
// Example:
//
//	c, err := gars.New(6, "AG", 3, 9)
//	fmt.Println(c) // 006AG39
func New(longitude int, latitude string, quadrant, keypad int) (Coordinate, error) {
	if longitude < MinBandNumber || longitude > MaxBandNumber {
		return Coordinate{}, &RangeError{Field: "longitude", Got: strconv.Itoa(longitude)}
	}
	latitude = strings.ToUpper(latitude)
	if !validLetters(latitude) {
		return Coordinate{}, &RangeError{Field: "latitude", Got: latitude}
	}
	if quadrant < 1 || quadrant > 4 {
		return Coordinate{}, &RangeError{Field: "quadrant", Got: strconv.Itoa(quadrant)}
	}
	if keypad < 1 || keypad > 9 {
		return Coordinate{}, &RangeError{Field: "keypad", Got: strconv.Itoa(keypad)}
	}

	return Coordinate{
		longitude: longitude,
		latitude:  latitude,
		quadrant:  quadrant,
		keypad:    keypad,
	}, nil
}

// validLetters reports whether s is an upper case band letter pair within AA..QZ.
func validLetters(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i]
		if c < 'A' || c > 'Z' || c == 'I' || c == 'O' {
			return false
		}
	}
	value := bands.BandValue(s)
	return value >= MinBandLettersNumber && value <= MaxBandLettersNumber
}

// Longitude returns the longitude band number (1-720).
func (c Coordinate) Longitude() int { return c.longitude }

// Latitude returns the latitude band letters (AA-QZ).
func (c Coordinate) Latitude() string { return c.latitude }

// Quadrant returns the 15 minute quadrant (1-4).
func (c Coordinate) Quadrant() int { return c.quadrant }

// Keypad returns the 5 minute keypad (1-9).
func (c Coordinate) Keypad() int { return c.keypad }

// IsZero reports whether c is the zero value rather than a valid coordinate.
func (c Coordinate) IsZero() bool {
	return c == Coordinate{}
}

// Format returns the GARS string at the grid precision. Degree grid types
// format like ThirtyMinute. The zero Coordinate formats as "".
//
// Example:
//
//	c.Format(gars.ThirtyMinute)  // 006AG
//	c.Format(gars.FifteenMinute) // 006AG3
//	c.Format(gars.FiveMinute)    // 006AG39
func (c Coordinate) Format(precision GridType) string {
	if c.IsZero() {
		return ""
	}
	var b strings.Builder
	b.Grow(7)
	if c.longitude < 100 {
		b.WriteByte('0')
		if c.longitude < 10 {
			b.WriteByte('0')
		}
	}
	b.WriteString(strconv.Itoa(c.longitude))
	b.WriteString(c.latitude)

	if precision == FifteenMinute || precision == FiveMinute {
		b.WriteByte(byte('0' + c.quadrant))
		if precision == FiveMinute {
			b.WriteByte(byte('0' + c.keypad))
		}
	}

	return b.String()
}

// String returns the full five minute GARS string.
func (c Coordinate) String() string {
	return c.Format(FiveMinute)
}

// Point returns the southwest corner of the keypad identified by c.
func (c Coordinate) Point() Point {
	lon := bands.Longitude(c.longitude)
	lat := bands.LatitudeOfLetters(c.latitude)

	lon += float64(bands.QuadrantColumn(c.quadrant)) * bands.FifteenMinute
	lat += float64(bands.QuadrantRow(c.quadrant)) * bands.FifteenMinute

	lon += float64(bands.KeypadColumn(c.keypad)) * bands.FiveMinute
	lat += float64(bands.KeypadRow(c.keypad)) * bands.FiveMinute

	return Point{Lon: lon, Lat: lat}
}

// Bounds returns the footprint of the cell containing c at a GARS precision.
// Degree grid types return the 30 minute cell.
func (c Coordinate) Bounds(precision GridType) Bounds {
	lon := bands.Longitude(c.longitude)
	lat := bands.LatitudeOfLetters(c.latitude)
	size := bands.ThirtyMinute

	if precision == FifteenMinute || precision == FiveMinute {
		lon += float64(bands.QuadrantColumn(c.quadrant)) * bands.FifteenMinute
		lat += float64(bands.QuadrantRow(c.quadrant)) * bands.FifteenMinute
		size = bands.FifteenMinute

		if precision == FiveMinute {
			lon += float64(bands.KeypadColumn(c.keypad)) * bands.FiveMinute
			lat += float64(bands.KeypadRow(c.keypad)) * bands.FiveMinute
			size = bands.FiveMinute
		}
	}

	return BoundsOf(lon, lat, lon+size, lat+size)
}

// FromPoint encodes a point as a GARS coordinate.
func FromPoint(p Point) Coordinate {
	return From(p.Lon, p.Lat)
}

// From encodes a longitude and latitude in degrees as a GARS coordinate.
//
// Each axis is decomposed in three truncating stages (30, 15 and 5 minutes) so
// the point always falls inside the southwest-anchored footprint of the
// returned keypad. Longitudes outside [-180, 180] are wrapped and latitudes
// outside [-90, 90] are clamped; the 180° meridian and the north pole belong
// to the last band.
func From(lon, lat float64) Coordinate {
	lon = normalizeLongitude(lon)
	lat = math.Max(bands.MinLat, math.Min(bands.MaxLat, lat))

	lonBand, quadrantColumn, keypadColumn := decompose(bands.DecimalLongitudeBand(lon), MaxBandNumber)
	latBand, quadrantRow, keypadRow := decompose(bands.DecimalLatitudeBandValue(lat), MaxBandLettersNumber)

	return Coordinate{
		longitude: lonBand,
		latitude:  bands.BandLetters(latBand),
		quadrant:  bands.Quadrant(quadrantColumn, quadrantRow),
		keypad:    bands.Keypad(keypadColumn, keypadRow),
	}
}

// decompose splits a decimal band into the band, the quadrant column or row
// (0-1) and the keypad column or row (0-2). Remainders are taken from the
// truncated integer at each stage.
func decompose(decimal float64, maxBand int) (band, quadrant, keypad int) {
	band = int(decimal)
	if band > maxBand {
		return maxBand, 1, 2
	}
	if band < 1 {
		band = 1
		decimal = 1
	}

	quadrantValue := (decimal - float64(band)) * 2.0
	quadrant = int(quadrantValue)

	keypad = int((quadrantValue - float64(quadrant)) * 3.0)

	return band, quadrant, keypad
}

func normalizeLongitude(lon float64) float64 {
	if lon < bands.MinLon || lon > bands.MaxLon {
		lon = math.Mod(lon-bands.MinLon, 360.0)
		if lon < 0 {
			lon += 360.0
		}
		lon += bands.MinLon
	}
	return lon
}

// Parse parses a GARS string. Whitespace is ignored and letters are case
// insensitive. Missing quadrant and keypad digits default to the southwest
// subdivision.
//
// Returns *FormatError when the string does not match the GARS grammar and
// *RangeError when the longitude band is outside 001-720 or the latitude band
// is outside AA-QZ.
//
// Example:
//
//	c, err := gars.Parse("006AG39")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := c.Point() // {-177.3333 -87}
func Parse(value string) (Coordinate, error) {
	value = removeSpaces(value)
	matches := garsPattern.FindStringSubmatch(value)
	if matches == nil {
		return Coordinate{}, &FormatError{Value: value}
	}

	longitude, _ := strconv.Atoi(matches[1])
	if longitude < MinBandNumber || longitude > MaxBandNumber {
		return Coordinate{}, &RangeError{Value: value, Field: "longitude", Got: matches[1]}
	}

	latitude := strings.ToUpper(matches[2])
	latitudeValue := bands.BandValue(latitude)
	if latitudeValue < MinBandLettersNumber || latitudeValue > MaxBandLettersNumber {
		return Coordinate{}, &RangeError{Value: value, Field: "latitude", Got: matches[2]}
	}

	quadrant := DefaultQuadrant
	keypad := DefaultKeypad
	if matches[3] != "" {
		quadrant = int(matches[3][0] - '0')
		if matches[4] != "" {
			keypad = int(matches[4][0] - '0')
		}
	}

	return Coordinate{
		longitude: longitude,
		latitude:  latitude,
		quadrant:  quadrant,
		keypad:    keypad,
	}, nil
}

// IsGARS reports whether value is a valid GARS string.
func IsGARS(value string) bool {
	_, err := Parse(value)
	return err == nil
}

// ParsePrecision returns the precision of a GARS string from the subdivisions
// present: FiveMinute with a keypad, FifteenMinute with a quadrant only,
// ThirtyMinute otherwise. Band ranges are not checked.
func ParsePrecision(value string) (GridType, error) {
	value = removeSpaces(value)
	matches := garsPattern.FindStringSubmatch(value)
	if matches == nil {
		return 0, &FormatError{Value: value}
	}

	switch {
	case matches[4] != "":
		return FiveMinute, nil
	case matches[3] != "":
		return FifteenMinute, nil
	default:
		return ThirtyMinute, nil
	}
}

func removeSpaces(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

// MarshalText encodes the coordinate as its five minute GARS string.
func (c Coordinate) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a GARS string.
func (c *Coordinate) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*c = Coordinate{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
