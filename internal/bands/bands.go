// Package bands implements the GARS band arithmetic: longitude band numbers,
// latitude band letters, and the quadrant/keypad subdivisions of a 30 minute cell.
package bands

import (
	"math"
	"strconv"
	"strings"
)

// World extents in WGS84 degrees.
const (
	MinLon = -180.0
	MaxLon = 180.0
	MinLat = -90.0
	MaxLat = 90.0
)

// Band limits.
const (
	MinBandNumber = 1
	MaxBandNumber = 720

	MinBandLetters = "AA"
	MaxBandLetters = "QZ"

	MinBandLettersNumber = 1
	MaxBandLettersNumber = 360

	// LettersPerBand is the size of the band alphabet (A-Z without I and O).
	LettersPerBand = 24
)

// Southwest sub-cell defaults.
const (
	DefaultQuadrant = 3
	DefaultKeypad   = 7
)

// Cell sizes in degrees.
const (
	ThirtyMinute  = 0.5
	FifteenMinute = 0.25
	FiveMinute    = 0.25 / 3.0
)

const (
	omitI = 'I'
	omitO = 'O'
)

// Longitude returns the western edge of the longitude band.
func Longitude(band int) float64 {
	return MinLon + float64(band-1)*ThirtyMinute
}

// DecimalLongitudeBand returns the untruncated longitude band containing lon.
func DecimalLongitudeBand(lon float64) float64 {
	return (lon-MinLon)/ThirtyMinute + 1.0
}

// Latitude returns the southern edge of the latitude band with the numeric value.
func Latitude(value int) float64 {
	return MinLat + float64(value-1)*ThirtyMinute
}

// LatitudeOfLetters returns the southern edge of the latitude band letters.
func LatitudeOfLetters(letters string) float64 {
	return Latitude(BandValue(letters))
}

// DecimalLatitudeBandValue returns the untruncated latitude band value containing lat.
func DecimalLatitudeBandValue(lat float64) float64 {
	return (lat-MinLat)/ThirtyMinute + 1.0
}

// BandValue returns the numeric equivalent of latitude band letters, where AA
// is 1 and QZ is 360. A single letter returns its letter value (A=1, Z=24).
func BandValue(letters string) int {
	letters = strings.ToUpper(letters)
	if len(letters) == 1 {
		return BandLetterValue(letters[0])
	}
	return LettersPerBand*(BandLetterValue(letters[0])-1) + BandLetterValue(letters[1])
}

// BandLetterValue returns the 1-indexed position of a band letter in the
// alphabet without I and O.
func BandLetterValue(letter byte) int {
	value := int(letter-'A') + 1
	if letter > omitI {
		value--
		if letter > omitO {
			value--
		}
	}
	return value
}

// BandLetters returns the latitude band letters for a numeric value, where 1
// is AA and 360 is QZ.
func BandLetters(value int) string {
	value--
	first := value / LettersPerBand
	second := value % LettersPerBand
	return string([]byte{BandLetter(first + 1), BandLetter(second + 1)})
}

// BandLetter is the inverse of BandLetterValue.
func BandLetter(value int) byte {
	letter := byte('A' + value - 1)
	if letter >= omitI {
		letter++
		if letter >= omitO {
			letter++
		}
	}
	return letter
}

// QuadrantColumn returns the southwest origin column: 0 for quadrants 1 and 3,
// 1 for quadrants 2 and 4.
func QuadrantColumn(quadrant int) int {
	if quadrant%2 == 0 {
		return 1
	}
	return 0
}

// QuadrantRow returns the southwest origin row: 1 for quadrants 1 and 2, 0 for
// quadrants 3 and 4.
func QuadrantRow(quadrant int) int {
	if quadrant >= 3 {
		return 0
	}
	return 1
}

// Quadrant returns the quadrant at a southwest origin column and row.
func Quadrant(column, row int) int {
	return (1-row)*2 + column + 1
}

// KeypadColumn returns the southwest origin column: 0 for keypads 1, 4, 7;
// 1 for 2, 5, 8; 2 for 3, 6, 9.
func KeypadColumn(keypad int) int {
	column := 0
	if keypad%3 == 0 {
		column = 2
	} else if (keypad+1)%3 == 0 {
		column = 1
	}
	return column
}

// KeypadRow returns the southwest origin row: 2 for keypads 1-3, 1 for 4-6,
// 0 for 7-9.
func KeypadRow(keypad int) int {
	row := 0
	if keypad <= 3 {
		row = 2
	} else if keypad <= 6 {
		row = 1
	}
	return row
}

// Keypad returns the keypad at a southwest origin column and row.
func Keypad(column, row int) int {
	return (2-row)*3 + column + 1
}

// PrecisionBefore snaps value down to the nearest multiple of precision.
func PrecisionBefore(value, precision float64) float64 {
	before := 0.0
	if math.Abs(value) >= precision {
		before = value - math.Mod(math.Mod(value, precision)+precision, precision)
	} else if value < 0.0 {
		before = -precision
	}
	return before
}

// PrecisionAfter snaps value up to the next multiple of precision.
func PrecisionAfter(value, precision float64) float64 {
	return PrecisionBefore(value+precision, precision)
}

// NextPrecision returns the grid boundary following value. Below 15 minutes
// the step is re-snapped to the grid so repeated steps do not drift off the
// parent cell boundaries.
func NextPrecision(value, precision float64) float64 {
	if precision < FifteenMinute {
		return PrecisionAfter(value+0.5*precision, precision)
	}
	return value + precision
}

// DegreeLabel formats a compass degree label such as "60E20N".
func DegreeLabel(lon, lat float64) string {
	var b strings.Builder
	b.WriteString(strconv.FormatFloat(math.Abs(lon), 'f', -1, 64))
	if lon < 0 {
		b.WriteByte('W')
	} else {
		b.WriteByte('E')
	}
	b.WriteString(strconv.FormatFloat(math.Abs(lat), 'f', -1, 64))
	if lat < 0 {
		b.WriteByte('S')
	} else {
		b.WriteByte('N')
	}
	return b.String()
}
