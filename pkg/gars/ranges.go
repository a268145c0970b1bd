package gars

import (
	"github.com/beetlebugorg/gars/internal/bands"
)

// BandRange is a forward cursor over the longitude band numbers West..East,
// inclusive.
//
// A BandRange cannot be rewound; create a new range to enumerate again.
type BandRange struct {
	West int // Western band number
	East int // Eastern band number

	next    int
	started bool
}

// NewBandRange creates a range between two longitude band numbers.
func NewBandRange(west, east int) *BandRange {
	return &BandRange{West: west, East: east}
}

// DefaultBandRange covers all 720 longitude bands.
func DefaultBandRange() *BandRange {
	return NewBandRange(MinBandNumber, MaxBandNumber)
}

// BandRangeBetween creates a range covering the western and eastern longitudes
// in degrees. Longitudes are clamped to the valid bands.
func BandRangeBetween(west, east float64) *BandRange {
	return NewBandRange(longitudeBand(west), longitudeBand(east))
}

// Next returns the next band number, or false when the range is exhausted.
func (r *BandRange) Next() (int, bool) {
	if !r.started {
		r.next = r.West
		r.started = true
	}
	if r.next > r.East {
		return 0, false
	}
	band := r.next
	r.next++
	return band, true
}

// WestLongitude returns the western edge of the western band.
func (r *BandRange) WestLongitude() float64 {
	return bands.Longitude(r.West)
}

// EastLongitude returns the western edge of the eastern band.
func (r *BandRange) EastLongitude() float64 {
	return bands.Longitude(r.East)
}

// Len returns the number of bands in the range.
func (r *BandRange) Len() int {
	return max(0, r.East-r.West+1)
}

// LetterRange is a restartable forward cursor over the latitude band letters
// South..North, inclusive, ordered by band value.
type LetterRange struct {
	South string // Southern band letters
	North string // Northern band letters

	value   int
	started bool
}

// NewLetterRange creates a range between two latitude bands.
func NewLetterRange(south, north string) *LetterRange {
	return &LetterRange{South: south, North: north}
}

// DefaultLetterRange covers all 360 latitude bands.
func DefaultLetterRange() *LetterRange {
	return NewLetterRange(MinBandLetters, MaxBandLetters)
}

// LetterRangeBetween creates a range covering the southern and northern
// latitudes in degrees. Latitudes are clamped to the valid bands.
func LetterRangeBetween(south, north float64) *LetterRange {
	return NewLetterRange(bands.BandLetters(latitudeBandValue(south)), bands.BandLetters(latitudeBandValue(north)))
}

// SouthValue returns the numeric value of the southern band.
func (r *LetterRange) SouthValue() int {
	return bands.BandValue(r.South)
}

// NorthValue returns the numeric value of the northern band.
func (r *LetterRange) NorthValue() int {
	return bands.BandValue(r.North)
}

// SouthLatitude returns the southern edge of the southern band.
func (r *LetterRange) SouthLatitude() float64 {
	return bands.LatitudeOfLetters(r.South)
}

// NorthLatitude returns the southern edge of the northern band.
func (r *LetterRange) NorthLatitude() float64 {
	return bands.LatitudeOfLetters(r.North)
}

// Next returns the next band letters, or false when the range is exhausted.
func (r *LetterRange) Next() (string, bool) {
	if !r.started {
		r.Reset()
	}
	if r.value > r.NorthValue() {
		return "", false
	}
	letters := bands.BandLetters(r.value)
	r.value++
	return letters, true
}

// Reset rewinds the cursor to the southern band.
func (r *LetterRange) Reset() {
	r.value = r.SouthValue()
	r.started = true
}

// Len returns the number of bands in the range.
func (r *LetterRange) Len() int {
	return max(0, r.NorthValue()-r.SouthValue()+1)
}

func longitudeBand(lon float64) int {
	band := int(bands.DecimalLongitudeBand(normalizeLongitude(lon)))
	return min(max(band, MinBandNumber), MaxBandNumber)
}

func latitudeBandValue(lat float64) int {
	value := int(bands.DecimalLatitudeBandValue(lat))
	return min(max(value, MinBandLettersNumber), MaxBandLettersNumber)
}
