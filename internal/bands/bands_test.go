package bands

import (
	"math"
	"testing"
)

func TestBandValue(t *testing.T) {
	tests := []struct {
		letters string
		want    int
	}{
		{"A", 1},
		{"H", 8},
		{"J", 9},
		{"N", 13},
		{"P", 14},
		{"Z", 24},
		{"AA", 1},
		{"AZ", 24},
		{"BA", 25},
		{"ag", 7},
		{"PZ", 336},
		{"QA", 337},
		{"QZ", 360},
	}

	for _, tt := range tests {
		if got := BandValue(tt.letters); got != tt.want {
			t.Errorf("BandValue(%q) = %d, want %d", tt.letters, got, tt.want)
		}
	}
}

func TestBandLetters(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{1, "AA"},
		{24, "AZ"},
		{25, "BA"},
		{181, "HN"},
		{336, "PZ"},
		{337, "QA"},
		{360, "QZ"},
	}

	for _, tt := range tests {
		if got := BandLetters(tt.value); got != tt.want {
			t.Errorf("BandLetters(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}

	if got := BandLetter(1); got != 'A' {
		t.Errorf("BandLetter(1) = %c, want A", got)
	}
	if got := BandLetter(24); got != 'Z' {
		t.Errorf("BandLetter(24) = %c, want Z", got)
	}
}

// Every band value must survive the letters round trip, and no band may use I or O.
func TestBandLettersRoundTrip(t *testing.T) {
	for value := MinBandLettersNumber; value <= MaxBandLettersNumber; value++ {
		letters := BandLetters(value)
		for i := 0; i < len(letters); i++ {
			if letters[i] == 'I' || letters[i] == 'O' || letters[i] < 'A' || letters[i] > 'Z' {
				t.Fatalf("BandLetters(%d) = %q contains an invalid letter", value, letters)
			}
		}
		if got := BandValue(letters); got != value {
			t.Fatalf("BandValue(BandLetters(%d)) = %d", value, got)
		}
	}
}

func TestQuadrants(t *testing.T) {
	tests := []struct {
		column, row, quadrant int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{0, 0, 3},
		{1, 0, 4},
	}

	for _, tt := range tests {
		if got := Quadrant(tt.column, tt.row); got != tt.quadrant {
			t.Errorf("Quadrant(%d, %d) = %d, want %d", tt.column, tt.row, got, tt.quadrant)
		}
		if got := QuadrantColumn(tt.quadrant); got != tt.column {
			t.Errorf("QuadrantColumn(%d) = %d, want %d", tt.quadrant, got, tt.column)
		}
		if got := QuadrantRow(tt.quadrant); got != tt.row {
			t.Errorf("QuadrantRow(%d) = %d, want %d", tt.quadrant, got, tt.row)
		}
	}
}

func TestKeypads(t *testing.T) {
	for keypad := 1; keypad <= 9; keypad++ {
		column := KeypadColumn(keypad)
		row := KeypadRow(keypad)
		if column < 0 || column > 2 || row < 0 || row > 2 {
			t.Fatalf("keypad %d: column=%d row=%d out of range", keypad, column, row)
		}
		if got := Keypad(column, row); got != keypad {
			t.Errorf("Keypad(%d, %d) = %d, want %d", column, row, got, keypad)
		}
	}

	// Keypad 1 is the northwest corner, 9 the southeast.
	if KeypadColumn(1) != 0 || KeypadRow(1) != 2 {
		t.Errorf("keypad 1 should be column 0 row 2")
	}
	if KeypadColumn(9) != 2 || KeypadRow(9) != 0 {
		t.Errorf("keypad 9 should be column 2 row 0")
	}
}

func TestBandDegrees(t *testing.T) {
	if got := Longitude(1); got != -180.0 {
		t.Errorf("Longitude(1) = %f", got)
	}
	if got := Longitude(720); got != 179.5 {
		t.Errorf("Longitude(720) = %f", got)
	}
	if got := LatitudeOfLetters("QZ"); got != 89.5 {
		t.Errorf("LatitudeOfLetters(QZ) = %f", got)
	}
	if got := LatitudeOfLetters("AG"); got != -87.0 {
		t.Errorf("LatitudeOfLetters(AG) = %f", got)
	}
	if got := DecimalLongitudeBand(-177.25); got != 6.5 {
		t.Errorf("DecimalLongitudeBand(-177.25) = %f", got)
	}
	if got := DecimalLatitudeBandValue(-87.0); got != 7.0 {
		t.Errorf("DecimalLatitudeBandValue(-87) = %f", got)
	}
}

func TestPrecisionSnapping(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision float64
		before    float64
		after     float64
	}{
		{"positive", 69, 20, 60, 80},
		{"exact", 60, 20, 60, 80},
		{"small positive", 7, 20, 0, 20},
		{"small negative", -7, 20, -20, 0},
		{"negative", -81.09, 10, -90, -80},
		{"half degree", 1.4, 0.5, 1.0, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PrecisionBefore(tt.value, tt.precision); math.Abs(got-tt.before) > 1e-9 {
				t.Errorf("PrecisionBefore(%v, %v) = %v, want %v", tt.value, tt.precision, got, tt.before)
			}
			if got := PrecisionAfter(tt.value, tt.precision); math.Abs(got-tt.after) > 1e-9 {
				t.Errorf("PrecisionAfter(%v, %v) = %v, want %v", tt.value, tt.precision, got, tt.after)
			}
		})
	}
}

func TestNextPrecision(t *testing.T) {
	if got := NextPrecision(20, 10); got != 30 {
		t.Errorf("NextPrecision(20, 10) = %v", got)
	}
	if got := NextPrecision(0.25, FifteenMinute); got != 0.5 {
		t.Errorf("NextPrecision(0.25, 15') = %v", got)
	}

	// Stepping at five minutes lands back on the parent 15 minute boundary.
	value := 0.0
	for i := 0; i < 3; i++ {
		value = NextPrecision(value, FiveMinute)
	}
	if math.Abs(value-FifteenMinute) > 1e-12 {
		t.Errorf("three five minute steps = %v, want %v", value, FifteenMinute)
	}
}

func TestDegreeLabel(t *testing.T) {
	tests := []struct {
		lon, lat float64
		want     string
	}{
		{60, 0, "60E0N"},
		{-120, -40, "120W40S"},
		{320, -90, "320E90S"},
		{0.5, 1, "0.5E1N"},
	}

	for _, tt := range tests {
		if got := DegreeLabel(tt.lon, tt.lat); got != tt.want {
			t.Errorf("DegreeLabel(%v, %v) = %q, want %q", tt.lon, tt.lat, got, tt.want)
		}
	}
}
