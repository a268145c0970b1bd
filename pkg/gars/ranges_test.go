package gars

import (
	"testing"
)

func TestBandRange(t *testing.T) {
	r := DefaultBandRange()
	if r.West != 1 || r.East != 720 {
		t.Fatalf("DefaultBandRange = %d..%d, want 1..720", r.West, r.East)
	}

	count := 0
	prev := 0
	for band, ok := r.Next(); ok; band, ok = r.Next() {
		if band != prev+1 {
			t.Fatalf("band %d follows %d", band, prev)
		}
		prev = band
		count++
	}
	if count != MaxBandNumber {
		t.Errorf("enumerated %d bands, want %d", count, MaxBandNumber)
	}

	// Exhausted ranges stay exhausted.
	if _, ok := r.Next(); ok {
		t.Error("Next after exhaustion returned a band")
	}
}

func TestBandRangeBetween(t *testing.T) {
	tests := []struct {
		west, east         float64
		wantWest, wantEast int
	}{
		{-87.0, -80.0, 187, 201},
		{-180, 180, 1, 720},
		{-200, -190, 681, 701}, // wrapped to 160..170
		{0, 0.49, 361, 361},
		{179.9, 180, 720, 720},
	}

	for _, tt := range tests {
		r := BandRangeBetween(tt.west, tt.east)
		if r.West != tt.wantWest || r.East != tt.wantEast {
			t.Errorf("BandRangeBetween(%v, %v) = %d..%d, want %d..%d",
				tt.west, tt.east, r.West, r.East, tt.wantWest, tt.wantEast)
		}
	}

	r := BandRangeBetween(-87.0, -80.0)
	if r.WestLongitude() != -87.0 {
		t.Errorf("WestLongitude = %v, want -87", r.WestLongitude())
	}
	if r.EastLongitude() != -80.0 {
		t.Errorf("EastLongitude = %v, want -80", r.EastLongitude())
	}
	if r.Len() != 15 {
		t.Errorf("Len = %d, want 15", r.Len())
	}
}

func TestLetterRange(t *testing.T) {
	r := DefaultLetterRange()
	if r.SouthValue() != 1 || r.NorthValue() != 360 {
		t.Fatalf("DefaultLetterRange = %d..%d, want 1..360", r.SouthValue(), r.NorthValue())
	}

	var letters []string
	for l, ok := r.Next(); ok; l, ok = r.Next() {
		letters = append(letters, l)
	}
	if len(letters) != MaxBandLettersNumber {
		t.Fatalf("enumerated %d letters, want %d", len(letters), MaxBandLettersNumber)
	}
	if letters[0] != "AA" || letters[23] != "AZ" || letters[24] != "BA" || letters[359] != "QZ" {
		t.Errorf("unexpected letters: %v ... %v", letters[:2], letters[358:])
	}

	// Reset restarts the enumeration.
	r.Reset()
	if l, ok := r.Next(); !ok || l != "AA" {
		t.Errorf("Next after Reset = %q, %v, want AA", l, ok)
	}
}

func TestLetterRangeBetween(t *testing.T) {
	tests := []struct {
		south, north         float64
		wantSouth, wantNorth string
	}{
		{24.0, 31.0, "KN", "LC"},
		{-90, 90, "AA", "QZ"},
		{-100, 100, "AA", "QZ"},
		{0, 0.25, "HN", "HN"},
	}

	for _, tt := range tests {
		r := LetterRangeBetween(tt.south, tt.north)
		if r.South != tt.wantSouth || r.North != tt.wantNorth {
			t.Errorf("LetterRangeBetween(%v, %v) = %s..%s, want %s..%s",
				tt.south, tt.north, r.South, r.North, tt.wantSouth, tt.wantNorth)
		}
	}

	r := LetterRangeBetween(24.0, 31.0)
	if r.SouthLatitude() != 24.0 || r.NorthLatitude() != 31.0 {
		t.Errorf("latitudes = %v..%v, want 24..31", r.SouthLatitude(), r.NorthLatitude())
	}
	if r.Len() != 15 {
		t.Errorf("Len = %d, want 15", r.Len())
	}
}
