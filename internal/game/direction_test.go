package game

import (
	"math"
	"testing"

	"github.com/nordeck/worldle-go/internal/catalog"
)

// Fixture countries, coordinates as in the bundled catalog.
var (
	tUganda  = catalog.Country{Code: "UG", Latitude: 1.373333, Longitude: 32.290275, Name: "Uganda"}
	tGreece  = catalog.Country{Code: "GR", Latitude: 39.074208, Longitude: 21.824312, Name: "Greece"}
	tSomalia = catalog.Country{Code: "SO", Latitude: 5.152149, Longitude: 46.199616, Name: "Somalia"}
	tRwanda  = catalog.Country{Code: "RW", Latitude: -1.940278, Longitude: 29.873888, Name: "Rwanda"}
	tKenya   = catalog.Country{Code: "KE", Latitude: -0.023559, Longitude: 37.906193, Name: "Kenya"}
	tFrance  = catalog.Country{Code: "FR", Latitude: 46.227638, Longitude: 2.213749, Name: "France"}
	tJapan   = catalog.Country{Code: "JP", Latitude: 36.204824, Longitude: 138.252924, Name: "Japan"}
	tBrazil  = catalog.Country{Code: "BR", Latitude: -14.235004, Longitude: -51.92528, Name: "Brazil"}
)

func TestClassifySelfIsCorrect(t *testing.T) {
	for _, c := range []catalog.Country{tUganda, tGreece, tSomalia, tRwanda} {
		if got := Classify(c, c); got != Correct {
			t.Errorf("Classify(%s,%s) = %v, want correct", c.Code, c.Code, got)
		}
	}
	// Same country under different code casing is still correct.
	other := tUganda
	other.Code = "ug"
	if got := Classify(other, tUganda); got != Correct {
		t.Errorf("Classify with lowercased code = %v, want correct", got)
	}
}

func TestClassifyFixtures(t *testing.T) {
	tests := []struct {
		origin catalog.Country
		want   Direction
	}{
		{tGreece, SSE},
		{tSomalia, WSW},
		{tRwanda, NE},
	}
	for _, tc := range tests {
		if got := Classify(tc.origin, tUganda); got != tc.want {
			t.Errorf("Classify(%s→UG) = %v, want %v", tc.origin.Code, got, tc.want)
		}
	}
}

// Every bearing in [0,360) must land in exactly one compass bucket — no
// gaps, no overlaps, boundaries included.
func TestBucketTotalCoverage(t *testing.T) {
	check := func(bearing float64) {
		t.Helper()
		matches := 0
		for d := N; d <= NNW; d++ {
			if d.InRange(bearing) {
				matches++
			}
		}
		if matches != 1 {
			t.Errorf("bearing %v matched %d buckets, want exactly 1", bearing, matches)
		}
	}
	for b := 0.0; b < 360.0; b += 0.05 {
		check(b)
	}
	// Exact bucket boundaries.
	for i := 0; i < 16; i++ {
		check(math.Mod(11.25+22.5*float64(i), 360))
	}
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		bearing float64
		want    Direction
	}{
		{0, N},
		{11.24, N},
		{11.25, NNE},
		{33.75, NE},
		{90, E},
		{168.75, S},
		{180, S},
		{270, W},
		{348.74, NNW},
		{348.75, N},
		{359.99, N},
	}
	for _, tc := range tests {
		var got Direction = DirError
		for d := N; d <= NNW; d++ {
			if d.InRange(tc.bearing) {
				got = d
				break
			}
		}
		if got != tc.want {
			t.Errorf("bearing %v → %v, want %v", tc.bearing, got, tc.want)
		}
	}
}

func TestRotation(t *testing.T) {
	if got := N.Rotation(); got != 0 {
		t.Errorf("N rotation = %v, want 0", got)
	}
	if got := NNE.Rotation(); got != 22.5 {
		t.Errorf("NNE rotation = %v, want 22.5", got)
	}
	if got := S.Rotation(); got != 180 {
		t.Errorf("S rotation = %v, want 180", got)
	}
	if got := NNW.Rotation(); got != 337.5 {
		t.Errorf("NNW rotation = %v, want 337.5", got)
	}
	if got := Correct.Rotation(); got != 0 {
		t.Errorf("correct rotation = %v, want 0", got)
	}
}

func TestDirectionNames(t *testing.T) {
	if Correct.String() != "correct" || DirError.String() != "error" {
		t.Fatalf("sentinel names wrong: %q %q", Correct, DirError)
	}
	if N.String() != "N" || SSE.String() != "SSE" || NNW.String() != "NNW" {
		t.Fatalf("compass names wrong: %q %q %q", N, SSE, NNW)
	}
	if Direction(99).String() != "error" {
		t.Fatalf("out-of-range direction should read as error")
	}
}
