package game

import (
	"testing"

	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/geo"
)

func TestEvaluateFixtures(t *testing.T) {
	tests := []struct {
		candidate catalog.Country
		wantMiles int
		wantProx  int
		wantDir   Direction
	}{
		{tGreece, 2687, 78, SSE},
		{tSomalia, 994, 91, WSW},
		{tRwanda, 283, 97, NE},
	}
	for _, tc := range tests {
		g := Evaluate(tc.candidate, tUganda)
		if g.Country.Code != tc.candidate.Code {
			t.Errorf("%s: guess country = %s", tc.candidate.Code, g.Country.Code)
		}
		if miles := geo.MetersToMiles(g.DistanceMeters); miles != tc.wantMiles {
			t.Errorf("%s: distance = %d mi, want %d", tc.candidate.Code, miles, tc.wantMiles)
		}
		if g.ProximityPercent != tc.wantProx {
			t.Errorf("%s: proximity = %d%%, want %d%%", tc.candidate.Code, g.ProximityPercent, tc.wantProx)
		}
		if g.Direction != tc.wantDir {
			t.Errorf("%s: direction = %v, want %v", tc.candidate.Code, g.Direction, tc.wantDir)
		}
	}
}

func TestEvaluateCorrectGuess(t *testing.T) {
	g := Evaluate(tUganda, tUganda)
	if g.DistanceMeters != 0 {
		t.Errorf("distance = %d, want 0", g.DistanceMeters)
	}
	if g.ProximityPercent != 100 {
		t.Errorf("proximity = %d, want 100", g.ProximityPercent)
	}
	if g.Direction != Correct {
		t.Errorf("direction = %v, want correct", g.Direction)
	}
}

func TestProximityPercent(t *testing.T) {
	if got := proximityPercent(0); got != 100 {
		t.Errorf("proximityPercent(0) = %d, want 100", got)
	}
	if got := proximityPercent(MaxDistanceOnEarth); got != 0 {
		t.Errorf("proximityPercent(max) = %d, want 0", got)
	}
	// Monotonically non-increasing with distance.
	prev := 100
	for d := 0; d <= MaxDistanceOnEarth; d += 250_000 {
		got := proximityPercent(d)
		if got > prev {
			t.Fatalf("proximityPercent(%d) = %d rose above %d", d, got, prev)
		}
		prev = got
	}
	// Only an exact hit scores 100.
	if got := proximityPercent(1); got == 100 {
		t.Errorf("proximityPercent(1) = 100, want < 100")
	}
}
