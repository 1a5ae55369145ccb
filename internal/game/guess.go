// internal/game/guess.go
//
// Guess evaluation: distance, proximity score, and compass direction for one
// submitted country against the day's target. Pure; no side effects.

package game

import (
	"math"

	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/geo"
)

// MaxDistanceOnEarth is the largest possible guess-to-target distance in
// meters (half the Earth's circumference, i.e. an antipodal guess).
const MaxDistanceOnEarth = 20_000_000

// Guess is the immutable result of evaluating one submitted country.
type Guess struct {
	Country          catalog.Country `json:"country"`
	DistanceMeters   int             `json:"distanceMeters"`
	ProximityPercent int             `json:"proximityPercent"`
	Direction        Direction       `json:"direction"`
}

// Evaluate scores candidate against target.
func Evaluate(candidate, target catalog.Country) Guess {
	meters := int(math.Round(geo.Distance(
		candidate.Latitude, candidate.Longitude,
		target.Latitude, target.Longitude,
	)))
	return Guess{
		Country:          candidate,
		DistanceMeters:   meters,
		ProximityPercent: proximityPercent(meters),
		Direction:        Classify(candidate, target),
	}
}

// proximityPercent maps a distance to a closeness score: 100 at zero
// distance, falling toward 0 as the distance approaches the antipodal
// maximum. Truncation keeps a near-miss from showing a flattering 100.
func proximityPercent(distanceMeters int) int {
	proximity := float64(MaxDistanceOnEarth - distanceMeters)
	return int(proximity / MaxDistanceOnEarth * 100)
}
