// internal/game/direction.go
//
// Compass direction buckets for guess feedback.
// Defines:
//   - Direction: one of the 16 compass directions (N, NNE, … NNW) plus the
//     sentinels Correct (guess == target) and DirError (no bucket matched).
//   - Classify: maps an origin/destination country pair to a Direction.
//
// Each compass bucket owns a half-open [start,end) window of 22.5°; N wraps
// across 0°. Together the 16 windows cover the full circle with no gaps or
// overlaps, so DirError should be unreachable; it exists so a math surprise
// degrades to a placeholder icon instead of a crash.

package game

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/geo"
)

// compassSegment is the angular width of one compass bucket.
const compassSegment = 22.5

// Direction identifies the feedback arrow shown for a guess.
type Direction int

const (
	Correct Direction = iota
	DirError
	N
	NNE
	NE
	ENE
	E
	ESE
	SE
	SSE
	S
	SSW
	SW
	WSW
	W
	WNW
	NW
	NNW
)

var directionNames = [...]string{
	"correct", "error",
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "error"
	}
	return directionNames[d]
}

// MarshalJSON encodes the direction by name, matching the UI contract.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// IsCompass reports whether d is one of the 16 real compass directions
// (not a sentinel).
func (d Direction) IsCompass() bool { return d >= N && d <= NNW }

// Rotation returns the display rotation of the arrow in degrees clockwise
// from north: N=0, NNE=22.5, … NNW=337.5. Sentinels have no rotation.
func (d Direction) Rotation() float64 {
	if !d.IsCompass() {
		return 0
	}
	return float64(d-N) * compassSegment
}

// start returns the beginning of d's bearing window. Windows are half-open
// [start, start+22.5) and N's window starts at 348.75, wrapping through 0.
func (d Direction) start() float64 {
	if d == N {
		return 360 - compassSegment/2
	}
	return float64(d-N)*compassSegment - compassSegment/2
}

// InRange reports whether a bearing in [0,360) falls inside d's window.
func (d Direction) InRange(bearing float64) bool {
	if !d.IsCompass() {
		return false
	}
	if d == N {
		return bearing >= d.start() || bearing < compassSegment/2
	}
	return bearing >= d.start() && bearing < d.start()+compassSegment
}

// Classify returns the direction from origin toward dest: Correct when they
// are the same country, otherwise the compass bucket containing the bearing.
func Classify(origin, dest catalog.Country) Direction {
	if origin.Is(dest) {
		return Correct
	}
	bearing := geo.Bearing(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude)
	for d := N; d <= NNW; d++ {
		if d.InRange(bearing) {
			return d
		}
	}
	// Unreachable for any normalized bearing; recover with a placeholder.
	log.Error().
		Float64("bearing", bearing).
		Str("from", origin.Code).
		Str("to", dest.Code).
		Msg("no compass bucket matched bearing")
	return DirError
}
