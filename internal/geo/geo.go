// internal/geo/geo.go
//
// Pure geodesic math for the guessing game.
// Responsibilities:
//   - Great-circle (Haversine) distance between two coordinates, in meters.
//   - Initial compass bearing from one coordinate to another, in [0,360).
//   - Unit conversion helpers for display (meters → km / miles).
//   - Optional coordinate-range validation for callers that take user input.
//
// Notes:
//   - Haversine assumes a spherical Earth (mean radius); error stays within
//     ~0.5% which is immaterial for country-scale distances.
//   - The bearing uses the Mercator-projected latitude difference, so the
//     heading matches what a compass arrow on a flat world map should show.
//     The longitude delta is renormalized into (-π,π] first to avoid spurious
//     jumps across the antimeridian.

package geo

import (
	"errors"
	"math"
)

const (
	// EarthRadiusMeters is the Earth's mean radius.
	// See http://en.wikipedia.org/wiki/Earth%27s_radius#Mean_radii
	EarthRadiusMeters = 6371000.0

	metersPerMile = 1609.34

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// ErrInvalidCoordinate is returned by ValidateCoordinate for out-of-range
// latitude or longitude values.
var ErrInvalidCoordinate = errors.New("geo: coordinate out of range")

// ValidateCoordinate checks lat ∈ [-90,90] and lon ∈ [-180,180].
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Distance computes the Haversine great-circle distance in meters between
// two points given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon1 - lon2) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusMeters * c
}

// Bearing computes the initial bearing in degrees, clockwise from north,
// from point 1 to point 2. The result is normalized into [0,360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dLon := (lon2 - lon1) * degToRad

	// Latitude difference on the Mercator projection.
	dPhi := math.Log(math.Tan(phi2/2+math.Pi/4) / math.Tan(phi1/2+math.Pi/4))

	// Take the short way around if the longitude delta exceeds half a turn.
	if math.Abs(dLon) > math.Pi {
		if dLon > 0 {
			dLon = -(2*math.Pi - dLon)
		} else {
			dLon = 2*math.Pi + dLon
		}
	}

	return math.Mod(math.Atan2(dLon, dPhi)*radToDeg+360, 360)
}

// MetersToKilometers truncates a meter distance to whole kilometers.
func MetersToKilometers(meters int) int { return meters / 1000 }

// MetersToMiles truncates a meter distance to whole miles.
func MetersToMiles(meters int) int { return int(float64(meters) / metersPerMile) }
