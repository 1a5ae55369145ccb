// internal/catalog/catalog.go
//
// Country reference data for the guessing game.
// Responsibilities:
//   - Parse the bundled countries.json (code, latitude, longitude, name).
//   - Keep only countries that have a renderable map asset.
//   - Sort by name so the list order is identical on every run — the daily
//     puzzle index is derived from this order.
//
// The returned slice is built once at startup and must be treated as
// immutable for the life of the process.

package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrCatalogLoad wraps any failure to produce a usable catalog. It is fatal
// to startup; no partial catalog is ever served.
var ErrCatalogLoad = errors.New("catalog: load failed")

// Country is one playable country. Instances are shared from the loaded
// catalog and compared by code, case-insensitively.
type Country struct {
	Code      string  `json:"code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Is reports whether c and other refer to the same country (by code).
func (c Country) Is(other Country) bool {
	return strings.EqualFold(c.Code, other.Code)
}

// Load parses raw countries.json bytes and filters them down to the codes
// present in assetCodes (case-insensitive). The result is sorted by name
// with code as a tie-breaker, which keeps the order stable across runs.
func Load(raw []byte, assetCodes []string) ([]Country, error) {
	var all []Country
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("%w: parse countries.json: %v", ErrCatalogLoad, err)
	}

	assets := make(map[string]struct{}, len(assetCodes))
	for _, code := range assetCodes {
		assets[strings.ToLower(strings.TrimSpace(code))] = struct{}{}
	}

	countries := make([]Country, 0, len(all))
	for _, c := range all {
		if _, ok := assets[strings.ToLower(c.Code)]; !ok {
			// Not an error: a country without an image is simply unplayable.
			log.Debug().Str("code", c.Code).Msg("catalog: no asset, skipping")
			continue
		}
		countries = append(countries, c)
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("%w: no playable countries after asset filter", ErrCatalogLoad)
	}

	sort.Slice(countries, func(i, j int) bool {
		if countries[i].Name != countries[j].Name {
			return countries[i].Name < countries[j].Name
		}
		return countries[i].Code < countries[j].Code
	})
	return countries, nil
}

// ByCode finds a country by its code, case-insensitively.
func ByCode(countries []Country, code string) (Country, bool) {
	for _, c := range countries {
		if strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return Country{}, false
}
