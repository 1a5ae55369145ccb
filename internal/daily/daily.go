// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
//
// Every client must agree on "today's" country, so both inputs are pinned:
//   - The date key is formatted in UTC (layout MM-dd-yyyy).
//   - The seed is an FNV-1a hash of "<date>+<catalog size>". FNV-1a is fixed
//     and platform-independent; a language's default string hash is often
//     randomized per process and must not be used here.
//
// The seeded generator draws one uniform index into the sorted catalog, so
// selection also depends on the catalog sort order staying stable.

package daily

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"

	"github.com/nordeck/worldle-go/internal/catalog"
)

// DateLayout is the calendar-day key format (MM-dd-yyyy).
const DateLayout = "01-02-2006"

// DateKey returns t's calendar-day key in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Seed derives the PRNG seed for a date key and catalog size.
func Seed(date string, catalogSize int) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(date + "+" + strconv.Itoa(catalogSize)))
	return int64(h.Sum64())
}

// PickIndex returns the deterministic catalog index for a date.
func PickIndex(date string, catalogSize int) int {
	if catalogSize <= 0 {
		return 0
	}
	rng := rand.New(rand.NewSource(Seed(date, catalogSize)))
	return rng.Intn(catalogSize)
}

// Pick returns the day's target country. countries must be the full sorted
// catalog; it is never empty once the catalog loader has succeeded.
func Pick(date string, countries []catalog.Country) catalog.Country {
	return countries[PickIndex(date, len(countries))]
}
