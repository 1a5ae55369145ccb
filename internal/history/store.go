// internal/history/store.go
//
// Persistence contract for daily game history.
// One record per calendar-day key: the target country's code plus the
// ordered list of guessed codes. Upsert semantics — rapid successive writes
// for the same date overwrite each other and only the last value matters.
//
// Implementations in this package: SQLite (durable) and in-memory (tests,
// ephemeral embedding).

package history

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when no record exists for the date.
var ErrNotFound = errors.New("history: no record for date")

// Record is the persisted per-date snapshot used to resume a daily puzzle.
type Record struct {
	Date    string   `json:"date"`
	Country string   `json:"country"`
	Guesses []string `json:"guesses"`
}

// Store is keyed persistence for daily game records.
type Store interface {
	// Get returns the record for a date key, or ErrNotFound.
	Get(ctx context.Context, date string) (Record, error)

	// Upsert inserts or replaces the record for rec.Date.
	Upsert(ctx context.Context, rec Record) error
}

// guessSeparator joins guessed codes into the single stored column.
// Country codes never contain commas.
const guessSeparator = ","

// EncodeGuesses serializes an ordered code list for storage.
func EncodeGuesses(codes []string) string {
	return strings.Join(codes, guessSeparator)
}

// DecodeGuesses parses the stored column back into an ordered code list.
func DecodeGuesses(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, guessSeparator)
}
