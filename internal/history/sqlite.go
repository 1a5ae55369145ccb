// internal/history/sqlite.go
//
// SQLite-backed history Store.
//
// The table keys rows by (owner, date) so one database can hold history for
// many players, but the Store contract stays date-keyed: each store instance
// is bound to a single owner at construction and the game engine never sees
// owners at all. Single-player embeddings use DefaultOwner.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultOwner scopes history rows when no player identity is in play.
const DefaultOwner = "local"

// SQLiteStore implements Store over a history table, scoped to one owner.
type SQLiteStore struct {
	db    *sql.DB
	owner string
}

// NewSQLiteStore binds a store to db for the given owner.
// An empty owner falls back to DefaultOwner.
func NewSQLiteStore(db *sql.DB, owner string) *SQLiteStore {
	if owner == "" {
		owner = DefaultOwner
	}
	return &SQLiteStore{db: db, owner: owner}
}

// Get returns the owner's record for a date, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, date string) (Record, error) {
	var country, guesses string
	err := s.db.QueryRowContext(ctx,
		`SELECT country, guesses FROM history WHERE owner=? AND date=?`,
		s.owner, date,
	).Scan(&country, &guesses)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("history: get %s: %w", date, err)
	}
	return Record{Date: date, Country: country, Guesses: DecodeGuesses(guesses)}, nil
}

// Upsert inserts or replaces the owner's record for rec.Date.
func (s *SQLiteStore) Upsert(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO history (owner, date, country, guesses)
        VALUES (?,?,?,?)
        ON CONFLICT(owner, date) DO UPDATE SET
            country = excluded.country,
            guesses = excluded.guesses`,
		s.owner, rec.Date, rec.Country, EncodeGuesses(rec.Guesses),
	)
	if err != nil {
		return fmt.Errorf("history: upsert %s: %w", rec.Date, err)
	}
	return nil
}
