package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestGuessCodec(t *testing.T) {
	tests := []struct {
		name    string
		guesses []string
		encoded string
	}{
		{"empty", nil, ""},
		{"single", []string{"GR"}, "GR"},
		{"several", []string{"GR", "SO", "RW"}, "GR,SO,RW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeGuesses(tt.guesses); got != tt.encoded {
				t.Errorf("EncodeGuesses = %q, want %q", got, tt.encoded)
			}
			back := DecodeGuesses(tt.encoded)
			if len(back) != len(tt.guesses) {
				t.Fatalf("DecodeGuesses = %v, want %v", back, tt.guesses)
			}
			for i := range back {
				if back[i] != tt.guesses[i] {
					t.Fatalf("DecodeGuesses = %v, want %v", back, tt.guesses)
				}
			}
		})
	}
}

func TestDecodeEmptyIsNil(t *testing.T) {
	if got := DecodeGuesses(""); got != nil {
		t.Errorf("DecodeGuesses(\"\") = %v, want nil", got)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "03-16-2022"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: %v, want ErrNotFound", err)
	}

	rec := Record{Date: "03-16-2022", Country: "UG", Guesses: []string{"GR", "SO"}}
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := s.Get(ctx, "03-16-2022")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Country != "UG" || len(got.Guesses) != 2 {
		t.Errorf("Get = %+v", got)
	}

	// Upsert replaces the whole record.
	rec.Guesses = append(rec.Guesses, "RW")
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	got, _ = s.Get(ctx, "03-16-2022")
	if len(got.Guesses) != 3 || got.Guesses[2] != "RW" {
		t.Errorf("after replace: %+v", got)
	}

	// Other dates stay independent.
	if _, err := s.Get(ctx, "03-17-2022"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get other date: %v, want ErrNotFound", err)
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(`
        CREATE TABLE history (
            owner   TEXT NOT NULL,
            date    TEXT NOT NULL,
            country TEXT NOT NULL,
            guesses TEXT NOT NULL DEFAULT '',
            PRIMARY KEY (owner, date)
        )`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := NewSQLiteStore(db, "")

	if _, err := s.Get(ctx, "03-16-2022"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty table: %v, want ErrNotFound", err)
	}

	rec := Record{Date: "03-16-2022", Country: "UG", Guesses: []string{"GR", "SO"}}
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := s.Get(ctx, "03-16-2022")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Country != "UG" || len(got.Guesses) != 2 || got.Guesses[1] != "SO" {
		t.Errorf("Get = %+v", got)
	}

	// Upsert onto the same (owner, date) replaces in place.
	rec.Guesses = []string{"GR", "SO", "RW"}
	if err := s.Upsert(ctx, rec); err != nil {
		t.Fatalf("replace Upsert: %v", err)
	}
	got, _ = s.Get(ctx, "03-16-2022")
	if len(got.Guesses) != 3 {
		t.Errorf("after replace: %+v", got)
	}

	// A game with no guesses yet round-trips too.
	fresh := Record{Date: "03-17-2022", Country: "FR"}
	if err := s.Upsert(ctx, fresh); err != nil {
		t.Fatalf("Upsert fresh: %v", err)
	}
	got, err = s.Get(ctx, "03-17-2022")
	if err != nil {
		t.Fatalf("Get fresh: %v", err)
	}
	if got.Country != "FR" || got.Guesses != nil {
		t.Errorf("fresh record = %+v", got)
	}
}

func TestSQLiteStoreOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	alice := NewSQLiteStore(db, "alice")
	bob := NewSQLiteStore(db, "bob")

	if err := alice.Upsert(ctx, Record{Date: "03-16-2022", Country: "UG", Guesses: []string{"GR"}}); err != nil {
		t.Fatalf("alice Upsert: %v", err)
	}
	if err := bob.Upsert(ctx, Record{Date: "03-16-2022", Country: "UG", Guesses: []string{"SO", "RW"}}); err != nil {
		t.Fatalf("bob Upsert: %v", err)
	}

	a, err := alice.Get(ctx, "03-16-2022")
	if err != nil {
		t.Fatalf("alice Get: %v", err)
	}
	b, err := bob.Get(ctx, "03-16-2022")
	if err != nil {
		t.Fatalf("bob Get: %v", err)
	}
	if len(a.Guesses) != 1 || len(b.Guesses) != 2 {
		t.Errorf("owner rows bled: alice=%v bob=%v", a.Guesses, b.Guesses)
	}
}
