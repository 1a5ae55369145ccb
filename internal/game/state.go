// internal/game/state.go
//
// Immutable game state snapshot.
//
// A State value is never mutated in place: the engine always builds a new
// value and swaps it in, so a snapshot handed to an observer stays valid
// forever. The won/lost flags are derived from the guess list; both can be
// true at once when the winning guess is also the fifth.

package game

import (
	"fmt"
	"strings"

	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/history"
)

// MaxGuesses is the guess budget for one daily puzzle.
const MaxGuesses = 5

// State is one snapshot of a daily game.
type State struct {
	AllCountries   []catalog.Country `json:"-"`
	GuessInput     string            `json:"guessInput"`
	Suggestions    []catalog.Country `json:"suggestions"`
	CountryToGuess catalog.Country   `json:"-"`
	Guesses        []Guess           `json:"guesses"`

	// PersistDegraded is set when a history write has failed after retry.
	// The game keeps running; observers may surface a warning.
	PersistDegraded bool `json:"persistDegraded,omitempty"`
}

// HasWonGame reports whether any guess hit the target.
func (s State) HasWonGame() bool {
	for _, g := range s.Guesses {
		if g.Country.Is(s.CountryToGuess) {
			return true
		}
	}
	return false
}

// HasLostGame reports whether the guess budget is exhausted.
func (s State) HasLostGame() bool {
	return len(s.Guesses) >= MaxGuesses
}

// Finished reports whether the game accepts no further guesses.
func (s State) Finished() bool {
	return s.HasWonGame() || s.HasLostGame()
}

// Phase reports a coarse string representation of the game state.
// A won fifth guess reads as "won".
func (s State) Phase() string {
	switch {
	case s.HasWonGame():
		return "won"
	case s.HasLostGame():
		return "lost"
	default:
		return "playing"
	}
}

// ToRecord converts the state into its persisted form for a date key.
func (s State) ToRecord(date string) history.Record {
	codes := make([]string, len(s.Guesses))
	for i, g := range s.Guesses {
		codes[i] = g.Country.Code
	}
	return history.Record{
		Date:    date,
		Country: s.CountryToGuess.Code,
		Guesses: codes,
	}
}

// Summary renders a finished game as shareable text: a header with the
// date and score, then one line per guess with its direction and proximity.
// The target is never named, so the text spoils nothing.
func (s State) Summary(date string) string {
	var b strings.Builder
	score := "X"
	if s.HasWonGame() {
		score = fmt.Sprintf("%d", len(s.Guesses))
	}
	fmt.Fprintf(&b, "Worldle %s %s/%d\n", date, score, MaxGuesses)
	for _, g := range s.Guesses {
		fmt.Fprintf(&b, "%s %d%%\n", g.Direction, g.ProximityPercent)
	}
	return b.String()
}

// suggest filters the catalog by a case-insensitive substring match on name,
// excluding countries already guessed. Empty input yields no suggestions.
func suggest(all []catalog.Country, input string, guesses []Guess) []catalog.Country {
	if input == "" {
		return nil
	}
	needle := strings.ToLower(input)
	var out []catalog.Country
	for _, c := range all {
		if !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		guessed := false
		for _, g := range guesses {
			if g.Country.Is(c) {
				guessed = true
				break
			}
		}
		if !guessed {
			out = append(out, c)
		}
	}
	return out
}
