// internal/game/engine.go
//
// Core state machine for one daily game session.
// Responsibilities:
//   - Start: restore the day's game from history or derive a fresh target.
//   - Input handling: search-as-you-type suggestions, guess submission.
//   - Win/loss detection and the playing → finished transition.
//   - Asynchronous persistence of every state change to the history store.
//   - Publishing state snapshots to subscribers.
//
// Concurrency model: a single mutable current-state cell guarded by a mutex,
// updated by full replacement (every transition builds a new State value and
// swaps it in). Persistence runs on a dedicated consumer goroutine fed by a
// bounded queue; under pressure the queue keeps only the newest snapshot,
// which is correct because all writes target the same date row and only the
// final value matters.

package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/daily"
	"github.com/nordeck/worldle-go/internal/history"
)

const (
	persistQueueDepth = 32
	persistRetryDelay = 250 * time.Millisecond
)

// Engine owns the current state of one daily game.
type Engine struct {
	date  string
	store history.Store

	mu     sync.Mutex
	state  State
	loaded bool
	subs   []chan State

	persistCh chan history.Record
	closeOnce sync.Once
	done      chan struct{}
}

// NewEngine builds an engine for one date over a loaded catalog and a
// history store. Call Start to load the day's game, and Close when done.
func NewEngine(countries []catalog.Country, store history.Store, date string) *Engine {
	e := &Engine{
		date:  date,
		store: store,
		state: State{AllCountries: countries},

		persistCh: make(chan history.Record, persistQueueDepth),
		done:      make(chan struct{}),
	}
	go e.persistLoop()
	return e
}

// Start performs the one-shot load: if a record exists for the engine's
// date the game is reconstructed from it, otherwise the day's target is
// derived deterministically and the game starts empty. The resulting state
// is persisted, published, and returned.
func (e *Engine) Start(ctx context.Context) (State, error) {
	e.mu.Lock()
	countries := e.state.AllCountries
	e.mu.Unlock()
	if len(countries) == 0 {
		return State{}, errors.New("game: empty catalog")
	}

	var st State
	rec, err := e.store.Get(ctx, e.date)
	switch {
	case err == nil:
		restored, ok := restore(countries, rec)
		if ok {
			st = restored
			break
		}
		// Target code no longer resolves: previous save is useless.
		log.Warn().Str("date", e.date).Str("country", rec.Country).
			Msg("saved target not in catalog, starting fresh")
		st = newGame(countries, e.date)
	case errors.Is(err, history.ErrNotFound):
		st = newGame(countries, e.date)
	default:
		// A broken store must not kill the daily puzzle.
		log.Warn().Err(err).Str("date", e.date).Msg("history lookup failed, starting fresh")
		st = newGame(countries, e.date)
	}

	e.mu.Lock()
	e.state = st
	e.loaded = true
	e.mu.Unlock()

	e.enqueuePersist(st.ToRecord(e.date))
	e.publish(st)
	return st, nil
}

// newGame derives the day's target and returns an empty game state.
func newGame(countries []catalog.Country, date string) State {
	return State{
		AllCountries:   countries,
		CountryToGuess: daily.Pick(date, countries),
	}
}

// restore rebuilds a state from a persisted record. Each saved guess code is
// resolved back to a catalog entry and re-evaluated against the target;
// codes that no longer resolve are silently dropped. Returns false when the
// target itself cannot be resolved.
func restore(countries []catalog.Country, rec history.Record) (State, bool) {
	target, ok := catalog.ByCode(countries, rec.Country)
	if !ok {
		return State{}, false
	}
	var guesses []Guess
	for _, code := range rec.Guesses {
		c, ok := catalog.ByCode(countries, code)
		if !ok {
			continue
		}
		guesses = append(guesses, Evaluate(c, target))
	}
	return State{
		AllCountries:   countries,
		CountryToGuess: target,
		Guesses:        guesses,
	}, true
}

// Loaded reports whether Start has completed.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Date returns the calendar-day key this engine plays.
func (e *Engine) Date() string { return e.date }

// Subscribe registers an observer. The returned channel holds the latest
// state (a slow reader sees newer snapshots replace older ones, never a
// stale backlog). The cancel func unregisters the channel.
func (e *Engine) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, c := range e.subs {
			if c == ch {
				e.subs = append(e.subs[:i], e.subs[i+1:]...)
				return
			}
		}
	}
	return ch, cancel
}

// OnGuessInputChanged updates the input text and recomputes suggestions.
// Called on every keystroke; each call persists the (unchanged) guess list,
// matching the original app's save-on-every-mutation behavior.
func (e *Engine) OnGuessInputChanged(input string) State {
	return e.transition(func(cur State) (State, bool) {
		if cur.Finished() {
			return cur, false
		}
		cur.GuessInput = input
		cur.Suggestions = suggest(cur.AllCountries, input, cur.Guesses)
		return cur, true
	})
}

// OnGuessSubmitted commits the first current suggestion, if any.
// No-op when the suggestion list is empty.
func (e *Engine) OnGuessSubmitted() State {
	e.mu.Lock()
	var first *catalog.Country
	if e.loaded && len(e.state.Suggestions) > 0 {
		c := e.state.Suggestions[0]
		first = &c
	}
	e.mu.Unlock()

	if first == nil {
		return e.Snapshot()
	}
	return e.OnSuggestionSelected(*first)
}

// OnSuggestionSelected evaluates the chosen country against the target,
// appends the guess, and clears the input. The game transitions to finished
// when the guess wins or exhausts the budget.
func (e *Engine) OnSuggestionSelected(c catalog.Country) State {
	return e.transition(func(cur State) (State, bool) {
		if cur.Finished() {
			return cur, false
		}
		guesses := make([]Guess, 0, len(cur.Guesses)+1)
		guesses = append(guesses, cur.Guesses...)
		guesses = append(guesses, Evaluate(c, cur.CountryToGuess))

		cur.Guesses = guesses
		cur.GuessInput = ""
		cur.Suggestions = nil
		return cur, true
	})
}

// ResetGame clears all guesses and re-derives the target for the same date.
// Selection is deterministic, so an unchanged catalog yields the same
// country again; this is an explicit debug/product action, not a reroll.
func (e *Engine) ResetGame() State {
	return e.transition(func(cur State) (State, bool) {
		return newGame(cur.AllCountries, e.date), true
	})
}

// transition applies fn to the current state under the lock and, when fn
// reports a change, swaps in the new value, enqueues a persistence write,
// and publishes the snapshot.
func (e *Engine) transition(fn func(State) (State, bool)) State {
	e.mu.Lock()
	if !e.loaded {
		st := e.state
		e.mu.Unlock()
		return st
	}
	next, changed := fn(e.state)
	if changed {
		next.PersistDegraded = e.state.PersistDegraded
		e.state = next
	}
	e.mu.Unlock()

	if changed {
		e.enqueuePersist(next.ToRecord(e.date))
		e.publish(next)
	}
	return next
}

// publish delivers a snapshot to all subscribers, replacing any undelivered
// older snapshot rather than blocking.
func (e *Engine) publish(st State) {
	e.mu.Lock()
	subs := make([]chan State, len(e.subs))
	copy(subs, e.subs)
	e.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// enqueuePersist hands a record to the persistence consumer without
// blocking; when the queue is full the oldest pending record is dropped.
func (e *Engine) enqueuePersist(rec history.Record) {
	select {
	case e.persistCh <- rec:
		return
	default:
	}
	select {
	case <-e.persistCh:
	default:
	}
	select {
	case e.persistCh <- rec:
	default:
	}
}

// persistLoop is the single queue consumer. Each iteration coalesces the
// queue down to the newest record, writes it, and retries once after a
// short delay before degrading.
func (e *Engine) persistLoop() {
	defer close(e.done)
	for rec := range e.persistCh {
	drain:
		for {
			select {
			case next, ok := <-e.persistCh:
				if !ok {
					break drain
				}
				rec = next
			default:
				break drain
			}
		}

		if err := e.store.Upsert(context.Background(), rec); err != nil {
			time.Sleep(persistRetryDelay)
			if err = e.store.Upsert(context.Background(), rec); err != nil {
				log.Error().Err(err).Str("date", rec.Date).Msg("history write failed")
				e.markPersistDegraded()
			}
		}
	}
}

// markPersistDegraded flags the current state so observers can surface a
// non-fatal persistence warning.
func (e *Engine) markPersistDegraded() {
	e.mu.Lock()
	if e.state.PersistDegraded {
		e.mu.Unlock()
		return
	}
	e.state.PersistDegraded = true
	st := e.state
	e.mu.Unlock()
	e.publish(st)
}

// Close stops the persistence consumer after flushing pending writes.
func (e *Engine) Close() {
	e.closeOnce.Do(func() { close(e.persistCh) })
	<-e.done
}
