// internal/httpserver/routes_game.go
//
// HTTP routes for the daily geography game.
// Exposes, under optional auth:
//   - GET  /game/state          → current state (starts today's game if needed)
//   - POST /game/input          → update the search text, get suggestions
//   - POST /game/guess          → commit the first current suggestion
//   - POST /game/select         → commit a specific country by code
//   - POST /game/reset          → explicit reset (deterministic reselect)
//   - GET  /daily/leaderboard   → top finishers for a date (default today)
//
// Each player (JWT identity or anonymous cookie) gets one engine per day,
// backed by an owner-scoped history store, so a reload mid-game resumes
// from the persisted guesses. Finished games are recorded once per
// (owner, date) for the leaderboard and, for accounts, the win/streak stats.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nordeck/worldle-go/internal/catalog"
	"github.com/nordeck/worldle-go/internal/daily"
	"github.com/nordeck/worldle-go/internal/game"
	"github.com/nordeck/worldle-go/internal/geo"
	"github.com/nordeck/worldle-go/internal/history"
)

// session is one player's live engine for one date.
type session struct {
	engine   *game.Engine
	start    time.Time
	recorded bool // result row written
}

// sessions owns all live engines, keyed by "owner|date".
type sessions struct {
	mu        sync.Mutex
	countries []catalog.Country
	db        *sql.DB
	live      map[string]*session
}

func newSessions(countries []catalog.Country, db *sql.DB) *sessions {
	return &sessions{countries: countries, db: db, live: make(map[string]*session)}
}

// get returns the owner's session for today, creating and loading it on
// first access. Sessions left over from previous dates are released.
func (ss *sessions) get(r *http.Request, owner string) (*session, error) {
	date := daily.DateKey(time.Now())
	key := owner + "|" + date

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if sess, ok := ss.live[key]; ok {
		return sess, nil
	}

	// Day rollover: engines for older dates are dead weight.
	for k, old := range ss.live {
		if !strings.HasSuffix(k, "|"+date) {
			old.engine.Close()
			delete(ss.live, k)
		}
	}

	eng := game.NewEngine(ss.countries, history.NewSQLiteStore(ss.db, owner), date)
	if _, err := eng.Start(r.Context()); err != nil {
		eng.Close()
		return nil, err
	}
	sess := &session{engine: eng, start: time.Now()}
	ss.live[key] = sess
	return sess, nil
}

// closeAll releases every live engine, flushing pending writes.
func (ss *sessions) closeAll() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for k, sess := range ss.live {
		sess.engine.Close()
		delete(ss.live, k)
	}
}

// mountGame registers the /game and /daily routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Get("/state", s.handleGameState)
		r.Post("/input", s.handleGameInput)
		r.Post("/guess", s.handleGameGuess)
		r.Post("/select", s.handleGameSelect)
		r.Post("/reset", s.handleGameReset)
	})
	r.Get("/daily/leaderboard", s.handleLeaderboard)
}

// ownerID returns the authenticated user ID if logged in, otherwise the
// anonymous cookie identity.
func (s *Server) ownerID(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return s.ensureAnonID(w, r)
}

// session resolves the caller's session, writing a JSON error on failure.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	sess, err := s.sessions.get(r, s.ownerID(w, r))
	if err != nil {
		log.Error().Err(err).Msg("start game session")
		http.Error(w, `{"error":"game_unavailable"}`, http.StatusInternalServerError)
		return nil
	}
	return sess
}

// ----------------------------- payloads ------------------------------------

type countryRes struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type guessRes struct {
	Country          countryRes `json:"country"`
	DistanceMeters   int        `json:"distanceMeters"`
	DistanceKm       int        `json:"distanceKm"`
	DistanceMiles    int        `json:"distanceMiles"`
	ProximityPercent int        `json:"proximityPercent"`
	Direction        string     `json:"direction"`
	Rotation         float64    `json:"rotation"`
}

type stateRes struct {
	Date             string       `json:"date"`
	Phase            string       `json:"phase"` // playing | won | lost
	GuessInput       string       `json:"guessInput"`
	Suggestions      []countryRes `json:"suggestions"`
	Guesses          []guessRes   `json:"guesses"`
	GuessesRemaining int          `json:"guessesRemaining"`
	PersistDegraded  bool         `json:"persistDegraded,omitempty"`

	// Target and Summary are revealed only once the game is finished.
	Target  *countryRes `json:"target,omitempty"`
	Summary string      `json:"summary,omitempty"`
}

// renderState converts an engine snapshot into the wire shape.
func renderState(date string, st game.State) stateRes {
	res := stateRes{
		Date:             date,
		Phase:            st.Phase(),
		GuessInput:       st.GuessInput,
		Suggestions:      make([]countryRes, 0, len(st.Suggestions)),
		Guesses:          make([]guessRes, 0, len(st.Guesses)),
		GuessesRemaining: game.MaxGuesses - len(st.Guesses),
		PersistDegraded:  st.PersistDegraded,
	}
	for _, c := range st.Suggestions {
		res.Suggestions = append(res.Suggestions, countryRes{Code: c.Code, Name: c.Name})
	}
	for _, g := range st.Guesses {
		res.Guesses = append(res.Guesses, guessRes{
			Country:          countryRes{Code: g.Country.Code, Name: g.Country.Name},
			DistanceMeters:   g.DistanceMeters,
			DistanceKm:       geo.MetersToKilometers(g.DistanceMeters),
			DistanceMiles:    geo.MetersToMiles(g.DistanceMeters),
			ProximityPercent: g.ProximityPercent,
			Direction:        g.Direction.String(),
			Rotation:         g.Direction.Rotation(),
		})
	}
	if st.Finished() {
		res.Target = &countryRes{Code: st.CountryToGuess.Code, Name: st.CountryToGuess.Name}
		res.Summary = st.Summary(date)
	}
	if res.GuessesRemaining < 0 {
		res.GuessesRemaining = 0
	}
	return res
}

// ----------------------------- handlers ------------------------------------

// handleGameState returns the caller's current game, starting today's game
// (or resuming the persisted one) on first access.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(renderState(sess.engine.Date(), sess.engine.Snapshot()))
}

type inputReq struct {
	Text string `json:"text"`
}

// handleGameInput updates the guess search text and returns the new
// suggestion list.
func (s *Server) handleGameInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	st := sess.engine.OnGuessInputChanged(req.Text)
	_ = json.NewEncoder(w).Encode(renderState(sess.engine.Date(), st))
}

// handleGameGuess commits the first current suggestion ("done"/enter).
// No-op when there are no suggestions.
func (s *Server) handleGameGuess(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	st := sess.engine.OnGuessSubmitted()
	s.recordIfFinished(r, sess, st)
	_ = json.NewEncoder(w).Encode(renderState(sess.engine.Date(), st))
}

type selectReq struct {
	Code string `json:"code"`
}

// handleGameSelect commits a specific suggestion by country code.
func (s *Server) handleGameSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	c, ok := catalog.ByCode(s.countries, req.Code)
	if !ok {
		http.Error(w, `{"error":"unknown_country"}`, http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	st := sess.engine.OnSuggestionSelected(c)
	s.recordIfFinished(r, sess, st)
	_ = json.NewEncoder(w).Encode(renderState(sess.engine.Date(), st))
}

// handleGameReset clears the caller's game for today. Selection is
// deterministic, so the same catalog yields the same target again.
func (s *Server) handleGameReset(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	st := sess.engine.ResetGame()

	s.sessions.mu.Lock()
	sess.recorded = false
	sess.start = time.Now()
	s.sessions.mu.Unlock()

	_ = json.NewEncoder(w).Encode(renderState(sess.engine.Date(), st))
}

// recordIfFinished writes the one-per-day result row the first time a game
// finishes, and bumps account stats for logged-in players. Best effort;
// failures are logged, never surfaced.
func (s *Server) recordIfFinished(r *http.Request, sess *session, st game.State) {
	if !st.Finished() {
		return
	}

	s.sessions.mu.Lock()
	if sess.recorded {
		s.sessions.mu.Unlock()
		return
	}
	sess.recorded = true
	elapsed := int(time.Since(sess.start).Milliseconds())
	s.sessions.mu.Unlock()

	owner := history.DefaultOwner
	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me != nil {
		owner = me.ID
	} else if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		owner = c.Value
	}

	won := st.HasWonGame()
	if _, err := s.db.Exec(`INSERT OR IGNORE INTO daily_results (owner, date, guesses, won, elapsed_ms)
	                        VALUES (?,?,?,?,?)`,
		owner, sess.engine.Date(), len(st.Guesses), won, elapsed); err != nil {
		log.Warn().Err(err).Str("date", sess.engine.Date()).Msg("insert daily result")
	}

	if me != nil {
		if err := s.bumpStats(me.ID, won); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
}

// bumpStats increments games played; updates wins and streak based on result.
func (s *Server) bumpStats(userID string, won bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	if _, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// ----------------------------- leaderboard ---------------------------------

// lbRow is one leaderboard entry. Owner IDs of anonymous players are
// truncated rather than exposed in full.
type lbRow struct {
	Player    string `json:"player"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

type lbRes struct {
	Date string  `json:"date"`
	Top  []lbRow `json:"top"`
}

// handleLeaderboard returns winners for the given date (default today),
// fastest first, fewest guesses as the tie-break.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := s.db.Query(`
        SELECT r.owner, COALESCE(u.username, ''), r.guesses, r.elapsed_ms
        FROM daily_results r
        LEFT JOIN users u ON u.id = r.owner
        WHERE r.date=? AND r.won=1
        ORDER BY r.elapsed_ms ASC, r.guesses ASC, r.created_at ASC
        LIMIT 20`, date)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	out := lbRes{Date: date, Top: []lbRow{}}
	for rows.Next() {
		var owner, username string
		var row lbRow
		if err := rows.Scan(&owner, &username, &row.Guesses, &row.ElapsedMs); err != nil {
			continue
		}
		row.Player = username
		if row.Player == "" {
			if len(owner) > 8 {
				owner = owner[:8]
			}
			row.Player = "anon-" + owner
		}
		out.Top = append(out.Top, row)
	}
	_ = json.NewEncoder(w).Encode(out)
}
