// internal/httpserver/routes_game.go
//
// HTTP routes for playing an episode.
// Exposes, under /game:
//   - POST /game/new            → start a game (by episode id, air date, daily or random)
//   - GET  /game/{id}           → current snapshot of a game
//   - POST /game/{id}/category  → choose a category on the board
//   - POST /game/{id}/value     → choose a value; returns the clue
//   - POST /game/{id}/answer    → grade an answer for the current clue
//   - POST /game/{id}/wager     → place the final round bid
//   - POST /game/{id}/final     → answer the final clue
//
// Games live in the session store. A game started by a signed-in player can
// only be driven by that player, and its score is recorded when the final
// clue is answered.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/archive"
	"github.com/jenopardy/jenopardy/internal/game"
	"github.com/jenopardy/jenopardy/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Get("/{id}", s.withGame(s.handleGetGame))
		r.Post("/{id}/category", s.withGame(s.handleCategory))
		r.Post("/{id}/value", s.withGame(s.handleValue))
		r.Post("/{id}/answer", s.withGame(s.handleAnswer))
		r.Post("/{id}/wager", s.withGame(s.handleWager))
		r.Post("/{id}/final", s.withGame(s.handleFinal))
	})
}

// -----------------------------------------------------------------------------
// /game/new

type newGameReq struct {
	EpisodeID int64  `json:"episodeId,omitempty"`
	Date      string `json:"date,omitempty"` // YYYY-MM-DD air date
	Daily     bool   `json:"daily,omitempty"`
}

type newGameRes struct {
	Episode archive.Episode `json:"episode"`
	Game    game.Snapshot   `json:"game"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}

	ep, err := s.chooseEpisode(r, req)
	var perr *time.ParseError
	switch {
	case errors.As(err, &perr):
		writeErr(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	case errors.Is(err, archive.ErrNotFound):
		writeErr(w, http.StatusNotFound, "episode not found")
		return
	case err != nil:
		log.Error().Err(err).Msg("choose episode")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}

	var uid int64
	if u := currentUser(r); u != nil {
		uid = u.ID
	}
	sess, err := game.NewSession(r.Context(), s.archive, s.cfg.Game, ep.ID, uid)
	if err != nil {
		gameErr(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		writeErr(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("game", sess.ID).Int64("episode", ep.ID).Int64("user", uid).Msg("game started")
	writeJSON(w, http.StatusCreated, newGameRes{Episode: ep, Game: sess.Snapshot()})
}

// chooseEpisode resolves the request to an archived episode. An empty
// request picks one at random.
func (s *Server) chooseEpisode(r *http.Request, req newGameReq) (archive.Episode, error) {
	ctx := r.Context()
	switch {
	case req.EpisodeID != 0:
		return s.archive.Episode(ctx, req.EpisodeID)
	case strings.TrimSpace(req.Date) != "":
		d, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
		if err != nil {
			return archive.Episode{}, err
		}
		return s.archive.EpisodeByDate(ctx, d)
	case req.Daily:
		return s.picker.Pick(ctx, time.Now())
	}
	return s.archive.RandomEpisode(ctx)
}

// -----------------------------------------------------------------------------
// per-game handlers

type gameHandler func(w http.ResponseWriter, r *http.Request, sess *game.Session)

// withGame loads the session named by {id} and checks that the caller may
// drive it.
func (s *Server) withGame(h gameHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
		if errors.Is(err, store.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "game not found")
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "store_error")
			return
		}
		if sess.UserID != 0 {
			if u := currentUser(r); u == nil || u.ID != sess.UserID {
				writeErr(w, http.StatusForbidden, "not your game")
				return
			}
		}
		h(w, r, sess)
	}
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

type categoryReq struct {
	Category string `json:"category"`
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req categoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := sess.SelectCategory(req.Category); err != nil {
		gameErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

type valueReq struct {
	Value int `json:"value"`
}

func (s *Server) handleValue(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req valueReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if _, err := sess.SelectValue(r.Context(), req.Value); err != nil {
		gameErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

type answerReq struct {
	Answer string `json:"answer"`
}

type answerRes struct {
	Result game.Result   `json:"result"`
	Game   game.Snapshot `json:"game"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	s.answer(w, r, sess, false)
}

func (s *Server) handleFinal(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	s.answer(w, r, sess, true)
}

func (s *Server) answer(w http.ResponseWriter, r *http.Request, sess *game.Session, final bool) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		writeErr(w, http.StatusBadRequest, "answer is empty")
		return
	}
	inFinal := sess.Snapshot().Round == game.Final
	if inFinal != final {
		writeErr(w, http.StatusConflict, game.ErrWrongState.Error())
		return
	}

	res, err := sess.Answer(r.Context(), req.Answer)
	if err != nil {
		gameErr(w, err)
		return
	}
	snap := sess.Snapshot()
	if inFinal && sess.Done() {
		s.recordScore(r, sess)
		if err := s.store.Delete(r.Context(), sess.ID); err != nil {
			log.Warn().Err(err).Str("game", sess.ID).Msg("delete finished game")
		}
	}
	writeJSON(w, http.StatusOK, answerRes{Result: res, Game: snap})
}

// recordScore writes a finished game's score for signed-in players. Failures
// are logged and the game result still returned.
func (s *Server) recordScore(r *http.Request, sess *game.Session) {
	if sess.UserID == 0 {
		return
	}
	score := sess.Score()
	if err := s.archive.WriteScore(r.Context(), sess.EpisodeID, sess.UserID, score); err != nil {
		log.Error().Err(err).Str("game", sess.ID).Int64("user", sess.UserID).Int("score", score).Msg("write score")
		return
	}
	log.Info().Str("game", sess.ID).Int64("user", sess.UserID).Int("score", score).Msg("score recorded")
}

type wagerReq struct {
	Bid int `json:"bid"`
}

func (s *Server) handleWager(w http.ResponseWriter, r *http.Request, sess *game.Session) {
	var req wagerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if err := sess.Wager(req.Bid); err != nil {
		gameErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// gameErr maps engine errors onto HTTP statuses.
func gameErr(w http.ResponseWriter, err error) {
	var invalid *game.InvalidValueError
	var src *game.SourceError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error(), "valid": invalid.Valid})
	case errors.Is(err, game.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrWrongState), errors.Is(err, game.ErrRoundOver):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.As(err, &src):
		log.Error().Err(err).Msg("data source")
		writeErr(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, game.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("game")
		writeErr(w, http.StatusInternalServerError, "game_error")
	}
}
