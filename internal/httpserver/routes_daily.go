// internal/httpserver/routes_daily.go
//
// HTTP route for the "Episode of the Day" mode.
//   - GET /daily → today's episode and whether the caller already has a score for it
//
// Selection is deterministic on date + salt (see internal/daily), so every
// player sees the same episode on a given UTC day. Playing it goes through
// POST /game/new with {"daily":true}.

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/archive"
	"github.com/jenopardy/jenopardy/internal/daily"
)

// dailyRes is returned by GET /daily.
type dailyRes struct {
	Date    string          `json:"date"`
	Episode archive.Episode `json:"episode"`
	Played  bool            `json:"played"`
}

// mountDaily registers the /daily route.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily", s.handleDaily)
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	ep, err := s.picker.Pick(r.Context(), now)
	if errors.Is(err, archive.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "archive is empty")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("daily pick")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}

	res := dailyRes{Date: daily.DateKey(now), Episode: ep}
	if u := currentUser(r); u != nil {
		// A lookup failure only hides the flag.
		if played, err := s.archive.HasScore(r.Context(), u.ID, ep.ID); err == nil {
			res.Played = played
		}
	}
	writeJSON(w, http.StatusOK, res)
}
