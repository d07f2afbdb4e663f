// internal/httpserver/server.go
//
// HTTP server wiring for the Jenopardy API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/leaderboard", "/daily".
//   - Game endpoints (optional auth): mounted under /game.
//   - Auth + profile endpoints: /auth/*, /scores/me.
//   - JWT + cookie handling on top of internal/auth.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the player when a valid token is present;
//     guests can still play, but only signed-in players get their score recorded.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/jenopardy/jenopardy/internal/archive"
	"github.com/jenopardy/jenopardy/internal/auth"
	"github.com/jenopardy/jenopardy/internal/daily"
	"github.com/jenopardy/jenopardy/internal/game"
	"github.com/jenopardy/jenopardy/internal/store"
)

// Config carries the server's settings.
type Config struct {
	ClientOrigin string
	CookieName   string
	SecureCookie bool
	JWTSecret    string
	JWTTTL       time.Duration
	DailySalt    string
	Game         game.Config
}

// Server bundles router, in-memory session store, and the archive.
type Server struct {
	r        *chi.Mux
	store    store.Store
	archive  *archive.Store
	cfg      Config
	accounts auth.Accounts
	signer   auth.Signer
	picker   daily.Picker
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, ar *archive.Store, cfg Config) *Server {
	if cfg.CookieName == "" {
		cfg.CookieName = "jenopardy_token"
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 14 * 24 * time.Hour
	}
	s := &Server{
		r:        chi.NewRouter(),
		store:    st,
		archive:  ar,
		cfg:      cfg,
		accounts: auth.Accounts{Players: ar},
		signer:   auth.Signer{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTTTL},
		picker:   daily.Picker{Episodes: ar, Salt: cfg.DailySalt},
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"jenopardy","endpoints":["/health","POST /game/new","/game/{id}","/leaderboard","/daily","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/leaderboard", s.handleLeaderboard)

	// Game + daily: OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth)
		s.mountGame(r)
		s.mountDaily(r)
	})

	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- AUTH --------------------------------------

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authUser is placed into request context by the auth middleware.
type authUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

func currentUser(r *http.Request) *authUser {
	u, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	return u
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, currentUser(r))
		})
		r.Get("/scores/me", s.handleMyScores)
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := s.accounts.Signup(r.Context(), body.Username, body.Password)
	var ve auth.ValidationError
	switch {
	case errors.Is(err, archive.ErrUsernameTaken):
		writeErr(w, http.StatusConflict, "Username taken")
		return
	case errors.As(err, &ve):
		writeErr(w, http.StatusBadRequest, ve.Error())
		return
	case err != nil:
		log.Error().Err(err).Msg("signup")
		writeErr(w, http.StatusInternalServerError, "signup_failed")
		return
	}
	if !s.issueToken(w, p) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": p.ID, "username": p.Username, "createdAt": p.CreatedAt})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid_json")
		return
	}
	p, err := s.accounts.Login(r.Context(), body.Username, body.Password)
	if errors.Is(err, auth.ErrUnknownUser) || errors.Is(err, auth.ErrBadPassword) {
		writeErr(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login")
		writeErr(w, http.StatusInternalServerError, "login_failed")
		return
	}
	if !s.issueToken(w, p) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": p.ID, "username": p.Username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setCookie(w, "", time.Time{}, -1)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// issueToken signs a JWT, sets it as a cookie and mirrors it in the
// X-Auth-Token header for non-browser clients.
func (s *Server) issueToken(w http.ResponseWriter, p archive.Player) bool {
	tok, exp, err := s.signer.Sign(p.ID, p.Username)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setCookie(w, tok, exp, 0)
	w.Header().Set("X-Auth-Token", tok)
	return true
}

func (s *Server) setCookie(w http.ResponseWriter, value string, exp time.Time, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookie {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// userFromRequest resolves a token to a player that still exists.
func (s *Server) userFromRequest(r *http.Request) (*authUser, error) {
	tok := s.bearerOrCookie(r)
	if tok == "" {
		return nil, auth.ErrInvalidToken
	}
	c, err := s.signer.Parse(tok)
	if err != nil {
		return nil, err
	}
	if _, err := s.archive.PlayerByID(r.Context(), c.ID); err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &authUser{ID: c.ID, Username: c.Username}, nil
}

// withOptionalAuth decorates requests with the player if a valid JWT is present.
// It never 401s.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, err := s.userFromRequest(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth enforces a valid JWT and injects the player into the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.bearerOrCookie(r) == "" {
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		u, err := s.userFromRequest(r)
		if err != nil {
			http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
	})
}

// ------------------------------ scores -------------------------------------

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := s.archive.Leaderboard(r.Context(), 10)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleMyScores(w http.ResponseWriter, r *http.Request) {
	rows, err := s.archive.ScoresByPlayer(r.Context(), currentUser(r).ID, 10)
	if err != nil {
		log.Error().Err(err).Msg("scores")
		writeErr(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
