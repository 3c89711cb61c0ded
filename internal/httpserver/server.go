package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Ana-sthesia/shroom-game/internal/ledger"
	"github.com/Ana-sthesia/shroom-game/internal/session"
)

// Server exposes read-only status endpoints next to the bot: a service
// descriptor, a health probe and the leaderboard as JSON.
type Server struct {
	r        *chi.Mux
	registry *session.Registry
	ledger   ledger.Ledger
}

// New constructs a Server, installs middleware, and registers routes.
func New(registry *session.Registry, led ledger.Ledger) *Server {
	s := &Server{r: chi.NewRouter(), registry: registry, ledger: led}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/", s.handleStatus)
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/leaderboard", s.handleLeaderboard)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"service":       "shroom-game",
		"active_rounds": s.registry.Active(),
		"endpoints":     []string{"/health", "/leaderboard"},
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.Top(r.Context())
	if err != nil {
		log.Warn().Err(err).Msg("failed to load leaderboard")
		http.Error(w, `{"error":"leaderboard_unavailable"}`, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []ledger.RankedEntry{}
	}
	_ = json.NewEncoder(w).Encode(entries)
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
