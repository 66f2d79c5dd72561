package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/arbiterhq/arbiter/internal/processor"
	"github.com/arbiterhq/arbiter/internal/store"
	"github.com/arbiterhq/arbiter/internal/transcript"
)

// Assessor runs the assessment pipeline for a submitted transcript.
// *processor.Processor satisfies it.
type Assessor interface {
	Process(ctx context.Context, sessionRef string, turns []transcript.Turn) (*processor.Assessment, error)
}

// Lister reads back stored assessment summaries. *store.Store satisfies it.
type Lister interface {
	RecentAssessments(ctx context.Context, limit int) ([]store.AssessmentSummary, error)
}

type Server struct {
	router   *chi.Mux
	port     int
	assessor Assessor
	lister   Lister
}

func NewServer(port int, apiToken string, assessor Assessor, lister Lister) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		assessor: assessor,
		lister:   lister,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/arbiter/status", s.status)

	router.Route("/api/v1/assessments", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/", s.createAssessment)
		r.Get("/", s.listAssessments)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// BearerAuthMiddleware checks the Authorization header against token.
// An empty token disables the check.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" {
				got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
				if got != token {
					writeError(w, http.StatusUnauthorized, "unauthorized")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"agent":  "arbiter",
		"status": "ready",
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
