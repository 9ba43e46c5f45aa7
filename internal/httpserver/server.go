// internal/httpserver/server.go
//
// HTTP server wiring for the quiz backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health", "/modes", "/debug/content".
//   - Play endpoints: POST /play/{mode} and /session/* bound to a session token (routes_play.go).
//
// Notes:
//   - CORS is origin-aware and credentials-enabled so the session cookie works.
//   - The server is a thin adapter: all quiz rules live in internal/quiz.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordquest/internal/content"
	"github.com/robalobadob/wordquest/internal/quiz"
	"github.com/robalobadob/wordquest/internal/store"
)

// Content is the read side of a content library.
type Content interface {
	Snapshot() content.Dataset
	Stats() map[string]int
	SourceName() string
}

// Options tune the HTTP surface.
type Options struct {
	Secret       string
	ClientOrigin string
	TokenTTL     time.Duration
	// Secure marks cookies Secure with SameSite=None, as needed behind HTTPS.
	Secure bool
	// SessionOptions are applied to every new quiz session.
	SessionOptions []quiz.Option
}

// Server bundles the router, session store and content library.
type Server struct {
	r       *chi.Mux
	store   store.Store
	content Content
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, lib Content, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, content: lib, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "wordquest",
			"content": s.content.SourceName(),
			"endpoints": []string{
				"/health", "/modes", "POST /play/{mode}", "GET /session",
				"POST /session/choice", "POST /session/spelling", "POST /session/match/pair",
				"POST /session/match/outcome", "DELETE /session",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})
	s.r.Get("/modes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, quiz.Catalog())
	})
	s.r.Get("/debug/content", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.content.Stats())
	})

	s.mountPlay()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
	})

	return s
}

// Router exposes the internal router (used by main and tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ev := log.Debug()
		if status >= 500 {
			ev = log.Error()
		}
		ev.Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
