package httpx

import (
	"net/http"
	"time"

	"log/slog"

	"skillswap/internal/app"
	"skillswap/internal/chat"
	"skillswap/internal/store"
	"skillswap/pkg/auth"
	"skillswap/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, logger *slog.Logger, hub *chat.Hub, db *store.Postgres) http.Handler {
	mw := NewMiddleware(cfg)

	j := auth.New(cfg.JWTSecret)
	authAPI := &AuthAPI{DB: db, JWT: j}
	usersAPI := &UsersAPI{DB: db}
	skillsAPI := &SkillsAPI{DB: db}
	sessionsAPI := &SessionsAPI{DB: db}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/api/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}))

	// WebSocket chat endpoint
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Auth endpoints
	mux.Handle("/api/auth/register", http.HandlerFunc(authAPI.Register))
	mux.Handle("/api/auth/login", http.HandlerFunc(authAPI.Login))
	mux.Handle("/api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// Profile endpoints (JWT-protected)
	mux.Handle("/api/users/profile", mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			usersAPI.Profile(w, r)
		case http.MethodPut:
			usersAPI.UpdateProfile(w, r)
		default:
			http.NotFound(w, r)
		}
	})))
	mux.Handle("/api/users/{id}", mw.Auth(http.HandlerFunc(usersAPI.Get)))

	// Skill endpoints (JWT-protected)
	mux.Handle("/api/skills", mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			skillsAPI.Create(w, r)
		case http.MethodGet:
			skillsAPI.List(w, r)
		default:
			http.NotFound(w, r)
		}
	})))
	mux.Handle("/api/skills/match", mw.Auth(http.HandlerFunc(skillsAPI.Match)))
	mux.Handle("/api/skills/{id}", mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			skillsAPI.Get(w, r)
		case http.MethodPut:
			skillsAPI.Update(w, r)
		case http.MethodDelete:
			skillsAPI.Delete(w, r)
		default:
			http.NotFound(w, r)
		}
	})))

	// Session endpoints (JWT-protected)
	mux.Handle("/api/sessions", mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			sessionsAPI.Create(w, r)
		case http.MethodGet:
			sessionsAPI.List(w, r)
		default:
			http.NotFound(w, r)
		}
	})))
	mux.Handle("/api/sessions/{id}", mw.Auth(http.HandlerFunc(sessionsAPI.Get)))
	mux.Handle("/api/sessions/{id}/status", mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.NotFound(w, r)
			return
		}
		sessionsAPI.UpdateStatus(w, r)
	})))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
