package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spriteforge/spriteforge"
	"github.com/spriteforge/spriteforge/internal/store"
)

// NewRouter assembles the studio API.
func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))

	r.Post("/sessions", createSessionHandler(cfg))
	r.Get("/sessions", listSessionsHandler(cfg))
	r.Get("/sessions/{id}", getSessionHandler(cfg))
	r.Delete("/sessions/{id}", deleteSessionHandler(cfg))

	r.Post("/sessions/{id}/animations", createAnimationHandler(cfg))
	r.Get("/sessions/{id}/animations", listAnimationsHandler(cfg))

	r.Post("/animations/{id}/frames", putFrameHandler(cfg))
	r.Get("/animations/{id}/frames", listFramesHandler(cfg))
	r.Post("/animations/{id}/capture", captureHandler(cfg))
	r.Post("/animations/{id}/export", exportHandler(cfg))

	r.Post("/ops/slice", sliceHandler(cfg))
	r.Post("/ops/chromakey", chromaKeyHandler(cfg))
	r.Post("/ops/crop", cropHandler(cfg))

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: spriteforge.Version,
			UptimeS: uptime,
		})
	}
}

// writeDomainError maps store and pipeline errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var gridErr *spriteforge.InvalidGridError
	var sizeErr *spriteforge.SizeMismatchError
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.As(err, &gridErr):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_GRID")
	case errors.As(err, &sizeErr):
		WriteError(w, http.StatusBadRequest, err.Error(), "SIZE_MISMATCH")
	case errors.Is(err, spriteforge.ErrEmptyFrames):
		WriteError(w, http.StatusBadRequest, err.Error(), "EMPTY_FRAMES")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
	}
}

func sessionResponse(s *store.Session) SessionResponse {
	return SessionResponse{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

func createSessionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}
		s, err := cfg.Repository.CreateSession(r.Context(), req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, sessionResponse(s))
	}
}

func listSessionsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions, err := cfg.Repository.ListSessions(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := SessionsResponse{Sessions: []SessionResponse{}}
		for _, s := range sessions {
			resp.Sessions = append(resp.Sessions, sessionResponse(s))
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func getSessionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := cfg.Repository.GetSession(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, sessionResponse(s))
	}
}

func deleteSessionHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Repository.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func animationResponse(a *store.Animation) AnimationResponse {
	return AnimationResponse{
		ID: a.ID, SessionID: a.SessionID, Name: a.Name,
		FPS: a.FPS, Loop: a.Loop, Directional: a.Directional,
	}
}

func createAnimationHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAnimationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			WriteError(w, http.StatusBadRequest, "name is required", "BAD_REQUEST")
			return
		}
		if req.FPS <= 0 {
			req.FPS = 8
		}

		sessionID := chi.URLParam(r, "id")
		if _, err := cfg.Repository.GetSession(r.Context(), sessionID); err != nil {
			writeDomainError(w, err)
			return
		}

		a, err := cfg.Repository.CreateAnimation(r.Context(), sessionID, req.Name, req.FPS, req.Loop, req.Directional)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, animationResponse(a))
	}
}

func listAnimationsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animations, err := cfg.Repository.ListAnimations(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := AnimationsResponse{Animations: []AnimationResponse{}}
		for _, a := range animations {
			resp.Animations = append(resp.Animations, animationResponse(a))
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}
