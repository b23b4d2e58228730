package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spriteforge/spriteforge/internal/capture"
)

// captureHandler samples frames from a server-local video file and stores
// them as the animation's flat sequence, seq following the timeline order.
// Query parameters: path (required), fps, max_width, max_frames.
func captureHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animationID := chi.URLParam(r, "id")
		anim, err := cfg.Repository.GetAnimation(r.Context(), animationID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if anim.Directional {
			WriteError(w, http.StatusBadRequest, "capture targets flat animations; author directions individually", "BAD_TARGET")
			return
		}

		path := r.URL.Query().Get("path")
		if path == "" {
			WriteError(w, http.StatusBadRequest, "path is required", "BAD_REQUEST")
			return
		}

		opts := capture.Options{
			FPS:       queryInt(r, "fps", 0),
			MaxWidth:  queryInt(r, "max_width", 0),
			MaxFrames: queryInt(r, "max_frames", 0),
		}
		frames, err := cfg.Extractor.ExtractFrames(r.Context(), path, opts)
		if err != nil {
			WriteError(w, http.StatusUnprocessableEntity, err.Error(), "CAPTURE_FAILED")
			return
		}

		// Replace the sequence rather than appending: re-capturing the same
		// source should not duplicate frames.
		if err := cfg.Repository.DeleteFrames(r.Context(), animationID, ""); err != nil {
			writeDomainError(w, err)
			return
		}

		resp := []FrameResponse{}
		for seq, f := range frames {
			stored, err := cfg.Repository.PutFrame(r.Context(), animationID, "", seq, f)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			fr := frameResponse("", seq, f)
			fr.ID = stored.ID
			resp = append(resp, fr)
		}
		WriteJSON(w, http.StatusCreated, resp)
	}
}
