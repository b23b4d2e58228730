package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spriteforge/spriteforge"
)

// putFrameHandler stores one uploaded frame in an animation slot.
// Query parameters: seq (playback position) and, for directional
// animations, direction (compass label).
func putFrameHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animationID := chi.URLParam(r, "id")
		anim, err := cfg.Repository.GetAnimation(r.Context(), animationID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		direction := r.URL.Query().Get("direction")
		if anim.Directional {
			if _, err := spriteforge.ParseDirection(direction); err != nil {
				WriteError(w, http.StatusBadRequest, "directional animation requires a valid direction", "BAD_DIRECTION")
				return
			}
		} else if direction != "" {
			WriteError(w, http.StatusBadRequest, "flat animation does not take a direction", "BAD_DIRECTION")
			return
		}

		buf, ok := readBuffer(w, r)
		if !ok {
			return
		}

		seq := queryInt(r, "seq", 0)
		frame := spriteforge.NewFrame(buf, seq, 0)
		stored, err := cfg.Repository.PutFrame(r.Context(), animationID, direction, seq, frame)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := frameResponse(direction, seq, frame)
		resp.ID = stored.ID
		WriteJSON(w, http.StatusCreated, resp)
	}
}

// listFramesHandler returns the stored frame metadata for one direction
// (or the flat sequence) of an animation.
func listFramesHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animationID := chi.URLParam(r, "id")
		if _, err := cfg.Repository.GetAnimation(r.Context(), animationID); err != nil {
			writeDomainError(w, err)
			return
		}

		direction := r.URL.Query().Get("direction")
		stored, err := cfg.Repository.ListFrames(r.Context(), animationID, direction)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		frames := []FrameResponse{}
		for _, sf := range stored {
			f, err := sf.DecodeFrame()
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := frameResponse(sf.Direction, sf.Seq, f)
			resp.ID = sf.ID
			frames = append(frames, resp)
		}
		WriteJSON(w, http.StatusOK, frames)
	}
}
