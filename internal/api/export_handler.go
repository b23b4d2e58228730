package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spriteforge/spriteforge/internal/config"
)

// exportHandler composes an animation's stored frames into a sheet and
// writes it, with its layout metadata, into the assets directory.
func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		animationID := chi.URLParam(r, "id")
		anim, err := cfg.Repository.GetAnimation(r.Context(), animationID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		var req ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid export request", "BAD_REQUEST")
			return
		}
		name := req.Name
		if name == "" {
			name = anim.Name
		}
		columns := req.Columns
		if columns < 1 {
			columns = config.DefaultSheetColumns
		}

		var result *exportResult
		if anim.Directional {
			set, err := cfg.Repository.LoadDirectionSet(r.Context(), animationID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			res, err := cfg.Exporter.ExportDirectional(name, set, columns, anim.FPS, anim.Loop)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			result = &exportResult{res.SheetPath, res.LayoutPath, len(res.Layout.Animations)}
		} else {
			frames, err := cfg.Repository.LoadSequence(r.Context(), animationID, "")
			if err != nil {
				writeDomainError(w, err)
				return
			}
			res, err := cfg.Exporter.ExportAnimation(name, frames, columns, anim.FPS, anim.Loop)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			result = &exportResult{res.SheetPath, res.LayoutPath, len(res.Layout.Animations)}
		}

		WriteJSON(w, http.StatusOK, ExportResponse{
			SheetPath:  result.sheetPath,
			LayoutPath: result.layoutPath,
			Animations: result.animations,
		})
	}
}

type exportResult struct {
	sheetPath  string
	layoutPath string
	animations int
}
