package api

import (
	"encoding/json"
	"net/http"

	"github.com/spriteforge/spriteforge"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type CreateSessionRequest struct {
	Name string `json:"name"`
}

type SessionResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type SessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

type CreateAnimationRequest struct {
	Name        string `json:"name"`
	FPS         int    `json:"fps"`
	Loop        bool   `json:"loop"`
	Directional bool   `json:"directional"`
}

type AnimationResponse struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	FPS         int    `json:"fps"`
	Loop        bool   `json:"loop"`
	Directional bool   `json:"directional"`
}

type AnimationsResponse struct {
	Animations []AnimationResponse `json:"animations"`
}

type FrameResponse struct {
	ID        string         `json:"id"`
	Direction string         `json:"direction,omitempty"`
	Seq       int            `json:"seq"`
	OriginX   int            `json:"origin_x"`
	OriginY   int            `json:"origin_y"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Bounds    BoundsResponse `json:"content_bounds"`
}

type BoundsResponse struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type SliceResponse struct {
	Columns    int             `json:"columns"`
	Rows       int             `json:"rows"`
	CellWidth  int             `json:"cell_width"`
	CellHeight int             `json:"cell_height"`
	Frames     []FrameResponse `json:"frames"`
}

type ExportRequest struct {
	Name    string `json:"name"`
	Columns int    `json:"columns"`
}

type ExportResponse struct {
	SheetPath  string `json:"sheet_path"`
	LayoutPath string `json:"layout_path"`
	Animations int    `json:"animations"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func boundsResponse(b spriteforge.ContentBounds) BoundsResponse {
	return BoundsResponse{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message, code string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code})
}
