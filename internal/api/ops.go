package api

import (
	"image/color"
	"net/http"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/spriteforge/spriteforge"
)

// maxUploadBytes caps decoded request bodies; sprite sources are small.
const maxUploadBytes = 32 << 20

// readBuffer decodes the request body (an encoded image) into a buffer.
func readBuffer(w http.ResponseWriter, r *http.Request) (*spriteforge.PixelBuffer, bool) {
	buf, err := spriteforge.DecodeImage(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "request body is not a decodable image", "BAD_IMAGE")
		return nil, false
	}
	return buf, true
}

// writeBuffer replies with the buffer encoded as PNG.
func writeBuffer(w http.ResponseWriter, buf *spriteforge.PixelBuffer) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_ = spriteforge.EncodePNG(w, buf)
}

// parseHexColor accepts "#RRGGBB" or "RRGGBB".
func parseHexColor(s string) (color.NRGBA, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// sliceHandler partitions an uploaded sheet and returns per-cell frame
// metadata (dimensions, origins, content bounds). With directional=true
// the 8 canonical rows map to compass directions.
func sliceHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sheet, ok := readBuffer(w, r)
		if !ok {
			return
		}

		spec := spriteforge.GridSpec{
			Columns: queryInt(r, "columns", 1),
			Rows:    queryInt(r, "rows", 1),
		}
		directional := r.URL.Query().Get("directional") == "true"

		var frames []*spriteforge.Frame
		var err error
		if directional {
			var set *spriteforge.DirectionSet8
			set, err = spriteforge.SliceDirections(sheet, spec)
			if err == nil {
				resp := directionalSliceResponse(set, sheet, spec)
				WriteJSON(w, http.StatusOK, resp)
				return
			}
		} else {
			frames, err = spriteforge.Slice(sheet, spec)
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}

		cw, ch := spec.CellSize(sheet.Width(), sheet.Height())
		resp := SliceResponse{
			Columns: spec.Columns, Rows: spec.Rows,
			CellWidth: cw, CellHeight: ch,
			Frames: []FrameResponse{},
		}
		for _, f := range frames {
			resp.Frames = append(resp.Frames, frameResponse("", 0, f))
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

func frameResponse(direction string, seq int, f *spriteforge.Frame) FrameResponse {
	return FrameResponse{
		Direction: direction,
		Seq:       seq,
		OriginX:   f.OriginX,
		OriginY:   f.OriginY,
		Width:     f.Width,
		Height:    f.Height,
		Bounds:    boundsResponse(f.ContentBounds),
	}
}

func directionalSliceResponse(set *spriteforge.DirectionSet8, sheet *spriteforge.PixelBuffer, spec spriteforge.GridSpec) SliceResponse {
	cw, ch := spec.CellSize(sheet.Width(), sheet.Height())
	resp := SliceResponse{
		Columns: spec.Columns, Rows: spec.Rows,
		CellWidth: cw, CellHeight: ch,
		Frames: []FrameResponse{},
	}
	for _, d := range spriteforge.Directions() {
		for seq, f := range set.Frames(d) {
			resp.Frames = append(resp.Frames, frameResponse(d.String(), seq, f))
		}
	}
	return resp
}

// chromaKeyHandler removes a flat background color from the uploaded
// image; an optional halo radius dilates the resulting transparency to
// eat anti-aliased fringes.
func chromaKeyHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buf, ok := readBuffer(w, r)
		if !ok {
			return
		}

		target, err := parseHexColor(r.URL.Query().Get("color"))
		if err != nil {
			WriteError(w, http.StatusBadRequest, "color must be a hex color like 00FF00", "BAD_COLOR")
			return
		}
		tolerance, _ := strconv.ParseFloat(r.URL.Query().Get("tolerance"), 64)

		out := spriteforge.ChromaKey(buf, target, tolerance)
		if halo := queryInt(r, "halo", 0); halo > 0 {
			out = spriteforge.RemoveHalo(out, halo)
		}
		writeBuffer(w, out)
	}
}

func parseAligns(r *http.Request) (spriteforge.HAlign, spriteforge.VAlign) {
	h := spriteforge.AlignCenter
	switch r.URL.Query().Get("halign") {
	case "left":
		h = spriteforge.AlignLeft
	case "right":
		h = spriteforge.AlignRight
	}
	v := spriteforge.AlignMiddle
	switch r.URL.Query().Get("valign") {
	case "top":
		v = spriteforge.AlignTop
	case "bottom":
		v = spriteforge.AlignBottom
	}
	return h, v
}

// cropHandler crops and rescales the uploaded image into a fixed-size
// canvas around its detected content bounds.
func cropHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buf, ok := readBuffer(w, r)
		if !ok {
			return
		}

		tw := queryInt(r, "target_width", 0)
		th := queryInt(r, "target_height", 0)
		if tw < 1 || th < 1 {
			WriteError(w, http.StatusBadRequest, "target_width and target_height are required", "BAD_TARGET")
			return
		}

		h, v := parseAligns(r)
		policy := spriteforge.CropPolicy{
			TargetWidth:  tw,
			TargetHeight: th,
			HAlign:       h,
			VAlign:       v,
			Reduction:    queryInt(r, "reduction", 0),
		}
		params := spriteforge.ComputeCropParams(buf, policy)
		writeBuffer(w, spriteforge.ApplyCrop(buf, params, policy.HAlign, policy.VAlign))
	}
}
