package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spriteforge/spriteforge"
	"github.com/spriteforge/spriteforge/internal/capture"
	"github.com/spriteforge/spriteforge/internal/config"
	"github.com/spriteforge/spriteforge/internal/export"
	"github.com/spriteforge/spriteforge/internal/store"
)

func testConfig(t *testing.T) ServerConfig {
	t.Helper()
	db, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ServerConfig{
		Port:       0,
		Repository: store.NewRepository(db.Conn()),
		Exporter:   export.NewExporter(t.TempDir(), logger),
		Extractor:  capture.NewExtractor(logger),
		Logger:     logger,
		StartTime:  time.Now(),
	}
}

func pngBody(t *testing.T, buf *spriteforge.PixelBuffer) *bytes.Reader {
	t.Helper()
	data, err := spriteforge.EncodePNGBytes(buf)
	if err != nil {
		t.Fatalf("EncodePNGBytes() error = %v", err)
	}
	return bytes.NewReader(data)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		r = bytes.NewReader(data)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, path, r))
	return rr
}

func TestHealthHandler(t *testing.T) {
	router := NewRouter(testConfig(t))

	rr := doJSON(t, router, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Version != spriteforge.Version {
		t.Errorf("version = %q, want %q", resp.Version, spriteforge.Version)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestSessionLifecycle(t *testing.T) {
	router := NewRouter(testConfig(t))

	rr := doJSON(t, router, http.MethodPost, "/sessions", CreateSessionRequest{Name: "knight"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var created SessionResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &created)

	rr = doJSON(t, router, http.MethodGet, "/sessions/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodDelete, "/sessions/"+created.ID, nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodGet, "/sessions/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rr.Code)
	}
}

func TestCreateSession_RequiresName(t *testing.T) {
	router := NewRouter(testConfig(t))
	rr := doJSON(t, router, http.MethodPost, "/sessions", CreateSessionRequest{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestSliceHandler(t *testing.T) {
	router := NewRouter(testConfig(t))

	sheet := spriteforge.NewPixelBuffer(8, 8)
	sheet.SetPixelRGBA(5, 1, 255, 0, 0, 255) // content in cell (1,0)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/slice?columns=2&rows=2", pngBody(t, sheet))
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp SliceResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Frames) != 4 {
		t.Fatalf("frames = %d, want 4", len(resp.Frames))
	}
	if resp.CellWidth != 4 || resp.CellHeight != 4 {
		t.Errorf("cell = %dx%d, want 4x4", resp.CellWidth, resp.CellHeight)
	}
	// Frame 1 is the top-right cell; its content pixel sits at (1,1) locally.
	if b := resp.Frames[1].Bounds; b.X != 1 || b.Y != 1 || b.Width != 1 {
		t.Errorf("frame 1 bounds = %+v", b)
	}
}

func TestSliceHandler_DirectionalRequiresEightRows(t *testing.T) {
	router := NewRouter(testConfig(t))

	sheet := spriteforge.NewPixelBuffer(8, 8)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/slice?columns=2&rows=4&directional=true", pngBody(t, sheet))
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	var resp ErrorResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp.Code != "INVALID_GRID" {
		t.Errorf("error code = %q, want INVALID_GRID", resp.Code)
	}
}

func TestChromaKeyHandler(t *testing.T) {
	router := NewRouter(testConfig(t))

	buf := spriteforge.NewPixelBuffer(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			buf.SetPixelRGBA(x, y, 0, 255, 0, 255)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/chromakey?color=00FF00&tolerance=0", pngBody(t, buf))
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	out, err := spriteforge.DecodeImageBytes(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if a := out.AlphaAt(x, y); a != 0 {
				t.Fatalf("pixel (%d,%d) alpha = %d, want 0", x, y, a)
			}
		}
	}
}

func TestChromaKeyHandler_BadColor(t *testing.T) {
	router := NewRouter(testConfig(t))

	buf := spriteforge.NewPixelBuffer(2, 2)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/chromakey?color=notacolor", pngBody(t, buf))
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCropHandler_RequiresTarget(t *testing.T) {
	router := NewRouter(testConfig(t))

	buf := spriteforge.NewPixelBuffer(4, 4)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/crop", pngBody(t, buf))
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCropHandler(t *testing.T) {
	router := NewRouter(testConfig(t))

	buf := spriteforge.NewPixelBuffer(16, 16)
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			buf.SetPixelRGBA(x, y, 255, 255, 255, 255)
		}
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ops/crop?target_width=8&target_height=8", pngBody(t, buf))
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	out, err := spriteforge.DecodeImageBytes(rr.Body.Bytes())
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Width() != 8 || out.Height() != 8 {
		t.Errorf("output = %dx%d, want 8x8", out.Width(), out.Height())
	}
}

func TestCaptureHandler_RequiresPath(t *testing.T) {
	router := NewRouter(testConfig(t))

	rr := doJSON(t, router, http.MethodPost, "/sessions", CreateSessionRequest{Name: "s"})
	var sess SessionResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &sess)

	rr = doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/animations",
		CreateAnimationRequest{Name: "run", FPS: 8})
	var anim AnimationResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &anim)

	rr = doJSON(t, router, http.MethodPost, "/animations/"+anim.ID+"/capture", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCaptureHandler_RejectsDirectional(t *testing.T) {
	router := NewRouter(testConfig(t))

	rr := doJSON(t, router, http.MethodPost, "/sessions", CreateSessionRequest{Name: "s"})
	var sess SessionResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &sess)

	rr = doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/animations",
		CreateAnimationRequest{Name: "run", FPS: 8, Directional: true})
	var anim AnimationResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &anim)

	rr = doJSON(t, router, http.MethodPost, "/animations/"+anim.ID+"/capture?path=clip.mp4", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestFrameUploadAndExport(t *testing.T) {
	cfg := testConfig(t)
	router := NewRouter(cfg)

	rr := doJSON(t, router, http.MethodPost, "/sessions", CreateSessionRequest{Name: "s"})
	var sess SessionResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &sess)

	rr = doJSON(t, router, http.MethodPost, "/sessions/"+sess.ID+"/animations",
		CreateAnimationRequest{Name: "walk", FPS: 8, Loop: true})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create animation status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var anim AnimationResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &anim)

	for seq := 0; seq < 2; seq++ {
		buf := spriteforge.NewPixelBuffer(8, 8)
		buf.SetPixelRGBA(seq, 0, 255, 0, 0, 255)

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/animations/"+anim.ID+"/frames?seq="+strconv.Itoa(seq), pngBody(t, buf))
		router.ServeHTTP(rr, req)
		if rr.Code != http.StatusCreated {
			t.Fatalf("upload frame %d status = %d, body = %s", seq, rr.Code, rr.Body.String())
		}
	}

	rr = doJSON(t, router, http.MethodPost, "/animations/"+anim.ID+"/export",
		ExportRequest{Columns: 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("export status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp ExportResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)

	if _, err := os.Stat(resp.SheetPath); err != nil {
		t.Errorf("exported sheet missing: %v", err)
	}
	if _, err := os.Stat(resp.LayoutPath); err != nil {
		t.Errorf("exported layout missing: %v", err)
	}
	if resp.Animations != 1 {
		t.Errorf("layout animations = %d, want 1", resp.Animations)
	}

	// An export request without columns falls back to the configured
	// default sheet width.
	rr = doJSON(t, router, http.MethodPost, "/animations/"+anim.ID+"/export", ExportRequest{})
	if rr.Code != http.StatusOK {
		t.Fatalf("export without columns status = %d, body = %s", rr.Code, rr.Body.String())
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	layoutData, err := os.ReadFile(resp.LayoutPath)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	var doc export.LayoutDocument
	if err := json.Unmarshal(layoutData, &doc); err != nil {
		t.Fatalf("unmarshal layout: %v", err)
	}
	if doc.Columns != config.DefaultSheetColumns {
		t.Errorf("layout columns = %d, want default %d", doc.Columns, config.DefaultSheetColumns)
	}

	// Uploading a direction to a flat animation is rejected.
	buf := spriteforge.NewPixelBuffer(8, 8)
	rr2 := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost,
		"/animations/"+anim.ID+"/frames?direction=north", pngBody(t, buf))
	router.ServeHTTP(rr2, req)
	if rr2.Code != http.StatusBadRequest {
		t.Errorf("direction on flat animation status = %d, want 400", rr2.Code)
	}
}
