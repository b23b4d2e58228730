package capture

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

// pngStream encodes n small solid images back to back, the way ffmpeg's
// image2pipe output arrives.
func pngStream(t *testing.T, n int) []byte {
	t.Helper()
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p] = uint8(i)
			img.Pix[p+3] = 255
		}
		if err := png.Encode(&buf, img); err != nil {
			t.Fatalf("encode frame %d: %v", i, err)
		}
	}
	return buf.Bytes()
}

func TestDecodeFrameStream(t *testing.T) {
	frames, err := decodeFrameStream(bytes.NewReader(pngStream(t, 3)), 0)
	if err != nil {
		t.Fatalf("decodeFrameStream() error = %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	for i, f := range frames {
		if f.OriginX != i {
			t.Errorf("frame %d origin x = %d, want timeline index %d", i, f.OriginX, i)
		}
		if r, _, _, _ := f.Pixels.PixelRGBA(0, 0); int(r) != i {
			t.Errorf("frame %d holds image %d", i, r)
		}
	}
}

func TestDecodeFrameStream_MaxFrames(t *testing.T) {
	frames, err := decodeFrameStream(bytes.NewReader(pngStream(t, 5)), 2)
	if err != nil {
		t.Fatalf("decodeFrameStream() error = %v", err)
	}
	if len(frames) != 2 {
		t.Errorf("frames = %d, want 2 (capped)", len(frames))
	}
}

func TestDecodeFrameStream_CorruptFrame(t *testing.T) {
	// One good frame followed by garbage that is not a PNG signature.
	stream := append(pngStream(t, 1), []byte("not a png")...)

	_, err := decodeFrameStream(bytes.NewReader(stream), 0)
	if err == nil {
		t.Fatal("decodeFrameStream(corrupt) = nil error, want error")
	}
	if !strings.Contains(err.Error(), "decode frame 1") {
		t.Errorf("error = %v, want it to name frame 1", err)
	}
}

func TestDecodeFrameStream_Empty(t *testing.T) {
	if _, err := decodeFrameStream(bytes.NewReader(nil), 0); err == nil {
		t.Error("decodeFrameStream(empty) = nil error, want error")
	}
}

func TestParseProbe_VideoStream(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"codec_type": "audio"},
			{"codec_type": "video", "width": 640, "height": 480,
			 "nb_frames": "120", "avg_frame_rate": "30/1"}
		]
	}`)

	p, err := parseProbe(raw)
	if err != nil {
		t.Fatalf("parseProbe() error = %v", err)
	}
	if p.Width != 640 || p.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", p.Width, p.Height)
	}
	if p.FrameCount != 120 {
		t.Errorf("FrameCount = %d, want 120", p.FrameCount)
	}
	if p.FrameRate != 30 {
		t.Errorf("FrameRate = %v, want 30", p.FrameRate)
	}
}

func TestParseProbe_FrameRateFallback(t *testing.T) {
	// nb_frames missing: frame rate still parses from avg_frame_rate.
	raw := []byte(`{
		"streams": [
			{"codec_type": "video", "width": 320, "height": 240,
			 "avg_frame_rate": "24000/1001"}
		]
	}`)

	p, err := parseProbe(raw)
	if err != nil {
		t.Fatalf("parseProbe() error = %v", err)
	}
	if p.FrameCount != 0 {
		t.Errorf("FrameCount = %d, want 0 (unknown)", p.FrameCount)
	}
	if p.FrameRate < 23.9 || p.FrameRate > 24.0 {
		t.Errorf("FrameRate = %v, want ~23.976", p.FrameRate)
	}
}

func TestParseProbe_NoVideoStream(t *testing.T) {
	raw := []byte(`{"streams": [{"codec_type": "audio"}]}`)
	if _, err := parseProbe(raw); !errors.Is(err, ErrNoVideoStream) {
		t.Errorf("parseProbe(audio only) error = %v, want ErrNoVideoStream", err)
	}
}

func TestParseProbe_BadJSON(t *testing.T) {
	if _, err := parseProbe([]byte("{")); err == nil {
		t.Error("parseProbe(malformed) = nil error, want error")
	}
}
