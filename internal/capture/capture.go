// Package capture turns video files into PixelBuffer frames for the
// authoring pipeline, using ffmpeg for decode and seeking.
package capture

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/spriteforge/spriteforge"
)

// ErrNoVideoStream is returned when a probed file has no video stream.
var ErrNoVideoStream = errors.New("capture: no video stream found")

// Options controls frame extraction.
type Options struct {
	// FPS is the sampling rate; 0 means 1 frame per second.
	FPS int
	// MaxWidth rescales wider sources down, preserving aspect; 0 keeps the
	// source width.
	MaxWidth int
	// MaxFrames stops extraction after this many frames; 0 means all.
	MaxFrames int
}

// Probe describes the video stream of a source file.
type Probe struct {
	Width      int
	Height     int
	FrameCount int
	FrameRate  float64
}

// probeDoc mirrors the ffprobe JSON fields the extractor cares about.
type probeDoc struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		NbFrames     string `json:"nb_frames"`      // string in some containers
		AvgFrameRate string `json:"avg_frame_rate"` // "num/den"
	} `json:"streams"`
}

// Extractor extracts animation frames from video files.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Probe inspects the video stream of the file at path.
func (e *Extractor) Probe(path string) (*Probe, error) {
	probeStr, err := ffmpeg.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("capture: ffprobe: %w", err)
	}
	return parseProbe([]byte(probeStr))
}

// parseProbe extracts the video-stream facts from raw ffprobe JSON.
func parseProbe(data []byte) (*Probe, error) {
	var doc probeDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("capture: parse probe: %w", err)
	}

	for _, s := range doc.Streams {
		if s.CodecType != "video" {
			continue
		}
		p := &Probe{Width: s.Width, Height: s.Height}
		if s.NbFrames != "" && s.NbFrames != "0" {
			if n, err := strconv.Atoi(s.NbFrames); err == nil {
				p.FrameCount = n
			}
		}
		if s.AvgFrameRate != "" && s.AvgFrameRate != "0/0" {
			if num, den, ok := strings.Cut(s.AvgFrameRate, "/"); ok {
				n, errN := strconv.ParseFloat(num, 64)
				d, errD := strconv.ParseFloat(den, 64)
				if errN == nil && errD == nil && d != 0 {
					p.FrameRate = n / d
				}
			}
		}
		return p, nil
	}
	return nil, ErrNoVideoStream
}

// ExtractFrames samples video frames at the requested rate and returns
// them as spriteforge Frames, origin X recording the timeline index.
//
// ffmpeg streams PNG-encoded frames over a pipe (image2pipe); each is
// decoded into an independent PixelBuffer. The context cancels the
// underlying ffmpeg process.
func (e *Extractor) ExtractFrames(ctx context.Context, path string, opts Options) ([]*spriteforge.Frame, error) {
	fps := opts.FPS
	if fps <= 0 {
		fps = 1
	}

	args := ffmpeg.KwArgs{
		"format": "image2pipe",
		"vcodec": "png",
		"r":      strconv.Itoa(fps),
	}
	if opts.MaxWidth > 0 {
		args["vf"] = fmt.Sprintf("scale=%d:-1", opts.MaxWidth)
	}

	r, w := io.Pipe()
	// Close the read side on every return path. ffmpeg's output copy blocks
	// on pipe writes until they are read or the pipe closes; leaving r open
	// after an early return would wedge cmd.Run and leak its goroutine.
	defer func() { _ = r.Close() }()

	cmd := ffmpeg.Input(path).
		Output("pipe:1", args).
		WithOutput(w).
		Silent(true)
	cmd.Context = ctx

	go func() {
		// The reader side sees either a clean EOF or the run error.
		w.CloseWithError(cmd.Run())
	}()

	frames, err := decodeFrameStream(r, opts.MaxFrames)
	if err != nil {
		return nil, err
	}

	if e.logger != nil {
		e.logger.Info("extracted frames",
			"path", path, "frames", len(frames), "fps", fps)
	}
	return frames, nil
}

// decodeFrameStream decodes back-to-back PNG images from r into frames,
// origin X recording the timeline index. maxFrames > 0 stops early; a
// clean or truncated end of stream ends decoding without error.
func decodeFrameStream(r io.Reader, maxFrames int) ([]*spriteforge.Frame, error) {
	var frames []*spriteforge.Frame
	reader := bufio.NewReader(r)
	for index := 0; ; index++ {
		if maxFrames > 0 && len(frames) >= maxFrames {
			break
		}

		img, err := png.Decode(reader)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("capture: decode frame %d: %w", index, err)
		}

		buf := spriteforge.FromImage(img)
		frames = append(frames, spriteforge.NewFrame(buf, index, 0))
	}

	if len(frames) == 0 {
		return nil, errors.New("capture: no frames extracted")
	}
	return frames, nil
}
