package spriteforge

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// CropMode selects how crop bounds are measured across a frame sequence.
type CropMode uint8

const (
	// ModeAnimationRelative measures content bounds once, on a designated
	// reference frame, and applies the identical crop rectangle to every
	// frame of the sequence. Relative motion between frames is preserved:
	// a walk cycle's feet stay anchored to one ground line even as the
	// silhouette bounding box shifts frame to frame.
	ModeAnimationRelative CropMode = iota

	// ModeCenterCenter measures content bounds independently per frame,
	// so every frame's content ends up centered. Relative motion between
	// frames is removed.
	ModeCenterCenter
)

// String returns a string representation of the crop mode.
func (m CropMode) String() string {
	switch m {
	case ModeAnimationRelative:
		return "animation-relative"
	case ModeCenterCenter:
		return "center-center"
	default:
		return "Unknown"
	}
}

// HAlign places scaled content horizontally within the output canvas.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign places scaled content vertically within the output canvas.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// CropPolicy describes how a frame sequence is cropped and placed into a
// fixed-size output canvas.
type CropPolicy struct {
	Mode         CropMode
	TargetWidth  int
	TargetHeight int
	HAlign       HAlign
	VAlign       VAlign

	// Reduction shrinks the detected content bounds inward by this many
	// pixels on each side before cropping, trimming stray anti-aliasing
	// fringes.
	Reduction int
}

// CropParams is a resolved crop: a source region plus the requested output
// size. Under ModeAnimationRelative one CropParams value is computed from
// the reference frame and reused for every frame of the sequence.
type CropParams struct {
	Region       image.Rectangle
	TargetWidth  int
	TargetHeight int
}

// cropConfig holds optional ApplyCrop configuration.
type cropConfig struct {
	scaler draw.Interpolator
}

// CropOption configures ApplyCrop.
type CropOption func(*cropConfig)

// WithScaler selects the interpolator used when the crop region is scaled
// to the target size. The default is [draw.NearestNeighbor], which keeps
// pixel-art edges hard. Use [draw.CatmullRom] for smooth sources.
func WithScaler(s draw.Interpolator) CropOption {
	return func(c *cropConfig) {
		c.scaler = s
	}
}

// ComputeCropParams detects the content bounds of the reference buffer,
// erodes them by policy.Reduction on each side, and records the resulting
// region together with the requested output size. No pixels are touched.
//
// A region that erosion would collapse to zero or negative size is clamped
// to a minimum of 1px. The degenerate output is visibly wrong rather than
// fatal, so the user can notice and correct the input.
func ComputeCropParams(ref *PixelBuffer, policy CropPolicy) CropParams {
	b := DetectBounds(ref)

	x := b.X + policy.Reduction
	y := b.Y + policy.Reduction
	w := b.Width - 2*policy.Reduction
	h := b.Height - 2*policy.Reduction

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if x > ref.Width()-1 {
		x = ref.Width() - 1
	}
	if y > ref.Height()-1 {
		y = ref.Height() - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return CropParams{
		Region:       image.Rect(x, y, x+w, y+h),
		TargetWidth:  policy.TargetWidth,
		TargetHeight: policy.TargetHeight,
	}
}

// ApplyCrop renders the params region of src into a new buffer of the
// params target size. The region is scaled uniformly by
// min(targetWidth/regionWidth, targetHeight/regionHeight) — aspect is
// always preserved, content is never distorted — then placed according to
// the alignment. Pixels outside the region are not sampled (hard crop).
func ApplyCrop(src *PixelBuffer, params CropParams, alignX HAlign, alignY VAlign, opts ...CropOption) *PixelBuffer {
	cfg := cropConfig{scaler: draw.NearestNeighbor}
	for _, opt := range opts {
		opt(&cfg)
	}

	region := params.Region.Intersect(src.Bounds())
	rw, rh := region.Dx(), region.Dy()
	if rw < 1 {
		rw = 1
		region.Max.X = region.Min.X + 1
	}
	if rh < 1 {
		rh = 1
		region.Max.Y = region.Min.Y + 1
	}

	tw, th := params.TargetWidth, params.TargetHeight
	scale := math.Min(float64(tw)/float64(rw), float64(th)/float64(rh))
	scaledW := int(math.Round(float64(rw) * scale))
	scaledH := int(math.Round(float64(rh) * scale))
	if scaledW < 1 {
		scaledW = 1
	}
	if scaledH < 1 {
		scaledH = 1
	}

	offX := alignOffset(tw, scaledW, int(alignX))
	offY := alignOffset(th, scaledH, int(alignY))

	// Hard crop: copy the region out first so the scaler cannot sample
	// neighboring source pixels across the region edge.
	sub := src.SubBuffer(region)

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	dr := image.Rect(offX, offY, offX+scaledW, offY+scaledH)
	cfg.scaler.Scale(dst, dr, sub.ToImage(), sub.Bounds(), draw.Src, nil)

	return FromImage(dst)
}

// alignOffset computes the placement offset for one axis. The three
// alignment enums share ordinal values: 0 = start, 1 = center, 2 = end.
func alignOffset(target, scaled, align int) int {
	switch align {
	case 1:
		return int(math.Round(float64(target-scaled) / 2))
	case 2:
		return target - scaled
	default:
		return 0
	}
}

// CropSequence crops every frame of a sequence under the given policy.
//
// Under ModeAnimationRelative the crop rectangle is computed once from the
// first frame and reused for the whole sequence; under ModeCenterCenter it
// is recomputed per frame. Input frames are never mutated.
func CropSequence(frames []*Frame, policy CropPolicy, opts ...CropOption) []*Frame {
	if len(frames) == 0 {
		return nil
	}

	out := make([]*Frame, 0, len(frames))

	var shared CropParams
	if policy.Mode == ModeAnimationRelative {
		shared = ComputeCropParams(frames[0].Pixels, policy)
	}

	for _, f := range frames {
		params := shared
		if policy.Mode == ModeCenterCenter {
			params = ComputeCropParams(f.Pixels, policy)
		}
		buf := ApplyCrop(f.Pixels, params, policy.HAlign, policy.VAlign, opts...)
		out = append(out, NewFrame(buf, f.OriginX, f.OriginY))
	}
	return out
}
