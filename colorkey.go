package spriteforge

import "image/color"

// transparentSeed is the alpha threshold below which a pixel seeds the
// halo-removal dilation.
const transparentSeed = 128

// ChromaKey removes a flat background color: every pixel whose Euclidean
// RGB distance to target is within tolerance has its alpha set to 0.
// RGB channels are never modified, preserving anti-aliased edge color for
// later compositing. Distance is measured in 0–255 channel units.
//
// The input buffer is not mutated; a new buffer is returned.
func ChromaKey(buf *PixelBuffer, target color.NRGBA, tolerance float64) *PixelBuffer {
	out := buf.Clone()
	if tolerance < 0 {
		// No distance satisfies distance <= tolerance; squaring would
		// silently match as if the tolerance were positive.
		return out
	}
	data := out.Data()

	tol2 := tolerance * tolerance
	tr, tg, tb := float64(target.R), float64(target.G), float64(target.B)

	for i := 0; i < len(data); i += 4 {
		dr := float64(data[i+0]) - tr
		dg := float64(data[i+1]) - tg
		db := float64(data[i+2]) - tb
		if dr*dr+dg*dg+db*db <= tol2 {
			data[i+3] = 0
		}
	}
	return out
}

// RemoveHalo eats the colored fringe a chroma key leaves behind by
// dilating transparency: every pixel within Euclidean distance radius of
// an already-transparent pixel (alpha < 128) becomes transparent too.
//
// The dilation uses a circular structuring element and expands from the
// ORIGINAL seed set only — newly transparent pixels never re-seed the
// expansion, which keeps the growth bounded to the fixed radius.
//
// The input buffer is not mutated; a new buffer is returned.
func RemoveHalo(buf *PixelBuffer, radius int) *PixelBuffer {
	out := buf.Clone()
	if radius <= 0 {
		return out
	}

	w, h := out.Width(), out.Height()
	data := out.Data()

	// Pass 1: collect seeds from the original alpha values.
	seeds := make([]bool, w*h)
	for i := 0; i < w*h; i++ {
		seeds[i] = data[i*4+3] < transparentSeed
	}

	// Circular structuring element: true Euclidean distance, not
	// Chebyshev, to match the expected visual softness.
	type offset struct{ dx, dy int }
	disk := make([]offset, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				disk = append(disk, offset{dx, dy})
			}
		}
	}

	// Pass 2: union the dilated transparency set.
	cleared := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !seeds[y*w+x] {
				continue
			}
			for _, o := range disk {
				nx, ny := x+o.dx, y+o.dy
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				cleared[ny*w+nx] = true
			}
		}
	}

	// Pass 3: apply.
	for i := 0; i < w*h; i++ {
		if cleared[i] {
			data[i*4+3] = 0
		}
	}
	return out
}
