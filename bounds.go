package spriteforge

// visibleAlpha is the alpha threshold above which a pixel counts as content.
const visibleAlpha = 10

// ContentBounds is the tight axis-aligned bounding box of the visible
// content of a buffer, in source-buffer pixel coordinates.
type ContentBounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// DetectBounds scans every pixel of the buffer and returns the minimal
// rectangle enclosing all pixels whose alpha exceeds the visibility
// threshold.
//
// A fully transparent buffer yields the whole-buffer extent {0,0,w,h},
// never a zero-size rectangle, so downstream scale computations do not
// have to special-case "no content".
func DetectBounds(buf *PixelBuffer) ContentBounds {
	w, h := buf.Width(), buf.Height()
	data := buf.Data()

	minX, minY := w, h
	maxX, maxY := -1, -1

	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			if data[row+x*4+3] > visibleAlpha {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < 0 {
		return ContentBounds{X: 0, Y: 0, Width: w, Height: h}
	}
	return ContentBounds{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}
