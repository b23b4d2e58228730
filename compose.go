package spriteforge

// blit copies a frame's buffer into dst at the given cell origin.
// Source frames are never mutated.
func blit(dst *PixelBuffer, f *Frame, x, y int) {
	src := f.Pixels
	w := src.Width()
	for row := 0; row < src.Height(); row++ {
		srcOff := row * w * 4
		dstOff := ((y+row)*dst.Width() + x) * 4
		copy(dst.Data()[dstOff:dstOff+w*4], src.Data()[srcOff:srcOff+w*4])
	}
}

// checkUniform verifies all frames share the reference dimensions.
func checkUniform(frames []*Frame, wantW, wantH int) error {
	for i, f := range frames {
		if f.Width != wantW || f.Height != wantH {
			return &SizeMismatchError{
				Index: i, Width: f.Width, Height: f.Height,
				WantWidth: wantW, WantHeight: wantH,
			}
		}
	}
	return nil
}

// ComposeFlat arranges an ordered frame sequence into a single sheet,
// row-major with the given column count — the exact inverse of [Slice]'s
// iteration order, so a lossless slice composes back pixel-identical.
//
// All frames must share identical dimensions; a mismatch returns a
// *SizeMismatchError. Cells past the last frame stay transparent.
func ComposeFlat(frames []*Frame, columns int) (*PixelBuffer, error) {
	if len(frames) == 0 {
		return nil, ErrEmptyFrames
	}
	if columns < 1 {
		return nil, &InvalidGridError{
			Columns: columns, Rows: 0,
			SheetWidth: frames[0].Width, SheetHeight: frames[0].Height,
			Reason: "column count must be at least 1",
		}
	}

	fw, fh := frames[0].Width, frames[0].Height
	if err := checkUniform(frames, fw, fh); err != nil {
		return nil, err
	}

	rows := (len(frames) + columns - 1) / columns
	sheet := NewPixelBuffer(columns*fw, rows*fh)

	for i, f := range frames {
		blit(sheet, f, (i%columns)*fw, (i/columns)*fh)
	}
	return sheet, nil
}

// ComposeDirectional arranges a direction set into an 8-row sheet, one
// canonical-order direction per row, frames left-to-right. A direction
// with fewer frames than columns leaves its remaining cells transparent —
// incompleteness, not an error. Frames beyond the column count are not
// drawn.
func ComposeDirectional(set *DirectionSet8, columns int) (*PixelBuffer, error) {
	if set == nil || set.Empty() {
		return nil, ErrEmptyFrames
	}
	if columns < 1 {
		return nil, &InvalidGridError{
			Columns: columns, Rows: NumDirections,
			Reason: "column count must be at least 1",
		}
	}

	// Reference size comes from the first authored frame.
	var fw, fh int
	for _, d := range Directions() {
		if fs := set.Frames(d); len(fs) > 0 {
			fw, fh = fs[0].Width, fs[0].Height
			break
		}
	}
	for _, d := range Directions() {
		if err := checkUniform(set.Frames(d), fw, fh); err != nil {
			return nil, err
		}
	}

	sheet := NewPixelBuffer(columns*fw, NumDirections*fh)
	for row, d := range Directions() {
		for col, f := range set.Frames(d) {
			if col >= columns {
				break
			}
			blit(sheet, f, col*fw, row*fh)
		}
	}
	return sheet, nil
}
