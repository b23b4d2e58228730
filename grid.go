package spriteforge

import "image"

// GridSpec describes how a sheet subdivides into an M×N grid of cells.
// Cell sizes are derived from the sheet's pixel dimensions by truncating
// division, unless explicit divider positions pin the interior boundaries.
// GridSpec itself is never persisted.
type GridSpec struct {
	Columns int
	Rows    int

	// XDividers and YDividers optionally place the interior cell
	// boundaries at explicit pixel positions, for sheets whose cells are
	// not uniform. When set, len(XDividers) must equal Columns-1 (and
	// YDividers Rows-1) and positions must be strictly increasing inside
	// the sheet extent. Empty slices mean uniform division.
	XDividers []int
	YDividers []int
}

// CellSize returns the uniform cell dimensions for a sheet of the given
// size. Division truncates: remainder pixels on the right and bottom edges
// are dropped, so sheets should be authored as exact multiples of the grid.
// Explicit dividers are ignored here; non-uniform cells have no single size.
func (g GridSpec) CellSize(sheetWidth, sheetHeight int) (cellWidth, cellHeight int) {
	return sheetWidth / g.Columns, sheetHeight / g.Rows
}

// cellEdges returns the count+1 boundary positions along one axis: uniform
// truncating division, or the explicit dividers when provided.
func cellEdges(count, size int, dividers []int) []int {
	edges := make([]int, 0, count+1)
	edges = append(edges, 0)
	if len(dividers) > 0 {
		edges = append(edges, dividers...)
		edges = append(edges, size)
		return edges
	}
	cell := size / count
	for i := 1; i <= count; i++ {
		edges = append(edges, i*cell)
	}
	return edges
}

// validDividers checks that explicit dividers partition (0, size) into
// count cells of at least one pixel each.
func validDividers(count, size int, dividers []int) bool {
	if len(dividers) != count-1 {
		return false
	}
	prev := 0
	for _, d := range dividers {
		if d <= prev || d >= size {
			return false
		}
		prev = d
	}
	return size-prev >= 1
}

// validate checks the grid against a sheet.
func (g GridSpec) validate(sheet *PixelBuffer) error {
	invalid := func(reason string) error {
		return &InvalidGridError{
			Columns: g.Columns, Rows: g.Rows,
			SheetWidth: sheet.Width(), SheetHeight: sheet.Height(),
			Reason: reason,
		}
	}

	if g.Columns < 1 || g.Rows < 1 {
		return invalid("column and row counts must be at least 1")
	}
	if len(g.XDividers) > 0 && !validDividers(g.Columns, sheet.Width(), g.XDividers) {
		return invalid("x dividers must be strictly increasing and partition the sheet into column count cells")
	}
	if len(g.YDividers) > 0 && !validDividers(g.Rows, sheet.Height(), g.YDividers) {
		return invalid("y dividers must be strictly increasing and partition the sheet into row count cells")
	}

	cw, ch := g.CellSize(sheet.Width(), sheet.Height())
	if len(g.XDividers) == 0 && cw < 1 {
		return invalid("cells resolve to less than one pixel")
	}
	if len(g.YDividers) == 0 && ch < 1 {
		return invalid("cells resolve to less than one pixel")
	}

	rw, rh := 0, 0
	if len(g.XDividers) == 0 {
		rw = sheet.Width() % g.Columns
	}
	if len(g.YDividers) == 0 {
		rh = sheet.Height() % g.Rows
	}
	if rw != 0 || rh != 0 {
		Logger().Warn("grid does not divide sheet evenly, truncating remainder",
			"columns", g.Columns, "rows", g.Rows,
			"sheet_width", sheet.Width(), "sheet_height", sheet.Height(),
			"remainder_x", rw, "remainder_y", rh)
	}
	return nil
}

// Slice partitions a sheet into Columns×Rows frames in row-major order
// (rows outer, columns inner). Every cell is extracted regardless of
// content; selection and filtering are caller concerns. Each frame's
// origin records its top-left cell position in the sheet, and its content
// bounds are detected on extraction.
func Slice(sheet *PixelBuffer, spec GridSpec) ([]*Frame, error) {
	if sheet == nil {
		return nil, ErrNilBuffer
	}
	if err := spec.validate(sheet); err != nil {
		return nil, err
	}

	xs := cellEdges(spec.Columns, sheet.Width(), spec.XDividers)
	ys := cellEdges(spec.Rows, sheet.Height(), spec.YDividers)

	frames := make([]*Frame, 0, spec.Columns*spec.Rows)
	for row := 0; row < spec.Rows; row++ {
		for col := 0; col < spec.Columns; col++ {
			x0, y0 := xs[col], ys[row]
			cell := sheet.SubBuffer(image.Rect(x0, y0, xs[col+1], ys[row+1]))
			frames = append(frames, NewFrame(cell, x0, y0))
		}
	}
	return frames, nil
}

// SliceDirections slices an 8-row sheet and assigns row i to the i-th
// direction of the canonical order (row 0 = south, row 4 = north, ...).
// A row count other than 8 is a caller error: an *InvalidGridError is
// returned and nothing is truncated or wrapped.
func SliceDirections(sheet *PixelBuffer, spec GridSpec) (*DirectionSet8, error) {
	if sheet == nil {
		return nil, ErrNilBuffer
	}
	if spec.Rows != NumDirections {
		return nil, &InvalidGridError{
			Columns: spec.Columns, Rows: spec.Rows,
			SheetWidth: sheet.Width(), SheetHeight: sheet.Height(),
			Reason: "directional slicing requires exactly 8 rows",
		}
	}

	frames, err := Slice(sheet, spec)
	if err != nil {
		return nil, err
	}

	set := &DirectionSet8{}
	dirs := Directions()
	for i, f := range frames {
		set.Append(dirs[i/spec.Columns], f)
	}
	return set, nil
}
