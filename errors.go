package spriteforge

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrNilBuffer is returned when an operation receives a nil buffer.
	ErrNilBuffer = errors.New("spriteforge: nil pixel buffer")

	// ErrEmptyFrames is returned when a composition receives no frames.
	ErrEmptyFrames = errors.New("spriteforge: no frames to compose")
)

// InvalidGridError reports grid dimensions that cannot partition a sheet:
// a non-positive column or row count, cells that resolve to less than one
// pixel, or a directional slice over a row count other than 8.
type InvalidGridError struct {
	Columns     int
	Rows        int
	SheetWidth  int
	SheetHeight int
	Reason      string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("spriteforge: invalid grid %dx%d for %dx%d sheet: %s",
		e.Columns, e.Rows, e.SheetWidth, e.SheetHeight, e.Reason)
}

// SizeMismatchError reports a frame whose dimensions differ from the
// uniform size a composition requires. Mixed sizes indicate a logic error
// upstream, not a recoverable runtime condition.
type SizeMismatchError struct {
	Index      int
	Width      int
	Height     int
	WantWidth  int
	WantHeight int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("spriteforge: frame %d is %dx%d, want %dx%d",
		e.Index, e.Width, e.Height, e.WantWidth, e.WantHeight)
}
