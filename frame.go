package spriteforge

import "fmt"

// Direction is one of the 8 compass directions of a character animation.
// The zero value is South. The declaration order below is the canonical
// sheet-row order and must be preserved wherever directions map to rows.
type Direction uint8

const (
	South Direction = iota
	SouthWest
	West
	NorthWest
	North
	NorthEast
	East
	SouthEast

	// NumDirections is the number of compass directions.
	NumDirections = 8
)

// Directions returns the 8 compass directions in canonical sheet-row order.
func Directions() [NumDirections]Direction {
	return [NumDirections]Direction{
		South, SouthWest, West, NorthWest, North, NorthEast, East, SouthEast,
	}
}

// String returns the snake_case compass label used by sheet layouts and
// export metadata.
func (d Direction) String() string {
	switch d {
	case South:
		return "south"
	case SouthWest:
		return "south_west"
	case West:
		return "west"
	case NorthWest:
		return "north_west"
	case North:
		return "north"
	case NorthEast:
		return "north_east"
	case East:
		return "east"
	case SouthEast:
		return "south_east"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection converts a compass label back to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions() {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("spriteforge: unknown direction %q", s)
}

// Frame is one still animation image: a pixel buffer plus its logical
// placement in the source it was captured from and its detected content
// bounds. A Frame is immutable once produced; edits produce a new Frame.
type Frame struct {
	// Pixels is the frame's own buffer. Rendering math always uses
	// ContentBounds relative to this buffer, never OriginX/OriginY.
	Pixels *PixelBuffer

	// OriginX and OriginY record where the frame sat in its source
	// (sheet cell or timeline index) for traceability.
	OriginX int
	OriginY int

	// Width and Height mirror the buffer dimensions.
	Width  int
	Height int

	// ContentBounds is the tight bounding box of visible pixels,
	// detected at construction time.
	ContentBounds ContentBounds
}

// NewFrame wraps a buffer in a Frame, detecting its content bounds.
func NewFrame(buf *PixelBuffer, originX, originY int) *Frame {
	return &Frame{
		Pixels:        buf,
		OriginX:       originX,
		OriginY:       originY,
		Width:         buf.Width(),
		Height:        buf.Height(),
		ContentBounds: DetectBounds(buf),
	}
}

// DirectionSet8 maps each of the 8 compass directions to an ordered frame
// sequence (insertion order = playback order). A direction with no frames
// means "not yet authored" — incompleteness, never an error.
type DirectionSet8 struct {
	frames [NumDirections][]*Frame
}

// Frames returns the sequence authored for the given direction.
// The returned slice must not be mutated.
func (s *DirectionSet8) Frames(d Direction) []*Frame {
	return s.frames[d]
}

// Append adds a frame to the end of a direction's sequence.
func (s *DirectionSet8) Append(d Direction, f *Frame) {
	s.frames[d] = append(s.frames[d], f)
}

// SetFrames replaces a direction's sequence.
func (s *DirectionSet8) SetFrames(d Direction, frames []*Frame) {
	s.frames[d] = frames
}

// Len returns the number of frames authored for the given direction.
func (s *DirectionSet8) Len(d Direction) int {
	return len(s.frames[d])
}

// MaxLen returns the longest sequence length across all directions.
func (s *DirectionSet8) MaxLen() int {
	max := 0
	for _, d := range Directions() {
		if n := len(s.frames[d]); n > max {
			max = n
		}
	}
	return max
}

// Empty reports whether no direction has any frames.
func (s *DirectionSet8) Empty() bool {
	return s.MaxLen() == 0
}
