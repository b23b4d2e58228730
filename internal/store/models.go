package store

// Session is a saved work-in-progress authoring session.
type Session struct {
	ID        string
	Name      string
	CreatedAt string
	UpdatedAt string
}

// Animation is a named frame sequence (or 8-direction set) inside a session.
type Animation struct {
	ID          string
	SessionID   string
	Name        string
	FPS         int
	Loop        bool
	Directional bool
	CreatedAt   string
}

// StoredFrame is a persisted frame: placement metadata plus the encoded
// pixels. PNG keeps the round trip lossless.
type StoredFrame struct {
	ID          string
	AnimationID string
	// Direction is the compass label for directional animations, empty for
	// flat sequences.
	Direction string
	Seq       int
	OriginX   int
	OriginY   int
	PNG       []byte
}
