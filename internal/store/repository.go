package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spriteforge/spriteforge"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Repository provides session persistence on top of the database.
type Repository struct {
	conn *sql.DB
}

// NewRepository creates a Repository over an open connection.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// CreateSession inserts a new named session and returns it.
func (r *Repository) CreateSession(ctx context.Context, name string) (*Session, error) {
	id := uuid.NewString()
	_, err := r.conn.ExecContext(ctx,
		"INSERT INTO sessions (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		return nil, fmt.Errorf("store: create session: %w", err)
	}
	return r.GetSession(ctx, id)
}

// GetSession fetches a session by ID.
func (r *Repository) GetSession(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := r.conn.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM sessions WHERE id = ?", id).
		Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get session: %w", err)
	}
	return &s, nil
}

// ListSessions returns all sessions, newest first.
func (r *Repository) ListSessions(ctx context.Context) ([]*Session, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM sessions ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("store: list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("store: scan session: %w", err)
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session and, through cascading foreign keys, its
// animations and frames.
func (r *Repository) DeleteSession(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("store: delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAnimation inserts an animation into a session.
func (r *Repository) CreateAnimation(ctx context.Context, sessionID, name string, fps int, loop, directional bool) (*Animation, error) {
	id := uuid.NewString()
	_, err := r.conn.ExecContext(ctx,
		"INSERT INTO animations (id, session_id, name, fps, loop, directional) VALUES (?, ?, ?, ?, ?, ?)",
		id, sessionID, name, fps, loop, directional)
	if err != nil {
		return nil, fmt.Errorf("store: create animation: %w", err)
	}
	return r.GetAnimation(ctx, id)
}

// GetAnimation fetches an animation by ID.
func (r *Repository) GetAnimation(ctx context.Context, id string) (*Animation, error) {
	var a Animation
	err := r.conn.QueryRowContext(ctx,
		"SELECT id, session_id, name, fps, loop, directional, created_at FROM animations WHERE id = ?", id).
		Scan(&a.ID, &a.SessionID, &a.Name, &a.FPS, &a.Loop, &a.Directional, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get animation: %w", err)
	}
	return &a, nil
}

// ListAnimations returns a session's animations in creation order.
func (r *Repository) ListAnimations(ctx context.Context, sessionID string) ([]*Animation, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, session_id, name, fps, loop, directional, created_at FROM animations WHERE session_id = ? ORDER BY created_at",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("store: list animations: %w", err)
	}
	defer rows.Close()

	var animations []*Animation
	for rows.Next() {
		var a Animation
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Name, &a.FPS, &a.Loop, &a.Directional, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan animation: %w", err)
		}
		animations = append(animations, &a)
	}
	return animations, rows.Err()
}

// PutFrame persists one frame of an animation. The frame's pixels are
// encoded to PNG, which round-trips exact pixel values.
func (r *Repository) PutFrame(ctx context.Context, animationID, direction string, seq int, frame *spriteforge.Frame) (*StoredFrame, error) {
	png, err := spriteforge.EncodePNGBytes(frame.Pixels)
	if err != nil {
		return nil, fmt.Errorf("store: encode frame: %w", err)
	}

	sf := &StoredFrame{
		ID:          uuid.NewString(),
		AnimationID: animationID,
		Direction:   direction,
		Seq:         seq,
		OriginX:     frame.OriginX,
		OriginY:     frame.OriginY,
		PNG:         png,
	}
	_, err = r.conn.ExecContext(ctx,
		"INSERT INTO frames (id, animation_id, direction, seq, origin_x, origin_y, png) VALUES (?, ?, ?, ?, ?, ?, ?)",
		sf.ID, sf.AnimationID, sf.Direction, sf.Seq, sf.OriginX, sf.OriginY, sf.PNG)
	if err != nil {
		return nil, fmt.Errorf("store: put frame: %w", err)
	}
	return sf, nil
}

// ListFrames returns an animation's stored frames for one direction
// (empty string for flat sequences) in playback order.
func (r *Repository) ListFrames(ctx context.Context, animationID, direction string) ([]*StoredFrame, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, animation_id, direction, seq, origin_x, origin_y, png FROM frames WHERE animation_id = ? AND direction = ? ORDER BY seq",
		animationID, direction)
	if err != nil {
		return nil, fmt.Errorf("store: list frames: %w", err)
	}
	defer rows.Close()

	var frames []*StoredFrame
	for rows.Next() {
		var f StoredFrame
		if err := rows.Scan(&f.ID, &f.AnimationID, &f.Direction, &f.Seq, &f.OriginX, &f.OriginY, &f.PNG); err != nil {
			return nil, fmt.Errorf("store: scan frame: %w", err)
		}
		frames = append(frames, &f)
	}
	return frames, rows.Err()
}

// DeleteFrames clears one direction of an animation (empty string for flat
// sequences).
func (r *Repository) DeleteFrames(ctx context.Context, animationID, direction string) error {
	_, err := r.conn.ExecContext(ctx,
		"DELETE FROM frames WHERE animation_id = ? AND direction = ?", animationID, direction)
	if err != nil {
		return fmt.Errorf("store: delete frames: %w", err)
	}
	return nil
}

// DecodeFrame reconstructs the in-memory Frame from a stored record.
func (f *StoredFrame) DecodeFrame() (*spriteforge.Frame, error) {
	buf, err := spriteforge.DecodeImageBytes(f.PNG)
	if err != nil {
		return nil, fmt.Errorf("store: decode frame %s: %w", f.ID, err)
	}
	return spriteforge.NewFrame(buf, f.OriginX, f.OriginY), nil
}

// LoadSequence decodes a whole direction (or flat sequence) back into
// in-memory frames in playback order.
func (r *Repository) LoadSequence(ctx context.Context, animationID, direction string) ([]*spriteforge.Frame, error) {
	stored, err := r.ListFrames(ctx, animationID, direction)
	if err != nil {
		return nil, err
	}
	frames := make([]*spriteforge.Frame, 0, len(stored))
	for _, sf := range stored {
		f, err := sf.DecodeFrame()
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// LoadDirectionSet decodes every authored direction of a directional
// animation into a DirectionSet8.
func (r *Repository) LoadDirectionSet(ctx context.Context, animationID string) (*spriteforge.DirectionSet8, error) {
	set := &spriteforge.DirectionSet8{}
	for _, d := range spriteforge.Directions() {
		frames, err := r.LoadSequence(ctx, animationID, d.String())
		if err != nil {
			return nil, err
		}
		set.SetFrames(d, frames)
	}
	return set, nil
}
