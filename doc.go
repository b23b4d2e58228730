// Package spriteforge implements the frame-geometry and compositing
// pipeline of the SpriteForge sprite-authoring studio.
//
// # Overview
//
// The package operates on RGBA pixel buffers and provides the pure,
// deterministic operations that normalize raw sprite imagery into
// uniform, correctly-anchored animation frames:
//
//   - content-bounds detection ([DetectBounds])
//   - crop, recenter and rescale under alignment policies ([ComputeCropParams], [ApplyCrop])
//   - chroma-key background removal and halo-edge cleanup ([ChromaKey], [RemoveHalo])
//   - grid-based sheet slicing with directional-row mapping ([Slice], [SliceDirections])
//   - sheet composition for export ([ComposeFlat], [ComposeDirectional])
//
// # Quick Start
//
//	import "github.com/spriteforge/spriteforge"
//
//	sheet, _ := spriteforge.LoadPNG("walk.png")
//	frames, _ := spriteforge.Slice(sheet, spriteforge.GridSpec{Columns: 4, Rows: 1})
//
//	policy := spriteforge.CropPolicy{
//		Mode:         spriteforge.ModeAnimationRelative,
//		TargetWidth:  32,
//		TargetHeight: 48,
//	}
//	cropped := spriteforge.CropSequence(frames, policy)
//
//	out, _ := spriteforge.ComposeFlat(cropped, 4)
//	_ = out.SavePNG("walk_normalized.png")
//
// # Ownership
//
// Every public transform is copy-on-write: the input buffer is never
// mutated and a new buffer is always produced, so independent per-frame
// passes may run in any order (or in parallel across the frames of one
// animation) without coordination.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. All
// coordinates are whole pixels.
package spriteforge

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
