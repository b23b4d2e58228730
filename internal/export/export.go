// Package export serializes composed sprite sheets into a game project's
// asset folder together with the layout metadata the game samples them by.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spriteforge/spriteforge"
	"github.com/spriteforge/spriteforge/internal/config"
)

// Exporter writes sheets and layout documents into an assets directory.
type Exporter struct {
	assetsDir string
	logger    *slog.Logger
}

// NewExporter creates an Exporter rooted at assetsDir.
func NewExporter(assetsDir string, logger *slog.Logger) *Exporter {
	return &Exporter{assetsDir: assetsDir, logger: logger}
}

// frameDuration converts an animation's FPS to a per-frame display
// duration in milliseconds. A missing or invalid FPS falls back to the
// configured default duration.
func frameDuration(fps int) int {
	if fps <= 0 {
		return config.DefaultFrameDuration
	}
	return 1000 / fps
}

// ExportAnimation composes a flat frame sequence into a sheet, writes it
// as <name>.png, and writes <name>.json describing how to sample it.
func (e *Exporter) ExportAnimation(name string, frames []*spriteforge.Frame, columns, fps int, loop bool) (*Result, error) {
	sheet, err := spriteforge.ComposeFlat(frames, columns)
	if err != nil {
		return nil, fmt.Errorf("export: compose %q: %w", name, err)
	}

	doc := LayoutDocument{
		SheetWidth:  sheet.Width(),
		SheetHeight: sheet.Height(),
		Columns:     columns,
		FrameWidth:  frames[0].Width,
		FrameHeight: frames[0].Height,
		Animations: []AnimationLayout{{
			Name:            name,
			Sheet:           name + ".png",
			StartCell:       0,
			FrameCount:      len(frames),
			FrameDurationMs: frameDuration(fps),
			Loop:            loop,
		}},
	}
	return e.write(name, sheet, doc)
}

// ExportDirectional composes a direction set into an 8-row sheet and
// writes one layout record per authored direction, with the compass label
// the game expects. Each direction's row starts at cell row*columns.
func (e *Exporter) ExportDirectional(name string, set *spriteforge.DirectionSet8, columns, fps int, loop bool) (*Result, error) {
	sheet, err := spriteforge.ComposeDirectional(set, columns)
	if err != nil {
		return nil, fmt.Errorf("export: compose %q: %w", name, err)
	}

	doc := LayoutDocument{
		SheetWidth:  sheet.Width(),
		SheetHeight: sheet.Height(),
		Columns:     columns,
		FrameWidth:  sheet.Width() / columns,
		FrameHeight: sheet.Height() / spriteforge.NumDirections,
	}
	for row, d := range spriteforge.Directions() {
		n := set.Len(d)
		if n == 0 {
			continue
		}
		if n > columns {
			n = columns
		}
		doc.Animations = append(doc.Animations, AnimationLayout{
			Name:            name,
			Sheet:           name + ".png",
			Direction:       d.String(),
			StartCell:       row * columns,
			FrameCount:      n,
			FrameDurationMs: frameDuration(fps),
			Loop:            loop,
		})
	}
	return e.write(name, sheet, doc)
}

func (e *Exporter) write(name string, sheet *spriteforge.PixelBuffer, doc LayoutDocument) (*Result, error) {
	if err := os.MkdirAll(e.assetsDir, 0755); err != nil {
		return nil, fmt.Errorf("export: create assets dir: %w", err)
	}

	sheetPath := filepath.Join(e.assetsDir, name+".png")
	if err := sheet.SavePNG(sheetPath); err != nil {
		return nil, fmt.Errorf("export: write sheet: %w", err)
	}

	layoutPath := filepath.Join(e.assetsDir, name+".json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal layout: %w", err)
	}
	if err := os.WriteFile(layoutPath, data, 0644); err != nil {
		return nil, fmt.Errorf("export: write layout: %w", err)
	}

	if e.logger != nil {
		e.logger.Info("exported animation",
			"name", name,
			"sheet", sheetPath,
			"animations", len(doc.Animations))
	}

	return &Result{SheetPath: sheetPath, LayoutPath: layoutPath, Layout: doc}, nil
}
