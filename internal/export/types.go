package export

// AnimationLayout tells the consuming game how to sample one animation
// (or one compass direction of a directional animation) from a sheet file.
type AnimationLayout struct {
	Name            string `json:"name"`
	Sheet           string `json:"sheet"`
	Direction       string `json:"direction,omitempty"`
	StartCell       int    `json:"start_cell"`
	FrameCount      int    `json:"frame_count"`
	FrameDurationMs int    `json:"frame_duration_ms"`
	Loop            bool   `json:"loop"`
}

// LayoutDocument is the companion metadata document written next to each
// exported sheet.
type LayoutDocument struct {
	SheetWidth  int               `json:"sheet_width"`
	SheetHeight int               `json:"sheet_height"`
	Columns     int               `json:"columns"`
	FrameWidth  int               `json:"frame_width"`
	FrameHeight int               `json:"frame_height"`
	Animations  []AnimationLayout `json:"animations"`
}

// Result reports where an export landed.
type Result struct {
	SheetPath  string
	LayoutPath string
	Layout     LayoutDocument
}
