package domain

// FocusRegion is a grid cell where the encoder concentrated attention.
type FocusRegion struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Intensity float64 `json:"intensity"`
}

// HeatmapStats summarizes a normalized heatmap.
type HeatmapStats struct {
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// SymbolAlignment pairs one expected symbol with the attention the
// encoder gave its expected region.
type SymbolAlignment struct {
	Object         string  `json:"object"`
	Position       string  `json:"position"`
	AttentionScore float64 `json:"attention_score"`
	IsModelFocused bool    `json:"is_model_focused"`
}

// AttentionMap is a normalized spatial map of where the image encoder
// looked, with cell values in [0,1].
type AttentionMap struct {
	GridSize        int               `json:"grid_size"`
	Heatmap         [][]float64       `json:"heatmap"`
	Stats           HeatmapStats      `json:"stats"`
	FocusRegions    []FocusRegion     `json:"focus_regions"`
	SymbolAlignment []SymbolAlignment `json:"symbol_alignment,omitempty"`
}
