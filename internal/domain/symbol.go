package domain

// Box is an axis-aligned bounding box normalized to the unit square.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// Detection is one open-vocabulary detector hit, box normalized to the
// unit square.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}

// SymbolMatch records whether one expected symbol was found on the card.
type SymbolMatch struct {
	Object           string  `json:"object"`
	ExpectedPosition string  `json:"expected_position"`
	Found            bool    `json:"found"`
	Confidence       float64 `json:"confidence"`
	DetectionLabel   string  `json:"detection_label,omitempty"`
	Box              *Box    `json:"box,omitempty"`
}

// SymbolVerification aggregates zero-shot detection evidence for a
// card's expected iconography.
type SymbolVerification struct {
	ExpectedCount        int           `json:"expected_count"`
	DetectedCount        int           `json:"detected_count"`
	MatchRate            float64       `json:"match_rate"`
	Matches              []SymbolMatch `json:"matches"`
	MissingSymbols       []string      `json:"missing_symbols"`
	UnexpectedDetections []Detection   `json:"unexpected_detections"`
	Heatmap              *AttentionMap `json:"heatmap,omitempty"`
}
