package domain

// VLMStatus reports whether a vision-language analysis succeeded.
type VLMStatus string

const (
	VLMStatusOK    VLMStatus = "ok"
	VLMStatusError VLMStatus = "error"
)

// VLMAnalysis is the parsed output of one vision-language model call.
type VLMAnalysis struct {
	Status        VLMStatus `json:"status"`
	Card          string    `json:"card,omitempty"`
	Confidence    float64   `json:"confidence"`
	Orientation   string    `json:"orientation,omitempty"`
	Reasoning     string    `json:"reasoning,omitempty"`
	VisualDetails string    `json:"visual_details,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// MergeSource names which side of the hybrid merge supplied the card.
type MergeSource string

const (
	MergeSourceClip  MergeSource = "clip"
	MergeSourceLlama MergeSource = "llama"
)

// ComponentScores keeps both sides' raw confidences for auditability.
// A nil entry means that side produced no usable confidence.
type ComponentScores struct {
	Clip  *float64 `json:"clip"`
	Llama *float64 `json:"llama"`
}

// VisualProfile is the low-level color and composition readout of a
// query image, independent of any model.
type VisualProfile struct {
	DominantColors []string `json:"dominant_colors"`
	Brightness     float64  `json:"brightness"`
	Contrast       float64  `json:"contrast"`
	AspectRatio    float64  `json:"aspect_ratio"`
}

// HybridAnalysis is the merged record for one analyzed image. It is
// built once and never mutated afterwards.
type HybridAnalysis struct {
	ImagePath          string              `json:"image_path"`
	Label              string              `json:"label,omitempty"`
	Matches            []MatchResult       `json:"matches"`
	TopMatch           *MatchResult        `json:"top_match,omitempty"`
	Confidence         float64             `json:"confidence"`
	Attention          *AttentionMap       `json:"attention,omitempty"`
	SymbolVerification *SymbolVerification `json:"symbol_verification,omitempty"`
	VisualProfile      *VisualProfile      `json:"visual_profile,omitempty"`
	Orientation        string              `json:"orientation"`
	Reasoning          string              `json:"reasoning,omitempty"`
	VisualDetails      string              `json:"visual_details,omitempty"`
	MergeSource        MergeSource         `json:"merge_source"`
	ComponentScores    ComponentScores     `json:"component_scores"`
	Error              string              `json:"error,omitempty"`
}
