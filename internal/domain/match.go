package domain

// ScoreBasis records which embedding source produced a candidate's
// winning score. Precedence is adapter, then image, then text.
type ScoreBasis string

const (
	BasisAdapter ScoreBasis = "adapter"
	BasisImage   ScoreBasis = "image"
	BasisText    ScoreBasis = "text"
)

// ScoreComponents carries the per-source cosine similarities for one
// candidate. A nil component means the source was unavailable for the
// card, not that it scored zero.
type ScoreComponents struct {
	ImageScore   *float64 `json:"image_score"`
	TextScore    *float64 `json:"text_score"`
	AdapterScore *float64 `json:"adapter_score"`
}

// MatchResult is one ranked candidate for a query image.
type MatchResult struct {
	CardID        string          `json:"card_id"`
	CardName      string          `json:"card_name"`
	CanonicalName string          `json:"canonical_name"`
	Score         float64         `json:"score"`
	Basis         ScoreBasis      `json:"basis"`
	Components    ScoreComponents `json:"components"`
}

// Classification is the full ranked output for one query image.
type Classification struct {
	Matches    []MatchResult `json:"matches"`
	TopMatch   *MatchResult  `json:"top_match,omitempty"`
	Confidence float64       `json:"confidence"`
	Attention  *AttentionMap `json:"attention,omitempty"`
}
