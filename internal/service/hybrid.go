package service

import (
	"github.com/lunaria/arcana/internal/domain"
)

// MergeAnalyses reconciles the embedding classifier's output with the
// VLM's card guess for the same image. It is a pure reducer: both
// inputs are complete before it runs, and a failed VLM side degrades
// the merge to the embedding-only result.
func MergeAnalyses(clip *domain.Classification, vlm *domain.VLMAnalysis) *domain.HybridAnalysis {
	out := &domain.HybridAnalysis{
		Matches:     clip.Matches,
		TopMatch:    clip.TopMatch,
		Confidence:  clip.Confidence,
		Attention:   clip.Attention,
		Orientation: "upright",
		MergeSource: domain.MergeSourceClip,
	}

	if clip.TopMatch != nil {
		c := clip.Confidence
		out.ComponentScores.Clip = &c
	}

	vlmUsable := vlm != nil && vlm.Status == domain.VLMStatusOK && vlm.Card != ""
	if vlm != nil && vlm.Status == domain.VLMStatusOK {
		// Non-card fields come from the VLM whenever it succeeded,
		// regardless of which side wins the card.
		if vlm.Orientation != "" {
			out.Orientation = vlm.Orientation
		}
		out.Reasoning = vlm.Reasoning
		out.VisualDetails = vlm.VisualDetails
	}
	if vlmUsable {
		c := vlm.Confidence
		out.ComponentScores.Llama = &c
	}

	if vlmUsable && (clip.TopMatch == nil || vlm.Confidence >= clip.Confidence) {
		out.MergeSource = domain.MergeSourceLlama
		out.TopMatch = &domain.MatchResult{
			CardName:      vlm.Card,
			CanonicalName: vlm.Card,
			Score:         vlm.Confidence,
		}
		out.Confidence = vlm.Confidence
		if out.Confidence == 0 && clip.TopMatch != nil {
			out.Confidence = clip.Confidence
		}
		// Keep the identity fields when the VLM names a card the
		// library knows.
		for i := range clip.Matches {
			if clip.Matches[i].CanonicalName == vlm.Card {
				m := clip.Matches[i]
				out.TopMatch = &m
				break
			}
		}
	}

	return out
}
