package service

import (
	"testing"

	"github.com/lunaria/arcana/internal/domain"
)

func clipClassification(card string, confidence float64) *domain.Classification {
	match := domain.MatchResult{
		CardID:        "major-00-the-fool",
		CardName:      card,
		CanonicalName: card,
		Score:         confidence,
		Basis:         domain.BasisImage,
	}
	return &domain.Classification{
		Matches:    []domain.MatchResult{match},
		TopMatch:   &match,
		Confidence: confidence,
	}
}

func TestMergeVLMWinsOnHigherConfidence(t *testing.T) {
	clip := clipClassification("The Fool", 0.7)
	vlm := &domain.VLMAnalysis{
		Status:      domain.VLMStatusOK,
		Card:        "The Magician",
		Confidence:  0.85,
		Orientation: "reversed",
		Reasoning:   "white roses and a raised wand",
	}

	merged := MergeAnalyses(clip, vlm)
	if merged.MergeSource != domain.MergeSourceLlama {
		t.Fatalf("merge source = %q, want llama", merged.MergeSource)
	}
	if merged.TopMatch == nil || merged.TopMatch.CardName != "The Magician" {
		t.Fatalf("top match = %+v, want The Magician", merged.TopMatch)
	}
	if merged.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", merged.Confidence)
	}
	if merged.Orientation != "reversed" || merged.Reasoning == "" {
		t.Error("VLM narrative fields missing from merge")
	}
	if merged.ComponentScores.Clip == nil || *merged.ComponentScores.Clip != 0.7 {
		t.Error("clip component score not recorded")
	}
	if merged.ComponentScores.Llama == nil || *merged.ComponentScores.Llama != 0.85 {
		t.Error("llama component score not recorded")
	}
}

func TestMergeVLMErrorDegradesToClip(t *testing.T) {
	clip := clipClassification("The Fool", 0.7)
	vlm := &domain.VLMAnalysis{
		Status:     domain.VLMStatusError,
		Card:       "The Magician",
		Confidence: 0.99, // ignored on error
		Error:      "timeout",
	}

	merged := MergeAnalyses(clip, vlm)
	if merged.MergeSource != domain.MergeSourceClip {
		t.Fatalf("merge source = %q, want clip", merged.MergeSource)
	}
	if merged.TopMatch.CardName != "The Fool" || merged.Confidence != 0.7 {
		t.Fatalf("merged result diverged from pure clip: %+v", merged.TopMatch)
	}
	if merged.ComponentScores.Llama != nil {
		t.Error("failed VLM must not record a component score")
	}
	if merged.Orientation != "upright" {
		t.Errorf("orientation = %q, want upright fallback", merged.Orientation)
	}
}

func TestMergeClipWinsOnHigherConfidence(t *testing.T) {
	clip := clipClassification("The Fool", 0.9)
	vlm := &domain.VLMAnalysis{Status: domain.VLMStatusOK, Card: "The Magician", Confidence: 0.4}

	merged := MergeAnalyses(clip, vlm)
	if merged.MergeSource != domain.MergeSourceClip {
		t.Fatalf("merge source = %q, want clip", merged.MergeSource)
	}
	if merged.TopMatch.CardName != "The Fool" {
		t.Errorf("top match = %q, want The Fool", merged.TopMatch.CardName)
	}
	// The VLM still contributes narrative fields when its status is ok.
	if merged.ComponentScores.Llama == nil {
		t.Error("ok VLM should record its component score even when losing")
	}
}

func TestMergeVLMWinsWhenClipEmpty(t *testing.T) {
	clip := &domain.Classification{}
	vlm := &domain.VLMAnalysis{Status: domain.VLMStatusOK, Card: "Death", Confidence: 0.5}

	merged := MergeAnalyses(clip, vlm)
	if merged.MergeSource != domain.MergeSourceLlama || merged.TopMatch == nil || merged.TopMatch.CardName != "Death" {
		t.Fatalf("got %+v, want llama/Death", merged)
	}
	if merged.ComponentScores.Clip != nil {
		t.Error("empty clip side must not record a component score")
	}
}

func TestMergeNoVLM(t *testing.T) {
	clip := clipClassification("The Fool", 0.6)
	merged := MergeAnalyses(clip, nil)
	if merged.MergeSource != domain.MergeSourceClip || merged.Confidence != 0.6 {
		t.Fatalf("got %+v, want pure clip", merged)
	}
}

func TestMergePrefersLibraryIdentityForVLMCard(t *testing.T) {
	clip := clipClassification("The Fool", 0.7)
	magician := domain.MatchResult{
		CardID:        "major-01-the-magician",
		CardName:      "The Magician",
		CanonicalName: "The Magician",
		Score:         0.65,
		Basis:         domain.BasisText,
	}
	clip.Matches = append(clip.Matches, magician)

	vlm := &domain.VLMAnalysis{Status: domain.VLMStatusOK, Card: "The Magician", Confidence: 0.8}
	merged := MergeAnalyses(clip, vlm)
	if merged.TopMatch.CardID != "major-01-the-magician" {
		t.Errorf("top match should carry the library identity, got %+v", merged.TopMatch)
	}
	if merged.Confidence != 0.8 {
		t.Errorf("confidence = %v, want the winning side's 0.8", merged.Confidence)
	}
}
