package service

import (
	"testing"

	"github.com/lunaria/arcana/internal/domain"
)

func TestParseVLMContentPlain(t *testing.T) {
	out := parseVLMContent(`{"card": "The Tower", "confidence": 0.82, "orientation": "reversed", "reasoning": "lightning strikes a crowned tower", "visual_details": "falling figures, grey sky"}`)
	if out.Status != domain.VLMStatusOK {
		t.Fatalf("status = %q: %s", out.Status, out.Error)
	}
	if out.Card != "The Tower" || out.Confidence != 0.82 || out.Orientation != "reversed" {
		t.Fatalf("parsed %+v", out)
	}
}

func TestParseVLMContentFenced(t *testing.T) {
	content := "Here is my analysis:\n```json\n{\"card\": \"Death\", \"confidence\": 0.6, \"orientation\": \"upright\", \"reasoning\": \"skeleton on a white horse\"}\n```"
	out := parseVLMContent(content)
	if out.Status != domain.VLMStatusOK || out.Card != "Death" {
		t.Fatalf("parsed %+v", out)
	}
}

func TestParseVLMContentProseWrapped(t *testing.T) {
	out := parseVLMContent(`The card appears to be {"card": "The Sun", "confidence": 0.9} based on the imagery.`)
	if out.Status != domain.VLMStatusOK || out.Card != "The Sun" {
		t.Fatalf("parsed %+v", out)
	}
}

func TestParseVLMContentInvalid(t *testing.T) {
	for _, content := range []string{"", "no json here", "{broken", "```\n```"} {
		out := parseVLMContent(content)
		if out.Status != domain.VLMStatusError {
			t.Errorf("content %q: status %q, want error", content, out.Status)
		}
	}
}

func TestParseVLMContentDefaults(t *testing.T) {
	out := parseVLMContent(`{"card": "Strength", "confidence": 1.4, "orientation": "sideways"}`)
	if out.Orientation != "upright" {
		t.Errorf("orientation = %q, want upright fallback", out.Orientation)
	}
	if out.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", out.Confidence)
	}

	out = parseVLMContent(`{"card": "", "confidence": -0.2}`)
	if out.Confidence != 0 {
		t.Errorf("confidence = %v, want clamped to 0", out.Confidence)
	}
	if out.Status != domain.VLMStatusOK {
		t.Error("an empty card with ok parse is still status ok")
	}
}

func TestGetMIMEType(t *testing.T) {
	cases := map[string]string{
		"jpg":   "image/jpeg",
		"jpeg":  "image/jpeg",
		".png":  "image/png",
		"webp":  "image/webp",
		"other": "image/png",
	}
	for format, want := range cases {
		if got := getMIMEType(format); got != want {
			t.Errorf("getMIMEType(%q) = %q, want %q", format, got, want)
		}
	}
}
