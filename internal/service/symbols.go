package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/logger"
	"github.com/lunaria/arcana/internal/tarot"
	"github.com/lunaria/arcana/internal/tensor"
)

const (
	maxMissingSymbols      = 5
	maxUnexpectedHits      = 5
	defaultVerifierGrid    = 14
	maxDetectorPhraseWords = 4
)

// symbolSynonyms widens detector vocabulary for archaic card language.
var symbolSynonyms = map[string][]string{
	"serpent":  {"snake"},
	"chalice":  {"cup", "goblet"},
	"blade":    {"sword"},
	"staff":    {"wand", "rod"},
	"coin":     {"pentacle", "disk"},
	"pentacle": {"coin", "disk"},
	"hound":    {"dog"},
	"steed":    {"horse"},
	"maiden":   {"woman"},
	"wreath":   {"garland"},
	"lantern":  {"lamp"},
}

var labelStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "and": true,
	"with": true, "from": true, "in": true, "on": true, "or": true,
}

// SymbolVerifier checks a card's expected iconography against zero-shot
// detections on the query image.
type SymbolVerifier struct {
	detector *DetectorService
	gridSize int
}

// NewSymbolVerifier creates a SymbolVerifier. gridSize <= 0 selects the
// default heatmap grid.
func NewSymbolVerifier(detector *DetectorService, gridSize int) *SymbolVerifier {
	if gridSize <= 0 {
		gridSize = defaultVerifierGrid
	}
	return &SymbolVerifier{detector: detector, gridSize: gridSize}
}

// normalizeObject lowercases an object phrase and strips punctuation.
func normalizeObject(object string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(object) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// singularize strips simple English plural endings. The -es ending
// only comes off whole after a sibilant stem (torches, boxes); for
// -e stems the plural marker is the bare -s (pentacles, roses).
func singularize(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ss"), strings.HasSuffix(word, "us"):
		return word
	case strings.HasSuffix(word, "es") && len(word) > 3:
		stem := word[:len(word)-2]
		if strings.HasSuffix(stem, "s") || strings.HasSuffix(stem, "x") ||
			strings.HasSuffix(stem, "z") || strings.HasSuffix(stem, "ch") ||
			strings.HasSuffix(stem, "sh") {
			return stem
		}
		return word[:len(word)-1]
	case strings.HasSuffix(word, "s") && len(word) > 2:
		return word[:len(word)-1]
	}
	return word
}

// withArticle formats a term as an English noun phrase with the correct
// indefinite article.
func withArticle(term string) string {
	if term == "" {
		return term
	}
	switch term[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an " + term
	}
	return "a " + term
}

// symbolTerms expands one object phrase into candidate detector terms:
// the phrase itself, its significant tokens, their synonyms, and
// bigrams of adjacent tokens.
func symbolTerms(object string) []string {
	norm := normalizeObject(object)
	if norm == "" {
		return nil
	}

	seen := map[string]bool{}
	var terms []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	words := strings.Fields(norm)
	if len(words) <= maxDetectorPhraseWords {
		add(norm)
	}

	var kept []string
	for _, w := range words {
		w = singularize(w)
		if labelStopwords[w] || len(w) < 3 {
			continue
		}
		kept = append(kept, w)
		add(w)
		for _, syn := range symbolSynonyms[w] {
			add(syn)
		}
	}
	for i := 0; i+1 < len(kept); i++ {
		add(kept[i] + " " + kept[i+1])
	}
	return terms
}

// buildLabelSet produces the deduplicated detector label list for a
// symbol set and the mapping from label back to the symbol indices it
// may satisfy.
func buildLabelSet(symbols []tarot.Symbol) ([]string, map[string][]int) {
	var labels []string
	bySymbol := make(map[string][]int)
	for idx, s := range symbols {
		for _, term := range symbolTerms(s.Object) {
			label := withArticle(term)
			if _, ok := bySymbol[label]; !ok {
				labels = append(labels, label)
			}
			bySymbol[label] = append(bySymbol[label], idx)
		}
	}
	return labels, bySymbol
}

// normalizeDetections converts pixel boxes to the unit square using the
// image's own dimensions, dropping degenerate boxes.
func normalizeDetections(raw []RawDetection, width, height int) []domain.Detection {
	if width <= 0 || height <= 0 {
		return nil
	}
	out := make([]domain.Detection, 0, len(raw))
	for _, d := range raw {
		w := (d.XMax - d.XMin) / float64(width)
		h := (d.YMax - d.YMin) / float64(height)
		if w <= 0 || h <= 0 {
			continue
		}
		out = append(out, domain.Detection{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box: domain.Box{
				X:      d.XMin / float64(width),
				Y:      d.YMin / float64(height),
				Width:  w,
				Height: h,
			},
		})
	}
	return out
}

// matchSymbols claims detections for expected symbols in declaration
// order. Each symbol takes the highest-scoring unclaimed detection
// whose label maps back to it and whose box center satisfies the
// symbol's position constraint.
func matchSymbols(symbols []tarot.Symbol, detections []domain.Detection, bySymbol map[string][]int) ([]domain.SymbolMatch, []domain.Detection) {
	claimed := make([]bool, len(detections))
	matches := make([]domain.SymbolMatch, 0, len(symbols))

	for idx, s := range symbols {
		best := -1
		for di, det := range detections {
			if claimed[di] {
				continue
			}
			if !labelServes(bySymbol, det.Label, idx) {
				continue
			}
			if !boxSatisfiesPosition(s.Position, det.Box) {
				continue
			}
			if best == -1 || det.Confidence > detections[best].Confidence {
				best = di
			}
		}

		match := domain.SymbolMatch{
			Object:           s.Object,
			ExpectedPosition: s.Position,
		}
		if best != -1 {
			claimed[best] = true
			det := detections[best]
			box := det.Box
			match.Found = true
			match.Confidence = det.Confidence
			match.DetectionLabel = det.Label
			match.Box = &box
		}
		matches = append(matches, match)
	}

	var unexpected []domain.Detection
	for di, det := range detections {
		if !claimed[di] {
			unexpected = append(unexpected, det)
		}
	}
	sort.SliceStable(unexpected, func(i, j int) bool {
		return unexpected[i].Confidence > unexpected[j].Confidence
	})
	if len(unexpected) > maxUnexpectedHits {
		unexpected = unexpected[:maxUnexpectedHits]
	}
	return matches, unexpected
}

func labelServes(bySymbol map[string][]int, label string, idx int) bool {
	for _, i := range bySymbol[label] {
		if i == idx {
			return true
		}
	}
	return false
}

// detectionHeatmap accumulates detection scores into every cell spanned
// by each box, for downstream reuse when transformer attention is not
// available.
func detectionHeatmap(detections []domain.Detection, gridSize int) *domain.AttentionMap {
	raw := tensor.NewGrid(gridSize)
	for _, det := range detections {
		x0 := cellIndex(det.Box.X, gridSize)
		x1 := cellIndex(det.Box.X+det.Box.Width, gridSize)
		y0 := cellIndex(det.Box.Y, gridSize)
		y1 := cellIndex(det.Box.Y+det.Box.Height, gridSize)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				raw.Add(y, x, det.Confidence)
			}
		}
	}
	return attentionMapFromGrid(raw)
}

// Verify runs zero-shot detection for a card's expected symbols and
// aggregates the evidence. A card without an annotation returns nil;
// verification is skipped, not failed.
func (v *SymbolVerifier) Verify(ctx context.Context, imageData []byte, ann *tarot.SymbolAnnotation) (*domain.SymbolVerification, error) {
	if ann == nil || len(ann.Symbols) == 0 {
		return nil, nil
	}

	labels, bySymbol := buildLabelSet(ann.Symbols)
	if len(labels) == 0 {
		return nil, nil
	}

	width, height, err := imageDimensions(imageData)
	if err != nil {
		return nil, err
	}

	raw, err := v.detector.Detect(ctx, imageData, labels)
	if err != nil {
		return nil, fmt.Errorf("symbol detection failed: %w", err)
	}
	detections := normalizeDetections(raw, width, height)
	logger.With(logger.Fields{logger.FieldCount: len(detections)}).
		Debug(ctx, "detector returned %d hits for %d labels", len(detections), len(labels))

	matches, unexpected := matchSymbols(ann.Symbols, detections, bySymbol)

	found := 0
	var missing []string
	for _, m := range matches {
		if m.Found {
			found++
		} else if len(missing) < maxMissingSymbols {
			missing = append(missing, m.Object)
		}
	}

	return &domain.SymbolVerification{
		ExpectedCount:        len(ann.Symbols),
		DetectedCount:        found,
		MatchRate:            float64(found) / float64(len(ann.Symbols)),
		Matches:              matches,
		MissingSymbols:       missing,
		UnexpectedDetections: unexpected,
		Heatmap:              detectionHeatmap(detections, v.gridSize),
	}, nil
}
