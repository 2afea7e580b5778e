package service

import (
	"math"
	"strings"
	"testing"

	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/tarot"
)

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"roses":     "rose",
		"lilies":    "lily",
		"swords":    "sword",
		"glass":     "glass",
		"lotus":     "lotus",
		"dog":       "dog",
		"is":        "is",
		"torches":   "torch",
		"boxes":     "box",
		"wands":     "wand",
		"cups":      "cup",
		"chalices":  "chalice",
		"pentacles": "pentacle",
	}
	for in, want := range cases {
		if got := singularize(in); got != want {
			t.Errorf("singularize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSymbolTermsPluralSuitNouns(t *testing.T) {
	// Plural suit nouns must land on the singular synonym-table key so
	// the expansion still fires and no mangled stems reach the detector.
	terms := map[string]bool{}
	for _, term := range symbolTerms("scattered pentacles") {
		terms[term] = true
	}
	for _, want := range []string{"pentacle", "coin", "disk", "scattered pentacle"} {
		if !terms[want] {
			t.Errorf("missing term %q in %v", want, terms)
		}
	}
	for bad := range terms {
		if strings.HasSuffix(bad, "pentacl") {
			t.Errorf("mangled stem %q reached the label set", bad)
		}
	}
}

func TestWithArticle(t *testing.T) {
	if got := withArticle("eagle"); got != "an eagle" {
		t.Errorf("got %q", got)
	}
	if got := withArticle("sword"); got != "a sword" {
		t.Errorf("got %q", got)
	}
}

func TestSymbolTermsSynonymsAndBigrams(t *testing.T) {
	terms := map[string]bool{}
	for _, term := range symbolTerms("coiled serpent") {
		terms[term] = true
	}
	for _, want := range []string{"coiled serpent", "serpent", "snake", "coiled", "coiled serpent"} {
		if !terms[want] {
			t.Errorf("missing term %q in %v", want, terms)
		}
	}
}

func TestBuildLabelSetSharedLabels(t *testing.T) {
	symbols := []tarot.Symbol{
		{Object: "white rose", Position: "left"},
		{Object: "red rose", Position: "right"},
	}
	labels, bySymbol := buildLabelSet(symbols)

	seen := map[string]int{}
	for _, l := range labels {
		seen[l]++
	}
	for l, n := range seen {
		if n > 1 {
			t.Errorf("label %q duplicated %d times", l, n)
		}
	}

	// The shared token "rose" must map back to both symbols.
	indices := bySymbol["a rose"]
	if len(indices) != 2 {
		t.Fatalf("label 'a rose' serves %v, want both symbols", indices)
	}
}

func TestNormalizeDetections(t *testing.T) {
	raw := []RawDetection{
		{Label: "a sun", Confidence: 0.9, XMin: 0, YMin: 0, XMax: 50, YMax: 25},
		{Label: "bad", Confidence: 0.5, XMin: 30, YMin: 30, XMax: 30, YMax: 40}, // zero width
	}
	dets := normalizeDetections(raw, 100, 100)
	if len(dets) != 1 {
		t.Fatalf("got %d detections, want 1 (degenerate box dropped)", len(dets))
	}
	d := dets[0]
	if d.Box.Width != 0.5 || d.Box.Height != 0.25 {
		t.Errorf("box = %+v", d.Box)
	}
	if d.Box.CenterX() != 0.25 || d.Box.CenterY() != 0.125 {
		t.Errorf("center = (%v, %v)", d.Box.CenterX(), d.Box.CenterY())
	}
}

func TestBoxSatisfiesPosition(t *testing.T) {
	topBox := domain.Box{X: 0.4, Y: 0.1, Width: 0.2, Height: 0.2}    // center (0.5, 0.2)
	bottomBox := domain.Box{X: 0.4, Y: 0.7, Width: 0.2, Height: 0.2} // center (0.5, 0.8)
	centerBox := domain.Box{X: 0.4, Y: 0.4, Width: 0.2, Height: 0.2}

	cases := []struct {
		position string
		box      domain.Box
		want     bool
	}{
		{"top", topBox, true},
		{"top of the card", bottomBox, false},
		{"bottom", bottomBox, true},
		{"upper left", domain.Box{X: 0.1, Y: 0.1, Width: 0.2, Height: 0.2}, true},
		{"upper left", domain.Box{X: 0.7, Y: 0.1, Width: 0.2, Height: 0.2}, false},
		{"center", centerBox, true},
		{"center", topBox, false},
		{"", bottomBox, true}, // no constraint accepts anything
		{"floating in the air", bottomBox, true},
	}
	for _, c := range cases {
		if got := boxSatisfiesPosition(c.position, c.box); got != c.want {
			t.Errorf("boxSatisfiesPosition(%q, %+v) = %v, want %v", c.position, c.box, got, c.want)
		}
	}
}

func TestMatchSymbolsClaimsOnce(t *testing.T) {
	symbols := []tarot.Symbol{
		{Object: "rose", Position: "top"},
		{Object: "rose", Position: "bottom"},
	}
	_, bySymbol := buildLabelSet(symbols)
	detections := []domain.Detection{
		{Label: "a rose", Confidence: 0.9, Box: domain.Box{X: 0.4, Y: 0.1, Width: 0.2, Height: 0.2}},
	}

	matches, unexpected := matchSymbols(symbols, detections, bySymbol)
	if !matches[0].Found {
		t.Fatal("top rose should claim the detection")
	}
	if matches[1].Found {
		t.Fatal("a detection may be claimed by at most one symbol")
	}
	if len(unexpected) != 0 {
		t.Errorf("unexpected = %v, want none", unexpected)
	}
}

func TestMatchSymbolsPositionGate(t *testing.T) {
	symbols := []tarot.Symbol{{Object: "sun", Position: "top"}}
	_, bySymbol := buildLabelSet(symbols)
	detections := []domain.Detection{
		// Right label, wrong half.
		{Label: "a sun", Confidence: 0.95, Box: domain.Box{X: 0.4, Y: 0.7, Width: 0.2, Height: 0.2}},
	}

	matches, unexpected := matchSymbols(symbols, detections, bySymbol)
	if matches[0].Found {
		t.Fatal("detection outside the position constraint must not match")
	}
	if len(unexpected) != 1 {
		t.Fatalf("unclaimed detection should be reported as unexpected")
	}
}

func TestMatchSymbolsPicksHighestScore(t *testing.T) {
	symbols := []tarot.Symbol{{Object: "cup", Position: ""}}
	_, bySymbol := buildLabelSet(symbols)
	detections := []domain.Detection{
		{Label: "a cup", Confidence: 0.3, Box: domain.Box{X: 0.1, Y: 0.1, Width: 0.1, Height: 0.1}},
		{Label: "a cup", Confidence: 0.8, Box: domain.Box{X: 0.6, Y: 0.6, Width: 0.1, Height: 0.1}},
	}
	matches, _ := matchSymbols(symbols, detections, bySymbol)
	if math.Abs(matches[0].Confidence-0.8) > 1e-9 {
		t.Fatalf("claimed confidence = %v, want 0.8", matches[0].Confidence)
	}
}

func TestDetectionHeatmapBounds(t *testing.T) {
	detections := []domain.Detection{
		{Label: "a sun", Confidence: 0.9, Box: domain.Box{X: 0.0, Y: 0.0, Width: 0.5, Height: 0.5}},
		{Label: "a dog", Confidence: 0.4, Box: domain.Box{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}},
	}
	m := detectionHeatmap(detections, 14)
	if m.GridSize != 14 {
		t.Fatalf("grid size = %d", m.GridSize)
	}
	if m.Stats.Max != 1 {
		t.Errorf("stats.max = %v, want 1", m.Stats.Max)
	}
	for _, row := range m.Heatmap {
		for _, v := range row {
			if v < 0 || v > 1 {
				t.Fatalf("cell %v out of [0,1]", v)
			}
		}
	}

	empty := detectionHeatmap(nil, 14)
	if empty.Stats.Max != 0 {
		t.Errorf("empty heatmap max = %v, want 0", empty.Stats.Max)
	}
}

func TestMatchRateRange(t *testing.T) {
	ann := tarot.SynthesizeAnnotation(tarot.ByName("Five of Cups"))
	_, bySymbol := buildLabelSet(ann.Symbols)
	matches, _ := matchSymbols(ann.Symbols, nil, bySymbol)

	found := 0
	for _, m := range matches {
		if m.Found {
			found++
		}
	}
	rate := float64(found) / float64(len(ann.Symbols))
	if rate != 0 {
		t.Fatalf("no detections must mean zero match rate, got %v", rate)
	}
	if len(matches) != len(ann.Symbols) {
		t.Fatalf("every expected symbol needs a match record")
	}
}
