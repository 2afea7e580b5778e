package service

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/lunaria/arcana/internal/deck"
	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/tarot"
)

// testPNG renders a small solid image so loaders and the visual
// profiler have real pixels to work with.
func testPNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newFakeVLMServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": content}},
			},
		})
	}))
}

func newTestPipeline(t *testing.T, textBatches *atomic.Int32, vlmContent string) (*Pipeline, func()) {
	t.Helper()
	clipServer := newFakeClipServer(t, textBatches)

	clip := NewClipService(&ClipConfig{BaseURL: clipServer.URL, Model: "test-clip"})
	builder := NewLibraryBuilder(clip, nil, nil)

	var vlm *VLMService
	var vlmServer *httptest.Server
	if vlmContent != "" {
		vlmServer = newFakeVLMServer(t, vlmContent)
		vlm = NewVLMService(&VLMConfig{Model: "test-vlm", BaseURL: vlmServer.URL})
	}

	p := NewPipeline(PipelineConfig{TopK: 5}, clip, vlm, nil, builder, nil)
	cleanup := func() {
		clipServer.Close()
		if vlmServer != nil {
			vlmServer.Close()
		}
	}
	return p, cleanup
}

func TestLibraryMemoized(t *testing.T) {
	var textBatches atomic.Int32
	p, cleanup := newTestPipeline(t, &textBatches, "")
	defer cleanup()

	ctx := context.Background()
	_, entries, err := p.Library(ctx, deck.StyleRWS, tarot.ScopeMajor)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 22 {
		t.Fatalf("got %d entries, want 22", len(entries))
	}
	batches := textBatches.Load()

	_, again, err := p.Library(ctx, deck.StyleRWS, tarot.ScopeMajor)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0] != again[0] {
		t.Error("second call should return the memoized library")
	}
	if textBatches.Load() != batches {
		t.Error("memoized library must not re-embed")
	}

	// A different scope is a different library.
	_, all, err := p.Library(ctx, deck.StyleRWS, tarot.ScopeAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 78 {
		t.Fatalf("all scope: got %d entries, want 78", len(all))
	}
}

func TestLibraryRejectsBadConfig(t *testing.T) {
	var textBatches atomic.Int32
	p, cleanup := newTestPipeline(t, &textBatches, "")
	defer cleanup()

	if _, _, err := p.Library(context.Background(), "golden-dawn", tarot.ScopeMajor); err == nil {
		t.Error("unknown deck style must fail fast")
	}
	if _, _, err := p.Library(context.Background(), deck.StyleRWS, tarot.Scope("courts")); err == nil {
		t.Error("unknown scope must fail fast")
	}
}

func TestClassifyRanksDeterministically(t *testing.T) {
	var textBatches atomic.Int32
	p, cleanup := newTestPipeline(t, &textBatches, "")
	defer cleanup()

	ctx := context.Background()
	opts := AnalyzeOptions{DeckStyle: deck.StyleRWS, Scope: tarot.ScopeMajor}
	img := testPNG(t, color.RGBA{R: 200, G: 180, B: 40, A: 255})

	first, err := p.Classify(ctx, img, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Matches) != 5 {
		t.Fatalf("got %d matches, want top 5", len(first.Matches))
	}
	if first.TopMatch == nil || first.Confidence != first.Matches[0].Score {
		t.Fatal("top match and confidence must mirror the first ranked result")
	}

	second, err := p.Classify(ctx, img, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Matches {
		if first.Matches[i].CardID != second.Matches[i].CardID || first.Matches[i].Score != second.Matches[i].Score {
			t.Fatal("classification is not deterministic")
		}
	}
}

func TestAnalyzeImageHybrid(t *testing.T) {
	var textBatches atomic.Int32
	p, cleanup := newTestPipeline(t, &textBatches,
		`{"card": "The Magician", "confidence": 0.97, "orientation": "upright", "reasoning": "a raised wand and an infinity sign"}`)
	defer cleanup()

	img := testPNG(t, color.RGBA{R: 220, G: 40, B: 40, A: 255})
	got, err := p.AnalyzeImage(context.Background(), ImageRef{Data: img, Label: "query"}, AnalyzeOptions{
		DeckStyle: deck.StyleRWS,
		Scope:     tarot.ScopeMajor,
		Hybrid:    true,
	})
	if err != nil {
		t.Fatal(err)
	}

	// The staged VLM confidence dwarfs any cosine score from the fake
	// encoder, so the llama side must win the merge.
	if got.MergeSource != domain.MergeSourceLlama {
		t.Fatalf("merge source = %q, want llama", got.MergeSource)
	}
	if got.TopMatch == nil || got.TopMatch.CanonicalName != "The Magician" {
		t.Fatalf("top match = %+v", got.TopMatch)
	}
	if got.Label != "query" || got.ImagePath != "query" {
		t.Errorf("image identity fields = %q / %q", got.ImagePath, got.Label)
	}
	if got.VisualProfile == nil {
		t.Fatal("visual profile missing")
	}
	if len(got.VisualProfile.DominantColors) == 0 || got.VisualProfile.DominantColors[0] != "red" {
		t.Errorf("dominant colors = %v, want red first", got.VisualProfile.DominantColors)
	}
	if got.VisualProfile.AspectRatio != 1 {
		t.Errorf("aspect ratio = %v, want 1", got.VisualProfile.AspectRatio)
	}
}

func TestAnalyzeBatchIsolatesFailures(t *testing.T) {
	var textBatches atomic.Int32
	p, cleanup := newTestPipeline(t, &textBatches, "")
	defer cleanup()

	refs := []ImageRef{
		{Data: testPNG(t, color.RGBA{R: 10, G: 10, B: 200, A: 255}), Label: "good"},
		{Data: []byte("not an image"), Label: "bad"},
	}
	results := p.AnalyzeBatch(context.Background(), refs, AnalyzeOptions{
		DeckStyle: deck.StyleRWS,
		Scope:     tarot.ScopeMajor,
	})

	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Error != "" || results[0].TopMatch == nil {
		t.Errorf("healthy sibling affected: %+v", results[0])
	}
	if results[1].Error == "" {
		t.Error("broken image must report an error result")
	}
	if results[1].Label != "bad" {
		t.Errorf("error result lost its identity: %+v", results[1])
	}
}
