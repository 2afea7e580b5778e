package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/lunaria/arcana/internal/deck"
	"github.com/lunaria/arcana/internal/tarot"
)

// fakeAssets is an in-memory AssetStore.
type fakeAssets struct {
	data map[string][]byte
}

func (f *fakeAssets) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := f.data[key]
	if !ok {
		return nil, fmt.Errorf("no asset %s", key)
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (f *fakeAssets) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

// hashVector derives a deterministic 4-dim vector from input bytes so
// the fake backend behaves like a (degenerate) encoder.
func hashVector(b []byte) []float32 {
	h := fnv.New32a()
	h.Write(b)
	sum := h.Sum32()
	v := make([]float32, 4)
	for i := range v {
		v[i] = float32((sum>>(8*i))&0xff) + 1
	}
	return v
}

// newFakeClipServer serves /v1/embed/text and /v1/embed/image with
// hash-derived vectors, counting text batches.
func newFakeClipServer(t *testing.T, textBatches *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/embed/text", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		textBatches.Add(1)
		resp := map[string]interface{}{}
		data := make([]map[string]interface{}, len(req.Input))
		for i, text := range req.Input {
			data[i] = map[string]interface{}{
				"embedding": hashVector([]byte(text)),
				"index":     i,
			}
		}
		resp["data"] = data
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/v1/embed/image", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Image string `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": hashVector([]byte(req.Image)),
		})
	})
	return httptest.NewServer(mux)
}

func TestComposePrompt(t *testing.T) {
	rws, _ := deck.ForStyle(deck.StyleRWS)
	fool := tarot.ByName("The Fool")
	prompt := ComposePrompt(rws, fool)

	for _, want := range []string{"Rider-Waite-Smith", "The Fool", fool.Keywords} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "The Fool (The Fool)") {
		t.Error("identical alias must not get a parenthetical cross-reference")
	}
	// Symbol snippets are capped at 4 and colors at 3.
	if n := strings.Count(prompt, "It shows "); n > 4 {
		t.Errorf("prompt carries %d symbol snippets, cap is 4", n)
	}
	if n := strings.Count(prompt, "The color "); n > 3 {
		t.Errorf("prompt carries %d color snippets, cap is 3", n)
	}
}

func TestComposePromptCrossReferencesAlias(t *testing.T) {
	thoth, _ := deck.ForStyle(deck.StyleThoth)
	prompt := ComposePrompt(thoth, tarot.ByName("Two of Pentacles"))
	if !strings.Contains(prompt, "Two of Disks (Change) (Two of Pentacles)") {
		t.Errorf("prompt lacks deck alias with canonical cross-reference:\n%s", prompt)
	}
	if !strings.Contains(prompt, "suit of Disks") {
		t.Errorf("prompt lacks deck-aliased suit:\n%s", prompt)
	}
}

func TestComposePromptDeterministic(t *testing.T) {
	mars, _ := deck.ForStyle(deck.StyleMarseille)
	card := tarot.ByName("Queen of Cups")
	if ComposePrompt(mars, card) != ComposePrompt(mars, card) {
		t.Fatal("prompt composition is not deterministic")
	}
}

func TestLibraryBuildGracefulDegradation(t *testing.T) {
	var textBatches atomic.Int32
	server := newFakeClipServer(t, &textBatches)
	defer server.Close()

	clip := NewClipService(&ClipConfig{BaseURL: server.URL, Model: "test-clip"})
	profile, _ := deck.ForStyle(deck.StyleRWS)

	// Assets exist for all majors except three.
	assets := &fakeAssets{data: map[string][]byte{}}
	missing := map[string]bool{
		"major-00-the-fool":  true,
		"major-13-death":     true,
		"major-21-the-world": true,
	}
	for _, card := range tarot.MajorArcana() {
		if missing[card.ID()] {
			continue
		}
		assets.data[profile.ImagePath(card)] = []byte(card.Name)
	}

	builder := NewLibraryBuilder(clip, assets, nil)
	entries, err := builder.Build(context.Background(), profile, tarot.ScopeMajor, AdapterFile{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 22 {
		t.Fatalf("got %d entries, want 22", len(entries))
	}

	withImage, withoutImage := 0, 0
	for _, e := range entries {
		if len(e.TextVector) == 0 {
			t.Fatalf("entry %s lacks the mandatory text vector", e.CanonicalName)
		}
		var norm float64
		for _, x := range e.TextVector {
			norm += float64(x) * float64(x)
		}
		if norm < 0.999 || norm > 1.001 {
			t.Fatalf("entry %s text vector not unit-normalized: %v", e.CanonicalName, norm)
		}
		if len(e.ImageVector) > 0 {
			withImage++
		} else {
			withoutImage++
		}
	}
	if withoutImage != 3 || withImage != 19 {
		t.Fatalf("got %d/%d with/without image vectors, want 19/3", withImage, withoutImage)
	}
}

func TestLibraryAdapterVectors(t *testing.T) {
	var textBatches atomic.Int32
	server := newFakeClipServer(t, &textBatches)
	defer server.Close()

	clip := NewClipService(&ClipConfig{BaseURL: server.URL, Model: "test-clip"})
	profile, _ := deck.ForStyle(deck.StyleRWS)

	adapters := AdapterFile{
		deck.StyleRWS: {
			"The Fool": AdapterEntry{Vector: []float32{3, 4, 0, 0}, Samples: 12},
		},
	}
	for _, cards := range adapters {
		for name, entry := range cards {
			entry.Vector = l2Normalize(entry.Vector)
			cards[name] = entry
		}
	}

	builder := NewLibraryBuilder(clip, nil, nil)
	entries, err := builder.Build(context.Background(), profile, tarot.ScopeMajor, adapters)
	if err != nil {
		t.Fatal(err)
	}

	var fool *LibraryEntry
	for _, e := range entries {
		if e.CanonicalName == "The Fool" {
			fool = e
		} else if len(e.AdapterVector) != 0 {
			t.Fatalf("%s has an adapter vector without an adapter entry", e.CanonicalName)
		}
	}
	if fool == nil || len(fool.AdapterVector) != 4 {
		t.Fatal("The Fool should carry its adapter centroid")
	}
}
