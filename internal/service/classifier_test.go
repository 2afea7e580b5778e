package service

import (
	"math"
	"reflect"
	"testing"

	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/tarot"
)

func testEntry(t *testing.T, name string) *LibraryEntry {
	t.Helper()
	card := tarot.ByName(name)
	if card == nil {
		t.Fatalf("no card %q", name)
	}
	return &LibraryEntry{Card: card, Label: card.Name, CanonicalName: card.Name}
}

// axisVector builds a unit vector along one axis so cosine scores are
// exact and easy to stage.
func axisVector(dim, axis int, scale float32) []float32 {
	v := make([]float32, dim)
	v[axis] = scale
	return v
}

func TestBasisPrecedence(t *testing.T) {
	// Stage component scores image=0.40, text=0.55, adapter=0.50
	// against the query (1,0,0,0).
	query := axisVector(4, 0, 1)
	e := testEntry(t, "The Fool")
	e.ImageVector = axisVector(4, 0, 0.40)
	e.TextVector = axisVector(4, 0, 0.55)
	e.AdapterVector = axisVector(4, 0, 0.50)

	m := scoreEntry(query, e)
	if m.Basis != domain.BasisAdapter {
		t.Fatalf("basis = %q, want adapter", m.Basis)
	}
	if math.Abs(m.Score-0.50) > 1e-6 {
		t.Fatalf("score = %v, want 0.50", m.Score)
	}
	if m.Components.TextScore == nil || math.Abs(*m.Components.TextScore-0.55) > 1e-6 {
		t.Errorf("text component not preserved: %+v", m.Components)
	}
}

func TestBasisTextOnly(t *testing.T) {
	query := axisVector(4, 0, 1)
	e := testEntry(t, "The Fool")
	e.TextVector = axisVector(4, 0, 0.3)

	m := scoreEntry(query, e)
	if m.Basis != domain.BasisText || math.Abs(m.Score-0.3) > 1e-6 {
		t.Fatalf("got basis %q score %v, want text 0.3", m.Basis, m.Score)
	}
	if m.Components.ImageScore != nil || m.Components.AdapterScore != nil {
		t.Error("absent sources must stay nil, not zero")
	}
}

func TestBasisImageBeforeText(t *testing.T) {
	query := axisVector(4, 0, 1)
	e := testEntry(t, "The Fool")
	e.ImageVector = axisVector(4, 0, 0.2)
	e.TextVector = axisVector(4, 0, 0.9)

	m := scoreEntry(query, e)
	if m.Basis != domain.BasisImage || math.Abs(m.Score-0.2) > 1e-6 {
		t.Fatalf("got basis %q score %v, want image 0.2", m.Basis, m.Score)
	}
}

func TestBasisNoSources(t *testing.T) {
	m := scoreEntry(axisVector(4, 0, 1), testEntry(t, "The Fool"))
	if m.Score != 0 || m.Basis != domain.BasisText {
		t.Fatalf("got basis %q score %v, want text 0", m.Basis, m.Score)
	}
}

func TestRankCandidates(t *testing.T) {
	query := axisVector(4, 0, 1)
	names := []string{"The Fool", "The Magician", "The High Priestess", "The Empress", "The Emperor", "The Hierophant", "The Lovers"}
	entries := make([]*LibraryEntry, len(names))
	for i, name := range names {
		e := testEntry(t, name)
		e.TextVector = axisVector(4, 0, float32(i)*0.1)
		entries[i] = e
	}

	ranked := RankCandidates(query, entries, 5)
	if len(ranked) != 5 {
		t.Fatalf("got %d results, want 5", len(ranked))
	}
	if ranked[0].CanonicalName != "The Lovers" {
		t.Errorf("top match = %q, want The Lovers", ranked[0].CanonicalName)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Fatal("results not sorted descending")
		}
	}

	// Idempotence: the same inputs rank identically.
	again := RankCandidates(query, entries, 5)
	if !reflect.DeepEqual(ranked, again) {
		t.Error("ranking is not deterministic")
	}
}

func TestL2Normalize(t *testing.T) {
	v := l2Normalize([]float32{3, 4})
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if math.Abs(norm-1) > 1e-6 {
		t.Fatalf("norm^2 = %v, want 1", norm)
	}

	zero := l2Normalize([]float32{0, 0})
	if zero[0] != 0 || zero[1] != 0 {
		t.Error("zero vector must stay zero")
	}
}
