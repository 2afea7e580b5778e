package service

import (
	"math"
	"testing"

	"github.com/lunaria/arcana/internal/tarot"
	"github.com/lunaria/arcana/internal/tensor"
)

// stageAttention builds a 1-batch, 1-head attention tensor whose CLS
// row carries the given per-patch weights.
func stageAttention(t *testing.T, patches []float64) *tensor.Attention {
	t.Helper()
	tokens := len(patches) + 1
	data := make([]float64, tokens*tokens)
	copy(data[1:tokens], patches)
	att, err := tensor.NewAttention(1, 1, tokens, data)
	if err != nil {
		t.Fatal(err)
	}
	return att
}

func TestBuildAttentionMapBounds(t *testing.T) {
	// 4 patches -> 2x2 grid.
	att := stageAttention(t, []float64{0.1, 0.4, 0.2, 0.4})
	m := BuildAttentionMap(att)

	if m.GridSize != 2 {
		t.Fatalf("grid size = %d, want 2", m.GridSize)
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
	// Cells 1 and 3 share the maximum.
	if m.Heatmap[0][1] != 1 || m.Heatmap[1][1] != 1 {
		t.Errorf("heatmap = %v", m.Heatmap)
	}
}

func TestBuildAttentionMapAllZero(t *testing.T) {
	att := stageAttention(t, make([]float64, 4))
	m := BuildAttentionMap(att)
	if m.Stats.Max != 0 {
		t.Errorf("all-zero map must stay all-zero, max = %v", m.Stats.Max)
	}
	if len(m.FocusRegions) != 0 {
		t.Errorf("all-zero map has focus regions: %v", m.FocusRegions)
	}
}

func TestFocusRegionsSortedAndCapped(t *testing.T) {
	// 16 patches -> 4x4 grid, 10 cells at the max.
	patches := make([]float64, 16)
	for i := 0; i < 10; i++ {
		patches[i] = 1.0
	}
	patches[12] = 0.5 // below threshold after normalization

	m := BuildAttentionMap(stageAttention(t, patches))
	if len(m.FocusRegions) != 8 {
		t.Fatalf("got %d focus regions, want cap of 8", len(m.FocusRegions))
	}
	for i := 1; i < len(m.FocusRegions); i++ {
		if m.FocusRegions[i].Intensity > m.FocusRegions[i-1].Intensity {
			t.Fatal("focus regions not sorted descending")
		}
	}
}

func TestAlignSymbols(t *testing.T) {
	// 4x4 raw grid with a hot top-left quadrant.
	raw := tensor.NewGrid(4)
	raw.Set(1, 1, 0.8) // "upper left" anchor (0.25, 0.25) -> cell (1, 1)
	raw.Set(2, 2, 0.2)

	symbols := []tarot.Symbol{
		{Object: "white sun", Position: "upper left"},
		{Object: "roaming dog", Position: "center"},
	}
	aligned := AlignSymbols(raw, symbols)
	if len(aligned) != 2 {
		t.Fatalf("got %d alignments", len(aligned))
	}
	if math.Abs(aligned[0].AttentionScore-1.0) > 1e-9 || !aligned[0].IsModelFocused {
		t.Errorf("upper-left symbol = %+v, want focused 1.0", aligned[0])
	}
	if math.Abs(aligned[1].AttentionScore-0.25) > 1e-9 || aligned[1].IsModelFocused {
		t.Errorf("center symbol = %+v, want unfocused 0.25", aligned[1])
	}
}

func TestAlignSymbolsZeroMap(t *testing.T) {
	raw := tensor.NewGrid(4)
	aligned := AlignSymbols(raw, []tarot.Symbol{{Object: "moon", Position: "top"}})
	if aligned[0].AttentionScore != 0 || aligned[0].IsModelFocused {
		t.Errorf("zero map alignment = %+v", aligned[0])
	}
}

func TestPositionAnchor(t *testing.T) {
	cases := []struct {
		position string
		fx, fy   float64
	}{
		{"", 0.5, 0.5},
		{"center", 0.5, 0.5},
		{"top", 0.5, 0.25},
		{"bottom of the card", 0.5, 0.75},
		{"left", 0.25, 0.5},
		{"upper right", 0.75, 0.25},
		{"lower left", 0.25, 0.75},
	}
	for _, c := range cases {
		fx, fy := positionAnchor(c.position)
		if fx != c.fx || fy != c.fy {
			t.Errorf("positionAnchor(%q) = (%v, %v), want (%v, %v)", c.position, fx, fy, c.fx, c.fy)
		}
	}
}
