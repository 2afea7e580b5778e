package service

import (
	"sort"

	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/tarot"
	"github.com/lunaria/arcana/internal/tensor"
)

const (
	focusThreshold     = 0.75
	maxFocusRegions    = 8
	alignmentThreshold = 0.65
)

// BuildAttentionMap reduces final-layer attention weights to a
// normalized spatial heatmap with its focus regions.
func BuildAttentionMap(att *tensor.Attention) *domain.AttentionMap {
	raw := tensor.GridFromPatches(att.CLSRowMean())
	return attentionMapFromGrid(raw)
}

// attentionMapFromGrid normalizes a raw intensity grid and extracts
// every cell at or above the focus threshold, sorted by intensity and
// capped.
func attentionMapFromGrid(raw *tensor.Grid) *domain.AttentionMap {
	norm := raw.Normalized()

	var regions []domain.FocusRegion
	for y := 0; y < norm.Size; y++ {
		for x := 0; x < norm.Size; x++ {
			if v := norm.At(y, x); v >= focusThreshold {
				regions = append(regions, domain.FocusRegion{X: x, Y: y, Intensity: v})
			}
		}
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Intensity > regions[j].Intensity
	})
	if len(regions) > maxFocusRegions {
		regions = regions[:maxFocusRegions]
	}

	return &domain.AttentionMap{
		GridSize:     norm.Size,
		Heatmap:      norm.Rows(),
		Stats:        domain.HeatmapStats{Max: norm.Max(), Min: norm.Min()},
		FocusRegions: regions,
	}
}

// AlignSymbols reads, for each expected symbol, the raw attention at
// the grid cell implied by its position description, normalized against
// the raw map's own maximum. It answers whether the encoder looked
// where the symbol should be, not whether the symbol is there.
func AlignSymbols(raw *tensor.Grid, symbols []tarot.Symbol) []domain.SymbolAlignment {
	if raw == nil || len(symbols) == 0 {
		return nil
	}
	max := raw.Max()

	out := make([]domain.SymbolAlignment, 0, len(symbols))
	for _, s := range symbols {
		fx, fy := positionAnchor(s.Position)
		col := cellIndex(fx, raw.Size)
		row := cellIndex(fy, raw.Size)

		score := 0.0
		if max > 0 {
			score = raw.At(row, col) / max
		}
		out = append(out, domain.SymbolAlignment{
			Object:         s.Object,
			Position:       s.Position,
			AttentionScore: score,
			IsModelFocused: score >= alignmentThreshold,
		})
	}
	return out
}

// cellIndex maps a fractional coordinate to a grid index.
func cellIndex(frac float64, size int) int {
	idx := int(frac * float64(size))
	if idx >= size {
		idx = size - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
