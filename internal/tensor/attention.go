// Package tensor provides small, explicitly-shaped containers for the
// attention weights and spatial grids produced by vision encoders. All
// indexing goes through named-dimension accessors so reshaping stays
// stride-safe.
package tensor

import "fmt"

// Attention holds multi-head attention weights with shape
// [batch, heads, tokens, tokens], stored row-major in a flat slice.
// Token 0 is the classification token; tokens 1..Tokens-1 are the
// spatial patches.
type Attention struct {
	Batch  int
	Heads  int
	Tokens int

	data []float64
}

// NewAttention validates the flat weight buffer against the declared
// shape and wraps it.
func NewAttention(batch, heads, tokens int, data []float64) (*Attention, error) {
	if batch <= 0 || heads <= 0 || tokens < 2 {
		return nil, fmt.Errorf("invalid attention shape [%d, %d, %d, %d]", batch, heads, tokens, tokens)
	}
	want := batch * heads * tokens * tokens
	if len(data) != want {
		return nil, fmt.Errorf("attention buffer has %d values, shape [%d, %d, %d, %d] needs %d",
			len(data), batch, heads, tokens, tokens, want)
	}
	return &Attention{Batch: batch, Heads: heads, Tokens: tokens, data: data}, nil
}

// FromNested flattens the nested [batch][heads][tokens][tokens]
// representation that model backends serialize over JSON.
func FromNested(nested [][][][]float64) (*Attention, error) {
	if len(nested) == 0 || len(nested[0]) == 0 || len(nested[0][0]) == 0 {
		return nil, fmt.Errorf("empty attention tensor")
	}
	batch, heads, tokens := len(nested), len(nested[0]), len(nested[0][0])
	data := make([]float64, 0, batch*heads*tokens*tokens)
	for b := range nested {
		if len(nested[b]) != heads {
			return nil, fmt.Errorf("ragged heads dimension at batch %d", b)
		}
		for h := range nested[b] {
			if len(nested[b][h]) != tokens {
				return nil, fmt.Errorf("ragged query dimension at batch %d head %d", b, h)
			}
			for q := range nested[b][h] {
				if len(nested[b][h][q]) != tokens {
					return nil, fmt.Errorf("ragged key dimension at batch %d head %d query %d", b, h, q)
				}
				data = append(data, nested[b][h][q]...)
			}
		}
	}
	return NewAttention(batch, heads, tokens, data)
}

// At reads the weight for (batch, head, query token, key token).
func (a *Attention) At(b, h, q, k int) float64 {
	return a.data[((b*a.Heads+h)*a.Tokens+q)*a.Tokens+k]
}

// PatchCount returns the number of spatial patches (tokens minus the
// classification token).
func (a *Attention) PatchCount() int {
	return a.Tokens - 1
}

// CLSRowMean averages the classification token's attention to every
// spatial patch over all batches and heads, returning one scalar per
// patch in token order.
func (a *Attention) CLSRowMean() []float64 {
	patches := make([]float64, a.PatchCount())
	samples := float64(a.Batch * a.Heads)
	for b := 0; b < a.Batch; b++ {
		for h := 0; h < a.Heads; h++ {
			for k := 1; k < a.Tokens; k++ {
				patches[k-1] += a.At(b, h, 0, k)
			}
		}
	}
	for i := range patches {
		patches[i] /= samples
	}
	return patches
}
