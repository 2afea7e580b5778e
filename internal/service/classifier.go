package service

import (
	"sort"

	"github.com/lunaria/arcana/internal/domain"
)

// DefaultTopK is the result-list truncation applied when no top-K is
// configured.
const DefaultTopK = 5

// scoreEntry computes the per-source cosine similarities of a query
// vector against one library entry and selects the winning score with
// strict precedence adapter, then image, then text. When no source is
// available the score is 0 with basis text.
func scoreEntry(query []float32, e *LibraryEntry) domain.MatchResult {
	var components domain.ScoreComponents
	if len(e.ImageVector) > 0 {
		s := dot(query, e.ImageVector)
		components.ImageScore = &s
	}
	if len(e.TextVector) > 0 {
		s := dot(query, e.TextVector)
		components.TextScore = &s
	}
	if len(e.AdapterVector) > 0 {
		s := dot(query, e.AdapterVector)
		components.AdapterScore = &s
	}

	score, basis := 0.0, domain.BasisText
	switch {
	case components.AdapterScore != nil:
		score, basis = *components.AdapterScore, domain.BasisAdapter
	case components.ImageScore != nil:
		score, basis = *components.ImageScore, domain.BasisImage
	case components.TextScore != nil:
		score, basis = *components.TextScore, domain.BasisText
	}

	return domain.MatchResult{
		CardID:        e.Card.ID(),
		CardName:      e.Label,
		CanonicalName: e.CanonicalName,
		Score:         score,
		Basis:         basis,
		Components:    components,
	}
}

// RankCandidates scores every library entry against a query vector and
// returns the top K matches sorted descending by score. Ties break by
// library order so ranking is deterministic.
func RankCandidates(query []float32, entries []*LibraryEntry, topK int) []domain.MatchResult {
	if topK <= 0 {
		topK = DefaultTopK
	}
	results := make([]domain.MatchResult, len(entries))
	for i, e := range entries {
		results[i] = scoreEntry(query, e)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}
