package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lunaria/arcana/internal/deck"
	"github.com/lunaria/arcana/internal/logger"
	"github.com/lunaria/arcana/internal/repository"
	"github.com/lunaria/arcana/internal/storage"
	"github.com/lunaria/arcana/internal/tarot"
)

const (
	maxPromptSymbols = 4
	maxPromptColors  = 3
)

// LibraryEntry is one embeddable reference card for a (deck, scope)
// library. Vectors are unit-L2-normalized before storage; TextVector is
// always present, the other two are optional.
type LibraryEntry struct {
	Card          *tarot.CardIdentity
	Label         string
	CanonicalName string
	Prompt        string
	ImageKey      string
	TextVector    []float32
	ImageVector   []float32
	AdapterVector []float32
}

// LibraryBuilder constructs card libraries against the embedding
// backend, with an optional persistent cache to skip re-embedding.
type LibraryBuilder struct {
	clip   *ClipService
	assets storage.AssetStore
	cache  *repository.EmbeddingCache
}

// NewLibraryBuilder creates a LibraryBuilder. assets and cache may be
// nil; entries then get no image vectors / no cache reuse respectively.
func NewLibraryBuilder(clip *ClipService, assets storage.AssetStore, cache *repository.EmbeddingCache) *LibraryBuilder {
	return &LibraryBuilder{clip: clip, assets: assets, cache: cache}
}

// ComposePrompt builds the embeddable description text for one card in
// one deck's visual vocabulary.
func ComposePrompt(profile deck.Profile, card *tarot.CardIdentity) string {
	var b strings.Builder
	b.WriteString(profile.PromptCue())
	b.WriteString(", ")
	b.WriteString(profile.Palette())
	b.WriteString(", ")
	b.WriteString(profile.Texture())
	b.WriteString(". ")

	alias := profile.Alias(card)
	b.WriteString("The card is ")
	b.WriteString(alias)
	if alias != card.Name {
		b.WriteString(" (")
		b.WriteString(card.Name)
		b.WriteString(")")
	}
	b.WriteString(".")

	if !card.IsMajor() {
		b.WriteString(" It is the ")
		b.WriteString(profile.CourtAlias(card.Rank))
		b.WriteString(" of the suit of ")
		b.WriteString(profile.SuitAlias(card.Suit))
		b.WriteString(".")
	}

	if card.Keywords != "" {
		b.WriteString(" It signifies ")
		b.WriteString(card.Keywords)
		b.WriteString(".")
	}

	ann := tarot.SynthesizeAnnotation(card)
	if ann != nil {
		for i, s := range ann.Symbols {
			if i >= maxPromptSymbols {
				break
			}
			b.WriteString(fmt.Sprintf(" It shows %s at the %s.", s.Object, s.Position))
		}
		for i, c := range ann.DominantColors {
			if i >= maxPromptColors {
				break
			}
			b.WriteString(fmt.Sprintf(" The color %s conveys %s.", c.Color, c.Meaning))
		}
	}

	return b.String()
}

// Build constructs one LibraryEntry per card in scope. A reference
// image that fails to load or embed leaves that entry's ImageVector nil
// and never aborts the build; a text-embedding failure is fatal since
// every entry must carry at least a text vector.
func (b *LibraryBuilder) Build(ctx context.Context, profile deck.Profile, scope tarot.Scope, adapters AdapterFile) ([]*LibraryEntry, error) {
	cards := tarot.Cards(scope)
	entries := make([]*LibraryEntry, 0, len(cards))
	for _, card := range cards {
		entries = append(entries, &LibraryEntry{
			Card:          card,
			Label:         profile.Alias(card),
			CanonicalName: card.Name,
			Prompt:        ComposePrompt(profile, card),
			ImageKey:      profile.ImagePath(card),
			AdapterVector: adapters.Centroid(profile.ID(), card.Name),
		})
	}

	if err := b.embedTexts(ctx, profile.ID(), entries); err != nil {
		return nil, err
	}
	b.embedImages(ctx, profile.ID(), entries)

	return entries, nil
}

// embedTexts fills TextVector for every entry, reusing cached vectors
// and batching the misses through the text encoder.
func (b *LibraryBuilder) embedTexts(ctx context.Context, deckStyle string, entries []*LibraryEntry) error {
	var missed []*LibraryEntry
	for _, e := range entries {
		if v := b.cached(ctx, deckStyle, e.Card.ID(), repository.EmbeddingKindText); v != nil {
			e.TextVector = v
			continue
		}
		missed = append(missed, e)
	}
	if len(missed) == 0 {
		return nil
	}

	prompts := make([]string, len(missed))
	for i, e := range missed {
		prompts[i] = e.Prompt
	}
	vectors, err := b.clip.EmbedText(ctx, prompts)
	if err != nil {
		return fmt.Errorf("failed to embed card prompts: %w", err)
	}
	for i, e := range missed {
		e.TextVector = l2Normalize(vectors[i])
		b.store(ctx, deckStyle, e.Card.ID(), repository.EmbeddingKindText, e.TextVector)
	}
	return nil
}

// embedImages fills ImageVector where a reference asset resolves.
// Failures are logged and skipped per card.
func (b *LibraryBuilder) embedImages(ctx context.Context, deckStyle string, entries []*LibraryEntry) {
	if b.assets == nil {
		return
	}
	failed := 0
	for _, e := range entries {
		if e.ImageKey == "" {
			continue
		}
		if v := b.cached(ctx, deckStyle, e.Card.ID(), repository.EmbeddingKindImage); v != nil {
			e.ImageVector = v
			continue
		}
		vec, err := b.embedAsset(ctx, e.ImageKey)
		if err != nil {
			failed++
			logger.CtxWarn(ctx, "reference image unavailable for %s: %v", e.CanonicalName, err)
			continue
		}
		e.ImageVector = l2Normalize(vec)
		b.store(ctx, deckStyle, e.Card.ID(), repository.EmbeddingKindImage, e.ImageVector)
	}
	if failed > 0 {
		logger.With(logger.Fields{logger.FieldCount: failed}).
			Warn(ctx, "library built with missing reference images, classification falls back to remaining sources")
	}
}

func (b *LibraryBuilder) embedAsset(ctx context.Context, key string) ([]float32, error) {
	ok, err := b.assets.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("asset %s not found", key)
	}
	rc, err := b.assets.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", key, err)
	}
	vec, _, err := b.clip.EmbedImage(ctx, data, false)
	return vec, err
}

func (b *LibraryBuilder) cached(ctx context.Context, deckStyle, cardID string, kind repository.EmbeddingKind) []float32 {
	if b.cache == nil {
		return nil
	}
	v, err := b.cache.Get(ctx, deckStyle, cardID, kind, b.clip.GetModel())
	if err != nil {
		logger.CtxWarn(ctx, "embedding cache read failed for %s/%s: %v", cardID, kind, err)
		return nil
	}
	return v
}

func (b *LibraryBuilder) store(ctx context.Context, deckStyle, cardID string, kind repository.EmbeddingKind, vec []float32) {
	if b.cache == nil {
		return
	}
	if err := b.cache.Put(ctx, deckStyle, cardID, kind, b.clip.GetModel(), vec); err != nil {
		logger.CtxWarn(ctx, "embedding cache write failed for %s/%s: %v", cardID, kind, err)
	}
}
