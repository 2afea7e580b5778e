package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lunaria/arcana/internal/deck"
	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/logger"
	"github.com/lunaria/arcana/internal/repository"
	"github.com/lunaria/arcana/internal/tarot"
	"github.com/lunaria/arcana/internal/tensor"
)

// AnalyzeOptions selects what one analysis computes.
type AnalyzeOptions struct {
	DeckStyle     string
	Scope         tarot.Scope
	WithAttention bool
	WithSymbols   bool
	Hybrid        bool
}

// PipelineConfig carries the pipeline's tunables.
type PipelineConfig struct {
	TopK        int
	GridSize    int
	AdapterPath string
}

// Pipeline owns the memoized card libraries and the model-backend
// handles. Libraries and the adapter file are built once per key and
// shared by every concurrent analysis; the backends are stateless and
// safely reentrant.
type Pipeline struct {
	cfg      PipelineConfig
	clip     *ClipService
	vlm      *VLMService
	verifier *SymbolVerifier
	builder  *LibraryBuilder
	vectors  *repository.CardVectorRepository

	adapterOnce sync.Once
	adapters    AdapterFile

	mu        sync.Mutex
	libraries map[string]*libraryState
}

// libraryState single-flights one (deckStyle, scope) build.
type libraryState struct {
	once    sync.Once
	entries []*LibraryEntry
	err     error
}

// NewPipeline creates a Pipeline. vlm, verifier and vectors may be nil;
// the corresponding features degrade gracefully.
func NewPipeline(cfg PipelineConfig, clip *ClipService, vlm *VLMService, verifier *SymbolVerifier, builder *LibraryBuilder, vectors *repository.CardVectorRepository) *Pipeline {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	return &Pipeline{
		cfg:       cfg,
		clip:      clip,
		vlm:       vlm,
		verifier:  verifier,
		builder:   builder,
		vectors:   vectors,
		libraries: make(map[string]*libraryState),
	}
}

// loadAdapters reads the fine-tuned adapter file exactly once. A
// missing or malformed file degrades to an empty adapter set.
func (p *Pipeline) loadAdapters(ctx context.Context) AdapterFile {
	p.adapterOnce.Do(func() {
		adapters, err := LoadAdapterFile(p.cfg.AdapterPath)
		if err != nil {
			logger.CtxWarn(ctx, "adapter file unavailable, classifying without adapter vectors: %v", err)
			adapters = AdapterFile{}
		}
		p.adapters = adapters
	})
	return p.adapters
}

// Library returns the memoized card library for a (deckStyle, scope)
// pair, building it on first use. Concurrent first-callers share one
// build.
func (p *Pipeline) Library(ctx context.Context, deckStyle string, scope tarot.Scope) (deck.Profile, []*LibraryEntry, error) {
	profile, err := deck.ForStyle(deckStyle)
	if err != nil {
		return nil, nil, err
	}
	if scope == "" {
		scope = tarot.ScopeMajor
	}
	if scope != tarot.ScopeMajor && scope != tarot.ScopeAll {
		return nil, nil, fmt.Errorf("unknown card scope %q", scope)
	}

	key := profile.ID() + "/" + string(scope)
	p.mu.Lock()
	state, ok := p.libraries[key]
	if !ok {
		state = &libraryState{}
		p.libraries[key] = state
	}
	p.mu.Unlock()

	state.once.Do(func() {
		start := time.Now()
		entries, err := p.builder.Build(ctx, profile, scope, p.loadAdapters(ctx))
		if err != nil {
			state.err = err
			return
		}
		state.entries = entries
		p.mirrorLibrary(ctx, profile.ID(), entries)
		logger.With(logger.Fields{
			logger.FieldDeck:       profile.ID(),
			logger.FieldCount:      len(entries),
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
		}).Info(ctx, "card library built")
	})
	return profile, state.entries, state.err
}

// mirrorLibrary pushes the library's reference vectors into the Qdrant
// collection. Mirroring is best effort; the in-process library remains
// the source of truth for scoring.
func (p *Pipeline) mirrorLibrary(ctx context.Context, deckStyle string, entries []*LibraryEntry) {
	if p.vectors == nil {
		return
	}
	if err := p.vectors.EnsureCollection(ctx); err != nil {
		logger.CtxWarn(ctx, "qdrant mirror unavailable: %v", err)
		return
	}
	for _, e := range entries {
		vectorsByKind := map[string][]float32{
			string(repository.EmbeddingKindText):    e.TextVector,
			string(repository.EmbeddingKindImage):   e.ImageVector,
			string(repository.EmbeddingKindAdapter): e.AdapterVector,
		}
		for kind, vec := range vectorsByKind {
			if len(vec) == 0 {
				continue
			}
			err := p.vectors.Upsert(ctx, vec, &repository.CardPayload{
				CardID:        e.Card.ID(),
				CardName:      e.Label,
				CanonicalName: e.CanonicalName,
				Deck:          deckStyle,
				Kind:          kind,
			})
			if err != nil {
				logger.CtxWarn(ctx, "qdrant mirror failed for %s/%s: %v", e.Card.ID(), kind, err)
				return
			}
		}
	}
}

// candidateEntries narrows the scoring set through the ANN mirror when
// the library is large. The survivors are re-scored exactly, so the
// prefilter affects latency only; on any mirror error the full library
// is scored.
func (p *Pipeline) candidateEntries(ctx context.Context, deckStyle string, query []float32, entries []*LibraryEntry) []*LibraryEntry {
	const prefilterMin = 32
	if p.vectors == nil || len(entries) < prefilterMin {
		return entries
	}
	limit := p.cfg.TopK * 4
	if limit < prefilterMin {
		limit = prefilterMin
	}
	hits, err := p.vectors.SearchCandidates(ctx, deckStyle, query, limit)
	if err != nil || len(hits) == 0 {
		if err != nil {
			logger.CtxWarn(ctx, "qdrant prefilter failed, scoring full library: %v", err)
		}
		return entries
	}
	keep := make(map[string]bool, len(hits))
	for _, h := range hits {
		keep[h.CardID] = true
	}
	out := make([]*LibraryEntry, 0, len(hits))
	for _, e := range entries {
		if keep[e.Card.ID()] {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return entries
	}
	return out
}

// Classify embeds a query image and ranks it against the library.
func (p *Pipeline) Classify(ctx context.Context, imageData []byte, opts AnalyzeOptions) (*domain.Classification, error) {
	profile, entries, err := p.Library(ctx, opts.DeckStyle, opts.Scope)
	if err != nil {
		return nil, err
	}

	query, att, err := p.clip.EmbedImage(ctx, imageData, opts.WithAttention)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query image: %w", err)
	}
	query = l2Normalize(query)

	candidates := p.candidateEntries(ctx, profile.ID(), query, entries)
	matches := RankCandidates(query, candidates, p.cfg.TopK)

	result := &domain.Classification{Matches: matches}
	if len(matches) > 0 {
		result.TopMatch = &matches[0]
		result.Confidence = matches[0].Score
	}

	if att != nil {
		attMap := BuildAttentionMap(att)
		if result.TopMatch != nil {
			if card := tarot.ByID(result.TopMatch.CardID); card != nil {
				if ann := tarot.SynthesizeAnnotation(card); ann != nil {
					raw := tensor.GridFromPatches(att.CLSRowMean())
					attMap.SymbolAlignment = AlignSymbols(raw, ann.Symbols)
				}
			}
		}
		result.Attention = attMap
	}

	return result, nil
}

// AnalyzeImage runs the full analysis for one image reference. The
// embedding classifier and the VLM run concurrently; the merge is a
// pure reducer over both results.
func (p *Pipeline) AnalyzeImage(ctx context.Context, ref ImageRef, opts AnalyzeOptions) (*domain.HybridAnalysis, error) {
	ctx = logger.SetAnalysisID(ctx, uuid.NewString())
	ctx = logger.SetDeck(ctx, opts.DeckStyle)

	imageData, format, err := LoadImage(ctx, ref)
	if err != nil {
		return nil, err
	}

	profile, _, err := p.Library(ctx, opts.DeckStyle, opts.Scope)
	if err != nil {
		return nil, err
	}

	var (
		classification *domain.Classification
		vlmResult      *domain.VLMAnalysis
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := p.Classify(gctx, imageData, opts)
		if err != nil {
			return err
		}
		classification = c
		return nil
	})
	if opts.Hybrid && p.vlm != nil {
		g.Go(func() error {
			// A VLM failure is carried as a non-ok status so the merge
			// can degrade instead of failing the image.
			vlmResult = p.vlm.AnalyzeCard(gctx, imageData, format, profile.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := MergeAnalyses(classification, vlmResult)
	merged.ImagePath = ref.Display()
	merged.Label = ref.Label

	if vp, err := ExtractVisualProfile(imageData); err == nil {
		merged.VisualProfile = vp
	} else {
		logger.CtxWarn(ctx, "visual profile unavailable: %v", err)
	}

	if opts.WithSymbols && p.verifier != nil && merged.TopMatch != nil {
		if card := tarot.ByID(merged.TopMatch.CardID); card != nil {
			verification, err := p.verifier.Verify(ctx, imageData, tarot.SynthesizeAnnotation(card))
			if err != nil {
				logger.CtxWarn(ctx, "symbol verification failed for %s: %v", card.Name, err)
			} else {
				merged.SymbolVerification = verification
			}
		}
	}

	return merged, nil
}

// AnalyzeBatch analyzes a batch of images concurrently. Each image's
// failure is isolated into its own result record.
func (p *Pipeline) AnalyzeBatch(ctx context.Context, refs []ImageRef, opts AnalyzeOptions) []*domain.HybridAnalysis {
	results := make([]*domain.HybridAnalysis, len(refs))
	var wg sync.WaitGroup
	for i, ref := range refs {
		wg.Add(1)
		go func(i int, ref ImageRef) {
			defer wg.Done()
			analysis, err := p.AnalyzeImage(ctx, ref, opts)
			if err != nil {
				logger.CtxError(ctx, "analysis failed for %s: %v", ref.Display(), err)
				analysis = &domain.HybridAnalysis{
					ImagePath:   ref.Display(),
					Label:       ref.Label,
					Orientation: "upright",
					MergeSource: domain.MergeSourceClip,
					Error:       err.Error(),
				}
			}
			results[i] = analysis
		}(i, ref)
	}
	wg.Wait()
	return results
}
