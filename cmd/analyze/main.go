package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lunaria/arcana/internal/config"
	"github.com/lunaria/arcana/internal/deck"
	"github.com/lunaria/arcana/internal/logger"
	"github.com/lunaria/arcana/internal/repository"
	"github.com/lunaria/arcana/internal/service"
	"github.com/lunaria/arcana/internal/storage"
	"github.com/lunaria/arcana/internal/tarot"
)

func main() {
	var (
		deckStyle     = flag.String("deck", deck.DefaultStyle, "deck style to classify against")
		scopeFlag     = flag.String("scope", string(tarot.ScopeMajor), "card scope: major or all")
		withAttention = flag.Bool("attention", false, "extract the encoder attention heatmap")
		withSymbols   = flag.Bool("symbols", false, "verify expected symbols with the object detector")
		hybrid        = flag.Bool("hybrid", false, "cross-check with the vision-language model")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: analyze [flags] <image-path-or-url>...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.SetDefaultLogger(logger.NewFromEnv(logger.LoadFromEnv()))
	defer logger.Sync()

	scope, err := tarot.ParseScope(*scopeFlag)
	if err != nil {
		logger.Fatal("%v", err)
	}

	var cache *repository.EmbeddingCache
	if db, err := repository.InitDB(&cfg.Database); err != nil {
		logger.Warn("Embedding cache unavailable: %v", err)
	} else {
		cache = repository.NewEmbeddingCache(db)
	}

	assets, err := storage.NewAssetStore(&cfg.Assets)
	if err != nil {
		logger.Fatal("Failed to initialize asset storage: %v", err)
	}

	clip := service.NewClipService(&service.ClipConfig{
		BaseURL:   cfg.Clip.BaseURL,
		Model:     cfg.Clip.Model,
		APIKey:    cfg.Clip.APIKey,
		Quantized: cfg.Clip.Quantized,
	})

	var vlm *service.VLMService
	if *hybrid {
		vlm = service.NewVLMService(&service.VLMConfig{
			Provider: cfg.VLM.Provider,
			Model:    cfg.VLM.Model,
			APIKey:   cfg.VLM.APIKey,
			BaseURL:  cfg.VLM.BaseURL,
		})
	}

	var verifier *service.SymbolVerifier
	if *withSymbols {
		verifier = service.NewSymbolVerifier(service.NewDetectorService(&service.DetectorConfig{
			BaseURL:   cfg.Detector.BaseURL,
			Model:     cfg.Detector.Model,
			Preset:    cfg.Detector.Preset,
			Threshold: cfg.Detector.Threshold,
		}), cfg.Pipeline.GridSize)
	}

	builder := service.NewLibraryBuilder(clip, assets, cache)
	pipeline := service.NewPipeline(service.PipelineConfig{
		TopK:        cfg.Pipeline.TopK,
		GridSize:    cfg.Pipeline.GridSize,
		AdapterPath: cfg.Pipeline.AdapterPath,
	}, clip, vlm, verifier, builder, nil)

	refs := make([]service.ImageRef, 0, flag.NArg())
	for _, arg := range flag.Args() {
		ref := service.ImageRef{Label: filepath.Base(arg)}
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			ref.URL = arg
		} else {
			ref.Path = arg
		}
		refs = append(refs, ref)
	}

	results := pipeline.AnalyzeBatch(context.Background(), refs, service.AnalyzeOptions{
		DeckStyle:     *deckStyle,
		Scope:         scope,
		WithAttention: *withAttention,
		WithSymbols:   *withSymbols,
		Hybrid:        *hybrid,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		logger.Fatal("Failed to encode results: %v", err)
	}

	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}
