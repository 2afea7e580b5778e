package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunaria/arcana/internal/api"
	"github.com/lunaria/arcana/internal/config"
	"github.com/lunaria/arcana/internal/logger"
	"github.com/lunaria/arcana/internal/repository"
	"github.com/lunaria/arcana/internal/service"
	"github.com/lunaria/arcana/internal/storage"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.SetDefaultLogger(logger.NewFromEnv(logger.LoadFromEnv()))
	defer logger.Sync()

	// Initialize the embedding cache. The cache is an optimization, so a
	// broken database degrades to re-embedding on every startup.
	var cache *repository.EmbeddingCache
	if db, err := repository.InitDB(&cfg.Database); err != nil {
		logger.Warn("Embedding cache unavailable: %v", err)
	} else {
		cache = repository.NewEmbeddingCache(db)
	}

	// Initialize deck asset storage (local directory, S3 or R2)
	assets, err := storage.NewAssetStore(&cfg.Assets)
	if err != nil {
		logger.Fatal("Failed to initialize asset storage: %v", err)
	}

	// Initialize the optional Qdrant mirror for ANN prefiltering
	var vectors *repository.CardVectorRepository
	if cfg.Qdrant.Enabled {
		vectors, err = repository.NewCardVectorRepository(&repository.QdrantConnectionConfig{
			Host:       cfg.Qdrant.Host,
			Port:       cfg.Qdrant.Port,
			Collection: cfg.Qdrant.Collection,
			APIKey:     cfg.Qdrant.APIKey,
			UseTLS:     cfg.Qdrant.UseTLS,
		})
		if err != nil {
			logger.Warn("Qdrant unavailable, scoring full libraries in process: %v", err)
			vectors = nil
		} else {
			defer vectors.Close()
		}
	}

	// Initialize model backends
	clip := service.NewClipService(&service.ClipConfig{
		BaseURL:   cfg.Clip.BaseURL,
		Model:     cfg.Clip.Model,
		APIKey:    cfg.Clip.APIKey,
		Quantized: cfg.Clip.Quantized,
	})
	detector := service.NewDetectorService(&service.DetectorConfig{
		BaseURL:   cfg.Detector.BaseURL,
		Model:     cfg.Detector.Model,
		Preset:    cfg.Detector.Preset,
		Threshold: cfg.Detector.Threshold,
	})

	var vlm *service.VLMService
	if cfg.VLM.APIKey != "" {
		vlm = service.NewVLMService(&service.VLMConfig{
			Provider: cfg.VLM.Provider,
			Model:    cfg.VLM.Model,
			APIKey:   cfg.VLM.APIKey,
			BaseURL:  cfg.VLM.BaseURL,
		})
	} else {
		logger.Warn("No VLM API key configured, hybrid analysis disabled")
	}

	// Assemble the pipeline
	builder := service.NewLibraryBuilder(clip, assets, cache)
	verifier := service.NewSymbolVerifier(detector, cfg.Pipeline.GridSize)
	pipeline := service.NewPipeline(service.PipelineConfig{
		TopK:        cfg.Pipeline.TopK,
		GridSize:    cfg.Pipeline.GridSize,
		AdapterPath: cfg.Pipeline.AdapterPath,
	}, clip, vlm, verifier, builder, vectors)

	// Setup router
	router := api.SetupRouter(pipeline, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting API server: port=%d, mode=%s", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
