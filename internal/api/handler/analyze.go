package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunaria/arcana/internal/domain"
	"github.com/lunaria/arcana/internal/service"
	"github.com/lunaria/arcana/internal/tarot"
)

// AnalyzeHandler serves card-recognition requests.
type AnalyzeHandler struct {
	pipeline      *service.Pipeline
	defaultHybrid bool
}

// NewAnalyzeHandler creates a new analysis handler.
func NewAnalyzeHandler(pipeline *service.Pipeline, defaultHybrid bool) *AnalyzeHandler {
	return &AnalyzeHandler{
		pipeline:      pipeline,
		defaultHybrid: defaultHybrid,
	}
}

// ImageInput references one query image. Exactly one of Path, URL or
// Data (base64) must be set.
type ImageInput struct {
	Path  string `json:"path"`
	URL   string `json:"url"`
	Data  string `json:"data"`
	Label string `json:"label"`
}

// AnalyzeRequest is the request body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Images        []ImageInput `json:"images" binding:"required,min=1,max=32"`
	DeckStyle     string       `json:"deck_style"`
	CardScope     string       `json:"card_scope"`
	WithAttention bool         `json:"with_attention"`
	WithSymbols   bool         `json:"with_symbols"`
	Hybrid        *bool        `json:"hybrid"`
}

// AnalyzeResponse is the response body for POST /api/v1/analyze.
type AnalyzeResponse struct {
	Deck    string                   `json:"deck"`
	Scope   string                   `json:"scope"`
	Count   int                      `json:"count"`
	Results []*domain.HybridAnalysis `json:"results"`
}

// Analyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	scope, err := tarot.ParseScope(req.CardScope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	refs := make([]service.ImageRef, 0, len(req.Images))
	for _, in := range req.Images {
		ref := service.ImageRef{Path: in.Path, URL: in.URL, Label: in.Label}
		if in.Data != "" {
			data, err := base64.StdEncoding.DecodeString(in.Data)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "Invalid base64 image data",
					"details": err.Error(),
				})
				return
			}
			ref.Data = data
		}
		if ref.Path == "" && ref.URL == "" && len(ref.Data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Each image needs a path, url or data field",
			})
			return
		}
		refs = append(refs, ref)
	}

	hybrid := h.defaultHybrid
	if req.Hybrid != nil {
		hybrid = *req.Hybrid
	}

	opts := service.AnalyzeOptions{
		DeckStyle:     req.DeckStyle,
		Scope:         scope,
		WithAttention: req.WithAttention,
		WithSymbols:   req.WithSymbols,
		Hybrid:        hybrid,
	}

	// An unknown deck style fails the whole request up front rather
	// than producing one error record per image.
	profile, _, err := h.pipeline.Library(c.Request.Context(), opts.DeckStyle, opts.Scope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := h.pipeline.AnalyzeBatch(c.Request.Context(), refs, opts)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Deck:    profile.ID(),
		Scope:   string(scope),
		Count:   len(results),
		Results: results,
	})
}
