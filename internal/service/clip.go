package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lunaria/arcana/internal/tensor"
)

// ClipService talks to the embedding sidecar that serves the CLIP text
// and vision encoders.
type ClipService struct {
	client    *resty.Client
	baseURL   string
	model     string
	quantized bool
}

// ClipConfig holds configuration for the embedding sidecar.
type ClipConfig struct {
	BaseURL   string
	Model     string
	APIKey    string
	Quantized bool
}

// NewClipService creates a new embedding client.
func NewClipService(cfg *ClipConfig) *ClipService {
	client := resty.New()
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(120 * time.Second)

	return &ClipService{
		client:    client,
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		quantized: cfg.Quantized,
	}
}

// GetModel returns the model name being used.
func (s *ClipService) GetModel() string {
	return s.model
}

type textEmbedRequest struct {
	Model     string   `json:"model"`
	Input     []string `json:"input"`
	Quantized bool     `json:"quantized,omitempty"`
}

type textEmbedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Detail string `json:"detail,omitempty"`
}

// EmbedText embeds a batch of texts through the text encoder, returning
// vectors in input order.
func (s *ClipService) EmbedText(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	req := textEmbedRequest{
		Model:     s.model,
		Input:     texts,
		Quantized: s.quantized,
	}

	var resp textEmbedResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.baseURL + "/v1/embed/text")

	if err != nil {
		return nil, fmt.Errorf("failed to call embedding backend: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Detail != "" {
			return nil, fmt.Errorf("embedding backend error: %s", resp.Detail)
		}
		return nil, fmt.Errorf("embedding backend error: status %d", httpResp.StatusCode())
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("unexpected number of embeddings: got %d, expected %d", len(resp.Data), len(texts))
	}

	// Reorder by index; every input slot must be filled exactly once.
	embeddings := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(embeddings) {
			return nil, fmt.Errorf("embedding backend returned index %d out of range [0, %d)", item.Index, len(embeddings))
		}
		if embeddings[item.Index] != nil {
			return nil, fmt.Errorf("embedding backend returned duplicate index %d", item.Index)
		}
		if len(item.Embedding) == 0 {
			return nil, fmt.Errorf("embedding backend returned empty vector for index %d", item.Index)
		}
		embeddings[item.Index] = item.Embedding
	}
	for i, e := range embeddings {
		if e == nil {
			return nil, fmt.Errorf("embedding backend returned no vector for input %d", i)
		}
	}

	return embeddings, nil
}

type imageEmbedRequest struct {
	Model            string `json:"model"`
	Image            string `json:"image"`
	Quantized        bool   `json:"quantized,omitempty"`
	ReturnAttentions bool   `json:"return_attentions,omitempty"`
}

type imageEmbedResponse struct {
	Embedding  []float32       `json:"embedding"`
	Attentions [][][][]float64 `json:"attentions,omitempty"`
	Detail     string          `json:"detail,omitempty"`
}

// EmbedImage embeds one image through the vision encoder. When
// withAttentions is set, the backend also returns the final-layer
// attention weights; a backend that cannot produce them yields a nil
// attention without failing the embedding.
func (s *ClipService) EmbedImage(ctx context.Context, imageData []byte, withAttentions bool) ([]float32, *tensor.Attention, error) {
	req := imageEmbedRequest{
		Model:            s.model,
		Image:            base64.StdEncoding.EncodeToString(imageData),
		Quantized:        s.quantized,
		ReturnAttentions: withAttentions,
	}

	var resp imageEmbedResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.baseURL + "/v1/embed/image")

	if err != nil {
		return nil, nil, fmt.Errorf("failed to call embedding backend: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Detail != "" {
			return nil, nil, fmt.Errorf("embedding backend error: %s", resp.Detail)
		}
		return nil, nil, fmt.Errorf("embedding backend error: status %d", httpResp.StatusCode())
	}

	if len(resp.Embedding) == 0 {
		return nil, nil, fmt.Errorf("embedding backend returned no vector")
	}

	var att *tensor.Attention
	if withAttentions && len(resp.Attentions) > 0 {
		att, err = tensor.FromNested(resp.Attentions)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed attention tensor: %w", err)
		}
	}

	return resp.Embedding, att, nil
}
