package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lunaria/arcana/internal/domain"
)

const vlmSystemPrompt = `You are an expert tarot reader and art historian. ` +
	`Identify the tarot card shown in the image. Respond with a single JSON object: ` +
	`{"card": "<canonical English card name>", "confidence": <0..1>, ` +
	`"orientation": "upright" or "reversed", "reasoning": "<one or two sentences>", ` +
	`"visual_details": "<notable imagery, colors and composition>"}. ` +
	`If no tarot card is visible, use an empty string for "card" and confidence 0.`

// VLMService asks a vision-language model to identify a card through an
// OpenAI-compatible chat-completions endpoint.
type VLMService struct {
	client   *resty.Client
	model    string
	endpoint string
}

// VLMConfig holds configuration for VLM service.
type VLMConfig struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// NewVLMService creates a new VLM client.
func NewVLMService(cfg *VLMConfig) *VLMService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	// Set timeout to prevent hanging requests
	client.SetTimeout(60 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &VLMService{
		client:   client,
		model:    cfg.Model,
		endpoint: baseURL + "/chat/completions",
	}
}

// GetModel returns the model name being used.
func (s *VLMService) GetModel() string {
	return s.model
}

// OpenAI-compatible Chat Completion API request/response structures
type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string for system, []interface{} for user with images
}

type openAITextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type openAIImageContent struct {
	Type     string         `json:"type"`
	ImageURL openAIImageURL `json:"image_url"`
}

type openAIImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// AnalyzeCard asks the VLM which card the image shows. A transport or
// API failure returns an analysis with status "error" rather than an
// error so callers can degrade to the embedding-only path.
func (s *VLMService) AnalyzeCard(ctx context.Context, imageData []byte, format, deckName string) *domain.VLMAnalysis {
	mimeType := getMIMEType(format)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	userPrompt := "Identify this tarot card."
	if deckName != "" {
		userPrompt = fmt.Sprintf("Identify this tarot card. The deck is %s; answer with the canonical English card name.", deckName)
	}

	req := openAIRequest{
		Model: s.model,
		Messages: []openAIMessage{
			{
				Role:    "system",
				Content: vlmSystemPrompt,
			},
			{
				Role: "user",
				Content: []interface{}{
					openAITextContent{
						Type: "text",
						Text: userPrompt,
					},
					openAIImageContent{
						Type: "image_url",
						ImageURL: openAIImageURL{
							URL:    dataURL,
							Detail: "auto",
						},
					},
				},
			},
		},
		MaxTokens: 512,
	}

	var resp openAIResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)

	if err != nil {
		return vlmError(fmt.Sprintf("failed to call VLM: %v", err))
	}

	if httpResp.StatusCode() != 200 {
		if resp.Error != nil {
			return vlmError(fmt.Sprintf("VLM error: %s", resp.Error.Message))
		}
		return vlmError(fmt.Sprintf("VLM error: status %d", httpResp.StatusCode()))
	}

	if len(resp.Choices) == 0 {
		return vlmError("VLM returned no choices")
	}

	return parseVLMContent(resp.Choices[0].Message.Content)
}

func vlmError(msg string) *domain.VLMAnalysis {
	return &domain.VLMAnalysis{Status: domain.VLMStatusError, Error: msg}
}

// parseVLMContent extracts the structured analysis from the model's
// reply, tolerating markdown code fences and surrounding prose.
func parseVLMContent(content string) *domain.VLMAnalysis {
	raw := extractJSON(content)
	if raw == "" {
		return vlmError("VLM reply contained no JSON object")
	}

	var parsed struct {
		Card          string  `json:"card"`
		Confidence    float64 `json:"confidence"`
		Orientation   string  `json:"orientation"`
		Reasoning     string  `json:"reasoning"`
		VisualDetails string  `json:"visual_details"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return vlmError(fmt.Sprintf("failed to parse VLM reply: %v", err))
	}

	orientation := parsed.Orientation
	if orientation != "upright" && orientation != "reversed" {
		orientation = "upright"
	}
	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &domain.VLMAnalysis{
		Status:        domain.VLMStatusOK,
		Card:          strings.TrimSpace(parsed.Card),
		Confidence:    confidence,
		Orientation:   orientation,
		Reasoning:     strings.TrimSpace(parsed.Reasoning),
		VisualDetails: strings.TrimSpace(parsed.VisualDetails),
	}
}

// extractJSON returns the outermost JSON object in a reply, stripping
// markdown fences if present.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// getMIMEType maps an image format extension to its MIME type.
func getMIMEType(format string) string {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
