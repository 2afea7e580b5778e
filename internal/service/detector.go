package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// DetectorService talks to the zero-shot object-detection sidecar.
type DetectorService struct {
	client    *resty.Client
	baseURL   string
	model     string
	preset    string
	threshold float64
}

// DetectorConfig holds configuration for the detection sidecar. Preset
// "fast" trades detector model size for latency.
type DetectorConfig struct {
	BaseURL   string
	Model     string
	Preset    string
	Threshold float64
}

// NewDetectorService creates a new detection client.
func NewDetectorService(cfg *DetectorConfig) *DetectorService {
	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(120 * time.Second)

	threshold := cfg.Threshold
	if threshold <= 0 {
		threshold = 0.05
	}

	return &DetectorService{
		client:    client,
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		preset:    cfg.Preset,
		threshold: threshold,
	}
}

// Threshold returns the configured detection score threshold.
func (s *DetectorService) Threshold() float64 {
	return s.threshold
}

type detectRequest struct {
	Model     string   `json:"model"`
	Preset    string   `json:"preset,omitempty"`
	Image     string   `json:"image"`
	Labels    []string `json:"labels"`
	Threshold float64  `json:"threshold"`
}

// RawDetection is one detector hit with a pixel-space box.
type RawDetection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	XMin       float64 `json:"xmin"`
	YMin       float64 `json:"ymin"`
	XMax       float64 `json:"xmax"`
	YMax       float64 `json:"ymax"`
}

type detectResponse struct {
	Detections []RawDetection `json:"detections"`
	Detail     string         `json:"detail,omitempty"`
}

// Detect runs open-vocabulary detection on an image with free-text
// candidate labels. Boxes come back in pixel coordinates; callers
// normalize against the image's own dimensions.
func (s *DetectorService) Detect(ctx context.Context, imageData []byte, labels []string) ([]RawDetection, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	req := detectRequest{
		Model:     s.model,
		Preset:    s.preset,
		Image:     base64.StdEncoding.EncodeToString(imageData),
		Labels:    labels,
		Threshold: s.threshold,
	}

	var resp detectResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.baseURL + "/v1/detect")

	if err != nil {
		return nil, fmt.Errorf("failed to call detector backend: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Detail != "" {
			return nil, fmt.Errorf("detector backend error: %s", resp.Detail)
		}
		return nil, fmt.Errorf("detector backend error: status %d", httpResp.StatusCode())
	}

	return resp.Detections, nil
}
