package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrVisionNotConfigured means no vision API key is set for this deployment.
	ErrVisionNotConfigured = errors.New("room visualization is not configured")
)

const visionPrompt = "You are an interior design assistant for an art studio. " +
	"Given a photo of a room, suggest where a painting would look best and " +
	"which mood of artwork would suit the space. Answer briefly."

// VisionConfig holds the vision-model endpoint settings.
type VisionConfig struct {
	APIKey string
	URL    string
	Model  string
}

// VisionClient proxies room photos to a vision-model endpoint and returns a
// placement suggestion. The provider is a black box; one attempt, no retries.
type VisionClient struct {
	cfg    VisionConfig
	client *http.Client
	logger *zap.Logger
}

// NewVisionClient creates a new VisionClient.
func NewVisionClient(cfg VisionConfig, logger *zap.Logger) *VisionClient {
	if cfg.URL == "" {
		cfg.URL = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &VisionClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
		logger: logger,
	}
}

// Enabled reports whether the vision proxy is configured.
func (v *VisionClient) Enabled() bool {
	return v.cfg.APIKey != ""
}

type visionRequest struct {
	Model    string          `json:"model"`
	Messages []visionMessage `json:"messages"`
}

type visionMessage struct {
	Role    string       `json:"role"`
	Content []visionPart `json:"content"`
}

type visionPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// SuggestPlacement sends the room image (a data URL or public URL) to the
// vision model and returns its suggestion text.
func (v *VisionClient) SuggestPlacement(ctx context.Context, imageURL string) (string, error) {
	if !v.Enabled() {
		return "", ErrVisionNotConfigured
	}

	payload := visionRequest{
		Model: v.cfg.Model,
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionPart{
					{Type: "text", Text: visionPrompt},
					{Type: "image_url", ImageURL: &visionImageURL{URL: imageURL}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build vision request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+v.cfg.APIKey)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("Vision endpoint call failed", zap.Error(err))
		return "", fmt.Errorf("%w: vision call failed", ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Error("Vision endpoint rejected request", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: vision endpoint returned status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: unreadable vision response", ErrUpstream)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty vision response", ErrUpstream)
	}

	return parsed.Choices[0].Message.Content, nil
}
