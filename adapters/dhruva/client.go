// Package dhruva implements the inference gateway client for the ULCA-style
// ASR, translation, and TTS services.
package dhruva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	asrPath         = "/services/inference/asr"
	translationPath = "/services/inference/translation"
	ttsPath         = "/services/inference/tts"

	defaultTimeout = 30 * time.Second

	defaultASRServiceID         = "ai4bharat/indictasr"
	defaultTranslationServiceID = "ai4bharat/indictrans--gpu-t4"
	defaultTTSServiceID         = "ai4bharat/indictts--gpu-t4"
)

// Config holds the gateway connection settings.
// Required fields:
// - BaseURL: the inference gateway base URL
// - APIKey: the bearer credential sent in the Authorization header
// Optional fields default to the known service IDs and a 30s timeout.
type Config struct {
	BaseURL              string
	APIKey               string
	ASRServiceID         string
	TranslationServiceID string
	TTSServiceID         string
	Timeout              time.Duration
}

// Client is a uniform request/response client for the three remote
// capabilities: transcription, translation, and speech synthesis.
type Client struct {
	baseURL              string
	apiKey               string
	asrServiceID         string
	translationServiceID string
	ttsServiceID         string
	httpClient           *http.Client
	logger               *zap.Logger
}

// NewClient creates a gateway client, applying defaults for optional fields.
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	asrServiceID := config.ASRServiceID
	if asrServiceID == "" {
		asrServiceID = defaultASRServiceID
	}

	translationServiceID := config.TranslationServiceID
	if translationServiceID == "" {
		translationServiceID = defaultTranslationServiceID
	}

	ttsServiceID := config.TTSServiceID
	if ttsServiceID == "" {
		ttsServiceID = defaultTTSServiceID
	}

	return &Client{
		baseURL:              config.BaseURL,
		apiKey:               config.APIKey,
		asrServiceID:         asrServiceID,
		translationServiceID: translationServiceID,
		ttsServiceID:         ttsServiceID,
		httpClient:           &http.Client{Timeout: timeout},
		logger:               logger,
	}, nil
}

// controlConfig carries the fixed usage-tracking flag every request sends.
type controlConfig struct {
	DataTracking bool `json:"dataTracking"`
}

// languageConfig is the language pair block shared by the three requests.
type languageConfig struct {
	SourceLanguage   string `json:"sourceLanguage"`
	SourceScriptCode string `json:"sourceScriptCode,omitempty"`
	TargetLanguage   string `json:"targetLanguage,omitempty"`
	TargetScriptCode string `json:"targetScriptCode,omitempty"`
}

// post sends one JSON round trip and returns the raw response body.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("x-auth-source", "API_KEY")
	httpReq.Header.Set("Authorization", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Gateway returned non-200 status",
			zap.String("path", path),
			zap.Int("statusCode", resp.StatusCode))
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, truncate(body, 256))
	}

	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
