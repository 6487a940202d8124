package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// Custom implements the LargeLanguageModel interface against a user-supplied
// completion endpoint with the generic request/response shape.
type Custom struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// Ensure Custom implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*Custom)(nil)

// NewCustom creates a custom-provider adapter. A missing endpoint is a
// configuration error raised before any network I/O.
func NewCustom(endpoint, apiKey string, logger *zap.Logger) (*Custom, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: CUSTOM", entities.ErrConfiguration)
	}

	return &Custom{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}, nil
}

type customRequest struct {
	Message string `json:"message"`
}

// customResponse covers the generic reply shapes custom endpoints use.
type customResponse struct {
	Response string `json:"response"`
	Message  string `json:"message"`
	Content  string `json:"content"`
}

// Complete posts the last user message and scans the response for one of
// the known text fields in order. An unrecognized shape degrades to the raw
// serialized body rather than failing.
func (c *Custom) Complete(ctx context.Context, messages []repositories.ChatMessage) (repositories.Reply, error) {
	if len(messages) == 0 {
		return repositories.Reply{}, fmt.Errorf("%w: no messages to send", entities.ErrChat)
	}
	prompt := messages[len(messages)-1].Content

	requestBody, err := json.Marshal(customRequest{Message: prompt})
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: failed to marshal request: %v", entities.ErrChat, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: %v", entities.ErrChat, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: %v", entities.ErrChat, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: failed to read response: %v", entities.ErrChat, err)
	}

	if resp.StatusCode != http.StatusOK {
		return repositories.Reply{}, fmt.Errorf("%w: endpoint returned status %d", entities.ErrChat, resp.StatusCode)
	}

	var parsed customResponse
	text := ""
	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case parsed.Response != "":
			text = parsed.Response
		case parsed.Message != "":
			text = parsed.Message
		case parsed.Content != "":
			text = parsed.Content
		}
	}
	if text == "" {
		c.logger.Warn("Custom provider response had no known text field, returning raw body")
		text = string(raw)
	}

	return repositories.Reply{Text: text, Raw: raw}, nil
}
