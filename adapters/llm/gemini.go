package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Gemini implements the LargeLanguageModel interface using Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// Ensure Gemini implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*Gemini)(nil)

// NewGemini creates a Gemini adapter. A missing API key is a configuration
// error raised before any network I/O.
func NewGemini(ctx context.Context, apiKey string, logger *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI", entities.ErrConfiguration)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  defaultGeminiModel,
		logger: logger,
	}, nil
}

// Complete sends the messages to Gemini and returns the first candidate's
// text. A successful response without extractable text degrades to the raw
// serialized response rather than failing.
func (g *Gemini) Complete(ctx context.Context, messages []repositories.ChatMessage) (repositories.Reply, error) {
	var contents []*genai.Content
	for _, msg := range messages {
		var role genai.Role = genai.RoleUser
		if msg.Role == repositories.AssistantRole {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(chatTemperature)),
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: %v", entities.ErrChat, err)
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: failed to serialize response: %v", entities.ErrChat, err)
	}

	var text string
	if len(response.Candidates) > 0 && response.Candidates[0].Content != nil {
		for _, part := range response.Candidates[0].Content.Parts {
			text += part.Text
		}
	}
	if text == "" {
		g.logger.Warn("Gemini response had no extractable text, returning raw body")
		text = string(raw)
	}

	return repositories.Reply{Text: text, Raw: raw}, nil
}
