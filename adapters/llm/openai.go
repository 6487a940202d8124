package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// OpenAI implements the LargeLanguageModel interface using the OpenAI chat
// completions API.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Ensure OpenAI implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI adapter. A missing API key is a configuration
// error raised before any network I/O.
func NewOpenAI(apiKey string, logger *zap.Logger) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI", entities.ErrConfiguration)
	}

	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  openai.GPT3Dot5Turbo,
		logger: logger,
	}, nil
}

// Complete sends the messages as a chat completion and extracts
// choices[0].message.content. A successful response without choices
// degrades to the raw serialized response rather than failing.
func (o *OpenAI) Complete(ctx context.Context, messages []repositories.ChatMessage) (repositories.Reply, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	response, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    chatMessages,
		Temperature: chatTemperature,
	})
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: %v", entities.ErrChat, err)
	}

	raw, err := json.Marshal(response)
	if err != nil {
		return repositories.Reply{}, fmt.Errorf("%w: failed to serialize response: %v", entities.ErrChat, err)
	}

	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		o.logger.Warn("OpenAI response had no extractable text, returning raw body")
		return repositories.Reply{Text: string(raw), Raw: raw}, nil
	}

	return repositories.Reply{Text: response.Choices[0].Message.Content, Raw: raw}, nil
}
