package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// ChatService handles the text chat path: translate the user's message to
// the pivot language, route it through the configured model, and translate
// the reply back. Conversation logs are held in memory per session and are
// never persisted.
type ChatService struct {
	translator repositories.Translator
	models     repositories.ModelResolver
	pivot      entities.Language
	logger     *zap.Logger

	mu       sync.Mutex
	sessions map[string]*entities.Conversation
}

// NewChatService creates a chat service.
func NewChatService(translator repositories.Translator, models repositories.ModelResolver, logger *zap.Logger) *ChatService {
	return &ChatService{
		translator: translator,
		models:     models,
		pivot:      entities.PivotLanguage,
		logger:     logger,
		sessions:   make(map[string]*entities.Conversation),
	}
}

// ChatResult is the outcome of one chat exchange.
type ChatResult struct {
	SessionID string
	Reply     string
	Raw       []byte
	Degraded  bool
}

// Send routes one user message through translation and the model. An empty
// sessionID starts a new conversation. Translation degrades with a marker;
// model resolution and completion failures are returned to the caller.
func (s *ChatService) Send(ctx context.Context, sessionID, provider, text string, inputLang, outputLang entities.Language) (*ChatResult, error) {
	conv := s.session(sessionID)

	conv.Append(entities.MessageRoleUser, text, inputLang, outputLang)

	degraded := false
	llmInput := text
	if inputLang != s.pivot {
		translated, err := s.translator.Translate(ctx, text, inputLang, s.pivot)
		if err != nil {
			s.logger.Warn("Inbound chat translation degraded", zap.Error(err))
			translated = text + entities.TranslationFailedMarker
			degraded = true
		}
		llmInput = translated
	}

	model, err := s.models.Model(provider)
	if err != nil {
		return nil, err
	}

	reply, err := model.Complete(ctx, []repositories.ChatMessage{{Role: repositories.UserRole, Content: llmInput}})
	if err != nil {
		return nil, err
	}

	finalReply := reply.Text
	if outputLang != s.pivot {
		translated, err := s.translator.Translate(ctx, reply.Text, s.pivot, outputLang)
		if err != nil {
			s.logger.Warn("Outbound chat translation degraded", zap.Error(err))
			translated = reply.Text + entities.TranslationFailedMarker
			degraded = true
		}
		finalReply = translated
	}

	conv.Append(entities.MessageRoleAssistant, finalReply, inputLang, outputLang)

	return &ChatResult{
		SessionID: conv.ID,
		Reply:     finalReply,
		Raw:       reply.Raw,
		Degraded:  degraded,
	}, nil
}

// History returns a copy of the conversation log for a session, or nil when
// unknown.
func (s *ChatService) History(sessionID string) []entities.ConversationMessage {
	s.mu.Lock()
	conv, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return conv.Messages()
}

// session returns the existing conversation or creates a fresh one.
func (s *ChatService) session(sessionID string) *entities.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if conv, ok := s.sessions[sessionID]; ok {
			return conv
		}
	}

	conv := entities.NewConversation()
	s.sessions[conv.ID] = conv
	return conv
}
