// Package api wires the dashboard-facing HTTP surface.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/adapters/dhruva"
	"github.com/samvaad-ai/samvaad/adapters/llm"
	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
	"github.com/samvaad-ai/samvaad/internal/auth"
	"github.com/samvaad-ai/samvaad/internal/metrics"
	"github.com/samvaad-ai/samvaad/internal/websocket"
	"github.com/samvaad-ai/samvaad/usecase"
)

// Handler bundles the dependencies of the HTTP surface.
type Handler struct {
	Gateway         *dhruva.Client
	DefaultProvider string

	Transcoder  repositories.Transcoder
	Transcriber repositories.Transcriber
	Translator  repositories.Translator
	Synthesizer repositories.Synthesizer
	Models      *llm.Registry
	Pipeline    *usecase.PipelineService
	Chat        *usecase.ChatService
	Hub         *websocket.Hub
	Issuer      *auth.TokenIssuer
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// InitRoutes initializes all API routes.
func InitRoutes(e *echo.Echo, h *Handler) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "samvaad-server",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws", func(c echo.Context) error {
		return websocket.HandleWebSocket(h.Hub, c, h.Logger)
	})

	api := e.Group("/api")

	// Open endpoints the dashboard needs before it holds a token.
	api.GET("/keys", h.getKeys)
	if h.Issuer != nil {
		api.POST("/sessions", h.createSession)
	}

	protected := api.Group("", h.sessionAuth())
	protected.POST("/chat", h.postChat)
	protected.POST("/conversation", h.postConversation)
	protected.GET("/conversation/:id", h.getConversation)
	protected.POST("/asr", h.postASR)
	protected.POST("/translate", h.postTranslate)
	protected.POST("/tts", h.postTTS)
	protected.POST("/pipeline", h.postPipeline)
}

// sessionAuth validates bearer session tokens when an issuer is configured;
// otherwise it is a no-op.
func (h *Handler) sessionAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if h.Issuer == nil {
				return next(c)
			}

			header := c.Request().Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			}

			claims, err := h.Issuer.ValidateToken(strings.TrimPrefix(header, prefix))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
			}

			c.Set("session_id", claims.SessionID)
			return next(c)
		}
	}
}

// createSession issues a dashboard session token.
func (h *Handler) createSession(c echo.Context) error {
	sessionID := uuid.New().String()
	token, expiresAt, err := h.Issuer.GenerateSessionToken(sessionID)
	if err != nil {
		h.Logger.Error("Failed to issue session token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to issue token"})
	}

	return c.JSON(http.StatusOK, SessionResponse{
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// getKeys reports which chat providers have configured credentials.
func (h *Handler) getKeys(c echo.Context) error {
	providers := h.Models.Providers()
	return c.JSON(http.StatusOK, KeysResponse{
		HasKeys:   len(providers) > 0,
		Providers: providers,
	})
}

// postChat forwards a prompt to the selected provider and returns the
// provider's raw JSON response verbatim.
func (h *Handler) postChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
	}

	provider := h.providerOr(req.Provider)
	h.Metrics.ChatRequests.WithLabelValues(provider).Inc()

	model, err := h.Models.Model(provider)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "API key not configured"})
	}

	reply, err := model.Complete(c.Request().Context(), []repositories.ChatMessage{
		{Role: repositories.UserRole, Content: req.Message},
	})
	if err != nil {
		h.Logger.Error("Chat completion failed", zap.String("provider", provider), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: entities.StageGenerating.FailureMarker()})
	}

	return c.JSONBlob(http.StatusOK, reply.Raw)
}

// postConversation runs the translated chat path with session history.
func (h *Handler) postConversation(c echo.Context) error {
	var req ConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
	}

	provider := h.providerOr(req.Provider)

	inputLang := languageOr(req.InputLang, entities.PivotLanguage)
	outputLang := languageOr(req.OutputLang, entities.PivotLanguage)

	result, err := h.Chat.Send(c.Request().Context(), req.SessionID, provider, req.Message, inputLang, outputLang)
	if err != nil {
		if errors.Is(err, entities.ErrConfiguration) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "API key not configured"})
		}
		h.Logger.Error("Conversation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: entities.StageGenerating.FailureMarker()})
	}

	return c.JSON(http.StatusOK, ConversationResponse{
		SessionID: result.SessionID,
		Reply:     result.Reply,
		Degraded:  result.Degraded,
	})
}

// getConversation returns the in-memory message log of a session.
func (h *Handler) getConversation(c echo.Context) error {
	messages := h.Chat.History(c.Param("id"))
	if messages == nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "unknown session"})
	}
	return c.JSON(http.StatusOK, messages)
}

// providerOr applies the configured default provider to an empty selection.
func (h *Handler) providerOr(provider string) string {
	if provider != "" {
		return provider
	}
	if h.DefaultProvider != "" {
		return h.DefaultProvider
	}
	return llm.ProviderGemini
}

// languageOr parses a language code, falling back when empty or unknown.
func languageOr(code string, fallback entities.Language) entities.Language {
	lang := entities.Language(code)
	if code == "" || !lang.Supported() {
		return fallback
	}
	return lang
}
