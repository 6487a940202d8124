package api

import "time"

// ChatRequest is the chat proxy payload.
type ChatRequest struct {
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

// ConversationRequest is the payload for the translated chat path.
type ConversationRequest struct {
	SessionID  string `json:"session_id,omitempty"`
	Provider   string `json:"provider,omitempty"`
	Message    string `json:"message"`
	InputLang  string `json:"input_lang,omitempty"`
	OutputLang string `json:"output_lang,omitempty"`
}

// ConversationResponse is the reply for the translated chat path.
type ConversationResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Degraded  bool   `json:"degraded,omitempty"`
}

// TranslateRequest is the payload for the translation test endpoint.
type TranslateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

// TranslateResponse carries a translation, possibly degraded with the
// visible failure marker.
type TranslateResponse struct {
	Translation string `json:"translation"`
	Degraded    bool   `json:"degraded,omitempty"`
}

// TTSRequest is the payload for the synthesis endpoint.
type TTSRequest struct {
	Text       string `json:"text"`
	Lang       string `json:"lang"`
	Gender     string `json:"gender,omitempty"`
	Format     string `json:"format,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
}

// TTSResponse mirrors the gateway's synthesis response shape.
type TTSResponse struct {
	Audio []AudioPayload `json:"audio"`
}

// AudioPayload is one base64 audio blob.
type AudioPayload struct {
	AudioContent string `json:"audioContent"`
}

// KeysResponse reports which chat providers are configured.
type KeysResponse struct {
	HasKeys   bool     `json:"hasKeys"`
	Providers []string `json:"providers"`
}

// SessionResponse is the issued dashboard session token.
type SessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// StageTrace is one entry of a pipeline run's observable trace.
type StageTrace struct {
	Stage      string `json:"stage"`
	Text       string `json:"text,omitempty"`
	Degraded   bool   `json:"degraded,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// PipelineResponse is the outcome of a speech-to-speech run.
type PipelineResponse struct {
	RunID       string       `json:"run_id"`
	Transcript  string       `json:"transcript,omitempty"`
	Reply       string       `json:"reply,omitempty"`
	FinalText   string       `json:"final_text,omitempty"`
	Audio       string       `json:"audio,omitempty"`
	AudioFormat string       `json:"audio_format,omitempty"`
	Trace       []StageTrace `json:"trace"`
	FailedStage string       `json:"failed_stage,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
