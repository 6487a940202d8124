package websocket

import "github.com/samvaad-ai/samvaad/domain/entities"

// StageEvent is broadcast after each completed pipeline stage so the
// dashboard can render a live stage trace.
type StageEvent struct {
	Type       string `json:"type"`
	RunID      string `json:"run_id"`
	Stage      string `json:"stage"`
	Text       string `json:"text,omitempty"`
	Degraded   bool   `json:"degraded,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// NewStageEvent builds the wire event for one stage result. Failures are
// rendered as the stage's short bracketed marker, not a structured error.
func NewStageEvent(runID string, result entities.StageResult) StageEvent {
	event := StageEvent{
		Type:       "stage",
		RunID:      runID,
		Stage:      string(result.Stage),
		Text:       result.Text,
		Degraded:   result.Degraded,
		DurationMs: result.Duration.Milliseconds(),
	}
	if result.Err != nil {
		event.Error = result.Stage.FailureMarker()
	}
	return event
}
