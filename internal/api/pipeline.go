package api

import (
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/internal/websocket"
)

// postPipeline runs one full speech-to-speech pipeline. The request is
// multipart: an audio file (or a text field), language pair, provider, and
// voice options. Stage events stream to dashboard websockets as the run
// progresses.
func (h *Handler) postPipeline(c echo.Context) error {
	req := entities.PipelineRequest{
		SourceLanguage: languageOr(c.FormValue("sourceLang"), entities.PivotLanguage),
		TargetLanguage: languageOr(c.FormValue("targetLang"), entities.PivotLanguage),
		Provider:       h.providerOr(c.FormValue("provider")),
		Text:           c.FormValue("text"),
	}

	target := targetFromForm(c)
	req.Voice = entities.VoiceOptions{
		Gender:     c.FormValue("gender"),
		Format:     target.Format,
		SampleRate: target.SampleRate,
	}

	if fileHeader, err := c.FormFile("audio"); err == nil {
		clip, err := clipFromUpload(fileHeader)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read audio file"})
		}
		req.Clip = &clip
	} else if req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "either audio or text is required"})
	}

	observe := func(runID string, sr entities.StageResult) {
		h.Metrics.StageDuration.WithLabelValues(string(sr.Stage)).Observe(sr.Duration.Seconds())
		if sr.Err != nil {
			h.Metrics.StageFailures.WithLabelValues(string(sr.Stage)).Inc()
		}
		if sr.Degraded {
			h.Metrics.StagesDegraded.Inc()
		}
		h.Hub.Broadcast(websocket.NewStageEvent(runID, sr))
	}

	result, err := h.Pipeline.Run(c.Request().Context(), req, observe)
	if err != nil {
		h.Metrics.PipelineRuns.WithLabelValues("failed").Inc()
		h.Logger.Warn("Pipeline run failed",
			zap.String("runID", result.RunID),
			zap.String("stage", string(result.FailedStage)))
		return c.JSON(http.StatusBadGateway, PipelineResponse{
			RunID:       result.RunID,
			Trace:       renderTrace(result.Trace),
			FailedStage: string(result.FailedStage),
			Error:       result.FailedStage.FailureMarker(),
		})
	}

	h.Metrics.PipelineRuns.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, PipelineResponse{
		RunID:       result.RunID,
		Transcript:  result.Transcript,
		Reply:       result.Reply,
		FinalText:   result.FinalText,
		Audio:       base64.StdEncoding.EncodeToString(result.Audio),
		AudioFormat: string(result.AudioFormat),
		Trace:       renderTrace(result.Trace),
	})
}

// renderTrace converts stage results to their wire form. Failure details
// stay server-side; clients see the short bracketed marker only.
func renderTrace(trace []entities.StageResult) []StageTrace {
	out := make([]StageTrace, 0, len(trace))
	for _, sr := range trace {
		entry := StageTrace{
			Stage:      string(sr.Stage),
			Text:       sr.Text,
			Degraded:   sr.Degraded,
			DurationMs: sr.Duration.Milliseconds(),
		}
		if sr.Err != nil {
			entry.Error = sr.Stage.FailureMarker()
		}
		out = append(out, entry)
	}
	return out
}
