package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
)

// asrConfigEnvelope picks the source language out of the config form field
// the dashboard sends alongside the audio.
type asrConfigEnvelope struct {
	Config struct {
		Language struct {
			SourceLanguage string `json:"sourceLanguage"`
		} `json:"language"`
	} `json:"config"`
}

// clipFromUpload reads an uploaded file into an AudioClip, inferring the
// container format from the declared MIME type or the file extension.
func clipFromUpload(fileHeader *multipart.FileHeader) (entities.AudioClip, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return entities.AudioClip{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return entities.AudioClip{}, err
	}

	return entities.AudioClip{
		Data:   data,
		Format: uploadFormat(fileHeader),
	}, nil
}

func uploadFormat(fileHeader *multipart.FileHeader) entities.AudioFormat {
	switch fileHeader.Header.Get("Content-Type") {
	case "audio/webm":
		return entities.FormatWebM
	case "audio/ogg":
		return entities.FormatOGG
	case "audio/mp4":
		return entities.FormatMP4
	case "audio/mpeg":
		return entities.FormatMP3
	case "audio/wav", "audio/x-wav":
		return entities.FormatWAV
	case "audio/flac", "audio/x-flac":
		return entities.FormatFLAC
	}

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".wav":
		return entities.FormatWAV
	case ".mp3":
		return entities.FormatMP3
	case ".flac":
		return entities.FormatFLAC
	case ".ogg":
		return entities.FormatOGG
	case ".m4a", ".mp4":
		return entities.FormatMP4
	}

	// Browser captures default to webm.
	return entities.FormatWebM
}

// targetFromForm reads the conversion parameters, snapping unsupported
// values to the defaults the way the original proxy did.
func targetFromForm(c echo.Context) entities.AudioTarget {
	sampleRate, err := strconv.Atoi(c.FormValue("sampleRate"))
	if err != nil || !entities.ValidSampleRate(sampleRate) {
		sampleRate = 16000
	}

	channels, err := strconv.Atoi(c.FormValue("channels"))
	if err != nil || !entities.ValidChannels(channels) {
		channels = 1
	}

	format := entities.AudioFormat(c.FormValue("format"))
	if !entities.SynthesisFormat(format) {
		format = entities.FormatWAV
	}

	return entities.AudioTarget{Format: format, SampleRate: sampleRate, Channels: channels}
}

// postASR transcodes an uploaded capture server-side and forwards it to the
// transcription service, passing the gateway response through verbatim.
func (h *Handler) postASR(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No audio file provided"})
	}

	var envelope asrConfigEnvelope
	if err := json.Unmarshal([]byte(c.FormValue("config")), &envelope); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid config format"})
	}
	lang := languageOr(envelope.Config.Language.SourceLanguage, entities.PivotLanguage)

	clip, err := clipFromUpload(fileHeader)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read audio file"})
	}

	ctx := c.Request().Context()
	converted, err := h.Transcoder.Transcode(ctx, clip, targetFromForm(c))
	if err != nil {
		h.Metrics.TranscodeErrors.Inc()
		h.Logger.Error("ASR transcode failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: entities.StageTranscribing.FailureMarker()})
	}

	// The primary gateway response is passed through untouched; alternate
	// backends get their transcript wrapped in the same shape.
	if h.Gateway != nil {
		raw, err := h.Gateway.TranscribeRaw(ctx, converted, lang)
		if err != nil {
			h.Logger.Error("ASR gateway call failed", zap.Error(err))
			return c.JSON(http.StatusBadGateway, ErrorResponse{Error: entities.StageTranscribing.FailureMarker()})
		}
		return c.JSONBlob(http.StatusOK, raw)
	}

	transcript, err := h.Transcriber.Transcribe(ctx, converted, lang)
	if err != nil {
		h.Logger.Error("ASR transcription failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: entities.StageTranscribing.FailureMarker()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"output": []map[string]string{{"transcript": transcript}},
	})
}

// postTranslate serves the dashboard's translation panel. Failures degrade
// to the marked-up original rather than erroring, matching the pipeline's
// translation policy.
func (h *Handler) postTranslate(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text is required"})
	}

	source := languageOr(req.SourceLang, entities.PivotLanguage)
	target := languageOr(req.TargetLang, entities.PivotLanguage)

	translated, err := h.Translator.Translate(c.Request().Context(), req.Text, source, target)
	if err != nil {
		if errors.Is(err, entities.ErrTranslate) {
			h.Metrics.StagesDegraded.Inc()
			return c.JSON(http.StatusOK, TranslateResponse{
				Translation: req.Text + entities.TranslationFailedMarker,
				Degraded:    true,
			})
		}
		h.Logger.Error("Translation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: entities.StageTranslatingIn.FailureMarker()})
	}

	return c.JSON(http.StatusOK, TranslateResponse{Translation: translated})
}

// postTTS synthesizes text to speech, mirroring the gateway response shape.
func (h *Handler) postTTS(c echo.Context) error {
	var req TTSRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Text == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "text is required"})
	}

	lang := languageOr(req.Lang, entities.PivotLanguage)
	voice := entities.VoiceOptions{
		Gender:     req.Gender,
		Format:     entities.AudioFormat(req.Format),
		SampleRate: req.SampleRate,
	}

	clip, err := h.Synthesizer.Synthesize(c.Request().Context(), req.Text, lang, voice)
	if err != nil {
		h.Logger.Error("TTS failed", zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: entities.StageSynthesizing.FailureMarker()})
	}

	return c.JSON(http.StatusOK, TTSResponse{
		Audio: []AudioPayload{{AudioContent: base64.StdEncoding.EncodeToString(clip.Data)}},
	})
}
