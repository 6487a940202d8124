// Package tts provides an alternative synthesis backend on the Eleven Labs
// API, selectable when the primary inference gateway is not used.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/adapters/transcode"
	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

const (
	defaultAPIBaseURL = "https://api.elevenlabs.io/v1"
	defaultVoiceID    = "21m00Tcm4TlvDq8ikWAM" // Rachel voice
	defaultModelID    = "eleven_multilingual_v2"
)

// ElevenLabs implements the Synthesizer interface using the Eleven Labs API.
type ElevenLabs struct {
	apiKey     string
	apiBaseURL string
	voiceID    string
	modelID    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Ensure ElevenLabs implements the Synthesizer interface
var _ repositories.Synthesizer = (*ElevenLabs)(nil)

type elevenLabsRequest struct {
	Text          string             `json:"text"`
	ModelID       string             `json:"model_id"`
	LanguageCode  string             `json:"language_code,omitempty"`
	VoiceSettings elevenLabsSettings `json:"voice_settings"`
}

type elevenLabsSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// NewElevenLabs creates an Eleven Labs synthesizer. A missing API key is a
// configuration error raised before any network I/O.
func NewElevenLabs(apiKey string, logger *zap.Logger) (*ElevenLabs, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: ELEVEN_LABS", entities.ErrConfiguration)
	}

	return &ElevenLabs{
		apiKey:     apiKey,
		apiBaseURL: defaultAPIBaseURL,
		voiceID:    defaultVoiceID,
		modelID:    defaultModelID,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}, nil
}

// outputFormat maps the requested voice options onto an Eleven Labs output
// format name. The API has no FLAC output, so FLAC requests fail hard like
// any other synthesis error.
func outputFormat(voice entities.VoiceOptions) (string, error) {
	switch voice.Format {
	case entities.FormatMP3, "":
		return "mp3_44100_128", nil
	case entities.FormatWAV:
		rate := voice.SampleRate
		if !entities.ValidSampleRate(rate) {
			rate = 16000
		}
		return fmt.Sprintf("pcm_%d", rate), nil
	default:
		return "", fmt.Errorf("unsupported output format %q", voice.Format)
	}
}

// Synthesize renders text to speech in one blocking round trip.
func (e *ElevenLabs) Synthesize(ctx context.Context, text string, lang entities.Language, voice entities.VoiceOptions) (entities.AudioClip, error) {
	if strings.TrimSpace(text) == "" {
		return entities.AudioClip{}, fmt.Errorf("%w: text cannot be empty", entities.ErrSynthesize)
	}

	format, err := outputFormat(voice)
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrSynthesize, err)
	}

	requestBody, err := json.Marshal(elevenLabsRequest{
		Text:         text,
		ModelID:      e.modelID,
		LanguageCode: string(lang),
		VoiceSettings: elevenLabsSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: failed to marshal request: %v", entities.ErrSynthesize, err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s", e.apiBaseURL, e.voiceID, format)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrSynthesize, err)
	}

	accept := "audio/mpeg"
	if strings.HasPrefix(format, "pcm") {
		accept = "audio/pcm"
	}
	httpReq.Header.Set("Accept", accept)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrSynthesize, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorBody, _ := io.ReadAll(resp.Body)
		return entities.AudioClip{}, fmt.Errorf("%w: API returned status %d: %s", entities.ErrSynthesize, resp.StatusCode, string(errorBody))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: failed to read audio: %v", entities.ErrSynthesize, err)
	}
	if len(audio) == 0 {
		return entities.AudioClip{}, fmt.Errorf("%w: empty audio response", entities.ErrSynthesize)
	}

	clipFormat := voice.Format
	if clipFormat == "" {
		clipFormat = entities.FormatMP3
	}

	// PCM output arrives headerless; wrap it so the clip is a real WAV.
	if strings.HasPrefix(format, "pcm") {
		rate := voice.SampleRate
		if !entities.ValidSampleRate(rate) {
			rate = 16000
		}
		audio, err = transcode.EncodeWAV(audio, rate, 1)
		if err != nil {
			return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrSynthesize, err)
		}
	}

	e.logger.Info("ElevenLabs synthesis completed",
		zap.String("language", string(lang)),
		zap.Int("audioBytes", len(audio)))

	return entities.AudioClip{
		Data:       audio,
		Format:     clipFormat,
		SampleRate: voice.SampleRate,
		Channels:   1,
	}, nil
}
