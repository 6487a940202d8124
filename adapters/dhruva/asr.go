package dhruva

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// Ensure Client implements the Transcriber interface
var _ repositories.Transcriber = (*Client)(nil)

type asrRequest struct {
	Audio         []audioPayload `json:"audio"`
	Config        asrConfig      `json:"config"`
	ControlConfig controlConfig  `json:"controlConfig"`
}

type audioPayload struct {
	AudioContent string `json:"audioContent"`
}

type asrConfig struct {
	Language     languageConfig `json:"language"`
	ServiceID    string         `json:"serviceId"`
	AudioFormat  string         `json:"audioFormat"`
	Encoding     string         `json:"encoding"`
	SamplingRate int            `json:"samplingRate"`
}

type asrResponse struct {
	Output []struct {
		Transcript string `json:"transcript"`
		Source     string `json:"source"`
	} `json:"output"`
}

// TranscribeRaw sends the clip to the transcription service and returns the
// raw response body, for proxy endpoints that pass it through verbatim.
func (c *Client) TranscribeRaw(ctx context.Context, clip entities.AudioClip, lang entities.Language) (json.RawMessage, error) {
	request := asrRequest{
		Audio: []audioPayload{
			{AudioContent: base64.StdEncoding.EncodeToString(clip.Data)},
		},
		Config: asrConfig{
			Language: languageConfig{
				SourceLanguage:   string(lang),
				SourceScriptCode: lang.ScriptCode(),
			},
			ServiceID:    c.asrServiceID,
			AudioFormat:  string(clip.Format),
			Encoding:     "base64",
			SamplingRate: clip.SampleRate,
		},
		ControlConfig: controlConfig{DataTracking: true},
	}

	raw, err := c.post(ctx, asrPath, request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrTranscribe, err)
	}
	return raw, nil
}

// Transcribe converts an audio clip to text. The service is inconsistent
// about whether the recognized text arrives in the transcript or the source
// field, so both are treated as synonyms with transcript taking precedence.
func (c *Client) Transcribe(ctx context.Context, clip entities.AudioClip, lang entities.Language) (string, error) {
	raw, err := c.TranscribeRaw(ctx, clip, lang)
	if err != nil {
		return "", err
	}

	var response asrResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("%w: unexpected response shape: %v", entities.ErrTranscribe, err)
	}

	if len(response.Output) == 0 {
		return "", fmt.Errorf("%w: empty output", entities.ErrTranscribe)
	}

	transcript := response.Output[0].Transcript
	if transcript == "" {
		transcript = response.Output[0].Source
	}
	if transcript == "" {
		return "", fmt.Errorf("%w: no transcript in response", entities.ErrTranscribe)
	}

	c.logger.Info("Transcription completed",
		zap.String("language", string(lang)),
		zap.Int("audioBytes", len(clip.Data)))

	return transcript, nil
}
