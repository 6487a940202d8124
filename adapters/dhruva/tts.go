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

// Ensure Client implements the Synthesizer interface
var _ repositories.Synthesizer = (*Client)(nil)

type ttsRequest struct {
	Input         []textPayload `json:"input"`
	Config        ttsConfig     `json:"config"`
	ControlConfig controlConfig `json:"controlConfig"`
}

type ttsConfig struct {
	ServiceID    string         `json:"serviceId"`
	Gender       string         `json:"gender"`
	SamplingRate int            `json:"samplingRate"`
	AudioFormat  string         `json:"audioFormat"`
	Language     languageConfig `json:"language"`
}

type ttsResponse struct {
	Audio []struct {
		AudioContent string `json:"audioContent"`
	} `json:"audio"`
}

// Synthesize renders text to speech. There is no meaningful substitute for
// missing audio, so any failure is hard.
func (c *Client) Synthesize(ctx context.Context, text string, lang entities.Language, voice entities.VoiceOptions) (entities.AudioClip, error) {
	gender := voice.Gender
	if gender == "" {
		gender = "male"
	}
	format := voice.Format
	if format == "" {
		format = entities.FormatWAV
	}

	request := ttsRequest{
		Input: []textPayload{{Source: text}},
		Config: ttsConfig{
			ServiceID:    c.ttsServiceID,
			Gender:       gender,
			SamplingRate: voice.SampleRate,
			AudioFormat:  string(format),
			Language: languageConfig{
				SourceLanguage:   string(lang),
				SourceScriptCode: lang.ScriptCode(),
			},
		},
		ControlConfig: controlConfig{DataTracking: true},
	}

	raw, err := c.post(ctx, ttsPath, request)
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrSynthesize, err)
	}

	var response ttsResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: unexpected response shape: %v", entities.ErrSynthesize, err)
	}

	if len(response.Audio) == 0 || response.Audio[0].AudioContent == "" {
		return entities.AudioClip{}, fmt.Errorf("%w: no audio in response", entities.ErrSynthesize)
	}

	data, err := base64.StdEncoding.DecodeString(response.Audio[0].AudioContent)
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: failed to decode audio content: %v", entities.ErrSynthesize, err)
	}

	c.logger.Info("Synthesis completed",
		zap.String("language", string(lang)),
		zap.Int("audioBytes", len(data)))

	return entities.AudioClip{
		Data:       data,
		Format:     format,
		SampleRate: voice.SampleRate,
		Channels:   1,
	}, nil
}
