package dhruva

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// Ensure Client implements the Translator interface
var _ repositories.Translator = (*Client)(nil)

type translationRequest struct {
	ControlConfig controlConfig     `json:"controlConfig"`
	Config        translationConfig `json:"config"`
	Input         []textPayload     `json:"input"`
}

type translationConfig struct {
	ServiceID string         `json:"serviceId"`
	Language  languageConfig `json:"language"`
}

type textPayload struct {
	Source string `json:"source"`
}

type translationResponse struct {
	Output []struct {
		Target string `json:"target"`
	} `json:"output"`
}

// Translate converts text between two supported languages. Identical source
// and target short-circuit to the input without any network call. Failures
// surface as a typed translation error; the caller decides whether the run
// degrades or aborts.
func (c *Client) Translate(ctx context.Context, text string, source, target entities.Language) (string, error) {
	if source == target {
		return text, nil
	}

	request := translationRequest{
		ControlConfig: controlConfig{DataTracking: true},
		Config: translationConfig{
			ServiceID: c.translationServiceID,
			Language: languageConfig{
				SourceLanguage:   string(source),
				SourceScriptCode: source.ScriptCode(),
				TargetLanguage:   string(target),
				TargetScriptCode: target.ScriptCode(),
			},
		},
		Input: []textPayload{{Source: text}},
	}

	raw, err := c.post(ctx, translationPath, request)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrTranslate, err)
	}

	var response translationResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return "", fmt.Errorf("%w: unexpected response shape: %v", entities.ErrTranslate, err)
	}

	if len(response.Output) == 0 || response.Output[0].Target == "" {
		return "", fmt.Errorf("%w: no target text in response", entities.ErrTranslate)
	}

	c.logger.Info("Translation completed",
		zap.String("source", string(source)),
		zap.String("target", string(target)))

	return response.Output[0].Target, nil
}
