// Package stt provides an alternative transcription backend on Google Cloud
// Speech-to-Text, selectable when the primary inference gateway is not used.
package stt

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// GoogleTranscriber implements the Transcriber interface for Google Cloud.
// Credentials come from the ambient application-default credential chain.
type GoogleTranscriber struct {
	logger *zap.Logger
}

// Ensure GoogleTranscriber implements the Transcriber interface
var _ repositories.Transcriber = (*GoogleTranscriber)(nil)

// NewGoogleTranscriber creates a Google Cloud transcriber.
func NewGoogleTranscriber(logger *zap.Logger) *GoogleTranscriber {
	return &GoogleTranscriber{logger: logger}
}

// Transcribe recognizes the clip in one blocking call. The clip must be in
// canonical PCM WAV form already.
func (g *GoogleTranscriber) Transcribe(ctx context.Context, clip entities.AudioClip, lang entities.Language) (string, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create speech client: %v", entities.ErrTranscribe, err)
	}
	defer client.Close()

	response, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(clip.SampleRate),
			AudioChannelCount: int32(clip.Channels),
			LanguageCode:      string(lang),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: clip.Data},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", entities.ErrTranscribe, err)
	}

	var transcript string
	for _, result := range response.Results {
		if len(result.Alternatives) > 0 {
			transcript += result.Alternatives[0].Transcript
		}
	}
	if transcript == "" {
		return "", fmt.Errorf("%w: no speech detected in audio", entities.ErrTranscribe)
	}

	g.logger.Info("Google transcription completed",
		zap.String("language", string(lang)),
		zap.Int("audioBytes", len(clip.Data)))

	return transcript, nil
}
