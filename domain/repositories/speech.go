package repositories

import (
	"context"

	"github.com/samvaad-ai/samvaad/domain/entities"
)

// Transcoder converts a captured clip into a canonical PCM form.
type Transcoder interface {
	// Transcode decodes the clip, resamples and remixes it, and re-encodes
	// it into the target format. The source clip is never mutated.
	Transcode(ctx context.Context, clip entities.AudioClip, target entities.AudioTarget) (entities.AudioClip, error)
}

// Transcriber abstracts speech recognition services.
type Transcriber interface {
	// Transcribe converts an audio clip to text in the given language.
	Transcribe(ctx context.Context, clip entities.AudioClip, lang entities.Language) (string, error)
}

// Translator abstracts text-to-text translation across language pairs.
type Translator interface {
	// Translate converts text from source to target language. When the two
	// are equal the input is returned unchanged without a network call.
	Translate(ctx context.Context, text string, source, target entities.Language) (string, error)
}

// Synthesizer abstracts text-to-speech services.
type Synthesizer interface {
	// Synthesize renders text to audio in the requested voice and format.
	Synthesize(ctx context.Context, text string, lang entities.Language, voice entities.VoiceOptions) (entities.AudioClip, error)
}
