package entities

import (
	"errors"
	"fmt"
	"time"
)

// Stage is one discrete step of the speech-to-speech pipeline.
type Stage string

const (
	StageTranscribing   Stage = "Transcribing"
	StageTranslatingIn  Stage = "TranslatingIn"
	StageGenerating     Stage = "Generating"
	StageTranslatingOut Stage = "TranslatingOut"
	StageSynthesizing   Stage = "Synthesizing"
)

// Failure categories wrapped by adapters and surfaced through PipelineError.
var (
	ErrConfiguration = errors.New("provider not configured")
	ErrTranscode     = errors.New("audio transcode failed")
	ErrTranscribe    = errors.New("transcription failed")
	ErrTranslate     = errors.New("translation failed")
	ErrSynthesize    = errors.New("speech synthesis failed")
	ErrChat          = errors.New("chat completion failed")
)

// TranslationFailedMarker is appended to the original text when a
// translation stage degrades instead of failing the run.
const TranslationFailedMarker = " [Translation failed]"

// FailureMarker is the short bracketed string rendered to the user when the
// stage fails hard.
func (s Stage) FailureMarker() string {
	switch s {
	case StageTranscribing:
		return "[ASR failed]"
	case StageTranslatingIn, StageTranslatingOut:
		return "[Translation failed]"
	case StageGenerating:
		return "[LLM failed]"
	case StageSynthesizing:
		return "[TTS failed]"
	}
	return "[Pipeline failed]"
}

// PipelineError tags a failure with the stage it occurred in.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// VoiceOptions are the synthesis parameters of one pipeline run.
type VoiceOptions struct {
	Gender     string
	Format     AudioFormat
	SampleRate int
}

// PipelineRequest fully determines one orchestrator run. It is immutable
// once constructed. Exactly one of Clip and Text is the input.
type PipelineRequest struct {
	Clip           *AudioClip
	Text           string
	SourceLanguage Language
	TargetLanguage Language
	Provider       string
	Voice          VoiceOptions
}

// StageResult is the outcome of exactly one pipeline stage.
type StageResult struct {
	Stage       Stage
	Text        string
	Audio       []byte
	AudioFormat AudioFormat
	Degraded    bool
	Err         error
	Duration    time.Duration
}

// PipelineResult carries the ordered stage trace plus the terminal artifact
// of a run. FailedStage is empty when the run reached Done.
type PipelineResult struct {
	RunID       string
	Trace       []StageResult
	Transcript  string
	Reply       string
	FinalText   string
	Audio       []byte
	AudioFormat AudioFormat
	FailedStage Stage
}

// Failed reports whether the run ended in the absorbing failure state.
func (r *PipelineResult) Failed() bool {
	return r.FailedStage != ""
}
