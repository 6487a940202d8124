package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

const defaultStageTimeout = 30 * time.Second

// StageObserver is notified after each completed stage of a run, in order.
type StageObserver func(runID string, result entities.StageResult)

// PipelineService orchestrates one speech-to-speech run: transcode →
// transcribe → translate to pivot → generate → translate to output →
// synthesize. Each stage strictly awaits the previous one; runs share no
// state and are never retried.
type PipelineService struct {
	transcoder   repositories.Transcoder
	transcriber  repositories.Transcriber
	translator   repositories.Translator
	synthesizer  repositories.Synthesizer
	models       repositories.ModelResolver
	pivot        entities.Language
	stageTimeout time.Duration
	logger       *zap.Logger
}

// NewPipelineService creates a pipeline orchestrator. A zero stageTimeout
// defaults to 30s per stage.
func NewPipelineService(
	transcoder repositories.Transcoder,
	transcriber repositories.Transcriber,
	translator repositories.Translator,
	synthesizer repositories.Synthesizer,
	models repositories.ModelResolver,
	stageTimeout time.Duration,
	logger *zap.Logger,
) *PipelineService {
	if stageTimeout == 0 {
		stageTimeout = defaultStageTimeout
	}
	return &PipelineService{
		transcoder:   transcoder,
		transcriber:  transcriber,
		translator:   translator,
		synthesizer:  synthesizer,
		models:       models,
		pivot:        entities.PivotLanguage,
		stageTimeout: stageTimeout,
		logger:       logger,
	}
}

// Run executes one pipeline run. The returned result always carries the
// ordered stage trace; on failure it additionally names the failed stage and
// the error is a PipelineError. The observer may be nil.
func (s *PipelineService) Run(ctx context.Context, req entities.PipelineRequest, observe StageObserver) (*entities.PipelineResult, error) {
	result := &entities.PipelineResult{RunID: uuid.New().String()}

	record := func(sr entities.StageResult) {
		result.Trace = append(result.Trace, sr)
		if observe != nil {
			observe(result.RunID, sr)
		}
	}

	fail := func(stage entities.Stage, start time.Time, err error) (*entities.PipelineResult, error) {
		record(entities.StageResult{Stage: stage, Err: err, Duration: time.Since(start)})
		result.FailedStage = stage
		s.logger.Warn("Pipeline run failed",
			zap.String("runID", result.RunID),
			zap.String("stage", string(stage)),
			zap.Error(err))
		return result, &entities.PipelineError{Stage: stage, Err: err}
	}

	// Transcribing: transcode to canonical PCM, then recognize. Skipped
	// entirely for text input.
	transcript := req.Text
	if req.Clip != nil {
		start := time.Now()
		sctx, cancel := context.WithTimeout(ctx, s.stageTimeout)

		canonical, err := s.transcoder.Transcode(sctx, *req.Clip, entities.AudioTarget{
			Format:     entities.FormatWAV,
			SampleRate: 16000,
			Channels:   1,
		})
		if err != nil {
			cancel()
			return fail(entities.StageTranscribing, start, err)
		}

		transcript, err = s.transcriber.Transcribe(sctx, canonical, req.SourceLanguage)
		cancel()
		if err != nil {
			return fail(entities.StageTranscribing, start, err)
		}
		record(entities.StageResult{Stage: entities.StageTranscribing, Text: transcript, Duration: time.Since(start)})
	}
	result.Transcript = transcript

	// TranslatingIn: skipped when the source already is the pivot language.
	// Translation degrades rather than fails, so the run always proceeds.
	llmInput := transcript
	if req.SourceLanguage != s.pivot {
		llmInput = s.translateStage(ctx, entities.StageTranslatingIn, transcript, req.SourceLanguage, s.pivot, record)
	}

	// Generating: a missing provider key and a failed completion are both
	// fatal, there is no meaningful reply to continue with.
	start := time.Now()
	model, err := s.models.Model(req.Provider)
	if err != nil {
		return fail(entities.StageGenerating, start, err)
	}

	sctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	reply, err := model.Complete(sctx, []repositories.ChatMessage{{Role: repositories.UserRole, Content: llmInput}})
	cancel()
	if err != nil {
		return fail(entities.StageGenerating, start, err)
	}
	record(entities.StageResult{Stage: entities.StageGenerating, Text: reply.Text, Duration: time.Since(start)})
	result.Reply = reply.Text

	// TranslatingOut: skipped when the output already is the pivot language.
	finalText := reply.Text
	if req.TargetLanguage != s.pivot {
		finalText = s.translateStage(ctx, entities.StageTranslatingOut, reply.Text, s.pivot, req.TargetLanguage, record)
	}
	result.FinalText = finalText

	// Synthesizing: hard failure, no substitute for missing audio.
	start = time.Now()
	sctx, cancel = context.WithTimeout(ctx, s.stageTimeout)
	clip, err := s.synthesizer.Synthesize(sctx, finalText, req.TargetLanguage, req.Voice)
	cancel()
	if err != nil {
		return fail(entities.StageSynthesizing, start, err)
	}
	record(entities.StageResult{
		Stage:       entities.StageSynthesizing,
		Audio:       clip.Data,
		AudioFormat: clip.Format,
		Duration:    time.Since(start),
	})

	result.Audio = clip.Data
	result.AudioFormat = clip.Format

	s.logger.Info("Pipeline run completed",
		zap.String("runID", result.RunID),
		zap.Int("stages", len(result.Trace)))

	return result, nil
}

// translateStage runs one translation stage, converting a typed translation
// error into a degraded result carrying the original text plus the visible
// failure marker.
func (s *PipelineService) translateStage(ctx context.Context, stage entities.Stage, text string, source, target entities.Language, record func(entities.StageResult)) string {
	start := time.Now()
	sctx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	translated, err := s.translator.Translate(sctx, text, source, target)
	cancel()

	if err != nil {
		s.logger.Warn("Translation degraded",
			zap.String("stage", string(stage)),
			zap.Error(err))
		translated = text + entities.TranslationFailedMarker
		record(entities.StageResult{Stage: stage, Text: translated, Degraded: true, Duration: time.Since(start)})
		return translated
	}

	record(entities.StageResult{Stage: stage, Text: translated, Duration: time.Since(start)})
	return translated
}
