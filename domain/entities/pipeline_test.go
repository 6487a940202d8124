package entities

import (
	"errors"
	"testing"
)

func TestStageFailureMarkers(t *testing.T) {
	cases := []struct {
		stage  Stage
		marker string
	}{
		{StageTranscribing, "[ASR failed]"},
		{StageTranslatingIn, "[Translation failed]"},
		{StageTranslatingOut, "[Translation failed]"},
		{StageGenerating, "[LLM failed]"},
		{StageSynthesizing, "[TTS failed]"},
		{Stage("unknown"), "[Pipeline failed]"},
	}

	for _, c := range cases {
		if got := c.stage.FailureMarker(); got != c.marker {
			t.Errorf("Stage %s: expected marker %s, got %s", c.stage, c.marker, got)
		}
	}
}

func TestPipelineErrorUnwrap(t *testing.T) {
	err := &PipelineError{Stage: StageTranscribing, Err: ErrTranscribe}

	if !errors.Is(err, ErrTranscribe) {
		t.Error("Expected errors.Is to match the wrapped sentinel")
	}

	var pErr *PipelineError
	if !errors.As(error(err), &pErr) {
		t.Fatal("Expected errors.As to extract PipelineError")
	}
	if pErr.Stage != StageTranscribing {
		t.Errorf("Expected stage Transcribing, got %s", pErr.Stage)
	}
}

func TestPipelineResultFailed(t *testing.T) {
	ok := &PipelineResult{}
	if ok.Failed() {
		t.Error("Result with no failed stage should not report failure")
	}

	failed := &PipelineResult{FailedStage: StageSynthesizing}
	if !failed.Failed() {
		t.Error("Result with a failed stage should report failure")
	}
}
