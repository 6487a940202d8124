package entities

import "testing"

func TestValidSampleRate(t *testing.T) {
	for _, rate := range []int{8000, 16000, 48000} {
		if !ValidSampleRate(rate) {
			t.Errorf("Expected rate %d to be valid", rate)
		}
	}
	for _, rate := range []int{0, 11025, 22050, 44100, -1} {
		if ValidSampleRate(rate) {
			t.Errorf("Expected rate %d to be invalid", rate)
		}
	}
}

func TestValidChannels(t *testing.T) {
	if !ValidChannels(1) || !ValidChannels(2) {
		t.Error("Expected mono and stereo to be valid")
	}
	if ValidChannels(0) || ValidChannels(3) {
		t.Error("Expected channel counts outside {1,2} to be invalid")
	}
}

func TestSynthesisFormat(t *testing.T) {
	for _, f := range []AudioFormat{FormatWAV, FormatMP3, FormatFLAC} {
		if !SynthesisFormat(f) {
			t.Errorf("Expected %s to be a synthesis format", f)
		}
	}
	for _, f := range []AudioFormat{FormatWebM, FormatOGG, FormatMP4, AudioFormat("aac")} {
		if SynthesisFormat(f) {
			t.Errorf("Expected %s to be rejected for synthesis", f)
		}
	}
}

func TestAudioTargetValidate(t *testing.T) {
	good := AudioTarget{Format: FormatWAV, SampleRate: 16000, Channels: 1}
	if err := good.Validate(); err != nil {
		t.Errorf("Expected valid target, got error: %v", err)
	}

	bad := []AudioTarget{
		{Format: FormatWebM, SampleRate: 16000, Channels: 1},
		{Format: FormatWAV, SampleRate: 44100, Channels: 1},
		{Format: FormatWAV, SampleRate: 16000, Channels: 5},
	}
	for _, target := range bad {
		if err := target.Validate(); err == nil {
			t.Errorf("Expected target %+v to be rejected", target)
		}
	}
}
