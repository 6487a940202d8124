package entities

import "fmt"

// AudioFormat identifies an audio container or encoding.
type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatFLAC AudioFormat = "flac"
	FormatWebM AudioFormat = "webm"
	FormatOGG  AudioFormat = "ogg"
	FormatMP4  AudioFormat = "mp4"
)

// AudioClip is an immutable audio payload with its declared parameters.
// Transcoding produces a new clip, it never mutates the source.
type AudioClip struct {
	Data       []byte
	Format     AudioFormat
	SampleRate int
	Channels   int
}

// AudioTarget describes the canonical form a clip should be transcoded into.
type AudioTarget struct {
	Format     AudioFormat
	SampleRate int
	Channels   int
}

// ValidSampleRate reports whether the rate is supported by the inference
// services.
func ValidSampleRate(rate int) bool {
	switch rate {
	case 8000, 16000, 48000:
		return true
	}
	return false
}

// ValidChannels reports whether the channel count is supported.
func ValidChannels(channels int) bool {
	return channels == 1 || channels == 2
}

// SynthesisFormat reports whether the format can be requested from the
// synthesis service.
func SynthesisFormat(f AudioFormat) bool {
	switch f {
	case FormatWAV, FormatMP3, FormatFLAC:
		return true
	}
	return false
}

// Validate checks the target against the supported parameter sets.
func (t AudioTarget) Validate() error {
	if !SynthesisFormat(t.Format) {
		return fmt.Errorf("unsupported target format %q", t.Format)
	}
	if !ValidSampleRate(t.SampleRate) {
		return fmt.Errorf("unsupported sample rate %d", t.SampleRate)
	}
	if !ValidChannels(t.Channels) {
		return fmt.Errorf("unsupported channel count %d", t.Channels)
	}
	return nil
}
