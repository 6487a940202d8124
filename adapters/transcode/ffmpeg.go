package transcode

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/samvaad-ai/samvaad/domain/entities"
	"github.com/samvaad-ai/samvaad/domain/repositories"
)

// Ensure FFmpeg implements the Transcoder interface
var _ repositories.Transcoder = (*FFmpeg)(nil)

// FFmpeg converts captured audio into the canonical PCM form. PCM WAV input
// is handled in-process; compressed containers are decoded by the ffmpeg
// binary through temp files, which are removed on every exit path.
type FFmpeg struct {
	binary  string
	workDir string
	logger  *zap.Logger
}

// Option configures an FFmpeg transcoder.
type Option func(*FFmpeg)

// WithBinary overrides the ffmpeg binary path.
func WithBinary(path string) Option {
	return func(f *FFmpeg) { f.binary = path }
}

// WithWorkDir overrides the directory used for temporary files.
func WithWorkDir(dir string) Option {
	return func(f *FFmpeg) { f.workDir = dir }
}

// NewFFmpeg creates a transcoder using the ffmpeg binary on PATH and the
// system temp directory unless overridden.
func NewFFmpeg(logger *zap.Logger, opts ...Option) *FFmpeg {
	f := &FFmpeg{
		binary:  "ffmpeg",
		workDir: os.TempDir(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Transcode decodes the clip, resamples and remixes it, and re-encodes it
// into the target format. Decode errors abort the clip's use; partial
// output is never substituted.
func (f *FFmpeg) Transcode(ctx context.Context, clip entities.AudioClip, target entities.AudioTarget) (entities.AudioClip, error) {
	if err := target.Validate(); err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrTranscode, err)
	}
	if len(clip.Data) == 0 {
		return entities.AudioClip{}, fmt.Errorf("%w: empty audio payload", entities.ErrTranscode)
	}

	if clip.Format == entities.FormatWAV && target.Format == entities.FormatWAV {
		out, err := f.transcodeWAV(clip.Data, target)
		if err != nil {
			return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrTranscode, err)
		}
		return entities.AudioClip{
			Data:       out,
			Format:     entities.FormatWAV,
			SampleRate: target.SampleRate,
			Channels:   target.Channels,
		}, nil
	}

	out, err := f.runFFmpeg(ctx, clip, target)
	if err != nil {
		return entities.AudioClip{}, fmt.Errorf("%w: %v", entities.ErrTranscode, err)
	}
	return entities.AudioClip{
		Data:       out,
		Format:     target.Format,
		SampleRate: target.SampleRate,
		Channels:   target.Channels,
	}, nil
}

// transcodeWAV is the in-process path for PCM WAV input.
func (f *FFmpeg) transcodeWAV(data []byte, target entities.AudioTarget) ([]byte, error) {
	info, pcm, err := DecodeWAV(data)
	if err != nil {
		return nil, err
	}

	samples := bytesToSamples(pcm)
	samples = remix(samples, info.Channels, target.Channels)
	samples = resample(samples, target.Channels, info.SampleRate, target.SampleRate)

	return EncodeWAV(samplesToBytes(samples), target.SampleRate, target.Channels)
}

// codecFor maps the target format to the ffmpeg codec name.
func codecFor(format entities.AudioFormat) string {
	switch format {
	case entities.FormatMP3:
		return "libmp3lame"
	case entities.FormatFLAC:
		return "flac"
	default:
		return "pcm_s16le"
	}
}

// runFFmpeg shells out to ffmpeg through temp files. Both files are removed
// unconditionally, on success and on failure.
func (f *FFmpeg) runFFmpeg(ctx context.Context, clip entities.AudioClip, target entities.AudioTarget) ([]byte, error) {
	id := uuid.New().String()
	inputPath := filepath.Join(f.workDir, fmt.Sprintf("in_%s.%s", id, clip.Format))
	outputPath := filepath.Join(f.workDir, fmt.Sprintf("out_%s.%s", id, target.Format))

	defer os.Remove(inputPath)
	defer os.Remove(outputPath)

	if err := os.WriteFile(inputPath, clip.Data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write temp input file: %w", err)
	}

	cmd := exec.CommandContext(ctx, f.binary,
		"-i", inputPath,
		"-ar", fmt.Sprintf("%d", target.SampleRate),
		"-ac", fmt.Sprintf("%d", target.Channels),
		"-acodec", codecFor(target.Format),
		"-f", string(target.Format),
		"-y",
		outputPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	f.logger.Debug("Running ffmpeg",
		zap.String("inputFormat", string(clip.Format)),
		zap.String("targetFormat", string(target.Format)),
		zap.Int("sampleRate", target.SampleRate),
		zap.Int("channels", target.Channels))

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg conversion failed: %w: %s", err, truncateString(stderr.String(), 512))
	}

	out, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read converted audio: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ffmpeg produced empty output")
	}

	return out, nil
}

func truncateString(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
