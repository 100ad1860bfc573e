package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/aleister1102/uidiff/internal/common/errorwrapper"
	"github.com/aleister1102/uidiff/internal/config"
	"github.com/rs/zerolog"
)

// Runner invokes the external ffmpeg and ffprobe binaries
type Runner struct {
	ffmpegPath    string
	ffprobePath   string
	hashAlgorithm string
	logger        zerolog.Logger
}

// RunnerBuilder provides fluent interface for creating Runner
type RunnerBuilder struct {
	config config.FFmpegConfig
	logger zerolog.Logger
}

// NewRunnerBuilder creates a new runner builder
func NewRunnerBuilder(logger zerolog.Logger) *RunnerBuilder {
	return &RunnerBuilder{
		config: config.NewDefaultFFmpegConfig(),
		logger: logger,
	}
}

// WithConfig sets the ffmpeg configuration
func (rb *RunnerBuilder) WithConfig(cfg *config.FFmpegConfig) *RunnerBuilder {
	if cfg != nil {
		rb.config = *cfg
	}
	return rb
}

// Build creates the Runner instance
func (rb *RunnerBuilder) Build() (*Runner, error) {
	if rb.config.FFmpegPath == "" {
		return nil, errorwrapper.NewValidationError("ffmpeg_path", rb.config.FFmpegPath, "ffmpeg path cannot be empty")
	}
	if rb.config.FFprobePath == "" {
		return nil, errorwrapper.NewValidationError("ffprobe_path", rb.config.FFprobePath, "ffprobe path cannot be empty")
	}

	hashAlgorithm := rb.config.HashAlgorithm
	if hashAlgorithm == "" {
		hashAlgorithm = config.DefaultHashAlgorithm
	}

	return &Runner{
		ffmpegPath:    rb.config.FFmpegPath,
		ffprobePath:   rb.config.FFprobePath,
		hashAlgorithm: hashAlgorithm,
		logger:        rb.logger.With().Str("component", "FFmpegRunner").Logger(),
	}, nil
}

// run executes a binary and returns captured stdout.
// A non-zero exit is reported as an ExternalToolError carrying stderr.
func (r *Runner) run(ctx context.Context, tool, operation, video string, args []string) ([]byte, error) {
	binary := r.ffmpegPath
	if tool == "ffprobe" {
		binary = r.ffprobePath
	}

	r.logger.Debug().
		Str("tool", tool).
		Str("operation", operation).
		Strs("args", args).
		Msg("Running media tool")

	cmd := exec.CommandContext(ctx, binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		toolErr := errorwrapper.NewExternalToolError(tool, operation, video, err).
			WithStderr(strings.TrimSpace(stderr.String()))
		return nil, toolErr
	}

	return stdout.Bytes(), nil
}
