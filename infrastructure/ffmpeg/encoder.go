package ffmpeg

import (
	"context"
	"strings"
	"time"

	"mp4tomp3/domain/media"
)

// versionCheckTimeout bounds the "ffmpeg -version" probe
const versionCheckTimeout = 5 * time.Second

// installGuidance is shown when ffmpeg cannot be executed
const installGuidance = "FFmpeg is not installed.\n" +
	"Download and install it from:\n" +
	"https://ffmpeg.org/download.html"

// Encoder implements media.Encoder using ffmpeg
type Encoder struct {
	ffmpegPath string
	runner     CommandRunner
}

// EncoderOption is a functional option for configuring Encoder
type EncoderOption func(*Encoder)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) EncoderOption {
	return func(e *Encoder) {
		if path != "" {
			e.ffmpegPath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) EncoderOption {
	return func(e *Encoder) {
		e.runner = runner
	}
}

// NewEncoder creates a new FFmpeg-based MP3 encoder
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Args returns the ffmpeg arguments for the request
func (e *Encoder) Args(req *media.ConversionRequest) []string {
	return []string{
		"-i", req.SourcePath,
		"-vn",                 // No video
		"-acodec", req.Codec,  // MP3 codec
		"-ab", req.Bitrate,    // Audio bitrate
		"-ar", req.SampleRate, // Sample rate
		"-y",                  // Overwrite output file if it exists
		req.OutputPath(),
	}
}

// Encode implements media.Encoder
func (e *Encoder) Encode(ctx context.Context, req *media.ConversionRequest) error {
	result, err := e.runner.Run(ctx, e.ffmpegPath, e.Args(req)...)
	if err == nil {
		return nil
	}

	diagnostic := ""
	if result != nil {
		diagnostic = strings.TrimSpace(string(result.Stderr))
	}
	if diagnostic == "" {
		diagnostic = err.Error()
	}

	classified := Classify(diagnostic, req.SourcePath)
	classified.Err = err
	return classified
}

// CheckInstalled returns true only if "ffmpeg -version" starts and exits successfully
func (e *Encoder) CheckInstalled(ctx context.Context) bool {
	checkCtx, cancel := context.WithTimeout(ctx, versionCheckTimeout)
	defer cancel()

	_, err := e.runner.Run(checkCtx, e.ffmpegPath, "-version")
	return err == nil
}

// RequireInstalled implements media.Encoder
func (e *Encoder) RequireInstalled(ctx context.Context) error {
	if !e.CheckInstalled(ctx) {
		return media.NewError(media.KindEncoderNotFound, installGuidance, "")
	}
	return nil
}

// Ensure Encoder implements media.Encoder
var _ media.Encoder = (*Encoder)(nil)
