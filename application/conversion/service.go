package conversion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"mp4tomp3/domain/media"
	"mp4tomp3/infrastructure/logging"
)

const (
	// outputSizeRatio estimates the MP3 size as a fraction of the source video size
	outputSizeRatio = 0.15

	// minRequiredSpaceMB is the floor for the free-space estimate
	minRequiredSpaceMB = 10
)

// ProgressStage identifies when a progress callback fires
type ProgressStage string

const (
	// ProgressStart fires right before the encoder is launched
	ProgressStart ProgressStage = "start"

	// ProgressDone fires after the encoder finished successfully
	ProgressDone ProgressStage = "done"
)

// ProgressFunc observes a conversion. It runs inline on the calling goroutine.
type ProgressFunc func(stage ProgressStage, name string)

// Service coordinates video to MP3 conversions
type Service struct {
	encoder   media.Encoder
	prober    media.Prober
	fs        media.FileSystem
	outputDir string
	bitrate   string
	logger    *slog.Logger
}

// Option is a functional option for configuring Service
type Option func(*Service)

// WithLogger sets the diagnostic logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new conversion Service.
// It fails if the encoder is not installed or the output directory cannot be created.
func NewService(ctx context.Context, encoder media.Encoder, prober media.Prober, fs media.FileSystem, outputDir, bitrate string, opts ...Option) (*Service, error) {
	if bitrate == "" {
		bitrate = media.DefaultBitrate
	}
	if err := media.ValidateBitrate(bitrate); err != nil {
		return nil, err
	}

	s := &Service{
		encoder:   encoder,
		prober:    prober,
		fs:        fs,
		outputDir: outputDir,
		bitrate:   bitrate,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := encoder.RequireInstalled(ctx); err != nil {
		return nil, err
	}

	if err := fs.EnsureDirectory(outputDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return s, nil
}

// OutputDir returns the directory MP3 files are written to
func (s *Service) OutputDir() string {
	return s.outputDir
}

// Bitrate returns the configured MP3 bitrate
func (s *Service) Bitrate() string {
	return s.bitrate
}

// Convert converts inputPath to an MP3 in the output directory and returns the output path.
// Every failure is a *media.Error. onProgress may be nil.
func (s *Service) Convert(ctx context.Context, inputPath string, onProgress ProgressFunc) (string, error) {
	// Verify source file exists
	if !s.fs.Exists(inputPath) {
		return "", media.NewError(media.KindInputNotFound, "input file not found", inputPath)
	}

	if !media.IsSupportedVideoFormat(inputPath) {
		return "", media.NewError(media.KindUnsupportedFormat,
			fmt.Sprintf("unsupported format: %s", media.Extension(inputPath)), inputPath)
	}

	req, err := media.NewConversionRequest(inputPath, s.outputDir, s.bitrate)
	if err != nil {
		return "", unexpected(err, inputPath)
	}
	outputPath := req.OutputPath()

	// Check free space before the encoder can write anything
	if err := s.checkSpace(inputPath, outputPath); err != nil {
		return "", err
	}

	if onProgress != nil {
		onProgress(ProgressStart, filepath.Base(inputPath))
	}

	s.logger.Debug("starting encoder",
		slog.String("source", inputPath),
		slog.String("output", outputPath),
		slog.String("bitrate", req.Bitrate),
	)

	if err := s.encoder.Encode(ctx, req); err != nil {
		if media.KindOf(err) == media.KindUnknown {
			return "", unexpected(err, inputPath)
		}
		s.logger.Debug("encoder failed",
			slog.String("source", inputPath),
			slog.String("kind", media.KindOf(err).String()),
		)
		return "", err
	}

	if onProgress != nil {
		onProgress(ProgressDone, filepath.Base(outputPath))
	}

	return outputPath, nil
}

// checkSpace estimates the output size from the input size and verifies the output filesystem can hold it.
// OS failures are reported as PermissionDenied.
func (s *Service) checkSpace(inputPath, outputPath string) error {
	info, err := s.fs.Stat(inputPath)
	if err != nil {
		return media.WrapError(media.KindPermissionDenied,
			fmt.Sprintf("cannot access file: %v", err), inputPath, err)
	}

	requiredMB := RequiredSpaceMB(info.Size())
	s.logger.Debug("checking free space",
		slog.String("target", outputPath),
		slog.Int64("required_mb", requiredMB),
	)

	if err := s.fs.CheckFreeSpace(outputPath, requiredMB); err != nil {
		if media.KindOf(err) != media.KindUnknown {
			return err
		}
		return media.WrapError(media.KindPermissionDenied,
			fmt.Sprintf("cannot access file: %v", err), inputPath, err)
	}
	return nil
}

// RequiredSpaceMB returns the free space needed to convert a source of inputBytes
func RequiredSpaceMB(inputBytes int64) int64 {
	estimate := int64(media.BytesToMB(inputBytes) * outputSizeRatio)
	return max(estimate, minRequiredSpaceMB)
}

// ProbeMetadata reads display metadata for path. It never fails; problems are reported in MediaInfo.Error.
func (s *Service) ProbeMetadata(ctx context.Context, path string) media.MediaInfo {
	info, err := s.probe(ctx, path)
	if err != nil {
		s.logger.Debug("probe failed", slog.String("path", path), slog.Any("error", err))
		return media.MediaInfo{Error: fmt.Sprintf("failed to read file info: %v", err)}
	}
	return info
}

func (s *Service) probe(ctx context.Context, path string) (media.MediaInfo, error) {
	result, err := s.prober.Probe(ctx, path)
	if err != nil {
		return media.MediaInfo{}, err
	}

	size, err := parseOptionalInt(result.Format.Size)
	if err != nil {
		return media.MediaInfo{}, fmt.Errorf("invalid size %q: %w", result.Format.Size, err)
	}

	duration, err := parseOptionalFloat(result.Format.Duration)
	if err != nil {
		return media.MediaInfo{}, fmt.Errorf("invalid duration %q: %w", result.Format.Duration, err)
	}

	info := media.MediaInfo{
		Filename:     filepath.Base(path),
		Size:         media.FormatByteSize(size),
		Duration:     duration,
		FormatName:   orUnknown(result.Format.FormatName),
		VideoCodec:   media.Unknown,
		AudioCodec:   media.Unknown,
		AudioBitrate: media.Unknown,
		SampleRate:   media.Unknown,
	}

	if video := result.FirstStream("video"); video != nil {
		info.VideoCodec = orUnknown(video.CodecName)
	}
	if audio := result.FirstStream("audio"); audio != nil {
		info.AudioCodec = orUnknown(audio.CodecName)
		info.AudioBitrate = orUnknown(audio.BitRate)
		info.SampleRate = orUnknown(audio.SampleRate)
	}

	return info, nil
}

// FormatDuration renders seconds for display
func (s *Service) FormatDuration(seconds float64) string {
	return media.FormatDuration(seconds)
}

// unexpected wraps a failure that did not come from the encoder itself
func unexpected(err error, path string) *media.Error {
	return media.WrapError(media.KindConversionFailed,
		fmt.Sprintf("unexpected error: %v", err), path, err)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return media.Unknown
	}
	return s
}

func parseOptionalInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseOptionalFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
