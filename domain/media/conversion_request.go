package media

import (
	"fmt"
	"strings"
)

const (
	// DefaultBitrate is the MP3 bitrate used when none is configured
	DefaultBitrate = "192k"

	// AudioCodec is the ffmpeg encoder used for every conversion
	AudioCodec = "libmp3lame"

	// SampleRate is the fixed output sample rate in Hz
	SampleRate = "44100"
)

// allowedBitrates lists the accepted MP3 bitrates in ascending order
var allowedBitrates = []string{"128k", "192k", "256k", "320k"}

// AllowedBitrates returns the accepted MP3 bitrates
func AllowedBitrates() []string {
	out := make([]string, len(allowedBitrates))
	copy(out, allowedBitrates)
	return out
}

// IsValidBitrate returns true if bitrate is one of the accepted values
func IsValidBitrate(bitrate string) bool {
	for _, b := range allowedBitrates {
		if b == bitrate {
			return true
		}
	}
	return false
}

// ValidateBitrate returns an error naming the accepted values if bitrate is not one of them
func ValidateBitrate(bitrate string) error {
	if !IsValidBitrate(bitrate) {
		return fmt.Errorf("invalid bitrate: %s. available: %s", bitrate, strings.Join(allowedBitrates, ", "))
	}
	return nil
}

// ConversionRequest represents a single video to MP3 conversion
type ConversionRequest struct {
	SourcePath string
	OutputDir  string
	Bitrate    string
	SampleRate string
	Codec      string
}

// NewConversionRequest creates a ConversionRequest with the fixed codec and sample rate
func NewConversionRequest(sourcePath, outputDir, bitrate string) (*ConversionRequest, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("source video path is required")
	}

	if bitrate == "" {
		bitrate = DefaultBitrate
	}
	if err := ValidateBitrate(bitrate); err != nil {
		return nil, err
	}

	return &ConversionRequest{
		SourcePath: sourcePath,
		OutputDir:  outputDir,
		Bitrate:    bitrate,
		SampleRate: SampleRate,
		Codec:      AudioCodec,
	}, nil
}

// OutputPath returns the MP3 path the request writes to
func (r *ConversionRequest) OutputPath() string {
	return DeriveOutputPath(r.SourcePath, r.OutputDir)
}
