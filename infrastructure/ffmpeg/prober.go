package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mp4tomp3/domain/media"
)

// Prober implements media.Prober using ffprobe
type Prober struct {
	ffprobePath string
	runner      CommandRunner
}

// ProberOption is a functional option for configuring Prober
type ProberOption func(*Prober)

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) ProberOption {
	return func(p *Prober) {
		if path != "" {
			p.ffprobePath = path
		}
	}
}

// WithProberCommandRunner sets a custom command runner (for testing)
func WithProberCommandRunner(runner CommandRunner) ProberOption {
	return func(p *Prober) {
		p.runner = runner
	}
}

// NewProber creates a new ffprobe-based metadata prober
func NewProber(opts ...ProberOption) *Prober {
	p := &Prober{
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Probe implements media.Prober
func (p *Prober) Probe(ctx context.Context, path string) (*media.ProbeResult, error) {
	result, err := p.runner.Run(ctx, p.ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)
	if err != nil {
		detail := ""
		if result != nil {
			detail = strings.TrimSpace(string(result.Stderr))
		}
		if detail != "" {
			return nil, fmt.Errorf("ffprobe %q: %w: %s", path, err, detail)
		}
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(result.Stdout)
}

// ParseJSON converts raw ffprobe JSON output into a media.ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*media.ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	result := &media.ProbeResult{
		Format: media.ProbeFormat{
			FormatName: raw.Format.FormatName,
			Duration:   raw.Format.Duration,
			Size:       raw.Format.Size,
		},
		Streams: make([]media.ProbeStream, 0, len(raw.Streams)),
	}
	for _, s := range raw.Streams {
		result.Streams = append(result.Streams, media.ProbeStream{
			CodecType:  s.CodecType,
			CodecName:  s.CodecName,
			BitRate:    s.BitRate,
			SampleRate: s.SampleRate,
		})
	}
	return result, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	BitRate    string `json:"bit_rate"`
	SampleRate string `json:"sample_rate"`
}

// Ensure Prober implements media.Prober
var _ media.Prober = (*Prober)(nil)
