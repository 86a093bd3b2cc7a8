package media

import (
	"context"
	"os"
)

// Encoder defines the interface for the external MP3 encoder.
// This is a port that can be implemented by different infrastructure adapters.
type Encoder interface {
	// RequireInstalled returns an EncoderNotFound error if the encoder cannot be run
	RequireInstalled(ctx context.Context) error

	// Encode converts req.SourcePath to req.OutputPath(), overwriting it.
	// Failures are reported as *Error values of the taxonomy.
	Encode(ctx context.Context, req *ConversionRequest) error
}

// Prober defines the interface for reading structured media metadata
type Prober interface {
	Probe(ctx context.Context, path string) (*ProbeResult, error)
}

// FileSystem defines the filesystem operations the conversion engine depends on
type FileSystem interface {
	// Exists returns true if the path exists
	Exists(path string) bool

	// Stat returns file information for path
	Stat(path string) (os.FileInfo, error)

	// EnsureDirectory creates dir and any missing parents
	EnsureDirectory(dir string) error

	// CheckFreeSpace fails with InsufficientSpace if the filesystem holding
	// target's parent directory has less than requiredMB free
	CheckFreeSpace(target string, requiredMB int64) error
}
