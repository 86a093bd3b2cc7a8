package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"mp4tomp3/domain/media"
)

// FreeSpaceFunc reports the free bytes on the filesystem holding dir
type FreeSpaceFunc func(dir string) (uint64, error)

// Checker implements media.FileSystem using the os package
type Checker struct {
	freeSpace FreeSpaceFunc
}

// CheckerOption is a functional option for configuring Checker
type CheckerOption func(*Checker)

// WithFreeSpaceFunc replaces the free-space probe (for testing)
func WithFreeSpaceFunc(fn FreeSpaceFunc) CheckerOption {
	return func(c *Checker) {
		c.freeSpace = fn
	}
}

// NewChecker creates a new filesystem checker
func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{freeSpace: FreeBytes}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists returns true if the file exists
func (c *Checker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Stat returns file information for path
func (c *Checker) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// EnsureDirectory creates dir and all missing parents. An existing directory is not an error.
func (c *Checker) EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// CheckFreeSpace implements media.FileSystem
func (c *Checker) CheckFreeSpace(target string, requiredMB int64) error {
	free, err := c.freeSpace(filepath.Dir(target))
	if err != nil {
		return media.WrapError(media.KindInsufficientSpace,
			fmt.Sprintf("error while checking free space: %v", err), "", err)
	}

	freeMB := float64(free) / (1024 * 1024)
	if freeMB < float64(requiredMB) {
		return media.NewError(media.KindInsufficientSpace,
			fmt.Sprintf("not enough free space. required: %dMB, available: %.1fMB", requiredMB, freeMB), "")
	}
	return nil
}

// ListVideoFiles returns the supported video files directly inside dir, sorted by name.
// A missing directory, or a path that is not a directory, yields an empty list.
func (c *Checker) ListVideoFiles(dir string) []string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return []string{}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !media.IsSupportedVideoFormat(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		files = append(files, path)
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.Base(files[i]) < filepath.Base(files[j])
	})
	return files
}

// isRegularFile reports whether entry is a regular file, following symlinks
func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Ensure Checker implements media.FileSystem
var _ media.FileSystem = (*Checker)(nil)
