package media

import (
	"path/filepath"
	"sort"
	"strings"
)

// supportedVideoFormats is the allow-list of input extensions, lower-cased with the leading dot
var supportedVideoFormats = map[string]struct{}{
	".mp4":  {},
	".avi":  {},
	".mov":  {},
	".mkv":  {},
	".wmv":  {},
	".flv":  {},
	".webm": {},
	".m4v":  {},
	".3gp":  {},
	".ts":   {},
	".mts":  {},
	".m2ts": {},
}

// IsSupportedVideoFormat returns true if the file extension is in the allow-list.
// Matching is case-insensitive.
func IsSupportedVideoFormat(path string) bool {
	_, ok := supportedVideoFormats[strings.ToLower(Extension(path))]
	return ok
}

// Extension returns the final ".ext" of the base name of path. A leading or trailing
// dot does not start an extension, so ".mp4" and "clip." have none.
func Extension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// SupportedVideoFormats returns the allow-list of extensions in sorted order
func SupportedVideoFormats() []string {
	formats := make([]string, 0, len(supportedVideoFormats))
	for ext := range supportedVideoFormats {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// DeriveOutputPath returns outputDir/<stem>.mp3 for the given input path.
// Only the final extension is replaced; the stem is kept byte for byte.
func DeriveOutputPath(inputPath, outputDir string) string {
	name := filepath.Base(inputPath)
	stem := strings.TrimSuffix(name, Extension(name))
	return filepath.Join(outputDir, stem+".mp3")
}
