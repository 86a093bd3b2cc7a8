package ffmpeg

import (
	"strings"

	"mp4tomp3/domain/media"
)

// failureRule maps diagnostic phrases to an error kind
type failureRule struct {
	kind    media.Kind
	message string
	phrases []string
	keyPath bool
}

// failureRules are checked in order; the first rule with a matching phrase wins.
// The phrases come from ffmpeg and OS diagnostics and vary by platform and locale.
var failureRules = []failureRule{
	{
		kind:    media.KindPermissionDenied,
		message: "file access permission denied",
		phrases: []string{"Permission denied", "Access is denied"},
		keyPath: true,
	},
	{
		kind:    media.KindFileInUse,
		message: "file is being used by another process",
		phrases: []string{"Resource busy", "being used by another process"},
		keyPath: true,
	},
	{
		kind:    media.KindInsufficientSpace,
		message: "not enough disk space",
		phrases: []string{"No space left"},
	},
}

// Classify turns the encoder's diagnostic output into a taxonomy error.
// The original text is always kept in the message.
func Classify(output, path string) *media.Error {
	for _, rule := range failureRules {
		for _, phrase := range rule.phrases {
			if !strings.Contains(output, phrase) {
				continue
			}
			rulePath := ""
			if rule.keyPath {
				rulePath = path
			}
			return media.NewError(rule.kind, rule.message+": "+output, rulePath)
		}
	}
	return media.NewError(media.KindConversionFailed, "error during conversion: "+output, path)
}
