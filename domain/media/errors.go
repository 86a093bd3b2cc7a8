package media

import "errors"

// Kind classifies conversion failures into a closed set
type Kind int

const (
	// KindUnknown marks errors that did not come from the conversion taxonomy
	KindUnknown Kind = iota
	KindInputNotFound
	KindUnsupportedFormat
	KindEncoderNotFound
	KindPermissionDenied
	KindFileInUse
	KindInsufficientSpace
	KindConversionFailed
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindInputNotFound:     "input not found",
	KindUnsupportedFormat: "unsupported format",
	KindEncoderNotFound:   "encoder not found",
	KindPermissionDenied:  "permission denied",
	KindFileInUse:         "file in use",
	KindInsufficientSpace: "insufficient space",
	KindConversionFailed:  "conversion failed",
}

// String returns a short human-readable name for the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

var (
	// ErrInputNotFound is matched by errors of KindInputNotFound
	ErrInputNotFound = errors.New("input file not found")

	// ErrUnsupportedFormat is matched by errors of KindUnsupportedFormat
	ErrUnsupportedFormat = errors.New("unsupported video format")

	// ErrEncoderNotFound is matched by errors of KindEncoderNotFound
	ErrEncoderNotFound = errors.New("encoder not installed")

	// ErrPermissionDenied is matched by errors of KindPermissionDenied
	ErrPermissionDenied = errors.New("permission denied")

	// ErrFileInUse is matched by errors of KindFileInUse
	ErrFileInUse = errors.New("file in use by another process")

	// ErrInsufficientSpace is matched by errors of KindInsufficientSpace
	ErrInsufficientSpace = errors.New("insufficient disk space")

	// ErrConversionFailed is matched by errors of KindConversionFailed
	ErrConversionFailed = errors.New("conversion failed")
)

var sentinels = map[Kind]error{
	KindInputNotFound:     ErrInputNotFound,
	KindUnsupportedFormat: ErrUnsupportedFormat,
	KindEncoderNotFound:   ErrEncoderNotFound,
	KindPermissionDenied:  ErrPermissionDenied,
	KindFileInUse:         ErrFileInUse,
	KindInsufficientSpace: ErrInsufficientSpace,
	KindConversionFailed:  ErrConversionFailed,
}

// Error is a conversion failure with a kind, a message and an optional file path
type Error struct {
	Kind    Kind
	Message string
	Path    string
	Err     error
}

// NewError creates an Error. path may be empty.
func NewError(kind Kind, message, path string) *Error {
	return &Error{Kind: kind, Message: message, Path: path}
}

// WrapError creates an Error that keeps err as its cause
func WrapError(kind Kind, message, path string, err error) *Error {
	return &Error{Kind: kind, Message: message, Path: path, Err: err}
}

// Error renders "message (file: path)", or just the message when there is no path
func (e *Error) Error() string {
	if e.Path != "" {
		return e.Message + " (file: " + e.Path + ")"
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown
func KindOf(err error) Kind {
	var convErr *Error
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	return KindUnknown
}
