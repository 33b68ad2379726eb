package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure taxonomy. Callers match with errors.Is.
var (
	// ErrNotFound: a referenced local file or stored document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReference: a malformed storage key or document id.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrSizeLimitExceeded: an upload over the per-category limit.
	ErrSizeLimitExceeded = errors.New("size limit exceeded")

	// ErrTransport: an upload or connect failure wrapping the underlying cause.
	ErrTransport = errors.New("transport failure")

	// ErrDecode: a malformed catalog document. Fatal for that catalog;
	// malformed rows inside a valid catalog are logged and skipped instead.
	ErrDecode = errors.New("decode failure")
)

// SizeLimitError reports an upload rejected for exceeding its category
// limit, with human-readable actual and maximum sizes in the message.
type SizeLimitError struct {
	Type     FileType
	Actual   int64
	MaxBytes int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("%s file is %s, maximum allowed is %s",
		e.Type, FormatBytes(e.Actual), FormatBytes(e.MaxBytes))
}

func (e *SizeLimitError) Unwrap() error { return ErrSizeLimitExceeded }

// FormatBytes renders a byte count as a human-readable MiB/KiB string.
func FormatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
