package media

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType marks files whose kind cannot be determined.
	ErrUnsupportedType = errors.New("unsupported media type")
	// ErrTypeMismatch marks record construction where the caller-supplied
	// kind disagrees with the detected kind.
	ErrTypeMismatch = errors.New("media type mismatch")
	// ErrMissingVariable marks template rendering that references an
	// unknown placeholder.
	ErrMissingVariable = errors.New("missing template variable")
	// ErrDirectoryNotFound marks scans against paths that do not exist.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrNotADirectory marks scans against paths that are not directories.
	ErrNotADirectory = errors.New("not a directory")
	// ErrValidation marks rejected inputs such as out-of-range ratings.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalTool marks failures of ffprobe/exiftool invocations.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "media failure"
	}
	return strings.Join(parts, ": ")
}
