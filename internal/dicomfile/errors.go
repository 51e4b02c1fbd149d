package dicomfile

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/muurk/dcmview/internal/tagtree"
)

// ErrorType represents the category of a load failure
type ErrorType int

const (
	// ErrTypeNotFound indicates the path does not exist
	ErrTypeNotFound ErrorType = iota
	// ErrTypePermission indicates the file could not be read
	ErrTypePermission
	// ErrTypeNotAFile indicates the path is a directory or device
	ErrTypeNotAFile
	// ErrTypeParse indicates the decoder rejected the file contents
	ErrTypeParse
	// ErrTypeHierarchy indicates decoded elements did not form a valid tree
	ErrTypeHierarchy
	// ErrTypeUnknown indicates an unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNotFound:
		return "File Not Found"
	case ErrTypePermission:
		return "Permission Denied"
	case ErrTypeNotAFile:
		return "Not A File"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeHierarchy:
		return "Malformed Hierarchy"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// LoadError represents a failure to turn a file into a tag tree
type LoadError struct {
	Type    ErrorType // Category of error
	Path    string    // File being loaded
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s (caused by: %v)", e.Type, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Type, e.Path, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *LoadError) Unwrap() error {
	return e.Err
}

// classify maps an error from opening, decoding or building into a LoadError
func classify(path string, err error) *LoadError {
	if err == nil {
		return nil
	}

	var le *LoadError
	if errors.As(err, &le) {
		return le
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &LoadError{Type: ErrTypeNotFound, Path: path, Message: "no such file", Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &LoadError{Type: ErrTypePermission, Path: path, Message: "file is not readable", Err: err}
	case errors.Is(err, tagtree.ErrMalformedHierarchy):
		return &LoadError{Type: ErrTypeHierarchy, Path: path, Message: "element nesting is inconsistent", Err: err}
	default:
		return &LoadError{Type: ErrTypeParse, Path: path, Message: "not a readable DICOM file", Err: err}
	}
}

// IsNotFound checks if an error is a missing-file error
func IsNotFound(err error) bool {
	return hasType(err, ErrTypeNotFound)
}

// IsParseError checks if an error came from the decoder
func IsParseError(err error) bool {
	return hasType(err, ErrTypeParse)
}

func hasType(err error, t ErrorType) bool {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Type == t
	}
	return false
}

// Troubleshooting returns hints shown under a load failure
func Troubleshooting(err error) []string {
	var le *LoadError
	if !errors.As(err, &le) {
		return nil
	}

	switch le.Type {
	case ErrTypeNotFound:
		return []string{
			"Check the path for typos",
			"Relative paths are resolved from the current directory",
		}
	case ErrTypePermission:
		return []string{
			"Check the file permissions (ls -l)",
			"Files on mounted PACS exports may need to be copied locally first",
		}
	case ErrTypeNotAFile:
		return []string{
			"Pass a single .dcm file, not a directory",
		}
	case ErrTypeParse:
		return []string{
			"Verify the file is DICOM Part 10 (128-byte preamble followed by DICM)",
			"Raw datasets without a preamble are not supported",
			"The file may be truncated; compare its size against the source",
		}
	case ErrTypeHierarchy:
		return []string{
			"Sequence delimiters in the file are unbalanced",
			"Run with --log-level debug to see where decoding stopped",
		}
	default:
		return nil
	}
}
