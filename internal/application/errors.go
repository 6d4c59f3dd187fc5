package application

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	ErrInvalidPath    = errors.New("invalid path")
	ErrMissingInput   = errors.New("missing input")
	ErrMissingColumns = errors.New("missing required columns")
	ErrRunInProgress  = errors.New("run already in progress")
	ErrUnsupported    = errors.New("unsupported spreadsheet format")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidPathError reports a source directory that does not exist or is not a directory
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid folder path %q: %s", e.Path, e.Reason)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// MissingInputError reports a required input that was not supplied
type MissingInputError struct {
	Input string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("please provide %s", e.Input)
}

func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// MissingColumnsError reports required spreadsheet columns absent from the header
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("the required columns are missing from the spreadsheet: %s", strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
