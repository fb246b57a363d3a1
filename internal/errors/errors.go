// Package errors holds the application error taxonomy. It builds on
// github.com/cockroachdb/errors so that sentinels can carry user hints and
// foreign errors (such as *json.SyntaxError) can be marked with a sentinel
// while remaining reachable through As.
package errors

import (
	"fmt"
	"strings"

	crdb "github.com/cockroachdb/errors"
)

// Re-exported helpers so callers need a single errors import.
var (
	New   = crdb.New
	Newf  = crdb.Newf
	Wrap  = crdb.Wrap
	Wrapf = crdb.Wrapf
	Is    = crdb.Is
	As    = crdb.As
	Mark  = crdb.Mark
)

const syntaxHint = "check for missing quotes, commas or closing brackets"

// Validation errors.
var (
	ErrMissingInput = crdb.WithHint(
		crdb.New("input is empty or contains only whitespace"),
		"paste or pipe a JSON object, or pass a file with -i",
	)
	ErrSyntax = crdb.WithHint(crdb.New("invalid JSON syntax"), syntaxHint)
)

// Inference errors.
var (
	ErrUnsupportedRootKind = crdb.WithHint(
		crdb.New("JSON root must be an object"),
		"wrap arrays and scalar values in an object, e.g. {\"items\": [...]}",
	)
	ErrDuplicateClassName = crdb.WithHint(
		crdb.New("two nested objects produce the same class name"),
		"set inference.name_collisions to \"suffix\" to number repeated names",
	)
	ErrTooDeep = crdb.WithHint(
		crdb.New("JSON nesting exceeds the maximum depth"),
		"raise inference.max_depth in the config file",
	)
)

// Input, output and formatting errors of the command-line surface.
var (
	ErrFileNotFound     = crdb.New("file not found")
	ErrFileEmpty        = crdb.New("file is empty")
	ErrInvalidFilePath  = crdb.New("invalid file path")
	ErrUnbalancedBraces = crdb.New("unbalanced braces in generated code")
	ErrInvalidOption    = crdb.New("invalid option value")
	ErrNoInput          = crdb.WithHint(
		crdb.New("no input provided"),
		"specify a file with -i or pipe JSON data to stdin",
	)
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeInference  ErrorType = "inference"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newAppError(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return newAppError(ErrorTypeInput, message, err)
}

// NewValidationError creates a new error for input that is missing or not valid JSON
func NewValidationError(message string, err error) *AppError {
	return newAppError(ErrorTypeValidation, message, err)
}

// NewSyntaxError wraps a JSON parser error. The parser's message is kept verbatim
// and the error is marked with ErrSyntax.
func NewSyntaxError(parseErr error) *AppError {
	return newAppError(ErrorTypeValidation, parseErr.Error(), crdb.WithHint(crdb.Mark(parseErr, ErrSyntax), syntaxHint))
}

// NewInferenceError creates a new error related to type inference
func NewInferenceError(message string, err error) *AppError {
	return newAppError(ErrorTypeInference, message, err)
}

// NewFormatError creates a new error related to code formatting
func NewFormatError(message string, err error) *AppError {
	return newAppError(ErrorTypeFormat, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newAppError(ErrorTypeOutput, message, err)
}

// NewConfigError creates a new error related to loading or saving settings
func NewConfigError(message string, err error) *AppError {
	return newAppError(ErrorTypeConfig, message, err)
}

// UserFriendlyError returns a user-friendly error message followed by any hints
// attached along the error chain.
func UserFriendlyError(err error) string {
	if err == nil {
		return ""
	}
	msg := headline(err)
	for _, hint := range crdb.GetAllHints(err) {
		if strings.TrimSpace(hint) == "" {
			continue
		}
		msg += "\nHint: " + hint
	}
	return msg
}

func headline(err error) string {
	var appErr *AppError
	if crdb.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeValidation:
			return fmt.Sprintf("JSON error: %s", appErr.Message)
		case ErrorTypeInference:
			return fmt.Sprintf("Type inference error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Code formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Config error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	switch {
	case crdb.Is(err, ErrMissingInput):
		return "Error: The input is empty. Please provide a JSON object."
	case crdb.Is(err, ErrSyntax):
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	case crdb.Is(err, ErrFileNotFound):
		return "Error: The specified file could not be found. Please check the file path."
	case crdb.Is(err, ErrFileEmpty):
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	case crdb.Is(err, ErrNoInput):
		return "Error: No input provided."
	case crdb.Is(err, ErrInvalidFilePath):
		return "Error: Invalid file path. Please provide a valid file path."
	}

	return fmt.Sprintf("Error: %v", err)
}
