package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures catalogue or profile validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a runtime failure while executing an action.
type ExecutionError struct {
	Target string
	Err    error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(target string, err error) error {
	return &ExecutionError{Target: target, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("execution error on %s: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PreconditionError indicates the run cannot start at all: the package
// manager is missing or the process lacks the required privileges. This is
// the only error that aborts a reconcile run instead of landing in the
// report.
type PreconditionError struct {
	Reason string
	Err    error
}

// NewPreconditionError constructs a PreconditionError.
func NewPreconditionError(reason string, err error) error {
	return &PreconditionError{Reason: reason, Err: err}
}

func (e *PreconditionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("precondition not met: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("precondition not met: %s", e.Reason)
}

// Unwrap exposes the underlying error.
func (e *PreconditionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
