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

// ValidationError captures workbook validation issues.
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

// NotFoundError indicates an operation referenced a scenario identity that is
// not present in the table. No table state is mutated when it is returned.
type NotFoundError struct {
	ID string
}

// NewNotFoundError constructs a NotFoundError for the given scenario ID.
func NewNotFoundError(id string) error {
	return &NotFoundError{ID: id}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("scenario not found: %s", e.ID)
}

// InProgressError indicates a compute trigger was rejected because the same
// scenario already has a compute in flight.
type InProgressError struct {
	ID string
}

// NewInProgressError constructs an InProgressError for the given scenario ID.
func NewInProgressError(id string) error {
	return &InProgressError{ID: id}
}

func (e *InProgressError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("compute already in progress for scenario %s", e.ID)
}

// ComputeError represents a failure of the compute function for one scenario.
// The scenario keeps its previous result and stays stale; other rows are
// never affected.
type ComputeError struct {
	ScenarioID string
	Func       string
	Err        error
}

// NewComputeError constructs a ComputeError.
func NewComputeError(scenarioID, funcName string, err error) error {
	return &ComputeError{ScenarioID: scenarioID, Func: funcName, Err: err}
}

func (e *ComputeError) Error() string {
	if e == nil {
		return ""
	}
	if e.Func != "" {
		return fmt.Sprintf("compute error [%s] on scenario %s: %v", e.Func, e.ScenarioID, e.Err)
	}
	return fmt.Sprintf("compute error on scenario %s: %v", e.ScenarioID, e.Err)
}

// Unwrap exposes the root error.
func (e *ComputeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FuncError indicates issues within compute function registration or lookup.
type FuncError struct {
	Func    string
	Message string
	Err     error
}

// NewFuncError constructs a FuncError for the given function name.
func NewFuncError(funcName string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &FuncError{Func: funcName, Message: message, Err: err}
}

func (e *FuncError) Error() string {
	if e == nil {
		return ""
	}
	if e.Func != "" {
		return fmt.Sprintf("func error [%s]: %s", e.Func, e.Message)
	}
	return fmt.Sprintf("func error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *FuncError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
