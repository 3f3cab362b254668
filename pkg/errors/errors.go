package errors

import "fmt"

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNavigation ErrorType = "navigation"
	ErrorTypeExtraction ErrorType = "extraction"
	ErrorTypeAuth       ErrorType = "auth"
	ErrorTypeProgress   ErrorType = "progress"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeIncomplete ErrorType = "incomplete"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// Error represents a scraper error with type information
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error wrapping an underlying cause
func New(errorType ErrorType, message string, err error) *Error {
	return &Error{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// IncompleteWindowError is returned when a window hits the scroll cap
// before reaching the collection threshold.
type IncompleteWindowError struct {
	WindowKey string
	Collected int
	Threshold int
	Scrolls   int
}

func (e *IncompleteWindowError) Error() string {
	return fmt.Sprintf("window %s incomplete: collected %d of %d after %d scrolls",
		e.WindowKey, e.Collected, e.Threshold, e.Scrolls)
}
