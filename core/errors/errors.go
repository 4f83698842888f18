// Package errors provides the error taxonomy shared across the AcaciaBible
// resolver. Malformed user input is an expected, frequent outcome, so every
// variant here is a value to be returned and inspected, never a panic.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the resolution taxonomy.
var (
	// ErrInvalidReference indicates a citation string that matches no
	// recognized grammar shape.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrUnknownBook indicates a book prefix that does not normalize.
	ErrUnknownBook = errors.New("unknown book")
	// ErrNotFound indicates a well-formed reference with no content.
	ErrNotFound = errors.New("not found")
	// ErrMissingCredential indicates a fetch blocked by missing credentials.
	ErrMissingCredential = errors.New("missing credential")
	// ErrFormat indicates an unrecognized corpus payload shape.
	ErrFormat = errors.New("unrecognized format")
	// ErrAPI indicates a failed remote fetch.
	ErrAPI = errors.New("api error")
	// ErrInvalidInput indicates invalid input or validation failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized indicates insufficient permissions.
	ErrUnauthorized = errors.New("unauthorized")
)

// ReferenceError reports a citation string that could not be understood.
// UnknownBook distinguishes "book prefix found but not normalizable" for
// diagnostics; both unwrap to ErrInvalidReference.
type ReferenceError struct {
	Input       string // the citation string as received
	UnknownBook bool   // true when the failure is the book name itself
	Err         error  // underlying error, if any
}

func (e *ReferenceError) Error() string {
	if e.UnknownBook {
		return fmt.Sprintf("unknown book in reference %q", e.Input)
	}
	return fmt.Sprintf("reference not understood: %q", e.Input)
}

func (e *ReferenceError) Unwrap() []error {
	sentinel := ErrInvalidReference
	if e.UnknownBook {
		sentinel = ErrUnknownBook
	}
	if e.Err != nil {
		return []error{sentinel, e.Err}
	}
	return []error{sentinel}
}

// NotFoundError reports a well-formed reference with no local content and no
// fetch path to try.
type NotFoundError struct {
	Reference string
	Err       error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no content for %s", e.Reference)
}

func (e *NotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrNotFound, e.Err}
	}
	return []error{ErrNotFound}
}

// FormatError reports a corpus payload the converter could not recognize or
// decode. The store is left unchanged when this is returned.
type FormatError struct {
	Shape   string // detected or attempted shape, if any
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	if e.Shape != "" {
		return fmt.Sprintf("corpus format error (%s): %s", e.Shape, e.Message)
	}
	return fmt.Sprintf("corpus format error: %s", e.Message)
}

func (e *FormatError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}

// APIError reports a failed remote fetch, keeping the HTTP status and the
// upstream message for display.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("passage api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("passage api error: %s", e.Message)
}

func (e *APIError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrAPI, e.Err}
	}
	return []error{ErrAPI}
}

// MissingCredentialError reports a fetch that would have been attempted but
// for a missing credential. It carries a user-facing explanation because the
// display layer renders it in place of content.
type MissingCredentialError struct {
	Reference string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("cannot fetch %s: no API token configured", e.Reference)
}

func (e *MissingCredentialError) Unwrap() error { return ErrMissingCredential }

// ValidationError represents an input validation error with context.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// Helper constructors.

// NewInvalidReference creates a ReferenceError for an unparseable citation.
func NewInvalidReference(input string) *ReferenceError {
	return &ReferenceError{Input: input}
}

// NewUnknownBook creates a ReferenceError flagged as a book-name failure.
func NewUnknownBook(input string) *ReferenceError {
	return &ReferenceError{Input: input, UnknownBook: true}
}

// NewNotFound creates a NotFoundError for a reference.
func NewNotFound(reference string) *NotFoundError {
	return &NotFoundError{Reference: reference}
}

// NewFormat creates a FormatError.
func NewFormat(shape, message string) *FormatError {
	return &FormatError{Shape: shape, Message: message}
}

// NewAPI creates an APIError.
func NewAPI(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// NewValidation creates a ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
