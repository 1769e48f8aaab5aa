// Package errors provides custom error types for the personsync system.
// Every failure of a provisioning step is surfaced as one of these types so
// that the enclosing pipeline can classify it with errors.Is and errors.As.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the personsync system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMisconfigured indicates that required configuration is missing or malformed
	ErrMisconfigured = errors.New("misconfigured")

	// ErrRemote indicates that a call to the remote system did not succeed
	ErrRemote = errors.New("remote call failed")

	// ErrUnreachable indicates that no response was received from the remote system
	ErrUnreachable = errors.New("remote unreachable")

	// ErrUnexpectedStatus indicates that the remote system answered with a status
	// outside the accepted set
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// StatusNone is reported in place of a status code when no response was received.
const StatusNone = "none"

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Keys      []string // offending option names, if known
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrMisconfigured
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// TransportError represents a remote call that could not be completed:
// connection refused, timeout, TLS or DNS failure. The categories are not
// distinguished; the cause is kept for diagnostics only.
type TransportError struct {
	Operation string // "probe", "create"
	Endpoint  string
	Subject   string // email the call was made for
	Err       error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed for %s (status %s): %v", e.Operation, e.Subject, StatusNone, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrRemote || target == ErrUnreachable
}

// Status always reports StatusNone, since no response was received.
func (e *TransportError) Status() string {
	return StatusNone
}

// NewTransportError creates a new TransportError
func NewTransportError(operation, endpoint, subject string, err error) *TransportError {
	return &TransportError{
		Operation: operation,
		Endpoint:  endpoint,
		Subject:   subject,
		Err:       err,
	}
}

// RemoteError represents a remote call that completed with a status code
// outside the accepted set for the operation.
type RemoteError struct {
	Operation  string // "probe", "create"
	Endpoint   string
	Subject    string // email the call was made for
	StatusCode int
	Body       string // raw response body, captured for creation only
}

// Error implements the error interface
func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s failed for %s: unexpected status %d, body: %s", e.Operation, e.Subject, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s failed for %s: unexpected status %d", e.Operation, e.Subject, e.StatusCode)
}

// Is implements errors.Is support
func (e *RemoteError) Is(target error) bool {
	return target == ErrRemote || target == ErrUnexpectedStatus
}

// Status returns the received status code as text.
func (e *RemoteError) Status() string {
	if e.StatusCode == 0 {
		return StatusNone
	}
	return fmt.Sprintf("%d", e.StatusCode)
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(operation, endpoint, subject string, statusCode int, body string) *RemoteError {
	return &RemoteError{
		Operation:  operation,
		Endpoint:   endpoint,
		Subject:    subject,
		StatusCode: statusCode,
		Body:       body,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMisconfigured)
}

// IsRemote checks if an error came from a failed remote call, with or without a response
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote)
}

// IsTransport checks if an error is a remote call that received no response
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
