package baser

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Static errors that can be wrapped with context.
var (
	ErrUnknownEndpoint       = errors.New("unknown endpoint")
	ErrMissingCredentials    = errors.New("email and password are required")
	ErrNoAccessToken         = errors.New("login response did not contain an access token")
	ErrServiceUnavailable    = errors.New("service unavailable")
	ErrValidationFailed      = errors.New("validation failed")
	ErrRequestFailed         = errors.New("request failed")
	ErrRecordNotFound        = errors.New("record not found")
	ErrRecordIDRequired      = errors.New("record id is required")
	ErrInvalidBaseURL        = errors.New("must be an absolute http or https URL")
	ErrConfigRequired        = errors.New("config is required")
	ErrUnsupportedFieldValue = errors.New("unsupported field value")
	ErrUnknownOperation      = errors.New("unknown operation")
)

// ServiceUnavailableError reports that the remote service could not be
// reached or answered with a gateway status.
type ServiceUnavailableError struct {
	// StatusCode is 502, 503 or 504, or zero for a connection failure.
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *ServiceUnavailableError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("service unavailable: HTTP %d", e.StatusCode)
	}

	if e.Err != nil {
		return fmt.Sprintf("service unavailable: %v", e.Err)
	}

	return "service unavailable"
}

// Unwrap returns the underlying transport error.
func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// Is matches ErrServiceUnavailable.
func (e *ServiceUnavailableError) Is(target error) bool { return target == ErrServiceUnavailable }

// ValidationError carries the remote field errors of a rejected write.
type ValidationError struct {
	StatusCode int
	// Errors is the "errors" object of the response, unmodified.
	Errors map[string]interface{}
	Body   []byte
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	if len(fields) == 0 {
		return "validation failed"
	}

	return "validation failed: " + strings.Join(fields, ", ")
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool { return target == ErrValidationFailed }

// APIError represents any other failed call.
type APIError struct {
	StatusCode int    `json:"status_code"       yaml:"status_code"`
	Message    string `json:"message,omitempty" yaml:"message,omitempty"`
	Body       []byte `json:"-"                 yaml:"-"`
	Err        error  `json:"-"                 yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, http.StatusText(e.StatusCode))
	case e.Message != "":
		return "API error: " + e.Message
	case e.Err != nil:
		return "API error: " + e.Err.Error()
	default:
		return "API error"
	}
}

// Unwrap returns the underlying cause, if any.
func (e *APIError) Unwrap() error { return e.Err }

// Is matches ErrRequestFailed.
func (e *APIError) Is(target error) bool { return target == ErrRequestFailed }

// ErrorKind is the category a failure falls into.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindServiceUnavailable
	KindValidation
	KindGeneric
	KindUnknownEndpoint
	KindMissingCredentials
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindValidation:
		return "validation"
	case KindGeneric:
		return "generic"
	case KindUnknownEndpoint:
		return "unknown_endpoint"
	case KindMissingCredentials:
		return "missing_credentials"
	default:
		return "unknown"
	}
}

// Classify reports which category err belongs to.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUnknownEndpoint):
		return KindUnknownEndpoint
	case errors.Is(err, ErrMissingCredentials):
		return KindMissingCredentials
	case IsServiceUnavailable(err):
		return KindServiceUnavailable
	case IsValidation(err):
		return KindValidation
	default:
		return KindGeneric
	}
}

// IsServiceUnavailable checks if the remote service was unreachable.
func IsServiceUnavailable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable)
}

// IsValidation checks if the error is a remote validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// ValidationErrors returns the remote field errors carried by err.
func ValidationErrors(err error) (map[string]interface{}, bool) {
	validationErr := &ValidationError{}
	if errors.As(err, &validationErr) {
		return validationErr.Errors, true
	}

	return nil, false
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrRecordNotFound) {
		return true
	}

	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an authentication or authorization
// failure.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized, http.StatusForbidden)
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	validationErr := &ValidationError{}
	if errors.As(err, &validationErr) {
		return validationErr.StatusCode
	}

	unavailableErr := &ServiceUnavailableError{}
	if errors.As(err, &unavailableErr) {
		return unavailableErr.StatusCode
	}

	return 0
}

func hasStatus(err error, codes ...int) bool {
	apiErr := &APIError{}
	if !errors.As(err, &apiErr) {
		return false
	}

	for _, code := range codes {
		if apiErr.StatusCode == code {
			return true
		}
	}

	return false
}
