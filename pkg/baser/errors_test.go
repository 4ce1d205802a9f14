package baser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, KindNone},
		{"unknown endpoint", fmt.Errorf("%w: %q", ErrUnknownEndpoint, "pages"), KindUnknownEndpoint},
		{"missing credentials", ErrMissingCredentials, KindMissingCredentials},
		{"connection failure", &ServiceUnavailableError{Err: context.DeadlineExceeded}, KindServiceUnavailable},
		{"gateway status", &ServiceUnavailableError{StatusCode: http.StatusBadGateway}, KindServiceUnavailable},
		{"validation", &ValidationError{StatusCode: http.StatusBadRequest}, KindValidation},
		{"wrapped validation", fmt.Errorf("add: %w", &ValidationError{}), KindValidation},
		{"api error", &APIError{StatusCode: http.StatusInternalServerError}, KindGeneric},
		{"plain error", errors.New("boom"), KindGeneric}, //nolint:err113
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			kind := Classify(tt.err)
			assert.Equal(t, tt.expected, kind, "got %s", kind)
		})
	}
}

func TestServiceUnavailableError(t *testing.T) {
	t.Parallel()

	err := &ServiceUnavailableError{Err: context.DeadlineExceeded}
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "service unavailable: context deadline exceeded", err.Error())

	assert.Equal(t, "service unavailable: HTTP 503", (&ServiceUnavailableError{StatusCode: 503}).Error())
	assert.Equal(t, 503, StatusCode(&ServiceUnavailableError{StatusCode: 503}))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	fields := map[string]interface{}{
		"title": map[string]interface{}{"_empty": "タイトルを入力してください。"},
		"name":  map[string]interface{}{"_empty": "required"},
	}

	err := fmt.Errorf("edit: %w", &ValidationError{StatusCode: http.StatusBadRequest, Errors: fields})
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "edit: validation failed: name, title", err.Error())

	got, ok := ValidationErrors(err)
	assert.True(t, ok)
	assert.Equal(t, fields, got)
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))

	_, ok = ValidationErrors(&APIError{})
	assert.False(t, ok)
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{"status and message", &APIError{StatusCode: 500, Message: "boom"}, "API error (status 500): boom"},
		{"status only", &APIError{StatusCode: 404}, "API error (status 404): Not Found"},
		{"message only", &APIError{Message: "bad shape"}, "API error: bad shape"},
		{"cause only", &APIError{Err: context.Canceled}, "API error: context canceled"},
		{"empty", &APIError{}, "API error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrRequestFailed)
		})
	}
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFound(&APIError{StatusCode: http.StatusNotFound}))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", ErrRecordNotFound)))
	assert.False(t, IsNotFound(&APIError{StatusCode: http.StatusBadRequest}))

	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsUnauthorized(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsUnauthorized(&ServiceUnavailableError{}))

	assert.Zero(t, StatusCode(errors.New("plain"))) //nolint:err113
	assert.Equal(t, 418, StatusCode(fmt.Errorf("x: %w", &APIError{StatusCode: 418})))
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "service_unavailable", KindServiceUnavailable.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
