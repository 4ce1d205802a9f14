package http

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// ClassifyTransportError turns a failed round trip into a
// *baser.ServiceUnavailableError when the service is unreachable, and a
// *baser.APIError otherwise.
func ClassifyTransportError(err error) error {
	if err == nil {
		return nil
	}

	if isUnreachable(err) {
		return &baser.ServiceUnavailableError{Err: err}
	}

	return &baser.APIError{Err: err}
}

func isUnreachable(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

// ClassifyResponse turns a non-2xx response into a typed error.
func ClassifyResponse(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return &baser.ServiceUnavailableError{StatusCode: statusCode}
	}

	var envelope map[string]interface{}
	_ = json.Unmarshal(body, &envelope)

	if statusCode == http.StatusBadRequest {
		if fieldErrors, ok := envelope[constants.ErrorsField].(map[string]interface{}); ok {
			return &baser.ValidationError{
				StatusCode: statusCode,
				Errors:     fieldErrors,
				Body:       body,
			}
		}
	}

	return &baser.APIError{
		StatusCode: statusCode,
		Message:    responseMessage(envelope, body),
		Body:       body,
	}
}

// ValidationFromRecord reports a 2xx write whose body carries field errors
// instead of the written entity.
func ValidationFromRecord(statusCode int, record baser.Record) error {
	fieldErrors, ok := record[constants.ErrorsField].(map[string]interface{})
	if !ok || len(fieldErrors) == 0 {
		return nil
	}

	body, _ := json.Marshal(record)

	return &baser.ValidationError{
		StatusCode: statusCode,
		Errors:     fieldErrors,
		Body:       body,
	}
}

func responseMessage(envelope map[string]interface{}, body []byte) string {
	if message, ok := envelope[constants.MessageField].(string); ok && message != "" {
		return message
	}

	if envelope != nil {
		return ""
	}

	text := strings.TrimSpace(string(body))
	if len(text) > constants.StringTruncationLength {
		text = text[:constants.StringTruncationLength] + "..."
	}

	return text
}
