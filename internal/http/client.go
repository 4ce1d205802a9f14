// Package http is the transport used by every baserCMS API call.
package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/hashicorp/go-retryablehttp"
)

// CredentialSource supplies the bearer token for each request. An empty token
// sends the request unauthenticated.
type CredentialSource interface {
	Token() string
}

// Client is the HTTP client for baserCMS API requests.
type Client struct {
	baseURL     string
	httpClient  *retryablehttp.Client
	credentials CredentialSource
	logger      baser.Logger
	debug       bool
	userAgent   string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger baser.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithTimeout bounds a single round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithSkipTLSVerify disables certificate verification.
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		if !skip {
			return
		}

		transport, ok := c.httpClient.HTTPClient.Transport.(*http.Transport)
		if !ok {
			return
		}

		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 -- explicit opt-out set by the caller
			MinVersion:         tls.VersionTLS12,
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a new HTTP client. Failed requests are never retried.
func NewClient(baseURL string, credentials CredentialSource, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil
	retryClient.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		return false, nil
	}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	transport, _ := http.DefaultTransport.(*http.Transport)
	retryClient.HTTPClient = &http.Client{
		Transport: transport.Clone(),
		Timeout:   constants.DefaultHTTPTimeout,
	}

	client := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		httpClient:  retryClient,
		credentials: credentials,
		userAgent:   constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the site root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request represents an HTTP request. Body is either a baser.Payload or any
// value that marshals to JSON.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Do executes the request. A non-2xx response is returned together with its
// classified error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	reqURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		reqURL += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set(constants.HeaderRequestedWith, constants.RequestedWithXHR)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if c.credentials != nil {
		if token := c.credentials.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	start := time.Now()

	if c.debug && c.logger != nil {
		fields := map[string]interface{}{
			"method":       req.Method,
			"url":          reqURL,
			"content_type": contentType,
			"body_size":    len(body),
		}

		// Names only; values may hold credentials.
		if payload, ok := req.Body.(baser.Payload); ok {
			fields["fields"] = strings.Join(fieldNames(payload.Fields()), ",")
		}

		c.logger.Debug("HTTP Request", fields)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, ClassifyTransportError(err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, ClassifyTransportError(fmt.Errorf("reading response body: %w", err))
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":   req.Method,
			"url":      reqURL,
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
			"size":     len(respBody),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return resp, ClassifyResponse(httpResp.StatusCode, respBody)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

func fieldNames(record baser.Record) []string {
	names := make([]string, 0, len(record))
	for name := range record {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func encodeBody(body interface{}) ([]byte, string, error) {
	switch value := body.(type) {
	case nil:
		return nil, constants.ContentTypeJSON, nil
	case baser.Payload:
		data, err := value.Encode()
		if err != nil {
			return nil, "", fmt.Errorf("encoding request body: %w", err)
		}

		return data, value.ContentType(), nil
	case []byte:
		return value, constants.ContentTypeJSON, nil
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request body: %w", err)
		}

		return data, constants.ContentTypeJSON, nil
	}
}

// DecodeRecord decodes a 2xx body. An empty body yields an empty record; a
// body that is not a JSON object is an *baser.APIError.
func DecodeRecord(resp *Response) (baser.Record, error) {
	if len(strings.TrimSpace(string(resp.Body))) == 0 {
		return baser.Record{}, nil
	}

	var record baser.Record

	err := json.Unmarshal(resp.Body, &record)
	if err != nil || record == nil {
		return nil, &baser.APIError{
			StatusCode: resp.StatusCode,
			Message:    "response body is not a JSON object",
			Body:       resp.Body,
			Err:        err,
		}
	}

	return record, nil
}
