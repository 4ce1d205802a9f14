package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/stretchr/testify/require"
)

// Test static errors.
var (
	ErrTestPublish = errors.New("broker down")
)

// capturedRequest is what the test server saw.
type capturedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Auth        string
	Body        []byte
}

// recorder is an httptest server that records every request and replies
// with a fixed status and body.
type recorder struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     interface{}
	server   *httptest.Server
}

func newRecorder(t *testing.T, status int, body interface{}) *recorder {
	t.Helper()

	rec := &recorder{status: status, body: body}
	rec.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		rec.mu.Lock()
		rec.requests = append(rec.requests, capturedRequest{
			Method:      request.Method,
			Path:        request.URL.Path,
			RawQuery:    request.URL.RawQuery,
			ContentType: request.Header.Get("Content-Type"),
			Auth:        request.Header.Get("Authorization"),
			Body:        data,
		})
		rec.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(rec.status)

		if rec.body != nil {
			_ = json.NewEncoder(writer).Encode(rec.body)
		}
	}))
	t.Cleanup(rec.server.Close)

	return rec
}

func (r *recorder) last(t *testing.T) capturedRequest {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	require.NotEmpty(t, r.requests, "no request reached the server")

	return r.requests[len(r.requests)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.requests)
}

// newTestClient creates a client against serverURL.
func newTestClient(t *testing.T, serverURL string, mutate ...func(*baser.Config)) *Client {
	t.Helper()

	config := &baser.Config{BaseURL: serverURL}
	for _, fn := range mutate {
		fn(config)
	}

	client, err := New(config)
	require.NoError(t, err)

	return client
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*baser.ChangeEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event *baser.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

// memoryLogger collects log entries.
type memoryLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *memoryLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, level+": "+msg)
}

func (l *memoryLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg) }
func (l *memoryLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg) }
func (l *memoryLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg) }
func (l *memoryLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg) }

func decodeJSON(t *testing.T, data []byte) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	return out
}
