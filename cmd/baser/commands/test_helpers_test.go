package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type seenRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Auth        string
	Body        []byte
}

// fakeSite is a baserCMS stand-in answering every request with status and
// body.
type fakeSite struct {
	mu       sync.Mutex
	requests []seenRequest
	server   *httptest.Server
}

func newFakeSite(t *testing.T, status int, body interface{}) *fakeSite {
	t.Helper()

	site := &fakeSite{}
	site.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		site.mu.Lock()
		site.requests = append(site.requests, seenRequest{
			Method:      request.Method,
			Path:        request.URL.Path,
			RawQuery:    request.URL.RawQuery,
			ContentType: request.Header.Get("Content-Type"),
			Auth:        request.Header.Get("Authorization"),
			Body:        data,
		})
		site.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_ = json.NewEncoder(writer).Encode(body)
	}))
	t.Cleanup(site.server.Close)

	return site
}

func (s *fakeSite) last() seenRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return seenRequest{}
	}

	return s.requests[len(s.requests)-1]
}

// useViper points the global viper state at baseURL and a temporary config
// file, and resets it when the test ends. Tests calling it must not be
// parallel.
func useViper(t *testing.T, baseURL, output string) string {
	t.Helper()

	viper.Reset()

	configFile := filepath.Join(t.TempDir(), "config.yml")
	viper.Set(KeyConfig, configFile)
	viper.Set(KeyBaseURL, baseURL)
	viper.Set(KeyOutput, output)

	t.Cleanup(viper.Reset)

	return configFile
}
