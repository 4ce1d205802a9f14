package auth

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	baserhttp "github.com/fivetwenty-io/baser-client/internal/http"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// TokenPersister saves a freshly issued token, e.g. to the CLI config file.
type TokenPersister interface {
	SaveToken(baseURL, token string) error
}

// Manager exchanges an email and password for a bearer token and installs it
// into a Session.
type Manager struct {
	session   *Session
	client    *baserhttp.Client
	persister TokenPersister
	logger    baser.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithPersister saves every issued token through persister.
func WithPersister(persister TokenPersister) ManagerOption {
	return func(m *Manager) {
		m.persister = persister
	}
}

// WithLogger sets the logger.
func WithLogger(logger baser.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a login manager for session. client must send requests
// to the session's base URL.
func NewManager(session *Session, client *baserhttp.Client, opts ...ManagerOption) *Manager {
	manager := &Manager{
		session: session,
		client:  client,
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// Login posts the credentials to the login endpoint and installs the returned
// access token. A 2xx response without a token returns baser.ErrNoAccessToken
// and leaves the session unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", baser.ErrMissingCredentials
	}

	body := baser.NewPayload(baser.Record{
		"email":    email,
		"password": password,
	})

	resp, err := m.client.Post(ctx, constants.LoginPath, body)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	record, err := baserhttp.DecodeRecord(resp)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	token, _ := record[constants.AccessTokenField].(string)
	if token == "" {
		return "", baser.ErrNoAccessToken
	}

	m.session.SetToken(token)

	if m.logger != nil {
		m.logger.Info("Logged in", map[string]interface{}{"base_url": m.session.BaseURL(), "email": email})
	}

	if m.persister != nil {
		persistErr := m.persister.SaveToken(m.session.BaseURL(), token)
		if persistErr != nil && m.logger != nil {
			m.logger.Warn("Failed to persist access token", map[string]interface{}{"error": persistErr.Error()})
		}
	}

	return token, nil
}

// Logout clears the session credential.
func (m *Manager) Logout() {
	m.session.SetToken("")
}

// Session returns the managed session.
func (m *Manager) Session() *Session {
	return m.session
}
