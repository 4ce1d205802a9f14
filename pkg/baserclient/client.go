// Package baserclient provides the main entry point for creating baserCMS API clients
package baserclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/baser-client/internal/client"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// TokenPersister stores bearer tokens issued by Login.
type TokenPersister interface {
	SaveToken(baseURL, token string) error
}

// Option configures a client beyond baser.Config.
type Option = client.Option

// WithTokenPersister saves every token issued by Login, including the one
// obtained by New.
func WithTokenPersister(persister TokenPersister) Option {
	return client.WithTokenPersister(persister)
}

// New creates a new baserCMS API client. When Email and Password are set and
// no AccessToken is, New logs in before returning.
func New(ctx context.Context, config *baser.Config, opts ...Option) (baser.Client, error) {
	if config == nil {
		return nil, baser.ErrConfigRequired
	}

	config.BaseURL = NormalizeBaseURL(config.BaseURL)

	err := config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cli, err := client.New(config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	if needsLogin(config) {
		_, err = cli.Login(ctx, config.Email, config.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to log in: %w", err)
		}
	}

	return cli, nil
}

// NormalizeBaseURL trims trailing slashes and adds "https://" when raw has
// no scheme.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return ""
	}

	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return base
}

// needsLogin checks if the config carries credentials but no token.
func needsLogin(config *baser.Config) bool {
	return config.AccessToken == "" && config.Email != "" && config.Password != ""
}

// NewWithBaseURL creates a new unauthenticated client.
func NewWithBaseURL(ctx context.Context, baseURL string) (baser.Client, error) {
	return New(ctx, &baser.Config{
		BaseURL: baseURL,
	})
}

// NewWithToken creates a new client with a previously issued bearer token.
func NewWithToken(ctx context.Context, baseURL, token string) (baser.Client, error) {
	return New(ctx, &baser.Config{
		BaseURL:     baseURL,
		AccessToken: token,
	})
}

// NewWithPassword creates a new client and logs in with email and password.
func NewWithPassword(ctx context.Context, baseURL, email, password string) (baser.Client, error) {
	return New(ctx, &baser.Config{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
	})
}
