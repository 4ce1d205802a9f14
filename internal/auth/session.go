// Package auth holds the per-client session and the login exchange.
package auth

import (
	"strings"
	"sync/atomic"
)

// Session carries the API base address, the TLS policy, and the bearer
// credential shared by every call made through one client.
type Session struct {
	baseURL       string
	skipTLSVerify bool
	credential    atomic.Pointer[string]
}

// NewSession creates an unauthenticated session.
func NewSession(baseURL string, skipTLSVerify bool) *Session {
	return &Session{
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		skipTLSVerify: skipTLSVerify,
	}
}

// BaseURL returns the site root.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// SkipTLSVerify reports whether certificate verification is disabled.
func (s *Session) SkipTLSVerify() bool {
	return s.skipTLSVerify
}

// Token returns the current bearer credential, or "" before login.
func (s *Session) Token() string {
	token := s.credential.Load()
	if token == nil {
		return ""
	}

	return *token
}

// SetToken replaces the credential. An empty token clears it.
func (s *Session) SetToken(token string) {
	if token == "" {
		s.credential.Store(nil)

		return
	}

	s.credential.Store(&token)
}

// Authenticated reports whether a credential is installed.
func (s *Session) Authenticated() bool {
	return s.credential.Load() != nil
}
