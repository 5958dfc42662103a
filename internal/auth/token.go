// Package auth holds token handling for the Stofware client. The API
// uses static bearer tokens supplied by the caller; acquisition and
// refresh are out of scope.
package auth

import "context"

// TokenManager supplies the bearer token for outgoing requests.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager holds a caller-supplied bearer token that can be
// swapped at any time. The token is read at request-build time; a
// concurrent SetToken races with in-flight request construction and the
// winning value is undefined, deliberately unprotected by any lock.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a token manager with an initial token,
// which may be empty.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the current token. An empty token means requests go
// out unauthenticated.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

// SetToken replaces the token used by all future requests.
func (m *StaticTokenManager) SetToken(token string) {
	m.token = token
}
