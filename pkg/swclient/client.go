// Package swclient provides the main entry point for creating Stofware
// API clients.
package swclient

import (
	"fmt"

	"github.com/stofloos/stofware-client-go/internal/client"
	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

// New creates a new Stofware API client from a config. The base URL is
// used as given; endpoint paths are joined with exactly one separating
// slash at request time, so trailing slashes on the base are harmless.
func New(config *stofware.Config) (stofware.Client, error) {
	if config == nil {
		return nil, stofware.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, stofware.ErrBaseURLRequired
	}

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithEndpoint creates a new client with just a base URL (no auth).
func NewWithEndpoint(baseURL string) (stofware.Client, error) {
	return New(&stofware.Config{
		BaseURL: baseURL,
	})
}

// NewWithToken creates a new client with a base URL and a static bearer
// token.
func NewWithToken(baseURL, token string) (stofware.Client, error) {
	return New(&stofware.Config{
		BaseURL: baseURL,
		Token:   token,
	})
}
