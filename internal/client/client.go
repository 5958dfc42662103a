// Package client implements the stofware.Client interface and its query
// builders.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/stofloos/stofware-client-go/internal/auth"
	"github.com/stofloos/stofware-client-go/internal/http"
	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

// Client implements the stofware.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager *auth.StaticTokenManager
	baseURL      string
	logger       stofware.Logger
}

// New creates a new Stofware API client.
func New(config *stofware.Config) (*Client, error) {
	if config == nil {
		return nil, stofware.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, stofware.ErrBaseURLRequired
	}

	tokenManager := auth.NewStaticTokenManager(config.Token)

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.BaseURL, tokenManager, httpOpts...)

	return &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.BaseURL,
		logger:       config.Logger,
	}, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *stofware.Config) []http.Option {
	var httpOpts []http.Option

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	} else if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPClient(&nethttp.Client{Timeout: config.HTTPTimeout}))
	}

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// Model implements stofware.Client.Model.
func (c *Client) Model(entity string) stofware.ModelQuery {
	return newModelQuery(c, entity)
}

// View implements stofware.Client.View.
func (c *Client) View(name string) stofware.ViewQuery {
	return newViewQuery(c, name)
}

// SetToken implements stofware.Client.SetToken.
func (c *Client) SetToken(token string) {
	c.tokenManager.SetToken(token)
}

// Raw implements stofware.Client.Raw. It mirrors the builders' request
// path for callers that shape parameters themselves: params and data
// each accept nil, a map, or a pre-serialized JSON object string.
func (c *Client) Raw(ctx context.Context, method, endpoint string, params, data any) (any, error) {
	paramsMap, err := normalizeInput(params, "params")
	if err != nil {
		return nil, err
	}

	query, err := valuesFromMap(paramsMap)
	if err != nil {
		return nil, err
	}

	return c.request(ctx, method, endpoint, query, data)
}

// request executes one HTTP exchange: normalize the body, send, and
// decode the JSON response. All three error kinds (input validation,
// transport/HTTP, decode) propagate synchronously from here.
func (c *Client) request(ctx context.Context, method, endpoint string, query url.Values, data any) (any, error) {
	body, err := normalizeInput(data, "data")
	if err != nil {
		return nil, err
	}

	req := &http.Request{
		Method: method,
		Path:   endpoint,
		Query:  query,
	}

	if body != nil {
		req.Body = body
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var decoded any

	err = json.Unmarshal(resp.Body, &decoded)
	if err != nil {
		return nil, &stofware.DecodeError{Err: err}
	}

	return decoded, nil
}

// normalizeInput accepts nil, a map, or a JSON string that must decode
// to an object. Everything else is rejected before any network call.
func normalizeInput(input any, name string) (map[string]any, error) {
	switch value := input.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return value, nil
	case string:
		var parsed any

		err := json.Unmarshal([]byte(value), &parsed)
		if err != nil {
			return nil, &stofware.InputError{Name: name, Err: fmt.Errorf("invalid JSON string: %w", err)}
		}

		object, ok := parsed.(map[string]any)
		if !ok {
			return nil, &stofware.InputError{Name: name, Err: stofware.ErrInputNotObject}
		}

		return object, nil
	default:
		return nil, &stofware.InputError{Name: name, Err: stofware.ErrInvalidInputType}
	}
}

// valuesFromMap flattens a params map onto the query string. The remote
// service expects scalar query values, so sequence- and object-valued
// entries take their JSON string form.
func valuesFromMap(params map[string]any) (url.Values, error) {
	if params == nil {
		return nil, nil
	}

	values := url.Values{}

	for key, value := range params {
		encoded, err := encodeMapValue(value)
		if err != nil {
			return nil, &stofware.InputError{Name: "params", Err: err}
		}

		values.Set(key, encoded)
	}

	return values, nil
}

func encodeMapValue(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshaling query value: %w", err)
	}

	return string(encoded), nil
}
