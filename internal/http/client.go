// Package http wraps the transport collaborator behind the request
// shape the builders need: method, endpoint, query, headers, JSON body
// in; status code and raw body out.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/stofloos/stofware-client-go/internal/auth"
	"github.com/stofloos/stofware-client-go/internal/constants"
	"github.com/stofloos/stofware-client-go/pkg/stofware"
)

// Request represents an HTTP request to the API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
}

// Response represents an HTTP response from the API.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs HTTP exchanges against a base URL. It adds JSON
// headers and the bearer token, checks the success status window, and
// otherwise leaves transport semantics (timeouts, TLS, pooling) to the
// injected *http.Client.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	httpClient   *http.Client
	logger       stofware.Logger
	debug        bool
	userAgent    string
	interceptors *stofware.InterceptorChain
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the transport collaborator.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the structured logger used for debug logging.
func WithLogger(logger stofware.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging when a logger is set.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithInterceptors attaches an interceptor chain run around every
// exchange.
func WithInterceptors(chain *stofware.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a new HTTP client for the given base URL. A nil
// token manager sends requests unauthenticated.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	client := &Client{
		baseURL:      baseURL,
		tokenManager: tokenManager,
		httpClient:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent:    constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes the request and returns the response. A status outside
// the success window returns both the response and a
// *stofware.RequestError carrying the status code and raw body text.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target := joinURL(c.baseURL, req.Path)

	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	var bodyBytes []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		bodyBytes = encoded
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	reqInfo := &stofware.RequestInfo{
		Method:   req.Method,
		Endpoint: req.Path,
		Headers:  httpReq.Header,
		Body:     bodyBytes,
	}

	if c.interceptors != nil {
		err = c.interceptors.ExecuteRequestInterceptors(ctx, reqInfo)
		if err != nil {
			return nil, err
		}

		for key, values := range reqInfo.Headers {
			for _, value := range values {
				httpReq.Header.Set(key, value)
			}
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    target,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         target,
			"status_code": resp.StatusCode,
		})
	}

	var reqErr error
	if resp.StatusCode < constants.SuccessStatusMin || resp.StatusCode > constants.SuccessStatusMax {
		reqErr = &stofware.RequestError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if c.interceptors != nil {
		respInfo := &stofware.ResponseInfo{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
			Error:      reqErr,
		}

		err = c.interceptors.ExecuteResponseInterceptors(ctx, reqInfo, respInfo)
		if err != nil {
			return resp, err
		}
	}

	return resp, reqErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request without a body.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// DeleteWithBody performs a DELETE request carrying a JSON body, used by
// bulk deletes where the body identifies the resources.
func (c *Client) DeleteWithBody(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Body: body})
}

// joinURL composes base and path with exactly one separating slash,
// regardless of trailing/leading slashes on either side.
func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
