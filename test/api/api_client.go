/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

// HTTPDoer is the transport seam of the client, satisfied by *http.Client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption customises an APIClient.
type ClientOption func(*APIClient)

// WithHTTPDoer replaces the underlying HTTP transport.
func WithHTTPDoer(doer HTTPDoer) ClientOption {
	return func(c *APIClient) {
		c.client = doer
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *APIClient) {
		c.logger = logger
	}
}

type APIClient struct {
	baseURL   string
	client    HTTPDoer
	limiter   *rate.Limiter
	config    *TestConfig
	endpoints *Endpoints
	logger    *zap.Logger
}

func NewAPIClient(config *TestConfig, options ...ClientOption) *APIClient {
	limit := rate.Inf
	if config.RequestRate > 0 {
		limit = rate.Limit(config.RequestRate)
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter:   rate.NewLimiter(limit, max(config.RequestBurst, 1)),
		config:    config,
		endpoints: NewEndpoints(),
		logger:    zap.NewNop(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// BaseURL returns the service root all paths are resolved against.
func (c *APIClient) BaseURL() string {
	return c.baseURL
}

func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// generateTraceID creates a new W3C trace ID.
// we are using this to create a new trace ID for each request so if an error occurs we can find the request in the logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// AuthorizationHeader returns headers carrying the access token. The service
// hands out tokens already prefixed with "Bearer ", which are sent verbatim.
// An empty token yields no header at all.
func AuthorizationHeader(accessToken string) http.Header {
	if accessToken == "" {
		return nil
	}

	if !strings.HasPrefix(accessToken, "Bearer ") {
		accessToken = "Bearer " + accessToken
	}

	return http.Header{
		"Authorization": []string{accessToken},
	}
}

// Send performs one request. The body, when not nil, is encoded as JSON.
// Any HTTP response, whatever its status, is returned without error; only
// failures to obtain a response are reported, as *TransportError.
//
//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) Send(ctx context.Context, method, path string, headers http.Header, body any) (*Response, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s %s request body: %w", method, path, err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	log := c.logger.With(zap.String("method", method), zap.String("path", path), zap.String("traceID", extractTraceID(traceParent)))

	if err := c.limiter.Wait(ctx); err != nil {
		log.Error("rate limiter wait failed", zap.Error(err))
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		log.Error("http request failed", zap.Duration("duration", duration), zap.Error(err))
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("reading response body", zap.Int("status", resp.StatusCode), zap.Duration("duration", duration), zap.Error(err))
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.config.LogRequests {
		log.Info("request", zap.Int("status", resp.StatusCode), zap.Duration("duration", duration))
	}

	if c.config.LogResponses && len(respBody) > 0 {
		log.Info("response body", zap.ByteString("body", respBody))
	}

	return &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    extractTraceID(traceParent),
	}, nil
}

// Register creates a user.
func (c *APIClient) Register(ctx context.Context, request RegistrationRequest) (*Response, error) {
	return c.Send(ctx, http.MethodPost, c.endpoints.Register(), nil, request)
}

// Login exchanges credentials for a fresh token pair.
func (c *APIClient) Login(ctx context.Context, request LoginRequest) (*Response, error) {
	return c.Send(ctx, http.MethodPost, c.endpoints.Login(), nil, request)
}

// Logout revokes a refresh token.
func (c *APIClient) Logout(ctx context.Context, refreshToken string) (*Response, error) {
	return c.Send(ctx, http.MethodPost, c.endpoints.Logout(), nil, BuildTokenRequest(refreshToken))
}

// RefreshToken exchanges a refresh token for a new token pair.
func (c *APIClient) RefreshToken(ctx context.Context, refreshToken string) (*Response, error) {
	return c.Send(ctx, http.MethodPost, c.endpoints.Token(), nil, BuildTokenRequest(refreshToken))
}

// GetUser reads the profile of the token's owner.
func (c *APIClient) GetUser(ctx context.Context, accessToken string) (*Response, error) {
	return c.Send(ctx, http.MethodGet, c.endpoints.User(), AuthorizationHeader(accessToken), nil)
}

// UpdateUser patches the profile of the token's owner.
func (c *APIClient) UpdateUser(ctx context.Context, accessToken string, request ProfileUpdateRequest) (*Response, error) {
	return c.Send(ctx, http.MethodPatch, c.endpoints.User(), AuthorizationHeader(accessToken), request)
}

// DeleteUser removes the token's owner.
func (c *APIClient) DeleteUser(ctx context.Context, accessToken string) (*Response, error) {
	return c.Send(ctx, http.MethodDelete, c.endpoints.User(), AuthorizationHeader(accessToken), nil)
}

func (c *APIClient) ListIngredients(ctx context.Context) (*Response, error) {
	return c.Send(ctx, http.MethodGet, c.endpoints.Ingredients(), nil, nil)
}

// CreateOrder places an order, anonymously when accessToken is empty.
func (c *APIClient) CreateOrder(ctx context.Context, accessToken string, request OrderRequest) (*Response, error) {
	return c.Send(ctx, http.MethodPost, c.endpoints.Orders(), AuthorizationHeader(accessToken), request)
}

// ListOrders lists the orders of the token's owner.
func (c *APIClient) ListOrders(ctx context.Context, accessToken string) (*Response, error) {
	return c.Send(ctx, http.MethodGet, c.endpoints.Orders(), AuthorizationHeader(accessToken), nil)
}

func (c *APIClient) ListAllOrders(ctx context.Context) (*Response, error) {
	return c.Send(ctx, http.MethodGet, c.endpoints.AllOrders(), nil, nil)
}
