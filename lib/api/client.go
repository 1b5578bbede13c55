// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
)

// basePath is the fixed API base prepended to every endpoint. Relative
// endpoints like "/events" become "<server>/api/v1/events".
const basePath = "/api/v1"

// maxResponseSize bounds API response body reads: 64 MB. This exists
// solely to prevent a pathological response from exhausting memory;
// legitimate responses are orders of magnitude smaller.
const maxResponseSize int64 = 64 << 20

// TokenSource yields the current credential token, or "" when no
// session exists. The session store implements this; the client never
// holds a token itself, so login/logout take effect immediately.
type TokenSource interface {
	Token() string
}

// Notifier receives transient user-facing notices. The TUI routes
// these to the status-bar toast; the CLI writes them to stderr.
type Notifier interface {
	Error(message string)
	Success(message string)
}

// Config assembles a Client.
type Config struct {
	// ServerURL is the service origin, e.g. "http://localhost:8000".
	// The fixed basePath is appended to it.
	ServerURL string

	// Tokens yields the bearer token for authenticated calls.
	// Optional; nil means all requests go out unauthenticated.
	Tokens TokenSource

	// Notify receives error notices for failed non-auth requests.
	// Optional.
	Notify Notifier

	// OnUnauthorized is invoked when a non-auth endpoint returns 401.
	// The handler is expected to clear the session and prompt for
	// login. Optional.
	OnUnauthorized func()

	// HTTPClient overrides the transport. Tests use this to point the
	// client at an httptest server. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Logger records request failures at debug level. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Client is a typed HTTP client for the Velvet booking service.
type Client struct {
	serverURL      string
	httpClient     *http.Client
	tokens         TokenSource
	notify         Notifier
	onUnauthorized func()
	logger         *slog.Logger
}

// New creates a Client from the given configuration.
func New(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		serverURL:      strings.TrimRight(config.ServerURL, "/"),
		httpClient:     httpClient,
		tokens:         config.Tokens,
		notify:         config.Notify,
		onUnauthorized: config.OnUnauthorized,
		logger:         logger,
	}
}

// requestOptions tunes a single request.
type requestOptions struct {
	// quiet suppresses the Notifier side effect. Set for the startup
	// session probe so a dead backend does not greet the user with an
	// error toast before they have done anything.
	quiet bool

	// bearer overrides the token source for this request. Used by
	// logout, which clears the session locally before informing the
	// backend and so must carry the already-discarded token.
	bearer string
}

// request performs one API call: JSON-encode body (when non-nil),
// attach the bearer token, classify the response, decode a JSON
// success body into out (when non-nil). endpoint is relative to the
// fixed API base path.
func (client *Client) request(ctx context.Context, method, endpoint string, body any, out any, options requestOptions) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.serverURL+basePath+endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if options.bearer != "" {
		request.Header.Set("Authorization", "Bearer "+options.bearer)
	} else if client.tokens != nil {
		if token := client.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		failure := &Error{Category: CategoryNetwork, Message: defaultErrorMessage, Err: err}
		client.report(method, endpoint, failure, options)
		return failure
	}
	defer response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return decodeSuccess(response, out)
	}

	failure := classify(response)
	client.logger.Debug("api request failed",
		"method", method,
		"endpoint", endpoint,
		"status", response.StatusCode,
		"category", failure.Category,
	)

	if failure.Category == CategoryUnauthenticated {
		// 401 clears the session and raises the login prompt instead
		// of a toast — unless the call itself was an auth endpoint
		// (a failed login is reported inline by the login form).
		if !isAuthEndpoint(endpoint) && client.onUnauthorized != nil {
			client.onUnauthorized()
		}
		return failure
	}

	client.report(method, endpoint, failure, options)
	return failure
}

// report surfaces a failure through the Notifier, honoring the quiet
// option and exempting auth endpoints (their callers show inline
// messages).
func (client *Client) report(method, endpoint string, failure *Error, options requestOptions) {
	if options.quiet || client.notify == nil || isAuthEndpoint(endpoint) {
		return
	}
	client.notify.Error(failure.Error())
}

// isAuthEndpoint reports whether the endpoint belongs to the
// authentication group, which is exempt from the 401 login-prompt and
// toast side effects.
func isAuthEndpoint(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/auth/")
}

// decodeSuccess handles a 2xx response: JSON bodies decode into out,
// non-JSON or empty bodies leave out untouched (empty result).
func decodeSuccess(response *http.Response, out any) error {
	if out == nil {
		return nil
	}
	contentType, _, _ := mime.ParseMediaType(response.Header.Get("Content-Type"))
	if contentType != "application/json" {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// classify maps a non-2xx response to a categorized Error, extracting
// the JSON "detail" field when the body carries one.
func classify(response *http.Response) *Error {
	data, _ := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))

	var body struct {
		Detail Detail `json:"detail"`
	}
	// A non-JSON body is fine — the status line still classifies.
	_ = json.Unmarshal(data, &body)

	detail := body.Detail.String()

	switch response.StatusCode {
	case http.StatusUnauthorized:
		return &Error{
			Category:   CategoryUnauthenticated,
			StatusCode: response.StatusCode,
			Message:    nonEmpty(detail, "Unauthorized"),
		}
	case http.StatusForbidden:
		return &Error{
			Category:   CategoryForbidden,
			StatusCode: response.StatusCode,
			Message:    nonEmpty(detail, defaultForbiddenMessage),
		}
	case http.StatusNotFound:
		return &Error{
			Category:   CategoryNotFound,
			StatusCode: response.StatusCode,
			Message:    nonEmpty(detail, defaultErrorMessage),
		}
	case http.StatusUnprocessableEntity:
		return &Error{
			Category:   CategoryValidation,
			StatusCode: response.StatusCode,
			Message:    nonEmpty(detail, defaultErrorMessage),
			Fields:     body.Detail.Fields,
		}
	case http.StatusInternalServerError:
		return &Error{
			Category:   CategoryServer,
			StatusCode: response.StatusCode,
			Message:    nonEmpty(detail, defaultServerMessage),
		}
	default:
		message := detail
		if message == "" {
			message = fmt.Sprintf("HTTP %d %s", response.StatusCode, http.StatusText(response.StatusCode))
		}
		category := CategoryServer
		if response.StatusCode < 500 {
			category = CategoryValidation
		}
		return &Error{
			Category:   category,
			StatusCode: response.StatusCode,
			Message:    message,
		}
	}
}

func nonEmpty(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// get/post/put/patch/delete are thin wrappers over request for the
// endpoint methods in this package.

func (client *Client) get(ctx context.Context, endpoint string, out any) error {
	return client.request(ctx, http.MethodGet, endpoint, nil, out, requestOptions{})
}

func (client *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return client.request(ctx, http.MethodPost, endpoint, body, out, requestOptions{})
}

func (client *Client) put(ctx context.Context, endpoint string, body, out any) error {
	return client.request(ctx, http.MethodPut, endpoint, body, out, requestOptions{})
}

func (client *Client) patch(ctx context.Context, endpoint string, body, out any) error {
	return client.request(ctx, http.MethodPatch, endpoint, body, out, requestOptions{})
}

func (client *Client) delete(ctx context.Context, endpoint string, out any) error {
	return client.request(ctx, http.MethodDelete, endpoint, nil, out, requestOptions{})
}
