// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// staticToken is a TokenSource returning a fixed token.
type staticToken string

func (token staticToken) Token() string { return string(token) }

// recordingNotifier captures notices for assertions.
type recordingNotifier struct {
	errors    []string
	successes []string
}

func (notifier *recordingNotifier) Error(message string)   { notifier.errors = append(notifier.errors, message) }
func (notifier *recordingNotifier) Success(message string) { notifier.successes = append(notifier.successes, message) }

// testServerTransport rewrites requests to target the test server.
type testServerTransport struct {
	server *httptest.Server
}

func (transport *testServerTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	request.URL.Scheme = "http"
	request.URL.Host = transport.server.Listener.Addr().String()
	return http.DefaultTransport.RoundTrip(request)
}

// testClient creates a Client pointed at a test HTTP server. The
// server is cleaned up when the test completes.
func testClient(t *testing.T, handler http.Handler, config Config) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config.ServerURL = "http://velvet.test"
	config.HTTPClient = &http.Client{Transport: &testServerTransport{server: server}}
	return New(config)
}

func writeJSON(t *testing.T, writer http.ResponseWriter, status int, body any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()

	var gotAuthorization string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events", func(writer http.ResponseWriter, request *http.Request) {
		gotAuthorization = request.Header.Get("Authorization")
		writeJSON(t, writer, http.StatusOK, []Event{})
	})

	client := testClient(t, mux, Config{Tokens: staticToken("tok-123")})
	if _, err := client.Events(context.Background()); err != nil {
		t.Fatalf("Events: %v", err)
	}
	if gotAuthorization != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuthorization, "Bearer tok-123")
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	t.Parallel()

	var gotAuthorization string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events", func(writer http.ResponseWriter, request *http.Request) {
		gotAuthorization = request.Header.Get("Authorization")
		writeJSON(t, writer, http.StatusOK, []Event{})
	})

	client := testClient(t, mux, Config{Tokens: staticToken("")})
	if _, err := client.Events(context.Background()); err != nil {
		t.Fatalf("Events: %v", err)
	}
	if gotAuthorization != "" {
		t.Errorf("Authorization = %q, want empty", gotAuthorization)
	}
}

func TestBasePathPrepended(t *testing.T) {
	t.Parallel()

	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		gotPath = request.URL.Path
		writeJSON(t, writer, http.StatusOK, []Booking{})
	})

	client := testClient(t, mux, Config{})
	if _, err := client.MyBookings(context.Background()); err != nil {
		t.Fatalf("MyBookings: %v", err)
	}
	if gotPath != "/api/v1/bookings/my-bookings" {
		t.Errorf("path = %q, want /api/v1/bookings/my-bookings", gotPath)
	}
}

func TestUnauthorizedClearsSessionAndPrompts(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/bookings/my-bookings", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusUnauthorized, map[string]any{"detail": "Token expired"})
	})

	notifier := &recordingNotifier{}
	unauthorizedCalls := 0
	client := testClient(t, mux, Config{
		Notify:         notifier,
		OnUnauthorized: func() { unauthorizedCalls++ },
	})

	_, err := client.MyBookings(context.Background())
	if !IsCategory(err, CategoryUnauthenticated) {
		t.Fatalf("category = %v, want unauthenticated", CategoryOf(err))
	}
	if unauthorizedCalls != 1 {
		t.Errorf("OnUnauthorized calls = %d, want 1", unauthorizedCalls)
	}
	// 401 raises the login prompt, not a toast.
	if len(notifier.errors) != 0 {
		t.Errorf("notifier.errors = %v, want none", notifier.errors)
	}
}

func TestUnauthorizedOnAuthEndpointDoesNotPrompt(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusUnauthorized, map[string]any{"detail": "Incorrect username or password"})
	})

	unauthorizedCalls := 0
	notifier := &recordingNotifier{}
	client := testClient(t, mux, Config{
		Notify:         notifier,
		OnUnauthorized: func() { unauthorizedCalls++ },
	})

	_, err := client.Login(context.Background(), "ben", "wrong")
	if !IsCategory(err, CategoryUnauthenticated) {
		t.Fatalf("category = %v, want unauthenticated", CategoryOf(err))
	}
	if unauthorizedCalls != 0 {
		t.Errorf("OnUnauthorized calls = %d, want 0 for auth endpoint", unauthorizedCalls)
	}
	if err.Error() != "Incorrect username or password" {
		t.Errorf("message = %q, want server detail verbatim", err.Error())
	}
	// Auth endpoints report inline, not via toast.
	if len(notifier.errors) != 0 {
		t.Errorf("notifier.errors = %v, want none", notifier.errors)
	}
}

func TestForbiddenCarriesServerMessage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/v1/admin/users/7", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusForbidden, map[string]any{"detail": "Cannot change another moderator's role"})
	})

	notifier := &recordingNotifier{}
	client := testClient(t, mux, Config{Notify: notifier})

	role := RoleUser
	_, err := client.UpdateUser(context.Background(), 7, UpdateUserRequest{Role: &role})
	if !IsCategory(err, CategoryForbidden) {
		t.Fatalf("category = %v, want forbidden", CategoryOf(err))
	}
	if err.Error() != "Cannot change another moderator's role" {
		t.Errorf("message = %q, want server detail verbatim", err.Error())
	}
	if len(notifier.errors) != 1 || notifier.errors[0] != "Cannot change another moderator's role" {
		t.Errorf("notifier.errors = %v, want the forbidden detail", notifier.errors)
	}
}

func TestForbiddenDefaultMessage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/admin/stats", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusForbidden)
	})

	client := testClient(t, mux, Config{})
	_, err := client.AdminStats(context.Background())
	if err == nil || err.Error() != "Доступ запрещен" {
		t.Errorf("error = %v, want default forbidden message", err)
	}
}

func TestServerErrorMessage(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusInternalServerError, map[string]any{"detail": "Database error"})
	})

	client := testClient(t, mux, Config{})
	_, err := client.Events(context.Background())
	if !IsCategory(err, CategoryServer) {
		t.Fatalf("category = %v, want server", CategoryOf(err))
	}
	if err.Error() != "Database error" {
		t.Errorf("message = %q, want server detail", err.Error())
	}
}

func TestValidationFieldErrorsVerbatim(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{
				{"loc": []any{"body", "email"}, "msg": "value is not a valid email address", "type": "value_error.email"},
				{"loc": []any{"body", "password"}, "msg": "Пароль должен содержать минимум 6 символов", "type": "value_error"},
			},
		})
	})

	client := testClient(t, mux, Config{})
	_, err := client.Register(context.Background(), RegisterRequest{Username: "ben"})

	var apiError *Error
	if !asError(err, &apiError) {
		t.Fatalf("error is not *api.Error: %v", err)
	}
	if apiError.Category != CategoryValidation {
		t.Fatalf("category = %v, want validation", apiError.Category)
	}
	if len(apiError.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(apiError.Fields))
	}
	if apiError.Fields[0].Field() != "email" {
		t.Errorf("field 0 = %q, want email", apiError.Fields[0].Field())
	}
	if apiError.Fields[1].Msg != "Пароль должен содержать минимум 6 символов" {
		t.Errorf("field 1 msg not carried verbatim: %q", apiError.Fields[1].Msg)
	}
}

func TestUnknownStatusCarriesCodeAndReason(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	client := testClient(t, mux, Config{})
	_, err := client.Events(context.Background())
	if err == nil || err.Error() != "HTTP 418 I'm a teapot" {
		t.Errorf("error = %v, want status code and reason phrase", err)
	}
}

func TestNetworkFailureClassified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // Connection refused from here on.

	notifier := &recordingNotifier{}
	client := New(Config{
		ServerURL:  server.URL,
		Notify:     notifier,
		HTTPClient: http.DefaultClient,
	})

	_, err := client.Events(context.Background())
	if !IsCategory(err, CategoryNetwork) {
		t.Fatalf("category = %v, want network", CategoryOf(err))
	}
	if len(notifier.errors) != 1 {
		t.Errorf("notifier.errors = %v, want one notice", notifier.errors)
	}
}

func TestQuietSuppressesNotifier(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	notifier := &recordingNotifier{}
	client := New(Config{
		ServerURL:  server.URL,
		Notify:     notifier,
		HTTPClient: http.DefaultClient,
	})

	if _, err := client.MeQuiet(context.Background()); err == nil {
		t.Fatal("MeQuiet against a closed server should fail")
	}
	if len(notifier.errors) != 0 {
		t.Errorf("notifier.errors = %v, want none for quiet request", notifier.errors)
	}
}

func TestNonJSONSuccessReturnsEmpty(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/auth/me", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/plain")
		writer.Write([]byte("ok"))
	})

	client := testClient(t, mux, Config{})
	user, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Username != "" || user.UserID != 0 {
		t.Errorf("user = %+v, want zero value for non-JSON success", user)
	}
}

func TestPayRequestBody(t *testing.T) {
	t.Parallel()

	var got PayRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/bookings/pay", func(writer http.ResponseWriter, request *http.Request) {
		if err := json.NewDecoder(request.Body).Decode(&got); err != nil {
			t.Errorf("decoding pay body: %v", err)
		}
		writeJSON(t, writer, http.StatusOK, map[string]any{"message": "Payment processed successfully"})
	})

	client := testClient(t, mux, Config{})
	if err := client.Pay(context.Background(), 42, "credit_card"); err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if got.BookingID != 42 || got.PaymentMethod != "credit_card" {
		t.Errorf("pay body = %+v, want booking 42 via credit_card", got)
	}
}

func TestCategoriesDecoded(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/events/categories", func(writer http.ResponseWriter, request *http.Request) {
		writeJSON(t, writer, http.StatusOK, []EventCategory{
			{CategoryID: 1, Name: "Концерт"},
			{CategoryID: 2, Name: "Вечеринка"},
		})
	})

	client := testClient(t, mux, Config{})
	categories, err := client.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("got %d categories, want 2", len(categories))
	}
	if categories[0].CategoryID != 1 || categories[0].Name != "Концерт" {
		t.Errorf("categories[0] = %+v, want {1 Концерт}", categories[0])
	}
}

// asError wraps errors.As to keep test call sites short.
func asError(err error, target **Error) bool {
	if err == nil {
		return false
	}
	apiError, ok := err.(*Error)
	if !ok {
		return false
	}
	*target = apiError
	return true
}
