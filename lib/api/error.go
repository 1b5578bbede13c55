// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Category classifies API failures so that callers can make
// programmatic decisions (re-authenticate, fix input, fall back)
// without parsing error message text.
type Category string

const (
	// CategoryUnauthenticated indicates HTTP 401: the credential token
	// is missing, expired, or revoked. The session must be cleared and
	// the user prompted to log in again.
	CategoryUnauthenticated Category = "unauthenticated"

	// CategoryForbidden indicates HTTP 403: the caller is
	// authenticated but lacks the role for the requested operation.
	CategoryForbidden Category = "forbidden"

	// CategoryNotFound indicates HTTP 404: the referenced resource
	// does not exist.
	CategoryNotFound Category = "not_found"

	// CategoryValidation indicates HTTP 422 or a client-side check:
	// the submitted data is invalid. Fields carries the server's
	// field-level errors verbatim when present.
	CategoryValidation Category = "validation"

	// CategoryServer indicates HTTP 500: the backend failed.
	CategoryServer Category = "server"

	// CategoryNetwork indicates a transport-level failure: the
	// request never produced an HTTP response.
	CategoryNetwork Category = "network"
)

// Default user-facing messages, matching the service's locale.
const (
	defaultErrorMessage     = "Что-то пошло не так"
	defaultForbiddenMessage = "Доступ запрещен"
	defaultServerMessage    = "Ошибка сервера"
)

// FieldError is one entry of a structured validation failure, in the
// shape the backend emits for 422 responses: a field location path,
// a message, and a machine-readable error type.
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Field returns the human-relevant field name from the location path:
// the last string component, skipping the leading "body"/"query"
// markers. Returns "" when the path has no string components.
func (fe FieldError) Field() string {
	for index := len(fe.Loc) - 1; index >= 0; index-- {
		if name, ok := fe.Loc[index].(string); ok && name != "body" && name != "query" {
			return name
		}
	}
	return ""
}

// Detail is the "detail" field of an error response body. The backend
// sends either a plain string or an array of field-level validation
// errors; Detail accepts both.
type Detail struct {
	// Message is the plain-string form, or "" when Fields is set.
	Message string

	// Fields is the structured validation form, nil otherwise.
	Fields []FieldError
}

// UnmarshalJSON decodes either detail shape. Unrecognized shapes
// (objects, numbers) decode to an empty Detail rather than failing:
// a malformed error body must not mask the HTTP-level error.
func (d *Detail) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		return json.Unmarshal(data, &d.Message)
	}
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, &d.Fields)
	}
	return nil
}

// String renders the detail for display: the plain message, or the
// field errors joined as "field: message" lines.
func (d Detail) String() string {
	if d.Message != "" {
		return d.Message
	}
	parts := make([]string, 0, len(d.Fields))
	for _, fieldError := range d.Fields {
		if name := fieldError.Field(); name != "" {
			parts = append(parts, name+": "+fieldError.Msg)
		} else {
			parts = append(parts, fieldError.Msg)
		}
	}
	return strings.Join(parts, "; ")
}

// Error is a classified API failure. StatusCode is zero for network
// failures and client-side validation. Fields carries server-provided
// validation errors verbatim; they reach the user unmodified.
type Error struct {
	Category   Category
	StatusCode int
	Message    string
	Fields     []FieldError

	// Err is the underlying transport error for network failures.
	Err error
}

// Error implements the error interface. The category is not included
// in the string — it travels separately for programmatic handling.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return defaultErrorMessage
}

// Unwrap returns the underlying transport error, allowing errors.Is
// and errors.As to walk through the Error wrapper.
func (e *Error) Unwrap() error { return e.Err }

// CategoryOf extracts the category from an error chain. Errors that
// are not API errors report CategoryNetwork when they wrap a
// transport failure and "" otherwise.
func CategoryOf(err error) Category {
	var apiError *Error
	if errors.As(err, &apiError) {
		return apiError.Category
	}
	return ""
}

// IsCategory reports whether err carries the given category.
func IsCategory(err error, category Category) bool {
	return CategoryOf(err) == category
}

// ValidationError constructs a client-side validation failure with a
// user-facing message. Used by form validation before any network
// call is made.
func ValidationError(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Message: fmt.Sprintf(format, args...)}
}
