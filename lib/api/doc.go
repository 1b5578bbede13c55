// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

// Package api provides a typed HTTP client for the Velvet booking
// service REST API. Both client surfaces — the velvet CLI and the
// velvet-viewer TUI — go through this package for every backend call.
//
// The client mirrors the service's wire format with its own response
// types, attaches the session's bearer token to every request, and
// classifies failures into categories (unauthenticated, forbidden,
// not found, validation, server, network) so callers can branch on
// kind instead of parsing message text. Error bodies carry a "detail"
// field that is either a plain string or a structured list of
// field-level validation errors; both shapes decode into [Detail].
package api
