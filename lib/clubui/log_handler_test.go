// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestTeeHandlerFansOutToAllDestinations(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	logger := slog.New(TeeHandler(
		slog.NewTextHandler(&first, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&second, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))

	logger.Info("booking confirmed", "booking_id", 42)

	for name, buffer := range map[string]*bytes.Buffer{"first": &first, "second": &second} {
		if !strings.Contains(buffer.String(), "booking confirmed") {
			t.Errorf("%s destination missing the record: %q", name, buffer.String())
		}
		if !strings.Contains(buffer.String(), "booking_id=42") {
			t.Errorf("%s destination missing attributes: %q", name, buffer.String())
		}
	}
}

func TestTeeHandlerRespectsPerDestinationLevel(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer
	logger := slog.New(TeeHandler(
		slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewTextHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
	))

	logger.Debug("cache refreshed")

	if quiet.Len() != 0 {
		t.Errorf("warn-level destination received a debug record: %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "cache refreshed") {
		t.Errorf("debug-level destination missing the record: %q", verbose.String())
	}
}

func TestTeeHandlerDerivedAttrsReachEveryDestination(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	logger := slog.New(TeeHandler(
		slog.NewTextHandler(&first, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&second, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)).With("page", "events")

	logger.Info("loaded")

	for name, buffer := range map[string]*bytes.Buffer{"first": &first, "second": &second} {
		if !strings.Contains(buffer.String(), "page=events") {
			t.Errorf("%s destination missing derived attribute: %q", name, buffer.String())
		}
	}
}
