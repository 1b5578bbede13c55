// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status line. Only records at or above the handler's configured
// level are delivered.
type logRecordMsg struct {
	summary string
	level   slog.Level
}

// TUILogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages. The viewer cannot log to stderr —
// that would corrupt the terminal display — so warnings and errors
// surface in the status line instead. Records below the configured
// level are silently dropped.
//
// The handler must be created before the program starts. Call
// SetProgram once the tea.Program is created; records arriving
// earlier are dropped. Handlers derived via WithAttrs/WithGroup share
// the same program pointer, so a single SetProgram call propagates to
// every derived handler.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewTUILogHandler creates a handler delivering records at or above
// level.
func NewTUILogHandler(level slog.Level) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
	}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled implements slog.Handler.
func (handler *TUILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle formats the record as a one-line summary and sends it to the
// program. Records arriving before SetProgram are dropped.
func (handler *TUILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	summary := record.Message
	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	if len(attrParts) > 0 {
		summary += " ("
		for index, part := range attrParts {
			if index > 0 {
				summary += ", "
			}
			summary += part
		}
		summary += ")"
	}

	program.Send(logRecordMsg{summary: summary, level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with the attributes appended.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, 0, len(handler.attrs)+len(attrs))
	combined = append(combined, handler.attrs...)
	combined = append(combined, attrs...)
	return &TUILogHandler{level: handler.level, program: handler.program, attrs: combined}
}

// WithGroup returns the handler unchanged. Group nesting adds nothing
// to a one-line status summary.
func (handler *TUILogHandler) WithGroup(string) slog.Handler {
	return handler
}

// teeHandler fans every record out to all destinations. The viewer
// uses it to mirror status-line records into the configured log file.
type teeHandler struct {
	handlers []slog.Handler
}

// TeeHandler combines handlers into one. Enabled when any destination
// is enabled; each record goes to every destination that accepts its
// level.
func TeeHandler(handlers ...slog.Handler) slog.Handler {
	return &teeHandler{handlers: handlers}
}

func (tee *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range tee.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (tee *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range tee.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (tee *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make([]slog.Handler, len(tee.handlers))
	for index, handler := range tee.handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return &teeHandler{handlers: derived}
}

func (tee *teeHandler) WithGroup(name string) slog.Handler {
	derived := make([]slog.Handler, len(tee.handlers))
	for index, handler := range tee.handlers {
		derived[index] = handler.WithGroup(name)
	}
	return &teeHandler{handlers: derived}
}
