// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramNotifier bridges the API client's notifier interface into
// the bubbletea message loop. The client calls it from tea.Cmd
// goroutines; the notifier forwards each notice via program.Send so
// the status line updates on the event loop.
//
// The notifier must be created before the program starts. Call
// SetProgram once the tea.Program exists; notices arriving earlier
// are dropped.
type ProgramNotifier struct {
	program atomic.Pointer[tea.Program]
}

// NewProgramNotifier creates an unconnected notifier.
func NewProgramNotifier() *ProgramNotifier {
	return &ProgramNotifier{}
}

// SetProgram connects the notifier to a running program. Safe to call
// from any goroutine.
func (notifier *ProgramNotifier) SetProgram(program *tea.Program) {
	notifier.program.Store(program)
}

// Error implements the client notifier.
func (notifier *ProgramNotifier) Error(message string) {
	notifier.send(noticeMsg{text: message, level: noticeError})
}

// Success implements the client notifier.
func (notifier *ProgramNotifier) Success(message string) {
	notifier.send(noticeMsg{text: message, level: noticeSuccess})
}

// Unauthorized forwards a backend token rejection. Wire this to the
// client's OnUnauthorized hook.
func (notifier *ProgramNotifier) Unauthorized() {
	notifier.send(unauthorizedMsg{})
}

func (notifier *ProgramNotifier) send(message tea.Msg) {
	program := notifier.program.Load()
	if program == nil {
		return
	}
	program.Send(message)
}
