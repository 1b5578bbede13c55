// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"path/filepath"
	"testing"

	"github.com/velvet-club/velvet/lib/api"
	"github.com/velvet-club/velvet/lib/session"
)

func modalDeps(t *testing.T) *Deps {
	t.Helper()
	store := session.NewStore()
	client := api.New(api.Config{ServerURL: "http://velvet.test", Tokens: store})
	manager := session.NewManager(client, store, filepath.Join(t.TempDir(), "session.json"), nil)
	return &Deps{Client: client, Sessions: manager}
}

func TestRegisterMismatchedConfirmationRejectedLocally(t *testing.T) {
	t.Parallel()

	modal := newAuthModal(modeRegister)
	modal.inputs[fieldUsername].SetValue("alice")
	modal.inputs[fieldPassword].SetValue("secret123")
	modal.inputs[fieldConfirm].SetValue("secret124")
	modal.inputs[fieldEmail].SetValue("alice@example.com")

	cmd := modal.submit(modalDeps(t))
	if cmd != nil {
		t.Error("mismatched confirmation produced a submit command")
	}
	if modal.errText != "Пароли не совпадают" {
		t.Errorf("errText = %q, want %q", modal.errText, "Пароли не совпадают")
	}
	if modal.submitting {
		t.Error("modal marked submitting after a local validation failure")
	}
}

func TestRegisterMatchingConfirmationSubmits(t *testing.T) {
	t.Parallel()

	modal := newAuthModal(modeRegister)
	modal.inputs[fieldUsername].SetValue("alice")
	modal.inputs[fieldPassword].SetValue("secret123")
	modal.inputs[fieldConfirm].SetValue("secret123")
	modal.inputs[fieldEmail].SetValue("alice@example.com")

	cmd := modal.submit(modalDeps(t))
	if cmd == nil {
		t.Fatal("valid registration produced no submit command")
	}
	if !modal.submitting {
		t.Error("modal not marked submitting")
	}
	if modal.errText != "" {
		t.Errorf("errText = %q, want empty", modal.errText)
	}
}

func TestLoginIgnoresConfirmationField(t *testing.T) {
	t.Parallel()

	modal := newAuthModal(modeLogin)
	if modal.fieldCount() != 2 {
		t.Fatalf("login fieldCount = %d, want 2", modal.fieldCount())
	}
	modal.inputs[fieldUsername].SetValue("alice")
	modal.inputs[fieldPassword].SetValue("secret123")
	// A stale confirmation left over from a register attempt must not
	// block the login path.
	modal.inputs[fieldConfirm].SetValue("different")

	cmd := modal.submit(modalDeps(t))
	if cmd == nil {
		t.Fatal("valid login produced no submit command")
	}
	if modal.errText != "" {
		t.Errorf("errText = %q, want empty", modal.errText)
	}
}
