// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import "testing"

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0 ₽"},
		{500, "500 ₽"},
		{12500, "12 500 ₽"},
		{1234567, "1 234 567 ₽"},
		{999.5, "999,50 ₽"},
		{-2500, "-2 500 ₽"},
	}
	for _, test := range tests {
		if got := formatPrice(test.amount); got != test.want {
			t.Errorf("formatPrice(%v) = %q, want %q", test.amount, got, test.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	if got := formatDate("2026-03-08T19:30:00"); got != "08.03.2026 19:30" {
		t.Errorf("formatDate = %q", got)
	}
	// Unparseable input passes through.
	if got := formatDate("скоро"); got != "скоро" {
		t.Errorf("formatDate(junk) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("короткое", 20); got != "короткое" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("очень длинное название", 10); got != "очень дли…" {
		t.Errorf("truncate(long) = %q", got)
	}
}

func TestClampScroll(t *testing.T) {
	t.Parallel()

	// Cursor below the window pulls the scroll down.
	if got := clampScroll(0, 15, 30, 10); got != 6 {
		t.Errorf("clampScroll(cursor below) = %d, want 6", got)
	}
	// Cursor above the window pulls the scroll up.
	if got := clampScroll(10, 3, 30, 10); got != 3 {
		t.Errorf("clampScroll(cursor above) = %d, want 3", got)
	}
	// Content fits: no scrolling.
	if got := clampScroll(5, 2, 8, 10); got != 0 {
		t.Errorf("clampScroll(fits) = %d, want 0", got)
	}
}
