// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/velvet-club/velvet/lib/api"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"exit error", &ExitError{Code: 7}, 7},
		{"validation", api.ValidationError("bad input"), 2},
		{"unauthenticated", &api.Error{Category: api.CategoryUnauthenticated}, 3},
		{"forbidden", &api.Error{Category: api.CategoryForbidden}, 4},
		{"not found", &api.Error{Category: api.CategoryNotFound}, 5},
		{"server error", &api.Error{Category: api.CategoryServer}, 1},
		{"plain error", errors.New("boom"), 1},
		{"wrapped api error", fmt.Errorf("listing: %w", &api.Error{Category: api.CategoryForbidden}), 4},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(test.err); got != test.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", test.err, got, test.want)
			}
		})
	}
}
