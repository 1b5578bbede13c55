// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"testing"

	"github.com/velvet-club/velvet/cmd/velvet/cli"
)

func TestRootCommandTree(t *testing.T) {
	t.Parallel()

	root := Root(&cli.App{})

	want := []string{"auth", "events", "bookings", "profile", "admin", "version"}
	if len(root.Subcommands) != len(want) {
		t.Fatalf("root has %d subcommands, want %d", len(root.Subcommands), len(want))
	}
	for i, name := range want {
		if root.Subcommands[i].Name != name {
			t.Errorf("subcommand[%d] = %q, want %q", i, root.Subcommands[i].Name, name)
		}
	}

	var walk func(t *testing.T, command *cli.Command)
	walk = func(t *testing.T, command *cli.Command) {
		if command.Summary == "" {
			t.Errorf("command %q has no summary", command.Name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("command %q has neither Run nor subcommands", command.Name)
		}
		seen := map[string]bool{}
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("command %q has duplicate subcommand %q", command.Name, sub.Name)
			}
			seen[sub.Name] = true
			walk(t, sub)
		}
	}
	walk(t, root)
}
