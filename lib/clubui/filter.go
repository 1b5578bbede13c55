// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package clubui

import (
	"strings"

	"github.com/velvet-club/velvet/lib/api"
)

// FilterModel implements case-insensitive substring matching over the
// event list: title, description, and category name. The filter
// narrows client-side without round-tripping to the service.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus (the
	// user pressed / to start typing).
	Active bool
}

// MatchesEvent returns true if the event matches the current filter.
// An empty filter matches everything.
func (filter *FilterModel) MatchesEvent(event api.Event) bool {
	if filter.Input == "" {
		return true
	}
	query := strings.ToLower(filter.Input)

	if strings.Contains(strings.ToLower(event.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(event.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(event.CategoryName), query) {
		return true
	}
	return false
}

// Apply filters events, returning only those that match.
func (filter *FilterModel) Apply(events []api.Event) []api.Event {
	if filter.Input == "" {
		return events
	}
	var result []api.Event
	for _, event := range events {
		if filter.MatchesEvent(event) {
			result = append(result, event)
		}
	}
	return result
}

// Type appends a rune to the query.
func (filter *FilterModel) Type(text string) {
	filter.Input += text
}

// Backspace removes the last rune from the query.
func (filter *FilterModel) Backspace() {
	runes := []rune(filter.Input)
	if len(runes) > 0 {
		filter.Input = string(runes[:len(runes)-1])
	}
}

// Clear resets the query and deactivates the filter.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}
