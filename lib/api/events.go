// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/url"
)

// Events lists all events.
func (client *Client) Events(ctx context.Context) ([]Event, error) {
	var result []Event
	if err := client.get(ctx, "/events", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Event returns one event by ID, including its zone configuration.
func (client *Client) Event(ctx context.Context, eventID int64) (*Event, error) {
	var result Event
	if err := client.get(ctx, fmt.Sprintf("/events/%d", eventID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EventZoneConfig is one zone allocation in a create/update request.
type EventZoneConfig struct {
	ZoneID         int64   `json:"zone_id"`
	AvailableSeats int     `json:"available_seats"`
	ZonePrice      float64 `json:"zone_price"`
}

// EventRequest is the JSON body for creating or replacing an event.
type EventRequest struct {
	CategoryID  int64             `json:"category_id,omitempty"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	EventDate   string            `json:"event_date"`
	Duration    int               `json:"duration"`
	Zones       []EventZoneConfig `json:"zones"`
	Status      string            `json:"status,omitempty"`
}

// CreateEvent creates a new event. Moderator or admin role required
// (enforced server-side; the client gates the UI via lib/access).
func (client *Client) CreateEvent(ctx context.Context, request EventRequest) (*Event, error) {
	var result Event
	if err := client.post(ctx, "/events", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateEvent replaces an event's mutable fields.
func (client *Client) UpdateEvent(ctx context.Context, eventID int64, request EventRequest) (*Event, error) {
	var result Event
	if err := client.put(ctx, fmt.Sprintf("/events/%d", eventID), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEvent removes an event.
func (client *Client) DeleteEvent(ctx context.Context, eventID int64) error {
	return client.delete(ctx, fmt.Sprintf("/events/%d", eventID), nil)
}

// SetEventStatus transitions an event between planned, active, and
// cancelled.
func (client *Client) SetEventStatus(ctx context.Context, eventID int64, status string) error {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	return client.patch(ctx, fmt.Sprintf("/events/%d/status", eventID), body, nil)
}

// EventSeats returns the seat map for one zone of an event.
func (client *Client) EventSeats(ctx context.Context, eventID, zoneID int64) ([]Seat, error) {
	endpoint := fmt.Sprintf("/events/%d/seats", eventID)
	if zoneID != 0 {
		endpoint += "?zone_id=" + url.QueryEscape(fmt.Sprint(zoneID))
	}
	// The service wraps the list: {"seats": [...]}.
	var result struct {
		Seats []Seat `json:"seats"`
	}
	if err := client.get(ctx, endpoint, &result); err != nil {
		return nil, err
	}
	return result.Seats, nil
}

// Categories lists event categories.
func (client *Client) Categories(ctx context.Context) ([]EventCategory, error) {
	var result []EventCategory
	if err := client.get(ctx, "/events/categories", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Zones lists the club's physical zones.
func (client *Client) Zones(ctx context.Context) ([]Zone, error) {
	var result []Zone
	if err := client.get(ctx, "/events/zones", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// EventStatistics returns the sales summary for one event.
func (client *Client) EventStatistics(ctx context.Context, eventID int64) (*EventStatistics, error) {
	var result EventStatistics
	if err := client.get(ctx, fmt.Sprintf("/events/%d/statistics", eventID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
