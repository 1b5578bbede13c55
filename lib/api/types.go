// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

// Role is a user's authorization level.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether the role is one of the three known levels.
func (role Role) Valid() bool {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is the service's account record.
type User struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Event statuses.
const (
	EventPlanned   = "planned"
	EventActive    = "active"
	EventCancelled = "cancelled"
)

// Event is a club event with its zone configuration. Timestamps are
// the service's ISO 8601 strings; rendering layers parse them.
type Event struct {
	EventID      int64       `json:"event_id"`
	CategoryID   int64       `json:"category_id,omitempty"`
	CategoryName string      `json:"category_name,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	EventDate    string      `json:"event_date"`
	Duration     int         `json:"duration,omitempty"`
	Status       string      `json:"status"`
	Capacity     int         `json:"capacity,omitempty"`
	Zones        []EventZone `json:"zones,omitempty"`
}

// EventZone is one zone's seat allocation and pricing for an event.
type EventZone struct {
	ZoneID         int64   `json:"zone_id"`
	Name           string  `json:"name,omitempty"`
	AvailableSeats int     `json:"available_seats"`
	ZonePrice      float64 `json:"zone_price"`
}

// Seat is a single seat within a zone, as returned by the seat map
// endpoint.
type Seat struct {
	SeatID     int64  `json:"seat_id"`
	SeatNumber string `json:"seat_number"`
	IsBooked   bool   `json:"is_booked"`
}

// EventCategory is an event category.
type EventCategory struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

// Zone is a club zone (the physical area seats belong to).
type Zone struct {
	ZoneID   int64  `json:"zone_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity,omitempty"`
}

// Booking statuses and payment statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
)

// Booking is a seat reservation, joined with event/seat/payment data
// the way the listing endpoint returns it.
type Booking struct {
	BookingID     int64   `json:"booking_id"`
	EventID       int64   `json:"event_id"`
	UserID        int64   `json:"user_id"`
	SeatID        int64   `json:"seat_id"`
	Status        string  `json:"status"`
	BookingDate   string  `json:"booking_date,omitempty"`
	EventTitle    string  `json:"event_title,omitempty"`
	EventDate     string  `json:"event_date,omitempty"`
	SeatNumber    string  `json:"seat_number,omitempty"`
	ZoneName      string  `json:"zone_name,omitempty"`
	Price         float64 `json:"price,omitempty"`
	PaymentStatus string  `json:"payment_status,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	PaymentDate   string  `json:"payment_date,omitempty"`
	TransactionID int64   `json:"transaction_id,omitempty"`
}

// AwaitsPayment reports whether the booking can be paid: pending
// payment on a booking that has not been cancelled.
func (booking Booking) AwaitsPayment() bool {
	if booking.Status == BookingCancelled {
		return false
	}
	return booking.PaymentStatus == "" || booking.PaymentStatus == PaymentPending
}

// Profile is the caller's own account with contact fields.
type Profile struct {
	User
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
}

// UserStats aggregates a user's booking activity for the admin panel.
type UserStats struct {
	TotalBookings int     `json:"total_bookings"`
	TotalSpent    float64 `json:"total_spent"`
	LastActivity  string  `json:"last_activity,omitempty"`
}

// AdminUser is a user row in the admin panel, with activity stats.
type AdminUser struct {
	User
	Stats UserStats `json:"stats"`
}

// OverallStats is the service-wide counters block of AdminStats.
type OverallStats struct {
	TotalUsers    int     `json:"total_users"`
	TotalEvents   int     `json:"total_events"`
	ActiveEvents  int     `json:"active_events"`
	PlannedEvents int     `json:"planned_events"`
	TotalBookings int     `json:"total_bookings"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// UpcomingEventStats is one upcoming event's occupancy row.
type UpcomingEventStats struct {
	EventID           int64   `json:"event_id"`
	Title             string  `json:"title"`
	EventDate         string  `json:"event_date"`
	Status            string  `json:"status"`
	TotalBookings     int     `json:"total_bookings"`
	Capacity          int     `json:"capacity"`
	BookingPercentage float64 `json:"booking_percentage"`
}

// CategoryStats is revenue grouped by event category.
type CategoryStats struct {
	Category      string  `json:"category"`
	TotalEvents   int     `json:"total_events"`
	TotalBookings int     `json:"total_bookings"`
	Revenue       float64 `json:"revenue"`
}

// ZoneStats is zone usage across events.
type ZoneStats struct {
	ZoneName        string  `json:"zone_name"`
	EventsUsingZone int     `json:"events_using_zone"`
	AveragePrice    float64 `json:"avg_price"`
	TotalCapacity   int     `json:"total_capacity"`
}

// AdminStats is the admin dashboard payload.
type AdminStats struct {
	Overall        OverallStats         `json:"overall"`
	UpcomingEvents []UpcomingEventStats `json:"upcoming_events"`
	Categories     []CategoryStats      `json:"categories"`
	Zones          []ZoneStats          `json:"zones"`
}

// AuditLogEntry is one audit trail record.
type AuditLogEntry struct {
	LogID     int64          `json:"log_id"`
	UserID    int64          `json:"user_id"`
	Username  string         `json:"username"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// SystemHealth is the health-check payload. The check set varies by
// deployment, so checks pass through as a free-form map.
type SystemHealth struct {
	Status   string         `json:"status"`
	Database string         `json:"database,omitempty"`
	Uptime   string         `json:"uptime,omitempty"`
	Checks   map[string]any `json:"checks,omitempty"`
}

// EventStatistics is the per-event sales summary.
type EventStatistics struct {
	EventID        int64   `json:"event_id"`
	Title          string  `json:"title"`
	TotalBookings  int     `json:"total_bookings"`
	ConfirmedCount int     `json:"confirmed_count"`
	PendingCount   int     `json:"pending_count"`
	Revenue        float64 `json:"revenue"`
}
