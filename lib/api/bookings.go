// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
)

// MyBookings lists the caller's bookings, newest first.
func (client *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	var result []Booking
	if err := client.get(ctx, "/bookings/my-bookings", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Booking returns one booking by ID.
func (client *Client) Booking(ctx context.Context, bookingID int64) (*Booking, error) {
	var result Booking
	if err := client.get(ctx, fmt.Sprintf("/bookings/%d", bookingID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateBookingRequest is the JSON body for POST /bookings.
type CreateBookingRequest struct {
	EventID int64 `json:"event_id"`
	SeatID  int64 `json:"seat_id"`
}

// CreateBooking reserves a seat. The new booking starts in the
// pending state with a pending payment transaction.
func (client *Client) CreateBooking(ctx context.Context, eventID, seatID int64) (*Booking, error) {
	var result Booking
	request := CreateBookingRequest{EventID: eventID, SeatID: seatID}
	if err := client.post(ctx, "/bookings", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ConfirmBooking confirms a pending booking.
func (client *Client) ConfirmBooking(ctx context.Context, bookingID int64) error {
	return client.post(ctx, fmt.Sprintf("/bookings/%d/confirm", bookingID), nil, nil)
}

// CancelBooking cancels a booking and releases its seat.
func (client *Client) CancelBooking(ctx context.Context, bookingID int64) error {
	return client.delete(ctx, fmt.Sprintf("/bookings/%d", bookingID), nil)
}

// Payment methods accepted by the payment simulation.
var PaymentMethods = []string{
	"credit_card",
	"debit_card",
	"paypal",
	"apple_pay",
	"google_pay",
}

// PayRequest is the JSON body for POST /bookings/pay.
type PayRequest struct {
	BookingID     int64  `json:"booking_id"`
	PaymentMethod string `json:"payment_method"`
}

// Pay runs the payment simulation for a booking. On success the
// booking transitions to confirmed and its transaction to completed.
func (client *Client) Pay(ctx context.Context, bookingID int64, method string) error {
	return client.post(ctx, "/bookings/pay", PayRequest{BookingID: bookingID, PaymentMethod: method}, nil)
}
