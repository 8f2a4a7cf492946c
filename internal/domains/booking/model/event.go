package model

import (
	"time"

	"hotel/shared/calendar"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingDeleted = "booking.deleted"
)

// Event is published to the booking topic, keyed by room id so a room's events stay ordered.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	RoomID     string    `json:"roomId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	TotalPrice float64   `json:"totalPrice"`
	Currency   string    `json:"currency"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(eventType string, booking Booking, actor string, now time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		StartDate:  calendar.Key(booking.StartDate),
		EndDate:    calendar.Key(booking.EndDate),
		TotalPrice: booking.TotalPrice,
		Currency:   booking.Currency,
		Actor:      actor,
		OccurredAt: now,
	}
}
