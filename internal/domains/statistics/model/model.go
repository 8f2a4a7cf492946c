package model

import (
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/calendar"
)

const percent = 100

type Statistics struct {
	TotalBookings      int                `json:"totalBookings"`
	TotalRooms         int                `json:"totalRooms"`
	UpcomingBookings   int                `json:"upcomingBookings"`
	OccupancyRate      float64            `json:"occupancyRate"`
	RevenueByCurrency  map[string]float64 `json:"revenueByCurrency"`
	BookingsByRoomType map[string]int     `json:"bookingsByRoomType"`
}

// Compute aggregates every booking. A booking is upcoming when its check-in day is today or later.
// OccupancyRate is bookings per room as a percentage, not a date-aware occupancy. Revenue is summed
// per currency without conversion.
func Compute(bookings []bookingModel.BookingDetail, totalRooms int, today time.Time) Statistics {
	stats := Statistics{
		TotalBookings:      len(bookings),
		TotalRooms:         totalRooms,
		RevenueByCurrency:  map[string]float64{},
		BookingsByRoomType: map[string]int{},
	}

	day := calendar.Day(today)

	for _, booking := range bookings {
		if !calendar.Day(booking.StartDate).Before(day) {
			stats.UpcomingBookings++
		}

		stats.RevenueByCurrency[booking.Currency] += booking.TotalPrice
		stats.BookingsByRoomType[booking.TypeKey]++
	}

	for currency, revenue := range stats.RevenueByCurrency {
		stats.RevenueByCurrency[currency] = shared.Round(revenue, 2)
	}

	if totalRooms > 0 {
		stats.OccupancyRate = shared.Round(float64(stats.TotalBookings)/float64(totalRooms)*percent, 2)
	}

	return stats
}
