// Package timezone holds the application timezone configured by APP_TIMEZONE.
//
// The location is loaded when the package is imported and falls back to UTC when the name is
// empty or unknown. Booking nights are not affected by it: they are whole calendar days handled by
// package calendar. The timezone only decides what "now" means, e.g. for upcoming-booking counts
// and audit timestamps.
//
//	now := timezone.Now()
//	formatted := timezone.Format(booking.CreatedAt, constant.DateFormat)
package timezone
