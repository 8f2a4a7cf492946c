package model

import (
	"time"

	roomModel "hotel/internal/domains/room/model"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/calendar"
	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldTotalPrice    = "total_price"
	FieldCurrency      = "currency"
	FieldGuestName     = "guest_name"
	FieldGuestEmail    = "guest_email"
	FieldPaymentMethod = "payment_method"
)

// Booking occupies its room for the nights in [StartDate, EndDate).
type Booking struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	TotalPrice    float64   `db:"total_price"`
	Currency      string    `db:"currency"`
	GuestName     *string   `db:"guest_name"`
	GuestEmail    *string   `db:"guest_email"`
	PaymentMethod *string   `db:"payment_method"`
	model.Metadata
}

// Nights returns the booking's check-in and check-out as calendar days.
func (b Booking) Nights() (start, end time.Time) {
	return calendar.Day(b.StartDate), calendar.Day(b.EndDate)
}

// BookingDetail is a booking joined with its room and room type.
type BookingDetail struct {
	Booking
	RoomNumber string  `db:"room_number"  table:"rooms"`
	RoomTypeID string  `db:"room_type_id" table:"rooms"`
	TypeKey    string  `db:"type_key"     table:"room_types"`
	TypePrice  float64 `db:"type_price"   table:"room_types" column:"price"`
}

func (BookingDetail) GetJoinQuery() string {
	return "JOIN " + roomModel.TableName + " ON " + roomModel.TableName + "." + roomModel.FieldID + " = " + TableName + "." + FieldRoomID +
		" JOIN " + roomTypeModel.TableName + " ON " + roomTypeModel.TableName + "." + roomTypeModel.FieldID + " = " + roomModel.TableName + "." + roomModel.FieldRoomTypeID
}
