package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/calendar"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID        string   `json:"roomId"        validate:"required,uuid"`
	StartDate     string   `json:"startDate"     validate:"required"`
	EndDate       string   `json:"endDate"       validate:"required"`
	TotalPrice    *float64 `json:"totalPrice"    validate:"required,gte=0"`
	Currency      string   `json:"currency"      validate:"required,oneof=USD EUR SYP"`
	GuestName     *string  `json:"guestName"     validate:"omitempty,max=100"`
	GuestEmail    *string  `json:"guestEmail"    validate:"omitempty,email,max=100"`
	PaymentMethod *string  `json:"paymentMethod" validate:"omitempty,max=50"`
}

func (c *CreateBookingRequest) ToModel(user string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		StartDate:     calendar.Day(start),
		EndDate:       calendar.Day(end),
		TotalPrice:    *c.TotalPrice,
		Currency:      c.Currency,
		GuestName:     c.GuestName,
		GuestEmail:    c.GuestEmail,
		PaymentMethod: c.PaymentMethod,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type BookingResponse struct {
	ID            string                `json:"id"`
	RoomID        string                `json:"roomId"`
	StartDate     string                `json:"startDate"`
	EndDate       string                `json:"endDate"`
	TotalPrice    float64               `json:"totalPrice"`
	Currency      string                `json:"currency"`
	GuestName     *string               `json:"guestName,omitempty"`
	GuestEmail    *string               `json:"guestEmail,omitempty"`
	PaymentMethod *string               `json:"paymentMethod,omitempty"`
	Room          *roomDto.RoomResponse `json:"room,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.RoomID = m.RoomID
	r.StartDate = calendar.Key(m.StartDate)
	r.EndDate = calendar.Key(m.EndDate)
	r.TotalPrice = m.TotalPrice
	r.Currency = m.Currency
	r.GuestName = m.GuestName
	r.GuestEmail = m.GuestEmail
	r.PaymentMethod = m.PaymentMethod
	r.Metadata.FromModel(m.Metadata)
}

// WithRoom attaches the booked room and its type.
func (r *BookingResponse) WithRoom(room roomModel.RoomDetail) {
	r.Room = &roomDto.RoomResponse{}
	r.Room.FromDetail(room)
}

func (r *BookingResponse) FromDetail(m model.BookingDetail) {
	r.FromModel(m.Booking)
	r.Room = &roomDto.RoomResponse{
		ID:         m.RoomID,
		RoomNumber: m.RoomNumber,
		RoomTypeID: m.RoomTypeID,
		RoomType: &roomDto.RoomTypeSummary{
			ID:      m.RoomTypeID,
			TypeKey: m.TypeKey,
			Price:   m.TypePrice,
		},
	}
}

func FromDetails(models []model.BookingDetail) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, m := range models {
		res[i].FromDetail(m)
	}

	return res
}

// PublicBookingResponse is the booking view for unauthenticated callers. It carries no guest
// details and no audit fields.
type PublicBookingResponse struct {
	ID         string                `json:"id"`
	RoomID     string                `json:"roomId"`
	StartDate  string                `json:"startDate"`
	EndDate    string                `json:"endDate"`
	TotalPrice float64               `json:"totalPrice"`
	Currency   string                `json:"currency"`
	Room       *roomDto.RoomResponse `json:"room,omitempty"`
	CreatedAt  string                `json:"createdAt"`
}

func (r BookingResponse) Public() PublicBookingResponse {
	return PublicBookingResponse{
		ID:         r.ID,
		RoomID:     r.RoomID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		TotalPrice: r.TotalPrice,
		Currency:   r.Currency,
		Room:       r.Room,
		CreatedAt:  r.CreatedAt,
	}
}

func ToPublic(bookings []BookingResponse) []PublicBookingResponse {
	res := make([]PublicBookingResponse, len(bookings))
	for i, b := range bookings {
		res[i] = b.Public()
	}

	return res
}

type BookedDatesResponse struct {
	BookedDates []string `json:"bookedDates"`
}

type FullyBookedDatesResponse struct {
	FullyBookedDates []string `json:"fullyBookedDates"`
}
