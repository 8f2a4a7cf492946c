package dto

import (
	"hotel/internal/domains/room/model"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomTypeID string `json:"roomTypeId" validate:"required,uuid"`
	RoomNumber string `json:"roomNumber" validate:"required,max=20"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		RoomTypeID: c.RoomTypeID,
		RoomNumber: c.RoomNumber,
		Metadata:   gModel.NewMetadata(user, timezone.Now()),
	}
}

type RoomTypeSummary struct {
	ID       string   `json:"id"`
	TypeKey  string   `json:"typeKey"`
	DescKey  string   `json:"descKey"`
	Price    float64  `json:"price"`
	Size     int      `json:"size"`
	Guests   int      `json:"guests"`
	Beds     string   `json:"beds"`
	Image    string   `json:"image"`
	Features []string `json:"features"`
}

type RoomResponse struct {
	ID         string           `json:"id"`
	RoomNumber string           `json:"roomNumber"`
	RoomTypeID string           `json:"roomTypeId"`
	RoomType   *RoomTypeSummary `json:"roomType,omitempty"`
}

func (r *RoomResponse) FromModel(m model.Room) {
	r.ID = m.ID
	r.RoomNumber = m.RoomNumber
	r.RoomTypeID = m.RoomTypeID
}

func (r *RoomResponse) FromDetail(m model.RoomDetail) {
	r.FromModel(m.Room)

	rt := m.RoomType()
	r.RoomType = &RoomTypeSummary{
		ID:       rt.ID,
		TypeKey:  rt.TypeKey,
		DescKey:  rt.DescKey,
		Price:    rt.Price,
		Size:     rt.Size,
		Guests:   rt.Guests,
		Beds:     rt.Beds,
		Image:    rt.Image,
		Features: append([]string{}, rt.Features...),
	}
}

func FromDetails(models []model.RoomDetail) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, m := range models {
		res[i].FromDetail(m)
	}

	return res
}
