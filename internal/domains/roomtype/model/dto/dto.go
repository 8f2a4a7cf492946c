package dto

import (
	"hotel/internal/domains/roomtype/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomTypeRequest struct {
	TypeKey  string   `json:"typeKey"  validate:"required,max=50"`
	DescKey  string   `json:"descKey"  validate:"required,max=50"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
	Size     int      `json:"size"     validate:"gte=0"`
	Guests   int      `json:"guests"   validate:"required,min=1"`
	Beds     string   `json:"beds"     validate:"required,max=20"`
	Image    string   `json:"image"    validate:"omitempty,max=255"`
	Features []string `json:"features" validate:"omitempty,dive,required"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	features := c.Features
	if features == nil {
		features = []string{}
	}

	return model.RoomType{
		ID:       uuid.NewString(),
		TypeKey:  c.TypeKey,
		DescKey:  c.DescKey,
		Price:    *c.Price,
		Size:     c.Size,
		Guests:   c.Guests,
		Beds:     c.Beds,
		Image:    c.Image,
		Features: features,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type RoomTypeResponse struct {
	ID       string   `json:"id"`
	TypeKey  string   `json:"typeKey"`
	DescKey  string   `json:"descKey"`
	Price    float64  `json:"price"`
	Size     int      `json:"size"`
	Guests   int      `json:"guests"`
	Beds     string   `json:"beds"`
	Image    string   `json:"image"`
	Features []string `json:"features"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(m model.RoomType) {
	r.ID = m.ID
	r.TypeKey = m.TypeKey
	r.DescKey = m.DescKey
	r.Price = m.Price
	r.Size = m.Size
	r.Guests = m.Guests
	r.Beds = m.Beds
	r.Image = m.Image
	r.Features = append([]string{}, m.Features...)
	r.Metadata.FromModel(m.Metadata)
}

func FromModels(models []model.RoomType) []RoomTypeResponse {
	res := make([]RoomTypeResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res
}
