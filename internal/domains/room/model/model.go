package model

import (
	roomTypeModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldRoomTypeID = "room_type_id"
	FieldRoomNumber = "room_number"
)

type Room struct {
	ID         string `db:"id"`
	RoomTypeID string `db:"room_type_id"`
	RoomNumber string `db:"room_number"`
	model.Metadata
}

// RoomDetail is a room joined with its room type.
type RoomDetail struct {
	Room
	TypeKey      string         `db:"type_key"      table:"room_types"`
	DescKey      string         `db:"desc_key"      table:"room_types"`
	TypePrice    float64        `db:"type_price"    table:"room_types" column:"price"`
	TypeSize     int            `db:"type_size"     table:"room_types" column:"size"`
	TypeGuests   int            `db:"type_guests"   table:"room_types" column:"guests"`
	TypeBeds     string         `db:"type_beds"     table:"room_types" column:"beds"`
	TypeImage    string         `db:"type_image"    table:"room_types" column:"image"`
	TypeFeatures pq.StringArray `db:"type_features" table:"room_types" column:"features"`
}

func (RoomDetail) GetJoinQuery() string {
	return "JOIN " + roomTypeModel.TableName + " ON " + roomTypeModel.TableName + "." + roomTypeModel.FieldID + " = " + TableName + "." + FieldRoomTypeID
}

func (r RoomDetail) RoomID() string {
	return r.ID
}

func (r RoomDetail) RoomTypeKey() string {
	return r.TypeKey
}

func (r RoomDetail) RoomType() roomTypeModel.RoomType {
	return roomTypeModel.RoomType{
		ID:       r.RoomTypeID,
		TypeKey:  r.TypeKey,
		DescKey:  r.DescKey,
		Price:    r.TypePrice,
		Size:     r.TypeSize,
		Guests:   r.TypeGuests,
		Beds:     r.TypeBeds,
		Image:    r.TypeImage,
		Features: r.TypeFeatures,
	}
}
