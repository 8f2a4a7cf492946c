package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID       = "id"
	FieldTypeKey  = "type_key"
	FieldDescKey  = "desc_key"
	FieldPrice    = "price"
	FieldSize     = "size"
	FieldGuests   = "guests"
	FieldBeds     = "beds"
	FieldImage    = "image"
	FieldFeatures = "features"
)

// RoomType is a category of rooms sharing price, size and capacity. Display text lives on the
// client; TypeKey and DescKey are translation keys.
type RoomType struct {
	ID       string         `db:"id"`
	TypeKey  string         `db:"type_key"`
	DescKey  string         `db:"desc_key"`
	Price    float64        `db:"price"`
	Size     int            `db:"size"`
	Guests   int            `db:"guests"`
	Beds     string         `db:"beds"`
	Image    string         `db:"image"`
	Features pq.StringArray `db:"features"`
	model.Metadata
}
