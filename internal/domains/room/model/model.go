package model

import (
	"hotelbook/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldPricePerNight = "price_per_night"
	FieldMaxOccupancy  = "max_occupancy"
)

type Room struct {
	ID            string          `db:"id"`
	HotelID       string          `db:"hotel_id"`
	RoomNumber    string          `db:"room_number"`
	RoomType      string          `db:"room_type"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	MaxOccupancy  int             `db:"max_occupancy"`
	model.Metadata
}

// Fits reports whether guests people can share the room.
func (r Room) Fits(guests int) bool {
	return guests <= r.MaxOccupancy
}
