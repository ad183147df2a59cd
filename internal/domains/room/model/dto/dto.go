package dto

import (
	"hotelbook/internal/domains/room/model"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number"     validate:"required,max=20"  example:"101"`
	RoomType      string          `json:"room_type"       validate:"required,max=50"  example:"deluxe"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string"        example:"100.00"`
	MaxOccupancy  int             `json:"max_occupancy"   validate:"required,gte=1"   example:"2"`
}

func (c *CreateRoomRequest) ToModel(hotelID, user string, now time.Time) model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       hotelID,
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		PricePerNight: c.PricePerNight.Round(2),
		MaxOccupancy:  c.MaxOccupancy,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type RoomResponse struct {
	ID            string          `json:"id"`
	HotelID       string          `json:"hotel_id"`
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night" swaggertype:"string" example:"100.00"`
	MaxOccupancy  int             `json:"max_occupancy"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.MaxOccupancy = model.MaxOccupancy
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
