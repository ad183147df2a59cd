package dto

import (
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/shared"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	RoomID     string `json:"room_id"     validate:"required,uuid"`
	CheckIn    string `json:"check_in"    validate:"required,calendardate" example:"2030-01-10"`
	CheckOut   string `json:"check_out"   validate:"required,calendardate" example:"2030-01-14"`
	GuestCount int    `json:"guest_count" validate:"required,gte=1"        example:"2"`
}

// ToModel builds a confirmed reservation for guestID over r, priced at total.
func (c *CreateReservationRequest) ToModel(guestID, hotelID string, r model.DateRange, total decimal.Decimal, now time.Time) model.Reservation {
	return model.Reservation{
		ID:         uuid.NewString(),
		RoomID:     c.RoomID,
		HotelID:    hotelID,
		GuestID:    guestID,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		GuestCount: c.GuestCount,
		Status:     model.StatusConfirmed,
		TotalPrice: total,
		Metadata: gModel.NewMetadata(guestID, now),
	}
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,calendardate"`
	CheckOut string `json:"check_out" validate:"required,calendardate"`
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Nights    int    `json:"nights"`
	Available bool   `json:"available"`
}

type CancelReservationRequest struct {
	Status string `db:"status"`
}

type ReservationResponse struct {
	ID         string          `json:"id"`
	RoomID     string          `json:"room_id"`
	HotelID    string          `json:"hotel_id"`
	GuestID    string          `json:"guest_id"`
	CheckIn    string          `json:"check_in"`
	CheckOut   string          `json:"check_out"`
	Nights     int             `json:"nights"`
	GuestCount int             `json:"guest_count"`
	TotalPrice decimal.Decimal `json:"total_price" swaggertype:"string" example:"400.00"`
	Status     string          `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	stay := model.Range()

	r.ID = model.ID
	r.RoomID = model.RoomID
	r.HotelID = model.HotelID
	r.GuestID = model.GuestID
	r.CheckIn = stay.CheckIn.Format(constant.CalendarDate)
	r.CheckOut = stay.CheckOut.Format(constant.CalendarDate)
	r.Nights = stay.Nights()
	r.GuestCount = model.GuestCount
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
