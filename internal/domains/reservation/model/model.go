package model

import (
	"hotelbook/shared/model"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldHotelID    = "hotel_id"
	FieldGuestID    = "guest_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuestCount = "guest_count"
	FieldStatus     = "status"
	FieldTotalPrice = "total_price"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	EventCreated   = "reservation.created"
	EventCancelled = "reservation.cancelled"
)

type Reservation struct {
	ID         string          `db:"id"`
	RoomID     string          `db:"room_id"`
	HotelID    string          `db:"hotel_id"`
	GuestID    string          `db:"guest_id"`
	CheckIn    time.Time       `db:"check_in"`
	CheckOut   time.Time       `db:"check_out"`
	GuestCount int             `db:"guest_count"`
	Status     string          `db:"status"`
	TotalPrice decimal.Decimal `db:"total_price"`
	model.Metadata
}

// Range rebuilds the stay of a stored reservation.
func (r Reservation) Range() DateRange {
	return DateRange{CheckIn: DateOf(r.CheckIn), CheckOut: DateOf(r.CheckOut)}
}

func (r Reservation) Active() bool {
	return r.Status == StatusConfirmed
}
