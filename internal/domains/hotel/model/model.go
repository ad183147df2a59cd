package model

import (
	"hotelbook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldCity        = "city"
	FieldCountry     = "country"
	FieldAmenities   = "amenities"
	FieldRating      = "rating"
	FieldImageURL    = "image_url"
)

type Hotel struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	City        string         `db:"city"`
	Country     string         `db:"country"`
	Amenities   pq.StringArray `db:"amenities"`
	Rating      float64        `db:"rating"`
	ImageURL    string         `db:"image_url"`
	model.Metadata
}

func (h Hotel) OwnedBy(userID string) bool {
	return h.OwnerID == userID
}
