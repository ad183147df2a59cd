package dto

import (
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/internal/domains/hotel/search"
	roomModel "hotelbook/internal/domains/room/model"
	roomDto "hotelbook/internal/domains/room/model/dto"
	"hotelbook/shared"
	gDto "hotelbook/shared/dto"
	gModel "hotelbook/shared/model"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	queryCity      = "city"
	queryMinPrice  = "min_price"
	queryMaxPrice  = "max_price"
	queryMinRating = "min_rating"
)

type CreateHotelRequest struct {
	Name        string   `json:"name"        validate:"required,max=150"                                                              example:"Grand Braga"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	City        string   `json:"city"        validate:"required,max=100"                                                              example:"Bandung"`
	Country     string   `json:"country"     validate:"omitempty,max=100"                                                             example:"Indonesia"`
	Amenities   []string `json:"amenities"   validate:"omitempty,max=30,dive,required,max=50"`
	Rating      float64  `json:"rating"      validate:"gte=0,lte=5"                                                                   example:"4.5"`
	Image       string   `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=2"`
}

func (c *CreateHotelRequest) ToModel(owner, imageURL string, now time.Time) model.Hotel {
	amenities := make([]string, 0, len(c.Amenities))
	for _, amenity := range c.Amenities {
		amenities = append(amenities, strings.TrimSpace(amenity))
	}

	return model.Hotel{
		ID:          uuid.NewString(),
		OwnerID:     owner,
		Name:        c.Name,
		Description: c.Description,
		City:        c.City,
		Country:     c.Country,
		Amenities:   amenities,
		Rating:      c.Rating,
		ImageURL:    imageURL,
		Metadata:    gModel.NewMetadata(owner, now),
	}
}

type HotelResponse struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Country     string   `json:"country"`
	Amenities   []string `json:"amenities"`
	Rating      float64  `json:"rating"`
	ImageURL    string   `json:"image_url"`
	gDto.Metadata
}

func (h *HotelResponse) FromModel(model model.Hotel) {
	h.ID = model.ID
	h.OwnerID = model.OwnerID
	h.Name = model.Name
	h.Description = model.Description
	h.City = model.City
	h.Country = model.Country
	h.Amenities = append([]string{}, model.Amenities...)
	h.Rating = model.Rating
	h.ImageURL = model.ImageURL
	h.Metadata.FromModel(model.Metadata)
}

type HotelDetailResponse struct {
	HotelResponse
	Rooms []roomDto.RoomResponse `json:"rooms"`
}

func (h *HotelDetailResponse) FromModel(hotel model.Hotel, rooms []roomModel.Room) {
	h.HotelResponse.FromModel(hotel)

	h.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		h.Rooms[i].FromModel(room)
	}
}

type SearchRequest struct {
	City      string          `json:"city"`
	MinPrice  decimal.Decimal `json:"min_price"`
	MaxPrice  decimal.Decimal `json:"max_price"`
	MinRating float64         `json:"min_rating"`
	gDto.QueryParams
}

func (s *SearchRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	s.City = strings.TrimSpace(query.Get(queryCity))

	if minPrice := shared.ConvertStringToDecimal(query.Get(queryMinPrice)); minPrice != nil {
		s.MinPrice = *minPrice
	}

	if maxPrice := shared.ConvertStringToDecimal(query.Get(queryMaxPrice)); maxPrice != nil {
		s.MaxPrice = *maxPrice
	}

	if minRating := shared.ConvertStringToFloat(query.Get(queryMinRating)); minRating != nil {
		s.MinRating = *minRating
	}

	s.QueryParams.FromRequest(r, true)
}

func (s *SearchRequest) Criteria() search.Criteria {
	return search.Criteria{
		MinPrice:  s.MinPrice,
		MaxPrice:  s.MaxPrice,
		MinRating: s.MinRating,
	}
}

type SearchItem struct {
	HotelResponse
	MinPrice *decimal.Decimal `json:"min_price,omitempty" swaggertype:"string" example:"100.00"`
}

type SearchResponse struct {
	Hotels    []SearchItem `json:"hotels"`
	TotalPage int          `json:"total_page"`
	TotalData int          `json:"total_data"`
}

// FromResults fills one page of results; totalData counts every match.
func (s *SearchResponse) FromResults(results []search.Result, totalData, limit int) {
	s.TotalData = totalData
	s.TotalPage = shared.CalculateTotalPage(totalData, limit)

	s.Hotels = make([]SearchItem, len(results))
	for i, result := range results {
		s.Hotels[i].HotelResponse.FromModel(result.Hotel)
		s.Hotels[i].MinPrice = result.MinPrice
	}
}
