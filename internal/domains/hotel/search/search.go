// Package search derives per-hotel price data from rooms and filters hotels by it.
package search

import (
	hotelModel "hotelbook/internal/domains/hotel/model"
	roomModel "hotelbook/internal/domains/room/model"

	"github.com/shopspring/decimal"
)

// Criteria bounds a search. Zero values leave that side unbounded.
type Criteria struct {
	MinPrice  decimal.Decimal
	MaxPrice  decimal.Decimal
	MinRating float64
}

func (c Criteria) priceBounded() bool {
	return c.MinPrice.IsPositive() || c.MaxPrice.IsPositive()
}

func (c Criteria) admits(price decimal.Decimal) bool {
	if c.MinPrice.IsPositive() && price.LessThan(c.MinPrice) {
		return false
	}

	if c.MaxPrice.IsPositive() && price.GreaterThan(c.MaxPrice) {
		return false
	}

	return true
}

type Result struct {
	Hotel    hotelModel.Hotel
	MinPrice *decimal.Decimal
}

// MinPriceByHotel maps each hotel that has rooms to its cheapest nightly rate.
func MinPriceByHotel(rooms []roomModel.Room) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal)

	for _, room := range rooms {
		current, ok := prices[room.HotelID]
		if !ok || room.PricePerNight.LessThan(current) {
			prices[room.HotelID] = room.PricePerNight
		}
	}

	return prices
}

// Filter keeps hotels that meet the rating floor and whose minimum price lies in the band,
// preserving input order. A hotel without rooms only passes when no price bound is set.
func Filter(hotels []hotelModel.Hotel, minPrices map[string]decimal.Decimal, criteria Criteria) []Result {
	results := make([]Result, 0, len(hotels))

	for _, hotel := range hotels {
		if hotel.Rating < criteria.MinRating {
			continue
		}

		price, ok := minPrices[hotel.ID]
		if !ok {
			if !criteria.priceBounded() {
				results = append(results, Result{Hotel: hotel})
			}

			continue
		}

		if !criteria.admits(price) {
			continue
		}

		results = append(results, Result{Hotel: hotel, MinPrice: &price})
	}

	return results
}

// Paginate returns page (1-based) of items. A non-positive limit returns everything.
func Paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}

	page = max(page, 1)

	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}

	return items[start:min(start+limit, len(items))]
}
