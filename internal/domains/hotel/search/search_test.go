package search_test

import (
	hotelModel "hotelbook/internal/domains/hotel/model"
	"hotelbook/internal/domains/hotel/search"
	roomModel "hotelbook/internal/domains/room/model"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func room(hotelID, price string) roomModel.Room {
	return roomModel.Room{HotelID: hotelID, PricePerNight: decimal.RequireFromString(price)}
}

func ids(results []search.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Hotel.ID
	}

	return out
}

func TestMinPriceByHotel(t *testing.T) {
	prices := search.MinPriceByHotel([]roomModel.Room{
		room("a", "150"),
		room("a", "90.50"),
		room("b", "300"),
		room("a", "120"),
	})

	require.Len(t, prices, 2)
	assert.True(t, decimal.RequireFromString("90.5").Equal(prices["a"]))
	assert.True(t, decimal.RequireFromString("300").Equal(prices["b"]))

	assert.Empty(t, search.MinPriceByHotel(nil))
}

func TestFilter(t *testing.T) {
	hotels := []hotelModel.Hotel{
		{ID: "cheap", Rating: 3.5},
		{ID: "mid", Rating: 4.2},
		{ID: "luxury", Rating: 4.9},
		{ID: "empty", Rating: 5},
	}

	prices := map[string]decimal.Decimal{
		"cheap":  decimal.NewFromInt(50),
		"mid":    decimal.NewFromInt(150),
		"luxury": decimal.NewFromInt(900),
	}

	tests := []struct {
		name     string
		criteria search.Criteria
		want     []string
	}{
		{name: "unbounded keeps hotels without rooms", criteria: search.Criteria{}, want: []string{"cheap", "mid", "luxury", "empty"}},
		{name: "price floor", criteria: search.Criteria{MinPrice: decimal.NewFromInt(100)}, want: []string{"mid", "luxury"}},
		{name: "price ceiling", criteria: search.Criteria{MaxPrice: decimal.NewFromInt(150)}, want: []string{"cheap", "mid"}},
		{name: "band is inclusive", criteria: search.Criteria{MinPrice: decimal.NewFromInt(150), MaxPrice: decimal.NewFromInt(150)}, want: []string{"mid"}},
		{name: "rating floor", criteria: search.Criteria{MinRating: 4.5}, want: []string{"luxury", "empty"}},
		{name: "rating and price", criteria: search.Criteria{MinRating: 4, MaxPrice: decimal.NewFromInt(500)}, want: []string{"mid"}},
		{name: "nothing matches", criteria: search.Criteria{MinPrice: decimal.NewFromInt(1000)}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(search.Filter(hotels, prices, tt.criteria)))
		})
	}
}

func TestFilter_CarriesMinPrice(t *testing.T) {
	results := search.Filter(
		[]hotelModel.Hotel{{ID: "a"}, {ID: "b"}},
		map[string]decimal.Decimal{"a": decimal.NewFromInt(80)},
		search.Criteria{},
	)

	require.Len(t, results, 2)
	require.NotNil(t, results[0].MinPrice)
	assert.True(t, decimal.NewFromInt(80).Equal(*results[0].MinPrice))
	assert.Nil(t, results[1].MinPrice)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, search.Paginate(items, 1, 2))
	assert.Equal(t, []int{5}, search.Paginate(items, 3, 2))
	assert.Equal(t, []int{}, search.Paginate(items, 4, 2))
	assert.Equal(t, []int{1, 2}, search.Paginate(items, 0, 2))
	assert.Equal(t, items, search.Paginate(items, 1, 0))
}
