package shared_test

import (
	"context"
	"errors"
	"hotelbook/shared"
	"hotelbook/shared/cache/mocks"
	"hotelbook/shared/constant"
	"hotelbook/shared/dto"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToFloat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "rating", input: "4.5", want: ptr(4.5)},
		{name: "whole number", input: "3", want: ptr(3.0)},
		{name: "empty", input: "", want: nil},
		{name: "not a number", input: "four", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToFloat(tt.input))
		})
	}
}

func TestConvertStringToDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "nightly price", input: "120.50", want: "120.5"},
		{name: "no fraction", input: "99", want: "99"},
		{name: "empty", input: ""},
		{name: "not a price", input: "cheap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToDecimal(tt.input)

			if tt.want == "" {
				assert.Nil(t, got)

				return
			}

			require.NotNil(t, got)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(*got))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "no reservations", total: 0, limit: 10, want: 1},
		{name: "exact pages", total: 30, limit: 10, want: 3},
		{name: "partial last page", total: 31, limit: 10, want: 4},
		{name: "fewer than a page", total: 4, limit: 10, want: 1},
		{name: "no limit", total: 12, limit: 0, want: 1},
		{name: "negative limit", total: 12, limit: -1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type stayUpdate struct {
	Status     string     `db:"status"`
	GuestCount int        `db:"guest_count"`
	Note       *string    `db:"note"`
	CheckIn    *time.Time `db:"check_in"`
	Internal   string
}

func TestTransformFields(t *testing.T) {
	note := "late arrival"

	t.Run("keeps set db fields", func(t *testing.T) {
		fields := shared.TransformFields(stayUpdate{Status: "cancelled", Note: &note, Internal: "ignored"}, "guest-1")

		assert.Equal(t, "cancelled", fields["status"])
		assert.Equal(t, &note, fields["note"])
		assert.NotContains(t, fields, "guest_count")
		assert.NotContains(t, fields, "check_in")
		assert.NotContains(t, fields, "Internal")
		assert.Equal(t, "guest-1", fields[constant.FieldModifiedBy])
		assert.WithinDuration(t, time.Now(), fields[constant.FieldModifiedAt].(time.Time), time.Minute)
	})

	t.Run("only audit fields when nothing is set", func(t *testing.T) {
		fields := shared.TransformFields(stayUpdate{}, "owner-1")

		assert.Len(t, fields, 2)
		assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])
	})
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("res-1", "id", "reservations")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{Field: "id", Value: "res-1", Operator: dto.FilterOperatorEq, Table: "reservations"}, group.Filters[0])

	where, args := group.GetWhereClause()
	assert.Equal(t, "(reservations.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "res-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "hotel:get", shared.BuildCacheKey("hotel:get"))
	assert.Equal(t, "hotel:get:42", shared.BuildCacheKey("hotel:get", "42"))
	assert.Equal(t, "room:availability:7:2030-01-01", shared.BuildCacheKey("room:availability", "7", "2030-01-01"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("guest-1", "guest_id", "reservations")

	first := shared.BuildCacheKeyWithQuery("reservation:gets", params, filter)

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("reservation:gets", params, filter))
	assert.Regexp(t, `^reservation:gets:[0-9a-f]{16}$`, first)
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("reservation:gets", dto.QueryParams{Page: 2, Limit: 10}, filter))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "hotel:search*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "hotel:search")

	redisCache.EXPECT().Clear(gomock.Any(), "hotel:get*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "hotel:get")
}

func ptr[T any](v T) *T {
	return &v
}
