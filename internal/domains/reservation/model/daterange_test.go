package model_test

import (
	"errors"
	"hotelbook/internal/domains/reservation/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, checkIn, checkOut string) model.DateRange {
	t.Helper()

	r, err := model.ParseDateRange(checkIn, checkOut)
	require.NoError(t, err)

	return r
}

func TestDateRange_Overlaps(t *testing.T) {
	booked := mustRange(t, "2025-03-01", "2025-03-05")

	tests := []struct {
		name      string
		candidate model.DateRange
		want      bool
	}{
		{name: "identical", candidate: mustRange(t, "2025-03-01", "2025-03-05"), want: true},
		{name: "nested", candidate: mustRange(t, "2025-03-02", "2025-03-04"), want: true},
		{name: "enclosing", candidate: mustRange(t, "2025-02-27", "2025-03-09"), want: true},
		{name: "same check-in longer stay", candidate: mustRange(t, "2025-03-01", "2025-03-10"), want: true},
		{name: "straddles check-in", candidate: mustRange(t, "2025-02-27", "2025-03-02"), want: true},
		{name: "straddles check-out", candidate: mustRange(t, "2025-03-04", "2025-03-08"), want: true},
		{name: "back to back after", candidate: mustRange(t, "2025-03-05", "2025-03-08"), want: false},
		{name: "back to back before", candidate: mustRange(t, "2025-02-25", "2025-03-01"), want: false},
		{name: "disjoint", candidate: mustRange(t, "2025-04-01", "2025-04-03"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(tt.candidate))
			assert.Equal(t, tt.want, tt.candidate.Overlaps(booked), "overlap must be symmetric")
		})
	}
}

func TestDateRange_Nights(t *testing.T) {
	assert.Equal(t, 4, mustRange(t, "2025-03-01", "2025-03-05").Nights())
	assert.Equal(t, 1, mustRange(t, "2025-03-31", "2025-04-01").Nights())
	assert.Equal(t, 366, mustRange(t, "2024-01-01", "2025-01-01").Nights())
	assert.Equal(t, 136600, mustRange(t, "2026-01-01", "2400-01-01").Nights())
}

func TestNewDateRange(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	t.Run("drops clock part", func(t *testing.T) {
		r, err := model.NewDateRange(
			time.Date(2025, 3, 1, 23, 30, 0, 0, jakarta),
			time.Date(2025, 3, 3, 1, 0, 0, 0, jakarta),
		)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), r.CheckIn)
		assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), r.CheckOut)
		assert.Equal(t, 2, r.Nights())
	})

	t.Run("same day is rejected", func(t *testing.T) {
		_, err := model.NewDateRange(
			time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC),
		)

		assert.ErrorIs(t, err, model.ErrInvalidDateRange)
	})
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		wantErr  bool
	}{
		{name: "valid", checkIn: "2025-03-01", checkOut: "2025-03-05"},
		{name: "reversed", checkIn: "2025-03-05", checkOut: "2025-03-01", wantErr: true},
		{name: "equal", checkIn: "2025-03-05", checkOut: "2025-03-05", wantErr: true},
		{name: "bad check-in", checkIn: "01-03-2025", checkOut: "2025-03-05", wantErr: true},
		{name: "bad check-out", checkIn: "2025-03-01", checkOut: "2025-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.ParseDateRange(tt.checkIn, tt.checkOut)

			if tt.wantErr {
				assert.True(t, errors.Is(err, model.ErrInvalidDateRange))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateRange_StartsBefore(t *testing.T) {
	r := mustRange(t, "2025-03-01", "2025-03-05")

	assert.True(t, r.StartsBefore(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.StartsBefore(time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)))
	assert.False(t, r.StartsBefore(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange_String(t *testing.T) {
	assert.Equal(t, "[2025-03-01, 2025-03-05)", mustRange(t, "2025-03-01", "2025-03-05").String())
}

func TestReservation_Range(t *testing.T) {
	res := model.Reservation{
		CheckIn:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:   model.StatusConfirmed,
	}

	assert.Equal(t, mustRange(t, "2025-03-01", "2025-03-05"), res.Range())
	assert.True(t, res.Active())

	res.Status = model.StatusCancelled
	assert.False(t, res.Active())
}
