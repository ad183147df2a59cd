package availability_test

import (
	"context"
	"errors"
	otelMocks "hotelbook/infras/otel/mocks"
	"hotelbook/internal/domains/reservation/availability"
	"hotelbook/internal/domains/reservation/mocks"
	"hotelbook/internal/domains/reservation/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func stay(t *testing.T, checkIn, checkOut string) model.DateRange {
	t.Helper()

	r, err := model.ParseDateRange(checkIn, checkOut)
	require.NoError(t, err)

	return r
}

func reservation(t *testing.T, checkIn, checkOut, status string) model.Reservation {
	t.Helper()

	r := stay(t, checkIn, checkOut)

	return model.Reservation{
		ID:       checkIn + "/" + checkOut,
		RoomID:   "room-1",
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Status:   status,
	}
}

func TestConflicts(t *testing.T) {
	existing := []model.Reservation{
		reservation(t, "2025-03-01", "2025-03-05", model.StatusConfirmed),
		reservation(t, "2025-03-10", "2025-03-12", model.StatusCancelled),
	}

	tests := []struct {
		name      string
		candidate model.DateRange
		want      bool
	}{
		{name: "nested in confirmed", candidate: stay(t, "2025-03-02", "2025-03-04"), want: true},
		{name: "back to back with confirmed", candidate: stay(t, "2025-03-05", "2025-03-08"), want: false},
		{name: "over a cancelled stay", candidate: stay(t, "2025-03-10", "2025-03-12"), want: false},
		{name: "empty room", candidate: stay(t, "2025-04-01", "2025-04-02"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, availability.Conflicts(existing, tt.candidate))
		})
	}

	assert.False(t, availability.Conflicts(nil, stay(t, "2025-03-01", "2025-03-05")))
}

func TestChecker_IsAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockActiveLister(ctrl)
	checker := availability.New(store, otelMocks.NewOtel())

	tests := []struct {
		name      string
		candidate model.DateRange
		setupMock func()
		want      bool
		wantErr   bool
	}{
		{
			name:      "free",
			candidate: stay(t, "2025-03-05", "2025-03-08"),
			setupMock: func() {
				store.EXPECT().
					ListActiveByRoom(gomock.Any(), "room-1").
					Return([]model.Reservation{reservation(t, "2025-03-01", "2025-03-05", model.StatusConfirmed)}, nil)
			},
			want: true,
		},
		{
			name:      "taken",
			candidate: stay(t, "2025-03-01", "2025-03-05"),
			setupMock: func() {
				store.EXPECT().
					ListActiveByRoom(gomock.Any(), "room-1").
					Return([]model.Reservation{reservation(t, "2025-03-01", "2025-03-05", model.StatusConfirmed)}, nil)
			},
			want: false,
		},
		{
			name:      "store error",
			candidate: stay(t, "2025-03-01", "2025-03-05"),
			setupMock: func() {
				store.EXPECT().
					ListActiveByRoom(gomock.Any(), "room-1").
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got, err := checker.IsAvailable(context.Background(), "room-1", tt.candidate)

			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
