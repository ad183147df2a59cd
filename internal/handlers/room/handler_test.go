package room_test

import (
	"hotelbook/infras/otel/mocks"
	reservationMocks "hotelbook/internal/domains/reservation/mocks"
	reservationModel "hotelbook/internal/domains/reservation/model"
	reservationDto "hotelbook/internal/domains/reservation/model/dto"
	roomMocks "hotelbook/internal/domains/room/mocks"
	"hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/handlers/room"
	"hotelbook/shared/failure"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testRoomID = "3f0c8a5e-6f7d-4a41-9d39-1b6a9c0e2f11"

type services struct {
	rooms        *roomMocks.MockRoomService
	reservations *reservationMocks.MockReservationService
}

func newRouter(t *testing.T) (http.Handler, services) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := services{
		rooms:        roomMocks.NewMockRoomService(ctrl),
		reservations: reservationMocks.NewMockReservationService(ctrl),
	}

	handler := room.New(svc.rooms, svc.reservations, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestHandler_GetRoomByID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(svc services)
		wantCode  int
		wantBody  string
	}{
		{
			name: "found",
			id:   testRoomID,
			setupMock: func(svc services) {
				svc.rooms.EXPECT().Get(gomock.Any(), testRoomID).Return(dto.RoomResponse{ID: testRoomID, RoomNumber: "101"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"room_number":"101"`,
		},
		{
			name: "unknown",
			id:   testRoomID,
			setupMock: func(svc services) {
				svc.rooms.EXPECT().Get(gomock.Any(), testRoomID).Return(dto.RoomResponse{}, failure.NotFound("room not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: "room not found",
		},
		{
			name:      "malformed id",
			id:        "101",
			setupMock: func(_ services) {},
			wantCode:  http.StatusNotFound,
			wantBody:  "room not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/rooms/"+tt.id, nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_GetAvailability(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		setupMock func(svc services)
		wantCode  int
		wantBody  string
	}{
		{
			name:  "free",
			query: "?check_in=2030-03-01&check_out=2030-03-04",
			setupMock: func(svc services) {
				svc.reservations.EXPECT().
					IsAvailable(gomock.Any(), testRoomID, reservationDto.AvailabilityRequest{CheckIn: "2030-03-01", CheckOut: "2030-03-04"}).
					Return(reservationDto.AvailabilityResponse{RoomID: testRoomID, Nights: 3, Available: true}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"available":true`,
		},
		{
			name:      "missing check_out",
			query:     "?check_in=2030-03-01",
			setupMock: func(_ services) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "check_out is required",
		},
		{
			name:      "not a calendar date",
			query:     "?check_in=2030-02-30&check_out=2030-03-04",
			setupMock: func(_ services) {},
			wantCode:  http.StatusBadRequest,
			wantBody:  "check_in must be a date formatted as YYYY-MM-DD",
		},
		{
			name:  "reversed range",
			query: "?check_in=2030-03-04&check_out=2030-03-01",
			setupMock: func(svc services) {
				svc.reservations.EXPECT().
					IsAvailable(gomock.Any(), testRoomID, gomock.Any()).
					Return(reservationDto.AvailabilityResponse{}, failure.Kinded(http.StatusBadRequest, reservationModel.KindInvalidDateRange, "check-in must be before check-out"))
			},
			wantCode: http.StatusBadRequest,
			wantBody: `"kind":"INVALID_DATE_RANGE"`,
		},
		{
			name:  "unknown room",
			query: "?check_in=2030-03-01&check_out=2030-03-04",
			setupMock: func(svc services) {
				svc.reservations.EXPECT().
					IsAvailable(gomock.Any(), testRoomID, gomock.Any()).
					Return(reservationDto.AvailabilityResponse{}, failure.Kinded(http.StatusNotFound, reservationModel.KindRoomNotFound, "room not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: `"kind":"ROOM_NOT_FOUND"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/rooms/"+testRoomID+"/availability"+tt.query, nil))

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}
