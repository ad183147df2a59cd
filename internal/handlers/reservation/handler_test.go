package reservation_test

import (
	"context"
	"hotelbook/infras/otel/mocks"
	reservationMocks "hotelbook/internal/domains/reservation/mocks"
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/internal/domains/reservation/model/dto"
	"hotelbook/internal/handlers/reservation"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testGuestID       = "guest-1"
	testReservationID = "8d2b7c1e-4a5f-4e3b-9c6d-2f1a0b9e8c7d"
)

func newRouter(t *testing.T) (http.Handler, *reservationMocks.MockReservationService) {
	t.Helper()

	svc := reservationMocks.NewMockReservationService(gomock.NewController(t))
	handler := reservation.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if guest := r.Header.Get("X-Test-Guest"); guest != "" {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, guest))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(router)

	return router, svc
}

func TestHandler_CreateReservation(t *testing.T) {
	body := `{"room_id":"3f0c8a5e-6f7d-4a41-9d39-1b6a9c0e2f11","check_in":"2030-03-01","check_out":"2030-03-05","guest_count":2}`

	tests := []struct {
		name      string
		body      string
		guest     string
		setupMock func(svc *reservationMocks.MockReservationService)
		wantCode  int
		wantKind  string
	}{
		{
			name:  "booked",
			body:  body,
			guest: testGuestID,
			setupMock: func(svc *reservationMocks.MockReservationService) {
				svc.EXPECT().
					Book(gomock.Any(), testGuestID, dto.CreateReservationRequest{
						RoomID:     "3f0c8a5e-6f7d-4a41-9d39-1b6a9c0e2f11",
						CheckIn:    "2030-03-01",
						CheckOut:   "2030-03-05",
						GuestCount: 2,
					}).
					Return(dto.ReservationResponse{ID: "res-1", Status: model.StatusConfirmed}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:  "room taken",
			body:  body,
			guest: testGuestID,
			setupMock: func(svc *reservationMocks.MockReservationService) {
				svc.EXPECT().
					Book(gomock.Any(), testGuestID, gomock.Any()).
					Return(dto.ReservationResponse{}, failure.Kinded(http.StatusConflict, model.KindRoomNotAvailable, "room is not available"))
			},
			wantCode: http.StatusConflict,
			wantKind: model.KindRoomNotAvailable,
		},
		{
			name:      "malformed date",
			body:      `{"room_id":"3f0c8a5e-6f7d-4a41-9d39-1b6a9c0e2f11","check_in":"01/03/2030","check_out":"2030-03-05","guest_count":2}`,
			guest:     testGuestID,
			setupMock: func(_ *reservationMocks.MockReservationService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "anonymous",
			body:      body,
			setupMock: func(_ *reservationMocks.MockReservationService) {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(tt.body))
			req.Header.Set("X-Test-Guest", tt.guest)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantKind != "" {
				assert.Contains(t, recorder.Body.String(), `"kind":"`+tt.wantKind+`"`)
			}
		})
	}
}

func TestHandler_GetMyReservations(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 2, Limit: 5}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error) {
			require.Len(t, filter.Filters, 2)

			guest, _ := filter.Filters[0].(gDto.Filter)
			assert.Equal(t, model.FieldGuestID, guest.Field)
			assert.Equal(t, testGuestID, guest.Value)

			status, _ := filter.Filters[1].(gDto.Filter)
			assert.Equal(t, model.StatusConfirmed, status.Value)

			return dto.GetReservationsResponse{TotalData: 1}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/reservations/mine?page=2&limit=5&status=confirmed", nil)
	req.Header.Set("X-Test-Guest", testGuestID)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_CancelReservation(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		Cancel(gomock.Any(), testReservationID).
		Return(dto.ReservationResponse{ID: testReservationID, Status: model.StatusCancelled}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/reservations/"+testReservationID+"/cancel", nil)
	req.Header.Set("X-Test-Guest", testGuestID)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"cancelled"`)
}

func TestHandler_MalformedIDs(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "get", method: http.MethodGet, path: "/reservations/not-a-uuid", wantCode: http.StatusNotFound, wantBody: "reservation not found"},
		{name: "cancel", method: http.MethodPatch, path: "/reservations/res-1/cancel", wantCode: http.StatusNotFound, wantBody: "reservation not found"},
		{name: "room filter", method: http.MethodGet, path: "/reservations/mine?room_id=101", wantCode: http.StatusBadRequest, wantBody: "room_id must be a valid id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("X-Test-Guest", testGuestID)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}
