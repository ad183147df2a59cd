package hotel_test

import (
	"context"
	"hotelbook/infras/otel/mocks"
	hotelMocks "hotelbook/internal/domains/hotel/mocks"
	"hotelbook/internal/domains/hotel/model/dto"
	roomMocks "hotelbook/internal/domains/room/mocks"
	roomDto "hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/handlers/hotel"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const testHotelID = "b7e4c2a1-9f3d-4c8e-a6b5-0d1e2f3a4b5c"

type services struct {
	hotels *hotelMocks.MockHotelService
	rooms  *roomMocks.MockRoomService
}

func newRouter(t *testing.T) (http.Handler, services) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := services{
		hotels: hotelMocks.NewMockHotelService(ctrl),
		rooms:  roomMocks.NewMockRoomService(ctrl),
	}

	handler := hotel.New(svc.hotels, svc.rooms, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestHandler_SearchHotels(t *testing.T) {
	router, svc := newRouter(t)

	svc.hotels.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.SearchRequest) (dto.SearchResponse, error) {
			assert.Equal(t, "Bandung", req.City)
			assert.True(t, decimal.NewFromInt(50).Equal(req.MinPrice))
			assert.True(t, decimal.NewFromInt(150).Equal(req.MaxPrice))
			assert.InEpsilon(t, 4.0, req.MinRating, 0.0001)
			assert.Equal(t, 2, req.Page)
			assert.Equal(t, 5, req.Limit)

			return dto.SearchResponse{
				Hotels:    []dto.SearchItem{{HotelResponse: dto.HotelResponse{ID: testHotelID, Name: "Grand Braga"}}},
				TotalData: 6,
				TotalPage: 2,
			}, nil
		})

	recorder := serve(router, http.MethodGet, "/hotels?city=%20Bandung%20&min_price=50&max_price=150&min_rating=4&page=2&limit=5", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"name":"Grand Braga"`)
	assert.Contains(t, recorder.Body.String(), `"total_page":2`)
}

func TestHandler_SearchHotels_Defaults(t *testing.T) {
	router, svc := newRouter(t)

	svc.hotels.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.SearchRequest) (dto.SearchResponse, error) {
			assert.Empty(t, req.City)
			assert.True(t, req.MinPrice.IsZero())
			assert.Equal(t, gDto.QueryParams{Page: 1, Limit: 10}, req.QueryParams)

			return dto.SearchResponse{Hotels: []dto.SearchItem{}}, nil
		})

	recorder := serve(router, http.MethodGet, "/hotels?min_price=cheap", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetHotelByID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(svc services)
		wantCode  int
		wantBody  string
	}{
		{
			name: "found",
			id:   testHotelID,
			setupMock: func(svc services) {
				svc.hotels.EXPECT().Get(gomock.Any(), testHotelID).
					Return(dto.HotelDetailResponse{HotelResponse: dto.HotelResponse{ID: testHotelID}, Rooms: []roomDto.RoomResponse{{RoomNumber: "101"}}}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"room_number":"101"`,
		},
		{
			name: "unknown",
			id:   testHotelID,
			setupMock: func(svc services) {
				svc.hotels.EXPECT().Get(gomock.Any(), testHotelID).Return(dto.HotelDetailResponse{}, failure.NotFound("hotel not found"))
			},
			wantCode: http.StatusNotFound,
			wantBody: "hotel not found",
		},
		{
			name:      "malformed id",
			id:        "grand-braga",
			setupMock: func(_ services) {},
			wantCode:  http.StatusNotFound,
			wantBody:  "hotel not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodGet, "/hotels/"+tt.id, "")

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_GetHotelRooms(t *testing.T) {
	t.Run("paged", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.rooms.EXPECT().
			GetByHotel(gomock.Any(), testHotelID, gDto.QueryParams{Page: 1, Limit: 20}).
			Return(roomDto.GetRoomsResponse{Rooms: []roomDto.RoomResponse{{RoomNumber: "101"}}, TotalData: 1, TotalPage: 1}, nil)

		recorder := serve(router, http.MethodGet, "/hotels/"+testHotelID+"/rooms?limit=20", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"total_data":1`)
	})

	t.Run("malformed id", func(t *testing.T) {
		router, _ := newRouter(t)

		recorder := serve(router, http.MethodGet, "/hotels/42/rooms", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_CreateRoom(t *testing.T) {
	body := `{"room_number":"101","room_type":"deluxe","price_per_night":"100.00","max_occupancy":2}`

	tests := []struct {
		name      string
		id        string
		body      string
		setupMock func(svc services)
		wantCode  int
	}{
		{
			name: "created",
			id:   testHotelID,
			body: body,
			setupMock: func(svc services) {
				svc.rooms.EXPECT().
					Create(gomock.Any(), testHotelID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, req roomDto.CreateRoomRequest) (roomDto.RoomResponse, error) {
						assert.Equal(t, "101", req.RoomNumber)
						assert.True(t, decimal.RequireFromString("100").Equal(req.PricePerNight))

						return roomDto.RoomResponse{HotelID: testHotelID, RoomNumber: "101"}, nil
					})
			},
			wantCode: http.StatusCreated,
		},
		{
			name: "duplicate room number",
			id:   testHotelID,
			body: body,
			setupMock: func(svc services) {
				svc.rooms.EXPECT().Create(gomock.Any(), testHotelID, gomock.Any()).
					Return(roomDto.RoomResponse{}, failure.Conflict("room number already exists in this hotel"))
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "no occupancy",
			id:        testHotelID,
			body:      `{"room_number":"101","room_type":"deluxe","price_per_night":"100.00"}`,
			setupMock: func(_ services) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed hotel id",
			id:        "hotel-1",
			body:      body,
			setupMock: func(_ services) {},
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/hotels/"+tt.id+"/rooms", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}
