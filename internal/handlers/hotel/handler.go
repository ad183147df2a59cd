package hotel

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/service"
	roomDto "hotelbook/internal/domains/room/model/dto"
	roomService "hotelbook/internal/domains/room/service"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// hotelID returns the {id} path parameter, or a 404 when it cannot name a hotel.
func hotelID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constant.RequestParamID)
	if !validator.IsUUID(id) {
		return constant.Empty, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	return id, nil
}

type Handler struct {
	service service.Hotel
	rooms   roomService.Room
	otel    otel.Otel
}

func New(service service.Hotel, rooms roomService.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		rooms:   rooms,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateHotel)
		routerGroup.Get("/", handler.SearchHotels)
		routerGroup.Get("/{id}", handler.GetHotelByID)
		routerGroup.Get("/{id}/rooms", handler.GetHotelRooms)
		routerGroup.Post("/{id}/rooms", handler.CreateRoom)
	})
}

// CreateHotel registers a hotel owned by the authenticated owner.
// @Summary Create a new hotel
// @Description Create a hotel. The optional image is a base64 data url (png, jpg, jpeg, webp; max 2MB) stored in object storage.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param request body dto.CreateHotelRequest true "Create Hotel Request"
// @Success 201 {object} response.Data[dto.HotelResponse] "Hotel created"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [post]
// @Security BearerAuth
func (handler *Handler) CreateHotel(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHotel")
	defer scope.End()

	req := dto.CreateHotelRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	hotel, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create hotel")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Hotel created successfully by owner " + hotel.OwnerID)

	response.WithJSON(writer, http.StatusCreated, hotel)
}

// SearchHotels searches the hotel catalog.
// @Summary Search hotels
// @Description Search hotels by city, minimum rating and the nightly price band of their cheapest room, best rated first.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param city query string false "City (partial match)"
// @Param min_price query string false "Lowest acceptable cheapest-room price"
// @Param max_price query string false "Highest acceptable cheapest-room price"
// @Param min_rating query number false "Minimum rating (0-5)"
// @Success 200 {object} response.Data[dto.SearchResponse] "Matching hotels"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchHotels")
	defer scope.End()

	req := dto.SearchRequest{}
	req.FromRequest(r)

	hotels, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search hotels")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotels searched successfully")

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetHotelByID retrieves a hotel with its rooms.
// @Summary Get a hotel by ID
// @Description Retrieve a hotel and its rooms ordered by room number.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelDetailResponse] "Hotel details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [get]
func (handler *Handler) GetHotelByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelByID")
	defer scope.End()

	id, err := hotelID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	hotel, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Hotel retrieved successfully")

	response.WithJSON(w, http.StatusOK, hotel)
}

// GetHotelRooms lists the rooms of a hotel.
// @Summary Get hotel rooms
// @Description Retrieve the rooms of a hotel with pagination.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[roomDto.GetRoomsResponse] "List of rooms"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [get]
func (handler *Handler) GetHotelRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotelRooms")
	defer scope.End()

	id, err := hotelID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	rooms, err := handler.rooms.GetByHotel(ctx, id, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// CreateRoom adds a room to a hotel owned by the authenticated owner.
// @Summary Create a room
// @Description Add a room to the hotel. Only the hotel's owner may add rooms; room numbers are unique per hotel.
// @Tags Hotel
// @Accept json
// @Produce json
// @Param id path string true "Hotel ID"
// @Param request body roomDto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[roomDto.RoomResponse] "Room created"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id}/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	id, err := hotelID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := roomDto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	room, err := handler.rooms.Create(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room " + room.RoomNumber + " created in hotel " + id)

	response.WithJSON(writer, http.StatusCreated, room)
}
