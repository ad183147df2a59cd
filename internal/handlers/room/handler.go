package room

import (
	"hotelbook/infras/otel"
	reservationDto "hotelbook/internal/domains/reservation/model/dto"
	reservationService "hotelbook/internal/domains/reservation/service"
	"hotelbook/internal/domains/room/service"
	"hotelbook/shared/constant"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCheckIn  = "check_in"
	queryCheckOut = "check_out"
)

type Handler struct {
	service      service.Room
	reservations reservationService.Reservation
	otel         otel.Otel
}

func New(service service.Room, reservations reservationService.Reservation, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		reservations: reservations,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/{id}", handler.GetRoomByID)
		routerGroup.Get("/{id}/availability", handler.GetAvailability)
	})
}

// GetRoomByID retrieves a room by its ID.
// @Summary Get a room by ID
// @Description Retrieve a room's catalog entry.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	if !validator.IsUUID(id) {
		response.WithError(w, failure.NotFound("room not found"))

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room retrieved successfully")

	response.WithJSON(w, http.StatusOK, room)
}

// GetAvailability reports whether a room is free for a date range.
// @Summary Check room availability
// @Description Report whether the room has no confirmed reservation overlapping [check_in, check_out).
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[reservationDto.AvailabilityResponse] "Availability"
// @Failure 400 {object} response.Error "INVALID_DATE_RANGE"
// @Failure 404 {object} response.Error "ROOM_NOT_FOUND"
// @Failure 503 {object} response.Error "STORAGE_UNAVAILABLE"
// @Router /v1/rooms/{id}/availability [get]
func (handler *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := reservationDto.AvailabilityRequest{
		CheckIn:  r.URL.Query().Get(queryCheckIn),
		CheckOut: r.URL.Query().Get(queryCheckOut),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate availability query")

		response.WithError(w, err)

		return
	}

	availability, err := handler.reservations.IsAvailable(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check room availability")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("available", availability.Available)

	response.WithJSON(w, http.StatusOK, availability)
}
