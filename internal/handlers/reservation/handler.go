package reservation

import (
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/internal/domains/reservation/model/dto"
	"hotelbook/internal/domains/reservation/service"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"hotelbook/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/mine", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}/cancel", handler.CancelReservation)
	})
}

const msgReservationNotFound = "reservation not found"

// reservationID returns the {id} path parameter, or a 404 when it cannot name a reservation.
func reservationID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constant.RequestParamID)
	if !validator.IsUUID(id) {
		return constant.Empty, failure.NotFound(msgReservationNotFound) // nolint:wrapcheck
	}

	return id, nil
}

func guestFromContext(r *http.Request) (string, error) {
	guestID, ok := r.Context().Value(constant.ContextKeyUserID).(string)
	if !ok || guestID == constant.Empty {
		return constant.Empty, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	return guestID, nil
}

// CreateReservation books a room for the authenticated guest.
// @Summary Book a room
// @Description Reserve a room for a half-open date range [check_in, check_out). Overlapping requests for the same room are rejected with kind ROOM_NOT_AVAILABLE.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[dto.ReservationResponse] "Reservation confirmed"
// @Failure 400 {object} response.Error "INVALID_DATE_RANGE or invalid body"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error "ROOM_NOT_FOUND"
// @Failure 409 {object} response.Error "ROOM_NOT_AVAILABLE"
// @Failure 422 {object} response.Error "CAPACITY_EXCEEDED"
// @Failure 503 {object} response.Error "STORAGE_UNAVAILABLE"
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	guestID, err := guestFromContext(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Book(ctx, guestID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("kind", failure.GetKind(err)).Msg("failed to book room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reservation " + reservation.ID + " confirmed for guest " + guestID)

	response.WithJSON(writer, http.StatusCreated, reservation)
}

// GetMyReservations lists the reservations of the authenticated guest.
// @Summary Get my reservations
// @Description Retrieve the authenticated guest's reservations with optional filtering and pagination.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (confirmed, cancelled)"
// @Param room_id query string false "Filter by room ID"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	guestID, err := guestFromContext(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGuestID,
				Operator: gDto.FilterOperatorEq,
				Value:    guestID,
				Table:    model.TableName,
			},
		},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		if err := validator.ValidateVar(status, "oneof=confirmed cancelled"); err != nil {
			response.WithError(w, err)

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if roomID := r.URL.Query().Get(model.FieldRoomID); roomID != "" {
		if !validator.IsUUID(roomID) {
			response.WithError(w, failure.BadRequestFromString(model.FieldRoomID+" must be a valid id"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guest reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully for guest " + guestID)

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves one of the authenticated guest's reservations.
// @Summary Get a reservation by ID
// @Description Retrieve a reservation owned by the authenticated guest.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id, err := reservationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation cancels one of the authenticated guest's reservations.
// @Summary Cancel a reservation
// @Description Soft-cancel a confirmed reservation; its dates become bookable again.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Cancelled reservation"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/cancel [patch]
// @Security BearerAuth
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id, err := reservationID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation cancelled successfully by user " + user)

	response.WithJSON(w, http.StatusOK, reservation)
}
