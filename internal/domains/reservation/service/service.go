package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/reservation/availability"
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/internal/domains/reservation/model/dto"
	"hotelbook/internal/domains/reservation/pricing"
	"hotelbook/internal/domains/reservation/repository"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/clock"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	"hotelbook/shared/validator"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	msgAlreadyCancelled = "reservation is already cancelled"

	// CacheRoomAvailability prefixes cached availability answers of a room.
	CacheRoomAvailability = "room:availability"
)

type Reservation interface {
	Book(ctx context.Context, guestID string, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	IsAvailable(ctx context.Context, roomID string, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo     repository.Reservation
	roomRepo roomRepo.Room
	checker  availability.Checker
	kafka    kafka.Client
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
	clock    clock.Clock
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	checker availability.Checker,
	kafka kafka.Client,
	cache cache.RedisCache,
	cfg *config.Config,
	otel otel.Otel,
	clock clock.Clock,
) Reservation {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		checker:  checker,
		kafka:    kafka,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
		clock:    clock,
	}
}

// AvailabilityCacheKey is the prefix shared by every cached availability answer of roomID.
func AvailabilityCacheKey(roomID string) string {
	return shared.BuildCacheKey(CacheRoomAvailability, roomID)
}

// Book reserves a room for a guest. Either a priced, confirmed reservation is stored or nothing is.
func (s *serviceImpl) Book(ctx context.Context, guestID string, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"room.id":     req.RoomID,
		"guest.count": req.GuestCount,
	})

	stay, err := s.stay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	if req.GuestCount < 1 {
		return res, failure.BadRequestFromString("guest_count must be at least 1") // nolint:wrapcheck
	}

	room, err := s.room(ctx, req.RoomID)
	if err != nil {
		return res, err
	}

	if !room.Fits(req.GuestCount) {
		return res, failure.Kinded(http.StatusUnprocessableEntity, model.KindCapacityExceeded, // nolint:wrapcheck
			fmt.Sprintf("room holds at most %d guests", room.MaxOccupancy))
	}

	available, err := s.checker.IsAvailable(ctx, room.ID, stay)
	if err != nil {
		log.Error().Err(err).Str("roomID", room.ID).Msg("failed to check room availability")

		return res, storageUnavailable()
	}

	if !available {
		return res, roomNotAvailable(stay)
	}

	total, err := pricing.Price(stay, room.PricePerNight)
	if err != nil {
		log.Error().Err(err).Str("roomID", room.ID).Msg("failed to price reservation")

		return res, failure.InternalError(err) // nolint:wrapcheck
	}

	created, err := s.repo.Create(ctx, req.ToModel(guestID, room.HotelID, stay, total, s.clock.Now()))

	switch {
	case errors.Is(err, repository.ErrConflict):
		log.Info().Str("roomID", room.ID).Str("stay", stay.String()).Msg("reservation lost to a concurrent booking")

		return res, roomNotAvailable(stay)
	case errors.Is(err, repository.ErrRoomNotFound):
		return res, roomNotFound()
	case err != nil:
		return res, storageUnavailable()
	}

	res.FromModel(created)

	log.Info().Str("reservationID", created.ID).Str("roomID", room.ID).Str("stay", stay.String()).Msg("reservation confirmed")

	s.dropAvailability(ctx, created.RoomID)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, model.EventCreated, res)
		s.invalidate(c, created)
	}()

	return res, nil
}

func (s *serviceImpl) IsAvailable(ctx context.Context, roomID string, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay, err := s.stay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(AvailabilityCacheKey(roomID), req.CheckIn, req.CheckOut)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room availability")

		return res, nil
	}

	room, err := s.room(ctx, roomID)
	if err != nil {
		return res, err
	}

	available, err := s.checker.IsAvailable(ctx, room.ID, stay)
	if err != nil {
		log.Error().Err(err).Str("roomID", room.ID).Msg("failed to check room availability")

		return res, storageUnavailable()
	}

	res = dto.AvailabilityResponse{
		RoomID:    room.ID,
		CheckIn:   stay.CheckIn.Format(constant.CalendarDate),
		CheckOut:  stay.CheckOut.Format(constant.CalendarDate),
		Nights:    stay.Nights(),
		Available: available,
	}

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		if res.GuestID != user {
			return dto.ReservationResponse{}, failure.ResourceRestrictedError
		}

		return res, nil
	}

	reservation, err := s.owned(ctx, id, user)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

// Cancel moves a confirmed reservation of the calling guest to cancelled, freeing its dates.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	reservation, err := s.owned(ctx, id, user)
	if err != nil {
		return res, err
	}

	if !reservation.Active() {
		return res, failure.Conflict(msgAlreadyCancelled) // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	filter.Operator = gDto.FilterGroupOperatorAnd

	updatedFields := shared.TransformFields(dto.CancelReservationRequest{Status: model.StatusCancelled}, user)

	cancelled, err := s.repo.Update(ctx, updatedFields, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return res, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	// Zero rows means a concurrent cancel won between the read and the update.
	if cancelled == 0 {
		return res, failure.Conflict(msgAlreadyCancelled) // nolint:wrapcheck
	}

	reservation.Status = model.StatusCancelled
	modifiedAt, _ := updatedFields[constant.FieldModifiedAt].(time.Time)
	reservation.Touch(user, modifiedAt)

	res.FromModel(reservation)

	s.dropAvailability(ctx, reservation.RoomID)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publish(c, model.EventCancelled, res)
		s.invalidate(c, reservation)
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, params, filter)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

// stay parses a requested range and rejects ranges that start before today.
func (s *serviceImpl) stay(checkIn, checkOut string) (model.DateRange, error) {
	stay, err := model.ParseDateRange(checkIn, checkOut)
	if err != nil {
		return model.DateRange{}, failure.Kinded(http.StatusBadRequest, model.KindInvalidDateRange, err.Error()) // nolint:wrapcheck
	}

	if stay.StartsBefore(s.clock.Today()) {
		return model.DateRange{}, failure.Kinded(http.StatusBadRequest, model.KindInvalidDateRange, "check-in must not be in the past") // nolint:wrapcheck
	}

	return stay, nil
}

func (s *serviceImpl) room(ctx context.Context, roomID string) (roomModel.Room, error) {
	if !validator.IsUUID(roomID) {
		return roomModel.Room{}, roomNotFound()
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("failed to get room")

		return room, storageUnavailable()
	}

	if room.ID == constant.Empty {
		return room, roomNotFound()
	}

	return room, nil
}

// owned loads a reservation and checks that user is the guest who made it.
func (s *serviceImpl) owned(ctx context.Context, id, user string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.GuestID != user {
		return model.Reservation{}, failure.ResourceRestrictedError
	}

	return reservation, nil
}

func (s *serviceImpl) publish(ctx context.Context, event string, res dto.ReservationResponse) {
	msg := kafka.Message{Key: res.RoomID, Event: event, Value: res}

	if err := s.kafka.SendMessages(ctx, s.cfg.Booking.EventTopic, msg); err != nil {
		log.Error().Err(err).Str("event", event).Str("reservationID", res.ID).Msg("failed to publish reservation event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, reservation model.Reservation) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservation, reservation.ID)); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReservation)
}

// dropAvailability runs before Book and Cancel return, so the caller's next availability query
// sees the write. Other instances rely on the reservation event listener.
func (s *serviceImpl) dropAvailability(ctx context.Context, roomID string) {
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, AvailabilityCacheKey(roomID))
}

func roomNotFound() error {
	return failure.Kinded(http.StatusNotFound, model.KindRoomNotFound, "room not found") // nolint:wrapcheck
}

func roomNotAvailable(stay model.DateRange) error {
	return failure.Kinded(http.StatusConflict, model.KindRoomNotAvailable, // nolint:wrapcheck
		fmt.Sprintf("room is not available for %s", stay))
}

func storageUnavailable() error {
	return failure.Kinded(http.StatusServiceUnavailable, model.KindStorageUnavailable, "reservation storage is unavailable, try again") // nolint:wrapcheck
}
