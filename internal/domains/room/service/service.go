package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	hotelModel "hotelbook/internal/domains/hotel/model"
	hotelRepo "hotelbook/internal/domains/hotel/repository"
	"hotelbook/internal/domains/room/model"
	"hotelbook/internal/domains/room/model/dto"
	"hotelbook/internal/domains/room/repository"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/clock"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"
	gRepo "hotelbook/shared/repository"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom      = "room:get"
	cacheGetHotelRoom = "room:hotel"
	cacheGetHotel     = "hotel:get"
	cacheSearchHotel  = "hotel:search"
)

type Room interface {
	Create(ctx context.Context, hotelID string, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetByHotel(ctx context.Context, hotelID string, params gDto.QueryParams) (dto.GetRoomsResponse, error)
}

type serviceImpl struct {
	repo      repository.Room
	hotelRepo hotelRepo.Hotel
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	clock     clock.Clock
}

func New(repo repository.Room, hotelRepo hotelRepo.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock clock.Clock) Room {
	return &serviceImpl{
		repo:      repo,
		hotelRepo: hotelRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		clock:     clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, hotelID string, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.PricePerNight.IsNegative() {
		return res, failure.BadRequestFromString("price_per_night must not be negative") // nolint:wrapcheck
	}

	if req.MaxOccupancy < 1 {
		return res, failure.BadRequestFromString("max_occupancy must be at least 1") // nolint:wrapcheck
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	if !hotel.OwnedBy(user) {
		return res, failure.Forbidden("only the hotel owner can add rooms") // nolint:wrapcheck
	}

	room := req.ToModel(hotel.ID, user, s.clock.Now())

	if err = s.repo.Insert(ctx, room); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(fmt.Sprintf("room %s already exists in this hotel", req.RoomNumber)) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetHotelRoom, hotel.ID))
		shared.InvalidateCaches(c, s.cache, cacheSearchHotel)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, hotel.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete hotel from cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

func (s *serviceImpl) GetByHotel(ctx context.Context, hotelID string, params gDto.QueryParams) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := repository.HotelFilter(hotelID)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetHotelRoom, hotelID), params, filter)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	rooms, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(rooms, total, params.Limit)

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}
