package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Hotel=MockHotelService

import (
	"context"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/infras/s3"
	"hotelbook/internal/domains/hotel/model"
	"hotelbook/internal/domains/hotel/model/dto"
	"hotelbook/internal/domains/hotel/repository"
	"hotelbook/internal/domains/hotel/search"
	roomModel "hotelbook/internal/domains/room/model"
	roomRepo "hotelbook/internal/domains/room/repository"
	"hotelbook/shared"
	"hotelbook/shared/base64"
	"hotelbook/shared/cache"
	"hotelbook/shared/clock"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	"hotelbook/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheSearchHotel = "hotel:search"
)

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpg":  ".jpg",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Hotel interface {
	Create(ctx context.Context, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	Get(ctx context.Context, id string) (dto.HotelDetailResponse, error)
	Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
}

type serviceImpl struct {
	repo     repository.Hotel
	roomRepo roomRepo.Room
	s3       s3.S3
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	clock    clock.Clock
}

func New(repo repository.Hotel, roomRepo roomRepo.Room, s3 s3.S3, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock clock.Clock) Hotel {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		s3:       s3,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		clock:    clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, objectName, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return res, err
	}

	hotel := req.ToModel(user, imageURL, s.clock.Now())

	if err = s.repo.Insert(ctx, hotel); err != nil {
		log.Error().Err(err).Msg("failed to create hotel")

		if objectName != constant.Empty {
			if delErr := s.s3.DeleteFile(ctx, constant.Empty, model.EntityName, objectName); delErr != nil {
				log.Error().Err(delErr).Str("object", objectName).Msg("failed to remove orphaned hotel image")
			}
		}

		return res, fmt.Errorf("failed to create hotel: %w", err)
	}

	res.FromModel(hotel)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheSearchHotel)
	}()

	return res, nil
}

// uploadImage stores a data-url image and returns its public url and object name.
func (s *serviceImpl) uploadImage(ctx context.Context, image string) (url, objectName string, err error) {
	if image == constant.Empty {
		return constant.Empty, constant.Empty, nil
	}

	contentType, data, err := base64.Decode(image)
	if err != nil {
		return constant.Empty, constant.Empty, failure.BadRequest(err) // nolint:wrapcheck
	}

	objectName = uuid.NewString() + imageExtensions[contentType]

	url, err = s.s3.UploadFileBytes(ctx, constant.Empty, model.EntityName, objectName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hotel image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return res, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return res, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: roomModel.FieldRoomNumber, SortDir: gDto.SortDirAsc}

	rooms, err := s.roomRepo.GetAll(ctx, params, roomRepo.HotelFilter(hotel.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel rooms")

		return res, fmt.Errorf("failed to get hotel rooms: %w", err)
	}

	res.FromModel(hotel, rooms)

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}

// Search lists hotels by city, rating floor and the price band of their cheapest room.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRequest) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.MinPrice.IsNegative() || req.MaxPrice.IsNegative() {
		return res, failure.BadRequestFromString("price bounds must not be negative") // nolint:wrapcheck
	}

	if req.MaxPrice.IsPositive() && req.MinPrice.GreaterThan(req.MaxPrice) {
		return res, failure.BadRequestFromString("min_price must not exceed max_price") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearchHotel, req, nil)

	if cache.Hit(ctx, s.cache, cacheKey, &res) {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel search")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.FieldRating, SortDir: gDto.SortDirDesc}

	hotels, err := s.repo.GetAll(ctx, params, repository.SearchFilter(req.City, req.MinRating))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	hotelIDs := make([]string, len(hotels))
	for i, hotel := range hotels {
		hotelIDs[i] = hotel.ID
	}

	rooms, err := s.roomRepo.ListByHotels(ctx, hotelIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms of hotels")

		return res, fmt.Errorf("failed to get rooms of hotels: %w", err)
	}

	results := search.Filter(hotels, search.MinPriceByHotel(rooms), req.Criteria())
	scope.SetAttribute("results", len(results))

	res.FromResults(search.Paginate(results, req.Page, req.Limit), len(results), req.Limit)

	cache.SaveInBackground(ctx, s.cache, cacheKey, res, s.cfg.Cache.TTL)

	return res, nil
}
