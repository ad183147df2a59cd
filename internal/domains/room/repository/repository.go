package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/room/model"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	ListByHotels(ctx context.Context, hotelIDs []string) ([]model.Room, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HotelFilter matches the rooms of one hotel.
func HotelFilter(hotelID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// ListByHotels returns every room of the given hotels in one query.
func (r *repositoryImpl) ListByHotels(ctx context.Context, hotelIDs []string) ([]model.Room, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ListByHotels")
	defer scope.End()

	scope.SetAttribute("hotel.count", len(hotelIDs))

	if len(hotelIDs) == 0 {
		return []model.Room{}, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldHotelID, Value: hotelIDs, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}

	rooms, err := r.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list rooms by hotels: %w", err)
	}

	return rooms, nil
}
