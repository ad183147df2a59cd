package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/hotel/model"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"
)

type Hotel interface {
	Insert(ctx context.Context, model model.Hotel) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Hotel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Hotel, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Hotel]
}

func New(db *postgres.Connection, otel otel.Otel) Hotel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Hotel](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// SearchFilter narrows hotels by city and minimum rating. Empty values are ignored.
func SearchFilter(city string, minRating float64) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if city != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldCity, Value: city, Operator: gDto.FilterOperatorLike, Table: model.TableName})
	}

	if minRating > 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldRating, Value: minRating, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	return filter
}
