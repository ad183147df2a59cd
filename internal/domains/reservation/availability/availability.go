// Package availability answers whether a room is free for a stay. The answer is advisory:
// only the store's atomic create decides whether a reservation is actually taken.
package availability

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=../mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/shared/constant"
)

type ActiveLister interface {
	ListActiveByRoom(ctx context.Context, roomID string) ([]model.Reservation, error)
}

type Checker interface {
	IsAvailable(ctx context.Context, roomID string, candidate model.DateRange) (bool, error)
}

type checkerImpl struct {
	store ActiveLister
	otel  otel.Otel
}

func New(store ActiveLister, otel otel.Otel) Checker {
	return &checkerImpl{
		store: store,
		otel:  otel,
	}
}

func (c *checkerImpl) IsAvailable(ctx context.Context, roomID string, candidate model.DateRange) (available bool, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.IsAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	active, err := c.store.ListActiveByRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("failed to list active reservations: %w", err)
	}

	available = !Conflicts(active, candidate)
	scope.SetAttribute("available", available)

	return available, nil
}

// Conflicts reports whether any active reservation overlaps candidate.
func Conflicts(reservations []model.Reservation, candidate model.DateRange) bool {
	for _, existing := range reservations {
		if existing.Active() && existing.Range().Overlaps(candidate) {
			return true
		}
	}

	return false
}
