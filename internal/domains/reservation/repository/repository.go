package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hotelbook/config"
	"hotelbook/infras/otel"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/reservation/model"
	roomModel "hotelbook/internal/domains/room/model"
	"hotelbook/shared/constant"
	gDto "hotelbook/shared/dto"
	gRepo "hotelbook/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	// ErrConflict means a confirmed reservation already holds part of the requested stay.
	ErrConflict = errors.New("reservation overlaps an existing reservation")
	// ErrRoomNotFound means the room row was gone when the booking tried to lock it.
	ErrRoomNotFound = errors.New("room not found")
)

var queryLockRoom = fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR NO KEY UPDATE", roomModel.FieldID, roomModel.TableName, roomModel.FieldID)

type Reservation interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	ListActiveByRoom(ctx context.Context, roomID string) ([]model.Reservation, error)
	Create(ctx context.Context, candidate model.Reservation) (model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	cfg  *config.Config
	otel otel.Otel
}

func New(db *postgres.Connection, cfg *config.Config, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		cfg:        cfg,
		otel:       otel,
	}
}

// ActiveFilter matches the confirmed reservations of a room.
func ActiveFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusConfirmed, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// OverlapFilter matches confirmed reservations of a room whose stay intersects stay.
func OverlapFilter(roomID string, stay model.DateRange) gDto.FilterGroup {
	active := ActiveFilter(roomID)
	active.Filters = append(active.Filters,
		gDto.Filter{Field: model.FieldCheckIn, ArgName: "stay_check_out", Value: stay.CheckOut.Format(constant.CalendarDate), Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{Field: model.FieldCheckOut, ArgName: "stay_check_in", Value: stay.CheckIn.Format(constant.CalendarDate), Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)

	return active
}

func (r *repositoryImpl) ListActiveByRoom(ctx context.Context, roomID string) ([]model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.ListActiveByRoom")
	defer scope.End()

	scope.SetAttribute("room.id", roomID)

	reservations, err := r.GetAll(ctx, gDto.QueryParams{}, ActiveFilter(roomID))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	return reservations, nil
}

// Create re-checks for overlap and inserts in one transaction that holds the room row lock,
// so concurrent writers for the same room are serialised. The exclusion constraint on the
// table rejects any overlap that slips past the lock.
func (r *repositoryImpl) Create(ctx context.Context, candidate model.Reservation) (res model.Reservation, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	stay := candidate.Range()

	scope.SetAttributes(map[string]any{
		"room.id":  candidate.RoomID,
		"check_in": stay.CheckIn,
		"nights":   stay.Nights(),
	})

	err = r.db.WithTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(tx *sqlx.Tx) error {
		if err := r.lockRoom(ctx, tx, candidate.RoomID); err != nil {
			return err
		}

		overlap, err := r.ExistTx(ctx, tx, OverlapFilter(candidate.RoomID, stay))
		if err != nil {
			return fmt.Errorf("failed to re-check overlap: %w", err)
		}

		if overlap {
			return ErrConflict
		}

		if err := r.InsertTx(ctx, tx, candidate); err != nil {
			if gRepo.IsExclusionViolation(err) {
				return ErrConflict
			}

			if gRepo.IsForeignKeyViolation(err) {
				return ErrRoomNotFound
			}

			return err
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrRoomNotFound) {
			log.Error().Err(err).Str("roomID", candidate.RoomID).Bool("contention", gRepo.IsContention(err)).Msg("failed to create reservation")
		}

		return model.Reservation{}, err
	}

	return candidate, nil
}

func (r *repositoryImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, roomID string) error {
	if timeout := r.cfg.Booking.LockTimeoutMs; timeout > 0 {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout)); err != nil {
			return fmt.Errorf("failed to set lock timeout: %w", err)
		}
	}

	var lockedID string

	err := tx.GetContext(ctx, &lockedID, queryLockRoom, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}

	if err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}

	return nil
}
