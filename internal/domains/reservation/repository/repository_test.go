package repository_test

import (
	"context"
	"hotelbook/config"
	"hotelbook/helper"
	otelMocks "hotelbook/infras/otel/mocks"
	"hotelbook/infras/postgres"
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/internal/domains/reservation/repository"
	gModel "hotelbook/shared/model"
	gRepo "hotelbook/shared/repository"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsPath = "../../../../migrations/postgres"

type catalog struct {
	guestID string
	hotelID string
	roomID  string
}

// openTestDB connects to TEST_DATABASE_URL and migrates it, or skips the test.
func openTestDB(t *testing.T) *postgres.Connection {
	t.Helper()

	databaseURL := os.Getenv("TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	require.NoError(t, helper.Migrate(databaseURL, migrationsPath, helper.ActionUp))

	db, err := sqlx.Connect("postgres", databaseURL)
	require.NoError(t, err)

	db.SetMaxOpenConns(32)

	t.Cleanup(func() { _ = db.Close() })

	return &postgres.Connection{Read: db, Write: db}
}

func seedCatalog(t *testing.T, db *postgres.Connection) catalog {
	t.Helper()

	c := catalog{guestID: uuid.NewString(), hotelID: uuid.NewString(), roomID: uuid.NewString()}
	ownerID := uuid.NewString()

	for _, id := range []string{c.guestID, ownerID} {
		_, err := db.Write.Exec(`INSERT INTO users (id, name, email, password, role) VALUES ($1, 'test', $2, 'x', 'customer')`, id, id+"@example.com")
		require.NoError(t, err)
	}

	_, err := db.Write.Exec(`INSERT INTO hotels (id, owner_id, name, city) VALUES ($1, $2, 'Test Hotel', 'Bandung')`, c.hotelID, ownerID)
	require.NoError(t, err)

	_, err = db.Write.Exec(`INSERT INTO rooms (id, hotel_id, room_number, room_type, price_per_night, max_occupancy) VALUES ($1, $2, '101', 'deluxe', 100, 2)`, c.roomID, c.hotelID)
	require.NoError(t, err)

	return c
}

func newRepository(db *postgres.Connection) repository.Reservation {
	cfg := &config.Config{}
	cfg.Booking.LockTimeoutMs = 5000

	return repository.New(db, cfg, otelMocks.NewOtel())
}

func candidate(t *testing.T, c catalog, checkIn, checkOut string) model.Reservation {
	t.Helper()

	stay, err := model.ParseDateRange(checkIn, checkOut)
	require.NoError(t, err)

	now := time.Now().UTC()

	return model.Reservation{
		ID:         uuid.NewString(),
		RoomID:     c.roomID,
		HotelID:    c.hotelID,
		GuestID:    c.guestID,
		CheckIn:    stay.CheckIn,
		CheckOut:   stay.CheckOut,
		GuestCount: 2,
		Status:     model.StatusConfirmed,
		TotalPrice: decimal.NewFromInt(100).Mul(decimal.NewFromInt(int64(stay.Nights()))),
		Metadata:   gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: c.guestID, ModifiedBy: c.guestID},
	}
}

func TestReservationRepository_Create(t *testing.T) {
	db := openTestDB(t)
	repo := newRepository(db)
	c := seedCatalog(t, db)
	ctx := context.Background()

	_, err := repo.Create(ctx, candidate(t, c, "2030-03-01", "2030-03-05"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, candidate(t, c, "2030-03-05", "2030-03-08"))
	require.NoError(t, err, "back-to-back stays must both be stored")

	_, err = repo.Create(ctx, candidate(t, c, "2030-03-02", "2030-03-04"))
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = repo.Create(ctx, candidate(t, c, "2030-03-01", "2030-03-05"))
	assert.ErrorIs(t, err, repository.ErrConflict)

	missing := candidate(t, c, "2030-04-01", "2030-04-02")
	missing.RoomID = uuid.NewString()

	_, err = repo.Create(ctx, missing)
	assert.ErrorIs(t, err, repository.ErrRoomNotFound)

	active, err := repo.ListActiveByRoom(ctx, c.roomID)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestReservationRepository_CancelledStayIsFree(t *testing.T) {
	db := openTestDB(t)
	repo := newRepository(db)
	c := seedCatalog(t, db)
	ctx := context.Background()

	first, err := repo.Create(ctx, candidate(t, c, "2030-05-01", "2030-05-03"))
	require.NoError(t, err)

	_, err = db.Write.Exec(`UPDATE reservations SET status = 'cancelled' WHERE id = $1`, first.ID)
	require.NoError(t, err)

	_, err = repo.Create(ctx, candidate(t, c, "2030-05-01", "2030-05-03"))
	require.NoError(t, err)

	active, err := repo.ListActiveByRoom(ctx, c.roomID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.NotEqual(t, first.ID, active[0].ID)
}

func TestReservationRepository_ExclusionConstraint(t *testing.T) {
	db := openTestDB(t)
	c := seedCatalog(t, db)

	insert := `INSERT INTO reservations (id, room_id, hotel_id, guest_id, check_in, check_out, guest_count, status, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, 1, 'confirmed', 100)`

	_, err := db.Write.Exec(insert, uuid.NewString(), c.roomID, c.hotelID, c.guestID, "2030-06-01", "2030-06-04")
	require.NoError(t, err)

	_, err = db.Write.Exec(insert, uuid.NewString(), c.roomID, c.hotelID, c.guestID, "2030-06-03", "2030-06-05")
	require.Error(t, err)
	assert.True(t, gRepo.IsExclusionViolation(err), "got %v", err)

	_, err = db.Write.Exec(insert, uuid.NewString(), c.roomID, c.hotelID, c.guestID, "2030-06-04", "2030-06-05")
	assert.NoError(t, err)
}

func TestReservationRepository_ConcurrentCreate(t *testing.T) {
	db := openTestDB(t)
	repo := newRepository(db)
	c := seedCatalog(t, db)

	const writers = 12

	candidates := make([]model.Reservation, writers)
	for i := range candidates {
		candidates[i] = candidate(t, c, "2030-07-10", "2030-07-14")
	}

	errs := make([]error, writers)
	start := make(chan struct{})

	var wg sync.WaitGroup

	for i := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			<-start

			_, errs[i] = repo.Create(context.Background(), candidates[i])
		}()
	}

	close(start)
	wg.Wait()

	won := 0

	for _, err := range errs {
		if err == nil {
			won++

			continue
		}

		assert.ErrorIs(t, err, repository.ErrConflict)
	}

	assert.Equal(t, 1, won)

	active, err := repo.ListActiveByRoom(context.Background(), c.roomID)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
