package cache_test

import (
	"context"
	"errors"
	"hotelbook/shared/cache"
	"hotelbook/shared/cache/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHit(t *testing.T) {
	tests := []struct {
		name   string
		getErr error
		want   bool
	}{
		{name: "hit", want: true},
		{name: "miss", getErr: cache.ErrMiss},
		{name: "redis down", getErr: errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisCache := mocks.NewMockRedisCache(gomock.NewController(t))

			redisCache.EXPECT().
				Get(gomock.Any(), "room:get:room-1", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, value any) error {
					if tt.getErr == nil {
						*(value.(*string)) = "cached"
					}

					return tt.getErr
				})

			var value string

			assert.Equal(t, tt.want, cache.Hit(context.Background(), redisCache, "room:get:room-1", &value))

			if tt.want {
				assert.Equal(t, "cached", value)
			}
		})
	}
}

func TestSaveInBackground(t *testing.T) {
	redisCache := mocks.NewMockRedisCache(gomock.NewController(t))
	saved := make(chan error, 1)

	redisCache.EXPECT().
		Save(gomock.Any(), "room:get:room-1", "cached", 60).
		DoAndReturn(func(ctx context.Context, _ string, _ any, _ int) error {
			saved <- ctx.Err()

			return errors.New("redis down")
		})

	ctx, cancel := context.WithCancel(context.Background())
	cache.SaveInBackground(ctx, redisCache, "room:get:room-1", "cached", 60)
	cancel()

	select {
	case err := <-saved:
		assert.NoError(t, err, "the save must not inherit the caller's cancellation")
	case <-time.After(time.Second):
		t.Fatal("value was not saved")
	}
}
