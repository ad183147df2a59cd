package clock_test

import (
	"hotelbook/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedClock(t *testing.T) {
	instant := time.Date(2030, 6, 1, 15, 30, 0, 0, time.UTC)
	clk := clock.NewFixed(instant)

	assert.Equal(t, instant, clk.Now())
	assert.Equal(t, instant, clk.Now())
	assert.Equal(t, 0, clk.Today().Hour())
	assert.Equal(t, time.UTC, clk.Today().Location())
}

func TestSystemClock(t *testing.T) {
	clk := clock.New()

	before := time.Now()
	now := clk.Now()

	assert.False(t, now.Before(before.Add(-time.Second)))
	assert.True(t, clk.Today().Equal(clk.Today().Truncate(24*time.Hour)))
}
