// Package pricing computes what a stay costs.
package pricing

import (
	"errors"
	"hotelbook/internal/domains/reservation/model"

	"github.com/shopspring/decimal"
)

var ErrNegativeRate = errors.New("nightly rate must not be negative")

// Price charges the nightly rate once per night of r.
func Price(r model.DateRange, nightlyRate decimal.Decimal) (decimal.Decimal, error) {
	if nightlyRate.IsNegative() {
		return decimal.Zero, ErrNegativeRate
	}

	return nightlyRate.Mul(decimal.NewFromInt(int64(r.Nights()))), nil
}
