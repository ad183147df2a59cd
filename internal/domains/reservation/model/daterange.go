package model

import (
	"errors"
	"fmt"
	"hotelbook/shared/constant"
	"time"
)

var ErrInvalidDateRange = errors.New("check-in must be before check-out")

// DateRange is a half-open stay [CheckIn, CheckOut) of calendar dates held at midnight UTC.
// Ranges that only touch, one ending the day the other starts, do not overlap.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// DateOf drops the clock part of t, keeping its calendar date as seen in t's own location.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	r := DateRange{CheckIn: DateOf(checkIn), CheckOut: DateOf(checkOut)}

	if !r.CheckIn.Before(r.CheckOut) {
		return DateRange{}, ErrInvalidDateRange
	}

	return r, nil
}

// ParseDateRange reads two YYYY-MM-DD dates.
func ParseDateRange(checkIn, checkOut string) (DateRange, error) {
	in, err := time.Parse(constant.CalendarDate, checkIn)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: check_in %q is not a YYYY-MM-DD date", ErrInvalidDateRange, checkIn)
	}

	out, err := time.Parse(constant.CalendarDate, checkOut)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: check_out %q is not a YYYY-MM-DD date", ErrInvalidDateRange, checkOut)
	}

	return NewDateRange(in, out)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights counts whole days between the dates. time.Duration caps near 292 years, so it is not used.
func (r DateRange) Nights() int {
	return int((r.CheckOut.Unix() - r.CheckIn.Unix()) / constant.SecondsInOneDay)
}

// StartsBefore reports whether check-in falls on a date earlier than day.
func (r DateRange) StartsBefore(day time.Time) bool {
	return r.CheckIn.Before(DateOf(day))
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.CheckIn.Format(constant.CalendarDate), r.CheckOut.Format(constant.CalendarDate))
}
