package timezone

import (
	"hotelbook/config"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

var appLocation = time.UTC

func init() {
	appLocation = load(config.Get().App.Timezone)
}

// load resolves an IANA zone name, falling back to UTC when it is empty or unknown.
func load(zone string) *time.Location {
	if zone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return time.UTC
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", zone).
			Str("fallback", defaultZone).
			Msg("Failed to load timezone. Use IANA names such as 'Europe/Lisbon' or 'Asia/Jakarta'")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func GetLocation() *time.Location {
	return appLocation
}

// Parse reads value as a wall clock time in the application timezone.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) // nolint:wrapcheck
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// Date returns the calendar date of t in the application timezone, as midnight UTC.
// Stay dates are compared in this form so a check-in keeps its day wherever the server runs.
func Date(t time.Time) time.Time {
	year, month, day := ToAppTime(t).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the application timezone, as midnight UTC.
func Today() time.Time {
	return Date(Now())
}
