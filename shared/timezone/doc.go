// Package timezone pins the application to the zone named by APP_TIMEZONE.
//
// Audit timestamps are rendered with Format, while stay dates go through Date and Today,
// which return midnight UTC of the local calendar day:
//
//	today := timezone.Today()
//	checkIn, err := time.Parse(constant.CalendarDate, "2030-01-10")
//	if checkIn.Before(today) { ... }
//
// An empty or unknown zone falls back to UTC.
package timezone
