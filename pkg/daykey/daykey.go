// Package daykey maps instants to challenge days.
//
// A challenge day starts at 02:00 Europe/Madrid civil time, so anything
// between midnight and 01:59:59 local time still belongs to the previous
// calendar date.
package daykey

import (
	"time"
	_ "time/tzdata"
)

const (
	RolloverHour = 2
	Timezone     = "Europe/Madrid"

	layout = "2006-01-02"
)

var location = mustLoad(Timezone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Location returns the civil timezone challenge days are computed in.
func Location() *time.Location {
	return location
}

// Today returns the key of the challenge day now belongs to.
func Today(now time.Time) string {
	return ForIn(now, location)
}

// For returns the key of the challenge day t belongs to.
func For(t time.Time) string {
	return ForIn(t, location)
}

func ForIn(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	y, m, d := local.Date()

	// Work on the civil date at noon so AddDate never lands in a DST gap.
	date := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	if local.Hour() < RolloverHour {
		date = date.AddDate(0, 0, -1)
	}

	return date.Format(layout)
}

// Before reports whether day key a is strictly earlier than b.
// Keys are zero padded ISO dates, so string order is calendar order.
func Before(a, b string) bool {
	return a < b
}
