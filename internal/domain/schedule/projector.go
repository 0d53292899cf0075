// Package schedule computes recurring rent due dates and classifies tenants
// into reminder buckets. It is pure calendar arithmetic: no I/O, no state.
package schedule

import (
	"errors"
	"time"
)

// LeaseDateLayout is the wire format of lease start dates as stored in the
// tenant table.
const LeaseDateLayout = "2006-01-02"

// ErrInvalidLeaseDate signals a missing or malformed lease start date.
// Callers skip the tenant rather than aborting the batch.
var ErrInvalidLeaseDate = errors.New("invalid lease start date")

// ParseLeaseDate parses a raw lease start date string. The result is
// normalized to midnight UTC.
func ParseLeaseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidLeaseDate
	}
	t, err := time.Parse(LeaseDateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidLeaseDate
	}
	return t, nil
}

// Projection is the result of projecting a lease's due day forward from an
// as-of date. NextDueDate is never before the as-of date; DaysLeft is never
// negative. PrevDueDate is the previous cycle's due date, or the zero value
// when that cycle would predate the lease start.
type Projection struct {
	NextDueDate time.Time
	PrevDueDate time.Time
	DaysLeft    int
}

// Project computes the next recurring due date for a lease that began on
// start, as seen from asOf. The due day is start's day-of-month, clamped to
// the last valid day of the target month (a due day of 31 falls on Feb 28/29,
// never overflowing into March). Time-of-day components of both arguments are
// ignored.
func Project(start, asOf time.Time) Projection {
	start = dateOnly(start)
	asOf = dateOnly(asOf)

	// A lease that has not begun yet has its first due date on the start
	// date itself, and no previous cycle.
	if asOf.Before(start) {
		return Projection{
			NextDueDate: start,
			DaysLeft:    daysBetween(asOf, start),
		}
	}

	dueDay := start.Day()
	next := clampedDate(asOf.Year(), asOf.Month(), dueDay)
	if next.Before(asOf) {
		next = clampedDate(asOf.Year(), asOf.Month()+1, dueDay)
	}

	prev := clampedDate(next.Year(), next.Month()-1, dueDay)
	if prev.Before(start) {
		prev = time.Time{}
	}

	return Projection{
		NextDueDate: next,
		PrevDueDate: prev,
		DaysLeft:    daysBetween(asOf, next),
	}
}

// clampedDate builds the date year/month/day with day reduced to the month's
// last valid day when it is out of range. month may be out of [1,12]; the
// year wraps accordingly.
func clampedDate(year int, month time.Month, day int) time.Time {
	// Day 0 of the following month is the last day of this one.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
