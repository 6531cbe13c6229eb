package clock

import "time"

// Clock computes the service's daily window in a fixed reference timezone.
// Every time-scoped query filters on the half-open range [start, end).
type Clock struct {
	loc *time.Location
}

func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc}
}

// Window returns the start of t's calendar day in the reference timezone
// and start+24h. An instant exactly at end belongs to the next window.
func (c Clock) Window(t time.Time) (time.Time, time.Time) {
	lt := t.In(c.loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, c.loc)
	return start, start.Add(24 * time.Hour)
}
