package util

import "time"

const dayLayout = "2006-01-02"

// DayKey formats the calendar date of t as seen in loc. A nil loc means time.Local.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(dayLayout)
}
