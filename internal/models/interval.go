package models

import "time"

// DateInterval is an inclusive time interval. A nil bound means the interval
// is unbounded on that side.
type DateInterval struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func Interval(start, end *time.Time) DateInterval {
	return DateInterval{Start: start, End: end}
}

// Contains reports whether at falls inside the interval, both ends inclusive.
func (i DateInterval) Contains(at time.Time) bool {
	if i.Start != nil && at.Before(*i.Start) {
		return false
	}
	if i.End != nil && at.After(*i.End) {
		return false
	}
	return true
}

// TimePtr is a convenience for building optional interval bounds.
func TimePtr(t time.Time) *time.Time {
	return &t
}
