package domain

import "time"

// TimeSlot represents a candidate booking interval derived from a venue's
// operating hours. Slots are value objects computed on demand, never persisted.
type TimeSlot struct {
	VenueID   int64
	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the slot length
func (s TimeSlot) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Overlaps reports whether the slot overlaps [start, end) under
// half-open interval semantics
func (s TimeSlot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && start.Before(s.EndTime)
}

// Matches returns true if the slot covers exactly the interval [start, end)
func (s TimeSlot) Matches(start, end time.Time) bool {
	return s.StartTime.Equal(start) && s.EndTime.Equal(end)
}
