package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Overlaps reports whether half-open intervals [s1, e1) and [s2, e2) intersect
// Touching intervals (e1 == s2) do not overlap
//
// Examples:
// - 09:00-17:00 and 16:00-18:00 → overlap (16:00-17:00)
// - 09:00-17:00 and 17:00-18:00 → no overlap (touching)
func Overlaps(s1, e1, s2, e2 types.TimeOfDay) bool {
	return s1.IsBefore(e2) && s2.IsBefore(e1)
}

// Contains reports whether query [qs, qe) lies entirely inside slot [ss, se)
// A query covered only by the union of two adjacent slots is not contained in either
func Contains(ss, se, qs, qe types.TimeOfDay) bool {
	return !qs.IsBefore(ss) && !qe.IsAfter(se)
}

// ProjectRange reduces an absolute range to (day of week, start, end) in loc
//
// The day of week comes from start only, and start/end are reduced independently.
// A range that crosses local midnight is therefore mis-projected onto the start day:
// this is a known limitation, slots never span midnight either.
func ProjectRange(start, end time.Time, loc *time.Location) (Weekday, types.TimeOfDay, types.TimeOfDay) {
	day := Weekday(start.In(loc).Weekday())
	return day, types.TimeOfDayFromInstant(start, loc), types.TimeOfDayFromInstant(end, loc)
}

// FindContainingSlot returns the first slot on day that fully contains [qs, qe), or nil
func FindContainingSlot(slots []*AvailabilitySlot, day Weekday, qs, qe types.TimeOfDay) *AvailabilitySlot {
	for _, slot := range slots {
		if slot.DayOfWeek != day {
			continue
		}
		if slot.Contains(qs, qe) {
			return slot
		}
	}
	return nil
}

// FindOverlappingSlot returns the first slot on day that overlaps [start, end), or nil
func FindOverlappingSlot(slots []*AvailabilitySlot, day Weekday, start, end types.TimeOfDay) *AvailabilitySlot {
	for _, slot := range slots {
		if slot.DayOfWeek != day {
			continue
		}
		if slot.OverlapsWith(start, end) {
			return slot
		}
	}
	return nil
}
