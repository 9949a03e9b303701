package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Weekday day of week, 0 = Sunday ... 6 = Saturday (same numbering as time.Weekday)
type Weekday int

// IsValid returns true if the day is within 0..6
func (d Weekday) IsValid() bool {
	return d >= MinDayOfWeek && d <= MaxDayOfWeek
}

// String returns the English day name
func (d Weekday) String() string {
	if !d.IsValid() {
		return "Invalid"
	}
	return time.Weekday(d).String()
}

// AvailabilitySlot represents a recurring weekly availability window of one user
// Slots never span midnight: StartTime < EndTime on the same day
type AvailabilitySlot struct {
	ID        string
	UserID    string // owner, back-reference only
	DayOfWeek Weekday
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the slot belongs to the user
func (s *AvailabilitySlot) IsOwnedBy(userID string) bool {
	return s.UserID == userID
}

// OverlapsWith returns true if [start, end) intersects the slot on the same day
func (s *AvailabilitySlot) OverlapsWith(start, end types.TimeOfDay) bool {
	return Overlaps(s.StartTime, s.EndTime, start, end)
}

// Contains returns true if [start, end) lies entirely inside the slot
func (s *AvailabilitySlot) Contains(start, end types.TimeOfDay) bool {
	return Contains(s.StartTime, s.EndTime, start, end)
}

// ConflictResult is the ephemeral result of an availability check
type ConflictResult struct {
	IsAvailable bool
	Slot        *AvailabilitySlot // matching slot, nil when unavailable
}
