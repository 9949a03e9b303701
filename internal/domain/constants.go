package domain

// Time format constants
const (
	TimeFormat = "15:04" // HH:MM
)

// Weekday bounds, 0 = Sunday
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6
)

// Event types emitted by the availability service
const (
	EventSlotCreated = "availability.slot_created"
	EventSlotDeleted = "availability.slot_deleted"
)
