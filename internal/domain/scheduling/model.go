// Package scheduling models staff availability: schedulable resources,
// their schedules, weekly slots, and exceptions.
package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// SlotTypeAppointment marks availabilities bookable as appointments.
const SlotTypeAppointment = "appointment"

// Resource ties a user to a facility for scheduling purposes.
type Resource struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	UserID     uuid.UUID
}

// Schedule is a validity window during which weekly slots apply.
type Schedule struct {
	ID        uuid.UUID
	ValidFrom time.Time
	ValidTo   time.Time
}

// Slot is one weekly recurring availability. DayOfWeek runs 0 (Monday)
// through 6 (Sunday). Times are wall-clock strings as stored, usually
// "HH:MM" but sometimes carrying seconds or missing the colon.
type Slot struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// Exception overrides the weekly pattern on a single date.
type Exception struct {
	ID    uuid.UUID
	Date  time.Time
	Start time.Time
	End   time.Time
}
