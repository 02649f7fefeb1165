package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository reads schedule data for staff members. ResourceFor
// returns (nil, nil) when the user has no schedulable resource at the
// facility.
type Repository interface {
	ResourceFor(ctx context.Context, facilityID, userID uuid.UUID) (*Resource, error)

	// ListActiveSchedules returns schedules whose validity window
	// overlaps [from, to].
	ListActiveSchedules(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*Schedule, error)

	// ListAppointmentSlots returns the weekly appointment slots of
	// the given schedules.
	ListAppointmentSlots(ctx context.Context, scheduleIDs []uuid.UUID) ([]Slot, error)

	// ListExceptions returns exceptions whose validity window
	// overlaps [from, to].
	ListExceptions(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*Exception, error)
}
