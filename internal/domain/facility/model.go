// Package facility models facilities, their staff membership, and the
// monitored assets installed in them.
package facility

import (
	"time"

	"github.com/google/uuid"
)

// Facility is a care facility a staff user may belong to.
type Facility struct {
	ID                 uuid.UUID
	Name               string
	TotalBedCapacity   *int
	CurrentBedCapacity *int
}

// Member links a staff user to a facility.
type Member struct {
	FacilityID uuid.UUID
	UserID     uuid.UUID
	UserName   string
}

// AvailabilityStatus is the most recent monitored state of an asset.
type AvailabilityStatus string

const (
	StatusOperational      AvailabilityStatus = "Operational"
	StatusDown             AvailabilityStatus = "Down"
	StatusUnderMaintenance AvailabilityStatus = "Under Maintenance"
	StatusNotMonitored     AvailabilityStatus = "Not Monitored"
)

// Asset is a monitored device or piece of equipment at a facility.
type Asset struct {
	ID       uuid.UUID
	Name     string
	Class    string
	Location string
}

// Availability is a point-in-time status record for an asset.
type Availability struct {
	AssetID    uuid.UUID
	Status     AvailabilityStatus
	RecordedAt time.Time
}
