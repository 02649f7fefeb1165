// Package clinical models the clinical records the messaging layer
// reads for patients: medication requests, encounters, and token
// bookings.
package clinical

import (
	"time"

	"github.com/google/uuid"
)

// MedicationStatusActive is the status of prescriptions still in effect.
const MedicationStatusActive = "active"

// Instruction is one dosage instruction attached to a medication
// request. All fields are optional; rendering skips absent ones.
type Instruction struct {
	Frequency     *string
	DoseValue     *float64
	DoseUnit      *string
	DurationValue *float64
	DurationUnit  *string
	Route         *string
	Method        *string
	Notes         []string
	AsNeeded      bool
}

// MedicationRequest is a prescription.
type MedicationRequest struct {
	ID             uuid.UUID
	MedicationName string
	Category       *string
	Priority       *string
	Status         string
	StatusReason   *string
	Instructions   []Instruction
	Method         *string
	AuthoredOn     *time.Time
	RequesterName  *string
	PrescriberName *string
	Note           *string
}

// Encounter is a clinical visit or procedure record.
type Encounter struct {
	ID            uuid.UUID
	Class         *string
	Status        *string
	FacilityName  *string
	ClinicianName *string
	Date          time.Time
}

// TokenBooking is an appointment booked through the token system.
type TokenBooking struct {
	ID        uuid.UUID
	SlotStart time.Time
	SlotEnd   time.Time
	Status    string
	BookedOn  time.Time
	Reason    *string
}
