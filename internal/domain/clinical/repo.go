package clinical

import (
	"context"

	"github.com/google/uuid"
)

// MedicationRequestRepository reads a patient's prescriptions.
type MedicationRequestRepository interface {
	ListByPatientAndStatus(ctx context.Context, patientID uuid.UUID, status string) ([]*MedicationRequest, error)
}

// EncounterRepository reads a patient's encounters. Recent encounters
// are ordered newest first; upcoming ones soonest first.
type EncounterRepository interface {
	ListRecent(ctx context.Context, patientID uuid.UUID) ([]*Encounter, error)
	ListUpcoming(ctx context.Context, patientID uuid.UUID) ([]*Encounter, error)
}

// TokenBookingRepository reads a patient's token bookings.
// Latest returns (nil, nil) when the patient has never booked.
type TokenBookingRepository interface {
	Latest(ctx context.Context, patientID uuid.UUID) (*TokenBooking, error)
}
