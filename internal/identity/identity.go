// Package identity resolves inbound phone numbers to the people the
// records system knows about.
package identity

import "github.com/ohcnetwork/care-im/internal/domain/directory"

// Identity is the resolved sender of an inbound message. The zero
// value means the number matched no record.
type Identity struct {
	Patient *directory.Patient
	User    *directory.StaffUser
}

// Registered reports whether the number matched any record.
func (id Identity) Registered() bool {
	return id.Patient != nil || id.User != nil
}

// PatientLike reports whether the sender should be offered the
// patient-facing operations: a patient, or an account holder who is
// not staff (emergency contacts and volunteers hold such accounts).
func (id Identity) PatientLike() bool {
	if id.Patient != nil {
		return true
	}
	return id.User != nil && !id.User.IsStaff
}

// Staff reports whether the sender gets the staff-facing operations.
func (id Identity) Staff() bool {
	return id.Registered() && !id.PatientLike()
}
