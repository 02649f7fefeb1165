package directory

import "context"

// PatientRepository looks up patients by the phone numbers on their
// record. Lookups return (nil, nil) when no match exists; a non-nil
// error always means the data store itself failed.
type PatientRepository interface {
	FindByPhone(ctx context.Context, phone string) (*Patient, error)
	FindByEmergencyPhone(ctx context.Context, phone string) (*Patient, error)
}

// UserRepository looks up staff users by their primary or alternate
// phone number. Not-found is (nil, nil), same as PatientRepository.
type UserRepository interface {
	FindByPhone(ctx context.Context, phone string) (*StaffUser, error)
	FindByAltPhone(ctx context.Context, phone string) (*StaffUser, error)
}
