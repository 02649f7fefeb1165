// Package directory holds the read models for the people known to the
// records system: registered patients and staff users. The messaging
// layer resolves inbound phone numbers against these models.
package directory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Patient is a registered patient record.
type Patient struct {
	ID             uuid.UUID
	Name           string
	Phone          string
	EmergencyPhone string
	Gender         string
	BloodGroup     *string
	DateOfBirth    *time.Time
	ModifiedAt     time.Time
}

// Age renders the patient's age in whole years, or "Not Available"
// when no date of birth is on record.
func (p *Patient) Age() string {
	if p.DateOfBirth == nil {
		return "Not Available"
	}
	now := time.Now()
	years := now.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return fmt.Sprintf("%d years", years)
}

// StaffUser is an account holder in the records system. IsStaff
// distinguishes clinical/administrative staff from patient-facing
// accounts such as volunteers.
type StaffUser struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	AltPhone  string
	IsStaff   bool
}

// FullName joins the name parts, skipping empty ones.
func (u *StaffUser) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return "Unknown"
	}
	return name
}
