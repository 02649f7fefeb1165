// Package resource models inter-facility resource requests.
package resource

import (
	"time"

	"github.com/google/uuid"
)

// Request is a resource request raised by one facility and optionally
// assigned to another.
type Request struct {
	ID               uuid.UUID
	Title            string
	Status           string
	Category         string
	Emergency        bool
	OriginFacility   *string
	AssignedFacility *string
	AssignedTo       *string
	CreatedAt        time.Time
}

var statusDisplay = map[string]string{
	"PENDING":                       "Pending",
	"ON_HOLD":                       "On Hold",
	"APPROVED":                      "Approved",
	"REJECTED":                      "Rejected",
	"TRANSPORTATION_TO_BE_ARRANGED": "Transportation To Be Arranged",
	"TRANSFER_IN_PROGRESS":          "Transfer In Progress",
	"COMPLETED":                     "Completed",
}

var categoryDisplay = map[string]string{
	"PATIENT_CARE":    "Patient Care",
	"COMFORT_DEVICES": "Comfort Devices",
	"MEDICINES":       "Medicines",
	"FINANCIAL":       "Financial",
	"SUPPLIES":        "Supplies",
	"OTHERS":          "Others",
}

// StatusDisplay renders the stored status code for users.
func (r *Request) StatusDisplay() string {
	if d, ok := statusDisplay[r.Status]; ok {
		return d
	}
	return "Unknown Status"
}

// CategoryDisplay renders the stored category code for users.
func (r *Request) CategoryDisplay() string {
	if d, ok := categoryDisplay[r.Category]; ok {
		return d
	}
	return "Unknown Category"
}
