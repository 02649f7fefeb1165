package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

// PatientRecordHandler sends the patient's record summary as the
// care_patient_record template.
type PatientRecordHandler struct {
	sender Sender
	logger zerolog.Logger
}

func NewPatientRecordHandler(sender Sender, logger zerolog.Logger) *PatientRecordHandler {
	return &PatientRecordHandler{sender: sender, logger: logger}
}

func (h *PatientRecordHandler) Handle(ctx context.Context, from string, patient *directory.Patient) string {
	if patient == nil {
		return "No patient records found. Please visit a facility to register."
	}

	lastVisit := "Not Available"
	if !patient.ModifiedAt.IsZero() {
		lastVisit = patient.ModifiedAt.Format("02 January, 2006")
	}
	bloodGroup := "Not Available"
	if patient.BloodGroup != nil && *patient.BloodGroup != "" {
		bloodGroup = *patient.BloodGroup
	}

	_, err := h.sender.SendTemplate(ctx, from, "care_patient_record", "", whatsapp.TemplateParams{
		"body": {
			{Type: "text", Text: patient.ID.String()},
			{Type: "text", Text: patient.Name},
			{Type: "text", Text: patient.Age()},
			{Type: "text", Text: lastVisit},
			{Type: "text", Text: "Gender: " + patient.Gender + ", Blood Group: " + bloodGroup},
		},
	})
	if err != nil {
		return errorReply(h.logger, err, "retrieving patient records")
	}
	return "Patient records sent successfully"
}
