package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/clinical"
	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

const noMedicationsMessage = "📋 You don't have any active medications at this time. Please consult your doctor if you need any prescriptions."

// MedicationHandler sends the patient's active prescriptions as the
// care_medications template. Channel templates carry one text field,
// so the per-medication fragments are joined with " | ".
type MedicationHandler struct {
	medications clinical.MedicationRequestRepository
	sender      Sender
	logger      zerolog.Logger
}

func NewMedicationHandler(medications clinical.MedicationRequestRepository, sender Sender, logger zerolog.Logger) *MedicationHandler {
	return &MedicationHandler{medications: medications, sender: sender, logger: logger}
}

func (h *MedicationHandler) Handle(ctx context.Context, from string, patient *directory.Patient) string {
	if patient == nil {
		return "No patient records found. Please visit a facility to register."
	}

	active, err := h.medications.ListByPatientAndStatus(ctx, patient.ID, clinical.MedicationStatusActive)
	if err != nil {
		return errorReply(h.logger, err, "retrieving medications")
	}

	if len(active) == 0 {
		if _, err := h.sendBody(ctx, from, noMedicationsMessage); err != nil {
			return errorReply(h.logger, err, "retrieving medications")
		}
		return noMedicationsMessage
	}

	body := strings.Join(formatMedications(active), " | ")
	if _, err := h.sendBody(ctx, from, body); err != nil {
		return errorReply(h.logger, err, "retrieving medications")
	}
	return "Medication information sent successfully"
}

func (h *MedicationHandler) sendBody(ctx context.Context, from, text string) (*whatsapp.SendResponse, error) {
	return h.sender.SendTemplate(ctx, from, "care_medications", "", whatsapp.TemplateParams{
		"body": {{Type: "text", Text: text}},
	})
}

// formatMedications flattens each prescription into ordered text
// fragments: name, category, priority, status reason, dosage
// instructions, administration method, prescription details, notes.
func formatMedications(medications []*clinical.MedicationRequest) []string {
	var parts []string

	for _, med := range medications {
		parts = append(parts, "*"+med.MedicationName+"*")
		if med.Category != nil && *med.Category != "" {
			parts = append(parts, "Category: "+*med.Category)
		}
		if med.Priority != nil && *med.Priority != "" {
			parts = append(parts, "Priority: "+*med.Priority)
		}
		if med.StatusReason != nil && *med.StatusReason != "" {
			parts = append(parts, fmt.Sprintf("Status: %s (%s)", med.Status, *med.StatusReason))
		}

		if len(med.Instructions) > 0 {
			parts = append(parts, "📝 *Dosage Instructions:*")
			for _, in := range med.Instructions {
				parts = appendInstruction(parts, in)
			}
		}

		if med.Method != nil {
			parts = append(parts, "Method: "+*med.Method)
		}

		parts = append(parts, "📋 *Prescription Details:*")
		if med.AuthoredOn != nil {
			parts = append(parts, "• Prescribed on: "+med.AuthoredOn.Format("02 January, 2006"))
		}
		if med.RequesterName != nil && *med.RequesterName != "" {
			parts = append(parts, "• Requesting Doctor: Dr. "+*med.RequesterName)
		}
		if med.PrescriberName != nil && *med.PrescriberName != "" {
			parts = append(parts, "• Prescribed by: Dr. "+*med.PrescriberName)
		}

		if med.Note != nil && *med.Note != "" {
			parts = append(parts, "📌 *Notes:* "+*med.Note)
		}
	}

	return parts
}

func appendInstruction(parts []string, in clinical.Instruction) []string {
	if in.Frequency != nil && *in.Frequency != "" {
		parts = append(parts, "• Frequency: "+*in.Frequency)
	}
	if in.DoseValue != nil && in.DoseUnit != nil && *in.DoseUnit != "" {
		parts = append(parts, fmt.Sprintf("• Dose: %s %s", formatQuantity(*in.DoseValue), *in.DoseUnit))
	}
	if in.DurationValue != nil && in.DurationUnit != nil && *in.DurationUnit != "" {
		parts = append(parts, fmt.Sprintf("• Duration: %s %s", formatQuantity(*in.DurationValue), *in.DurationUnit))
	}
	if in.Route != nil && *in.Route != "" {
		parts = append(parts, "• Route: "+*in.Route)
	}
	if in.Method != nil && *in.Method != "" {
		parts = append(parts, "• Method: "+*in.Method)
	}
	for _, note := range in.Notes {
		if note != "" {
			parts = append(parts, "• Note: "+note)
		}
	}
	if in.AsNeeded {
		parts = append(parts, "• Take as needed")
	}
	return parts
}

// formatQuantity renders a dose or duration value without trailing
// zeros, so 500.0 reads as "500" and 2.5 stays "2.5".
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
