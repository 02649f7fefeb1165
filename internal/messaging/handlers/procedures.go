package handlers

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/clinical"
	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

// ProceduresHandler sends the patient's recent and upcoming encounters
// as the care_procedures template. Newlines are replaced with "- "
// because the template body is a single line.
type ProceduresHandler struct {
	encounters clinical.EncounterRepository
	sender     Sender
	logger     zerolog.Logger
}

func NewProceduresHandler(encounters clinical.EncounterRepository, sender Sender, logger zerolog.Logger) *ProceduresHandler {
	return &ProceduresHandler{encounters: encounters, sender: sender, logger: logger}
}

func (h *ProceduresHandler) Handle(ctx context.Context, from string, patient *directory.Patient) string {
	if patient == nil {
		return "🚫 Error: Could not find your patient records. Please contact support."
	}

	recent, err := h.encounters.ListRecent(ctx, patient.ID)
	if err != nil {
		return errorReply(h.logger, err, "retrieving procedures")
	}

	if len(recent) == 0 {
		upcoming, err := h.encounters.ListUpcoming(ctx, patient.ID)
		if err != nil {
			return errorReply(h.logger, err, "retrieving procedures")
		}
		if len(upcoming) == 0 {
			if _, err := h.sendBody(ctx, from, "🚫 No recent or upcoming procedures found."); err != nil {
				return errorReply(h.logger, err, "retrieving procedures")
			}
			return "No recent or upcoming procedures found."
		}
		body := formatEncounterSection("", upcoming)
		if _, err := h.sendBody(ctx, from, strings.ReplaceAll(body, "\n", "- ")); err != nil {
			return errorReply(h.logger, err, "retrieving procedures")
		}
		return "Upcoming procedures information sent"
	}

	upcoming, err := h.encounters.ListUpcoming(ctx, patient.ID)
	if err != nil {
		return errorReply(h.logger, err, "retrieving procedures")
	}

	body := formatProcedures(recent, upcoming)
	if _, err := h.sendBody(ctx, from, strings.ReplaceAll(body, "\n", "- ")); err != nil {
		return errorReply(h.logger, err, "retrieving procedures")
	}
	return "Procedures information sent successfully"
}

func (h *ProceduresHandler) sendBody(ctx context.Context, from, text string) (*whatsapp.SendResponse, error) {
	return h.sender.SendTemplate(ctx, from, "care_procedures", "", whatsapp.TemplateParams{
		"body": {{Type: "text", Text: text}},
	})
}

func formatProcedures(recent, upcoming []*clinical.Encounter) string {
	var b strings.Builder
	b.WriteString("📋 *Your Procedures:*\n\n")
	b.WriteString("*Recent Procedures:*\n")
	for _, enc := range recent {
		b.WriteString(formatEncounterDetails(enc))
		if !enc.Date.IsZero() {
			b.WriteString("   - Discharged: " + enc.Date.Format("02 Jan 2006") + "\n")
		}
		b.WriteString("\n")
	}
	if len(upcoming) > 0 {
		b.WriteString(formatEncounterSection("*Upcoming Procedures:*\n", upcoming))
	}
	return b.String()
}

func formatEncounterSection(header string, encounters []*clinical.Encounter) string {
	var b strings.Builder
	b.WriteString(header)
	for _, enc := range encounters {
		b.WriteString(formatEncounterDetails(enc))
		b.WriteString("\n")
	}
	return b.String()
}

func formatEncounterDetails(enc *clinical.Encounter) string {
	class := "Procedure"
	if enc.Class != nil && *enc.Class != "" {
		class = *enc.Class
	}
	facility := "Unknown Facility"
	if enc.FacilityName != nil && *enc.FacilityName != "" {
		facility = *enc.FacilityName
	}
	doctor := "Unknown"
	if enc.ClinicianName != nil && *enc.ClinicianName != "" {
		doctor = *enc.ClinicianName
	}

	var b strings.Builder
	b.WriteString(" • " + enc.Date.Format("02 Jan 2006") + ": " + class + "\n")
	b.WriteString("   - At: " + facility + "\n")
	b.WriteString("   - By: Dr. " + doctor + "\n")
	if enc.Status != nil && *enc.Status != "" {
		b.WriteString("   - Reason: " + *enc.Status + "\n")
	}
	return b.String()
}
