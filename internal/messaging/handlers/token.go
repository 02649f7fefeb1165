package handlers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/clinical"
	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

// TokenHandler sends the patient's most recent token booking as the
// care_token template.
type TokenHandler struct {
	bookings clinical.TokenBookingRepository
	sender   Sender
	logger   zerolog.Logger
}

func NewTokenHandler(bookings clinical.TokenBookingRepository, sender Sender, logger zerolog.Logger) *TokenHandler {
	return &TokenHandler{bookings: bookings, sender: sender, logger: logger}
}

func (h *TokenHandler) Handle(ctx context.Context, from string, patient *directory.Patient) string {
	if patient == nil {
		return "No patient record found. Please register to get your token booking details."
	}

	booking, err := h.bookings.Latest(ctx, patient.ID)
	if err != nil {
		return errorReply(h.logger, err, "retrieving token booking details")
	}

	if booking == nil {
		if _, err := h.sendBody(ctx, from, "🚫 No token booking details found."); err != nil {
			return errorReply(h.logger, err, "retrieving token booking details")
		}
		return "No token booking details available at this time."
	}

	if _, err := h.sendBody(ctx, from, formatTokenBooking(booking)); err != nil {
		return errorReply(h.logger, err, "retrieving token booking details")
	}
	return "Token booking information sent successfully"
}

func (h *TokenHandler) sendBody(ctx context.Context, from, text string) (*whatsapp.SendResponse, error) {
	return h.sender.SendTemplate(ctx, from, "care_token", "", whatsapp.TemplateParams{
		"body": {{Type: "text", Text: text}},
	})
}

func formatTokenBooking(b *clinical.TokenBooking) string {
	reason := "Not specified"
	if b.Reason != nil && *b.Reason != "" {
		reason = *b.Reason
	}
	return fmt.Sprintf("📅 Appointment on %s at %s | Status: %s | Booked on: %s | Reason: %s",
		b.SlotStart.Format("02 January, 2006"),
		b.SlotEnd.Format("03:04 PM"),
		b.Status,
		b.BookedOn.Format("02 January, 2006 03:04 PM"),
		reason)
}
