package messaging

import (
	"context"
	"time"

	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

const questionnaireLockTTL = 10 * time.Second

// Trigger entry points. These are fired by domain events from the
// records system rather than by inbound messages. They never return an
// error: delivery failures are logged and swallowed so the triggering
// system treats every notification as fire-and-forget.

// OnInboundMessage handles a parsed webhook message.
func (r *Router) OnInboundMessage(ctx context.Context, msg *whatsapp.InboundMessage) {
	body, ok := msg.Body()
	if !ok {
		r.logger.Warn().Str("from", msg.From).Str("type", msg.Type).Msg("unsupported inbound message type")
		return
	}
	status := r.HandleMessage(ctx, msg.From, body)
	r.logger.Info().Str("from", msg.From).Str("status", truncate(status, 80)).Msg("inbound message handled")
}

// OnOtpIssued sends the OTP template, with the code both in the body
// and in the copy-code button.
func (r *Router) OnOtpIssued(ctx context.Context, phone, otp string) {
	_, err := r.sender.SendTemplate(ctx, phone, TemplateOTP, "", whatsapp.TemplateParams{
		"body":   {{Type: "text", Text: otp}},
		"button": {{Type: "text", Text: otp}},
	})
	if err != nil {
		r.logger.Error().Err(err).Str("phone", phone).Msg("otp send failed")
	}
}

// OnQuestionnaireCompleted sends the patient their medication summary.
// The send is guarded so that several completion events for the same
// number within the lock TTL produce a single message.
func (r *Router) OnQuestionnaireCompleted(ctx context.Context, phone string) {
	key := "questionnaire_response:" + phone
	acquired, err := r.guard.TryAcquire(ctx, key, questionnaireLockTTL)
	if err != nil {
		r.logger.Error().Err(err).Str("phone", phone).Msg("questionnaire guard unavailable")
		return
	}
	if !acquired {
		r.logger.Info().Str("phone", phone).Msg("skipping duplicate questionnaire response")
		return
	}
	defer func() {
		if err := r.guard.Release(ctx, key); err != nil {
			r.logger.Warn().Err(err).Str("phone", phone).Msg("questionnaire guard release failed")
		}
	}()

	r.HandleMessage(ctx, phone, "medications")
}

// OnProcedureRecorded sends the patient their procedures summary.
func (r *Router) OnProcedureRecorded(ctx context.Context, phone string) {
	r.HandleMessage(ctx, phone, "procedures")
}

// OnPatientRegistered sends the registration greeting.
func (r *Router) OnPatientRegistered(ctx context.Context, phone, name string) {
	_, err := r.sender.SendTemplate(ctx, phone, TemplateGreeting, "", whatsapp.TemplateParams{
		"body": {
			{Type: "text", Text: name},
			{Type: "text", Text: "Your registration is successful."},
			{Type: "text", Text: "Please ensure your details are correct."},
		},
	})
	if err != nil {
		r.logger.Error().Err(err).Str("phone", phone).Msg("registration greeting send failed")
	}
}

// OnTokenBooked sends the patient their latest booking summary.
func (r *Router) OnTokenBooked(ctx context.Context, phone string) {
	r.HandleMessage(ctx, phone, "token")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
