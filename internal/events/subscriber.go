package events

import (
	"context"

	"github.com/rs/zerolog"
)

// Subscriber drains an event channel and dispatches each event to the
// notifier. Unknown kinds are logged and skipped; the notifier's entry
// points swallow their own failures, so one bad event never stops the
// loop.
type Subscriber struct {
	events   <-chan Event
	notifier Notifier
	logger   zerolog.Logger
}

func NewSubscriber(events <-chan Event, notifier Notifier, logger zerolog.Logger) *Subscriber {
	return &Subscriber{
		events:   events,
		notifier: notifier,
		logger:   logger.With().Str("component", "events").Logger(),
	}
}

// Run processes events until the context is cancelled.
func (s *Subscriber) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-s.events:
			s.dispatch(ctx, evt)
		}
	}
}

func (s *Subscriber) dispatch(ctx context.Context, evt Event) {
	s.logger.Info().Str("kind", string(evt.Kind)).Str("phone", evt.Phone).Msg("domain event received")
	switch evt.Kind {
	case KindOtpIssued:
		s.notifier.OnOtpIssued(ctx, evt.Phone, evt.OTP)
	case KindQuestionnaireCompleted:
		s.notifier.OnQuestionnaireCompleted(ctx, evt.Phone)
	case KindProcedureRecorded:
		s.notifier.OnProcedureRecorded(ctx, evt.Phone)
	case KindPatientRegistered:
		s.notifier.OnPatientRegistered(ctx, evt.Phone, evt.Name)
	case KindTokenBooked:
		s.notifier.OnTokenBooked(ctx, evt.Phone)
	default:
		s.logger.Warn().Str("kind", string(evt.Kind)).Msg("unknown event kind")
	}
}
