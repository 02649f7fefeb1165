// Package events decouples the records system's lifecycle hooks from
// the messaging core. The data layer publishes typed domain events to
// a channel; a subscriber drains it and invokes the matching trigger
// entry point.
package events

import "context"

// Kind identifies a domain event.
type Kind string

const (
	KindOtpIssued              Kind = "otp_issued"
	KindQuestionnaireCompleted Kind = "questionnaire_completed"
	KindProcedureRecorded      Kind = "procedure_recorded"
	KindPatientRegistered      Kind = "patient_registered"
	KindTokenBooked            Kind = "token_booked"
)

// Event is one domain event. Phone is always set; Name only for
// patient registrations, OTP only for OTP issuance.
type Event struct {
	Kind  Kind
	Phone string
	Name  string
	OTP   string
}

// Notifier is the set of trigger entry points the subscriber drives.
// messaging.Router satisfies it.
type Notifier interface {
	OnOtpIssued(ctx context.Context, phone, otp string)
	OnQuestionnaireCompleted(ctx context.Context, phone string)
	OnProcedureRecorded(ctx context.Context, phone string)
	OnPatientRegistered(ctx context.Context, phone, name string)
	OnTokenBooked(ctx context.Context, phone string)
}

// Bus is an in-process event channel between the data layer and the
// messaging subscriber.
type Bus struct {
	ch chan Event
}

func NewBus(buffer int) *Bus {
	return &Bus{ch: make(chan Event, buffer)}
}

// Publish enqueues an event. It blocks when the buffer is full rather
// than dropping notifications.
func (b *Bus) Publish(ctx context.Context, evt Event) error {
	select {
	case b.ch <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Events exposes the receive side for a subscriber.
func (b *Bus) Events() <-chan Event {
	return b.ch
}
