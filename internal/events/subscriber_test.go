package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recordedCall struct {
	method string
	phone  string
	extra  string
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (m *mockNotifier) record(method, phone, extra string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recordedCall{method: method, phone: phone, extra: extra})
}

func (m *mockNotifier) snapshot() []recordedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]recordedCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockNotifier) OnOtpIssued(_ context.Context, phone, otp string) {
	m.record("otp", phone, otp)
}

func (m *mockNotifier) OnQuestionnaireCompleted(_ context.Context, phone string) {
	m.record("questionnaire", phone, "")
}

func (m *mockNotifier) OnProcedureRecorded(_ context.Context, phone string) {
	m.record("procedure", phone, "")
}

func (m *mockNotifier) OnPatientRegistered(_ context.Context, phone, name string) {
	m.record("registered", phone, name)
}

func (m *mockNotifier) OnTokenBooked(_ context.Context, phone string) {
	m.record("token", phone, "")
}

func waitForCalls(t *testing.T, notifier *mockNotifier, n int) []recordedCall {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if calls := notifier.snapshot(); len(calls) >= n {
			return calls
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d notifier calls", n)
	return nil
}

func TestSubscriber_DispatchesByKind(t *testing.T) {
	bus := NewBus(8)
	notifier := &mockNotifier{}
	sub := NewSubscriber(bus.Events(), notifier, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sub.Run(ctx)

	events := []Event{
		{Kind: KindOtpIssued, Phone: "+911111111111", OTP: "482916"},
		{Kind: KindQuestionnaireCompleted, Phone: "+912222222222"},
		{Kind: KindProcedureRecorded, Phone: "+913333333333"},
		{Kind: KindPatientRegistered, Phone: "+914444444444", Name: "Meera Nair"},
		{Kind: KindTokenBooked, Phone: "+915555555555"},
	}
	for _, evt := range events {
		if err := bus.Publish(ctx, evt); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	calls := waitForCalls(t, notifier, len(events))
	want := []recordedCall{
		{"otp", "+911111111111", "482916"},
		{"questionnaire", "+912222222222", ""},
		{"procedure", "+913333333333", ""},
		{"registered", "+914444444444", "Meera Nair"},
		{"token", "+915555555555", ""},
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call[%d] = %+v, want %+v", i, calls[i], want[i])
		}
	}
}

func TestSubscriber_SkipsUnknownKind(t *testing.T) {
	bus := NewBus(4)
	notifier := &mockNotifier{}
	sub := NewSubscriber(bus.Events(), notifier, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sub.Run(ctx)

	if err := bus.Publish(ctx, Event{Kind: Kind("exploded"), Phone: "+911111111111"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := bus.Publish(ctx, Event{Kind: KindTokenBooked, Phone: "+912222222222"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	calls := waitForCalls(t, notifier, 1)
	if calls[0].method != "token" {
		t.Errorf("unknown kind should be skipped, got %+v", calls)
	}
}

func TestBusPublish_CancelledContext(t *testing.T) {
	bus := NewBus(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := bus.Publish(ctx, Event{Kind: KindTokenBooked, Phone: "+911111111111"}); err == nil {
		t.Error("expected an error publishing to a full bus with a cancelled context")
	}
}
