package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func postEvent(t *testing.T, e *echo.Echo, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newEventEcho(bus *Bus) *echo.Echo {
	e := echo.New()
	NewHandler(bus, zerolog.Nop()).Register(e)
	return e
}

func TestEventIntake_QueuesValidEvent(t *testing.T) {
	bus := NewBus(4)
	e := newEventEcho(bus)

	rec := postEvent(t, e, `{"kind":"otp_issued","phone":"+919812345678","otp":"482916"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	select {
	case evt := <-bus.Events():
		if evt.Kind != KindOtpIssued || evt.Phone != "+919812345678" || evt.OTP != "482916" {
			t.Errorf("queued event = %+v", evt)
		}
	default:
		t.Fatal("expected the event on the bus")
	}
}

func TestEventIntake_RejectsUnknownKind(t *testing.T) {
	e := newEventEcho(NewBus(4))

	rec := postEvent(t, e, `{"kind":"patient_discharged","phone":"+919812345678"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown event kind") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestEventIntake_RequiresPhone(t *testing.T) {
	e := newEventEcho(NewBus(4))

	rec := postEvent(t, e, `{"kind":"token_booked"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "phone is required") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestEventIntake_RejectsMalformedBody(t *testing.T) {
	e := newEventEcho(NewBus(4))

	rec := postEvent(t, e, "not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
