package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

type sentText struct {
	to   string
	body string
}

type sentTemplate struct {
	to     string
	name   string
	params whatsapp.TemplateParams
}

// mockSender records outbound calls and optionally fails them.
type mockSender struct {
	texts     []sentText
	templates []sentTemplate
	err       error
}

func (m *mockSender) SendText(_ context.Context, to, body string) (*whatsapp.SendResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.texts = append(m.texts, sentText{to: to, body: body})
	return &whatsapp.SendResponse{}, nil
}

func (m *mockSender) SendTemplate(_ context.Context, to, templateName, _ string, params whatsapp.TemplateParams) (*whatsapp.SendResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.templates = append(m.templates, sentTemplate{to: to, name: templateName, params: params})
	return &whatsapp.SendResponse{}, nil
}

func (m *mockSender) lastTemplate(t *testing.T) sentTemplate {
	t.Helper()
	if len(m.templates) == 0 {
		t.Fatal("expected a template send")
	}
	return m.templates[len(m.templates)-1]
}

func (m *mockSender) lastText(t *testing.T) sentText {
	t.Helper()
	if len(m.texts) == 0 {
		t.Fatal("expected a text send")
	}
	return m.texts[len(m.texts)-1]
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func strPtr(s string) *string { return &s }

func f64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestErrorReply(t *testing.T) {
	got := errorReply(testLogger(), context.DeadlineExceeded, "retrieving medications")
	want := "Sorry, I couldn't complete the retrieving medications. Please try again later."
	if got != want {
		t.Errorf("errorReply = %q, want %q", got, want)
	}
}
