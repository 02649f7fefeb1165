package messaging

import (
	"strings"
	"testing"
)

func TestHelpText_Patient(t *testing.T) {
	tpl := &Templates{}
	got := tpl.HelpText(true)

	for _, want := range []string{
		"🏥 *Available Commands*",
		"*records* - View your patient records",
		"*medications* - View current medications",
		"*procedures* - View your procedures",
		"*token* - Get a token",
		"*help* - Show this message",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("patient help missing %q", want)
		}
	}
	if strings.Contains(got, "schedule") {
		t.Error("patient help should not list staff commands")
	}
}

func TestHelpText_Staff(t *testing.T) {
	tpl := &Templates{}
	got := tpl.HelpText(false)

	for _, want := range []string{
		"*schedule* - View your work schedule",
		"*resource* - Check resources status",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("staff help missing %q", want)
		}
	}
	if strings.Contains(got, "medications") {
		t.Error("staff help should not list patient commands")
	}
}

func TestUnregisteredUser(t *testing.T) {
	tpl := &Templates{SupportEmail: "support@care.example", Helpline: "1800-000-111"}
	got := tpl.UnregisteredUser()

	for _, want := range []string{
		"🏥 *You are not registered in our system*",
		"Call: 1800-000-111 (24x7 Toll-free)",
		"Email: support@care.example",
		"• English",
		"• Malayalam",
		"• Hindi",
		"• Tamil",
		"Type 'help' anytime to see available commands.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("registration walkthrough missing %q", want)
		}
	}
}
