package messaging

import (
	"fmt"
	"strings"
)

// Template names registered with the channel provider.
const (
	TemplateHelpPatient   = "care_help_patient"
	TemplateHelpStaff     = "care_help_staff"
	TemplateMedications   = "care_medications"
	TemplateProcedures    = "care_procedures"
	TemplateToken         = "care_token"
	TemplatePatientRecord = "care_patient_record"
	TemplateOTP           = "care_otp"
	TemplateGreeting      = "care_greeting"
)

// supportLanguage pairs a language code with its display name, in the
// order the registration message lists them.
type supportLanguage struct {
	code string
	name string
}

var supportLanguages = []supportLanguage{
	{"en", "English"},
	{"ml", "Malayalam"},
	{"hi", "Hindi"},
	{"ta", "Tamil"},
}

// Templates renders the plain-text replies that are not channel
// templates: the registration walkthrough and the help fallbacks.
type Templates struct {
	SupportEmail string
	Helpline     string
}

// HelpText is the text fallback sent when a registered sender's
// message matched no keyword.
func (t *Templates) HelpText(patientLike bool) string {
	if patientLike {
		return "🏥 *Available Commands*\n\n" +
			"1. *records* - View your patient records\n" +
			"2. *medications* - View current medications\n" +
			"3. *procedures* - View your procedures\n" +
			"4. *token* - Get a token\n" +
			"5. *help* - Show this message\n\n" +
			"Send any of these commands to get the information you need."
	}
	return "🏥 *Available Commands*\n\n" +
		"1. *schedule* - View your work schedule\n" +
		"2. *resource* - Check resources status\n" +
		"3. *help* - Show this message\n\n" +
		"Send any of these commands to get the information you need."
}

// UnregisteredUser is the registration walkthrough shown to numbers
// that match no patient or user record.
func (t *Templates) UnregisteredUser() string {
	var langs strings.Builder
	for i, lang := range supportLanguages {
		if i > 0 {
			langs.WriteString("\n")
		}
		langs.WriteString("   • " + lang.name)
	}

	return fmt.Sprintf(
		"🏥 *You are not registered in our system*\n\n"+
			"*How to Register:*\n\n"+
			"1️⃣ *Visit a Hospital*\n"+
			"   • Find your nearest CARE-registered hospital\n"+
			"   • Registration is available during OPD hours\n\n"+
			"2️⃣ *Required Documents*\n"+
			"   • Valid ID (Aadhaar/PAN/Passport)\n"+
			"   • Address proof\n"+
			"   • Recent photograph\n"+
			"   • Previous medical records (if any)\n\n"+
			"3️⃣ *At Registration Desk*\n"+
			"   • Fill patient registration form\n"+
			"   • Provide this WhatsApp number\n"+
			"   • Get your Patient ID\n\n"+
			"4️⃣ *Need Help?*\n"+
			"   • Call: %s (24x7 Toll-free)\n"+
			"   • Email: %s\n"+
			"   • Available in:\n"+
			"%s\n\n"+
			"*After Registration You Can:*\n"+
			"✓ View medical records\n"+
			"✓ Check appointments\n"+
			"✓ Get medication reminders\n"+
			"✓ Receive important updates\n\n"+
			"Type 'help' anytime to see available commands.",
		t.Helpline, t.SupportEmail, langs.String())
}
