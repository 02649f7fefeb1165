package messaging

import (
	"strings"

	"github.com/ohcnetwork/care-im/internal/identity"
)

// IntentKind is the classified purpose of an inbound message.
type IntentKind int

const (
	IntentUnregistered IntentKind = iota
	IntentHelp
	IntentPatientRecords
	IntentMedications
	IntentProcedures
	IntentTokenBooking
	IntentStaffSchedule
	IntentAssetStatus
	IntentResourceStatus
	// IntentPatientFallback and IntentStaffFallback reply with the
	// matching help text when no keyword matched.
	IntentPatientFallback
	IntentStaffFallback
)

// Intent carries the classification result. Selection holds the raw
// facility-number argument of a slash command; Malformed marks a slash
// command that arrived without one.
type Intent struct {
	Kind      IntentKind
	Selection string
	Malformed bool
}

// ClassifyIntent maps a lowercased, trimmed message to an intent. The
// branch is picked by identity first and keyword second, so a patient
// sending a staff slash command falls through to the patient help
// fallback rather than reaching a staff operation.
func ClassifyIntent(id identity.Identity, text string) Intent {
	if !id.Registered() {
		return Intent{Kind: IntentUnregistered}
	}
	if text == "help" {
		return Intent{Kind: IntentHelp}
	}

	if id.PatientLike() {
		switch {
		case strings.Contains(text, "records"):
			return Intent{Kind: IntentPatientRecords}
		case strings.Contains(text, "medications"):
			return Intent{Kind: IntentMedications}
		case strings.Contains(text, "procedures"):
			return Intent{Kind: IntentProcedures}
		case strings.Contains(text, "token"):
			return Intent{Kind: IntentTokenBooking}
		default:
			return Intent{Kind: IntentPatientFallback}
		}
	}

	switch {
	case strings.Contains(text, "schedule"):
		return Intent{Kind: IntentStaffSchedule}
	case strings.HasPrefix(text, "/s "):
		return slashIntent(IntentStaffSchedule, text)
	case strings.HasPrefix(text, "/a "):
		return slashIntent(IntentAssetStatus, text)
	case strings.HasPrefix(text, "/r "):
		return slashIntent(IntentResourceStatus, text)
	case strings.Contains(text, "asset"):
		return Intent{Kind: IntentAssetStatus}
	case strings.Contains(text, "resource"):
		return Intent{Kind: IntentResourceStatus}
	default:
		return Intent{Kind: IntentStaffFallback}
	}
}

func slashIntent(kind IntentKind, text string) Intent {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return Intent{Kind: kind, Malformed: true}
	}
	return Intent{Kind: kind, Selection: fields[1]}
}
