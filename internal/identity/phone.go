package identity

import "strings"

// NormalizePhone converts a raw phone string into the "+"-prefixed
// form stored on patient and user records. The heuristic is
// best-effort and preserved for compatibility with existing data:
// an 11-digit number without the 91 country code falls through to the
// bare "+" branch and may normalize incorrectly.
func NormalizePhone(raw string) string {
	phone := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	if strings.HasPrefix(phone, "91") && len(phone) >= 12 {
		return "+" + phone
	}
	if len(phone) == 10 {
		return "+91" + phone
	}
	return "+" + phone
}
