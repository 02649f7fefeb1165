package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohcnetwork/care-im/internal/domain/facility"
)

const (
	noFacilitiesMessage    = "You are not associated with any facilities."
	invalidFacilityMessage = "Invalid facility number. Please try again."
)

// formatFacilityList renders the numbered facility list shown when a
// staff command arrives without a selection. noun and command vary per
// operation ("schedule" and "/s", "assets" and "/a", and so on).
func formatFacilityList(facilities []*facility.Facility, noun, command string) string {
	var b strings.Builder
	b.WriteString("🏥 *Your Facilities*\n\n")
	for i, f := range facilities {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.Name)
	}
	fmt.Fprintf(&b, "\n📝 *To view %s for a specific facility:*\n", noun)
	fmt.Fprintf(&b, "Type `%s <facility_number>`\n", command)
	fmt.Fprintf(&b, "Example: `%s 2` for second facility", command)
	return b.String()
}

// selectFacility resolves a 1-based selection against the ordered
// facility list. Non-numeric and out-of-range selections both fail.
func selectFacility(facilities []*facility.Facility, selection string) (*facility.Facility, bool) {
	n, err := strconv.Atoi(selection)
	if err != nil || n < 1 || n > len(facilities) {
		return nil, false
	}
	return facilities[n-1], true
}
