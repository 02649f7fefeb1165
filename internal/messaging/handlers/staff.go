package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/domain/facility"
	"github.com/ohcnetwork/care-im/internal/domain/scheduling"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// StaffScheduleHandler renders the weekly schedule of every staff
// member at a selected facility and delivers it as a plain text send.
type StaffScheduleHandler struct {
	facilities facility.Repository
	schedules  scheduling.Repository
	sender     Sender
	logger     zerolog.Logger
}

func NewStaffScheduleHandler(facilities facility.Repository, schedules scheduling.Repository, sender Sender, logger zerolog.Logger) *StaffScheduleHandler {
	return &StaffScheduleHandler{facilities: facilities, schedules: schedules, sender: sender, logger: logger}
}

// Handle resolves the facility selection and sends the schedule view.
// selection is the raw argument of the "/s" command, empty for the
// bare "schedule" keyword.
func (h *StaffScheduleHandler) Handle(ctx context.Context, from string, user *directory.StaffUser, selection string) string {
	if user == nil {
		return "Error: You don't have permission to view staff schedules."
	}

	facilities, err := h.facilities.ListByUser(ctx, user.ID)
	if err != nil {
		return errorReply(h.logger, err, "retrieving staff schedule")
	}

	if len(facilities) == 0 {
		h.send(ctx, from, noFacilitiesMessage)
		return noFacilitiesMessage
	}

	if selection == "" {
		list := formatFacilityList(facilities, "schedule", "/s")
		h.send(ctx, from, list)
		return list
	}

	target, ok := selectFacility(facilities, selection)
	if !ok {
		return invalidFacilityMessage
	}

	view, err := h.renderFacilitySchedule(ctx, target)
	if err != nil {
		return errorReply(h.logger, err, "retrieving staff schedule")
	}
	h.send(ctx, from, view)
	return "Staff schedule sent successfully"
}

func (h *StaffScheduleHandler) send(ctx context.Context, to, body string) {
	if _, err := h.sender.SendText(ctx, to, body); err != nil {
		h.logger.Error().Err(err).Msg("staff schedule send failed")
	}
}

func (h *StaffScheduleHandler) renderFacilitySchedule(ctx context.Context, f *facility.Facility) (string, error) {
	members, err := h.facilities.ListMembers(ctx, f.ID)
	if err != nil {
		return "", err
	}

	today := startOfDay(time.Now())
	nextWeek := today.AddDate(0, 0, 7)

	var b strings.Builder
	fmt.Fprintf(&b, "👥 *Staff Schedule at %s*\n\n", f.Name)

	for _, member := range members {
		fmt.Fprintf(&b, "*%s*\n", member.UserName)

		res, err := h.schedules.ResourceFor(ctx, f.ID, member.UserID)
		if err != nil {
			return "", err
		}
		if res == nil {
			b.WriteString("   No schedule configured\n\n")
			continue
		}

		schedules, err := h.schedules.ListActiveSchedules(ctx, res.ID, today, nextWeek)
		if err != nil {
			return "", err
		}
		if len(schedules) == 0 {
			b.WriteString("   No active schedules\n\n")
			continue
		}

		ids := make([]uuid.UUID, len(schedules))
		for i, s := range schedules {
			ids[i] = s.ID
		}
		slots, err := h.schedules.ListAppointmentSlots(ctx, ids)
		if err != nil {
			return "", err
		}
		exceptions, err := h.schedules.ListExceptions(ctx, res.ID, today, nextWeek)
		if err != nil {
			return "", err
		}

		b.WriteString(formatWeek(slots, exceptions, h.logger))
		b.WriteString("\n")
	}

	b.WriteString("\n📝 *To view another facility:*\n")
	b.WriteString("Type 'schedule' to see your facilities")
	return b.String(), nil
}

// startOfDay returns midnight of now's calendar day in now's location.
// Truncating would round on UTC epoch days and shift the schedule
// window near midnight in other zones.
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

type timeRange struct {
	start time.Time
	end   time.Time
}

// formatWeek groups slots by day of week (0 Monday through 6 Sunday)
// and renders each day's ranges in 12-hour form. Slots with times that
// do not parse after cleaning are dropped with a logged warning.
func formatWeek(slots []scheduling.Slot, exceptions []*scheduling.Exception, logger zerolog.Logger) string {
	var days [7][]timeRange
	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			logger.Warn().Int("day_of_week", slot.DayOfWeek).Msg("slot has invalid day, dropping")
			continue
		}
		start, okStart := parseSlotTime(slot.StartTime)
		end, okEnd := parseSlotTime(slot.EndTime)
		if !okStart || !okEnd {
			logger.Warn().Str("start", slot.StartTime).Str("end", slot.EndTime).Msg("slot has unparsable time, dropping")
			continue
		}
		days[slot.DayOfWeek] = append(days[slot.DayOfWeek], timeRange{start: start, end: end})
	}

	var b strings.Builder
	for day := 0; day < 7; day++ {
		fmt.Fprintf(&b, "   %s:\n", dayNames[day])
		if len(days[day]) == 0 {
			b.WriteString("      No scheduled hours\n")
		} else {
			sort.Slice(days[day], func(i, j int) bool {
				return days[day][i].start.Before(days[day][j].start)
			})
			for _, r := range days[day] {
				fmt.Fprintf(&b, "      %s - %s\n", r.start.Format("03:04 PM"), r.end.Format("03:04 PM"))
			}
		}
		b.WriteString("\n")
	}

	if len(exceptions) > 0 {
		b.WriteString("   *Exceptions:*\n")
		for _, exc := range exceptions {
			fmt.Fprintf(&b, "      %s: %s - %s\n",
				exc.Date.Format("02 Jan"),
				exc.Start.Format("03:04 PM"),
				exc.End.Format("03:04 PM"))
		}
	}

	return b.String()
}

// parseSlotTime cleans a stored wall-clock string and parses it as
// 24-hour HH:MM. Seconds are stripped, a bare hour gets ":00".
func parseSlotTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	parts := strings.Split(raw, ":")
	if len(parts) > 2 {
		raw = strings.Join(parts[:2], ":")
	}
	if !strings.Contains(raw, ":") {
		raw += ":00"
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
