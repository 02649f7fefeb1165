package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/domain/facility"
	"github.com/ohcnetwork/care-im/internal/domain/scheduling"
)

type mockFacilityRepo struct {
	facilities   []*facility.Facility
	members      []*facility.Member
	assets       []*facility.Asset
	availability map[uuid.UUID]*facility.Availability
	err          error
}

func (m *mockFacilityRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]*facility.Facility, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.facilities, nil
}

func (m *mockFacilityRepo) ListMembers(_ context.Context, _ uuid.UUID) ([]*facility.Member, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.members, nil
}

func (m *mockFacilityRepo) ListAssets(_ context.Context, _ uuid.UUID) ([]*facility.Asset, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assets, nil
}

func (m *mockFacilityRepo) LatestAvailability(_ context.Context, assetID uuid.UUID) (*facility.Availability, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.availability[assetID], nil
}

type mockSchedulingRepo struct {
	resource   *scheduling.Resource
	schedules  []*scheduling.Schedule
	slots      []scheduling.Slot
	exceptions []*scheduling.Exception
	err        error

	exceptionsFrom time.Time
	exceptionsTo   time.Time
}

func (m *mockSchedulingRepo) ResourceFor(_ context.Context, _, _ uuid.UUID) (*scheduling.Resource, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.resource, nil
}

func (m *mockSchedulingRepo) ListActiveSchedules(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]*scheduling.Schedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.schedules, nil
}

func (m *mockSchedulingRepo) ListAppointmentSlots(_ context.Context, _ []uuid.UUID) ([]scheduling.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slots, nil
}

func (m *mockSchedulingRepo) ListExceptions(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*scheduling.Exception, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.exceptionsFrom, m.exceptionsTo = from, to
	return m.exceptions, nil
}

func staffUser() *directory.StaffUser {
	return &directory.StaffUser{ID: uuid.New(), FirstName: "Anita", LastName: "Thomas", IsStaff: true}
}

func TestStaffScheduleHandler_NilUser(t *testing.T) {
	h := NewStaffScheduleHandler(&mockFacilityRepo{}, &mockSchedulingRepo{}, &mockSender{}, testLogger())

	got := h.Handle(context.Background(), "+919876500000", nil, "")
	if got != "Error: You don't have permission to view staff schedules." {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestStaffScheduleHandler_NoFacilities(t *testing.T) {
	sender := &mockSender{}
	h := NewStaffScheduleHandler(&mockFacilityRepo{}, &mockSchedulingRepo{}, sender, testLogger())

	got := h.Handle(context.Background(), "+919876500000", staffUser(), "")
	if got != noFacilitiesMessage {
		t.Errorf("unexpected reply: %q", got)
	}
	if sender.lastText(t).body != noFacilitiesMessage {
		t.Error("expected the no-facilities message to be sent")
	}
}

func TestStaffScheduleHandler_ListsFacilitiesWithoutSelection(t *testing.T) {
	sender := &mockSender{}
	repo := &mockFacilityRepo{facilities: twoFacilities()}
	h := NewStaffScheduleHandler(repo, &mockSchedulingRepo{}, sender, testLogger())

	got := h.Handle(context.Background(), "+919876500000", staffUser(), "")
	if !strings.Contains(got, "🏥 *Your Facilities*") {
		t.Errorf("expected facility list, got %q", got)
	}
	if !strings.Contains(sender.lastText(t).body, "Type `/s <facility_number>`") {
		t.Error("expected the /s usage hint in the sent list")
	}
}

func TestStaffScheduleHandler_InvalidSelection(t *testing.T) {
	sender := &mockSender{}
	repo := &mockFacilityRepo{facilities: twoFacilities()}
	h := NewStaffScheduleHandler(repo, &mockSchedulingRepo{}, sender, testLogger())

	for _, selection := range []string{"3", "0", "abc"} {
		got := h.Handle(context.Background(), "+919876500000", staffUser(), selection)
		if got != invalidFacilityMessage {
			t.Errorf("selection %q: got %q", selection, got)
		}
	}
	if len(sender.texts) != 0 {
		t.Error("invalid selection should not be sent")
	}
}

func TestStaffScheduleHandler_RendersFacilitySchedule(t *testing.T) {
	sender := &mockSender{}
	user := staffUser()
	facilities := twoFacilities()
	fRepo := &mockFacilityRepo{
		facilities: facilities,
		members:    []*facility.Member{{FacilityID: facilities[0].ID, UserID: user.ID, UserName: "Anita Thomas"}},
	}
	sRepo := &mockSchedulingRepo{
		resource:  &scheduling.Resource{ID: uuid.New()},
		schedules: []*scheduling.Schedule{{ID: uuid.New()}},
		slots: []scheduling.Slot{
			{DayOfWeek: 0, StartTime: "09:00:00", EndTime: "13:00"},
			{DayOfWeek: 0, StartTime: "08:00", EndTime: "08:30"},
		},
	}
	h := NewStaffScheduleHandler(fRepo, sRepo, sender, testLogger())

	got := h.Handle(context.Background(), "+919876500000", user, "1")
	if got != "Staff schedule sent successfully" {
		t.Errorf("unexpected status: %q", got)
	}

	body := sender.lastText(t).body
	for _, want := range []string{
		"👥 *Staff Schedule at General Hospital*",
		"*Anita Thomas*",
		"Monday:",
		"08:00 AM - 08:30 AM",
		"09:00 AM - 01:00 PM",
		"Tuesday:",
		"No scheduled hours",
		"Type 'schedule' to see your facilities",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("schedule missing %q:\n%s", want, body)
		}
	}
	// Earlier slot must render first.
	if strings.Index(body, "08:00 AM") > strings.Index(body, "09:00 AM") {
		t.Error("slots should be sorted by start time")
	}
}

func TestStaffScheduleHandler_NoScheduleConfigured(t *testing.T) {
	sender := &mockSender{}
	user := staffUser()
	facilities := twoFacilities()
	fRepo := &mockFacilityRepo{
		facilities: facilities,
		members:    []*facility.Member{{FacilityID: facilities[0].ID, UserID: user.ID, UserName: "Anita Thomas"}},
	}
	h := NewStaffScheduleHandler(fRepo, &mockSchedulingRepo{}, sender, testLogger())

	h.Handle(context.Background(), "+919876500000", user, "1")

	if !strings.Contains(sender.lastText(t).body, "No schedule configured") {
		t.Error("expected the no-schedule marker for a member without a resource")
	}
}

func TestFormatWeek_DropsInvalidSlots(t *testing.T) {
	slots := []scheduling.Slot{
		{DayOfWeek: 9, StartTime: "09:00", EndTime: "10:00"},
		{DayOfWeek: 2, StartTime: "garbage", EndTime: "10:00"},
		{DayOfWeek: 2, StartTime: "14:00", EndTime: "15:00"},
	}
	got := formatWeek(slots, nil, testLogger())

	if !strings.Contains(got, "Wednesday:\n      02:00 PM - 03:00 PM") {
		t.Errorf("valid slot missing:\n%s", got)
	}
	if strings.Count(got, "02:00 PM - 03:00 PM") != 1 {
		t.Error("invalid slots should have been dropped")
	}
}

func TestFormatWeek_Exceptions(t *testing.T) {
	exceptions := []*scheduling.Exception{{
		ID:    uuid.New(),
		Date:  time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		Start: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC),
	}}
	got := formatWeek(nil, exceptions, testLogger())

	if !strings.Contains(got, "*Exceptions:*") {
		t.Errorf("exceptions header missing:\n%s", got)
	}
	if !strings.Contains(got, "12 Jun: 09:00 AM - 12:00 PM") {
		t.Errorf("exception line missing:\n%s", got)
	}
}

func TestStaffScheduleHandler_StraddlingException(t *testing.T) {
	sender := &mockSender{}
	user := staffUser()
	facilities := twoFacilities()
	fRepo := &mockFacilityRepo{
		facilities: facilities,
		members:    []*facility.Member{{FacilityID: facilities[0].ID, UserID: user.ID, UserName: "Anita Thomas"}},
	}
	// An exception that began yesterday and is still in effect today
	// must appear in the week view.
	yesterday := startOfDay(time.Now()).AddDate(0, 0, -1)
	sRepo := &mockSchedulingRepo{
		resource:  &scheduling.Resource{ID: uuid.New()},
		schedules: []*scheduling.Schedule{{ID: uuid.New()}},
		exceptions: []*scheduling.Exception{{
			ID:    uuid.New(),
			Date:  yesterday,
			Start: yesterday.Add(9 * time.Hour),
			End:   yesterday.Add(12 * time.Hour),
		}},
	}
	h := NewStaffScheduleHandler(fRepo, sRepo, sender, testLogger())

	h.Handle(context.Background(), "+919876500000", user, "1")

	want := yesterday.Format("02 Jan") + ": 09:00 AM - 12:00 PM"
	if !strings.Contains(sender.lastText(t).body, want) {
		t.Errorf("straddling exception %q missing:\n%s", want, sender.lastText(t).body)
	}
	if h, m, s := sRepo.exceptionsFrom.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("exception window should start at local midnight, got %v", sRepo.exceptionsFrom)
	}
	if !sRepo.exceptionsTo.Equal(sRepo.exceptionsFrom.AddDate(0, 0, 7)) {
		t.Errorf("exception window should span 7 days, got %v to %v", sRepo.exceptionsFrom, sRepo.exceptionsTo)
	}
}

func TestStartOfDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2024, 6, 12, 23, 30, 0, 0, ist)

	got := startOfDay(now)

	want := time.Date(2024, 6, 12, 0, 0, 0, 0, ist)
	if !got.Equal(want) {
		t.Errorf("startOfDay(%v) = %v, want %v", now, got, want)
	}
	if got.Location() != ist {
		t.Errorf("startOfDay should keep the location, got %v", got.Location())
	}
}

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"09:00", "09:00", true},
		{"09:00:00", "09:00", true},
		{"9", "09:00", true},
		{"23:45:59", "23:45", true},
		{"", "", false},
		{"not a time", "", false},
	}
	for _, tt := range tests {
		got, ok := parseSlotTime(tt.in)
		if ok != tt.wantOK {
			t.Errorf("parseSlotTime(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got.Format("15:04") != tt.want {
			t.Errorf("parseSlotTime(%q) = %s, want %s", tt.in, got.Format("15:04"), tt.want)
		}
	}
}
