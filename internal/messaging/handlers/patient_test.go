package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
)

func TestPatientRecordHandler_NilPatient(t *testing.T) {
	sender := &mockSender{}
	h := NewPatientRecordHandler(sender, testLogger())

	got := h.Handle(context.Background(), "+919876500000", nil)
	if got != "No patient records found. Please visit a facility to register." {
		t.Errorf("unexpected reply: %q", got)
	}
	if len(sender.templates) != 0 {
		t.Error("expected no send for nil patient")
	}
}

func TestPatientRecordHandler_SendsRecordTemplate(t *testing.T) {
	sender := &mockSender{}
	h := NewPatientRecordHandler(sender, testLogger())

	dob := time.Now().AddDate(-34, 0, 0)
	patient := &directory.Patient{
		ID:          uuid.New(),
		Name:        "Meera Nair",
		Phone:       "+919876500000",
		Gender:      "female",
		BloodGroup:  strPtr("O+"),
		DateOfBirth: &dob,
		ModifiedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}

	got := h.Handle(context.Background(), patient.Phone, patient)
	if got != "Patient records sent successfully" {
		t.Errorf("unexpected status: %q", got)
	}

	sent := sender.lastTemplate(t)
	if sent.name != "care_patient_record" {
		t.Errorf("template = %s, want care_patient_record", sent.name)
	}
	body := sent.params["body"]
	if len(body) != 5 {
		t.Fatalf("got %d body params, want 5", len(body))
	}
	if body[0].Text != patient.ID.String() {
		t.Errorf("param[0] = %q, want patient id", body[0].Text)
	}
	if body[1].Text != "Meera Nair" {
		t.Errorf("param[1] = %q", body[1].Text)
	}
	if body[2].Text != "34 years" {
		t.Errorf("param[2] = %q, want \"34 years\"", body[2].Text)
	}
	if body[3].Text != "01 June, 2024" {
		t.Errorf("param[3] = %q, want \"01 June, 2024\"", body[3].Text)
	}
	if body[4].Text != "Gender: female, Blood Group: O+" {
		t.Errorf("param[4] = %q", body[4].Text)
	}
}

func TestPatientRecordHandler_MissingFieldsFallBack(t *testing.T) {
	sender := &mockSender{}
	h := NewPatientRecordHandler(sender, testLogger())

	patient := &directory.Patient{ID: uuid.New(), Name: "Ward Patient", Gender: "male"}

	h.Handle(context.Background(), "+919876500000", patient)

	body := sender.lastTemplate(t).params["body"]
	if body[2].Text != "Not Available" {
		t.Errorf("age = %q, want \"Not Available\"", body[2].Text)
	}
	if body[3].Text != "Not Available" {
		t.Errorf("last visit = %q, want \"Not Available\"", body[3].Text)
	}
	if !strings.Contains(body[4].Text, "Blood Group: Not Available") {
		t.Errorf("param[4] = %q", body[4].Text)
	}
}

func TestPatientRecordHandler_SendError(t *testing.T) {
	sender := &mockSender{err: errors.New("network down")}
	h := NewPatientRecordHandler(sender, testLogger())

	got := h.Handle(context.Background(), "+919876500000", &directory.Patient{ID: uuid.New()})
	if got != "Sorry, I couldn't complete the retrieving patient records. Please try again later." {
		t.Errorf("unexpected reply: %q", got)
	}
}
