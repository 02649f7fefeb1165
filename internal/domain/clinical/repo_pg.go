package clinical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRequestRepoPG(pool *pgxpool.Pool) MedicationRequestRepository {
	return &medicationRepoPG{pool: pool}
}

// rawInstruction mirrors the JSON shape the records system stores in
// the dosage_instruction column. It is decoded into the typed
// Instruction here so nothing above this layer touches raw JSON.
type rawInstruction struct {
	Timing *struct {
		Code *struct {
			Display *string `json:"display"`
		} `json:"code"`
		Repeat *struct {
			BoundsDuration *struct {
				Value *float64 `json:"value"`
				Unit  *string  `json:"unit"`
			} `json:"bounds_duration"`
		} `json:"repeat"`
	} `json:"timing"`
	DoseAndRate *struct {
		DoseQuantity *struct {
			Value *float64 `json:"value"`
			Unit  *struct {
				Display *string `json:"display"`
			} `json:"unit"`
		} `json:"dose_quantity"`
	} `json:"dose_and_rate"`
	Route *struct {
		Display *string `json:"display"`
	} `json:"route"`
	Method *struct {
		Display *string `json:"display"`
	} `json:"method"`
	AdditionalInstruction []struct {
		Display *string `json:"display"`
	} `json:"additional_instruction"`
	AsNeededBoolean bool `json:"as_needed_boolean"`
}

func decodeInstructions(data []byte) ([]Instruction, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw []rawInstruction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dosage instructions: %w", err)
	}
	out := make([]Instruction, 0, len(raw))
	for _, ri := range raw {
		var in Instruction
		if ri.Timing != nil && ri.Timing.Code != nil {
			in.Frequency = ri.Timing.Code.Display
		}
		if ri.DoseAndRate != nil && ri.DoseAndRate.DoseQuantity != nil {
			in.DoseValue = ri.DoseAndRate.DoseQuantity.Value
			if u := ri.DoseAndRate.DoseQuantity.Unit; u != nil {
				in.DoseUnit = u.Display
			}
		}
		if ri.Timing != nil && ri.Timing.Repeat != nil && ri.Timing.Repeat.BoundsDuration != nil {
			in.DurationValue = ri.Timing.Repeat.BoundsDuration.Value
			in.DurationUnit = ri.Timing.Repeat.BoundsDuration.Unit
		}
		if ri.Route != nil {
			in.Route = ri.Route.Display
		}
		if ri.Method != nil {
			in.Method = ri.Method.Display
		}
		for _, ai := range ri.AdditionalInstruction {
			if ai.Display != nil {
				in.Notes = append(in.Notes, *ai.Display)
			}
		}
		in.AsNeeded = ri.AsNeededBoolean
		out = append(out, in)
	}
	return out, nil
}

func (r *medicationRepoPG) ListByPatientAndStatus(ctx context.Context, patientID uuid.UUID, status string) ([]*MedicationRequest, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mr.id, COALESCE(mr.medication->>'display', 'Unknown Medication'),
			mr.category, mr.priority, mr.status,
			mr.status_reason, mr.dosage_instruction,
			CASE WHEN mr.method IS NULL THEN NULL
				ELSE COALESCE(mr.method->>'text', 'Not specified') END,
			mr.authored_on,
			NULLIF(TRIM(req.first_name || ' ' || req.last_name), ''),
			NULLIF(TRIM(cb.first_name || ' ' || cb.last_name), ''),
			mr.note
		FROM medication_request mr
		LEFT JOIN users_user req ON req.id = mr.requester_id
		LEFT JOIN users_user cb ON cb.id = mr.created_by_id
		WHERE mr.patient_id = $1 AND mr.status = $2 AND mr.deleted = FALSE
		ORDER BY mr.authored_on DESC NULLS LAST`, patientID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicationRequest
	for rows.Next() {
		var m MedicationRequest
		var dosage []byte
		if err := rows.Scan(&m.ID, &m.MedicationName, &m.Category, &m.Priority, &m.Status,
			&m.StatusReason, &dosage, &m.Method, &m.AuthoredOn,
			&m.RequesterName, &m.PrescriberName, &m.Note); err != nil {
			return nil, err
		}
		if m.Instructions, err = decodeInstructions(dosage); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

type encounterRepoPG struct{ pool *pgxpool.Pool }

func NewEncounterRepoPG(pool *pgxpool.Pool) EncounterRepository {
	return &encounterRepoPG{pool: pool}
}

const encounterCols = `e.id, e.encounter_class, e.status, f.name,
	NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''),
	e.created_date`

func (r *encounterRepoPG) list(ctx context.Context, sql string, patientID uuid.UUID) ([]*Encounter, error) {
	rows, err := r.pool.Query(ctx, sql, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Encounter
	for rows.Next() {
		var e Encounter
		if err := rows.Scan(&e.ID, &e.Class, &e.Status, &e.FacilityName,
			&e.ClinicianName, &e.Date); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}

func (r *encounterRepoPG) ListRecent(ctx context.Context, patientID uuid.UUID) ([]*Encounter, error) {
	return r.list(ctx, `
		SELECT `+encounterCols+`
		FROM encounter e
		LEFT JOIN facility f ON f.id = e.facility_id
		LEFT JOIN users_user u ON u.id = e.created_by_id
		WHERE e.patient_id = $1 AND e.deleted = FALSE AND e.created_date <= NOW()
		ORDER BY e.created_date DESC`, patientID)
}

func (r *encounterRepoPG) ListUpcoming(ctx context.Context, patientID uuid.UUID) ([]*Encounter, error) {
	return r.list(ctx, `
		SELECT `+encounterCols+`
		FROM encounter e
		LEFT JOIN facility f ON f.id = e.facility_id
		LEFT JOIN users_user u ON u.id = e.created_by_id
		WHERE e.patient_id = $1 AND e.deleted = FALSE AND e.created_date > NOW()
		ORDER BY e.created_date ASC`, patientID)
}

type tokenBookingRepoPG struct{ pool *pgxpool.Pool }

func NewTokenBookingRepoPG(pool *pgxpool.Pool) TokenBookingRepository {
	return &tokenBookingRepoPG{pool: pool}
}

func (r *tokenBookingRepoPG) Latest(ctx context.Context, patientID uuid.UUID) (*TokenBooking, error) {
	var b TokenBooking
	err := r.pool.QueryRow(ctx, `
		SELECT b.id, ts.start_datetime, ts.end_datetime, b.status, b.created_date, b.reason_for_visit
		FROM token_booking b
		JOIN token_slot ts ON ts.id = b.token_slot_id
		WHERE b.patient_id = $1 AND b.deleted = FALSE
		ORDER BY b.created_date DESC LIMIT 1`, patientID).
		Scan(&b.ID, &b.SlotStart, &b.SlotEnd, &b.Status, &b.BookedOn, &b.Reason)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
