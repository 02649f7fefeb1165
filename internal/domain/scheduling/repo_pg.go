package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) ResourceFor(ctx context.Context, facilityID, userID uuid.UUID) (*Resource, error) {
	var res Resource
	err := r.pool.QueryRow(ctx, `
		SELECT id, facility_id, user_id FROM schedulable_resource
		WHERE facility_id = $1 AND user_id = $2 LIMIT 1`, facilityID, userID).
		Scan(&res.ID, &res.FacilityID, &res.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *repoPG) ListActiveSchedules(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*Schedule, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, valid_from, valid_to FROM schedule
		WHERE resource_id = $1 AND valid_from <= $3 AND valid_to >= $2 AND deleted = FALSE
		ORDER BY valid_from`, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Schedule
	for rows.Next() {
		var s Schedule
		if err := rows.Scan(&s.ID, &s.ValidFrom, &s.ValidTo); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

func (r *repoPG) ListAppointmentSlots(ctx context.Context, scheduleIDs []uuid.UUID) ([]Slot, error) {
	if len(scheduleIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT (a.av->>'day_of_week')::int, a.av->>'start_time', a.av->>'end_time'
		FROM availability s, jsonb_array_elements(s.availability) AS a(av)
		WHERE s.schedule_id = ANY($1) AND s.slot_type = $2`,
		scheduleIDs, SlotTypeAppointment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Slot
	for rows.Next() {
		var sl Slot
		if err := rows.Scan(&sl.DayOfWeek, &sl.StartTime, &sl.EndTime); err != nil {
			return nil, err
		}
		items = append(items, sl)
	}
	return items, rows.Err()
}

func (r *repoPG) ListExceptions(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*Exception, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, valid_from, start_time, end_time FROM availability_exception
		WHERE resource_id = $1 AND valid_from <= $3 AND valid_to >= $2 AND deleted = FALSE
		ORDER BY valid_from`, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Exception
	for rows.Next() {
		var e Exception
		if err := rows.Scan(&e.ID, &e.Date, &e.Start, &e.End); err != nil {
			return nil, err
		}
		items = append(items, &e)
	}
	return items, rows.Err()
}
