package facility

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Facility, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.id, f.name, f.total_bed_capacity, f.current_bed_capacity
		FROM facility f
		JOIN facility_user fu ON fu.facility_id = f.id
		WHERE fu.user_id = $1 AND f.deleted = FALSE
		ORDER BY f.name, f.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Facility
	for rows.Next() {
		var f Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.TotalBedCapacity, &f.CurrentBedCapacity); err != nil {
			return nil, err
		}
		items = append(items, &f)
	}
	return items, rows.Err()
}

func (r *repoPG) ListMembers(ctx context.Context, facilityID uuid.UUID) ([]*Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT fu.facility_id, fu.user_id, TRIM(u.first_name || ' ' || u.last_name)
		FROM facility_user fu
		JOIN users_user u ON u.id = fu.user_id
		WHERE fu.facility_id = $1 AND u.is_active = TRUE
		ORDER BY u.first_name, u.last_name`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.FacilityID, &m.UserID, &m.UserName); err != nil {
			return nil, err
		}
		items = append(items, &m)
	}
	return items, rows.Err()
}

func (r *repoPG) ListAssets(ctx context.Context, facilityID uuid.UUID) ([]*Asset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.name, a.asset_class, COALESCE(al.name, '')
		FROM asset a
		LEFT JOIN asset_location al ON al.id = a.current_location_id
		WHERE al.facility_id = $1 AND a.deleted = FALSE
		ORDER BY a.name`, facilityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Asset
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Class, &a.Location); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) LatestAvailability(ctx context.Context, assetID uuid.UUID) (*Availability, error) {
	var a Availability
	err := r.pool.QueryRow(ctx, `
		SELECT asset_id, status, timestamp FROM asset_availability
		WHERE asset_id = $1
		ORDER BY timestamp DESC LIMIT 1`, assetID).
		Scan(&a.AssetID, &a.Status, &a.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
