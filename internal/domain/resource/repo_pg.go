package resource

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const requestCols = `r.id, r.title, r.status, r.category, r.emergency,
	ofc.name, afc.name,
	NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''),
	r.created_date`

const requestJoins = `
	FROM resource_request r
	LEFT JOIN facility ofc ON ofc.id = r.origin_facility_id
	LEFT JOIN facility afc ON afc.id = r.assigned_facility_id
	LEFT JOIN users_user u ON u.id = r.assigned_to_id`

func (r *repoPG) list(ctx context.Context, column string, facilityID uuid.UUID, limit int) ([]*Request, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestCols+requestJoins+`
		WHERE r.`+column+` = $1 AND r.deleted = FALSE
		ORDER BY r.created_date DESC LIMIT $2`, facilityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.Title, &req.Status, &req.Category, &req.Emergency,
			&req.OriginFacility, &req.AssignedFacility, &req.AssignedTo, &req.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &req)
	}
	return items, rows.Err()
}

func (r *repoPG) count(ctx context.Context, column string, facilityID uuid.UUID) (Counts, error) {
	var c Counts
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE deleted = FALSE)
		FROM resource_request WHERE `+column+` = $1`, facilityID).
		Scan(&c.Total, &c.Visible)
	return c, err
}

func (r *repoPG) ListIncoming(ctx context.Context, facilityID uuid.UUID, limit int) ([]*Request, error) {
	return r.list(ctx, "assigned_facility_id", facilityID, limit)
}

func (r *repoPG) ListOutgoing(ctx context.Context, facilityID uuid.UUID, limit int) ([]*Request, error) {
	return r.list(ctx, "origin_facility_id", facilityID, limit)
}

func (r *repoPG) CountIncoming(ctx context.Context, facilityID uuid.UUID) (Counts, error) {
	return r.count(ctx, "assigned_facility_id", facilityID)
}

func (r *repoPG) CountOutgoing(ctx context.Context, facilityID uuid.UUID) (Counts, error) {
	return r.count(ctx, "origin_facility_id", facilityID)
}
