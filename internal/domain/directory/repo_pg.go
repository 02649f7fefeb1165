package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, name, phone_number, emergency_phone_number, gender, blood_group, date_of_birth, modified_date`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Phone, &p.EmergencyPhone, &p.Gender,
		&p.BloodGroup, &p.DateOfBirth, &p.ModifiedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) FindByPhone(ctx context.Context, phone string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE phone_number = $1 AND deleted = FALSE
		ORDER BY modified_date DESC LIMIT 1`, phone))
}

func (r *patientRepoPG) FindByEmergencyPhone(ctx context.Context, phone string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `
		SELECT `+patientCols+` FROM patient
		WHERE emergency_phone_number = $1 AND deleted = FALSE
		ORDER BY modified_date DESC LIMIT 1`, phone))
}

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository {
	return &userRepoPG{pool: pool}
}

const userCols = `id, first_name, last_name, phone_number, alt_phone_number, is_staff`

func scanUser(row pgx.Row) (*StaffUser, error) {
	var u StaffUser
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.AltPhone, &u.IsStaff)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) FindByPhone(ctx context.Context, phone string) (*StaffUser, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userCols+` FROM users_user
		WHERE phone_number = $1 AND is_active = TRUE LIMIT 1`, phone))
}

func (r *userRepoPG) FindByAltPhone(ctx context.Context, phone string) (*StaffUser, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userCols+` FROM users_user
		WHERE alt_phone_number = $1 AND is_active = TRUE LIMIT 1`, phone))
}
