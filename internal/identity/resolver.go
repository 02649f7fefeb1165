package identity

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ohcnetwork/care-im/internal/domain/directory"
)

// Resolver maps a raw phone number to an Identity. Lookups run in a
// fixed precedence: patient by phone, patient by emergency phone,
// staff by phone, staff by alternate phone. A failed lookup is logged
// and skipped so resolution never surfaces an error; at worst the
// sender is treated as unregistered.
type Resolver struct {
	patients directory.PatientRepository
	users    directory.UserRepository
	logger   zerolog.Logger
}

func NewResolver(patients directory.PatientRepository, users directory.UserRepository, logger zerolog.Logger) *Resolver {
	return &Resolver{patients: patients, users: users, logger: logger}
}

func (r *Resolver) Resolve(ctx context.Context, rawPhone string) Identity {
	phone := NormalizePhone(rawPhone)

	if p, err := r.patients.FindByPhone(ctx, phone); err != nil {
		r.logger.Warn().Err(err).Str("phone", phone).Msg("patient phone lookup failed")
	} else if p != nil {
		return Identity{Patient: p}
	}

	if p, err := r.patients.FindByEmergencyPhone(ctx, phone); err != nil {
		r.logger.Warn().Err(err).Str("phone", phone).Msg("patient emergency phone lookup failed")
	} else if p != nil {
		return Identity{Patient: p}
	}

	if u, err := r.users.FindByPhone(ctx, phone); err != nil {
		r.logger.Warn().Err(err).Str("phone", phone).Msg("user phone lookup failed")
	} else if u != nil {
		return Identity{User: u}
	}

	if u, err := r.users.FindByAltPhone(ctx, phone); err != nil {
		r.logger.Warn().Err(err).Str("phone", phone).Msg("user alt phone lookup failed")
	} else if u != nil {
		return Identity{User: u}
	}

	return Identity{}
}
