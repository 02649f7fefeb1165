package facility

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads facilities, their membership, and their assets.
// ListByUser returns facilities in a stable order so that the numbered
// selection a user was shown stays valid on the follow-up command.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Facility, error)
	ListMembers(ctx context.Context, facilityID uuid.UUID) ([]*Member, error)
	ListAssets(ctx context.Context, facilityID uuid.UUID) ([]*Asset, error)

	// LatestAvailability returns the newest status record for the
	// asset, or (nil, nil) when the asset has never reported.
	LatestAvailability(ctx context.Context, assetID uuid.UUID) (*Availability, error)
}
