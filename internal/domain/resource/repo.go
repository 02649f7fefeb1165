package resource

import (
	"context"

	"github.com/google/uuid"
)

// Counts reports how many requests exist for a facility in one
// direction: Total includes soft-deleted rows, Visible excludes them.
type Counts struct {
	Total   int
	Visible int
}

// Repository reads resource requests by facility. Incoming requests
// are those assigned to the facility; outgoing ones originate from it.
// Lists exclude soft-deleted rows and return newest first, capped at
// limit.
type Repository interface {
	ListIncoming(ctx context.Context, facilityID uuid.UUID, limit int) ([]*Request, error)
	ListOutgoing(ctx context.Context, facilityID uuid.UUID, limit int) ([]*Request, error)
	CountIncoming(ctx context.Context, facilityID uuid.UUID) (Counts, error)
	CountOutgoing(ctx context.Context, facilityID uuid.UUID) (Counts, error)
}
