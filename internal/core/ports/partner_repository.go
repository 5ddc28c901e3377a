package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/partner"
)

type PartnerRepository interface {
	// Add persists a newly registered partner. Duplicate email or mobile
	// returns *errs.ConflictError.
	Add(ctx context.Context, aggregate *partner.Partner) error

	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// GetForUpdate locks the partner row until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// SaveAvailability writes the aggregate's availability flag as a
	// compare-and-swap against the opposite stored value. When the stored
	// flag already changed underneath (a concurrent claim), a claim reports
	// *errs.PartnerUnavailableError and a release is a no-op.
	SaveAvailability(ctx context.Context, aggregate *partner.Partner) error

	// GetAllAvailable lists available partners, longest registered first.
	GetAllAvailable(ctx context.Context, limit int) ([]*partner.Partner, error)
}
