package partner

import (
	"errors"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const DefaultVehicle = "Bike"

var ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")

// Partner is a delivery partner. Its availability flag is a shared resource:
// it is cleared only by Claim during assignment and set only by Release when
// the assigned order is delivered.
type Partner struct {
	id        kernel.UUID
	contact   kernel.Contact
	vehicle   string
	available bool
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewPartner registers a partner who is available for assignment.
// An empty vehicle defaults to DefaultVehicle.
func NewPartner(id kernel.UUID, contact kernel.Contact, vehicle string, at time.Time) (*Partner, error) {
	return RestorePartner(id, contact, vehicle, true, at)
}

// RestorePartner rebuilds a partner from storage.
func RestorePartner(
	id kernel.UUID,
	contact kernel.Contact,
	vehicle string,
	available bool,
	createdAt time.Time,
) (*Partner, error) {
	if err := errors.Join(id.Validate(), contact.Validate()); err != nil {
		return nil, err
	}

	vehicle = strings.TrimSpace(vehicle)
	if vehicle == "" {
		vehicle = DefaultVehicle
	}

	return &Partner{
		id:        id,
		contact:   contact,
		vehicle:   vehicle,
		available: available,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *Partner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Partner) ID() kernel.UUID         { return p.id }
func (p *Partner) Contact() kernel.Contact { return p.contact }
func (p *Partner) Vehicle() string         { return p.vehicle }
func (p *Partner) IsAvailable() bool       { return p.available }
func (p *Partner) CreatedAt() time.Time    { return p.createdAt }

// Claim takes the partner for an order. It fails with a
// PartnerUnavailableError when the partner is already busy.
func (p *Partner) Claim() error {
	if !p.available {
		return errs.NewPartnerUnavailableError(p.id)
	}
	p.available = false
	return nil
}

// Release makes the partner available again. Releasing an available partner
// is a no-op.
func (p *Partner) Release() {
	p.available = true
}
