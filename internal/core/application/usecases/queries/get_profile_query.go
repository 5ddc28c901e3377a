package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/identity"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetProfileQueryIsNotConstructed = errors.New(
	"GetProfileQuery must be created via NewGetProfileQuery constructor",
)

// GetProfileQuery reads the profile of a customer, a restaurant or a
// delivery partner. The role decides which table is searched.
//
// Example:
//
//	query, err := NewGetProfileQuery("delivery_partner", partnerID)
//	if err != nil {
//	    return err
//	}
//	profile, err := handler.Handle(ctx, query)
type GetProfileQuery struct {
	role identity.Role
	id   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetProfileQuery(role string, id kernel.UUID) (GetProfileQuery, error) {
	parsed, roleErr := identity.ParseRole(role)
	if err := errors.Join(roleErr, id.Validate()); err != nil {
		return GetProfileQuery{}, err
	}
	return GetProfileQuery{role: parsed, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetProfileQuery) Role() identity.Role { return q.role }
func (q GetProfileQuery) ID() kernel.UUID     { return q.id }

func (q GetProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetProfileQueryIsNotConstructed)
}

// Profile is the public view of an account. Vehicle and IsAvailable are set
// for delivery partners only.
type Profile struct {
	Role        identity.Role
	ID          kernel.UUID
	Name        string
	Email       string
	Mobile      string
	Address     string
	Vehicle     string
	IsAvailable *bool
	CreatedAt   time.Time
}
