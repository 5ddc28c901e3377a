package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrListAvailablePartnersQueryIsNotConstructed = errors.New(
	"ListAvailablePartnersQuery must be created via NewListAvailablePartnersQuery constructor",
)

// ListAvailablePartnersQuery lists the delivery partners that can take an
// order right now, longest registered first.
type ListAvailablePartnersQuery struct {
	guard guard.ConstructorGuard
}

func NewListAvailablePartnersQuery() ListAvailablePartnersQuery {
	return ListAvailablePartnersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListAvailablePartnersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailablePartnersQueryIsNotConstructed)
}

type AvailablePartner struct {
	ID        kernel.UUID
	Name      string
	Mobile    string
	Vehicle   string
	CreatedAt time.Time
}
