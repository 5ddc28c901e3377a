package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewList...OrdersQuery constructors",
)

// OrderScope selects which orders a ListOrdersQuery returns.
type OrderScope int

const (
	ScopeUser OrderScope = iota + 1
	ScopeRestaurant
	ScopePartner
	// ScopeActive is every order that is neither DELIVERED nor CANCELLED.
	ScopeActive
)

// ListOrdersQuery lists orders of one customer, one restaurant or one
// delivery partner (newest first), or the active orders (oldest first).
type ListOrdersQuery struct {
	scope   OrderScope
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListUserOrdersQuery(userID kernel.UUID) (ListOrdersQuery, error) {
	return newOwnedOrdersQuery(ScopeUser, userID)
}

func NewListRestaurantOrdersQuery(restaurantID kernel.UUID) (ListOrdersQuery, error) {
	return newOwnedOrdersQuery(ScopeRestaurant, restaurantID)
}

func NewListPartnerOrdersQuery(partnerID kernel.UUID) (ListOrdersQuery, error) {
	return newOwnedOrdersQuery(ScopePartner, partnerID)
}

func NewListActiveOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{scope: ScopeActive, guard: guard.NewConstructorGuard()}
}

func newOwnedOrdersQuery(scope OrderScope, ownerID kernel.UUID) (ListOrdersQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{scope: scope, ownerID: ownerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrdersQuery) Scope() OrderScope    { return q.scope }
func (q ListOrdersQuery) OwnerID() kernel.UUID { return q.ownerID }

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
