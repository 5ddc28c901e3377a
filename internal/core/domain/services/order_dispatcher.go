package services

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/partner"
	"fooddelivery/internal/pkg/errs"
)

// ErrPartnerNotFound is returned when no available delivery partner can be
// picked for an order.
var ErrPartnerNotFound = errors.New("delivery partner not found")

// OrderDispatcher is the domain service that binds delivery partners to
// orders and frees them again on delivery. It is the only code path that
// flips a partner's availability.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	if err := dispatcher.Assign(o, p, now); err != nil {
//	    return err // InvalidTransition or PartnerUnavailable, nothing changed
//	}
//	// persist o and p in the same transaction
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Assign claims p and binds it to o, moving o to OUT_FOR_DELIVERY.
// Either both aggregates change or neither does.
func (d OrderDispatcher) Assign(o *order.Order, p *partner.Partner, at time.Time) error {
	if err := errors.Join(o.Validate(), p.Validate()); err != nil {
		return err
	}
	if err := o.Status().ValidateAssign(); err != nil {
		return err
	}

	if err := p.Claim(); err != nil {
		return err
	}
	if err := o.AssignPartner(p.ID(), at); err != nil {
		p.Release()
		return err
	}
	return nil
}

// Deliver moves o to DELIVERED and releases p, the partner bound to o.
// p must be nil exactly when o went out without an assigned partner.
func (d OrderDispatcher) Deliver(o *order.Order, p *partner.Partner, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	bound := o.Partner()
	switch {
	case p == nil && bound != nil:
		return errs.NewValueIsRequiredError("bound delivery partner")
	case p != nil:
		if err := p.Validate(); err != nil {
			return err
		}
		if bound == nil || !bound.IsEqual(p.ID()) {
			return errs.NewValueIsInvalidErrorWithCause(
				"delivery partner",
				fmt.Errorf("partner %s is not bound to order %s", p.ID(), o.ID()),
			)
		}
	}

	if err := o.SetStatus(order.Delivered, at); err != nil {
		return err
	}
	if p != nil {
		p.Release()
	}
	return nil
}

// PickPartner selects the available partner that has been registered the
// longest. Ties keep the input order.
func (d OrderDispatcher) PickPartner(partners []*partner.Partner) (*partner.Partner, error) {
	var best *partner.Partner
	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !p.IsAvailable() {
			continue
		}
		if best == nil || p.CreatedAt().Before(best.CreatedAt()) {
			best = p
		}
	}

	if best == nil {
		return nil, ErrPartnerNotFound
	}
	return best, nil
}
