package identity

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Role tags which of the three profile tables an account lives in.
type Role string

const (
	RoleCustomer        Role = "customer"
	RoleRestaurant      Role = "restaurant"
	RoleDeliveryPartner Role = "delivery_partner"
)

func Roles() []Role {
	return []Role{RoleCustomer, RoleRestaurant, RoleDeliveryPartner}
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleRestaurant, RoleDeliveryPartner:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not one of %v", string(r), Roles()))
}

func (r Role) String() string { return string(r) }
